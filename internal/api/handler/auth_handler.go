package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/glowdesk/booking-system/internal/api/metrics"
	"github.com/glowdesk/booking-system/internal/core/domain"
	"github.com/glowdesk/booking-system/internal/core/ports"
)

// AuthHandler handles HTTP requests for both credential providers: local
// password accounts and the Google OAuth flow. Both converge on the same
// bearer token format.
type AuthHandler struct {
	auth        ports.AuthService
	google      ports.GoogleAuthenticator
	frontendURL string
}

func NewAuthHandler(auth ports.AuthService, google ports.GoogleAuthenticator, frontendURL string) *AuthHandler {
	return &AuthHandler{
		auth:        auth,
		google:      google,
		frontendURL: frontendURL,
	}
}

// Register creates a new local account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	input := ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
		Phone:    req.Phone,
	}
	if req.Role == domain.RoleBusiness {
		input.Business = &domain.BusinessProfile{
			Name:  req.BusinessName,
			Email: req.BusinessEmail,
			Phone: req.BusinessPhone,
		}
	}

	token, user, err := h.auth.Register(c.Request().Context(), input)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrUserExists):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrInvalidCredentials):
			status = http.StatusBadRequest
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	metrics.RegistrationsTotal.Inc()

	return c.JSON(http.StatusCreated, authResponse{
		Message: "registration successful",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// Login authenticates a local account and returns a bearer token.
//
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(domain.ProviderLocal, "failure").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	metrics.LoginsTotal.WithLabelValues(domain.ProviderLocal, "success").Inc()

	return c.JSON(http.StatusOK, authResponse{
		Message: "login successful",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// GoogleRedirect starts the OAuth flow by redirecting to Google's consent
// screen.
//
// @Summary      Start Google OAuth flow
// @Tags         auth
// @Success      302
// @Failure      503  {object}  map[string]string
// @Router       /auth/google [get]
func (h *AuthHandler) GoogleRedirect(c echo.Context) error {
	authURL, err := h.google.AuthCodeURL(c.Request().Context())
	if err != nil {
		if errors.Is(err, domain.ErrOAuthNotConfigured) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.Redirect(http.StatusFound, authURL)
}

// GoogleCallback completes the OAuth flow. On success the browser is sent
// to the frontend callback page with the token in the query string; every
// failure lands on the login page with a generic error marker so the flow
// never leaks which step broke.
//
// @Summary      Google OAuth callback
// @Tags         auth
// @Param        state  query  string  true  "Opaque state issued at redirect time"
// @Param        code   query  string  true  "Authorization code"
// @Success      302
// @Router       /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	state := c.QueryParam("state")
	code := c.QueryParam("code")
	if code == "" {
		return c.Redirect(http.StatusFound, h.frontendURL+"/login?error=oauth")
	}

	token, _, err := h.google.Exchange(c.Request().Context(), state, code)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(domain.ProviderGoogle, "failure").Inc()
		return c.Redirect(http.StatusFound, h.frontendURL+"/login?error=oauth")
	}

	metrics.LoginsTotal.WithLabelValues(domain.ProviderGoogle, "success").Inc()

	return c.Redirect(http.StatusFound, h.frontendURL+"/auth/callback?token="+url.QueryEscape(token))
}

// GoogleStatus reports whether the Google provider is configured, so the
// frontend can hide the button when it is not.
//
// @Summary      Google OAuth availability
// @Tags         auth
// @Produce      json
// @Success      200  {object}  googleStatusResponse
// @Router       /auth/google/status [get]
func (h *AuthHandler) GoogleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, googleStatusResponse{
		GoogleAuthAvailable: h.google.Enabled(),
	})
}

// Me returns the identity record behind the presented token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.auth.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}
