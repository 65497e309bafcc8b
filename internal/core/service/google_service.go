package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/glowdesk/booking-system/internal/core/domain"
	"github.com/glowdesk/booking-system/internal/core/ports"
)

const (
	userInfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"
	stateTTL         = 10 * time.Minute
)

// StateStore holds one-time OAuth state tokens (Redis-backed in production).
type StateStore interface {
	Issue(ctx context.Context, state string, ttl time.Duration) error
	// Consume removes the state and reports whether it existed.
	Consume(ctx context.Context, state string) (bool, error)
}

// GoogleConfig is the provider configuration injected at construction time.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// GoogleService implements the OAuth credential provider: code exchange,
// userinfo fetch, and reconciliation of the external identity to a User.
type GoogleService struct {
	oauth       *oauth2.Config
	repo        ports.UserRepository
	tokens      ports.TokenService
	states      StateStore
	userInfoURL string
	log         zerolog.Logger
}

func NewGoogleService(cfg GoogleConfig, repo ports.UserRepository, tokens ports.TokenService, states StateStore, log zerolog.Logger) *GoogleService {
	return &GoogleService{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		repo:        repo,
		tokens:      tokens,
		states:      states,
		userInfoURL: userInfoEndpoint,
		log:         log,
	}
}

// Enabled reports whether provider credentials are configured. This is a
// pure predicate so the status endpoint never triggers a network call.
func (s *GoogleService) Enabled() bool {
	return s.oauth.ClientID != "" && s.oauth.ClientSecret != ""
}

// AuthCodeURL stores a fresh one-time state token and returns the Google
// consent URL carrying it.
func (s *GoogleService) AuthCodeURL(ctx context.Context) (string, error) {
	if !s.Enabled() {
		return "", domain.ErrOAuthNotConfigured
	}

	state, err := randomState()
	if err != nil {
		return "", fmt.Errorf("issue oauth state: %w", err)
	}
	if err := s.states.Issue(ctx, state, stateTTL); err != nil {
		return "", fmt.Errorf("store oauth state: %w", err)
	}
	return s.oauth.AuthCodeURL(state), nil
}

// Exchange completes the OAuth flow: validates the state, redeems the code,
// fetches the OpenID profile, reconciles it to a User, and returns a bearer
// token together with that user.
func (s *GoogleService) Exchange(ctx context.Context, state, code string) (string, *domain.User, error) {
	if !s.Enabled() {
		return "", nil, domain.ErrOAuthNotConfigured
	}

	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return "", nil, fmt.Errorf("consume oauth state: %w", err)
	}
	if !ok {
		return "", nil, domain.ErrInvalidOAuthState
	}

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("oauth exchange: %w", err)
	}

	profile, err := s.fetchProfile(ctx, tok)
	if err != nil {
		return "", nil, err
	}

	user, err := s.resolveIdentity(ctx, profile)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	bearer, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("google login")
	return bearer, user, nil
}

// googleProfile is the subset of the OpenID userinfo response we consume.
type googleProfile struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *GoogleService) fetchProfile(ctx context.Context, tok *oauth2.Token) (*googleProfile, error) {
	resp, err := s.oauth.Client(ctx, tok).Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch userinfo: unexpected status %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	return &profile, nil
}

// resolveIdentity maps an externally-asserted identity to a User record.
// Rules, in order:
//   - an existing user with the same Google subject id is reused;
//   - an existing user with the same email was created locally — refuse the
//     exchange (silent account merging is a takeover vector);
//   - otherwise a new client-role user is created without a password hash.
func (s *GoogleService) resolveIdentity(ctx context.Context, profile *googleProfile) (*domain.User, error) {
	if profile.Sub == "" || profile.Email == "" {
		return nil, fmt.Errorf("userinfo missing subject or email")
	}

	user, err := s.repo.FindByGoogleID(ctx, profile.Sub)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	email := normalizeEmail(profile.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyLinked
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		Name:         profile.Name,
		Avatar:       profile.Picture,
		Role:         domain.RoleClient,
		GoogleID:     profile.Sub,
		AuthProvider: domain.ProviderGoogle,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user created from google identity")
	return created, nil
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
