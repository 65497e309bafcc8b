package ports

import (
	"context"

	"github.com/glowdesk/booking-system/internal/core/domain"
)

// RegisterInput carries everything needed to create a local account.
// Business is only honored when Role is domain.RoleBusiness.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
	Phone    string
	Business *domain.BusinessProfile
}

// AuthService implements the local credential provider.
type AuthService interface {
	// Register creates a local account and returns a fresh token with it.
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	// Login verifies credentials. Unknown email and wrong password both
	// yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// CurrentUser loads the identity record for a verified token subject.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

// GoogleAuthenticator implements the OAuth credential provider.
type GoogleAuthenticator interface {
	// Enabled reports whether the provider credentials are configured.
	// Pure predicate; performs no network call.
	Enabled() bool
	// AuthCodeURL issues a state token and returns the consent URL.
	AuthCodeURL(ctx context.Context) (string, error)
	// Exchange validates state, redeems the authorization code, reconciles
	// the external identity to a User, and returns a bearer token with it.
	Exchange(ctx context.Context, state, code string) (string, *domain.User, error)
}
