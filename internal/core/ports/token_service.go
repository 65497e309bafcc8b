package ports

import (
	"time"

	"github.com/glowdesk/booking-system/internal/core/domain"
)

// TokenClaims is the decoded identity carried by a bearer token.
type TokenClaims struct {
	UserID    string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies signed bearer tokens. Verification
// failures (bad signature, malformed token, expiry) all surface as
// domain.ErrInvalidToken so callers cannot build an oracle from them.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*TokenClaims, error)
}
