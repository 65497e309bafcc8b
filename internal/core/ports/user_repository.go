package ports

import (
	"context"
	"time"

	"github.com/glowdesk/booking-system/internal/core/domain"
)

// UserRepository defines persistence for identity records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail matches the normalized (lowercased, trimmed) address.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	CountByRole(ctx context.Context, role string) (int64, error)
}
