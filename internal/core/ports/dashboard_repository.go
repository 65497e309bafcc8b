package ports

import (
	"context"
	"time"

	"github.com/glowdesk/booking-system/internal/core/domain"
)

// DailyRevenue is one revenue bucket keyed by business date (YYYY-MM-DD).
type DailyRevenue struct {
	Date    string
	Revenue float64
}

// SpecialistLoad aggregates appointment counts per specialist.
type SpecialistLoad struct {
	Specialist string
	Service    string
	Total      int64
	Completed  int64
}

// AppointmentRepository defines the read queries the aggregation engine
// runs plus the single status-update write.
type AppointmentRepository interface {
	CountAll(ctx context.Context) (int64, error)
	// CountInRange counts appointments whose business date falls in [from, to).
	CountInRange(ctx context.Context, from, to time.Time) (int64, error)
	CountCreatedBefore(ctx context.Context, t time.Time) (int64, error)
	CountCreatedOnOrAfter(ctx context.Context, t time.Time) (int64, error)
	// SumCompletedRevenue sums price over status=completed.
	SumCompletedRevenue(ctx context.Context) (float64, error)
	// RevenueByDay sums completed revenue per business date since the given
	// instant, ascending by date.
	RevenueByDay(ctx context.Context, since time.Time) ([]DailyRevenue, error)
	UtilizationBySpecialist(ctx context.Context) ([]SpecialistLoad, error)
	FindRecent(ctx context.Context, limit int64) ([]*domain.Appointment, error)
	// FindInRange lists appointments with business date in [from, to),
	// sorted by time slot.
	FindInRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
	// UpdateStatus sets the status and returns the document as stored
	// before the update (the caller needs the previous status for the
	// audit trail), or domain.ErrAppointmentNotFound.
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error)
}

// ServiceRepository exposes the read-only service catalogue.
type ServiceRepository interface {
	FindActive(ctx context.Context) ([]*domain.Service, error)
}
