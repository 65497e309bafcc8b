package ports

import (
	"context"

	"github.com/glowdesk/booking-system/internal/core/domain"
)

// StatsSummary is the dashboard headline block. TotalRevenue is rendered
// with two-decimal precision so real and fallback payloads share one shape.
type StatsSummary struct {
	TotalRevenue      string
	TotalAppointments int64
	ActiveClients     int64
	TodayAppointments int64
	Growth            float64
}

// StatsResult bundles the summary with the most recent appointments.
type StatsResult struct {
	Stats  StatsSummary
	Recent []*domain.Appointment
}

// RevenuePoint is one chart bucket labeled with its weekday short name.
type RevenuePoint struct {
	Name    string
	Revenue float64
}

// StaffUtilization is the per-specialist load view. Value is the completed
// share of that specialist's appointments, in percent.
type StaffUtilization struct {
	Name  string
	Role  string
	Value int
}

// DashboardService computes derived views over the appointment and user
// stores. Read methods substitute a documented fallback payload on any
// store failure instead of returning an error; only UpdateAppointmentStatus
// propagates failures to the caller.
type DashboardService interface {
	Stats(ctx context.Context) (*StatsResult, error)
	Revenue(ctx context.Context, days int) ([]RevenuePoint, error)
	Staff(ctx context.Context) ([]StaffUtilization, error)
	TodayAppointments(ctx context.Context) ([]*domain.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id string, status domain.AppointmentStatus, actorID string) (*domain.Appointment, error)
	Services(ctx context.Context) ([]*domain.Service, error)
}
