package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/glowdesk/booking-system/internal/api/metrics"
	"github.com/glowdesk/booking-system/internal/core/domain"
	"github.com/glowdesk/booking-system/internal/core/ports"
)

const (
	defaultRevenuePeriodDays = 7
	maxRevenuePeriodDays     = 90
	recentAppointmentsLimit  = 10
)

// EventQueue is the async sink for status-change audit events.
type EventQueue interface {
	Enqueue(event domain.StatusChangeEvent)
}

// DashboardService is the aggregation engine behind the dashboard surface.
// Every read view degrades to a documented synthetic payload when any of
// its store queries fails; the caller only learns about the degradation
// through server-side logs and the fallback metric. The status-update
// write path is the exception: its failures surface to the caller.
type DashboardService struct {
	appointments ports.AppointmentRepository
	users        ports.UserRepository
	services     ports.ServiceRepository
	audit        EventQueue
	log          zerolog.Logger
}

func NewDashboardService(
	appointments ports.AppointmentRepository,
	users ports.UserRepository,
	services ports.ServiceRepository,
	audit EventQueue,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		appointments: appointments,
		users:        users,
		services:     services,
		audit:        audit,
		log:          log,
	}
}

// Stats computes the headline summary. The seven underlying queries are
// independent and run concurrently; a failure of any one of them degrades
// the whole response to the fallback payload — never a half-real mix.
func (s *DashboardService) Stats(ctx context.Context) (*ports.StatsResult, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := todayStart.AddDate(0, 0, 1)
	monthAgo := todayStart.AddDate(0, -1, 0)

	var (
		clients, total, today int64
		prev, curr            int64
		revenue               float64
		recent                []*domain.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		clients, err = s.users.CountByRole(gctx, domain.RoleClient)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.appointments.CountAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		today, err = s.appointments.CountInRange(gctx, todayStart, tomorrow)
		return err
	})
	g.Go(func() (err error) {
		revenue, err = s.appointments.SumCompletedRevenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		prev, err = s.appointments.CountCreatedBefore(gctx, monthAgo)
		return err
	})
	g.Go(func() (err error) {
		curr, err = s.appointments.CountCreatedOnOrAfter(gctx, monthAgo)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.appointments.FindRecent(gctx, recentAppointmentsLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return s.degraded("stats", err, fallbackStats()), nil
	}

	return &ports.StatsResult{
		Stats: ports.StatsSummary{
			TotalRevenue:      formatAmount(revenue),
			TotalAppointments: total,
			ActiveClients:     clients,
			TodayAppointments: today,
			Growth:            growthPercent(prev, curr),
		},
		Recent: recent,
	}, nil
}

// Revenue returns the completed-revenue series for the lookback window,
// bucketed by business date and labeled with weekday short names.
func (s *DashboardService) Revenue(ctx context.Context, days int) ([]ports.RevenuePoint, error) {
	if days <= 0 {
		days = defaultRevenuePeriodDays
	}
	if days > maxRevenuePeriodDays {
		days = maxRevenuePeriodDays
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := todayStart.AddDate(0, 0, -days)

	rows, err := s.appointments.RevenueByDay(ctx, since)
	if err != nil {
		s.logDegraded("revenue", err)
		return fallbackRevenue(), nil
	}

	points := make([]ports.RevenuePoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, ports.RevenuePoint{
			Name:    weekdayLabel(row.Date),
			Revenue: row.Revenue,
		})
	}
	return points, nil
}

// Staff derives per-specialist utilization from appointment records: the
// completed share of each specialist's bookings, in percent.
func (s *DashboardService) Staff(ctx context.Context) ([]ports.StaffUtilization, error) {
	loads, err := s.appointments.UtilizationBySpecialist(ctx)
	if err != nil {
		s.logDegraded("staff", err)
		return fallbackStaff(), nil
	}

	out := make([]ports.StaffUtilization, 0, len(loads))
	for _, load := range loads {
		value := 0
		if load.Total > 0 {
			value = int(load.Completed * 100 / load.Total)
		}
		out = append(out, ports.StaffUtilization{
			Name:  load.Specialist,
			Role:  load.Service,
			Value: value,
		})
	}
	return out, nil
}

// TodayAppointments lists appointments with a business date inside the
// current local calendar day, sorted by time slot.
func (s *DashboardService) TodayAppointments(ctx context.Context) ([]*domain.Appointment, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	appointments, err := s.appointments.FindInRange(ctx, todayStart, todayStart.AddDate(0, 0, 1))
	if err != nil {
		s.logDegraded("today", err)
		return fallbackToday(), nil
	}
	return appointments, nil
}

// UpdateAppointmentStatus applies a status mutation. Unlike the read views
// this never falls back: an unknown id or store failure must reach the
// caller. The transition graph is not enforced — off-graph jumps are
// logged and the audit trail records them.
func (s *DashboardService) UpdateAppointmentStatus(ctx context.Context, id string, status domain.AppointmentStatus, actorID string) (*domain.Appointment, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	previous, err := s.appointments.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	from := previous.Status
	if from != status && !from.CanTransitionTo(status) {
		s.log.Warn().
			Str("appointment_id", id).
			Str("from", string(from)).
			Str("to", string(status)).
			Msg("status jump outside expected transition graph")
	}

	now := time.Now().UTC()
	s.audit.Enqueue(domain.StatusChangeEvent{
		AppointmentID: id,
		From:          from,
		To:            status,
		ActorID:       actorID,
		Timestamp:     now,
	})
	metrics.AppointmentStatusUpdatesTotal.WithLabelValues(string(status)).Inc()

	updated := *previous
	updated.Status = status
	updated.UpdatedAt = now
	return &updated, nil
}

// Services lists the active service catalogue.
func (s *DashboardService) Services(ctx context.Context) ([]*domain.Service, error) {
	services, err := s.services.FindActive(ctx)
	if err != nil {
		s.logDegraded("services", err)
		return fallbackServices(), nil
	}
	return services, nil
}

func (s *DashboardService) degraded(view string, err error, fallback *ports.StatsResult) *ports.StatsResult {
	s.logDegraded(view, err)
	return fallback
}

func (s *DashboardService) logDegraded(view string, err error) {
	s.log.Error().Err(err).Str("view", view).Msg("dashboard query failed, serving fallback")
	metrics.DashboardFallbacksTotal.WithLabelValues(view).Inc()
}

// growthPercent computes month-over-month growth rounded to one decimal.
// Zero previous volume yields 0, not a division blow-up.
func growthPercent(prev, curr int64) float64 {
	if prev <= 0 {
		return 0
	}
	return math.Round(float64(curr-prev)/float64(prev)*1000) / 10
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// weekdayLabel maps a YYYY-MM-DD bucket key to its weekday short name.
// Unparseable keys fall through unchanged rather than dropping the bucket.
func weekdayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon")
}
