package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowdesk/booking-system/internal/core/domain"
	"github.com/glowdesk/booking-system/internal/core/ports"
)

// stubAppointmentRepo returns canned values, or fails every call when err
// is set.
type stubAppointmentRepo struct {
	err error

	total, today int64
	prev, curr   int64
	revenue      float64
	recent       []*domain.Appointment
	daily        []ports.DailyRevenue
	loads        []ports.SpecialistLoad
	inRange      []*domain.Appointment

	updated      *domain.Appointment
	updateErr    error
	updateCalled bool
	lastStatus   domain.AppointmentStatus
}

func (r *stubAppointmentRepo) CountAll(context.Context) (int64, error) {
	return r.total, r.err
}

func (r *stubAppointmentRepo) CountInRange(context.Context, time.Time, time.Time) (int64, error) {
	return r.today, r.err
}

func (r *stubAppointmentRepo) CountCreatedBefore(context.Context, time.Time) (int64, error) {
	return r.prev, r.err
}

func (r *stubAppointmentRepo) CountCreatedOnOrAfter(context.Context, time.Time) (int64, error) {
	return r.curr, r.err
}

func (r *stubAppointmentRepo) SumCompletedRevenue(context.Context) (float64, error) {
	return r.revenue, r.err
}

func (r *stubAppointmentRepo) RevenueByDay(context.Context, time.Time) ([]ports.DailyRevenue, error) {
	return r.daily, r.err
}

func (r *stubAppointmentRepo) UtilizationBySpecialist(context.Context) ([]ports.SpecialistLoad, error) {
	return r.loads, r.err
}

func (r *stubAppointmentRepo) FindRecent(context.Context, int64) ([]*domain.Appointment, error) {
	return r.recent, r.err
}

func (r *stubAppointmentRepo) FindInRange(context.Context, time.Time, time.Time) ([]*domain.Appointment, error) {
	return r.inRange, r.err
}

func (r *stubAppointmentRepo) UpdateStatus(_ context.Context, _ string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	r.updateCalled = true
	r.lastStatus = status
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	return r.updated, nil
}

type stubServiceRepo struct {
	services []*domain.Service
	err      error
}

func (r *stubServiceRepo) FindActive(context.Context) ([]*domain.Service, error) {
	return r.services, r.err
}

type stubQueue struct {
	events []domain.StatusChangeEvent
}

func (q *stubQueue) Enqueue(event domain.StatusChangeEvent) {
	q.events = append(q.events, event)
}

func newTestDashboard(appts *stubAppointmentRepo, users *stubUserRepo, svcs *stubServiceRepo, q *stubQueue) *DashboardService {
	if users == nil {
		users = newStubUserRepo()
	}
	if svcs == nil {
		svcs = &stubServiceRepo{}
	}
	if q == nil {
		q = &stubQueue{}
	}
	return NewDashboardService(appts, users, svcs, q, zerolog.Nop())
}

func TestDashboardService_Stats_Success(t *testing.T) {
	appts := &stubAppointmentRepo{
		total:   42,
		today:   3,
		prev:    100,
		curr:    150,
		revenue: 1234.5,
		recent:  []*domain.Appointment{{ID: "a1"}, {ID: "a2"}},
	}
	users := newStubUserRepo()
	for _, email := range []string{"c1@x.com", "c2@x.com"} {
		if _, err := users.Create(context.Background(), &domain.User{Email: email, Role: domain.RoleClient}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	result, err := newTestDashboard(appts, users, nil, nil).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if result.Stats.TotalRevenue != "1234.50" {
		t.Fatalf("expected two-decimal revenue, got %q", result.Stats.TotalRevenue)
	}
	if result.Stats.TotalAppointments != 42 || result.Stats.TodayAppointments != 3 {
		t.Fatalf("unexpected counts: %+v", result.Stats)
	}
	if result.Stats.ActiveClients != 2 {
		t.Fatalf("expected 2 active clients, got %d", result.Stats.ActiveClients)
	}
	if result.Stats.Growth != 50.0 {
		t.Fatalf("expected 50.0 growth, got %v", result.Stats.Growth)
	}
	if len(result.Recent) != 2 {
		t.Fatalf("expected recent appointments to pass through")
	}
}

func TestDashboardService_Stats_FallbackOnAnyFailure(t *testing.T) {
	appts := &stubAppointmentRepo{err: errors.New("store down")}

	result, err := newTestDashboard(appts, nil, nil, nil).Stats(context.Background())
	if err != nil {
		t.Fatalf("degraded Stats must not error, got %v", err)
	}

	want := fallbackStats()
	if result.Stats != want.Stats {
		t.Fatalf("expected fallback stats %+v, got %+v", want.Stats, result.Stats)
	}
	if len(result.Recent) != len(want.Recent) {
		t.Fatalf("expected fallback recent list, got %d items", len(result.Recent))
	}
}

func TestDashboardService_Revenue_WeekdayLabels(t *testing.T) {
	appts := &stubAppointmentRepo{
		daily: []ports.DailyRevenue{
			{Date: "2026-08-24", Revenue: 10.5}, // a Monday
			{Date: "2026-08-25", Revenue: 20},   // a Tuesday
			{Date: "not-a-date", Revenue: 1},
		},
	}

	points, err := newTestDashboard(appts, nil, nil, nil).Revenue(context.Background(), 7)
	if err != nil {
		t.Fatalf("Revenue failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Name != "Mon" || points[0].Revenue != 10.5 {
		t.Fatalf("unexpected first point: %+v", points[0])
	}
	if points[1].Name != "Tue" {
		t.Fatalf("unexpected second point: %+v", points[1])
	}
	// Unparseable bucket keys pass through unchanged.
	if points[2].Name != "not-a-date" {
		t.Fatalf("unexpected third point: %+v", points[2])
	}
}

func TestDashboardService_Revenue_Fallback(t *testing.T) {
	appts := &stubAppointmentRepo{err: errors.New("store down")}

	points, err := newTestDashboard(appts, nil, nil, nil).Revenue(context.Background(), 7)
	if err != nil {
		t.Fatalf("degraded Revenue must not error, got %v", err)
	}
	want := fallbackRevenue()
	if len(points) != len(want) || points[0] != want[0] {
		t.Fatalf("expected fallback revenue series, got %+v", points)
	}
}

func TestDashboardService_Staff_ComputesCompletedShare(t *testing.T) {
	appts := &stubAppointmentRepo{
		loads: []ports.SpecialistLoad{
			{Specialist: "Emma W.", Service: "Hair", Total: 10, Completed: 9},
			{Specialist: "New Hire", Service: "Nails", Total: 0, Completed: 0},
		},
	}

	staff, err := newTestDashboard(appts, nil, nil, nil).Staff(context.Background())
	if err != nil {
		t.Fatalf("Staff failed: %v", err)
	}
	if staff[0].Name != "Emma W." || staff[0].Role != "Hair" || staff[0].Value != 90 {
		t.Fatalf("unexpected first entry: %+v", staff[0])
	}
	if staff[1].Value != 0 {
		t.Fatalf("zero-total specialist must compute 0, got %d", staff[1].Value)
	}
}

func TestDashboardService_Today_Fallback(t *testing.T) {
	appts := &stubAppointmentRepo{err: errors.New("store down")}

	items, err := newTestDashboard(appts, nil, nil, nil).TodayAppointments(context.Background())
	if err != nil {
		t.Fatalf("degraded Today must not error, got %v", err)
	}
	if len(items) != len(fallbackToday()) {
		t.Fatalf("expected fallback appointments, got %d", len(items))
	}
}

func TestDashboardService_Services_Fallback(t *testing.T) {
	svcs := &stubServiceRepo{err: errors.New("store down")}

	items, err := newTestDashboard(&stubAppointmentRepo{}, nil, svcs, nil).Services(context.Background())
	if err != nil {
		t.Fatalf("degraded Services must not error, got %v", err)
	}
	if len(items) != len(fallbackServices()) {
		t.Fatalf("expected fallback catalogue, got %d", len(items))
	}
}

func TestDashboardService_UpdateStatus_Success(t *testing.T) {
	previous := &domain.Appointment{ID: "a1", Status: domain.StatusPending, ClientName: "Jess"}
	appts := &stubAppointmentRepo{updated: previous}
	q := &stubQueue{}

	updated, err := newTestDashboard(appts, nil, nil, q).UpdateAppointmentStatus(
		context.Background(), "a1", domain.StatusConfirmed, "admin-1")
	if err != nil {
		t.Fatalf("UpdateAppointmentStatus failed: %v", err)
	}
	if updated.Status != domain.StatusConfirmed {
		t.Fatalf("expected confirmed status, got %q", updated.Status)
	}
	if updated.ClientName != "Jess" {
		t.Fatalf("expected remaining fields to carry over")
	}

	if len(q.events) != 1 {
		t.Fatalf("expected one audit event, got %d", len(q.events))
	}
	event := q.events[0]
	if event.AppointmentID != "a1" || event.From != domain.StatusPending || event.To != domain.StatusConfirmed || event.ActorID != "admin-1" {
		t.Fatalf("unexpected audit event: %+v", event)
	}
}

func TestDashboardService_UpdateStatus_OffGraphJumpStillApplies(t *testing.T) {
	// The transition graph is advisory: a cancelled -> completed jump is
	// logged but not rejected.
	previous := &domain.Appointment{ID: "a1", Status: domain.StatusCancelled}
	appts := &stubAppointmentRepo{updated: previous}
	q := &stubQueue{}

	updated, err := newTestDashboard(appts, nil, nil, q).UpdateAppointmentStatus(
		context.Background(), "a1", domain.StatusCompleted, "admin-1")
	if err != nil {
		t.Fatalf("off-graph update must still apply, got %v", err)
	}
	if updated.Status != domain.StatusCompleted {
		t.Fatalf("expected completed, got %q", updated.Status)
	}
	if len(q.events) != 1 || q.events[0].From != domain.StatusCancelled {
		t.Fatalf("expected audit event recording the jump, got %+v", q.events)
	}
}

func TestDashboardService_UpdateStatus_UnknownStatus(t *testing.T) {
	appts := &stubAppointmentRepo{}

	_, err := newTestDashboard(appts, nil, nil, nil).UpdateAppointmentStatus(
		context.Background(), "a1", "archived", "admin-1")
	if err != domain.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if appts.updateCalled {
		t.Fatalf("invalid status must not reach the repository")
	}
}

func TestDashboardService_UpdateStatus_NotFoundNeverFallsBack(t *testing.T) {
	appts := &stubAppointmentRepo{updateErr: domain.ErrAppointmentNotFound}
	q := &stubQueue{}

	_, err := newTestDashboard(appts, nil, nil, q).UpdateAppointmentStatus(
		context.Background(), "missing", domain.StatusConfirmed, "admin-1")
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
	if len(q.events) != 0 {
		t.Fatalf("failed update must not emit audit events")
	}
}

func TestGrowthPercent(t *testing.T) {
	cases := []struct {
		prev, curr int64
		want       float64
	}{
		{0, 5, 0},     // no baseline, no growth signal
		{100, 150, 50},
		{150, 100, -33.3},
		{3, 4, 33.3},
		{10, 10, 0},
	}

	for _, tc := range cases {
		if got := growthPercent(tc.prev, tc.curr); got != tc.want {
			t.Errorf("growthPercent(%d, %d) = %v, want %v", tc.prev, tc.curr, got, tc.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := formatAmount(31); got != "31.00" {
		t.Fatalf("expected 31.00, got %q", got)
	}
	if got := formatAmount(1234.5); got != "1234.50" {
		t.Fatalf("expected 1234.50, got %q", got)
	}
	if got := formatAmount(0); got != "0.00" {
		t.Fatalf("expected 0.00, got %q", got)
	}
}

func TestWeekdayLabel(t *testing.T) {
	if got := weekdayLabel("2026-08-30"); got != "Sun" {
		t.Fatalf("expected Sun, got %q", got)
	}
	if got := weekdayLabel("bogus"); got != "bogus" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}
