package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/glowdesk/booking-system/internal/api/metrics"
	"github.com/glowdesk/booking-system/internal/core/domain"
	"github.com/glowdesk/booking-system/internal/core/ports"
)

type auditService struct {
	events ports.StatusEventRepository
	log    zerolog.Logger
}

// NewAuditService returns the AuditService that persists status-change
// events to the audit trail.
func NewAuditService(events ports.StatusEventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{events: events, log: log}
}

func (s *auditService) Process(ctx context.Context, event domain.StatusChangeEvent) error {
	if err := s.events.InsertEvent(ctx, &event); err != nil {
		metrics.StatusEventErrorsTotal.Inc()
		return fmt.Errorf("insert status event: %w", err)
	}

	metrics.StatusEventsProcessedTotal.Inc()
	s.log.Debug().
		Str("appointment_id", event.AppointmentID).
		Str("from", string(event.From)).
		Str("to", string(event.To)).
		Msg("status change recorded")
	return nil
}
