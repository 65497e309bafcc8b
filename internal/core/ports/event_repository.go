package ports

import (
	"context"

	"github.com/glowdesk/booking-system/internal/core/domain"
)

// StatusEventRepository persists status-change events to the audit trail.
type StatusEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.StatusChangeEvent) error
}

// AuditService processes queued status-change events.
type AuditService interface {
	Process(ctx context.Context, event domain.StatusChangeEvent) error
}
