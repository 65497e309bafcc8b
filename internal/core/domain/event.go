package domain

import "time"

// StatusChangeEvent records one appointment status mutation for the audit
// trail. ActorID is the authenticated user that requested the change.
type StatusChangeEvent struct {
	AppointmentID string
	From          AppointmentStatus
	To            AppointmentStatus
	ActorID       string
	Timestamp     time.Time
}
