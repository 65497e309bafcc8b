package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// validTransitions defines the expected state machine. The update endpoint
// does not enforce this graph; off-graph jumps are logged, not rejected.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

var ErrAppointmentNotFound = errors.New("appointment not found")
var ErrInvalidStatus = errors.New("invalid appointment status")

// ValidStatus reports whether s is a member of the closed status enum.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next follows the graph.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s admits no further transitions.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment is a scheduled service instance. Date carries the business
// day of the booking; Time is the display slot ("10:30 AM"). CreatedAt is
// used for growth calculations, Date for revenue bucketing.
type Appointment struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	UserID      string            `json:"user_id" bson:"user_id"`
	Service     string            `json:"service" bson:"service"`
	ServiceID   string            `json:"service_id,omitempty" bson:"service_id,omitempty"`
	Specialist  string            `json:"specialist" bson:"specialist"`
	Date        time.Time         `json:"date" bson:"date"`
	Time        string            `json:"time" bson:"time"`
	Status      AppointmentStatus `json:"status" bson:"status"`
	Price       float64           `json:"price" bson:"price"`
	ClientName  string            `json:"client_name" bson:"client_name"`
	ClientEmail string            `json:"client_email" bson:"client_email"`
	ClientPhone string            `json:"client_phone,omitempty" bson:"client_phone,omitempty"`
	Notes       string            `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}
