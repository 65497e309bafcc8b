package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/glowdesk/booking-system/internal/core/domain"
	"github.com/glowdesk/booking-system/internal/core/ports"
)

const statusEventsCollection = "status_events"

// StatusEventRepository persists status-change events to the audit trail.
type StatusEventRepository struct {
	coll *mongo.Collection
}

func NewStatusEventRepository(db *mongo.Database) ports.StatusEventRepository {
	return &StatusEventRepository{coll: db.Collection(statusEventsCollection)}
}

func (r *StatusEventRepository) InsertEvent(ctx context.Context, event *domain.StatusChangeEvent) error {
	doc := bson.M{
		"appointment_id": event.AppointmentID,
		"from":           string(event.From),
		"to":             string(event.To),
		"actor_id":       event.ActorID,
		"timestamp":      event.Timestamp.UTC(),
		"recorded_at":    time.Now().UTC(),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}
