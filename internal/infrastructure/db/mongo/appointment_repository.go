package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glowdesk/booking-system/internal/core/domain"
	"github.com/glowdesk/booking-system/internal/core/ports"
)

const appointmentsCollection = "appointments"

// AppointmentRepository implements ports.AppointmentRepository on MongoDB.
// The aggregation queries mirror the dashboard's read views; all of them
// run with the request context so a store outage degrades quickly.
type AppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{coll: db.Collection(appointmentsCollection)}
}

type mongoAppointment struct {
	ID          primitive.ObjectID       `bson:"_id,omitempty"`
	UserID      string                   `bson:"user_id"`
	Service     string                   `bson:"service"`
	ServiceID   string                   `bson:"service_id,omitempty"`
	Specialist  string                   `bson:"specialist"`
	Date        time.Time                `bson:"date"`
	Time        string                   `bson:"time"`
	Status      domain.AppointmentStatus `bson:"status"`
	Price       float64                  `bson:"price"`
	ClientName  string                   `bson:"client_name"`
	ClientEmail string                   `bson:"client_email"`
	ClientPhone string                   `bson:"client_phone,omitempty"`
	Notes       string                   `bson:"notes,omitempty"`
	CreatedAt   time.Time                `bson:"created_at"`
	UpdatedAt   time.Time                `bson:"updated_at"`
}

func (ma *mongoAppointment) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:          ma.ID.Hex(),
		UserID:      ma.UserID,
		Service:     ma.Service,
		ServiceID:   ma.ServiceID,
		Specialist:  ma.Specialist,
		Date:        ma.Date,
		Time:        ma.Time,
		Status:      ma.Status,
		Price:       ma.Price,
		ClientName:  ma.ClientName,
		ClientEmail: ma.ClientEmail,
		ClientPhone: ma.ClientPhone,
		Notes:       ma.Notes,
		CreatedAt:   ma.CreatedAt,
		UpdatedAt:   ma.UpdatedAt,
	}
}

func (r *AppointmentRepository) CountAll(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return n, nil
}

func (r *AppointmentRepository) CountInRange(ctx context.Context, from, to time.Time) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"date": bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return 0, fmt.Errorf("count appointments in range: %w", err)
	}
	return n, nil
}

func (r *AppointmentRepository) CountCreatedBefore(ctx context.Context, t time.Time) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$lt": t},
	})
	if err != nil {
		return 0, fmt.Errorf("count appointments created before: %w", err)
	}
	return n, nil
}

func (r *AppointmentRepository) CountCreatedOnOrAfter(ctx context.Context, t time.Time) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": t},
	})
	if err != nil {
		return 0, fmt.Errorf("count appointments created on or after: %w", err)
	}
	return n, nil
}

func (r *AppointmentRepository) SumCompletedRevenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(domain.StatusCompleted)}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$price"}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum completed revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("sum completed revenue: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *AppointmentRepository) RevenueByDay(ctx context.Context, since time.Time) ([]ports.DailyRevenue, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status": string(domain.StatusCompleted),
			"date":   bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$date"}},
			"revenue": bson.M{"$sum": "$price"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("revenue by day: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Date    string  `bson:"_id"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("revenue by day: %w", err)
	}

	out := make([]ports.DailyRevenue, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.DailyRevenue{Date: row.Date, Revenue: row.Revenue})
	}
	return out, nil
}

func (r *AppointmentRepository) UtilizationBySpecialist(ctx context.Context) ([]ports.SpecialistLoad, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":     "$specialist",
			"service": bson.M{"$max": "$service"},
			"total":   bson.M{"$sum": 1},
			"completed": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", string(domain.StatusCompleted)}}, 1, 0,
			}}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("utilization by specialist: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Specialist string `bson:"_id"`
		Service    string `bson:"service"`
		Total      int64  `bson:"total"`
		Completed  int64  `bson:"completed"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("utilization by specialist: %w", err)
	}

	out := make([]ports.SpecialistLoad, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.SpecialistLoad{
			Specialist: row.Specialist,
			Service:    row.Service,
			Total:      row.Total,
			Completed:  row.Completed,
		})
	}
	return out, nil
}

func (r *AppointmentRepository) FindRecent(ctx context.Context, limit int64) ([]*domain.Appointment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find recent appointments: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeAppointments(ctx, cursor)
}

func (r *AppointmentRepository) FindInRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{
		"date": bson.M{"$gte": from, "$lt": to},
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("find appointments in range: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeAppointments(ctx, cursor)
}

// UpdateStatus sets the new status and returns the pre-update document so
// the caller can record the transition.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var ma mongoAppointment
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("update appointment status: %w", err)
	}
	return ma.toDomain(), nil
}

// EnsureIndexes creates the indexes the dashboard queries lean on.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeAppointments(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Appointment, error) {
	var docs []mongoAppointment
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}

	out := make([]*domain.Appointment, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}
