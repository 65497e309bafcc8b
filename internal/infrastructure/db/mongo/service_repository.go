package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/glowdesk/booking-system/internal/core/domain"
)

const servicesCollection = "services"

// ServiceRepository implements ports.ServiceRepository on MongoDB.
type ServiceRepository struct {
	coll *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{coll: db.Collection(servicesCollection)}
}

type mongoService struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty"`
	Name        string                 `bson:"name"`
	Description string                 `bson:"description,omitempty"`
	Category    domain.ServiceCategory `bson:"category"`
	DurationMin int                    `bson:"duration"`
	Price       float64                `bson:"price"`
	Image       string                 `bson:"image,omitempty"`
	IsActive    bool                   `bson:"is_active"`
	BusinessID  string                 `bson:"business_id,omitempty"`
	CreatedAt   time.Time              `bson:"created_at"`
	UpdatedAt   time.Time              `bson:"updated_at"`
}

func (r *ServiceRepository) FindActive(ctx context.Context) ([]*domain.Service, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("find active services: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoService
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}

	out := make([]*domain.Service, 0, len(docs))
	for _, doc := range docs {
		out = append(out, &domain.Service{
			ID:          doc.ID.Hex(),
			Name:        doc.Name,
			Description: doc.Description,
			Category:    doc.Category,
			DurationMin: doc.DurationMin,
			Price:       doc.Price,
			Image:       doc.Image,
			IsActive:    doc.IsActive,
			BusinessID:  doc.BusinessID,
			CreatedAt:   doc.CreatedAt,
			UpdatedAt:   doc.UpdatedAt,
		})
	}
	return out, nil
}
