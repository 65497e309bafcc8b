package domain

import "time"

// ServiceCategory classifies a bookable offering.
type ServiceCategory string

const (
	CategoryHair    ServiceCategory = "hair"
	CategorySkin    ServiceCategory = "skin"
	CategoryMassage ServiceCategory = "massage"
	CategoryNails   ServiceCategory = "nails"
	CategorySpa     ServiceCategory = "spa"
)

// Service is a bookable offering owned by a business account.
type Service struct {
	ID          string          `json:"id" bson:"_id,omitempty"`
	Name        string          `json:"name" bson:"name"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	Category    ServiceCategory `json:"category" bson:"category"`
	DurationMin int             `json:"duration" bson:"duration"`
	Price       float64         `json:"price" bson:"price"`
	Image       string          `json:"image,omitempty" bson:"image,omitempty"`
	IsActive    bool            `json:"is_active" bson:"is_active"`
	BusinessID  string          `json:"business_id,omitempty" bson:"business_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" bson:"updated_at"`
}
