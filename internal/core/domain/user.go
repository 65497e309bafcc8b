package domain

import (
	"errors"
	"time"
)

const (
	RoleClient   = "client"
	RoleBusiness = "business"
	RoleAdmin    = "admin"
)

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

var ErrUserExists = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailAlreadyLinked = errors.New("email already linked to a local account")
var ErrInvalidToken = errors.New("invalid token")
var ErrOAuthNotConfigured = errors.New("google auth is not configured")
var ErrInvalidOAuthState = errors.New("invalid oauth state")

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleBusiness || role == RoleAdmin
}

// DayHours describes opening hours for a single weekday.
type DayHours struct {
	Open     string `json:"open,omitempty" bson:"open,omitempty"`
	Close    string `json:"close,omitempty" bson:"close,omitempty"`
	IsClosed bool   `json:"is_closed" bson:"is_closed"`
}

// Location is a business street address.
type Location struct {
	Address string `json:"address,omitempty" bson:"address,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty" bson:"zip_code,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

// BusinessProfile groups the fields that only exist on business accounts.
type BusinessProfile struct {
	Name          string              `json:"name,omitempty" bson:"name,omitempty"`
	Email         string              `json:"email,omitempty" bson:"email,omitempty"`
	Phone         string              `json:"phone,omitempty" bson:"phone,omitempty"`
	Location      Location            `json:"location,omitempty" bson:"location,omitempty"`
	ServiceHours  map[string]DayHours `json:"service_hours,omitempty" bson:"service_hours,omitempty"`
	OperatingDays []string            `json:"operating_days,omitempty" bson:"operating_days,omitempty"`
	Images        []string            `json:"images,omitempty" bson:"images,omitempty"`
}

// User models an authenticated actor. Exactly one of PasswordHash and
// GoogleID determines how the record authenticates: local accounts carry a
// hash and no GoogleID, Google accounts the reverse.
type User struct {
	ID           string           `json:"id"`
	Email        string           `json:"email"`
	PasswordHash string           `json:"-"`
	Name         string           `json:"name"`
	Role         string           `json:"role"`
	Avatar       string           `json:"avatar,omitempty"`
	GoogleID     string           `json:"-"`
	AuthProvider string           `json:"auth_provider"`
	Business     *BusinessProfile `json:"business,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	IsActive     bool             `json:"is_active"`
	LastLogin    time.Time        `json:"last_login,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
