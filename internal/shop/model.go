package shop

import (
	"time"

	"github.com/google/uuid"
)

type Shop struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Slug        string
	Description *string
	LogoURL     *string
	City        *string
	Latitude    *float64
	Longitude   *float64
	Rating      float64
	IsActive    bool
	CreatedAt   time.Time
}

// NearbyShop is a shop row annotated with its distance from the query
// point.
type NearbyShop struct {
	Shop
	DistanceKm float64
}

type RegisterShopInput struct {
	Name        string
	Description *string
	LogoURL     *string
	City        *string
	Latitude    *float64
	Longitude   *float64
}

type NearbyInput struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Limit     int
}
