package models

import "time"

// Service is a bookable catalog entry. Once referenced by a booking it is
// only ever soft-deactivated, never edited destructively; bookings carry
// their own denormalized name and price.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Minutes     int       `bson:"minutes" json:"minutes"`
	Price       float64   `bson:"price" json:"price"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ServiceInput is the admin create/update payload.
type ServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Minutes     int     `json:"minutes" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
}
