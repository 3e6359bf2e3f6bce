package models

import "time"

// Vehicle belongs to exactly one customer; the first vehicle created becomes
// the primary one and set-primary swaps the flag transactionally.
type Vehicle struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Make      string    `bson:"make" json:"make"`
	Model     string    `bson:"model" json:"model"`
	Year      int       `bson:"year" json:"year"`
	VIN       string    `bson:"vin,omitempty" json:"vin,omitempty"`
	Mileage   int       `bson:"mileage,omitempty" json:"mileage,omitempty"`
	IsPrimary bool      `bson:"isPrimary" json:"isPrimary"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// VehicleInput is the create/update payload.
type VehicleInput struct {
	Make    string `json:"make" binding:"required"`
	Model   string `json:"model" binding:"required"`
	Year    int    `json:"year" binding:"required,gte=1900"`
	VIN     string `json:"vin"`
	Mileage int    `json:"mileage"`
}
