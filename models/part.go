package models

import "time"

// Part is an inventory item. Quantity adjustments go through a transaction
// and never drop below zero.
type Part struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	SKU           string    `bson:"sku,omitempty" json:"sku,omitempty"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	Quantity      int       `bson:"quantity" json:"quantity"`
	ReorderPoint  int       `bson:"reorderPoint" json:"reorderPoint"`
	UnitCost      float64   `bson:"unitCost" json:"unitCost"`
	UnitPrice     float64   `bson:"unitPrice" json:"unitPrice"`
	Supplier      string    `bson:"supplier,omitempty" json:"supplier,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// LowStock reports whether the part is at or below its reorder point.
func (p *Part) LowStock() bool {
	return p.Quantity <= p.ReorderPoint
}

// PartInput is the create/update payload.
type PartInput struct {
	Name         string  `json:"name" binding:"required"`
	SKU          string  `json:"sku"`
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity" binding:"gte=0"`
	ReorderPoint int     `json:"reorderPoint" binding:"gte=0"`
	UnitCost     float64 `json:"unitCost" binding:"gte=0"`
	UnitPrice    float64 `json:"unitPrice" binding:"gte=0"`
	Supplier     string  `json:"supplier"`
}

// PartAdjustInput moves inventory by a signed delta.
type PartAdjustInput struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}
