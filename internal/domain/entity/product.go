package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductUnit is the unit a product's stock is tracked in.
type ProductUnit string

const (
	ProductUnitKg   ProductUnit = "kg"
	ProductUnitKasa ProductUnit = "kasa"
	ProductUnitAdet ProductUnit = "adet"
)

// Product is a stock-tracked good. Name uniqueness is case- and
// trim-insensitive. Products with transaction history are deactivated
// instead of deleted.
type Product struct {
	ID        uuid.UUID
	Name      string
	Unit      ProductUnit
	IsActive  bool
	CreatedAt time.Time
}

// NewProduct creates a new active Product entity.
func NewProduct(name string, unit ProductUnit) *Product {
	return &Product{
		ID:        uuid.New(),
		Name:      name,
		Unit:      unit,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

// ProductWithStock pairs a product with its derived current stock level.
// Like balances, stock is never stored and is recomputed on every read.
type ProductWithStock struct {
	Product *Product
	Stock   decimal.Decimal
}
