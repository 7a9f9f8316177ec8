package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockAdjustment is a manual correction to a product's stock level,
// independent of any transaction. Quantity is signed: positive adds stock,
// negative removes it. Adjustments form an append-only correction log.
type StockAdjustment struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	Notes     string
	CreatedAt time.Time
}

// NewStockAdjustment creates a new StockAdjustment entity.
func NewStockAdjustment(productID uuid.UUID, quantity decimal.Decimal, notes string) *StockAdjustment {
	return &StockAdjustment{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
}
