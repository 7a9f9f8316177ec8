package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/domain/entity"
)

// ProductModel represents the products table in the database.
type ProductModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Unit      string    `gorm:"type:varchar(10);not null"`
	IsActive  bool      `gorm:"default:true"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the ProductModel.
func (ProductModel) TableName() string {
	return "products"
}

// ToEntity converts a ProductModel to a domain Product entity.
func (m *ProductModel) ToEntity() *entity.Product {
	return &entity.Product{
		ID:        m.ID,
		Name:      m.Name,
		Unit:      entity.ProductUnit(m.Unit),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

// ProductFromEntity creates a ProductModel from a domain entity.
func ProductFromEntity(product *entity.Product) *ProductModel {
	return &ProductModel{
		ID:        product.ID,
		Name:      product.Name,
		Unit:      string(product.Unit),
		IsActive:  product.IsActive,
		CreatedAt: product.CreatedAt,
	}
}

// StockAdjustmentModel represents the stock_adjustments table in the database.
type StockAdjustmentModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(15,3);not null"`
	Notes     string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the StockAdjustmentModel.
func (StockAdjustmentModel) TableName() string {
	return "stock_adjustments"
}

// ToEntity converts a StockAdjustmentModel to a domain StockAdjustment entity.
func (m *StockAdjustmentModel) ToEntity() *entity.StockAdjustment {
	return &entity.StockAdjustment{
		ID:        m.ID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

// StockAdjustmentFromEntity creates a StockAdjustmentModel from a domain entity.
func StockAdjustmentFromEntity(adjustment *entity.StockAdjustment) *StockAdjustmentModel {
	return &StockAdjustmentModel{
		ID:        adjustment.ID,
		ProductID: adjustment.ProductID,
		Quantity:  adjustment.Quantity,
		Notes:     adjustment.Notes,
		CreatedAt: adjustment.CreatedAt,
	}
}
