package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/domain/entity"
)

// TransactionItemModel represents the transaction_items table in the database.
type TransactionItemModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Quantity      decimal.Decimal  `gorm:"type:decimal(15,3);not null"`
	UnitPrice     *decimal.Decimal `gorm:"type:decimal(15,2)"`
}

// TableName returns the table name for the TransactionItemModel.
func (TransactionItemModel) TableName() string {
	return "transaction_items"
}

// ToEntity converts a TransactionItemModel to a domain TransactionItem entity.
func (m *TransactionItemModel) ToEntity() *entity.TransactionItem {
	return &entity.TransactionItem{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
	}
}

// TransactionItemFromEntity creates a TransactionItemModel from a domain entity.
func TransactionItemFromEntity(item *entity.TransactionItem) *TransactionItemModel {
	return &TransactionItemModel{
		ID:            item.ID,
		TransactionID: item.TransactionID,
		ProductID:     item.ProductID,
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
	}
}
