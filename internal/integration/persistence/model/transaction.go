package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// Deletes are hard: a removed transaction must stop contributing to the
// derived balance immediately, so soft-delete rows would poison the fold.
type TransactionModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CounterpartyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type           string          `gorm:"type:varchar(10);not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description    string          `gorm:"type:varchar(255)"`
	TxDate         time.Time       `gorm:"type:date;not null;index"`
	// Unique so at most one compensating row can ever reference an
	// original, even under concurrent writers. NULLs do not collide.
	ReversedOf     *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	CreatedAt      time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Counterparty *CounterpartyModel      `gorm:"foreignKey:CounterpartyID;references:ID"`
	Items        []*TransactionItemModel `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	transaction := &entity.Transaction{
		ID:             m.ID,
		CounterpartyID: m.CounterpartyID,
		Type:           entity.TxType(m.Type),
		Amount:         m.Amount,
		Description:    m.Description,
		TxDate:         m.TxDate,
		ReversedOf:     m.ReversedOf,
		CreatedAt:      m.CreatedAt,
	}
	for _, im := range m.Items {
		transaction.Items = append(transaction.Items, im.ToEntity())
	}
	return transaction
}

// TransactionFromEntity creates a TransactionModel from a domain entity.
// Items are intentionally not mapped; repositories insert them explicitly
// inside the same write scope.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:             transaction.ID,
		CounterpartyID: transaction.CounterpartyID,
		Type:           string(transaction.Type),
		Amount:         transaction.Amount,
		Description:    transaction.Description,
		TxDate:         transaction.TxDate,
		ReversedOf:     transaction.ReversedOf,
		CreatedAt:      transaction.CreatedAt,
	}
}
