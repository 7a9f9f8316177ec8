package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/domain/entity"
)

// CheckNoteModel represents the check_notes table in the database.
type CheckNoteModel struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CounterpartyID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind                  string          `gorm:"type:varchar(10);not null"`
	Direction             string          `gorm:"type:varchar(10);not null"`
	Amount                decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDate               time.Time       `gorm:"type:date;not null;index"`
	Status                string          `gorm:"type:varchar(10);not null;index"`
	Notes                 string          `gorm:"type:text"`
	TransactionID         *uuid.UUID      `gorm:"type:uuid"`
	ReversalTransactionID *uuid.UUID      `gorm:"type:uuid"`
	ReceivedDate          *time.Time      `gorm:"type:date"`
	CreatedAt             time.Time       `gorm:"not null"`
	UpdatedAt             time.Time       `gorm:"not null"`

	// Relationship (not loaded by default, use Preload or Joins)
	Counterparty *CounterpartyModel `gorm:"foreignKey:CounterpartyID;references:ID"`
}

// TableName returns the table name for the CheckNoteModel.
func (CheckNoteModel) TableName() string {
	return "check_notes"
}

// ToEntity converts a CheckNoteModel to a domain CheckNote entity.
func (m *CheckNoteModel) ToEntity() *entity.CheckNote {
	return &entity.CheckNote{
		ID:                    m.ID,
		CounterpartyID:        m.CounterpartyID,
		Kind:                  entity.CheckKind(m.Kind),
		Direction:             entity.CheckDirection(m.Direction),
		Amount:                m.Amount,
		DueDate:               m.DueDate,
		Status:                entity.CheckStatus(m.Status),
		Notes:                 m.Notes,
		TransactionID:         m.TransactionID,
		ReversalTransactionID: m.ReversalTransactionID,
		ReceivedDate:          m.ReceivedDate,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// CheckNoteFromEntity creates a CheckNoteModel from a domain entity.
func CheckNoteFromEntity(check *entity.CheckNote) *CheckNoteModel {
	return &CheckNoteModel{
		ID:                    check.ID,
		CounterpartyID:        check.CounterpartyID,
		Kind:                  string(check.Kind),
		Direction:             string(check.Direction),
		Amount:                check.Amount,
		DueDate:               check.DueDate,
		Status:                string(check.Status),
		Notes:                 check.Notes,
		TransactionID:         check.TransactionID,
		ReversalTransactionID: check.ReversalTransactionID,
		ReceivedDate:          check.ReceivedDate,
		CreatedAt:             check.CreatedAt,
		UpdatedAt:             check.UpdatedAt,
	}
}
