// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/domain/entity"
)

// CounterpartyModel represents the counterparties table in the database.
type CounterpartyModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type          string    `gorm:"type:varchar(10);not null;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Phone         string    `gorm:"type:varchar(32)"`
	TaxNumber     string    `gorm:"type:varchar(32)"`
	TaxOffice     string    `gorm:"type:varchar(128)"`
	PaymentDueDay *int      `gorm:"type:integer"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the CounterpartyModel.
func (CounterpartyModel) TableName() string {
	return "counterparties"
}

// ToEntity converts a CounterpartyModel to a domain Counterparty entity.
func (m *CounterpartyModel) ToEntity() *entity.Counterparty {
	return &entity.Counterparty{
		ID:            m.ID,
		Type:          entity.CounterpartyType(m.Type),
		Name:          m.Name,
		Phone:         m.Phone,
		TaxNumber:     m.TaxNumber,
		TaxOffice:     m.TaxOffice,
		PaymentDueDay: m.PaymentDueDay,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// CounterpartyFromEntity creates a CounterpartyModel from a domain entity.
func CounterpartyFromEntity(counterparty *entity.Counterparty) *CounterpartyModel {
	return &CounterpartyModel{
		ID:            counterparty.ID,
		Type:          string(counterparty.Type),
		Name:          counterparty.Name,
		Phone:         counterparty.Phone,
		TaxNumber:     counterparty.TaxNumber,
		TaxOffice:     counterparty.TaxOffice,
		PaymentDueDay: counterparty.PaymentDueDay,
		CreatedAt:     counterparty.CreatedAt,
		UpdatedAt:     counterparty.UpdatedAt,
	}
}
