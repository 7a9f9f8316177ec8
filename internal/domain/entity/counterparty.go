// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CounterpartyType identifies which side of the ledger a party sits on.
// The type is fixed for the lifetime of the record: balance sign semantics
// depend on it.
type CounterpartyType string

const (
	CounterpartyTypeCustomer CounterpartyType = "customer"
	CounterpartyTypeSupplier CounterpartyType = "supplier"
)

// Counterparty represents a customer or supplier the business transacts with.
type Counterparty struct {
	ID            uuid.UUID
	Type          CounterpartyType
	Name          string
	Phone         string
	TaxNumber     string
	TaxOffice     string
	PaymentDueDay *int // Day of month (1-31) payments are expected, if agreed
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCounterparty creates a new Counterparty entity.
func NewCounterparty(partyType CounterpartyType, name, phone, taxNumber, taxOffice string, paymentDueDay *int) *Counterparty {
	now := time.Now().UTC()

	return &Counterparty{
		ID:            uuid.New(),
		Type:          partyType,
		Name:          name,
		Phone:         phone,
		TaxNumber:     taxNumber,
		TaxOffice:     taxOffice,
		PaymentDueDay: paymentDueDay,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CounterpartyWithBalance pairs a counterparty with its derived running balance.
// The balance is never stored; it is recomputed from the transaction log on
// every read.
type CounterpartyWithBalance struct {
	Counterparty *Counterparty
	Balance      decimal.Decimal
}
