package dto

import (
	"time"

	"github.com/veresiye/backend/internal/domain/entity"
)

// CreateCounterpartyRequest is the body for POST /counterparties.
type CreateCounterpartyRequest struct {
	Type          string `json:"type" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	TaxNumber     string `json:"taxNumber"`
	TaxOffice     string `json:"taxOffice"`
	PaymentDueDay *int   `json:"paymentDueDay"`
}

// UpdateCounterpartyRequest is the body for PUT /counterparties/:id.
type UpdateCounterpartyRequest struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	TaxNumber     string `json:"taxNumber"`
	TaxOffice     string `json:"taxOffice"`
	PaymentDueDay *int   `json:"paymentDueDay"`
}

// CounterpartyResponse is the wire shape of a counterparty.
type CounterpartyResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	TaxNumber     string    `json:"taxNumber,omitempty"`
	TaxOffice     string    `json:"taxOffice,omitempty"`
	PaymentDueDay *int      `json:"paymentDueDay,omitempty"`
	Balance       *string   `json:"balance,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToCounterpartyResponse converts a counterparty entity to its wire shape.
func ToCounterpartyResponse(counterparty *entity.Counterparty) CounterpartyResponse {
	return CounterpartyResponse{
		ID:            counterparty.ID.String(),
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

// ToCounterpartyWithBalanceResponse converts a counterparty with its derived
// balance. Balances travel as fixed 2-decimal strings, never floats.
func ToCounterpartyWithBalanceResponse(cp *entity.CounterpartyWithBalance) CounterpartyResponse {
	response := ToCounterpartyResponse(cp.Counterparty)
	balance := cp.Balance.StringFixed(2)
	response.Balance = &balance
	return response
}

// ToCounterpartyListResponse converts a list of counterparties with balances.
func ToCounterpartyListResponse(counterparties []*entity.CounterpartyWithBalance) []CounterpartyResponse {
	responses := make([]CounterpartyResponse, len(counterparties))
	for i, cp := range counterparties {
		responses[i] = ToCounterpartyWithBalanceResponse(cp)
	}
	return responses
}
