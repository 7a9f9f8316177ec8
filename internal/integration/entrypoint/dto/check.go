package dto

import (
	"time"

	"github.com/veresiye/backend/internal/domain/entity"
)

// CreateCheckRequest is the body for POST /checks.
type CreateCheckRequest struct {
	CounterpartyID  string `json:"counterpartyId" binding:"required"`
	Kind            string `json:"kind" binding:"required"`
	Direction       string `json:"direction" binding:"required"`
	Amount          string `json:"amount" binding:"required"`
	DueDate         string `json:"dueDate" binding:"required"`
	Notes           string `json:"notes"`
	ReceivedDate    string `json:"receivedDate"`
	WithTransaction bool   `json:"withTransaction"`
}

// UpdateCheckStatusRequest is the body for PATCH /checks/:id/status.
type UpdateCheckStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CheckResponse is the wire shape of a check or note.
type CheckResponse struct {
	ID                    string    `json:"id"`
	CounterpartyID        string    `json:"counterpartyId"`
	CounterpartyName      string    `json:"counterpartyName,omitempty"`
	Kind                  string    `json:"kind"`
	Direction             string    `json:"direction"`
	Amount                string    `json:"amount"`
	DueDate               string    `json:"dueDate"`
	Status                string    `json:"status"`
	Notes                 string    `json:"notes,omitempty"`
	TransactionID         *string   `json:"transactionId,omitempty"`
	ReversalTransactionID *string   `json:"reversalTransactionId,omitempty"`
	ReceivedDate          *string   `json:"receivedDate,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// ToCheckResponse converts a check entity to its wire shape.
func ToCheckResponse(check *entity.CheckNote) CheckResponse {
	response := CheckResponse{
		ID:             check.ID.String(),
		CounterpartyID: check.CounterpartyID.String(),
		Kind:           string(check.Kind),
		Direction:      string(check.Direction),
		Amount:         check.Amount.StringFixed(2),
		DueDate:        check.DueDate.Format("2006-01-02"),
		Status:         string(check.Status),
		Notes:          check.Notes,
		CreatedAt:      check.CreatedAt,
		UpdatedAt:      check.UpdatedAt,
	}
	if check.TransactionID != nil {
		id := check.TransactionID.String()
		response.TransactionID = &id
	}
	if check.ReversalTransactionID != nil {
		id := check.ReversalTransactionID.String()
		response.ReversalTransactionID = &id
	}
	if check.ReceivedDate != nil {
		date := check.ReceivedDate.Format("2006-01-02")
		response.ReceivedDate = &date
	}
	return response
}

// ToCheckListResponse converts a list of checks.
func ToCheckListResponse(checks []*entity.CheckNote) []CheckResponse {
	responses := make([]CheckResponse, len(checks))
	for i, c := range checks {
		responses[i] = ToCheckResponse(c)
	}
	return responses
}

// ToUpcomingCheckListResponse converts dashboard rows with counterparty names.
func ToUpcomingCheckListResponse(checks []*entity.CheckNoteWithCounterparty) []CheckResponse {
	responses := make([]CheckResponse, len(checks))
	for i, c := range checks {
		responses[i] = ToCheckResponse(c.CheckNote)
		responses[i].CounterpartyName = c.CounterpartyName
	}
	return responses
}
