package dto

import (
	"time"

	"github.com/veresiye/backend/internal/domain/entity"
)

// TransactionItemRequest is one line item in a create-transaction body.
type TransactionItemRequest struct {
	ProductID   *string `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    string  `json:"quantity" binding:"required"`
	UnitPrice   *string `json:"unitPrice"`
}

// CreateTransactionRequest is the body for POST /transactions. Amounts and
// quantities travel as decimal strings to avoid binary-float drift.
type CreateTransactionRequest struct {
	CounterpartyID   *string                  `json:"counterpartyId"`
	CounterpartyName string                   `json:"counterpartyName"`
	CounterpartyType string                   `json:"counterpartyType"`
	Type             string                   `json:"type" binding:"required"`
	Amount           string                   `json:"amount" binding:"required"`
	Description      string                   `json:"description"`
	TxDate           string                   `json:"txDate" binding:"required"`
	Items            []TransactionItemRequest `json:"items"`
}

// TransactionItemResponse is the wire shape of a line item.
type TransactionItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Quantity  string  `json:"quantity"`
	UnitPrice *string `json:"unitPrice,omitempty"`
}

// TransactionResponse is the wire shape of a transaction.
type TransactionResponse struct {
	ID             string                    `json:"id"`
	CounterpartyID string                    `json:"counterpartyId"`
	Type           string                    `json:"type"`
	Amount         string                    `json:"amount"`
	Description    string                    `json:"description,omitempty"`
	TxDate         string                    `json:"txDate"`
	ReversedOf     *string                   `json:"reversedOf,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
	Items          []TransactionItemResponse `json:"items,omitempty"`
}

// LedgerResponse is a counterparty's transaction list with its balance.
type LedgerResponse struct {
	Counterparty CounterpartyResponse  `json:"counterparty"`
	Transactions []TransactionResponse `json:"transactions"`
	Balance      string                `json:"balance"`
}

// ToTransactionResponse converts a transaction entity to its wire shape.
func ToTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:             transaction.ID.String(),
		CounterpartyID: transaction.CounterpartyID.String(),
		Type:           string(transaction.Type),
		Amount:         transaction.Amount.StringFixed(2),
		Description:    transaction.Description,
		TxDate:         transaction.TxDate.Format("2006-01-02"),
		CreatedAt:      transaction.CreatedAt,
	}
	if transaction.ReversedOf != nil {
		reversedOf := transaction.ReversedOf.String()
		response.ReversedOf = &reversedOf
	}
	for _, item := range transaction.Items {
		response.Items = append(response.Items, ToTransactionItemResponse(item))
	}
	return response
}

// ToTransactionItemResponse converts a line item entity to its wire shape.
func ToTransactionItemResponse(item *entity.TransactionItem) TransactionItemResponse {
	response := TransactionItemResponse{
		ID:        item.ID.String(),
		ProductID: item.ProductID.String(),
		Quantity:  item.Quantity.String(),
	}
	if item.UnitPrice != nil {
		price := item.UnitPrice.StringFixed(2)
		response.UnitPrice = &price
	}
	return response
}

// ToTransactionListResponse converts a list of transactions.
func ToTransactionListResponse(transactions []*entity.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, tx := range transactions {
		responses[i] = ToTransactionResponse(tx)
	}
	return responses
}
