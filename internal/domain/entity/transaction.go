package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TxType represents the kind of monetary event a transaction records.
// The same four types are reused for customers and suppliers with opposite
// balance meaning; direction is encoded by the type, never by the sign of
// the amount.
type TxType string

const (
	TxTypeSale       TxType = "sale"
	TxTypeCollection TxType = "collection"
	TxTypePurchase   TxType = "purchase"
	TxTypePayment    TxType = "payment"
)

// Transaction represents one monetary event in a counterparty's ledger.
// Amount is always positive. ReversedOf links a compensating entry back to
// the transaction it corrects; it is set at creation and never mutated.
type Transaction struct {
	ID             uuid.UUID
	CounterpartyID uuid.UUID
	Type           TxType
	Amount         decimal.Decimal // Always > 0, currency scale (2dp)
	Description    string
	TxDate         time.Time  // Date only, no time component
	ReversedOf     *uuid.UUID // Set on compensating entries
	CreatedAt      time.Time
	Items          []*TransactionItem
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	counterpartyID uuid.UUID,
	txType TxType,
	amount decimal.Decimal,
	description string,
	txDate time.Time,
) *Transaction {
	return &Transaction{
		ID:             uuid.New(),
		CounterpartyID: counterpartyID,
		Type:           txType,
		Amount:         amount,
		Description:    description,
		TxDate:         txDate,
		CreatedAt:      time.Now().UTC(),
	}
}

// IsReversal reports whether this transaction is a compensating entry.
func (t *Transaction) IsReversal() bool {
	return t.ReversedOf != nil
}

// CarriesItems reports whether this transaction type may own line items.
// Only sales and purchases move goods; collections and payments never do.
func (t *Transaction) CarriesItems() bool {
	return t.Type == TxTypeSale || t.Type == TxTypePurchase
}

// TransactionItem is a product line item belonging to a sale or purchase.
// Quantity is always positive; the stock direction comes from the parent
// transaction's type.
type TransactionItem struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	ProductID     uuid.UUID
	Quantity      decimal.Decimal
	UnitPrice     *decimal.Decimal
}

// NewTransactionItem creates a new TransactionItem entity.
func NewTransactionItem(transactionID, productID uuid.UUID, quantity decimal.Decimal, unitPrice *decimal.Decimal) *TransactionItem {
	return &TransactionItem{
		ID:            uuid.New(),
		TransactionID: transactionID,
		ProductID:     productID,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
	}
}

// CopyTo clones the item onto another transaction. Used when reversing a
// transaction so the compensating entry carries its own item snapshot.
func (i *TransactionItem) CopyTo(transactionID uuid.UUID) *TransactionItem {
	return NewTransactionItem(transactionID, i.ProductID, i.Quantity, i.UnitPrice)
}
