// Package ledger holds the pure derivation rules of the ledger core:
// counterparty balance computation, stock level computation, and the
// reversal type mapping. Everything here is a function of its inputs;
// persistence fetches rows and the engines fold them.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/domain/entity"
)

// Sign returns the signed contribution direction of a transaction type for
// a given counterparty type: +1 increases the balance, -1 decreases it.
//
// A customer balance is what the business is owed (receivable): sales
// increase it, collections decrease it. A supplier balance is what the
// business owes (payable): purchases increase it, payments decrease it.
// The cross terms (customer purchase/payment, supplier sale/collection)
// are rare but must stay defined; they show up when a party record is
// reused on the wrong side and the ledger still has to produce a number.
func Sign(partyType entity.CounterpartyType, txType entity.TxType) int {
	if partyType == entity.CounterpartyTypeCustomer {
		switch txType {
		case entity.TxTypeSale, entity.TxTypePayment:
			return 1
		case entity.TxTypeCollection, entity.TxTypePurchase:
			return -1
		}
		return 0
	}

	// Supplier: the mirror image of the customer table.
	switch txType {
	case entity.TxTypePurchase, entity.TxTypeCollection:
		return 1
	case entity.TxTypePayment, entity.TxTypeSale:
		return -1
	}
	return 0
}

// Balance folds a counterparty's full transaction list into its running
// balance. Reversal entries are not special-cased: their compensating type
// already encodes the correct sign.
func Balance(partyType entity.CounterpartyType, transactions []*entity.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range transactions {
		contribution := tx.Amount
		if Sign(partyType, tx.Type) < 0 {
			contribution = contribution.Neg()
		}
		balance = balance.Add(contribution)
	}
	return balance
}

// Totals aggregates per-party balances into dashboard figures.
type Totals struct {
	Receivables decimal.Decimal
	Payables    decimal.Decimal
}

// AggregateTotals computes total receivables and payables over a set of
// derived balances. Positive customer balances are receivables. Payables
// are positive supplier balances plus the absolute value of negative
// customer balances: a customer in credit is owed money back.
func AggregateTotals(parties []*entity.CounterpartyWithBalance) Totals {
	totals := Totals{Receivables: decimal.Zero, Payables: decimal.Zero}

	for _, p := range parties {
		switch p.Counterparty.Type {
		case entity.CounterpartyTypeCustomer:
			if p.Balance.IsPositive() {
				totals.Receivables = totals.Receivables.Add(p.Balance)
			} else if p.Balance.IsNegative() {
				totals.Payables = totals.Payables.Add(p.Balance.Abs())
			}
		case entity.CounterpartyTypeSupplier:
			if p.Balance.IsPositive() {
				totals.Payables = totals.Payables.Add(p.Balance)
			}
		}
	}

	return totals
}
