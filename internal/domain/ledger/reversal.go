package ledger

import "github.com/veresiye/backend/internal/domain/entity"

// ReversalDescriptionPrefix marks compensating entries in the ledger view.
const ReversalDescriptionPrefix = "DÜZELTME: "

// CompensatingType maps a transaction type to the type that cancels its
// balance effect: sale↔collection, purchase↔payment. The mapping is its
// own inverse for both party types because the sign table is symmetric.
func CompensatingType(txType entity.TxType) entity.TxType {
	switch txType {
	case entity.TxTypeSale:
		return entity.TxTypeCollection
	case entity.TxTypeCollection:
		return entity.TxTypeSale
	case entity.TxTypePurchase:
		return entity.TxTypePayment
	case entity.TxTypePayment:
		return entity.TxTypePurchase
	}
	return txType
}
