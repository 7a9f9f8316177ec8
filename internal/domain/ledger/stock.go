package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/domain/entity"
)

// ItemWithTxType is a transaction item together with its parent
// transaction's type, the minimum a stock derivation needs.
type ItemWithTxType struct {
	Item   *entity.TransactionItem
	TxType entity.TxType
}

// StockLevel folds a product's transaction items and manual adjustments
// into its current stock: purchases add, sales subtract, adjustments apply
// their own sign. Items hanging off collection or payment rows contribute
// nothing — that includes the item snapshots copied onto reversal entries.
// Reversing a sale corrects the money, it does not restock the goods.
func StockLevel(items []ItemWithTxType, adjustments []*entity.StockAdjustment) decimal.Decimal {
	stock := decimal.Zero

	for _, it := range items {
		switch it.TxType {
		case entity.TxTypePurchase:
			stock = stock.Add(it.Item.Quantity)
		case entity.TxTypeSale:
			stock = stock.Sub(it.Item.Quantity)
		}
	}

	for _, adj := range adjustments {
		stock = stock.Add(adj.Quantity)
	}

	return stock
}
