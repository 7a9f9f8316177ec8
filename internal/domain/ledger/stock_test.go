package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veresiye/backend/internal/domain/entity"
)

func item(txType entity.TxType, qty string) ItemWithTxType {
	return ItemWithTxType{
		Item:   entity.NewTransactionItem(uuid.New(), uuid.New(), decimal.RequireFromString(qty), nil),
		TxType: txType,
	}
}

func adjustment(qty string) *entity.StockAdjustment {
	return entity.NewStockAdjustment(uuid.New(), decimal.RequireFromString(qty), "")
}

func TestStockLevel_Formula(t *testing.T) {
	items := []ItemWithTxType{
		item(entity.TxTypePurchase, "50"),
		item(entity.TxTypePurchase, "25.5"),
		item(entity.TxTypeSale, "30"),
	}
	adjustments := []*entity.StockAdjustment{
		adjustment("-5.5"),
		adjustment("10"),
	}

	stock := StockLevel(items, adjustments)
	if !stock.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("stock = %s, want 50", stock)
	}
}

func TestStockLevel_OrderIndependent(t *testing.T) {
	forward := []ItemWithTxType{
		item(entity.TxTypePurchase, "10"),
		item(entity.TxTypeSale, "4"),
		item(entity.TxTypePurchase, "1.25"),
	}
	backward := []ItemWithTxType{forward[2], forward[0], forward[1]}

	if !StockLevel(forward, nil).Equal(StockLevel(backward, nil)) {
		t.Fatal("stock depends on item order")
	}
}

func TestStockLevel_CollectionAndPaymentItemsAreInert(t *testing.T) {
	// A sale reversal is a collection-typed row carrying a copy of the sale's
	// items. Those copies must not restock.
	items := []ItemWithTxType{
		item(entity.TxTypePurchase, "100"),
		item(entity.TxTypeSale, "40"),
		item(entity.TxTypeCollection, "40"), // reversal snapshot
		item(entity.TxTypePayment, "7"),
	}

	stock := StockLevel(items, nil)
	if !stock.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("stock = %s, want 60", stock)
	}
}

func TestStockLevel_Empty(t *testing.T) {
	if !StockLevel(nil, nil).IsZero() {
		t.Fatal("empty inputs must derive zero stock")
	}
}
