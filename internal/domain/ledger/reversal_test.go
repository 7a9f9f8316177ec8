package ledger

import (
	"testing"

	"github.com/veresiye/backend/internal/domain/entity"
)

func TestCompensatingType(t *testing.T) {
	pairs := map[entity.TxType]entity.TxType{
		entity.TxTypeSale:       entity.TxTypeCollection,
		entity.TxTypeCollection: entity.TxTypeSale,
		entity.TxTypePurchase:   entity.TxTypePayment,
		entity.TxTypePayment:    entity.TxTypePurchase,
	}

	for original, want := range pairs {
		if got := CompensatingType(original); got != want {
			t.Errorf("CompensatingType(%s) = %s, want %s", original, got, want)
		}
		// Applying it twice returns the original type.
		if got := CompensatingType(CompensatingType(original)); got != original {
			t.Errorf("CompensatingType is not an involution for %s", original)
		}
	}
}

func TestCompensatingType_CancelsForBothPartyTypes(t *testing.T) {
	for _, partyType := range []entity.CounterpartyType{
		entity.CounterpartyTypeCustomer,
		entity.CounterpartyTypeSupplier,
	} {
		for _, txType := range []entity.TxType{
			entity.TxTypeSale, entity.TxTypeCollection,
			entity.TxTypePurchase, entity.TxTypePayment,
		} {
			if Sign(partyType, txType)+Sign(partyType, CompensatingType(txType)) != 0 {
				t.Errorf("compensating %s does not cancel for %s", txType, partyType)
			}
		}
	}
}
