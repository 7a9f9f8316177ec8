package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/integration/persistence"
	"github.com/veresiye/backend/internal/integration/persistence/model"
)

// testRepos bundles the repositories wired against one in-memory database.
type testRepos struct {
	transactions adapter.TransactionRepository
	parties      adapter.CounterpartyRepository
	products     adapter.ProductRepository
	adjustments  adapter.StockAdjustmentRepository
	checks       adapter.CheckNoteRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.CounterpartyModel{},
		&model.TransactionModel{},
		&model.TransactionItemModel{},
		&model.ProductModel{},
		&model.StockAdjustmentModel{},
		&model.CheckNoteModel{},
	); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	return testRepos{
		transactions: persistence.NewTransactionRepository(db),
		parties:      persistence.NewCounterpartyRepository(db),
		products:     persistence.NewProductRepository(db),
		adjustments:  persistence.NewStockAdjustmentRepository(db),
		checks:       persistence.NewCheckNoteRepository(db),
	}
}

func newCreateUseCase(repos testRepos) *CreateTransactionUseCase {
	return NewCreateTransactionUseCase(repos.transactions, repos.parties, repos.products, repos.adjustments)
}

func mustCreateCounterparty(t *testing.T, repos testRepos, partyType entity.CounterpartyType, name string) *entity.Counterparty {
	t.Helper()
	counterparty := entity.NewCounterparty(partyType, name, "", "", "", nil)
	if err := repos.parties.Create(context.Background(), counterparty); err != nil {
		t.Fatalf("failed to create counterparty: %v", err)
	}
	return counterparty
}

func mustCreateProduct(t *testing.T, repos testRepos, name string, unit entity.ProductUnit) *entity.Product {
	t.Helper()
	product := entity.NewProduct(name, unit)
	if err := repos.products.Create(context.Background(), product); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

func mustExecute(t *testing.T, uc *CreateTransactionUseCase, input CreateTransactionInput) *entity.Transaction {
	t.Helper()
	output, err := uc.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	return output.Transaction
}

func txCode(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txErr *domainerror.TransactionError
	if !errors.As(err, &txErr) {
		t.Fatalf("expected TransactionError, got %v", err)
	}
	return txErr.Code
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateTransaction_Validation(t *testing.T) {
	repos := newTestRepos(t)
	uc := newCreateUseCase(repos)
	customer := mustCreateCounterparty(t, repos, entity.CounterpartyTypeCustomer, "Deniz Restaurant")

	t.Run("rejects unknown transaction type", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			CounterpartyID: &customer.ID,
			Type:           entity.TxType("refund"),
			Amount:         dec("100"),
			TxDate:         time.Now(),
		})
		if code := txCode(t, err); code != domainerror.ErrCodeInvalidTxType {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidTxType, code)
		}
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			CounterpartyID: &customer.ID,
			Type:           entity.TxTypeSale,
			Amount:         decimal.Zero,
			TxDate:         time.Now(),
		})
		if code := txCode(t, err); code != domainerror.ErrCodeNonPositiveAmount {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeNonPositiveAmount, code)
		}
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			CounterpartyID: &customer.ID,
			Type:           entity.TxTypeSale,
			Amount:         dec("-50"),
			TxDate:         time.Now(),
		})
		if code := txCode(t, err); code != domainerror.ErrCodeNonPositiveAmount {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeNonPositiveAmount, code)
		}
	})

	t.Run("rejects future-dated transaction", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			CounterpartyID: &customer.ID,
			Type:           entity.TxTypeSale,
			Amount:         dec("100"),
			TxDate:         time.Now().AddDate(0, 0, 2),
		})
		if code := txCode(t, err); code != domainerror.ErrCodeFutureTxDate {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeFutureTxDate, code)
		}
	})

	t.Run("accepts a transaction dated today", func(t *testing.T) {
		tx := mustExecute(t, uc, CreateTransactionInput{
			CounterpartyID: &customer.ID,
			Type:           entity.TxTypeSale,
			Amount:         dec("100"),
			TxDate:         time.Now(),
		})
		if tx.Type != entity.TxTypeSale {
			t.Errorf("expected type sale, got %s", tx.Type)
		}
	})

	t.Run("rejects items on a collection", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			CounterpartyID: &customer.ID,
			Type:           entity.TxTypeCollection,
			Amount:         dec("100"),
			TxDate:         time.Now(),
			Items: []ItemInput{
				{ProductName: "Domates", Quantity: dec("5")},
			},
		})
		if code := txCode(t, err); code != domainerror.ErrCodeItemsNotAllowed {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeItemsNotAllowed, code)
		}
	})

	t.Run("rejects missing counterparty id and name", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			Type:   entity.TxTypeSale,
			Amount: dec("100"),
			TxDate: time.Now(),
		})
		var cpErr *domainerror.CounterpartyError
		if !errors.As(err, &cpErr) {
			t.Fatalf("expected CounterpartyError, got %v", err)
		}
		if cpErr.Code != domainerror.ErrCodeEmptyCounterpartyName {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeEmptyCounterpartyName, cpErr.Code)
		}
	})
}

func TestCreateTransaction_QuickEntry(t *testing.T) {
	t.Run("creates counterparty by name when none exists", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := newCreateUseCase(repos)

		tx := mustExecute(t, uc, CreateTransactionInput{
			CounterpartyName: "Yeni Bakkal",
			Type:             entity.TxTypeSale,
			Amount:           dec("250"),
			TxDate:           time.Now(),
		})

		created, err := repos.parties.FindByID(context.Background(), tx.CounterpartyID)
		if err != nil {
			t.Fatalf("expected auto-created counterparty: %v", err)
		}
		if created.Name != "Yeni Bakkal" {
			t.Errorf("expected name %q, got %q", "Yeni Bakkal", created.Name)
		}
		if created.Type != entity.CounterpartyTypeCustomer {
			t.Errorf("expected sale to default to customer, got %s", created.Type)
		}
	})

	t.Run("purchase defaults the new party to supplier", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := newCreateUseCase(repos)

		tx := mustExecute(t, uc, CreateTransactionInput{
			CounterpartyName: "Hal Toptancisi",
			Type:             entity.TxTypePurchase,
			Amount:           dec("1000"),
			TxDate:           time.Now(),
		})

		created, err := repos.parties.FindByID(context.Background(), tx.CounterpartyID)
		if err != nil {
			t.Fatalf("expected auto-created counterparty: %v", err)
		}
		if created.Type != entity.CounterpartyTypeSupplier {
			t.Errorf("expected purchase to default to supplier, got %s", created.Type)
		}
	})

	t.Run("reuses existing counterparty matched case-insensitively", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := newCreateUseCase(repos)
		existing := mustCreateCounterparty(t, repos, entity.CounterpartyTypeCustomer, "Deniz Restaurant")

		tx := mustExecute(t, uc, CreateTransactionInput{
			CounterpartyName: "  deniz restaurant ",
			Type:             entity.TxTypeSale,
			Amount:           dec("100"),
			TxDate:           time.Now(),
		})
		if tx.CounterpartyID != existing.ID {
			t.Errorf("expected transaction bound to existing counterparty %s, got %s", existing.ID, tx.CounterpartyID)
		}

		all, err := repos.parties.FindAll(context.Background(), nil)
		if err != nil {
			t.Fatalf("failed to list counterparties: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("expected 1 counterparty, got %d", len(all))
		}
	})
}

func TestCreateTransaction_Items(t *testing.T) {
	t.Run("purchase auto-creates unknown products", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := newCreateUseCase(repos)
		supplier := mustCreateCounterparty(t, repos, entity.CounterpartyTypeSupplier, "Hal")

		tx := mustExecute(t, uc, CreateTransactionInput{
			CounterpartyID: &supplier.ID,
			Type:           entity.TxTypePurchase,
			Amount:         dec("500"),
			TxDate:         time.Now(),
			Items: []ItemInput{
				{ProductName: "Domates", Quantity: dec("40")},
			},
		})

		if len(tx.Items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(tx.Items))
		}
		product, err := repos.products.FindByNameInsensitive(context.Background(), "domates")
		if err != nil || product == nil {
			t.Fatalf("expected auto-created product, got %v, %v", product, err)
		}
	})

	t.Run("sale rejects unknown product names", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := newCreateUseCase(repos)
		customer := mustCreateCounterparty(t, repos, entity.CounterpartyTypeCustomer, "Deniz Restaurant")

		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			CounterpartyID: &customer.ID,
			Type:           entity.TxTypeSale,
			Amount:         dec("100"),
			TxDate:         time.Now(),
			Items: []ItemInput{
				{ProductName: "Hayalet Urun", Quantity: dec("1")},
			},
		})
		var prodErr *domainerror.ProductError
		if !errors.As(err, &prodErr) {
			t.Fatalf("expected ProductError, got %v", err)
		}
		if prodErr.Code != domainerror.ErrCodeProductNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeProductNotFound, prodErr.Code)
		}
	})

	t.Run("rejects non-positive item quantity", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := newCreateUseCase(repos)
		supplier := mustCreateCounterparty(t, repos, entity.CounterpartyTypeSupplier, "Hal")

		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			CounterpartyID: &supplier.ID,
			Type:           entity.TxTypePurchase,
			Amount:         dec("100"),
			TxDate:         time.Now(),
			Items: []ItemInput{
				{ProductName: "Domates", Quantity: decimal.Zero},
			},
		})
		if code := txCode(t, err); code != domainerror.ErrCodeNonPositiveAmount {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeNonPositiveAmount, code)
		}
	})
}

func TestCreateTransaction_StockGuard(t *testing.T) {
	setup := func(t *testing.T) (testRepos, *CreateTransactionUseCase, *entity.Counterparty, *entity.Product) {
		repos := newTestRepos(t)
		uc := newCreateUseCase(repos)
		supplier := mustCreateCounterparty(t, repos, entity.CounterpartyTypeSupplier, "Hal")
		customer := mustCreateCounterparty(t, repos, entity.CounterpartyTypeCustomer, "Deniz Restaurant")
		product := mustCreateProduct(t, repos, "Domates", entity.ProductUnitKg)

		// Stock in 40 kg.
		mustExecute(t, uc, CreateTransactionInput{
			CounterpartyID: &supplier.ID,
			Type:           entity.TxTypePurchase,
			Amount:         dec("400"),
			TxDate:         time.Now(),
			Items: []ItemInput{
				{ProductID: &product.ID, Quantity: dec("40")},
			},
		})
		return repos, uc, customer, product
	}

	t.Run("allows a sale covered by stock", func(t *testing.T) {
		_, uc, customer, product := setup(t)
		mustExecute(t, uc, CreateTransactionInput{
			CounterpartyID: &customer.ID,
			Type:           entity.TxTypeSale,
			Amount:         dec("300"),
			TxDate:         time.Now(),
			Items: []ItemInput{
				{ProductID: &product.ID, Quantity: dec("40")},
			},
		})
	})

	t.Run("rejects a sale exceeding stock and writes nothing", func(t *testing.T) {
		repos, uc, customer, product := setup(t)
		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			CounterpartyID: &customer.ID,
			Type:           entity.TxTypeSale,
			Amount:         dec("500"),
			TxDate:         time.Now(),
			Items: []ItemInput{
				{ProductID: &product.ID, Quantity: dec("41")},
			},
		})
		if code := txCode(t, err); code != domainerror.ErrCodeInsufficientStock {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInsufficientStock, code)
		}

		// The failed sale must not have touched the ledger.
		transactions, err := repos.transactions.FindByCounterparty(context.Background(), customer.ID)
		if err != nil {
			t.Fatalf("failed to list transactions: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("expected no transactions for the customer, got %d", len(transactions))
		}
	})

	t.Run("sums quantities across split lines of the same product", func(t *testing.T) {
		_, uc, customer, product := setup(t)
		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			CounterpartyID: &customer.ID,
			Type:           entity.TxTypeSale,
			Amount:         dec("500"),
			TxDate:         time.Now(),
			Items: []ItemInput{
				{ProductID: &product.ID, Quantity: dec("25")},
				{ProductID: &product.ID, Quantity: dec("25")},
			},
		})
		if code := txCode(t, err); code != domainerror.ErrCodeInsufficientStock {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInsufficientStock, code)
		}
	})
}
