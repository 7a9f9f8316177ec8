package counterparty

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

func newTestRepos(t *testing.T) (adapter.CounterpartyRepository, adapter.TransactionRepository, adapter.CheckNoteRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.CounterpartyModel{},
		&model.TransactionModel{},
		&model.TransactionItemModel{},
		&model.CheckNoteModel{},
	); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	return persistence.NewCounterpartyRepository(db), persistence.NewTransactionRepository(db), persistence.NewCheckNoteRepository(db)
}

func cpCode(t *testing.T, err error) domainerror.CounterpartyErrorCode {
	t.Helper()
	var cpErr *domainerror.CounterpartyError
	if !errors.As(err, &cpErr) {
		t.Fatalf("expected CounterpartyError, got %v", err)
	}
	return cpErr.Code
}

func TestCreateCounterparty(t *testing.T) {
	partyRepo, _, _ := newTestRepos(t)
	uc := NewCreateCounterpartyUseCase(partyRepo)

	t.Run("creates a customer", func(t *testing.T) {
		dueDay := 15
		output, err := uc.Execute(context.Background(), CreateCounterpartyInput{
			Type:          entity.CounterpartyTypeCustomer,
			Name:          "Deniz Restaurant",
			Phone:         "05551234567",
			PaymentDueDay: &dueDay,
		})
		if err != nil {
			t.Fatalf("failed to create counterparty: %v", err)
		}
		if output.Counterparty.Type != entity.CounterpartyTypeCustomer {
			t.Errorf("expected type customer, got %s", output.Counterparty.Type)
		}
		if output.Counterparty.PaymentDueDay == nil || *output.Counterparty.PaymentDueDay != 15 {
			t.Error("expected payment due day 15")
		}
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateCounterpartyInput{
			Type: entity.CounterpartyType("vendor"),
			Name: "X",
		})
		if code := cpCode(t, err); code != domainerror.ErrCodeInvalidCounterpartyType {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidCounterpartyType, code)
		}
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateCounterpartyInput{
			Type: entity.CounterpartyTypeCustomer,
			Name: "   ",
		})
		if code := cpCode(t, err); code != domainerror.ErrCodeEmptyCounterpartyName {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeEmptyCounterpartyName, code)
		}
	})

	t.Run("rejects a payment due day outside 1-31", func(t *testing.T) {
		dueDay := 32
		_, err := uc.Execute(context.Background(), CreateCounterpartyInput{
			Type:          entity.CounterpartyTypeCustomer,
			Name:          "X",
			PaymentDueDay: &dueDay,
		})
		if code := cpCode(t, err); code != domainerror.ErrCodeInvalidPaymentDueDay {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidPaymentDueDay, code)
		}
	})
}

func TestListCounterparties(t *testing.T) {
	partyRepo, txRepo, _ := newTestRepos(t)
	createUC := NewCreateCounterpartyUseCase(partyRepo)
	listUC := NewListCounterpartiesUseCase(partyRepo, txRepo)
	ctx := context.Background()

	customerOut, err := createUC.Execute(ctx, CreateCounterpartyInput{
		Type: entity.CounterpartyTypeCustomer,
		Name: "Deniz Restaurant",
	})
	if err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}
	if _, err := createUC.Execute(ctx, CreateCounterpartyInput{
		Type: entity.CounterpartyTypeSupplier,
		Name: "Hal Toptancisi",
	}); err != nil {
		t.Fatalf("failed to create supplier: %v", err)
	}

	sale := entity.NewTransaction(customerOut.Counterparty.ID, entity.TxTypeSale, decimal.RequireFromString("750.50"), "", time.Now())
	if err := txRepo.CreateWithItems(ctx, sale); err != nil {
		t.Fatalf("failed to create sale: %v", err)
	}

	t.Run("lists all with derived balances", func(t *testing.T) {
		output, err := listUC.Execute(ctx, ListCounterpartiesInput{})
		if err != nil {
			t.Fatalf("failed to list counterparties: %v", err)
		}
		if len(output.Counterparties) != 2 {
			t.Fatalf("expected 2 counterparties, got %d", len(output.Counterparties))
		}
		for _, cp := range output.Counterparties {
			if cp.Counterparty.ID == customerOut.Counterparty.ID {
				if got := cp.Balance.StringFixed(2); got != "750.50" {
					t.Errorf("expected balance 750.50, got %s", got)
				}
			}
		}
	})

	t.Run("filters by type", func(t *testing.T) {
		supplierType := entity.CounterpartyTypeSupplier
		output, err := listUC.Execute(ctx, ListCounterpartiesInput{Type: &supplierType})
		if err != nil {
			t.Fatalf("failed to list counterparties: %v", err)
		}
		if len(output.Counterparties) != 1 {
			t.Fatalf("expected 1 supplier, got %d", len(output.Counterparties))
		}
		if output.Counterparties[0].Counterparty.Type != entity.CounterpartyTypeSupplier {
			t.Errorf("expected supplier, got %s", output.Counterparties[0].Counterparty.Type)
		}
	})
}

func TestUpdateCounterparty(t *testing.T) {
	partyRepo, _, _ := newTestRepos(t)
	createUC := NewCreateCounterpartyUseCase(partyRepo)
	updateUC := NewUpdateCounterpartyUseCase(partyRepo)
	ctx := context.Background()

	created, err := createUC.Execute(ctx, CreateCounterpartyInput{
		Type: entity.CounterpartyTypeCustomer,
		Name: "Deniz Restaurant",
	})
	if err != nil {
		t.Fatalf("failed to create counterparty: %v", err)
	}

	t.Run("updates contact fields and keeps the type", func(t *testing.T) {
		output, err := updateUC.Execute(ctx, UpdateCounterpartyInput{
			CounterpartyID: created.Counterparty.ID,
			Name:           "Deniz Restoran",
			Phone:          "05559876543",
		})
		if err != nil {
			t.Fatalf("failed to update counterparty: %v", err)
		}
		if output.Counterparty.Name != "Deniz Restoran" {
			t.Errorf("expected updated name, got %q", output.Counterparty.Name)
		}
		if output.Counterparty.Type != entity.CounterpartyTypeCustomer {
			t.Errorf("expected type to stay customer, got %s", output.Counterparty.Type)
		}
	})

	t.Run("rejects a missing counterparty", func(t *testing.T) {
		ghost := entity.NewCounterparty(entity.CounterpartyTypeCustomer, "x", "", "", "", nil)
		_, err := updateUC.Execute(ctx, UpdateCounterpartyInput{
			CounterpartyID: ghost.ID,
			Name:           "Whoever",
		})
		if code := cpCode(t, err); code != domainerror.ErrCodeCounterpartyNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeCounterpartyNotFound, code)
		}
	})
}

func TestDeleteCounterparty(t *testing.T) {
	t.Run("refuses to delete a party with an outstanding balance", func(t *testing.T) {
		partyRepo, txRepo, _ := newTestRepos(t)
		createUC := NewCreateCounterpartyUseCase(partyRepo)
		deleteUC := NewDeleteCounterpartyUseCase(partyRepo, txRepo)
		ctx := context.Background()

		created, err := createUC.Execute(ctx, CreateCounterpartyInput{
			Type: entity.CounterpartyTypeCustomer,
			Name: "Deniz Restaurant",
		})
		if err != nil {
			t.Fatalf("failed to create counterparty: %v", err)
		}
		sale := entity.NewTransaction(created.Counterparty.ID, entity.TxTypeSale, decimal.RequireFromString("100"), "", time.Now())
		if err := txRepo.CreateWithItems(ctx, sale); err != nil {
			t.Fatalf("failed to create sale: %v", err)
		}

		err = deleteUC.Execute(ctx, DeleteCounterpartyInput{CounterpartyID: created.Counterparty.ID})
		if code := cpCode(t, err); code != domainerror.ErrCodeCounterpartyHasBalance {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeCounterpartyHasBalance, code)
		}
	})

	t.Run("deletes a settled party together with its history", func(t *testing.T) {
		partyRepo, txRepo, _ := newTestRepos(t)
		createUC := NewCreateCounterpartyUseCase(partyRepo)
		deleteUC := NewDeleteCounterpartyUseCase(partyRepo, txRepo)
		ctx := context.Background()

		created, err := createUC.Execute(ctx, CreateCounterpartyInput{
			Type: entity.CounterpartyTypeCustomer,
			Name: "Deniz Restaurant",
		})
		if err != nil {
			t.Fatalf("failed to create counterparty: %v", err)
		}
		// A sale fully collected nets to zero, so deletion is allowed.
		sale := entity.NewTransaction(created.Counterparty.ID, entity.TxTypeSale, decimal.RequireFromString("100"), "", time.Now())
		collection := entity.NewTransaction(created.Counterparty.ID, entity.TxTypeCollection, decimal.RequireFromString("100"), "", time.Now())
		if err := txRepo.CreateWithItems(ctx, sale); err != nil {
			t.Fatalf("failed to create sale: %v", err)
		}
		if err := txRepo.CreateWithItems(ctx, collection); err != nil {
			t.Fatalf("failed to create collection: %v", err)
		}

		if err := deleteUC.Execute(ctx, DeleteCounterpartyInput{CounterpartyID: created.Counterparty.ID}); err != nil {
			t.Fatalf("failed to delete counterparty: %v", err)
		}

		if _, err := partyRepo.FindByID(ctx, created.Counterparty.ID); err == nil {
			t.Error("expected counterparty to be gone")
		}
		transactions, err := txRepo.FindByCounterparty(ctx, created.Counterparty.ID)
		if err != nil {
			t.Fatalf("failed to list transactions: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("expected transactions to cascade, got %d", len(transactions))
		}
	})

	t.Run("deletes a settled party with a terminal check", func(t *testing.T) {
		partyRepo, txRepo, checkRepo := newTestRepos(t)
		createUC := NewCreateCounterpartyUseCase(partyRepo)
		deleteUC := NewDeleteCounterpartyUseCase(partyRepo, txRepo)
		ctx := context.Background()

		created, err := createUC.Execute(ctx, CreateCounterpartyInput{
			Type: entity.CounterpartyTypeCustomer,
			Name: "Deniz Restaurant",
		})
		if err != nil {
			t.Fatalf("failed to create counterparty: %v", err)
		}

		// A paid check outlives the zero ledger; it must not block the
		// delete, and it must go with the party.
		checkNote := entity.NewCheckNote(
			created.Counterparty.ID,
			entity.CheckKindCheck,
			entity.CheckDirectionReceived,
			decimal.RequireFromString("900"),
			time.Now().AddDate(0, 0, -5),
			"",
			nil,
		)
		checkNote.Status = entity.CheckStatusPaid
		if err := checkRepo.Create(ctx, checkNote); err != nil {
			t.Fatalf("failed to create check: %v", err)
		}

		if err := deleteUC.Execute(ctx, DeleteCounterpartyInput{CounterpartyID: created.Counterparty.ID}); err != nil {
			t.Fatalf("failed to delete counterparty: %v", err)
		}

		if _, err := checkRepo.FindByID(ctx, checkNote.ID); err == nil {
			t.Error("expected the party's check to cascade")
		}
	})
}
