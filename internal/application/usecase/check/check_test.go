package check

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/application/usecase/transaction"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/domain/ledger"
	"github.com/veresiye/backend/internal/integration/persistence"
	"github.com/veresiye/backend/internal/integration/persistence/model"
)

type testRepos struct {
	checks       adapter.CheckNoteRepository
	transactions adapter.TransactionRepository
	parties      adapter.CounterpartyRepository
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
		&model.CheckNoteModel{},
	); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	return testRepos{
		checks:       persistence.NewCheckNoteRepository(db),
		transactions: persistence.NewTransactionRepository(db),
		parties:      persistence.NewCounterpartyRepository(db),
	}
}

func chkCode(t *testing.T, err error) domainerror.CheckErrorCode {
	t.Helper()
	var chkErr *domainerror.CheckError
	if !errors.As(err, &chkErr) {
		t.Fatalf("expected CheckError, got %v", err)
	}
	return chkErr.Code
}

func mustCreateCustomer(t *testing.T, repos testRepos, name string) *entity.Counterparty {
	t.Helper()
	counterparty := entity.NewCounterparty(entity.CounterpartyTypeCustomer, name, "", "", "", nil)
	if err := repos.parties.Create(context.Background(), counterparty); err != nil {
		t.Fatalf("failed to create counterparty: %v", err)
	}
	return counterparty
}

func customerBalance(t *testing.T, repos testRepos, counterparty *entity.Counterparty) string {
	t.Helper()
	transactions, err := repos.transactions.FindByCounterparty(context.Background(), counterparty.ID)
	if err != nil {
		t.Fatalf("failed to list transactions: %v", err)
	}
	return ledger.Balance(counterparty.Type, transactions).StringFixed(2)
}

func TestCreateCheck(t *testing.T) {
	t.Run("creates a pending check without a ledger entry", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewCreateCheckUseCase(repos.checks, repos.parties)
		customer := mustCreateCustomer(t, repos, "Deniz Restaurant")

		output, err := uc.Execute(context.Background(), CreateCheckInput{
			CounterpartyID: customer.ID,
			Kind:           entity.CheckKindCheck,
			Direction:      entity.CheckDirectionReceived,
			Amount:         decimal.RequireFromString("1500"),
			DueDate:        time.Now().AddDate(0, 1, 0),
		})
		if err != nil {
			t.Fatalf("failed to create check: %v", err)
		}
		if output.Check.Status != entity.CheckStatusPending {
			t.Errorf("expected status pending, got %s", output.Check.Status)
		}
		if output.Check.TransactionID != nil {
			t.Error("expected no linked transaction")
		}
		if got := customerBalance(t, repos, customer); got != "0.00" {
			t.Errorf("expected untouched balance, got %s", got)
		}
	})

	t.Run("received check with transaction books a collection", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewCreateCheckUseCase(repos.checks, repos.parties)
		customer := mustCreateCustomer(t, repos, "Deniz Restaurant")

		// Outstanding sale of 2000, then a check for the full amount.
		sale := entity.NewTransaction(customer.ID, entity.TxTypeSale, decimal.RequireFromString("2000"), "", time.Now())
		if err := repos.transactions.CreateWithItems(context.Background(), sale); err != nil {
			t.Fatalf("failed to create sale: %v", err)
		}

		output, err := uc.Execute(context.Background(), CreateCheckInput{
			CounterpartyID:  customer.ID,
			Kind:            entity.CheckKindCheck,
			Direction:       entity.CheckDirectionReceived,
			Amount:          decimal.RequireFromString("2000"),
			DueDate:         time.Now().AddDate(0, 1, 0),
			WithTransaction: true,
		})
		if err != nil {
			t.Fatalf("failed to create check: %v", err)
		}
		if output.Check.TransactionID == nil {
			t.Fatal("expected linked transaction")
		}

		linked, err := repos.transactions.FindByID(context.Background(), *output.Check.TransactionID)
		if err != nil {
			t.Fatalf("failed to load linked transaction: %v", err)
		}
		if linked.Type != entity.TxTypeCollection {
			t.Errorf("expected collection, got %s", linked.Type)
		}
		if got := customerBalance(t, repos, customer); got != "0.00" {
			t.Errorf("expected balance settled to 0.00, got %s", got)
		}
	})

	t.Run("given note with transaction books a payment", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewCreateCheckUseCase(repos.checks, repos.parties)
		customer := mustCreateCustomer(t, repos, "Deniz Restaurant")

		output, err := uc.Execute(context.Background(), CreateCheckInput{
			CounterpartyID:  customer.ID,
			Kind:            entity.CheckKindNote,
			Direction:       entity.CheckDirectionGiven,
			Amount:          decimal.RequireFromString("800"),
			DueDate:         time.Now().AddDate(0, 2, 0),
			WithTransaction: true,
		})
		if err != nil {
			t.Fatalf("failed to create note: %v", err)
		}

		linked, err := repos.transactions.FindByID(context.Background(), *output.Check.TransactionID)
		if err != nil {
			t.Fatalf("failed to load linked transaction: %v", err)
		}
		if linked.Type != entity.TxTypePayment {
			t.Errorf("expected payment, got %s", linked.Type)
		}
	})

	t.Run("rejects invalid kind, direction and amount", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewCreateCheckUseCase(repos.checks, repos.parties)
		customer := mustCreateCustomer(t, repos, "Deniz Restaurant")

		_, err := uc.Execute(context.Background(), CreateCheckInput{
			CounterpartyID: customer.ID,
			Kind:           entity.CheckKind("bond"),
			Direction:      entity.CheckDirectionReceived,
			Amount:         decimal.RequireFromString("1"),
			DueDate:        time.Now(),
		})
		if code := chkCode(t, err); code != domainerror.ErrCodeInvalidCheckKind {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidCheckKind, code)
		}

		_, err = uc.Execute(context.Background(), CreateCheckInput{
			CounterpartyID: customer.ID,
			Kind:           entity.CheckKindCheck,
			Direction:      entity.CheckDirection("held"),
			Amount:         decimal.RequireFromString("1"),
			DueDate:        time.Now(),
		})
		if code := chkCode(t, err); code != domainerror.ErrCodeInvalidCheckDirection {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidCheckDirection, code)
		}

		_, err = uc.Execute(context.Background(), CreateCheckInput{
			CounterpartyID: customer.ID,
			Kind:           entity.CheckKindCheck,
			Direction:      entity.CheckDirectionReceived,
			Amount:         decimal.Zero,
			DueDate:        time.Now(),
		})
		var txErr *domainerror.TransactionError
		if !errors.As(err, &txErr) || txErr.Code != domainerror.ErrCodeNonPositiveAmount {
			t.Errorf("expected non-positive amount error, got %v", err)
		}
	})
}

func TestUpdateCheckStatus(t *testing.T) {
	createPendingWithTransaction := func(t *testing.T, repos testRepos, customer *entity.Counterparty) *entity.CheckNote {
		t.Helper()
		uc := NewCreateCheckUseCase(repos.checks, repos.parties)
		output, err := uc.Execute(context.Background(), CreateCheckInput{
			CounterpartyID:  customer.ID,
			Kind:            entity.CheckKindCheck,
			Direction:       entity.CheckDirectionReceived,
			Amount:          decimal.RequireFromString("2000"),
			DueDate:         time.Now().AddDate(0, 1, 0),
			WithTransaction: true,
		})
		if err != nil {
			t.Fatalf("failed to create check: %v", err)
		}
		return output.Check
	}

	t.Run("marks a pending check paid", func(t *testing.T) {
		repos := newTestRepos(t)
		customer := mustCreateCustomer(t, repos, "Deniz Restaurant")
		checkNote := createPendingWithTransaction(t, repos, customer)
		uc := NewUpdateCheckStatusUseCase(repos.checks, repos.transactions)

		output, err := uc.Execute(context.Background(), UpdateCheckStatusInput{
			CheckID: checkNote.ID,
			Status:  entity.CheckStatusPaid,
		})
		if err != nil {
			t.Fatalf("failed to mark paid: %v", err)
		}
		if output.Check.Status != entity.CheckStatusPaid {
			t.Errorf("expected status paid, got %s", output.Check.Status)
		}
		if output.Check.ReversalTransactionID != nil {
			t.Error("paid transition must not create a reversal")
		}
	})

	t.Run("bounce reverses the linked collection", func(t *testing.T) {
		repos := newTestRepos(t)
		customer := mustCreateCustomer(t, repos, "Deniz Restaurant")

		sale := entity.NewTransaction(customer.ID, entity.TxTypeSale, decimal.RequireFromString("2000"), "", time.Now())
		if err := repos.transactions.CreateWithItems(context.Background(), sale); err != nil {
			t.Fatalf("failed to create sale: %v", err)
		}
		checkNote := createPendingWithTransaction(t, repos, customer)
		if got := customerBalance(t, repos, customer); got != "0.00" {
			t.Fatalf("expected balance 0.00 before bounce, got %s", got)
		}

		uc := NewUpdateCheckStatusUseCase(repos.checks, repos.transactions)
		output, err := uc.Execute(context.Background(), UpdateCheckStatusInput{
			CheckID: checkNote.ID,
			Status:  entity.CheckStatusBounced,
		})
		if err != nil {
			t.Fatalf("failed to bounce check: %v", err)
		}

		// The bounced paper never brought the money in; the debt returns.
		if got := customerBalance(t, repos, customer); got != "2000.00" {
			t.Errorf("expected balance 2000.00 after bounce, got %s", got)
		}
		if output.Check.ReversalTransactionID == nil {
			t.Fatal("expected reversal transaction to be stamped")
		}

		reversal, err := repos.transactions.FindByID(context.Background(), *output.Check.ReversalTransactionID)
		if err != nil {
			t.Fatalf("failed to load reversal: %v", err)
		}
		if reversal.Description != "Bounced check (reversal)" {
			t.Errorf("expected description %q, got %q", "Bounced check (reversal)", reversal.Description)
		}
		if reversal.ReversedOf == nil || *reversal.ReversedOf != *checkNote.TransactionID {
			t.Error("expected reversal to link the original collection")
		}
	})

	t.Run("second bounce is rejected and adds no entry", func(t *testing.T) {
		repos := newTestRepos(t)
		customer := mustCreateCustomer(t, repos, "Deniz Restaurant")
		checkNote := createPendingWithTransaction(t, repos, customer)
		uc := NewUpdateCheckStatusUseCase(repos.checks, repos.transactions)

		if _, err := uc.Execute(context.Background(), UpdateCheckStatusInput{
			CheckID: checkNote.ID,
			Status:  entity.CheckStatusBounced,
		}); err != nil {
			t.Fatalf("first bounce failed: %v", err)
		}

		_, err := uc.Execute(context.Background(), UpdateCheckStatusInput{
			CheckID: checkNote.ID,
			Status:  entity.CheckStatusBounced,
		})
		if code := chkCode(t, err); code != domainerror.ErrCodeCheckStatusTerminal {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeCheckStatusTerminal, code)
		}

		transactions, err := repos.transactions.FindByCounterparty(context.Background(), customer.ID)
		if err != nil {
			t.Fatalf("failed to list transactions: %v", err)
		}
		// The original collection plus exactly one reversal.
		if len(transactions) != 2 {
			t.Errorf("expected 2 transactions, got %d", len(transactions))
		}
	})

	t.Run("bounce after a direct reversal is rejected and adds no entry", func(t *testing.T) {
		repos := newTestRepos(t)
		customer := mustCreateCustomer(t, repos, "Deniz Restaurant")

		sale := entity.NewTransaction(customer.ID, entity.TxTypeSale, decimal.RequireFromString("2000"), "", time.Now())
		if err := repos.transactions.CreateWithItems(context.Background(), sale); err != nil {
			t.Fatalf("failed to create sale: %v", err)
		}
		checkNote := createPendingWithTransaction(t, repos, customer)

		// The linked collection gets reversed through the plain reversal
		// flow first, restoring the debt.
		reverseUC := transaction.NewReverseTransactionUseCase(repos.transactions)
		if _, err := reverseUC.Execute(context.Background(), transaction.ReverseTransactionInput{
			TransactionID: *checkNote.TransactionID,
		}); err != nil {
			t.Fatalf("failed to reverse linked collection: %v", err)
		}
		if got := customerBalance(t, repos, customer); got != "2000.00" {
			t.Fatalf("expected balance 2000.00 after reversal, got %s", got)
		}

		uc := NewUpdateCheckStatusUseCase(repos.checks, repos.transactions)
		_, err := uc.Execute(context.Background(), UpdateCheckStatusInput{
			CheckID: checkNote.ID,
			Status:  entity.CheckStatusBounced,
		})
		var txErr *domainerror.TransactionError
		if !errors.As(err, &txErr) || txErr.Code != domainerror.ErrCodeAlreadyReversed {
			t.Fatalf("expected already-reversed error, got %v", err)
		}

		// No second compensating entry, and the balance holds.
		transactions, err := repos.transactions.FindByCounterparty(context.Background(), customer.ID)
		if err != nil {
			t.Fatalf("failed to list transactions: %v", err)
		}
		compensating := 0
		for _, tx := range transactions {
			if tx.ReversedOf != nil && *tx.ReversedOf == *checkNote.TransactionID {
				compensating++
			}
		}
		if compensating != 1 {
			t.Errorf("expected exactly 1 compensating entry, got %d", compensating)
		}
		if got := customerBalance(t, repos, customer); got != "2000.00" {
			t.Errorf("expected balance 2000.00 after failed bounce, got %s", got)
		}

		// The failed bounce must not flip the check either.
		reloaded, err := repos.checks.FindByID(context.Background(), checkNote.ID)
		if err != nil {
			t.Fatalf("failed to reload check: %v", err)
		}
		if reloaded.Status != entity.CheckStatusPending {
			t.Errorf("expected check to stay pending, got %s", reloaded.Status)
		}
	})

	t.Run("bounce without a linked transaction is rejected", func(t *testing.T) {
		repos := newTestRepos(t)
		customer := mustCreateCustomer(t, repos, "Deniz Restaurant")
		createUC := NewCreateCheckUseCase(repos.checks, repos.parties)
		output, err := createUC.Execute(context.Background(), CreateCheckInput{
			CounterpartyID: customer.ID,
			Kind:           entity.CheckKindCheck,
			Direction:      entity.CheckDirectionReceived,
			Amount:         decimal.RequireFromString("500"),
			DueDate:        time.Now().AddDate(0, 1, 0),
		})
		if err != nil {
			t.Fatalf("failed to create check: %v", err)
		}

		uc := NewUpdateCheckStatusUseCase(repos.checks, repos.transactions)
		_, err = uc.Execute(context.Background(), UpdateCheckStatusInput{
			CheckID: output.Check.ID,
			Status:  entity.CheckStatusBounced,
		})
		if code := chkCode(t, err); code != domainerror.ErrCodeBounceWithoutTransaction {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeBounceWithoutTransaction, code)
		}
	})

	t.Run("rejects a status other than paid or bounced", func(t *testing.T) {
		repos := newTestRepos(t)
		uc := NewUpdateCheckStatusUseCase(repos.checks, repos.transactions)
		_, err := uc.Execute(context.Background(), UpdateCheckStatusInput{
			CheckID: entity.NewCounterparty(entity.CounterpartyTypeCustomer, "x", "", "", "", nil).ID,
			Status:  entity.CheckStatusPending,
		})
		if code := chkCode(t, err); code != domainerror.ErrCodeInvalidCheckStatus {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidCheckStatus, code)
		}
	})
}

func TestDeleteCheck(t *testing.T) {
	t.Run("delete cascades the linked transaction and its reversal", func(t *testing.T) {
		repos := newTestRepos(t)
		customer := mustCreateCustomer(t, repos, "Deniz Restaurant")
		createUC := NewCreateCheckUseCase(repos.checks, repos.parties)
		statusUC := NewUpdateCheckStatusUseCase(repos.checks, repos.transactions)
		deleteUC := NewDeleteCheckUseCase(repos.checks)
		ctx := context.Background()

		sale := entity.NewTransaction(customer.ID, entity.TxTypeSale, decimal.RequireFromString("2000"), "", time.Now())
		if err := repos.transactions.CreateWithItems(ctx, sale); err != nil {
			t.Fatalf("failed to create sale: %v", err)
		}

		created, err := createUC.Execute(ctx, CreateCheckInput{
			CounterpartyID:  customer.ID,
			Kind:            entity.CheckKindCheck,
			Direction:       entity.CheckDirectionReceived,
			Amount:          decimal.RequireFromString("2000"),
			DueDate:         time.Now().AddDate(0, 1, 0),
			WithTransaction: true,
		})
		if err != nil {
			t.Fatalf("failed to create check: %v", err)
		}
		if _, err := statusUC.Execute(ctx, UpdateCheckStatusInput{
			CheckID: created.Check.ID,
			Status:  entity.CheckStatusBounced,
		}); err != nil {
			t.Fatalf("failed to bounce check: %v", err)
		}

		if err := deleteUC.Execute(ctx, DeleteCheckInput{CheckID: created.Check.ID}); err != nil {
			t.Fatalf("failed to delete check: %v", err)
		}

		// Only the original sale survives; the check's collection and its
		// reversal go with the check.
		transactions, err := repos.transactions.FindByCounterparty(ctx, customer.ID)
		if err != nil {
			t.Fatalf("failed to list transactions: %v", err)
		}
		if len(transactions) != 1 {
			t.Fatalf("expected 1 transaction to remain, got %d", len(transactions))
		}
		if transactions[0].Type != entity.TxTypeSale {
			t.Errorf("expected the sale to remain, got %s", transactions[0].Type)
		}
		if _, err := repos.checks.FindByID(ctx, created.Check.ID); err == nil {
			t.Error("expected check to be gone")
		}
	})

	t.Run("delete of a missing check reports not found", func(t *testing.T) {
		repos := newTestRepos(t)
		deleteUC := NewDeleteCheckUseCase(repos.checks)
		ghost := entity.NewCounterparty(entity.CounterpartyTypeCustomer, "x", "", "", "", nil)

		err := deleteUC.Execute(context.Background(), DeleteCheckInput{CheckID: ghost.ID})
		if code := chkCode(t, err); code != domainerror.ErrCodeCheckNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeCheckNotFound, code)
		}
	})
}

func TestListUpcomingChecks(t *testing.T) {
	repos := newTestRepos(t)
	customer := mustCreateCustomer(t, repos, "Deniz Restaurant")
	createUC := NewCreateCheckUseCase(repos.checks, repos.parties)
	upcomingUC := NewListUpcomingChecksUseCase(repos.checks)
	ctx := context.Background()

	mustCreate := func(dueInDays int) *entity.CheckNote {
		output, err := createUC.Execute(ctx, CreateCheckInput{
			CounterpartyID: customer.ID,
			Kind:           entity.CheckKindCheck,
			Direction:      entity.CheckDirectionReceived,
			Amount:         decimal.RequireFromString("100"),
			DueDate:        time.Now().AddDate(0, 0, dueInDays),
		})
		if err != nil {
			t.Fatalf("failed to create check: %v", err)
		}
		return output.Check
	}

	overdue := mustCreate(-10)
	soon := mustCreate(10)
	mustCreate(90) // far future, outside the window

	output, err := upcomingUC.Execute(ctx, ListUpcomingChecksInput{
		OverdueDays:  30,
		UpcomingDays: 30,
	})
	if err != nil {
		t.Fatalf("failed to list upcoming checks: %v", err)
	}
	if len(output.Checks) != 2 {
		t.Fatalf("expected 2 checks in the window, got %d", len(output.Checks))
	}

	// Ordered by due date: the overdue one first.
	if output.Checks[0].CheckNote.ID != overdue.ID {
		t.Errorf("expected overdue check first")
	}
	if output.Checks[1].CheckNote.ID != soon.ID {
		t.Errorf("expected upcoming check second")
	}
	if output.Checks[0].CounterpartyName != "Deniz Restaurant" {
		t.Errorf("expected counterparty name joined, got %q", output.Checks[0].CounterpartyName)
	}
}
