package email

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
	"github.com/veresiye/backend/internal/integration/persistence"
	"github.com/veresiye/backend/internal/integration/persistence/model"
)

func newTestQueue(t *testing.T) (adapter.EmailQueueRepository, adapter.CheckNoteRepository, adapter.CounterpartyRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.EmailQueueModel{},
		&model.CounterpartyModel{},
		&model.TransactionModel{},
		&model.TransactionItemModel{},
		&model.CheckNoteModel{},
	); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	return persistence.NewEmailQueueRepository(db),
		persistence.NewCheckNoteRepository(db),
		persistence.NewCounterpartyRepository(db)
}

func enqueueJob(t *testing.T, queue adapter.EmailQueueRepository) *entity.EmailJob {
	t.Helper()
	job := entity.NewEmailJob("owner@example.com", "Owner", "Test subject", "<p>hi</p>", "hi")
	if err := queue.Enqueue(context.Background(), job); err != nil {
		t.Fatalf("failed to enqueue job: %v", err)
	}
	return job
}

func TestWorker_ProcessNow(t *testing.T) {
	ctx := context.Background()

	t.Run("sends pending jobs and marks them sent", func(t *testing.T) {
		queue, _, _ := newTestQueue(t)
		sender := NewMockEmailSender()
		worker := NewWorker(queue, sender, DefaultWorkerConfig())
		enqueueJob(t, queue)

		worker.ProcessNow(ctx)

		if len(sender.SentEmails) != 1 {
			t.Fatalf("expected 1 sent email, got %d", len(sender.SentEmails))
		}
		if sender.SentEmails[0].To != "owner@example.com" {
			t.Errorf("expected recipient owner@example.com, got %s", sender.SentEmails[0].To)
		}

		pending, err := queue.GetPendingJobs(ctx, 10)
		if err != nil {
			t.Fatalf("failed to list pending jobs: %v", err)
		}
		if len(pending) != 0 {
			t.Errorf("expected no pending jobs after processing, got %d", len(pending))
		}
	})

	t.Run("temporary failure reschedules the job", func(t *testing.T) {
		queue, _, _ := newTestQueue(t)
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("connection reset"), false)
		worker := NewWorker(queue, sender, DefaultWorkerConfig())
		enqueueJob(t, queue)

		worker.ProcessNow(ctx)

		// The job stays pending but is pushed into the future, so an
		// immediate poll must not pick it up again.
		pending, err := queue.GetPendingJobs(ctx, 10)
		if err != nil {
			t.Fatalf("failed to list pending jobs: %v", err)
		}
		if len(pending) != 0 {
			t.Errorf("expected retry to be scheduled later, got %d due jobs", len(pending))
		}
	})

	t.Run("permanent failure marks the job failed for good", func(t *testing.T) {
		queue, _, _ := newTestQueue(t)
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("invalid api key"), true)
		worker := NewWorker(queue, sender, DefaultWorkerConfig())
		enqueueJob(t, queue)

		worker.ProcessNow(ctx)

		sender.Reset()
		worker.ProcessNow(ctx)
		if len(sender.SentEmails) != 0 {
			t.Errorf("expected permanently failed job to never retry, got %d sends", len(sender.SentEmails))
		}
	})
}

func TestReminderService_EnqueueDigest(t *testing.T) {
	ctx := context.Background()

	t.Run("queues one digest listing pending checks in the window", func(t *testing.T) {
		queue, checkRepo, partyRepo := newTestQueue(t)
		service := NewReminderService(checkRepo, queue)

		counterparty := entity.NewCounterparty(entity.CounterpartyTypeCustomer, "Deniz Restaurant", "", "", "", nil)
		if err := partyRepo.Create(ctx, counterparty); err != nil {
			t.Fatalf("failed to create counterparty: %v", err)
		}
		checkNote := entity.NewCheckNote(
			counterparty.ID,
			entity.CheckKindCheck,
			entity.CheckDirectionReceived,
			decimal.RequireFromString("1500"),
			time.Now().AddDate(0, 0, 7),
			"",
			nil,
		)
		if err := checkRepo.Create(ctx, checkNote); err != nil {
			t.Fatalf("failed to create check: %v", err)
		}

		if err := service.EnqueueDigest(ctx, "owner@example.com", "Owner", 30, 30); err != nil {
			t.Fatalf("failed to enqueue digest: %v", err)
		}

		jobs, err := queue.GetPendingJobs(ctx, 10)
		if err != nil {
			t.Fatalf("failed to list pending jobs: %v", err)
		}
		if len(jobs) != 1 {
			t.Fatalf("expected 1 queued digest, got %d", len(jobs))
		}
		if jobs[0].RecipientEmail != "owner@example.com" {
			t.Errorf("expected recipient owner@example.com, got %s", jobs[0].RecipientEmail)
		}
	})

	t.Run("queues nothing when the window is empty", func(t *testing.T) {
		queue, checkRepo, _ := newTestQueue(t)
		service := NewReminderService(checkRepo, queue)

		if err := service.EnqueueDigest(ctx, "owner@example.com", "Owner", 30, 30); err != nil {
			t.Fatalf("failed to enqueue digest: %v", err)
		}

		jobs, err := queue.GetPendingJobs(ctx, 10)
		if err != nil {
			t.Fatalf("failed to list pending jobs: %v", err)
		}
		if len(jobs) != 0 {
			t.Errorf("expected empty queue, got %d jobs", len(jobs))
		}
	})
}
