package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/domain/entity"
)

// CheckNoteRepository defines the interface for check/note persistence operations.
type CheckNoteRepository interface {
	// Create creates a standalone check with no linked transaction.
	Create(ctx context.Context, check *entity.CheckNote) error

	// CreateWithTransaction creates the check and its generating ledger
	// transaction atomically, linking the check's TransactionID.
	CreateWithTransaction(ctx context.Context, check *entity.CheckNote, transaction *entity.Transaction) error

	// FindByID retrieves a check by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CheckNote, error)

	// FindAll retrieves all checks ordered by due date.
	FindAll(ctx context.Context) ([]*entity.CheckNote, error)

	// FindPendingInWindow retrieves pending checks with a due date inside
	// [from, to], joined with counterparty name and type, ordered by due
	// date ascending.
	FindPendingInWindow(ctx context.Context, from, to time.Time) ([]*entity.CheckNoteWithCounterparty, error)

	// Update updates a check's mutable fields (status, notes).
	Update(ctx context.Context, check *entity.CheckNote) error

	// Bounce marks the check bounced, stamps ReversalTransactionID, and
	// inserts the compensating transaction, all in one atomic scope.
	Bounce(ctx context.Context, check *entity.CheckNote, reversal *entity.Transaction) error

	// DeleteCascade removes the check row and then, in order, the reversal
	// transaction and the original transaction when linked, atomically.
	DeleteCascade(ctx context.Context, check *entity.CheckNote) error
}
