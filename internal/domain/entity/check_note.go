package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckKind distinguishes a bank check from a promissory note.
type CheckKind string

const (
	CheckKindCheck CheckKind = "check"
	CheckKindNote  CheckKind = "note"
)

// CheckDirection records whether the paper was received from or given to
// the counterparty.
type CheckDirection string

const (
	CheckDirectionReceived CheckDirection = "received"
	CheckDirectionGiven    CheckDirection = "given"
)

// CheckStatus is the lifecycle state of a check or note. Paid and bounced
// are both terminal.
type CheckStatus string

const (
	CheckStatusPending CheckStatus = "pending"
	CheckStatusPaid    CheckStatus = "paid"
	CheckStatusBounced CheckStatus = "bounced"
)

// CheckNote is a check or promissory note tied to a counterparty.
// TransactionID links the ledger entry created alongside the check, if any.
// ReversalTransactionID is stamped exactly once, at bounce time, with the
// compensating entry that undoes the original's balance effect.
type CheckNote struct {
	ID                    uuid.UUID
	CounterpartyID        uuid.UUID
	Kind                  CheckKind
	Direction             CheckDirection
	Amount                decimal.Decimal
	DueDate               time.Time
	Status                CheckStatus
	Notes                 string
	TransactionID         *uuid.UUID
	ReversalTransactionID *uuid.UUID
	ReceivedDate          *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewCheckNote creates a new pending CheckNote entity.
func NewCheckNote(
	counterpartyID uuid.UUID,
	kind CheckKind,
	direction CheckDirection,
	amount decimal.Decimal,
	dueDate time.Time,
	notes string,
	receivedDate *time.Time,
) *CheckNote {
	now := time.Now().UTC()

	return &CheckNote{
		ID:             uuid.New(),
		CounterpartyID: counterpartyID,
		Kind:           kind,
		Direction:      direction,
		Amount:         amount,
		DueDate:        dueDate,
		Status:         CheckStatusPending,
		Notes:          notes,
		ReceivedDate:   receivedDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsTerminal reports whether the status admits no further transitions.
func (c *CheckNote) IsTerminal() bool {
	return c.Status == CheckStatusPaid || c.Status == CheckStatusBounced
}

// CheckNoteWithCounterparty pairs a check with its counterparty, used by
// the upcoming-checks dashboard query.
type CheckNoteWithCounterparty struct {
	CheckNote        *CheckNote
	CounterpartyName string
	CounterpartyType CounterpartyType
}
