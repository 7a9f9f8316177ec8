// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/domain/entity"
)

// CounterpartyRepository defines the interface for counterparty persistence operations.
type CounterpartyRepository interface {
	// Create creates a new counterparty.
	Create(ctx context.Context, counterparty *entity.Counterparty) error

	// FindByID retrieves a counterparty by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Counterparty, error)

	// FindAll retrieves all counterparties, optionally filtered by type,
	// ordered by name.
	FindAll(ctx context.Context, partyType *entity.CounterpartyType) ([]*entity.Counterparty, error)

	// FindByNameInsensitive retrieves a counterparty whose name matches the
	// given name case- and trim-insensitively. Returns nil when none matches.
	FindByNameInsensitive(ctx context.Context, name string) (*entity.Counterparty, error)

	// Update updates an existing counterparty.
	Update(ctx context.Context, counterparty *entity.Counterparty) error

	// Delete removes a counterparty together with all its transactions and
	// their items in one atomic scope.
	Delete(ctx context.Context, id uuid.UUID) error
}
