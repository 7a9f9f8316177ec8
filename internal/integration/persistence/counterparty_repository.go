// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/integration/persistence/model"
)

// counterpartyRepository implements the adapter.CounterpartyRepository interface.
type counterpartyRepository struct {
	db *gorm.DB
}

// NewCounterpartyRepository creates a new counterparty repository instance.
func NewCounterpartyRepository(db *gorm.DB) adapter.CounterpartyRepository {
	return &counterpartyRepository{
		db: db,
	}
}

// Create creates a new counterparty in the database.
func (r *counterpartyRepository) Create(ctx context.Context, counterparty *entity.Counterparty) error {
	counterpartyModel := model.CounterpartyFromEntity(counterparty)
	result := r.db.WithContext(ctx).Create(counterpartyModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a counterparty by its ID.
func (r *counterpartyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Counterparty, error) {
	var counterpartyModel model.CounterpartyModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&counterpartyModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCounterpartyNotFound
		}
		return nil, result.Error
	}
	return counterpartyModel.ToEntity(), nil
}

// FindAll retrieves all counterparties, optionally filtered by type.
func (r *counterpartyRepository) FindAll(ctx context.Context, partyType *entity.CounterpartyType) ([]*entity.Counterparty, error) {
	query := r.db.WithContext(ctx).Model(&model.CounterpartyModel{})
	if partyType != nil {
		query = query.Where("type = ?", string(*partyType))
	}

	var counterpartyModels []model.CounterpartyModel
	result := query.Order("name ASC").Find(&counterpartyModels)
	if result.Error != nil {
		return nil, result.Error
	}

	counterparties := make([]*entity.Counterparty, len(counterpartyModels))
	for i, cm := range counterpartyModels {
		counterparties[i] = cm.ToEntity()
	}
	return counterparties, nil
}

// FindByNameInsensitive retrieves a counterparty by case- and trim-insensitive name.
func (r *counterpartyRepository) FindByNameInsensitive(ctx context.Context, name string) (*entity.Counterparty, error) {
	var counterpartyModel model.CounterpartyModel
	result := r.db.WithContext(ctx).
		Where("LOWER(TRIM(name)) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&counterpartyModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return counterpartyModel.ToEntity(), nil
}

// Update updates an existing counterparty in the database.
func (r *counterpartyRepository) Update(ctx context.Context, counterparty *entity.Counterparty) error {
	counterpartyModel := model.CounterpartyFromEntity(counterparty)
	result := r.db.WithContext(ctx).Save(counterpartyModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a counterparty with all its transactions, their items, and
// its check rows. Checks go first; they reference the party, and a settled
// or standalone check may outlive a zero-balance ledger.
func (r *counterpartyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("counterparty_id = ?", id).Delete(&model.CheckNoteModel{}).Error; err != nil {
			return err
		}

		if err := tx.Where(
			"transaction_id IN (?)",
			tx.Model(&model.TransactionModel{}).Select("id").Where("counterparty_id = ?", id),
		).Delete(&model.TransactionItemModel{}).Error; err != nil {
			return err
		}

		if err := tx.Where("counterparty_id = ?", id).Delete(&model.TransactionModel{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&model.CounterpartyModel{}).Error
	})
}
