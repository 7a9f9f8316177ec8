package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/integration/persistence/model"
)

// checkNoteRepository implements the adapter.CheckNoteRepository interface.
type checkNoteRepository struct {
	db *gorm.DB
}

// NewCheckNoteRepository creates a new check note repository instance.
func NewCheckNoteRepository(db *gorm.DB) adapter.CheckNoteRepository {
	return &checkNoteRepository{
		db: db,
	}
}

// Create creates a standalone check with no linked transaction.
func (r *checkNoteRepository) Create(ctx context.Context, check *entity.CheckNote) error {
	checkModel := model.CheckNoteFromEntity(check)
	result := r.db.WithContext(ctx).Create(checkModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateWithTransaction creates the check and its generating transaction
// atomically, linking the check's TransactionID.
func (r *checkNoteRepository) CreateWithTransaction(ctx context.Context, check *entity.CheckNote, transaction *entity.Transaction) error {
	check.TransactionID = &transaction.ID

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}
		return tx.Create(model.CheckNoteFromEntity(check)).Error
	})
}

// FindByID retrieves a check by its ID.
func (r *checkNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CheckNote, error) {
	var checkModel model.CheckNoteModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&checkModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCheckNotFound
		}
		return nil, result.Error
	}
	return checkModel.ToEntity(), nil
}

// FindAll retrieves all checks ordered by due date.
func (r *checkNoteRepository) FindAll(ctx context.Context) ([]*entity.CheckNote, error) {
	var checkModels []model.CheckNoteModel
	result := r.db.WithContext(ctx).Order("due_date ASC").Find(&checkModels)
	if result.Error != nil {
		return nil, result.Error
	}

	checks := make([]*entity.CheckNote, len(checkModels))
	for i, cm := range checkModels {
		checks[i] = cm.ToEntity()
	}
	return checks, nil
}

// FindPendingInWindow retrieves pending checks due inside [from, to], joined
// with their counterparty for display.
func (r *checkNoteRepository) FindPendingInWindow(ctx context.Context, from, to time.Time) ([]*entity.CheckNoteWithCounterparty, error) {
	var rows []struct {
		model.CheckNoteModel
		CounterpartyName string `gorm:"column:counterparty_name"`
		CounterpartyType string `gorm:"column:counterparty_type"`
	}
	result := r.db.WithContext(ctx).
		Model(&model.CheckNoteModel{}).
		Select("check_notes.*, counterparties.name AS counterparty_name, counterparties.type AS counterparty_type").
		Joins("JOIN counterparties ON counterparties.id = check_notes.counterparty_id").
		Where("check_notes.status = ?", string(entity.CheckStatusPending)).
		Where("check_notes.due_date >= ? AND check_notes.due_date <= ?", from, to).
		Order("check_notes.due_date ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	checks := make([]*entity.CheckNoteWithCounterparty, len(rows))
	for i, row := range rows {
		checks[i] = &entity.CheckNoteWithCounterparty{
			CheckNote:        row.CheckNoteModel.ToEntity(),
			CounterpartyName: row.CounterpartyName,
			CounterpartyType: entity.CounterpartyType(row.CounterpartyType),
		}
	}
	return checks, nil
}

// Update updates a check's mutable fields.
func (r *checkNoteRepository) Update(ctx context.Context, check *entity.CheckNote) error {
	checkModel := model.CheckNoteFromEntity(check)
	result := r.db.WithContext(ctx).Save(checkModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Bounce marks the check bounced, stamps ReversalTransactionID, and inserts
// the compensating transaction in one atomic scope. The linked transaction
// may already have been reversed through the plain reversal endpoint, so the
// no-existing-reversal check runs here too, inside the same scope.
func (r *checkNoteRepository) Bounce(ctx context.Context, check *entity.CheckNote, reversal *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.TransactionModel{}).
			Where("reversed_of = ?", *reversal.ReversedOf).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeAlreadyReversed,
				"linked transaction has already been reversed",
				domainerror.ErrAlreadyReversed,
			)
		}

		if err := tx.Create(model.TransactionFromEntity(reversal)).Error; err != nil {
			return err
		}

		result := tx.Model(&model.CheckNoteModel{}).
			Where("id = ?", check.ID).
			Where("status = ?", string(entity.CheckStatusPending)).
			Updates(map[string]interface{}{
				"status":                  string(entity.CheckStatusBounced),
				"reversal_transaction_id": reversal.ID,
				"updated_at":              time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}

		// Zero rows means another bounce won the race; roll the reversal back.
		if result.RowsAffected == 0 {
			return domainerror.NewCheckError(
				domainerror.ErrCodeCheckStatusTerminal,
				"check is no longer pending",
				domainerror.ErrCheckStatusTerminal,
			)
		}
		return nil
	})
}

// DeleteCascade removes the check row, then the reversal transaction and the
// original transaction when linked. The reversal goes first so the original's
// delete does not depend on the transaction-level cascade rule.
func (r *checkNoteRepository) DeleteCascade(ctx context.Context, check *entity.CheckNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", check.ID).Delete(&model.CheckNoteModel{}).Error; err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, 2)
		if check.ReversalTransactionID != nil {
			ids = append(ids, *check.ReversalTransactionID)
		}
		if check.TransactionID != nil {
			ids = append(ids, *check.TransactionID)
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("transaction_id IN ?", ids).Delete(&model.TransactionItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.TransactionModel{}).Error
	})
}
