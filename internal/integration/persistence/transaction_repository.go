package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/domain/ledger"
	"github.com/veresiye/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// CreateWithItems inserts a transaction and all its line items atomically.
func (r *transactionRepository) CreateWithItems(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}
		for _, item := range transaction.Items {
			if err := tx.Create(model.TransactionItemFromEntity(item)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID retrieves a transaction with its items.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByCounterparty retrieves all transactions for a counterparty.
func (r *transactionRepository) FindByCounterparty(ctx context.Context, counterpartyID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Preload("Items").
		Where("counterparty_id = ?", counterpartyID).
		Order("tx_date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// FindReversalOf returns the transaction reversing the given one, or nil.
func (r *transactionRepository) FindReversalOf(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Preload("Items").
		Where("reversed_of = ?", id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// CreateReversal inserts the compensating transaction and its item snapshot.
// The no-existing-reversal check runs inside the same write scope, so two
// concurrent reversals of one transaction cannot both commit.
func (r *transactionRepository) CreateReversal(ctx context.Context, originalID uuid.UUID, reversal *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.TransactionModel{}).
			Where("reversed_of = ?", originalID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeAlreadyReversed,
				"transaction has already been reversed",
				domainerror.ErrAlreadyReversed,
			)
		}

		if err := tx.Create(model.TransactionFromEntity(reversal)).Error; err != nil {
			return err
		}
		for _, item := range reversal.Items {
			if err := tx.Create(model.TransactionItemFromEntity(item)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCascade removes the transaction, its items, and its reversal if one
// exists. The cascade is forward-only: deleting a reversal row directly
// removes just that row.
func (r *transactionRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uuid.UUID{id}

		var reversalModel model.TransactionModel
		err := tx.Where("reversed_of = ?", id).First(&reversalModel).Error
		if err == nil {
			ids = append(ids, reversalModel.ID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Where("transaction_id IN ?", ids).Delete(&model.TransactionItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.TransactionModel{}).Error
	})
}

// FindItemsByProduct retrieves every line item for the product paired with
// its parent transaction's type, as the stock derivation consumes them.
func (r *transactionRepository) FindItemsByProduct(ctx context.Context, productID uuid.UUID) ([]ledger.ItemWithTxType, error) {
	var rows []struct {
		model.TransactionItemModel
		TxType string `gorm:"column:tx_type"`
	}
	result := r.db.WithContext(ctx).
		Model(&model.TransactionItemModel{}).
		Select("transaction_items.*, transactions.type AS tx_type").
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Where("transaction_items.product_id = ?", productID).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]ledger.ItemWithTxType, len(rows))
	for i, row := range rows {
		items[i] = ledger.ItemWithTxType{
			Item:   row.TransactionItemModel.ToEntity(),
			TxType: entity.TxType(row.TxType),
		}
	}
	return items, nil
}

// CountItemsByProduct reports how many line items reference the product.
func (r *transactionRepository) CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionItemModel{}).
		Where("product_id = ?", productID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// summaryRow is the scan target for the grouped category aggregates.
type summaryRow struct {
	Bucket      string          `gorm:"column:bucket"`
	Sales       decimal.Decimal `gorm:"column:sales"`
	Collections decimal.Decimal `gorm:"column:collections"`
	Purchases   decimal.Decimal `gorm:"column:purchases"`
	Payments    decimal.Decimal `gorm:"column:payments"`
}

const categorySums = "COALESCE(SUM(CASE WHEN type = 'sale' THEN amount ELSE 0 END), 0) AS sales, " +
	"COALESCE(SUM(CASE WHEN type = 'collection' THEN amount ELSE 0 END), 0) AS collections, " +
	"COALESCE(SUM(CASE WHEN type = 'purchase' THEN amount ELSE 0 END), 0) AS purchases, " +
	"COALESCE(SUM(CASE WHEN type = 'payment' THEN amount ELSE 0 END), 0) AS payments"

// SummarizeByDate groups amounts per day and category over a date range.
func (r *transactionRepository) SummarizeByDate(ctx context.Context, from, to time.Time) ([]*entity.DailySummary, error) {
	rows, err := r.summarize(ctx, r.dateBucket(), from, to)
	if err != nil {
		return nil, err
	}

	summaries := make([]*entity.DailySummary, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse("2006-01-02", row.Bucket)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &entity.DailySummary{
			Date:   date,
			Totals: row.toTotals(),
		})
	}
	return summaries, nil
}

// SummarizeByMonth groups amounts per calendar month and category.
func (r *transactionRepository) SummarizeByMonth(ctx context.Context, from, to time.Time) ([]*entity.MonthlySummary, error) {
	rows, err := r.summarize(ctx, r.monthBucket(), from, to)
	if err != nil {
		return nil, err
	}

	summaries := make([]*entity.MonthlySummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, &entity.MonthlySummary{
			Month:  row.Bucket,
			Totals: row.toTotals(),
		})
	}
	return summaries, nil
}

func (r *transactionRepository) summarize(ctx context.Context, bucket string, from, to time.Time) ([]summaryRow, error) {
	var rows []summaryRow
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select(bucket+" AS bucket, "+categorySums).
		Where("tx_date >= ? AND tx_date <= ?", from, to).
		Group("bucket").
		Order("bucket ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

// dateBucket and monthBucket pick the grouping expression per dialect:
// Postgres in production, SQLite in tests.
func (r *transactionRepository) dateBucket() string {
	if r.db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m-%d', tx_date)"
	}
	return "to_char(tx_date, 'YYYY-MM-DD')"
}

func (r *transactionRepository) monthBucket() string {
	if r.db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m', tx_date)"
	}
	return "to_char(tx_date, 'YYYY-MM')"
}

func (row summaryRow) toTotals() entity.CategoryTotals {
	return entity.CategoryTotals{
		Sales:       row.Sales,
		Collections: row.Collections,
		Purchases:   row.Purchases,
		Payments:    row.Payments,
	}
}
