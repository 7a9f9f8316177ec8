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

// productRepository implements the adapter.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance.
func NewProductRepository(db *gorm.DB) adapter.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// Create creates a new product in the database.
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productModel := model.ProductFromEntity(product)
	result := r.db.WithContext(ctx).Create(productModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a product by its ID.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productModel model.ProductModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&productModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProductNotFound
		}
		return nil, result.Error
	}
	return productModel.ToEntity(), nil
}

// FindAll retrieves products ordered by name.
func (r *productRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.ProductModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var productModels []model.ProductModel
	result := query.Order("name ASC").Find(&productModels)
	if result.Error != nil {
		return nil, result.Error
	}

	products := make([]*entity.Product, len(productModels))
	for i, pm := range productModels {
		products[i] = pm.ToEntity()
	}
	return products, nil
}

// FindByNameInsensitive retrieves a product by case- and trim-insensitive name.
func (r *productRepository) FindByNameInsensitive(ctx context.Context, name string) (*entity.Product, error) {
	var productModel model.ProductModel
	result := r.db.WithContext(ctx).
		Where("LOWER(TRIM(name)) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&productModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return productModel.ToEntity(), nil
}

// Update updates an existing product in the database.
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productModel := model.ProductFromEntity(product)
	result := r.db.WithContext(ctx).Save(productModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete hard-deletes a product.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// stockAdjustmentRepository implements the adapter.StockAdjustmentRepository interface.
type stockAdjustmentRepository struct {
	db *gorm.DB
}

// NewStockAdjustmentRepository creates a new stock adjustment repository instance.
func NewStockAdjustmentRepository(db *gorm.DB) adapter.StockAdjustmentRepository {
	return &stockAdjustmentRepository{
		db: db,
	}
}

// Create appends a stock adjustment.
func (r *stockAdjustmentRepository) Create(ctx context.Context, adjustment *entity.StockAdjustment) error {
	adjustmentModel := model.StockAdjustmentFromEntity(adjustment)
	result := r.db.WithContext(ctx).Create(adjustmentModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByProduct retrieves all adjustments for a product in insertion order.
func (r *stockAdjustmentRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.StockAdjustment, error) {
	var adjustmentModels []model.StockAdjustmentModel
	result := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&adjustmentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	adjustments := make([]*entity.StockAdjustment, len(adjustmentModels))
	for i, am := range adjustmentModels {
		adjustments[i] = am.ToEntity()
	}
	return adjustments, nil
}
