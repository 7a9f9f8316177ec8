// Package product contains product and stock use cases.
package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
	domainerror "github.com/veresiye/backend/internal/domain/error"
)

// CreateProductInput represents the input for product creation.
type CreateProductInput struct {
	Name string
	Unit entity.ProductUnit
}

// CreateProductOutput represents the output of product creation.
type CreateProductOutput struct {
	Product *entity.Product
}

// CreateProductUseCase handles product creation logic.
type CreateProductUseCase struct {
	productRepo adapter.ProductRepository
}

// NewCreateProductUseCase creates a new CreateProductUseCase instance.
func NewCreateProductUseCase(productRepo adapter.ProductRepository) *CreateProductUseCase {
	return &CreateProductUseCase{productRepo: productRepo}
}

// Execute performs the product creation. Names are unique case- and
// trim-insensitively so "Domates " and "domates" cannot coexist.
func (uc *CreateProductUseCase) Execute(ctx context.Context, input CreateProductInput) (*CreateProductOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewProductError(
			domainerror.ErrCodeEmptyProductName,
			"product name cannot be empty",
			domainerror.ErrEmptyProductName,
		)
	}

	if !isValidProductUnit(input.Unit) {
		return nil, domainerror.NewProductError(
			domainerror.ErrCodeInvalidProductUnit,
			"unit must be 'kg', 'kasa' or 'adet'",
			domainerror.ErrInvalidProductUnit,
		)
	}

	existing, err := uc.productRepo.FindByNameInsensitive(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check product name: %w", err)
	}
	if existing != nil {
		return nil, domainerror.NewProductError(
			domainerror.ErrCodeProductNameTaken,
			fmt.Sprintf("a product named %q already exists", existing.Name),
			domainerror.ErrProductNameTaken,
		)
	}

	product := entity.NewProduct(name, input.Unit)
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &CreateProductOutput{Product: product}, nil
}

func isValidProductUnit(unit entity.ProductUnit) bool {
	switch unit {
	case entity.ProductUnitKg, entity.ProductUnitKasa, entity.ProductUnitAdet:
		return true
	}
	return false
}
