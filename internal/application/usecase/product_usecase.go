package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/application/reference"
	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja por líneas de inventario.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. El código debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.ProductCode = strings.TrimSpace(in.ProductCode)
	if in.ProductCode == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: nombre y código son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.IsValidProductType(in.ProductType) {
		return nil, fmt.Errorf("%w: tipo de producto %q", domain.ErrInvalidInput, in.ProductType)
	}
	if in.ShelfLife != nil && *in.ShelfLife < 0 {
		return nil, fmt.Errorf("%w: la vida útil no puede ser negativa", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByCode(ctx, in.ProductCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el código de producto %s ya existe", domain.ErrDuplicate, in.ProductCode)
	}
	if in.Unit == "" {
		in.Unit = entity.DefaultProductUnit
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Code:              in.ProductCode,
		Name:              in.Name,
		Type:              in.ProductType,
		Specification:     in.Specification,
		Unit:              in.Unit,
		Description:       in.Description,
		StorageConditions: in.StorageConditions,
		ShelfLifeDays:     in.ShelfLife,
		Category:          in.Category,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. Solo se aplican los campos enviados; el código es inmutable.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.ProductType != nil {
		if !entity.IsValidProductType(*in.ProductType) {
			return nil, fmt.Errorf("%w: tipo de producto %q", domain.ErrInvalidInput, *in.ProductType)
		}
		product.Type = *in.ProductType
	}
	if in.Specification != nil {
		product.Specification = *in.Specification
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.StorageConditions != nil {
		product.StorageConditions = *in.StorageConditions
	}
	if in.ShelfLife != nil {
		if *in.ShelfLife < 0 {
			return nil, fmt.Errorf("%w: la vida útil no puede ser negativa", domain.ErrInvalidInput)
		}
		product.ShelfLifeDays = in.ShelfLife
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros y paginación skip/limit.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) ([]dto.ProductResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		Type:     in.ProductType,
		Category: in.Category,
		Search:   strings.TrimSpace(in.Search),
		Page:     repository.Page{Skip: in.Skip, Limit: in.Limit},
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto por ID. No verifica referencias desde inventario u órdenes.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := reference.ParseID(id); err != nil {
		return err
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	if err := reference.ParseID(id); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		ProductCode:       p.Code,
		ProductType:       p.Type,
		Specification:     p.Specification,
		Unit:              p.Unit,
		Description:       p.Description,
		StorageConditions: p.StorageConditions,
		ShelfLife:         p.ShelfLifeDays,
		Category:          p.Category,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
