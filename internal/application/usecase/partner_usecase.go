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

// PartnerUseCase casos de uso CRUD para proveedores y clientes.
type PartnerUseCase struct {
	repo repository.PartnerRepository
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(repo repository.PartnerRepository) *PartnerUseCase {
	return &PartnerUseCase{repo: repo}
}

// Create crea un socio comercial. El código debe ser único; is_active por defecto true.
func (uc *PartnerUseCase) Create(ctx context.Context, in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	in.PartnerCode = strings.TrimSpace(in.PartnerCode)
	if in.PartnerCode == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: nombre y código son obligatorios", domain.ErrInvalidInput)
	}
	if !entity.IsValidPartnerType(in.PartnerType) {
		return nil, fmt.Errorf("%w: tipo de socio %q", domain.ErrInvalidInput, in.PartnerType)
	}
	existing, err := uc.repo.GetByCode(ctx, in.PartnerCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el código de socio %s ya existe", domain.ErrDuplicate, in.PartnerCode)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now().UTC()
	partner := &entity.Partner{
		ID:            uuid.New().String(),
		Code:          in.PartnerCode,
		Name:          in.Name,
		Type:          in.PartnerType,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		BankAccount:   in.BankAccount,
		TaxNumber:     in.TaxNumber,
		Remark:        in.Remark,
		IsActive:      active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, partner); err != nil {
		return nil, err
	}
	return toPartnerResponse(partner), nil
}

// GetByID obtiene un socio por ID.
func (uc *PartnerUseCase) GetByID(ctx context.Context, id string) (*dto.PartnerResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPartnerResponse(p), nil
}

// Update aplica una edición parcial. El código es inmutable.
func (uc *PartnerUseCase) Update(ctx context.Context, id string, in dto.UpdatePartnerRequest) (*dto.PartnerResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.PartnerType != nil {
		if !entity.IsValidPartnerType(*in.PartnerType) {
			return nil, fmt.Errorf("%w: tipo de socio %q", domain.ErrInvalidInput, *in.PartnerType)
		}
		p.Type = *in.PartnerType
	}
	setIf(&p.Name, in.Name)
	setIf(&p.ContactPerson, in.ContactPerson)
	setIf(&p.Phone, in.Phone)
	setIf(&p.Email, in.Email)
	setIf(&p.Address, in.Address)
	setIf(&p.BankAccount, in.BankAccount)
	setIf(&p.TaxNumber, in.TaxNumber)
	setIf(&p.Remark, in.Remark)
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPartnerResponse(p), nil
}

// List lista socios filtrando por tipo, estado y texto.
func (uc *PartnerUseCase) List(ctx context.Context, in dto.PartnerListRequest) ([]dto.PartnerResponse, error) {
	var types []string
	if in.PartnerType != "" {
		types = []string{in.PartnerType}
	}
	return uc.list(ctx, types, in)
}

// ListSuppliers lista proveedores (SUPPLIER y BOTH). is_active por defecto true.
func (uc *PartnerUseCase) ListSuppliers(ctx context.Context, in dto.PartnerListRequest) ([]dto.PartnerResponse, error) {
	return uc.list(ctx, []string{entity.PartnerTypeSupplier, entity.PartnerTypeBoth}, withActiveDefault(in))
}

// ListCustomers lista clientes (CUSTOMER y BOTH). is_active por defecto true.
func (uc *PartnerUseCase) ListCustomers(ctx context.Context, in dto.PartnerListRequest) ([]dto.PartnerResponse, error) {
	return uc.list(ctx, []string{entity.PartnerTypeCustomer, entity.PartnerTypeBoth}, withActiveDefault(in))
}

// Delete elimina un socio. Las órdenes conservan su copia del nombre.
func (uc *PartnerUseCase) Delete(ctx context.Context, id string) error {
	if err := reference.ParseID(id); err != nil {
		return err
	}
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: socio %s", domain.ErrNotFound, id)
	}
	return nil
}

func (uc *PartnerUseCase) list(ctx context.Context, types []string, in dto.PartnerListRequest) ([]dto.PartnerResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.PartnerFilter{
		Types:    types,
		IsActive: in.IsActive,
		Search:   strings.TrimSpace(in.Search),
		Page:     repository.Page{Skip: in.Skip, Limit: in.Limit},
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartnerResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartnerResponse(p))
	}
	return items, nil
}

func (uc *PartnerUseCase) get(ctx context.Context, id string) (*entity.Partner, error) {
	if err := reference.ParseID(id); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: socio %s", domain.ErrNotFound, id)
	}
	return p, nil
}

func withActiveDefault(in dto.PartnerListRequest) dto.PartnerListRequest {
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	return in
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func toPartnerResponse(p *entity.Partner) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:            p.ID,
		Name:          p.Name,
		PartnerCode:   p.Code,
		PartnerType:   p.Type,
		ContactPerson: p.ContactPerson,
		Phone:         p.Phone,
		Email:         p.Email,
		Address:       p.Address,
		BankAccount:   p.BankAccount,
		TaxNumber:     p.TaxNumber,
		Remark:        p.Remark,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
