package dto

import "time"

// CreatePartnerRequest entrada para crear un proveedor/cliente.
type CreatePartnerRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	PartnerCode   string `json:"partner_code" validate:"required,min=1,max=100"`
	PartnerType   string `json:"partner_type" validate:"required,oneof=SUPPLIER CUSTOMER BOTH"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
	BankAccount   string `json:"bank_account"`
	TaxNumber     string `json:"tax_number"`
	Remark        string `json:"remark"`
	IsActive      *bool  `json:"is_active"`
}

// UpdatePartnerRequest entrada parcial de un socio.
type UpdatePartnerRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	PartnerType   *string `json:"partner_type" validate:"omitempty,oneof=SUPPLIER CUSTOMER BOTH"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
	BankAccount   *string `json:"bank_account"`
	TaxNumber     *string `json:"tax_number"`
	Remark        *string `json:"remark"`
	IsActive      *bool   `json:"is_active"`
}

// PartnerListRequest filtros de GET /api/partners/.
type PartnerListRequest struct {
	PartnerType string `query:"partner_type" validate:"omitempty,oneof=SUPPLIER CUSTOMER BOTH"`
	IsActive    *bool  `query:"is_active"`
	Search      string `query:"search"`
	PageRequest
}

// PartnerResponse salida de un socio.
type PartnerResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	PartnerCode   string    `json:"partner_code"`
	PartnerType   string    `json:"partner_type"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	BankAccount   string    `json:"bank_account,omitempty"`
	TaxNumber     string    `json:"tax_number,omitempty"`
	Remark        string    `json:"remark,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
