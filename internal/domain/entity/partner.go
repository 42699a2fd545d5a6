package entity

import "time"

// Tipos de socio comercial.
const (
	PartnerTypeSupplier = "SUPPLIER" // proveedor
	PartnerTypeCustomer = "CUSTOMER" // cliente
	PartnerTypeBoth     = "BOTH"     // proveedor y cliente
)

// Partner representa un proveedor y/o cliente. Es la contraparte de las órdenes de compra y venta.
type Partner struct {
	ID            string
	Code          string // código único (partner_code)
	Name          string
	Type          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	BankAccount   string
	TaxNumber     string
	Remark        string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsValidPartnerType indica si t pertenece al enumerado de tipos de socio.
func IsValidPartnerType(t string) bool {
	return t == PartnerTypeSupplier || t == PartnerTypeCustomer || t == PartnerTypeBoth
}

// IsSupplier es true para SUPPLIER y BOTH.
func (p *Partner) IsSupplier() bool {
	return p.Type == PartnerTypeSupplier || p.Type == PartnerTypeBoth
}

// IsCustomer es true para CUSTOMER y BOTH.
func (p *Partner) IsCustomer() bool {
	return p.Type == PartnerTypeCustomer || p.Type == PartnerTypeBoth
}
