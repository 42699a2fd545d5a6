package reference_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bioinventario-api/internal/application/reference"
	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
	"github.com/jhoicas/bioinventario-api/internal/infrastructure/memory"
)

const (
	productID  = "aaaaaaaa-0000-4000-8000-000000000001"
	supplierID = "aaaaaaaa-0000-4000-8000-000000000002"
	customerID = "aaaaaaaa-0000-4000-8000-000000000003"
	missingID  = "aaaaaaaa-0000-4000-8000-0000000000ff"
)

func newResolver(t *testing.T) *reference.Resolver {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	products := memory.NewProductRepository(s)
	partners := memory.NewPartnerRepository(s)
	require.NoError(t, products.Create(ctx, &entity.Product{ID: productID, Code: "PRO-001", Name: "Proteína A", Type: entity.ProductTypeProtein}))
	require.NoError(t, partners.Create(ctx, &entity.Partner{ID: supplierID, Code: "S-1", Name: "Proveedor", Type: entity.PartnerTypeSupplier}))
	require.NoError(t, partners.Create(ctx, &entity.Partner{ID: customerID, Code: "C-1", Name: "Cliente", Type: entity.PartnerTypeCustomer}))
	return reference.NewResolver(products, partners)
}

func TestParseID(t *testing.T) {
	assert.NoError(t, reference.ParseID(productID))
	for _, id := range []string{"", "123", "not-a-uuid", productID + "x"} {
		assert.ErrorIs(t, reference.ParseID(id), domain.ErrInvalidID, id)
	}
}

func TestResolver_Product(t *testing.T) {
	r := newResolver(t)
	ctx := context.Background()

	p, err := r.Product(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, "PRO-001", p.Code)

	_, err = r.Product(ctx, missingID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.Product(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestResolver_CounterpartyRole(t *testing.T) {
	r := newResolver(t)
	ctx := context.Background()

	p, err := r.Counterparty(ctx, entity.OrderKindPurchase, supplierID)
	require.NoError(t, err)
	assert.Equal(t, "Proveedor", p.Name)

	_, err = r.Counterparty(ctx, entity.OrderKindSales, supplierID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "cliente")

	_, err = r.Counterparty(ctx, entity.OrderKindPurchase, customerID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolver_BestEffortNames(t *testing.T) {
	r := newResolver(t)
	ctx := context.Background()

	assert.Equal(t, "Proteína A", r.ProductName(ctx, productID))
	assert.Empty(t, r.ProductName(ctx, missingID))
	assert.Empty(t, r.ProductName(ctx, "no-uuid"))
	assert.Empty(t, r.ProductName(ctx, ""))

	name, code := r.ProductLabel(ctx, productID)
	assert.Equal(t, "Proteína A", name)
	assert.Equal(t, "PRO-001", code)

	name, ok := r.PartnerName(ctx, entity.OrderKindSales, customerID)
	assert.True(t, ok)
	assert.Equal(t, "Cliente", name)
	_, ok = r.PartnerName(ctx, entity.OrderKindSales, supplierID)
	assert.False(t, ok)
}

// brokenProducts simula un store caído.
type brokenProducts struct{ repository.ProductRepository }

func (brokenProducts) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, errors.New("conexión rechazada")
}

func TestResolver_StoreErrors(t *testing.T) {
	r := reference.NewResolver(brokenProducts{}, memory.NewPartnerRepository(memory.NewStore()))
	ctx := context.Background()

	_, err := r.Product(ctx, productID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, r.ProductName(ctx, productID), "la resolución de nombres no propaga el error")
}
