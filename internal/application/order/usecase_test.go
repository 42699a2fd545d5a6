package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/application/order"
	"github.com/jhoicas/bioinventario-api/internal/application/reference"
	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
	"github.com/jhoicas/bioinventario-api/internal/infrastructure/memory"
)

const (
	supplierID = "11111111-1111-4111-8111-111111111111"
	customerID = "22222222-2222-4222-8222-222222222222"
	bothID     = "33333333-3333-4333-8333-333333333333"
	productID  = "44444444-4444-4444-8444-444444444444"
	missingID  = "55555555-5555-4555-8555-555555555555"
)

type stubRenderer struct {
	order   *entity.Order
	partner *entity.Partner
	err     error
}

func (r *stubRenderer) RenderOrder(_ context.Context, o *entity.Order, p *entity.Partner) ([]byte, error) {
	r.order, r.partner = o, p
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4"), nil
}

func newOrders(t *testing.T, renderer order.DocumentRenderer) *order.UseCase {
	t.Helper()
	return newOrdersWith(t, renderer, nil)
}

// newOrdersWith permite envolver el repositorio de órdenes (nil = sin envoltura).
func newOrdersWith(t *testing.T, renderer order.DocumentRenderer, wrap func(repository.OrderRepository) repository.OrderRepository) *order.UseCase {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	partners := memory.NewPartnerRepository(store)
	now := time.Now().UTC()
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: productID, Code: "ANT-7", Name: "Anticuerpo anti-GFP", Type: entity.ProductTypeAntibody,
		Unit: entity.DefaultProductUnit, CreatedAt: now, UpdatedAt: now,
	}))
	for _, p := range []entity.Partner{
		{ID: supplierID, Code: "SUP-1", Name: "BioInsumos SAS", Type: entity.PartnerTypeSupplier},
		{ID: customerID, Code: "CUS-1", Name: "Laboratorio Andino", Type: entity.PartnerTypeCustomer},
		{ID: bothID, Code: "BTH-1", Name: "Genómica del Sur", Type: entity.PartnerTypeBoth},
	} {
		p.IsActive, p.CreatedAt, p.UpdatedAt = true, now, now
		require.NoError(t, partners.Create(ctx, &p))
	}
	var repo repository.OrderRepository = memory.NewOrderRepository(store)
	if wrap != nil {
		repo = wrap(repo)
	}
	return order.NewUseCase(repo, reference.NewResolver(products, partners), renderer, zerolog.Nop())
}

func purchaseRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		SupplierID: supplierID,
		Items: []dto.OrderItemRequest{
			{ProductID: productID, Quantity: 2, UnitPrice: decimal.NewFromFloat(10)},
			{ProductID: missingID, Quantity: 3, UnitPrice: decimal.NewFromFloat(10)},
		},
	}
}

func TestCreate_Purchase(t *testing.T) {
	uc := newOrders(t, nil)

	o, err := uc.Create(context.Background(), entity.OrderKindPurchase, "ana", purchaseRequest())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(o.TotalAmount), o.TotalAmount.String())
	assert.Equal(t, entity.OrderStatusDraft, o.Status)
	assert.Regexp(t, `^PO\d{14}[A-Z0-9]{4}$`, o.OrderNumber)
	assert.Equal(t, "BioInsumos SAS", o.SupplierName)
	assert.Empty(t, o.CustomerID)
	assert.Equal(t, "ana", o.CreatedBy)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Anticuerpo anti-GFP", o.Items[0].ProductName)
	assert.Empty(t, o.Items[1].ProductName, "un producto inexistente no bloquea la orden")

	got, err := uc.Get(context.Background(), entity.OrderKindPurchase, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o, got)

	_, err = uc.Get(context.Background(), entity.OrderKindSales, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "una compra no es visible como venta")
}

func TestCreate_CounterpartyRole(t *testing.T) {
	uc := newOrders(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		kind string
		in   dto.CreateOrderRequest
		want error
	}{
		{"compra a un cliente", entity.OrderKindPurchase, dto.CreateOrderRequest{SupplierID: customerID}, domain.ErrNotFound},
		{"venta a un proveedor", entity.OrderKindSales, dto.CreateOrderRequest{CustomerID: supplierID}, domain.ErrNotFound},
		{"proveedor inexistente", entity.OrderKindPurchase, dto.CreateOrderRequest{SupplierID: missingID}, domain.ErrNotFound},
		{"id mal formado", entity.OrderKindPurchase, dto.CreateOrderRequest{SupplierID: "xyz"}, domain.ErrInvalidID},
		{"clase desconocida", "rental", dto.CreateOrderRequest{SupplierID: supplierID}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Items = []dto.OrderItemRequest{{ProductID: productID, Quantity: 1}}
			_, err := uc.Create(ctx, tt.kind, "ana", tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	for _, kind := range []string{entity.OrderKindPurchase, entity.OrderKindSales} {
		_, err := uc.Create(ctx, kind, "ana", dto.CreateOrderRequest{
			SupplierID: bothID, CustomerID: bothID,
			Items: []dto.OrderItemRequest{{ProductID: productID, Quantity: 1}},
		})
		assert.NoError(t, err, "BOTH sirve para %s", kind)
	}
}

func TestCreate_Sales(t *testing.T) {
	uc := newOrders(t, nil)

	o, err := uc.Create(context.Background(), entity.OrderKindSales, "ana", dto.CreateOrderRequest{
		CustomerID:      customerID,
		ShippingAddress: "Cra 7 # 40-62, Bogotá",
		Items:           []dto.OrderItemRequest{{ProductID: productID, Quantity: 4, UnitPrice: decimal.RequireFromString("12.5")}},
	})
	require.NoError(t, err)
	assert.Regexp(t, `^SO\d{14}[A-Z0-9]{4}$`, o.OrderNumber)
	assert.Equal(t, "Laboratorio Andino", o.CustomerName)
	assert.Equal(t, "Cra 7 # 40-62, Bogotá", o.ShippingAddress)
	assert.Empty(t, o.SupplierID)
	assert.True(t, decimal.NewFromInt(50).Equal(o.TotalAmount))
}

func TestCreate_InvalidItems(t *testing.T) {
	uc := newOrders(t, nil)
	for _, it := range []dto.OrderItemRequest{
		{ProductID: productID, Quantity: 0},
		{ProductID: productID, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)},
		{ProductID: productID, Quantity: 1, FulfilledQuantity: -1},
	} {
		_, err := uc.Create(context.Background(), entity.OrderKindPurchase, "ana",
			dto.CreateOrderRequest{SupplierID: supplierID, Items: []dto.OrderItemRequest{it}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestUpdate(t *testing.T) {
	uc := newOrders(t, nil)
	ctx := context.Background()
	o, err := uc.Create(ctx, entity.OrderKindPurchase, "ana", purchaseRequest())
	require.NoError(t, err)

	items := []dto.OrderItemRequest{{ProductID: productID, Quantity: 10, UnitPrice: decimal.RequireFromString("3.25")}}
	remark := "urgente"
	up, err := uc.Update(ctx, entity.OrderKindPurchase, o.ID, dto.UpdateOrderRequest{Items: &items, Remark: &remark})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("32.5").Equal(up.TotalAmount), up.TotalAmount.String())
	assert.Equal(t, "urgente", up.Remark)
	assert.Equal(t, o.OrderNumber, up.OrderNumber)
	assert.Equal(t, entity.OrderStatusDraft, up.Status)

	partner := bothID
	up, err = uc.Update(ctx, entity.OrderKindPurchase, o.ID, dto.UpdateOrderRequest{SupplierID: &partner})
	require.NoError(t, err)
	assert.Equal(t, bothID, up.SupplierID)
	assert.Equal(t, "Genómica del Sur", up.SupplierName)

	shipped := entity.OrderStatusShipped
	_, err = uc.Update(ctx, entity.OrderKindPurchase, o.ID, dto.UpdateOrderRequest{Status: &shipped})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "SHIPPED es un estado de venta")

	_, err = uc.Update(ctx, entity.OrderKindPurchase, missingID, dto.UpdateOrderRequest{Remark: &remark})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// approveAfterRead aprueba la orden justo después de la primera lectura de Update.
type approveAfterRead struct {
	repository.OrderRepository
	approve func()
	armed   bool
}

func (r *approveAfterRead) GetByID(ctx context.Context, kind, id string) (*entity.Order, error) {
	o, err := r.OrderRepository.GetByID(ctx, kind, id)
	if r.armed {
		r.armed = false
		r.approve()
	}
	return o, err
}

func TestUpdate_KeepsConcurrentApproval(t *testing.T) {
	var hook *approveAfterRead
	uc := newOrdersWith(t, nil, func(repo repository.OrderRepository) repository.OrderRepository {
		hook = &approveAfterRead{OrderRepository: repo}
		return hook
	})
	ctx := context.Background()
	o, err := uc.Create(ctx, entity.OrderKindPurchase, "ana", purchaseRequest())
	require.NoError(t, err)
	pending := entity.OrderStatusPending
	_, err = uc.Update(ctx, entity.OrderKindPurchase, o.ID, dto.UpdateOrderRequest{Status: &pending})
	require.NoError(t, err)

	hook.approve = func() {
		ap, err := uc.Approve(ctx, entity.OrderKindPurchase, o.ID)
		require.NoError(t, err)
		require.Equal(t, entity.OrderStatusApproved, ap.Status)
	}
	hook.armed = true
	remark := "entregar en recepción"
	up, err := uc.Update(ctx, entity.OrderKindPurchase, o.ID, dto.UpdateOrderRequest{Remark: &remark})
	require.NoError(t, err)
	assert.False(t, hook.armed)
	assert.Equal(t, entity.OrderStatusApproved, up.Status)
	assert.Equal(t, remark, up.Remark)

	got, err := uc.Get(ctx, entity.OrderKindPurchase, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusApproved, got.Status)
	assert.Equal(t, remark, got.Remark)
	assert.True(t, decimal.NewFromInt(50).Equal(got.TotalAmount), "los items no enviados no cambian")
}

func TestApprove_OnlyFromPending(t *testing.T) {
	uc := newOrders(t, nil)
	ctx := context.Background()

	setStatus := func(t *testing.T, id, status string) {
		t.Helper()
		_, err := uc.Update(ctx, entity.OrderKindPurchase, id, dto.UpdateOrderRequest{Status: &status})
		require.NoError(t, err)
	}

	for _, status := range []string{entity.OrderStatusDraft, entity.OrderStatusApproved, entity.OrderStatusCancelled} {
		t.Run(status, func(t *testing.T) {
			o, err := uc.Create(ctx, entity.OrderKindPurchase, "ana", purchaseRequest())
			require.NoError(t, err)
			setStatus(t, o.ID, status)

			_, err = uc.Approve(ctx, entity.OrderKindPurchase, o.ID)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)

			got, err := uc.Get(ctx, entity.OrderKindPurchase, o.ID)
			require.NoError(t, err)
			assert.Equal(t, status, got.Status)
		})
	}

	o, err := uc.Create(ctx, entity.OrderKindPurchase, "ana", purchaseRequest())
	require.NoError(t, err)
	setStatus(t, o.ID, entity.OrderStatusPending)
	ap, err := uc.Approve(ctx, entity.OrderKindPurchase, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusApproved, ap.Status)
}

func TestApprove_ConcurrentSingleWinner(t *testing.T) {
	uc := newOrders(t, nil)
	ctx := context.Background()
	o, err := uc.Create(ctx, entity.OrderKindSales, "ana", dto.CreateOrderRequest{
		CustomerID: customerID, Items: []dto.OrderItemRequest{{ProductID: productID, Quantity: 1}},
	})
	require.NoError(t, err)
	pending := entity.OrderStatusPending
	_, err = uc.Update(ctx, entity.OrderKindSales, o.ID, dto.UpdateOrderRequest{Status: &pending})
	require.NoError(t, err)

	errs := make([]error, 8)
	var g errgroup.Group
	for i := range errs {
		g.Go(func() error {
			_, errs[i] = uc.Approve(ctx, entity.OrderKindSales, o.ID)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
	assert.Equal(t, 1, wins)
}

func TestDelete(t *testing.T) {
	uc := newOrders(t, nil)
	ctx := context.Background()
	o, err := uc.Create(ctx, entity.OrderKindPurchase, "ana", purchaseRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, entity.OrderKindSales, o.ID), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, entity.OrderKindPurchase, o.ID))
	assert.ErrorIs(t, uc.Delete(ctx, entity.OrderKindPurchase, o.ID), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, entity.OrderKindPurchase, "no-uuid"), domain.ErrInvalidID)
}

func TestList_Filters(t *testing.T) {
	uc := newOrders(t, nil)
	ctx := context.Background()
	_, err := uc.Create(ctx, entity.OrderKindPurchase, "ana", purchaseRequest())
	require.NoError(t, err)
	req := purchaseRequest()
	req.SupplierID = bothID
	second, err := uc.Create(ctx, entity.OrderKindPurchase, "ana", req)
	require.NoError(t, err)
	_, err = uc.Create(ctx, entity.OrderKindSales, "ana", dto.CreateOrderRequest{
		CustomerID: customerID, Items: []dto.OrderItemRequest{{ProductID: productID, Quantity: 1}},
	})
	require.NoError(t, err)

	all, err := uc.List(ctx, entity.OrderKindPurchase, dto.OrderListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bySupplier, err := uc.List(ctx, entity.OrderKindPurchase, dto.OrderListRequest{SupplierID: bothID})
	require.NoError(t, err)
	require.Len(t, bySupplier, 1)
	assert.Equal(t, second.ID, bySupplier[0].ID)

	pending, err := uc.List(ctx, entity.OrderKindPurchase, dto.OrderListRequest{Status: entity.OrderStatusPending})
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRenderPDF(t *testing.T) {
	ctx := context.Background()

	uc := newOrders(t, nil)
	o, err := uc.Create(ctx, entity.OrderKindPurchase, "ana", purchaseRequest())
	require.NoError(t, err)
	_, _, err = uc.RenderPDF(ctx, entity.OrderKindPurchase, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "sin generador configurado")

	r := &stubRenderer{}
	uc = newOrders(t, r)
	o, err = uc.Create(ctx, entity.OrderKindPurchase, "ana", purchaseRequest())
	require.NoError(t, err)
	pdf, name, err := uc.RenderPDF(ctx, entity.OrderKindPurchase, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(pdf))
	assert.Equal(t, o.OrderNumber+".pdf", name)
	require.NotNil(t, r.partner)
	assert.Equal(t, "BioInsumos SAS", r.partner.Name)
	assert.Equal(t, o.ID, r.order.ID)

	r.err = errors.New("fuente no disponible")
	_, _, err = uc.RenderPDF(ctx, entity.OrderKindPurchase, o.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
