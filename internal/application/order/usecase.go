// Package order implementa el flujo de órdenes de compra y venta: alta con contraparte validada,
// edición parcial con recálculo de totales, aprobación condicional y documento imprimible.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/application/reference"
	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	domainorder "github.com/jhoicas/bioinventario-api/internal/domain/order"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

// numberAttempts intentos de generar un número de orden libre ante colisión del índice único.
const numberAttempts = 3

// UseCase casos de uso de órdenes; cada método recibe la clase (purchase|sales).
type UseCase struct {
	repo     repository.OrderRepository
	resolver *reference.Resolver
	renderer DocumentRenderer
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. renderer puede ser nil si no se expone el PDF.
func NewUseCase(repo repository.OrderRepository, resolver *reference.Resolver, renderer DocumentRenderer, log zerolog.Logger) *UseCase {
	return &UseCase{
		repo:     repo,
		resolver: resolver,
		renderer: renderer,
		log:      log,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Create crea una orden en DRAFT. La contraparte debe existir con el rol de la clase;
// los nombres de producto se resuelven sin exigir que el producto exista.
func (uc *UseCase) Create(ctx context.Context, kind, createdBy string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !domainorder.IsValidKind(kind) {
		return nil, fmt.Errorf("%w: clase de orden %q", domain.ErrInvalidInput, kind)
	}
	partner, err := uc.resolver.Counterparty(ctx, kind, partnerIDFor(kind, in.SupplierID, in.CustomerID))
	if err != nil {
		return nil, err
	}
	items, err := uc.buildItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	o := &entity.Order{
		ID:           uuid.New().String(),
		Kind:         kind,
		PartnerID:    partner.ID,
		PartnerName:  partner.Name,
		Items:        items,
		TotalAmount:  domainorder.Total(items),
		Status:       entity.OrderStatusDraft,
		OrderDate:    now,
		ExpectedDate: in.ExpectedDate,
		Remark:       in.Remark,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if kind == entity.OrderKindSales {
		o.ShippingAddress = in.ShippingAddress
	}
	for attempt := 1; ; attempt++ {
		o.OrderNumber = domainorder.GenerateNumber(kind, now)
		err = uc.repo.Create(ctx, o)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) || attempt == numberAttempts {
			return nil, err
		}
		uc.log.Debug().Str("order_number", o.OrderNumber).Int("attempt", attempt).Msg("número de orden repetido, reintentando")
	}
	uc.log.Info().Str("kind", kind).Str("order_number", o.OrderNumber).Str("total", o.TotalAmount.String()).Msg("orden creada")
	return toOrderResponse(o), nil
}

// Get obtiene una orden por ID.
func (uc *UseCase) Get(ctx context.Context, kind, id string) (*dto.OrderResponse, error) {
	o, err := uc.get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// List lista órdenes de la clase, más recientes primero.
func (uc *UseCase) List(ctx context.Context, kind string, in dto.OrderListRequest) ([]dto.OrderResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.OrderFilter{
		Kind:      kind,
		Status:    in.Status,
		PartnerID: partnerIDFor(kind, in.SupplierID, in.CustomerID),
		Page:      repository.Page{Skip: in.Skip, Limit: in.Limit},
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

// Update aplica solo los campos enviados. Items recalcula el total; un cambio de contraparte
// refresca su nombre solo si la nueva contraparte se resuelve; status debe pertenecer a la clase.
// Las columnas no enviadas no se reescriben, así una aprobación concurrente no se pierde.
func (uc *UseCase) Update(ctx context.Context, kind, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	o, err := uc.get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	patch := repository.OrderPatch{
		ExpectedDate: in.ExpectedDate,
		Remark:       in.Remark,
		UpdatedAt:    uc.now(),
	}
	if in.Status != nil {
		if !domainorder.IsValidStatus(kind, *in.Status) {
			return nil, fmt.Errorf("%w: estado %q no válido para la orden", domain.ErrInvalidInput, *in.Status)
		}
		patch.Status = in.Status
	}
	newPartner := in.SupplierID
	if kind == entity.OrderKindSales {
		newPartner = in.CustomerID
		patch.ShippingAddress = in.ShippingAddress
	}
	if newPartner != nil && *newPartner != o.PartnerID {
		patch.PartnerID = newPartner
		if name, ok := uc.resolver.PartnerName(ctx, kind, *newPartner); ok {
			patch.PartnerName = &name
		}
	}
	if in.Items != nil {
		items, err := uc.buildItems(ctx, *in.Items)
		if err != nil {
			return nil, err
		}
		total := domainorder.Total(items)
		patch.Items, patch.TotalAmount = &items, &total
	}
	updated, err := uc.repo.Update(ctx, kind, id, patch)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(updated), nil
}

// Approve pasa la orden de PENDING a APPROVED. Cualquier otro estado es ErrInvalidTransition.
// El cambio es condicional en el store: de dos aprobaciones concurrentes solo una gana.
func (uc *UseCase) Approve(ctx context.Context, kind, id string) (*dto.OrderResponse, error) {
	o, err := uc.get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if err := domainorder.CheckApprove(o.Status); err != nil {
		return nil, err
	}
	now := uc.now()
	ok, err := uc.repo.UpdateStatusIf(ctx, kind, id, entity.OrderStatusPending, entity.OrderStatusApproved, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Otro request cambió el estado entre la lectura y la actualización
		current, err := uc.get(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		return nil, domainorder.CheckApprove(current.Status)
	}
	o.Status = entity.OrderStatusApproved
	o.UpdatedAt = now
	uc.log.Info().Str("kind", kind).Str("order_number", o.OrderNumber).Msg("orden aprobada")
	return toOrderResponse(o), nil
}

// Delete elimina la orden sin importar su estado.
func (uc *UseCase) Delete(ctx context.Context, kind, id string) error {
	if err := reference.ParseID(id); err != nil {
		return err
	}
	ok, err := uc.repo.Delete(ctx, kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	return nil
}

// RenderPDF genera el documento imprimible de la orden y el nombre de archivo sugerido.
func (uc *UseCase) RenderPDF(ctx context.Context, kind, id string) (pdfBytes []byte, filename string, err error) {
	if uc.renderer == nil {
		return nil, "", fmt.Errorf("%w: generación de PDF no configurada", domain.ErrNotFound)
	}
	o, err := uc.get(ctx, kind, id)
	if err != nil {
		return nil, "", err
	}
	var partner *entity.Partner
	if p, err := uc.resolver.Counterparty(ctx, kind, o.PartnerID); err == nil {
		partner = p
	}
	pdfBytes, err = uc.renderer.RenderOrder(ctx, o, partner)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, o.OrderNumber + ".pdf", nil
}

func (uc *UseCase) get(ctx context.Context, kind, id string) (*entity.Order, error) {
	if err := reference.ParseID(id); err != nil {
		return nil, err
	}
	o, err := uc.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	return o, nil
}

// buildItems valida cantidades y precios y toma la copia del nombre de cada producto.
func (uc *UseCase) buildItems(ctx context.Context, in []dto.OrderItemRequest) ([]entity.OrderItem, error) {
	items := make([]entity.OrderItem, 0, len(in))
	for i, it := range in {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea %d: la cantidad debe ser mayor que cero", domain.ErrInvalidInput, i+1)
		}
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d: el precio no puede ser negativo", domain.ErrInvalidInput, i+1)
		}
		if it.FulfilledQuantity < 0 {
			return nil, fmt.Errorf("%w: línea %d: cantidad cumplida negativa", domain.ErrInvalidInput, i+1)
		}
		items = append(items, entity.OrderItem{
			ProductID:         it.ProductID,
			ProductName:       uc.resolver.ProductName(ctx, it.ProductID),
			Quantity:          it.Quantity,
			UnitPrice:         it.UnitPrice,
			FulfilledQuantity: it.FulfilledQuantity,
			Remark:            it.Remark,
		})
	}
	return items, nil
}

func partnerIDFor(kind, supplierID, customerID string) string {
	if kind == entity.OrderKindSales {
		return customerID
	}
	return supplierID
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		Items:        make([]dto.OrderItemResponse, 0, len(o.Items)),
		TotalAmount:  o.TotalAmount,
		Status:       o.Status,
		OrderDate:    o.OrderDate,
		ExpectedDate: o.ExpectedDate,
		Remark:       o.Remark,
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.Kind == entity.OrderKindSales {
		out.CustomerID = o.PartnerID
		out.CustomerName = o.PartnerName
		out.ShippingAddress = o.ShippingAddress
	} else {
		out.SupplierID = o.PartnerID
		out.SupplierName = o.PartnerName
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			ProductID:         it.ProductID,
			ProductName:       it.ProductName,
			Quantity:          it.Quantity,
			UnitPrice:         it.UnitPrice,
			FulfilledQuantity: it.FulfilledQuantity,
			Remark:            it.Remark,
		})
	}
	return out
}
