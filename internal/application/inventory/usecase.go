package inventory

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
	domaininv "github.com/jhoicas/bioinventario-api/internal/domain/inventory"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

// LedgerUseCase administra las líneas de inventario y el libro de movimientos.
// Toda mutación de cantidad corre dentro de TxRunner: bloqueo de fila (SELECT FOR UPDATE),
// actualización condicional y registro del movimiento, con Commit/Rollback.
type LedgerUseCase struct {
	txRunner TxRunner
	lineRepo repository.InventoryLineRepository
	txRepo   repository.InventoryTransactionRepository
	resolver *reference.Resolver
	log      zerolog.Logger
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	lineRepo repository.InventoryLineRepository,
	txRepo repository.InventoryTransactionRepository,
	resolver *reference.Resolver,
	log zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner: txRunner,
		lineRepo: lineRepo,
		txRepo:   txRepo,
		resolver: resolver,
		log:      log,
		now:      Now,
	}
}

// Now hora UTC truncada a microsegundos (la precisión de timestamptz), así el cursor es estable en ambos stores.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// CreateLine abre una línea de inventario. El producto debe existir.
// La cantidad inicial no genera movimiento: es el saldo de apertura de la línea.
func (uc *LedgerUseCase) CreateLine(ctx context.Context, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	if in.Quantity < 0 || in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: cantidad y precio no pueden ser negativos", domain.ErrInvalidInput)
	}
	product, err := uc.resolver.Product(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if in.Warehouse == "" {
		in.Warehouse = entity.DefaultWarehouse
	}
	now := uc.now()
	line := &entity.InventoryLine{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Warehouse:   in.Warehouse,
		BatchNumber: in.BatchNumber,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Location:    in.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.lineRepo.Create(ctx, line); err != nil {
		return nil, err
	}
	return toInventoryResponse(line, product.Name, product.Code), nil
}

// GetLine obtiene una línea con el nombre y código del producto.
func (uc *LedgerUseCase) GetLine(ctx context.Context, id string) (*dto.InventoryResponse, error) {
	line, err := uc.getLine(ctx, id)
	if err != nil {
		return nil, err
	}
	name, code := uc.resolver.ProductLabel(ctx, line.ProductID)
	return toInventoryResponse(line, name, code), nil
}

// ListLines lista líneas filtrando por producto y bodega.
func (uc *LedgerUseCase) ListLines(ctx context.Context, in dto.InventoryListRequest) ([]dto.InventoryResponse, error) {
	in.DefaultPage()
	list, err := uc.lineRepo.List(ctx, repository.InventoryLineFilter{
		ProductID: in.ProductID,
		Warehouse: in.Warehouse,
		Page:      repository.Page{Skip: in.Skip, Limit: in.Limit},
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryResponse, 0, len(list))
	for _, l := range list {
		name, code := uc.resolver.ProductLabel(ctx, l.ProductID)
		out = append(out, *toInventoryResponse(l, name, code))
	}
	return out, nil
}

// UpdateLine aplica una edición parcial. Si cambia quantity, registra un ADJUST por la diferencia
// en la misma transacción; una cantidad resultante negativa se rechaza.
func (uc *LedgerUseCase) UpdateLine(ctx context.Context, id, operator string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	if err := reference.ParseID(id); err != nil {
		return nil, err
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	var updated *entity.InventoryLine
	var delta int
	err := uc.txRunner.Run(ctx, func(lineRepo repository.InventoryLineRepository, txRepo repository.InventoryTransactionRepository) error {
		line, err := lineRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("%w: línea de inventario %s", domain.ErrNotFound, id)
		}
		if in.Warehouse != nil {
			line.Warehouse = *in.Warehouse
		}
		if in.BatchNumber != nil {
			line.BatchNumber = *in.BatchNumber
		}
		if in.UnitPrice != nil {
			line.UnitPrice = *in.UnitPrice
		}
		if in.Location != nil {
			line.Location = *in.Location
		}
		now := uc.now()
		line.UpdatedAt = now
		if err := lineRepo.UpdateDetails(ctx, line); err != nil {
			return err
		}
		if in.Quantity != nil && *in.Quantity != line.Quantity {
			delta = *in.Quantity - line.Quantity
			qty, err := lineRepo.AddQuantity(ctx, line.ID, delta)
			if err != nil {
				return err
			}
			line.Quantity = qty
			if err := txRepo.Create(ctx, &entity.InventoryTransaction{
				ID:          uuid.New().String(),
				ProductID:   line.ProductID,
				InventoryID: line.ID,
				Type:        entity.OperationADJUST,
				Quantity:    delta,
				BatchNumber: line.BatchNumber,
				Operator:    operator,
				Remark:      "edición directa de la línea",
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}
		updated = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	if delta != 0 {
		observeMovement(entity.OperationADJUST, delta)
		uc.log.Info().Str("inventory_id", id).Int("delta", delta).Int("quantity", updated.Quantity).
			Str("operator", operator).Msg("ajuste de inventario")
	}
	name, code := uc.resolver.ProductLabel(ctx, updated.ProductID)
	return toInventoryResponse(updated, name, code), nil
}

// Receive registra una entrada (IN): suma quantity a la línea y añade el movimiento.
func (uc *LedgerUseCase) Receive(ctx context.Context, operator string, in dto.StockMovementRequest) (*dto.TransactionResponse, error) {
	return uc.move(ctx, entity.OperationIN, operator, in)
}

// Issue registra una salida (OUT). Falla con *domain.InsufficientStockError si quantity > stock actual;
// en ese caso la línea no cambia.
func (uc *LedgerUseCase) Issue(ctx context.Context, operator string, in dto.StockMovementRequest) (*dto.TransactionResponse, error) {
	return uc.move(ctx, entity.OperationOUT, operator, in)
}

func (uc *LedgerUseCase) move(ctx context.Context, op, operator string, in dto.StockMovementRequest) (*dto.TransactionResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if err := reference.ParseID(in.InventoryID); err != nil {
		return nil, err
	}
	delta := in.Quantity
	if op == entity.OperationOUT {
		delta = -in.Quantity
	}
	if in.Operator != "" {
		operator = in.Operator
	}

	var rec *entity.InventoryTransaction
	err := uc.txRunner.Run(ctx, func(lineRepo repository.InventoryLineRepository, txRepo repository.InventoryTransactionRepository) error {
		// Bloquea la fila de la línea hasta el Commit para evitar condiciones de carrera
		line, err := lineRepo.GetForUpdate(ctx, in.InventoryID)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("%w: línea de inventario %s", domain.ErrNotFound, in.InventoryID)
		}
		if in.ProductID != "" && in.ProductID != line.ProductID {
			return fmt.Errorf("%w: el producto no corresponde a la línea de inventario", domain.ErrInvalidInput)
		}
		if _, err := domaininv.ApplyDelta(line.Quantity, delta); err != nil {
			return err
		}
		if _, err := lineRepo.AddQuantity(ctx, line.ID, delta); err != nil {
			return err
		}
		batch := in.BatchNumber
		if batch == "" {
			batch = line.BatchNumber
		}
		rec = &entity.InventoryTransaction{
			ID:             uuid.New().String(),
			ProductID:      line.ProductID,
			InventoryID:    line.ID,
			Type:           op,
			Quantity:       delta,
			BatchNumber:    batch,
			RelatedOrderID: in.RelatedOrderID,
			Operator:       operator,
			Remark:         in.Remark,
			CreatedAt:      uc.now(),
		}
		return txRepo.Create(ctx, rec)
	})
	if err != nil {
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			insufficientStockTotal.Inc()
			uc.log.Warn().Str("inventory_id", in.InventoryID).Int("current", stockErr.Current).
				Int("requested", stockErr.Requested).Msg("salida rechazada por stock insuficiente")
		}
		return nil, err
	}
	observeMovement(op, delta)
	uc.log.Info().Str("operation", op).Str("inventory_id", rec.InventoryID).Int("delta", delta).
		Str("operator", operator).Msg("movimiento de inventario registrado")
	return toTransactionResponse(rec, uc.resolver.ProductName(ctx, rec.ProductID)), nil
}

// ListTransactions lista el libro en orden created_at DESC, id DESC.
// Con cursor pagina por posición (keyset); sin cursor usa skip/limit. NextCursor queda vacío en la última página.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, in dto.TransactionListRequest) (*dto.TransactionPage, error) {
	in.DefaultPage()
	f := repository.TransactionFilter{
		ProductID: in.ProductID,
		Type:      in.OperationType,
		Page:      repository.Page{Skip: in.Skip, Limit: in.Limit},
	}
	if in.OperationType != "" && !entity.IsValidOperationType(in.OperationType) {
		return nil, fmt.Errorf("%w: tipo de operación %q", domain.ErrInvalidInput, in.OperationType)
	}
	if in.Cursor != "" {
		after, err := DecodeCursor(in.Cursor)
		if err != nil {
			return nil, err
		}
		f.After = after
		f.Skip = 0
	}
	list, err := uc.txRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	page := &dto.TransactionPage{Items: make([]dto.TransactionResponse, 0, len(list))}
	names := map[string]string{}
	for _, t := range list {
		name, ok := names[t.ProductID]
		if !ok {
			name = uc.resolver.ProductName(ctx, t.ProductID)
			names[t.ProductID] = name
		}
		page.Items = append(page.Items, *toTransactionResponse(t, name))
	}
	if len(list) == in.Limit && len(list) > 0 {
		last := list[len(list)-1]
		page.NextCursor = EncodeCursor(repository.TransactionCursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}

func (uc *LedgerUseCase) getLine(ctx context.Context, id string) (*entity.InventoryLine, error) {
	if err := reference.ParseID(id); err != nil {
		return nil, err
	}
	line, err := uc.lineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, fmt.Errorf("%w: línea de inventario %s", domain.ErrNotFound, id)
	}
	return line, nil
}

func toInventoryResponse(l *entity.InventoryLine, productName, productCode string) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ID:          l.ID,
		ProductID:   l.ProductID,
		ProductName: productName,
		ProductCode: productCode,
		Warehouse:   l.Warehouse,
		BatchNumber: l.BatchNumber,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Location:    l.Location,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toTransactionResponse(t *entity.InventoryTransaction, productName string) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:             t.ID,
		ProductID:      t.ProductID,
		ProductName:    productName,
		InventoryID:    t.InventoryID,
		OperationType:  t.Type,
		Quantity:       t.Quantity,
		BatchNumber:    t.BatchNumber,
		RelatedOrderID: t.RelatedOrderID,
		Operator:       t.Operator,
		Remark:         t.Remark,
		CreatedAt:      t.CreatedAt,
	}
}
