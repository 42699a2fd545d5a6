package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes de compra y venta en memoria.
type OrderRepo struct {
	v view
}

// NewOrderRepository construye el repositorio sobre el store.
func NewOrderRepository(s *Store) *OrderRepo {
	return &OrderRepo{v: view{s: s}}
}

// Create persiste la orden. ErrDuplicate si el número de orden ya existe.
func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.v.write(func(st *state) error {
		for _, existing := range st.orders {
			if existing.OrderNumber == o.OrderNumber {
				return domain.ErrDuplicate
			}
		}
		st.orders[o.ID] = cloneOrder(*o)
		return nil
	})
}

// GetByID obtiene la orden de la clase indicada; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(_ context.Context, kind, id string) (*entity.Order, error) {
	var out *entity.Order
	r.v.read(func(st *state) {
		if o, ok := st.orders[id]; ok && o.Kind == kind {
			o = cloneOrder(o)
			out = &o
		}
	})
	return out, nil
}

// Update aplica el patch sobre la orden guardada (el número no cambia).
func (r *OrderRepo) Update(_ context.Context, kind, id string, p repository.OrderPatch) (*entity.Order, error) {
	var out entity.Order
	err := r.v.write(func(st *state) error {
		o, ok := st.orders[id]
		if !ok || o.Kind != kind {
			return domain.ErrNotFound
		}
		if p.PartnerID != nil {
			o.PartnerID = *p.PartnerID
		}
		if p.PartnerName != nil {
			o.PartnerName = *p.PartnerName
		}
		if p.Items != nil {
			o.Items = *p.Items
		}
		if p.TotalAmount != nil {
			o.TotalAmount = *p.TotalAmount
		}
		if p.Status != nil {
			o.Status = *p.Status
		}
		if p.ExpectedDate != nil {
			o.ExpectedDate = p.ExpectedDate
		}
		if p.ShippingAddress != nil {
			o.ShippingAddress = *p.ShippingAddress
		}
		if p.Remark != nil {
			o.Remark = *p.Remark
		}
		o.UpdatedAt = p.UpdatedAt
		st.orders[id] = cloneOrder(o)
		out = cloneOrder(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatusIf cambia el estado solo si el actual es from.
func (r *OrderRepo) UpdateStatusIf(_ context.Context, kind, id, from, to string, at time.Time) (bool, error) {
	var changed bool
	err := r.v.write(func(st *state) error {
		o, ok := st.orders[id]
		if !ok || o.Kind != kind || o.Status != from {
			return nil
		}
		o.Status = to
		o.UpdatedAt = at
		st.orders[id] = o
		changed = true
		return nil
	})
	return changed, err
}

// Delete elimina la orden; false si no existía.
func (r *OrderRepo) Delete(_ context.Context, kind, id string) (bool, error) {
	var found bool
	err := r.v.write(func(st *state) error {
		if o, ok := st.orders[id]; ok && o.Kind == kind {
			found = true
			delete(st.orders, id)
		}
		return nil
	})
	return found, err
}

// List filtra por estado y contraparte, más recientes primero.
func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var list []*entity.Order
	r.v.read(func(st *state) {
		for _, o := range st.orders {
			if o.Kind != f.Kind {
				continue
			}
			if f.Status != "" && o.Status != f.Status {
				continue
			}
			if f.PartnerID != "" && o.PartnerID != f.PartnerID {
				continue
			}
			o = cloneOrder(o)
			list = append(list, &o)
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return paginate(list, f.Skip, f.Limit), nil
}

func cloneOrder(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	if o.ExpectedDate != nil {
		d := *o.ExpectedDate
		o.ExpectedDate = &d
	}
	return o
}
