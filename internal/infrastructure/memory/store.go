// Package memory implementa el Entity Store en memoria: los mismos puertos de repository que
// el adaptador PostgreSQL, usado en tests y con STORE_DRIVER=memory.
// Las transacciones del libro se serializan con el lock de escritura y trabajan sobre una copia
// del estado que solo se publica si fn termina sin error.
package memory

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
)

type state struct {
	products     map[string]entity.Product
	partners     map[string]entity.Partner
	lines        map[string]entity.InventoryLine
	transactions []entity.InventoryTransaction
	orders       map[string]entity.Order
	users        map[string]entity.User
}

func newState() state {
	return state{
		products: map[string]entity.Product{},
		partners: map[string]entity.Partner{},
		lines:    map[string]entity.InventoryLine{},
		orders:   map[string]entity.Order{},
		users:    map[string]entity.User{},
	}
}

// cloneLedger copia lo que una transacción del libro puede modificar (líneas y movimientos).
func (st *state) cloneLedger() state {
	cp := *st
	cp.lines = make(map[string]entity.InventoryLine, len(st.lines))
	for k, v := range st.lines {
		cp.lines[k] = v
	}
	cp.transactions = append([]entity.InventoryTransaction(nil), st.transactions...)
	return cp
}

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu    sync.RWMutex
	state state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// view da acceso al estado: directo dentro de una transacción (el runner ya tiene el lock)
// o bajo el RWMutex del store fuera de ella.
type view struct {
	s  *Store
	tx *state
}

func (v view) read(fn func(st *state)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	fn(&v.s.state)
}

func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(&v.s.state)
}

// containsFold compara sin distinguir mayúsculas (incluye acentos y caracteres no latinos).
func containsFold(s, sub string) bool {
	if sub == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(sub))
}

// paginate aplica skip/limit sobre una lista ya ordenada.
func paginate[T any](list []T, skip, limit int) []T {
	if skip >= len(list) {
		return nil
	}
	list = list[skip:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
