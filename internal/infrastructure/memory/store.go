// Package memory implementa los repositorios sobre mapas en memoria protegidos por un
// único sync.RWMutex. Se usa con DB_DRIVER=memory y como doble en los tests de las capas superiores.
package memory

import (
	"sync"

	"github.com/jhoicas/foodcart-api/internal/domain/entity"
)

// Store contiene todas las tablas. Los repositorios son vistas sobre el mismo Store.
type Store struct {
	mu            sync.RWMutex
	users         map[string]entity.User
	categories    map[string]entity.Category
	items         map[string]entity.Item
	cart          map[string]entity.CartEntry
	purchases     map[string]entity.Purchase
	purchaseItems map[string]entity.PurchaseItem
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]entity.User),
		categories:    make(map[string]entity.Category),
		items:         make(map[string]entity.Item),
		cart:          make(map[string]entity.CartEntry),
		purchases:     make(map[string]entity.Purchase),
		purchaseItems: make(map[string]entity.PurchaseItem),
	}
}

// snapshot copia todas las tablas; se usa para deshacer una transacción fallida.
func (s *Store) snapshot() *Store {
	return &Store{
		users:         cloneMap(s.users),
		categories:    cloneMap(s.categories),
		items:         cloneMap(s.items),
		cart:          cloneMap(s.cart),
		purchases:     cloneMap(s.purchases),
		purchaseItems: cloneMap(s.purchaseItems),
	}
}

func (s *Store) restore(from *Store) {
	s.users = from.users
	s.categories = from.categories
	s.items = from.items
	s.cart = from.cart
	s.purchases = from.purchases
	s.purchaseItems = from.purchaseItems
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// guard decide si una operación toma el lock del Store. Dentro de RunCheckout el
// runner ya tiene el lock exclusivo y los repos trabajan sin volver a tomarlo.
type guard struct {
	st *Store
	tx bool
}

func (g guard) read(fn func()) {
	if !g.tx {
		g.st.mu.RLock()
		defer g.st.mu.RUnlock()
	}
	fn()
}

func (g guard) write(fn func()) {
	if !g.tx {
		g.st.mu.Lock()
		defer g.st.mu.Unlock()
	}
	fn()
}
