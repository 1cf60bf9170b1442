package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/foodcart-api/internal/domain"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación en memoria de ItemRepository.
type ItemRepo struct {
	guard
}

// NewItemRepository construye el repositorio sobre st.
func NewItemRepository(st *Store) *ItemRepo {
	return &ItemRepo{guard{st: st}}
}

// CreateOrRestock inserta el ítem o suma stock al existente con la misma terna (name, price, category).
func (r *ItemRepo) CreateOrRestock(_ context.Context, item *entity.Item) (bool, error) {
	var (
		created bool
		err     error
	)
	r.write(func() {
		if _, ok := r.st.categories[item.CategoryID]; !ok {
			err = domain.ErrNotFound
			return
		}
		for id, it := range r.st.items {
			if it.Name == item.Name && it.CategoryID == item.CategoryID && it.Price.Equal(item.Price) {
				it.StockQuantity += item.StockQuantity
				it.UpdatedAt = time.Now().UTC()
				r.st.items[id] = it
				*item = it
				return
			}
		}
		r.st.items[item.ID] = *item
		created = true
	})
	return created, err
}

// GetByID obtiene un ítem; (nil, nil) si no existe.
func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	r.read(func() {
		if it, ok := r.st.items[id]; ok {
			out = &it
		}
	})
	return out, nil
}

// List devuelve todos los ítems ordenados por nombre.
func (r *ItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	return r.filter(func(entity.Item) bool { return true }), nil
}

// ListByCategory devuelve los ítems de la categoría ordenados por nombre.
func (r *ItemRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.Item, error) {
	return r.filter(func(it entity.Item) bool { return it.CategoryID == categoryID }), nil
}

func (r *ItemRepo) filter(match func(entity.Item) bool) []*entity.Item {
	out := []*entity.Item{}
	r.read(func() {
		for _, it := range r.st.items {
			if match(it) {
				it := it
				out = append(out, &it)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Delete elimina el ítem. Las líneas de carrito se eliminan en cascada y las líneas
// de compra conservan su foto sin referencia al ítem.
func (r *ItemRepo) Delete(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	r.write(func() {
		it, ok := r.st.items[id]
		if !ok {
			return
		}
		delete(r.st.items, id)
		for k, e := range r.st.cart {
			if e.ItemID == id {
				delete(r.st.cart, k)
			}
		}
		for k, pi := range r.st.purchaseItems {
			if pi.ItemID == id {
				pi.ItemID = ""
				r.st.purchaseItems[k] = pi
			}
		}
		out = &it
	})
	if out == nil {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

// DecrementStock resta quantity; ErrInsufficientStock si el stock no alcanza.
func (r *ItemRepo) DecrementStock(_ context.Context, id string, quantity int) error {
	var err error
	r.write(func() {
		it, ok := r.st.items[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		if it.StockQuantity < quantity {
			err = domain.ErrInsufficientStock
			return
		}
		it.StockQuantity -= quantity
		it.UpdatedAt = time.Now().UTC()
		r.st.items[id] = it
	})
	return err
}
