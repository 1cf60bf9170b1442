package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/foodcart-api/internal/domain"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación en memoria de CartRepository.
type CartRepo struct {
	guard
}

// NewCartRepository construye el repositorio sobre st.
func NewCartRepository(st *Store) *CartRepo {
	return &CartRepo{guard{st: st}}
}

// AddOne crea la línea (cantidad 1) o incrementa la existente del par usuario+ítem.
func (r *CartRepo) AddOne(_ context.Context, userID, itemID string) (*entity.CartEntry, bool, error) {
	var (
		out     entity.CartEntry
		created bool
		err     error
	)
	r.write(func() {
		if _, ok := r.st.items[itemID]; !ok {
			err = domain.ErrNotFound
			return
		}
		now := time.Now().UTC()
		for id, e := range r.st.cart {
			if e.UserID == userID && e.ItemID == itemID {
				e.Quantity++
				e.UpdatedAt = now
				r.st.cart[id] = e
				out = e
				return
			}
		}
		out = entity.CartEntry{
			ID:        uuid.New().String(),
			UserID:    userID,
			ItemID:    itemID,
			Quantity:  1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		r.st.cart[out.ID] = out
		created = true
	})
	if err != nil {
		return nil, false, err
	}
	return &out, created, nil
}

// DecrementOne resta una unidad si la cantidad es mayor a 1; nil si no aplicó.
func (r *CartRepo) DecrementOne(_ context.Context, userID, entryID string) (*entity.CartEntry, error) {
	var out *entity.CartEntry
	r.write(func() {
		e, ok := r.st.cart[entryID]
		if !ok || e.UserID != userID || e.Quantity <= 1 {
			return
		}
		e.Quantity--
		e.UpdatedAt = time.Now().UTC()
		r.st.cart[entryID] = e
		out = &e
	})
	return out, nil
}

// Delete elimina la línea del usuario; nil si no existe.
func (r *CartRepo) Delete(_ context.Context, userID, entryID string) (*entity.CartEntry, error) {
	var out *entity.CartEntry
	r.write(func() {
		e, ok := r.st.cart[entryID]
		if !ok || e.UserID != userID {
			return
		}
		delete(r.st.cart, entryID)
		out = &e
	})
	return out, nil
}

// ListLines devuelve las líneas del usuario en orden de alta.
func (r *CartRepo) ListLines(_ context.Context, userID string) ([]entity.CartLine, error) {
	var out []entity.CartLine
	r.read(func() {
		out = r.lines(userID)
		sort.Slice(out, func(i, j int) bool {
			a, b := r.st.cart[out[i].CartEntryID], r.st.cart[out[j].CartEntryID]
			if a.CreatedAt.Equal(b.CreatedAt) {
				return a.ID < b.ID
			}
			return a.CreatedAt.Before(b.CreatedAt)
		})
	})
	return out, nil
}

// ListLinesForUpdate devuelve las líneas en orden de item_id. El runner ya tiene el lock exclusivo.
func (r *CartRepo) ListLinesForUpdate(_ context.Context, userID string) ([]entity.CartLine, error) {
	var out []entity.CartLine
	r.read(func() {
		out = r.lines(userID)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (r *CartRepo) lines(userID string) []entity.CartLine {
	out := []entity.CartLine{}
	for _, e := range r.st.cart {
		if e.UserID != userID {
			continue
		}
		it, ok := r.st.items[e.ItemID]
		if !ok {
			continue
		}
		out = append(out, entity.CartLine{
			CartEntryID:   e.ID,
			ItemID:        it.ID,
			ItemName:      it.Name,
			Price:         it.Price,
			Quantity:      e.Quantity,
			StockQuantity: it.StockQuantity,
			Description:   it.Description,
		})
	}
	return out
}

// ClearEntries elimina las líneas indicadas que pertenezcan al usuario y devuelve cuántas eran.
func (r *CartRepo) ClearEntries(_ context.Context, userID string, entryIDs []string) (int64, error) {
	var n int64
	r.write(func() {
		for _, id := range entryIDs {
			if e, ok := r.st.cart[id]; ok && e.UserID == userID {
				delete(r.st.cart, id)
				n++
			}
		}
	})
	return n, nil
}
