package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/foodcart-api/internal/domain"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación en memoria de PurchaseRepository.
type PurchaseRepo struct {
	guard
}

// NewPurchaseRepository construye el repositorio sobre st.
func NewPurchaseRepository(st *Store) *PurchaseRepo {
	return &PurchaseRepo{guard{st: st}}
}

// Create inserta la cabecera de la compra.
func (r *PurchaseRepo) Create(_ context.Context, purchase *entity.Purchase) error {
	var err error
	r.write(func() {
		if _, ok := r.st.users[purchase.UserID]; !ok {
			err = domain.ErrUserNotFound
			return
		}
		r.st.purchases[purchase.ID] = *purchase
	})
	return err
}

// CreateItem inserta una línea de compra.
func (r *PurchaseRepo) CreateItem(_ context.Context, item *entity.PurchaseItem) error {
	var err error
	r.write(func() {
		if _, ok := r.st.purchases[item.PurchaseID]; !ok {
			err = domain.ErrNotFound
			return
		}
		r.st.purchaseItems[item.ID] = *item
	})
	return err
}

// GetByID obtiene una compra; (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	r.read(func() {
		if p, ok := r.st.purchases[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// ListByUser devuelve las compras del usuario, la más reciente primero.
func (r *PurchaseRepo) ListByUser(_ context.Context, userID string) ([]*entity.Purchase, error) {
	out := []*entity.Purchase{}
	r.read(func() {
		for _, p := range r.st.purchases {
			if p.UserID == userID {
				p := p
				out = append(out, &p)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].PurchasedAt.Equal(out[j].PurchasedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].PurchasedAt.After(out[j].PurchasedAt)
	})
	return out, nil
}

// ListItems devuelve las líneas de la compra ordenadas por nombre del ítem.
func (r *PurchaseRepo) ListItems(_ context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	out := []*entity.PurchaseItem{}
	r.read(func() {
		for _, pi := range r.st.purchaseItems {
			if pi.PurchaseID == purchaseID {
				pi := pi
				out = append(out, &pi)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItemName == out[j].ItemName {
			return out[i].ID < out[j].ID
		}
		return out[i].ItemName < out[j].ItemName
	})
	return out, nil
}
