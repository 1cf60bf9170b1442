package memory

import (
	"context"

	"github.com/jhoicas/foodcart-api/internal/application/checkout"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

var _ checkout.TxRunner = (*TxRunner)(nil)

// TxRunner serializa los checkouts con el lock exclusivo del Store y restaura la foto
// previa si fn falla, de modo que una compra fallida no deja efectos.
type TxRunner struct {
	st *Store
}

// NewTxRunner construye el runner sobre st.
func NewTxRunner(st *Store) *TxRunner {
	return &TxRunner{st: st}
}

// RunCheckout ejecuta fn con repos que operan bajo el lock ya tomado.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	itemRepo repository.ItemRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	before := r.st.snapshot()
	g := guard{st: r.st, tx: true}
	if err := fn(&CartRepo{g}, &ItemRepo{g}, &PurchaseRepo{g}); err != nil {
		r.st.restore(before)
		return err
	}
	return nil
}
