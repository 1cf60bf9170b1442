package checkout

import (
	"context"

	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una única transacción con los repositorios del checkout
// atados a ella. Si fn retorna error se hace rollback y ningún efecto queda visible.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		itemRepo repository.ItemRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante PDF de una compra.
type ReceiptGenerator interface {
	GenerateReceiptPDF(
		ctx context.Context,
		purchase *entity.Purchase,
		items []*entity.PurchaseItem,
		buyer *entity.User,
	) ([]byte, error)
}
