package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/foodcart-api/internal/application/dto"
	"github.com/jhoicas/foodcart-api/internal/domain"
	domcheckout "github.com/jhoicas/foodcart-api/internal/domain/checkout"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
	"github.com/jhoicas/foodcart-api/pkg/logger"
)

// UseCase convierte el carrito en una compra y consulta el historial.
type UseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	log          *logger.Logger
}

// NewUseCase construye el caso de uso. log puede ser nil.
func NewUseCase(txRunner TxRunner, purchaseRepo repository.PurchaseRepository, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{txRunner: txRunner, purchaseRepo: purchaseRepo, log: log.Named("checkout")}
}

// Checkout en una sola transacción: bloquea los ítems del carrito, valida stock, crea la compra
// con precios congelados, descuenta inventario y vacía el carrito.
//
// Errores:
//   - domain.ErrPaymentMethodRequired si el método de pago está vacío.
//   - domain.ErrEmptyCart si el carrito no tiene líneas.
//   - *domain.InsufficientStockError (errors.Is ErrInsufficientStock) con el primer ítem sin stock.
func (uc *UseCase) Checkout(ctx context.Context, userID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		return nil, domain.ErrPaymentMethodRequired
	}

	var purchase *entity.Purchase
	err := uc.txRunner.RunCheckout(ctx, func(
		cartRepo repository.CartRepository,
		itemRepo repository.ItemRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		// 1) Líneas del carrito con los ítems bloqueados.
		lines, err := cartRepo.ListLinesForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		// 2) Validación completa antes de escribir.
		if err := domcheckout.ValidateStock(lines); err != nil {
			return err
		}

		// 3) Cabecera y líneas con nombre y precio del momento.
		purchase = &entity.Purchase{
			ID:            uuid.New().String(),
			UserID:        userID,
			TotalAmount:   domcheckout.Total(lines),
			PaymentMethod: method,
			PurchasedAt:   time.Now().UTC(),
		}
		if err := purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}
		for _, l := range lines {
			if err := purchaseRepo.CreateItem(ctx, &entity.PurchaseItem{
				ID:         uuid.New().String(),
				PurchaseID: purchase.ID,
				ItemID:     l.ItemID,
				ItemName:   l.ItemName,
				Quantity:   l.Quantity,
				Price:      l.Price,
			}); err != nil {
				return err
			}
			// 4) Descuento de inventario (guardado por stock_quantity >= cantidad).
			if err := itemRepo.DecrementStock(ctx, l.ItemID, l.Quantity); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return &domain.InsufficientStockError{
						ItemID:    l.ItemID,
						ItemName:  l.ItemName,
						Requested: l.Quantity,
						Available: l.StockQuantity,
					}
				}
				return err
			}
		}

		// 5) Se quitan solo las líneas compradas.
		entryIDs := make([]string, 0, len(lines))
		for _, l := range lines {
			entryIDs = append(entryIDs, l.CartEntryID)
		}
		_, err = cartRepo.ClearEntries(ctx, userID, entryIDs)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("checkout rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("purchase_id", purchase.ID).
		Str("user_id", userID).
		Str("total", purchase.TotalAmount.StringFixed(2)).
		Msg("compra registrada")

	return &dto.CheckoutResponse{
		PurchaseID:  purchase.ID,
		TotalAmount: purchase.TotalAmount,
	}, nil
}

// ListPurchases devuelve el historial del usuario con sus líneas, la compra más reciente primero.
// ErrNotFound si no tiene compras.
func (uc *UseCase) ListPurchases(ctx context.Context, userID string) ([]dto.PurchaseResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	purchases, err := uc.purchaseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(purchases) == 0 {
		return nil, domain.ErrNotFound
	}
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		items, err := uc.purchaseRepo.ListItems(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toPurchaseResponse(p, items))
	}
	return out, nil
}

// GetPurchase devuelve una compra del usuario. Compras ajenas responden ErrNotFound.
func (uc *UseCase) GetPurchase(ctx context.Context, userID, purchaseID string) (*dto.PurchaseResponse, error) {
	p, items, err := loadOwnPurchase(ctx, uc.purchaseRepo, userID, purchaseID)
	if err != nil {
		return nil, err
	}
	resp := toPurchaseResponse(p, items)
	return &resp, nil
}

func loadOwnPurchase(ctx context.Context, repo repository.PurchaseRepository, userID, purchaseID string) (*entity.Purchase, []*entity.PurchaseItem, error) {
	if userID == "" {
		return nil, nil, domain.ErrUnauthorized
	}
	if _, err := uuid.Parse(purchaseID); err != nil {
		return nil, nil, domain.ErrNotFound
	}
	p, err := repo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, nil, err
	}
	if p == nil || p.UserID != userID {
		return nil, nil, domain.ErrNotFound
	}
	items, err := repo.ListItems(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}
	return p, items, nil
}

func toPurchaseResponse(p *entity.Purchase, items []*entity.PurchaseItem) dto.PurchaseResponse {
	resp := dto.PurchaseResponse{
		PurchaseID:    p.ID,
		TotalAmount:   p.TotalAmount,
		PaymentMethod: p.PaymentMethod,
		PurchaseDate:  p.PurchasedAt,
		Items:         make([]dto.PurchaseItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			PurchaseItemID: it.ID,
			ItemID:         it.ItemID,
			ItemName:       it.ItemName,
			Quantity:       it.Quantity,
			Price:          it.Price,
			Subtotal:       it.Subtotal(),
		})
	}
	return resp
}
