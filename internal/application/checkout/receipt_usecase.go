package checkout

import (
	"context"
	"fmt"

	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de una compra propia.
type ReceiptUseCase struct {
	purchaseRepo repository.PurchaseRepository
	userRepo     repository.UserRepository
	generator    ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(purchaseRepo repository.PurchaseRepository, userRepo repository.UserRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{purchaseRepo: purchaseRepo, userRepo: userRepo, generator: generator}
}

// DownloadReceipt devuelve (pdfBytes, filename). ErrNotFound si la compra no existe o es de otro usuario.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, userID, purchaseID string) ([]byte, string, error) {
	p, items, err := loadOwnPurchase(ctx, uc.purchaseRepo, userID, purchaseID)
	if err != nil {
		return nil, "", err
	}
	buyer, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: get user: %w", err)
	}
	pdf, err := uc.generator.GenerateReceiptPDF(ctx, p, items, buyer)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generate: %w", err)
	}
	return pdf, fmt.Sprintf("receipt-%s.pdf", p.ID), nil
}
