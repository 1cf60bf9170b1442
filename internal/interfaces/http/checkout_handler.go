package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodcart-api/internal/application/checkout"
	"github.com/jhoicas/foodcart-api/internal/application/dto"
)

// CheckoutHandler maneja el cierre de compra y el historial.
type CheckoutHandler struct {
	uc      *checkout.UseCase
	receipt *checkout.ReceiptUseCase
}

// NewCheckoutHandler construye el handler. receipt puede ser nil (sin descarga de comprobante).
func NewCheckoutHandler(uc *checkout.UseCase, receipt *checkout.ReceiptUseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, receipt: receipt}
}

// Checkout godoc
// @Summary      Confirmar compra
// @Description  Valida stock, registra la compra, descuenta inventario y vacía el carrito en una transacción.
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "paymentMethod"
// @Success      200   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/v1/checkout [post]
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
	}
	out, err := h.uc.Checkout(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// GetPurchases godoc
// @Summary      Historial de compras
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/getPurchases [get]
func (h *CheckoutHandler) GetPurchases(c *fiber.Ctx) error {
	out, err := h.uc.ListPurchases(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err, "No purchases found")
	}
	return c.JSON(out)
}

// GetPurchase godoc
// @Summary      Detalle de una compra
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Param        purchaseID  path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/getPurchase/{purchaseID} [get]
func (h *CheckoutHandler) GetPurchase(c *fiber.Ctx) error {
	out, err := h.uc.GetPurchase(c.UserContext(), GetUserID(c), c.Params("purchaseID"))
	if err != nil {
		return respondError(c, err, "Purchase not found")
	}
	return c.JSON(out)
}

// GetPurchaseReceipt godoc
// @Summary      Comprobante PDF de una compra
// @Tags         checkout
// @Security     Bearer
// @Produce      application/pdf
// @Param        purchaseID  path  string  true  "ID de la compra"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/getPurchaseReceipt/{purchaseID} [get]
func (h *CheckoutHandler) GetPurchaseReceipt(c *fiber.Ctx) error {
	if h.receipt == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "Receipts are not enabled"})
	}
	pdf, filename, err := h.receipt.DownloadReceipt(c.UserContext(), GetUserID(c), c.Params("purchaseID"))
	if err != nil {
		return respondError(c, err, "Purchase not found")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
