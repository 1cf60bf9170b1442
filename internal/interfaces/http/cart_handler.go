package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodcart-api/internal/application/dto"
	"github.com/jhoicas/foodcart-api/internal/application/usecase"
)

// CartHandler maneja el carrito del usuario autenticado.
type CartHandler struct {
	uc *usecase.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *usecase.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// AddToCart godoc
// @Summary      Agregar una unidad al carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "itemID"
// @Success      201   {object}  dto.CartEntryResponse
// @Success      200   {object}  dto.CartEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/addToCart [post]
func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
	}
	if in.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "itemID is required"})
	}
	out, err := h.uc.AddItem(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err, "Item not found")
	}
	if out.Created {
		return c.Status(fiber.StatusCreated).JSON(out.Entry)
	}
	return c.JSON(out.Entry)
}

// DeleteCartItem godoc
// @Summary      Quitar una unidad del carrito
// @Description  Resta una unidad; si era la última elimina la línea.
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        cartItemID  path  string  true  "ID de la línea del carrito"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/deleteCartItem/{cartItemID} [delete]
func (h *CartHandler) DeleteCartItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveOne(c.UserContext(), GetUserID(c), c.Params("cartItemID"))
	if err != nil {
		return respondError(c, err, "Cart item not found")
	}
	msg := "Item quantity decreased"
	if out.Deleted {
		msg = "Item deleted from cart"
	}
	return c.JSON(dto.MessageResponse{Message: msg, Item: out.Entry})
}

// GetCartItems godoc
// @Summary      Líneas del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CartLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/getCartItems [get]
func (h *CartHandler) GetCartItems(c *fiber.Ctx) error {
	out, err := h.uc.ListItems(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err, "No items found in user's cart")
	}
	return c.JSON(out)
}

// GetCartSummary godoc
// @Summary      Carrito con total
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartSummaryResponse
// @Router       /api/v1/getCartSummary [get]
func (h *CartHandler) GetCartSummary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}
