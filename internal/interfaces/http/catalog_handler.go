package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodcart-api/internal/application/dto"
	"github.com/jhoicas/foodcart-api/internal/application/usecase"
)

// CatalogHandler maneja categorías e ítems del menú. Lectura pública, escritura de admin.
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
	items      *usecase.ItemUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(categories *usecase.CategoryUseCase, items *usecase.ItemUseCase) *CatalogHandler {
	return &CatalogHandler{categories: categories, items: items}
}

// GetCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/v1/getCategories [get]
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	out, err := h.categories.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// PostCategory godoc
// @Summary      Crear categoría
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "categoryName"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/v1/postCategory [post]
func (h *CatalogHandler) PostCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
	}
	if strings.TrimSpace(in.CategoryName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoryName is required"})
	}
	out, err := h.categories.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        categoryID  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/deleteCategory/{categoryID} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	out, err := h.categories.Delete(c.UserContext(), c.Params("categoryID"))
	if err != nil {
		return respondError(c, err, "Category not found")
	}
	return c.JSON(dto.MessageResponse{Message: "Category deleted successfully", Item: out})
}

// GetItems godoc
// @Summary      Listar ítems
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/v1/getItems [get]
func (h *CatalogHandler) GetItems(c *fiber.Ctx) error {
	out, err := h.items.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// GetItem godoc
// @Summary      Obtener ítem por ID
// @Tags         catalog
// @Produce      json
// @Param        itemID  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/getItem/{itemID} [get]
func (h *CatalogHandler) GetItem(c *fiber.Ctx) error {
	out, err := h.items.GetByID(c.UserContext(), c.Params("itemID"))
	if err != nil {
		return respondError(c, err, "Item not found")
	}
	return c.JSON(out)
}

// GetItemsByCategory godoc
// @Summary      Ítems de una categoría
// @Tags         catalog
// @Produce      json
// @Param        categoryID  path  string  true  "ID de la categoría"
// @Success      200  {array}   dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/getItemsByCategory/{categoryID} [get]
func (h *CatalogHandler) GetItemsByCategory(c *fiber.Ctx) error {
	out, err := h.items.ListByCategory(c.UserContext(), c.Params("categoryID"))
	if err != nil {
		return respondError(c, err, "No items found for this category")
	}
	return c.JSON(out)
}

// PostItem godoc
// @Summary      Crear ítem o reponer stock
// @Description  Si ya existe un ítem con el mismo nombre, precio y categoría se suma el stock (200).
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.ItemResponse
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/postItem [post]
func (h *CatalogHandler) PostItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
	}
	if strings.TrimSpace(in.ItemName) == "" || in.CategoryID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "itemName and categoryID are required"})
	}
	out, err := h.items.CreateOrRestock(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "Category not found")
	}
	if !out.Created {
		return c.JSON(out.Item)
	}
	return c.Status(fiber.StatusCreated).JSON(out.Item)
}

// DeleteItem godoc
// @Summary      Eliminar ítem
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        itemID  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/deleteItem/{itemID} [delete]
func (h *CatalogHandler) DeleteItem(c *fiber.Ctx) error {
	out, err := h.items.Delete(c.UserContext(), c.Params("itemID"))
	if err != nil {
		return respondError(c, err, "Item not found")
	}
	return c.JSON(dto.MessageResponse{Message: "Item deleted successfully", Item: out})
}
