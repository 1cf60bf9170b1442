package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodcart-api/internal/application/auth"
	"github.com/jhoicas/foodcart-api/internal/application/checkout"
	"github.com/jhoicas/foodcart-api/internal/application/dto"
	"github.com/jhoicas/foodcart-api/internal/application/usecase"
	"github.com/jhoicas/foodcart-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	CategoryUC     *usecase.CategoryUseCase
	ItemUC         *usecase.ItemUseCase
	CartUC         *usecase.CartUseCase
	CheckoutUC     *checkout.UseCase
	ReceiptUC      *checkout.ReceiptUseCase
	JWTSecret      string
	AdminUsernames []string
	ServiceName    string
	// Health verifica el almacenamiento; nil equivale a siempre disponible.
	Health func(ctx context.Context) error
	Logger *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api/v1")

	// Auth y catálogo (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	catalogHandler := NewCatalogHandler(deps.CategoryUC, deps.ItemUC)
	api.Get("/getCategories", catalogHandler.GetCategories)
	api.Get("/getItems", catalogHandler.GetItems)
	api.Get("/getItem/:itemID", catalogHandler.GetItem)
	api.Get("/getItemsByCategory/:categoryID", catalogHandler.GetItemsByCategory)

	// Rutas protegidas (requieren Bearer Token)
	authMW := AuthMiddleware(deps.JWTSecret)

	userHandler := NewUserHandler(deps.UserUC)
	api.Get("/me", authMW, userHandler.Me)

	// Administración del catálogo
	adminMW := RequireAdmin(deps.AdminUsernames)
	api.Post("/postCategory", authMW, adminMW, catalogHandler.PostCategory)
	api.Delete("/deleteCategory/:categoryID", authMW, adminMW, catalogHandler.DeleteCategory)
	api.Post("/postItem", authMW, adminMW, catalogHandler.PostItem)
	api.Delete("/deleteItem/:itemID", authMW, adminMW, catalogHandler.DeleteItem)

	// Carrito
	cartHandler := NewCartHandler(deps.CartUC)
	api.Post("/addToCart", authMW, cartHandler.AddToCart)
	api.Delete("/deleteCartItem/:cartItemID", authMW, cartHandler.DeleteCartItem)
	api.Get("/getCartItems", authMW, cartHandler.GetCartItems)
	api.Get("/getCartSummary", authMW, cartHandler.GetCartSummary)

	// Checkout e historial
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC, deps.ReceiptUC)
	api.Post("/checkout", authMW, checkoutHandler.Checkout)
	api.Get("/getPurchases", authMW, checkoutHandler.GetPurchases)
	api.Get("/getPurchase/:purchaseID", authMW, checkoutHandler.GetPurchase)
	api.Get("/getPurchaseReceipt/:purchaseID", authMW, checkoutHandler.GetPurchaseReceipt)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		if deps.Health != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.Health(ctx); err != nil {
				log.Warn().Err(err).Msg("health: almacenamiento no disponible")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "Storage unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
