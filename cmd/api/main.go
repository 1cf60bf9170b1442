package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/foodcart-api/docs"
	"github.com/jhoicas/foodcart-api/internal/application/auth"
	"github.com/jhoicas/foodcart-api/internal/application/checkout"
	"github.com/jhoicas/foodcart-api/internal/application/usecase"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
	"github.com/jhoicas/foodcart-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/foodcart-api/internal/infrastructure/pdf"
	"github.com/jhoicas/foodcart-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/foodcart-api/internal/interfaces/http"
	"github.com/jhoicas/foodcart-api/pkg/config"
	"github.com/jhoicas/foodcart-api/pkg/logger"
)

// storage agrupa los adaptadores de persistencia elegidos por DB_DRIVER.
type storage struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	items      repository.ItemRepository
	cart       repository.CartRepository
	purchases  repository.PurchaseRepository
	txRunner   checkout.TxRunner
	health     func(ctx context.Context) error
	close      func()
}

// @title                       Food Cart API
// @version                     1.0
// @description                 API de un carrito de comida: catálogo, carrito por usuario y checkout transaccional.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT con el formato: Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-insecure-secret"
		log.Warn().Msg("JWT_SECRET vacío; usando secreto de desarrollo")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(store.users)
	categoryUC := usecase.NewCategoryUseCase(store.categories)
	itemUC := usecase.NewItemUseCase(store.items, store.categories)
	cartUC := usecase.NewCartUseCase(store.cart, store.items)
	checkoutUC := checkout.NewUseCase(store.txRunner, store.purchases, log)

	// PDF: comprobante de compra
	receiptUC := checkout.NewReceiptUseCase(store.purchases, store.users, infrapdf.NewReceiptGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodDelete, fiber.MethodOptions}, ","),
	}))
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Food Cart API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		CategoryUC:     categoryUC,
		ItemUC:         itemUC,
		CartUC:         cartUC,
		CheckoutUC:     checkoutUC,
		ReceiptUC:      receiptUC,
		JWTSecret:      cfg.JWT.Secret,
		AdminUsernames: cfg.Admin.Usernames,
		ServiceName:    cfg.App.Name,
		Health:         store.health,
		Logger:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("usando almacenamiento en memoria; los datos se pierden al reiniciar")
		st := memory.NewStore()
		return &storage{
			users:      memory.NewUserRepository(st),
			categories: memory.NewCategoryRepository(st),
			items:      memory.NewItemRepository(st),
			cart:       memory.NewCartRepository(st),
			purchases:  memory.NewPurchaseRepository(st),
			txRunner:   memory.NewTxRunner(st),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		applied, err := postgres.NewMigrator(pool).Up(ctx)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}
	return &storage{
		users:      postgres.NewUserRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		items:      postgres.NewItemRepository(pool),
		cart:       postgres.NewCartRepository(pool),
		purchases:  postgres.NewPurchaseRepository(pool),
		txRunner:   postgres.NewTxRunner(pool, cfg.Checkout, log),
		health:     pool.Ping,
		close:      pool.Close,
	}, nil
}
