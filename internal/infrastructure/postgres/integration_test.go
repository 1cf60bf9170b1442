//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/foodcart-api/internal/application/checkout"
	"github.com/jhoicas/foodcart-api/internal/application/dto"
	"github.com/jhoicas/foodcart-api/internal/domain"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/infrastructure/postgres"
	"github.com/jhoicas/foodcart-api/pkg/config"
)

// setupTestDB levanta PostgreSQL en un contenedor, aplica migraciones y devuelve el pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:alpine",
		tcpostgres.WithDatabase("foodcart"),
		tcpostgres.WithUsername("foodcart"),
		tcpostgres.WithPassword("foodcart"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "no se pudo iniciar el contenedor de PostgreSQL")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: connStr, MaxConns: 30})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	applied, err := postgres.NewMigrator(pool).Up(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, applied)

	// Idempotente: una segunda pasada no aplica nada.
	again, err := postgres.NewMigrator(pool).Up(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)
	return pool
}

func createUser(t *testing.T, pool *pgxpool.Pool, name string) string {
	t.Helper()
	u := &entity.User{ID: uuid.NewString(), Username: name, Email: name + "@example.com", PasswordHash: "x", CreatedAt: time.Now().UTC()}
	require.NoError(t, postgres.NewUserRepository(pool).Create(context.Background(), u))
	return u.ID
}

func createItem(t *testing.T, pool *pgxpool.Pool, name, price string, stock int) *entity.Item {
	t.Helper()
	ctx := context.Background()
	cats := postgres.NewCategoryRepository(pool)
	cat, err := cats.GetByName(ctx, "menu")
	require.NoError(t, err)
	if cat == nil {
		cat = &entity.Category{ID: uuid.NewString(), Name: "menu", CreatedAt: time.Now().UTC()}
		require.NoError(t, cats.Create(ctx, cat))
	}
	now := time.Now().UTC()
	it := &entity.Item{
		ID: uuid.NewString(), CategoryID: cat.ID, Name: name,
		Price: decimal.RequireFromString(price), StockQuantity: stock,
		CreatedAt: now, UpdatedAt: now,
	}
	_, err = postgres.NewItemRepository(pool).CreateOrRestock(ctx, it)
	require.NoError(t, err)
	return it
}

func TestIntegration_Repositorios(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)

	t.Run("usuarios duplicados", func(t *testing.T) {
		createUser(t, pool, "ana")
		err := postgres.NewUserRepository(pool).Create(ctx, &entity.User{
			ID: uuid.NewString(), Username: "ana", Email: "otra@example.com", PasswordHash: "x", CreatedAt: time.Now(),
		})
		assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
		err = postgres.NewUserRepository(pool).Create(ctx, &entity.User{
			ID: uuid.NewString(), Username: "otra", Email: "ana@example.com", PasswordHash: "x", CreatedAt: time.Now(),
		})
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("restock suma stock", func(t *testing.T) {
		first := createItem(t, pool, "fries", "3.50", 10)
		again := &entity.Item{ID: uuid.NewString(), CategoryID: first.CategoryID, Name: "fries", Price: decimal.RequireFromString("3.50"), StockQuantity: 4}
		created, err := postgres.NewItemRepository(pool).CreateOrRestock(ctx, again)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, 14, again.StockQuantity)
	})

	t.Run("mismo nombre y precio en otra categoria crea item", func(t *testing.T) {
		first := createItem(t, pool, "taco", "4.00", 3)
		cats := postgres.NewCategoryRepository(pool)
		other := &entity.Category{ID: uuid.NewString(), Name: "especiales", CreatedAt: time.Now().UTC()}
		require.NoError(t, cats.Create(ctx, other))
		again := &entity.Item{ID: uuid.NewString(), CategoryID: other.ID, Name: "taco", Price: decimal.RequireFromString("4.00"), StockQuantity: 2}
		created, err := postgres.NewItemRepository(pool).CreateOrRestock(ctx, again)
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEqual(t, first.ID, again.ID)
		assert.Equal(t, 2, again.StockQuantity)
	})

	t.Run("carrito add y decrement", func(t *testing.T) {
		u := createUser(t, pool, "cart-user")
		it := createItem(t, pool, "soda", "1.25", 5)
		cart := postgres.NewCartRepository(pool)
		e, created, err := cart.AddOne(ctx, u, it.ID)
		require.NoError(t, err)
		assert.True(t, created)
		e2, created, err := cart.AddOne(ctx, u, it.ID)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, e.ID, e2.ID)
		assert.Equal(t, 2, e2.Quantity)

		dec, err := cart.DecrementOne(ctx, u, e.ID)
		require.NoError(t, err)
		require.NotNil(t, dec)
		dec, err = cart.DecrementOne(ctx, u, e.ID)
		require.NoError(t, err)
		assert.Nil(t, dec)
		deleted, err := cart.Delete(ctx, u, e.ID)
		require.NoError(t, err)
		assert.NotNil(t, deleted)
	})

	t.Run("categoria con items no se elimina", func(t *testing.T) {
		it := createItem(t, pool, "wrap", "5.00", 1)
		_, err := postgres.NewCategoryRepository(pool).Delete(ctx, it.CategoryID)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestIntegration_CheckoutConcurrenteNoSobrevende(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)

	for _, iso := range []string{"read committed", "serializable"} {
		t.Run(iso, func(t *testing.T) {
			const stock, buyers = 5, 20
			item := createItem(t, pool, "limited-"+iso, "9.99", stock)
			users := make([]string, buyers)
			cart := postgres.NewCartRepository(pool)
			for i := range users {
				users[i] = createUser(t, pool, fmt.Sprintf("buyer-%s-%d", iso[:4], i))
				_, _, err := cart.AddOne(ctx, users[i], item.ID)
				require.NoError(t, err)
			}

			runner := postgres.NewTxRunner(pool, config.CheckoutConfig{Isolation: iso, MaxRetries: buyers}, nil)
			uc := checkout.NewUseCase(runner, postgres.NewPurchaseRepository(pool), nil)

			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				succeeded int
			)
			for _, u := range users {
				wg.Add(1)
				go func(userID string) {
					defer wg.Done()
					_, err := uc.Checkout(ctx, userID, dto.CheckoutRequest{PaymentMethod: "paypal"})
					if err == nil {
						mu.Lock()
						succeeded++
						mu.Unlock()
						return
					}
					assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				}(u)
			}
			wg.Wait()

			assert.Equal(t, stock, succeeded)
			got, err := postgres.NewItemRepository(pool).GetByID(ctx, item.ID)
			require.NoError(t, err)
			assert.Equal(t, 0, got.StockQuantity)
		})
	}
}

func TestIntegration_CheckoutConservaLineasAgregadasDuranteLaCompra(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)

	u := createUser(t, pool, "late-adder")
	burger := createItem(t, pool, "late-burger", "8.00", 10)
	soda := createItem(t, pool, "late-soda", "2.00", 10)
	cart := postgres.NewCartRepository(pool)
	_, _, err := cart.AddOne(ctx, u, burger.ID)
	require.NoError(t, err)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	txCart := postgres.NewCartRepository(tx)
	lines, err := txCart.ListLinesForUpdate(ctx, u)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	// Un ítem nuevo no está bloqueado: entra de inmediato.
	_, created, err := cart.AddOne(ctx, u, soda.ID)
	require.NoError(t, err)
	assert.True(t, created)

	// Incrementar la línea leída espera al commit.
	done := make(chan error, 1)
	go func() {
		_, _, err := cart.AddOne(ctx, u, burger.ID)
		done <- err
	}()
	select {
	case err := <-done:
		t.Fatalf("AddOne no esperó el lock de la línea: %v", err)
	case <-time.After(300 * time.Millisecond):
	}

	n, err := txCart.ClearEntries(ctx, u, []string{lines[0].CartEntryID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, <-done)

	after, err := cart.ListLines(ctx, u)
	require.NoError(t, err)
	require.Len(t, after, 2)
	qty := map[string]int{}
	for _, l := range after {
		qty[l.ItemID] = l.Quantity
	}
	assert.Equal(t, 1, qty[burger.ID])
	assert.Equal(t, 1, qty[soda.ID])
}
