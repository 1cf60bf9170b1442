package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodcart-api/internal/domain"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
	"github.com/jhoicas/foodcart-api/internal/infrastructure/memory"
)

func seedItem(t *testing.T, st *memory.Store, name string, price string, stock int) *entity.Item {
	t.Helper()
	ctx := context.Background()
	cats := memory.NewCategoryRepository(st)
	cat, err := cats.GetByName(ctx, "combos")
	require.NoError(t, err)
	if cat == nil {
		cat = &entity.Category{ID: uuid.New().String(), Name: "combos", CreatedAt: time.Now()}
		require.NoError(t, cats.Create(ctx, cat))
	}
	it := &entity.Item{
		ID:            uuid.New().String(),
		CategoryID:    cat.ID,
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	}
	_, err = memory.NewItemRepository(st).CreateOrRestock(ctx, it)
	require.NoError(t, err)
	return it
}

func TestItemRepo_CreateOrRestockSumaStock(t *testing.T) {
	st := memory.NewStore()
	first := seedItem(t, st, "fries", "3.50", 10)

	again := &entity.Item{
		ID:            uuid.New().String(),
		CategoryID:    first.CategoryID,
		Name:          "fries",
		Price:         decimal.RequireFromString("3.5"),
		StockQuantity: 5,
	}
	created, err := memory.NewItemRepository(st).CreateOrRestock(context.Background(), again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 15, again.StockQuantity)

	otherPrice := &entity.Item{ID: uuid.New().String(), CategoryID: first.CategoryID, Name: "fries", Price: decimal.RequireFromString("4.00"), StockQuantity: 1}
	created, err = memory.NewItemRepository(st).CreateOrRestock(context.Background(), otherPrice)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestItemRepo_DecrementStock(t *testing.T) {
	st := memory.NewStore()
	it := seedItem(t, st, "burger", "8.00", 2)
	repo := memory.NewItemRepository(st)

	require.NoError(t, repo.DecrementStock(context.Background(), it.ID, 2))
	err := repo.DecrementStock(context.Background(), it.ID, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := repo.GetByID(context.Background(), it.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)
}

func TestCartRepo_AddOneYDecrementOne(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	it := seedItem(t, st, "soda", "1.25", 10)
	cart := memory.NewCartRepository(st)

	e1, created, err := cart.AddOne(ctx, "u1", it.ID)
	require.NoError(t, err)
	assert.True(t, created)
	e2, created, err := cart.AddOne(ctx, "u1", it.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, e1.ID, e2.ID)
	assert.Equal(t, 2, e2.Quantity)

	// Otro usuario no puede tocar la línea.
	dec, err := cart.DecrementOne(ctx, "u2", e1.ID)
	require.NoError(t, err)
	assert.Nil(t, dec)

	dec, err = cart.DecrementOne(ctx, "u1", e1.ID)
	require.NoError(t, err)
	require.NotNil(t, dec)
	assert.Equal(t, 1, dec.Quantity)

	dec, err = cart.DecrementOne(ctx, "u1", e1.ID)
	require.NoError(t, err)
	assert.Nil(t, dec, "con cantidad 1 no se decrementa")

	_, _, err = cart.AddOne(ctx, "u1", uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemRepo_DeleteEnCascadaSobreCarrito(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	it := seedItem(t, st, "salad", "6.00", 3)
	cart := memory.NewCartRepository(st)
	_, _, err := cart.AddOne(ctx, "u1", it.ID)
	require.NoError(t, err)

	deleted, err := memory.NewItemRepository(st).Delete(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, it.ID, deleted.ID)

	lines, err := cart.ListLines(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = memory.NewItemRepository(st).Delete(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryRepo_DeleteConItemsEsConflicto(t *testing.T) {
	st := memory.NewStore()
	it := seedItem(t, st, "wrap", "5.00", 1)

	_, err := memory.NewCategoryRepository(st).Delete(context.Background(), it.CategoryID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	it := seedItem(t, st, "pizza", "10.00", 5)
	entry, _, err := memory.NewCartRepository(st).AddOne(ctx, "u1", it.ID)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = memory.NewTxRunner(st).RunCheckout(ctx, func(
		cartRepo repository.CartRepository,
		itemRepo repository.ItemRepository,
		_ repository.PurchaseRepository,
	) error {
		require.NoError(t, itemRepo.DecrementStock(ctx, it.ID, 5))
		_, err := cartRepo.ClearEntries(ctx, "u1", []string{entry.ID})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := memory.NewItemRepository(st).GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.StockQuantity)
	lines, err := memory.NewCartRepository(st).ListLines(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestCartRepo_ClearEntriesSoloBorraLasIndicadas(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	pizza := seedItem(t, st, "pizza", "10.00", 5)
	soda := seedItem(t, st, "soda", "2.00", 5)
	cart := memory.NewCartRepository(st)

	mine, _, err := cart.AddOne(ctx, "u1", pizza.ID)
	require.NoError(t, err)
	kept, _, err := cart.AddOne(ctx, "u1", soda.ID)
	require.NoError(t, err)
	other, _, err := cart.AddOne(ctx, "u2", pizza.ID)
	require.NoError(t, err)

	n, err := cart.ClearEntries(ctx, "u1", []string{mine.ID, other.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	lines, err := cart.ListLines(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, kept.ID, lines[0].CartEntryID)
	lines, err = cart.ListLines(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}
