package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/foodcart-api/internal/application/checkout"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
	"github.com/jhoicas/foodcart-api/pkg/config"
	"github.com/jhoicas/foodcart-api/pkg/logger"
)

var _ checkout.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool       *pgxpool.Pool
	isoLevel   pgx.TxIsoLevel
	maxRetries int
	log        *logger.Logger
}

// NewTxRunner construye el runner con el pool y la política de aislamiento/reintentos del checkout.
func NewTxRunner(pool *pgxpool.Pool, cfg config.CheckoutConfig, log *logger.Logger) *TxRunner {
	if log == nil {
		log = logger.Nop()
	}
	return &TxRunner{
		pool:       pool,
		isoLevel:   isoLevel(cfg.Isolation),
		maxRetries: cfg.MaxRetries,
		log:        log.Named("tx"),
	}
}

func isoLevel(s string) pgx.TxIsoLevel {
	switch s {
	case "serializable":
		return pgx.Serializable
	case "repeatable read":
		return pgx.RepeatableRead
	default:
		return pgx.ReadCommitted
	}
}

// RunCheckout inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Ante serialization_failure o deadlock_detected repite la transacción completa hasta maxRetries veces.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	itemRepo repository.ItemRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	var err error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		r.log.Warn().Err(err).Int("attempt", attempt+1).Msg("checkout: conflicto de concurrencia, reintentando")
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	cartRepo repository.CartRepository,
	itemRepo repository.ItemRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: r.isoLevel})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCartRepository(tx), NewItemRepository(tx), NewPurchaseRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
