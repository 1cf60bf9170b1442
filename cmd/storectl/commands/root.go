// Package commands implementa la CLI de operación: migraciones y carga del catálogo.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/foodcart-api/internal/infrastructure/postgres"
	"github.com/jhoicas/foodcart-api/pkg/config"
	"github.com/jhoicas/foodcart-api/pkg/logger"
)

var (
	// Global flags
	dbURL   string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "Herramientas de operación para foodcart-api",
	Long: `storectl aplica las migraciones de PostgreSQL y carga el catálogo inicial.

La conexión se toma de DATABASE_URL / DB_* (igual que la API) o de --db.`,
	SilenceUsage: true,
}

// Execute ejecuta el comando raíz.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "URL de conexión a PostgreSQL (sobrescribe DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log en nivel debug")
}

func newLogger(cfg *config.Config) *logger.Logger {
	level := cfg.App.LogLevel
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: os.Stderr}).Named("storectl")
}

// connect carga la configuración, aplica --db y abre el pool.
func connect(ctx context.Context) (*pgxpool.Pool, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if dbURL != "" {
		cfg.DB.DatabaseURL = dbURL
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return pool, cfg, nil
}
