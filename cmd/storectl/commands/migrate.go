package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/foodcart-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migraciones del esquema",
	Long: `Aplica o lista las migraciones SQL embebidas en el binario.

Subcomandos:
  up      - Aplica las migraciones pendientes
  status  - Muestra qué migraciones están aplicadas`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplicar migraciones pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, cfg, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()
		log := newLogger(cfg)

		applied, err := postgres.NewMigrator(pool).Up(cmd.Context())
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			log.Info().Msg("esquema al día")
			return nil
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Estado de las migraciones",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, _, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		status, err := postgres.NewMigrator(pool).Status(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tESTADO")
		for _, s := range status {
			state := "pendiente"
			if s.Applied {
				state = "aplicada"
			}
			fmt.Fprintf(w, "%s\t%s\n", s.Version, state)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
}
