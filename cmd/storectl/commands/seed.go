package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/foodcart-api/internal/application/dto"
	"github.com/jhoicas/foodcart-api/internal/application/usecase"
	"github.com/jhoicas/foodcart-api/internal/domain/catalog"
	"github.com/jhoicas/foodcart-api/internal/infrastructure/postgres"
)

var seedFile string

// catalogFile formato del archivo de carga.
//
//	{"categories": [{"name": "Main", "items": [{"name": "Burger", "price": "8.50", "stock": 10}]}]}
type catalogFile struct {
	Categories []seedCategory `json:"categories"`
}

type seedCategory struct {
	Name  string     `json:"name"`
	Items []seedItem `json:"items"`
}

type seedItem struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
}

// seedReport resumen de la carga.
type seedReport struct {
	CategoriesCreated int
	ItemsCreated      int
	ItemsRestocked    int
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Cargar categorías e ítems desde un archivo JSON",
	Long: `Carga el catálogo usando las mismas reglas que la API: los nombres se normalizan,
las categorías existentes se reutilizan y un ítem repetido (nombre, precio, categoría) suma stock.

Ejemplo:
  storectl seed --file catalog.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return fmt.Errorf("abrir catálogo: %w", err)
		}
		defer f.Close()
		file, err := decodeCatalog(f)
		if err != nil {
			return err
		}

		pool, cfg, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()
		log := newLogger(cfg)

		categoryRepo := postgres.NewCategoryRepository(pool)
		report, err := seedCatalog(cmd.Context(),
			usecase.NewCategoryUseCase(categoryRepo),
			usecase.NewItemUseCase(postgres.NewItemRepository(pool), categoryRepo),
			file,
		)
		if err != nil {
			return err
		}
		log.Info().
			Int("categories_created", report.CategoriesCreated).
			Int("items_created", report.ItemsCreated).
			Int("items_restocked", report.ItemsRestocked).
			Msg("catálogo cargado")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "catalog.json", "Archivo JSON con el catálogo")
	rootCmd.AddCommand(seedCmd)
}

func decodeCatalog(r io.Reader) (*catalogFile, error) {
	var file catalogFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decodificar catálogo: %w", err)
	}
	return &file, nil
}

// seedCatalog crea las categorías que falten y hace create-or-restock de cada ítem.
func seedCatalog(ctx context.Context, categories *usecase.CategoryUseCase, items *usecase.ItemUseCase, file *catalogFile) (seedReport, error) {
	var report seedReport

	existing, err := categories.List(ctx)
	if err != nil {
		return report, err
	}
	ids := make(map[string]string, len(existing))
	for _, c := range existing {
		ids[c.CategoryName] = c.CategoryID
	}

	for _, sc := range file.Categories {
		name := catalog.NormalizeCategoryName(sc.Name)
		id, ok := ids[name]
		if !ok {
			created, err := categories.Create(ctx, dto.CreateCategoryRequest{CategoryName: sc.Name})
			if err != nil {
				return report, fmt.Errorf("categoría %q: %w", sc.Name, err)
			}
			id = created.CategoryID
			ids[name] = id
			report.CategoriesCreated++
		}
		for _, si := range sc.Items {
			res, err := items.CreateOrRestock(ctx, dto.CreateItemRequest{
				ItemName:      si.Name,
				CategoryID:    id,
				Price:         si.Price,
				StockQuantity: si.Stock,
				Description:   si.Description,
			})
			if err != nil {
				return report, fmt.Errorf("ítem %q: %w", si.Name, err)
			}
			if res.Created {
				report.ItemsCreated++
			} else {
				report.ItemsRestocked++
			}
		}
	}
	return report, nil
}
