// seed carga un catálogo inicial de productos desde un CSV (name,price,min_stock,cantidad)
// y registra la existencia inicial como movimientos de entrada en el libro.
//
// Uso: go run ./cmd/seed -owner <account_id> [-charset iso-8859-1] catalogo.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bodega-api/pkg/config"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

func main() {
	owner := flag.String("owner", "", "cuenta dueña de los productos")
	charset := flag.String("charset", "utf-8", "codificación del CSV (utf-8 | iso-8859-1)")
	flag.Parse()
	if *owner == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed -owner <account_id> [-charset iso-8859-1] catalogo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir catálogo")
	}
	defer f.Close()

	items, err := parseCatalog(f, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema")
	}

	productRepo := postgres.NewProductRepository(pool)
	productUC := usecase.NewProductUseCase(productRepo)
	movements := inventory.NewRegisterMovementUseCase(postgres.NewTxRunner(pool), productRepo, postgres.NewMovementRepository(pool))
	caller := entity.Caller{AccountID: *owner, Role: entity.RoleCustomer}

	for _, it := range items {
		minStock := it.MinStock
		p, err := productUC.Create(ctx, caller, dto.CreateProductRequest{Name: it.Name, Price: it.Price, MinStock: &minStock})
		if err != nil {
			log.Fatal().Err(err).Str("name", it.Name).Msg("crear producto")
		}
		if it.Cantidad > 0 {
			_, err := movements.RegisterMovement(ctx, caller, inventory.MovementCommand{
				ProductID: p.ID,
				Kind:      entity.MovementIn,
				Quantity:  it.Cantidad,
				Reference: "seed",
			})
			if err != nil {
				log.Fatal().Err(err).Str("product_id", p.ID).Msg("existencia inicial")
			}
		}
	}
	log.Info().Int("products", len(items)).Str("owner", *owner).Msg("catálogo cargado")
}
