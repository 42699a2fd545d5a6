// seed importa un catálogo de productos desde CSV a PostgreSQL.
//
// Uso: go run ./cmd/seed [-encoding utf-8|gbk|latin1] catalogo.csv
// Cabecera esperada: product_code,name,product_type[,specification,unit,description,storage_conditions,shelf_life,category]
// Los códigos ya existentes se omiten.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/bioinventario-api/internal/application/catalog"
	"github.com/jhoicas/bioinventario-api/internal/application/usecase"
	"github.com/jhoicas/bioinventario-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bioinventario-api/pkg/config"
	"github.com/jhoicas/bioinventario-api/pkg/logger"
)

func main() {
	encoding := flag.String("encoding", "utf-8", "codificación del CSV: utf-8, gbk o latin1")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-encoding utf-8|gbk|latin1] catalogo.csv")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if err := run(context.Background(), cfg, log, flag.Arg(0), *encoding); err != nil {
		log.Error().Err(err).Msg("seed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, path, encoding string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return fmt.Errorf("esquema: %w", err)
	}

	importer := catalog.NewImporter(usecase.NewProductUseCase(postgres.NewProductRepository(pool)), log.Component("seed"))
	rep, err := importer.Import(ctx, f, encoding)
	if err != nil {
		return fmt.Errorf("importar catálogo: %w", err)
	}
	for _, fail := range rep.Failed {
		log.Warn().Int("line", fail.Line).Str("reason", fail.Reason).Msg("fila rechazada")
	}
	fmt.Printf("Importados %d productos, %d omitidos, %d rechazados\n", rep.Created, rep.Skipped, len(rep.Failed))
	return nil
}
