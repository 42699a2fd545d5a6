package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jhoicas/bioinventario-api/internal/application/auth"
	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/application/inventory"
	"github.com/jhoicas/bioinventario-api/internal/application/order"
	"github.com/jhoicas/bioinventario-api/internal/application/reference"
	"github.com/jhoicas/bioinventario-api/internal/application/usecase"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
	"github.com/jhoicas/bioinventario-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/bioinventario-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bioinventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/bioinventario-api/internal/interfaces/http"
	"github.com/jhoicas/bioinventario-api/pkg/config"
	"github.com/jhoicas/bioinventario-api/pkg/logger"
)

// repos agrupa los adaptadores de persistencia del driver elegido.
type repos struct {
	products     repository.ProductRepository
	partners     repository.PartnerRepository
	lines        repository.InventoryLineRepository
	transactions repository.InventoryTransactionRepository
	orders       repository.OrderRepository
	users        repository.UserRepository
	txRunner     inventory.TxRunner
	close        func()
}

func main() {
	// .env opcional; las variables ya definidas en el entorno no se pisan
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer r.close()

	resolver := reference.NewResolver(r.products, r.partners)
	productUC := usecase.NewProductUseCase(r.products)
	partnerUC := usecase.NewPartnerUseCase(r.partners)
	ledgerUC := inventory.NewLedgerUseCase(r.txRunner, r.lines, r.transactions, resolver, log.Component("ledger"))
	orderUC := order.NewUseCase(r.orders, resolver, infrapdf.NewOrderDocumentGenerator(cfg.App.Name), log.Component("orders"))
	authUC := auth.NewAuthUseCase(r.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Admin.BootstrapPassword, log.Component("auth"))

	if cfg.JWT.Secret == config.DevJWTSecret {
		log.Warn().Msg("JWT_SECRET no definido: usando el secreto de development")
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		DocsPath:    cfg.HTTP.DocsPath,
		Log:         log.Component("http"),
	}, httpRouter.RouterDeps{
		ProductUC: productUC,
		PartnerUC: partnerUC,
		LedgerUC:  ledgerUC,
		OrderUC:   orderUC,
		AuthUC:    authUC,
		Info:      dto.InfoResponse{Name: cfg.App.Name, Version: cfg.App.Version, Docs: "/docs"},
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

// openStore abre el almacenamiento según STORE_DRIVER. Con postgres asegura el esquema antes de servir.
func openStore(ctx context.Context, cfg *config.Config) (*repos, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		s := memory.NewStore()
		return &repos{
			products:     memory.NewProductRepository(s),
			partners:     memory.NewPartnerRepository(s),
			lines:        memory.NewInventoryLineRepository(s),
			transactions: memory.NewInventoryTransactionRepository(s),
			orders:       memory.NewOrderRepository(s),
			users:        memory.NewUserRepository(s),
			txRunner:     memory.NewTxRunner(s),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &repos{
		products:     postgres.NewProductRepository(pool),
		partners:     postgres.NewPartnerRepository(pool),
		lines:        postgres.NewInventoryLineRepository(pool),
		transactions: postgres.NewInventoryTransactionRepository(pool),
		orders:       postgres.NewOrderRepository(pool),
		users:        postgres.NewUserRepository(pool),
		txRunner:     postgres.NewTxRunner(pool),
		close:        pool.Close,
	}, nil
}
