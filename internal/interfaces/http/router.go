package http

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bioinventario-api/internal/application/auth"
	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/application/inventory"
	"github.com/jhoicas/bioinventario-api/internal/application/order"
	"github.com/jhoicas/bioinventario-api/internal/application/usecase"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	PartnerUC *usecase.PartnerUseCase
	LedgerUC  *inventory.LedgerUseCase
	OrderUC   *order.UseCase
	AuthUC    *auth.AuthUseCase
	Info      dto.InfoResponse
}

// AppConfig opciones de la aplicación Fiber.
type AppConfig struct {
	Name        string
	CORSOrigins string // separados por coma; "*" permite cualquiera
	DocsPath    string // swagger.json; si no existe no se monta /docs
	Log         zerolog.Logger
}

// NewApp construye la aplicación Fiber con middlewares, métricas, docs y rutas.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(cfg.Log),
	})
	app.Use(recover.New())
	app.Use(AccessLog(cfg.Log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  corsOrigins(cfg.CORSOrigins),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: HeaderNextCursor,
	}))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.DocsPath != "" {
		if _, err := os.Stat(cfg.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.DocsPath,
				Path:     "docs",
				Title:    cfg.Name,
			}))
		}
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	Router(app, deps)
	return app
}

func corsOrigins(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "*"
	}
	return s
}

// Router registra las rutas de la API. Las lecturas son públicas; toda escritura pasa por AuthMiddleware.
func Router(app *fiber.App, deps RouterDeps) {
	requireAuth := AuthMiddleware(deps.AuthUC)

	root := NewRootHandler(deps.Info)
	app.Get("/health", root.Health)
	api := app.Group("/api")
	api.Get("/", root.Info)
	api.Get("/health", root.Health)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/init-admin", authHandler.InitAdmin)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", requireAuth, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", requireAuth, productHandler.Update)
	products.Delete("/:id", requireAuth, productHandler.Delete)

	// Partners: /suppliers y /customers antes de /:id
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners := api.Group("/partners")
	partners.Get("/", partnerHandler.List)
	partners.Get("/suppliers", partnerHandler.ListSuppliers)
	partners.Get("/customers", partnerHandler.ListCustomers)
	partners.Post("/", requireAuth, partnerHandler.Create)
	partners.Get("/:id", partnerHandler.GetByID)
	partners.Put("/:id", requireAuth, partnerHandler.Update)
	partners.Delete("/:id", requireAuth, partnerHandler.Delete)

	// Inventory: /records, /in y /out antes de /:id
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	inv := api.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", requireAuth, inventoryHandler.Create)
	inv.Get("/records", inventoryHandler.Records)
	inv.Post("/in", requireAuth, inventoryHandler.StockIn)
	inv.Post("/out", requireAuth, inventoryHandler.StockOut)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Put("/:id", requireAuth, inventoryHandler.Update)

	// Orders: misma estructura para compras y ventas
	registerOrders(api.Group("/purchases"), NewOrderHandler(deps.OrderUC, entity.OrderKindPurchase), requireAuth)
	registerOrders(api.Group("/sales"), NewOrderHandler(deps.OrderUC, entity.OrderKindSales), requireAuth)
}

func registerOrders(g fiber.Router, h *OrderHandler, requireAuth fiber.Handler) {
	g.Get("/", h.List)
	g.Post("/", requireAuth, h.Create)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", requireAuth, h.Update)
	g.Delete("/:id", requireAuth, h.Delete)
	g.Post("/:id/approve", requireAuth, h.Approve)
	g.Get("/:id/pdf", h.PDF)
}
