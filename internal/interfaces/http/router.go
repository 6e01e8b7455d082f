package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/orders"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	LowStock         *inventory.LowStockUseCase
	OrderUC          *orders.OrderUseCase
	OrderDocs        *orders.DocumentUseCase   // opcional
	Sweeper          *orders.CompletionSweeper // opcional
	JWTSecret        string
	JWTIssuer        string
	Log              zerolog.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.LowStock, deps.Log)
	api.Post("/inventory/movements", inventoryHandler.RegisterMovement)

	// Products (low-stock antes de /:id)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Post("/", productHandler.Create)
	products.Get("/low-stock", inventoryHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id/price", productHandler.UpdatePrice)
	products.Get("/:id/movements", inventoryHandler.ListMovements)

	orderGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderDocs, deps.Log)
	orderGroup.Post("/", orderHandler.Create)
	orderGroup.Get("/", orderHandler.List)
	orderGroup.Get("/:id", orderHandler.GetByID)
	orderGroup.Patch("/:id/status", orderHandler.Transition)
	orderGroup.Delete("/:id", orderHandler.Delete)
	if deps.OrderDocs != nil {
		orderGroup.Get("/:id/pdf", orderHandler.DeliveryNote)
	}

	if deps.Sweeper != nil {
		admin := api.Group("/admin", RequireRole(entity.RoleAdmin))
		admin.Post("/sweeps", NewSweeperHandler(deps.Sweeper, deps.Log).Run)
	}
}
