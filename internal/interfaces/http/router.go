package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcordero/bodega-api/internal/application/auth"
	"github.com/jcordero/bodega-api/internal/application/inventory"
	"github.com/jcordero/bodega-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	AdjustStock      *inventory.AdjustStockUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API. Todas las rutas admiten peticiones sin
// token: OptionalAuth solo resuelve el actor de los movimientos.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", OptionalAuth(deps.JWTSecret))

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/movements", productHandler.ListMovements)
	products.Post("/:id/image", productHandler.UploadImage)

	// Inventory
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.AdjustStock, deps.ProductUC)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Post("/adjustments", inventoryHandler.AdjustStock)
	invGroup.Get("/low-stock", inventoryHandler.ListLowStock)
	invGroup.Get("/low-stock/pdf", inventoryHandler.LowStockReport)
}
