package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jortega/ventas-api/internal/application/auth"
	"github.com/jortega/ventas-api/internal/application/sales"
	"github.com/jortega/ventas-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CustomerUC *usecase.CustomerUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	SaleUC     *sales.SaleUseCase
	ReceiptUC  *sales.ReceiptUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
//
// Tres niveles de acceso:
//   - público: auth y health
//   - bearer obligatorio: usuarios y clientes
//   - modo relajado: lecturas de catálogo y todo ventas/items salvo el
//     DELETE de venta; el token se carga si viene, pero el anónimo pasa
//     (la política decide por acción).
func Router(app *fiber.App, deps RouterDeps) {
	required := AuthMiddleware(deps.JWTSecret)
	optional := OptionalAuthMiddleware(deps.JWTSecret)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (público)
	authGroup := app.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/registro", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Usuarios (bearer obligatorio)
	users := app.Group("/usuarios", required)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/perfil", userHandler.Perfil)
	users.Put("/perfil", userHandler.UpdatePerfil)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Clientes (bearer obligatorio)
	customers := app.Group("/clientes", required)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:cedula", customerHandler.GetByCedula)
	customers.Put("/:cedula", customerHandler.Update)
	customers.Delete("/:cedula", customerHandler.Delete)

	// Categorías (lectura abierta, mutación solo admin)
	categories := app.Group("/categorias", optional)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Productos (lectura abierta, mutación solo admin)
	products := app.Group("/productos", optional)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Ventas (modo relajado salvo el delete, que exige admin vía política)
	ventas := app.Group("/ventas", optional)
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	ventas.Post("/", saleHandler.Create)
	ventas.Get("/", saleHandler.List)
	ventas.Get("/:id", saleHandler.GetByID)
	ventas.Get("/:id/pdf", saleHandler.DownloadPDF)
	ventas.Put("/:id", saleHandler.Update)
	ventas.Delete("/:id", saleHandler.Delete)

	// Líneas de venta sueltas (modo relajado)
	items := app.Group("/ventas_items", optional)
	saleItemHandler := NewSaleItemHandler(deps.SaleUC)
	items.Post("/", saleItemHandler.Create)
	items.Get("/", saleItemHandler.List)
	items.Get("/:id", saleItemHandler.GetByID)
	items.Put("/:id", saleItemHandler.Update)
	items.Delete("/:id", saleItemHandler.Delete)
}
