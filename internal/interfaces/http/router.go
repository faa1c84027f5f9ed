package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/application/sales"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	LocationUC    *usecase.LocationUseCase
	ProductLineUC *usecase.ProductLineUseCase
	ProductUC     *usecase.ProductUseCase
	CustomerUC    *usecase.CustomerUseCase
	OrderUC       *sales.OrderUseCase
	Cookie        CookieConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authn := AuthMiddleware(deps.AuthUC, deps.Cookie.Name)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authn, authHandler.Logout)
	authGroup.Get("/me", authn, authHandler.Me)

	// Users (solo ADMIN)
	users := api.Group("/users", authn, adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Catálogo: lectura pública, escritura ADMIN
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", authn, adminOnly, locationHandler.Create)

	lines := api.Group("/product-lines")
	lineHandler := NewProductLineHandler(deps.ProductLineUC)
	lines.Get("/", lineHandler.List)
	lines.Post("/", authn, adminOnly, lineHandler.Create)
	lines.Patch("/:id", authn, adminOnly, lineHandler.Update)
	lines.Delete("/:id", authn, adminOnly, lineHandler.Delete)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authn, adminOnly, productHandler.Create)
	products.Patch("/:id", authn, adminOnly, productHandler.Update)
	products.Delete("/:id", authn, adminOnly, productHandler.Delete)

	// Customers (alcance por sesión)
	customers := api.Group("/customers", authn)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", adminOnly, customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Patch("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Orders (alcance por sesión)
	orders := api.Group("/orders", authn)
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Patch("/:id", orderHandler.UpdateStatus)
	orders.Delete("/:id", adminOnly, orderHandler.Delete)
}
