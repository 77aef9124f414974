package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Federated     *auth.FederatedSignIn
	Sessions      *auth.SessionIssuer
	Provider      auth.IdentityProvider
	CatalogUC     *usecase.CatalogUseCase
	OrderUC       *usecase.OrderUseCase
	SessionSecret string
	Rules         []auth.Rule
	Log           *logger.Logger
}

// Router registra el guard y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// El Guard corre antes que cualquier handler: la tabla de reglas es la
	// misma que consume el cliente (authclient), sin duplicar literales.
	app.Use(Guard(deps.SessionSecret, deps.Rules))

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Federated, deps.Sessions, deps.Provider, deps.Log)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/session", authHandler.Session)
	authGroup.Get("/google", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/logout", authHandler.Logout)

	// Catálogo (público)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/productos", catalogHandler.ListProducts)
	api.Get("/productos/:id", catalogHandler.GetProduct)
	api.Get("/categorias", catalogHandler.ListCategories)
	api.Get("/descuentos", catalogHandler.ListDiscounted)

	// Pedidos (protegido vía tabla de reglas del Guard)
	orderHandler := NewOrderHandler(deps.OrderUC)
	api.Post("/pedidos", orderHandler.Place)

	// Panel administrativo (protegido vía tabla de reglas del Guard)
	panelHandler := NewPanelHandler(deps.OrderUC)
	panel := app.Group("/panel")
	panel.Get("/dashboard", panelHandler.Dashboard)

	// Destinos de los redirects del Guard. El frontend real sirve estas
	// páginas; aquí solo respondemos algo coherente para clientes directos.
	app.Get("/login", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": "login", "callbackUrl": c.Query("callbackUrl")})
	})
	app.Get("/unauthorized", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"page": "unauthorized"})
	})
}
