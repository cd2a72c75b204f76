package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-portal/internal/api/http/handlers"
	"github.com/spec-kit/crm-portal/internal/auth"
	"github.com/spec-kit/crm-portal/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Customers *handlers.CustomersHandler
	Projects  *handlers.ProjectsHandler
	Todos     *handlers.TodosHandler
	Users     *handlers.UsersHandler
	Profile   *handlers.ProfileHandler
	AuditLogs *handlers.AuditLogsHandler
	Resolver  *auth.IdentityResolver
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	api := app.Group("/api")

	customers := api.Group("/customers", cfg.Resolver.Handle, auth.RequireRole())
	customers.Get("/", cfg.Customers.List)
	customers.Post("/", cfg.Customers.Create)
	customers.Put("/:id", cfg.Customers.Update)
	customers.Delete("/:id", cfg.Customers.Delete)

	projects := api.Group("/projects", cfg.Resolver.Handle, auth.RequireRole())
	projects.Get("/", cfg.Projects.List)
	projects.Get("/:id", cfg.Projects.Get)

	adminProjects := projects.Group("", auth.RequireRole(domain.RoleAdmin))
	adminProjects.Post("/", cfg.Projects.Create)
	adminProjects.Put("/:id", cfg.Projects.Update)
	adminProjects.Delete("/:id", cfg.Projects.Delete)

	todos := api.Group("/todos", cfg.Resolver.Handle, auth.RequireRole())
	todos.Get("/", cfg.Todos.List)
	todos.Post("/", cfg.Todos.Add)
	todos.Put("/:id", cfg.Todos.Toggle)
	todos.Delete("/:id", cfg.Todos.Delete)

	users := api.Group("/users", cfg.Resolver.Handle, auth.RequireRole(domain.RoleAdmin))
	users.Get("/", cfg.Users.List)
	users.Put("/:id/role", cfg.Users.ChangeRole)

	auditLogs := api.Group("/audit-logs", cfg.Resolver.Handle, auth.RequireRole())
	auditLogs.Get("/", cfg.AuditLogs.List)

	// Profile routes intentionally carry no auth middleware; see ProfileHandler.
	profile := api.Group("/user")
	profile.Get("/profile", cfg.Profile.Get)
	profile.Put("/profile", cfg.Profile.Update)
	profile.Get("/avatar/:userId", cfg.Profile.Avatar)
}
