package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-passport/internal/api/http/handlers"
	"github.com/spec-kit/coffee-passport/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Messages        *handlers.MessagesHandler
	WhatsApp        *handlers.WhatsAppHandler
	Auth            *handlers.AuthHandler
	Customers       *handlers.CustomersHandler
	Staff           *handlers.StaffHandler
	Analytics       *handlers.AnalyticsHandler
	AdminMiddleware *auth.AdminMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	wa := app.Group("/whatsapp")
	wa.Post("/message", cfg.Messages.Receive)
	wa.Get("/status", cfg.WhatsApp.Status)
	wa.Get("/qr", cfg.WhatsApp.QR)
	wa.Post("/send", cfg.WhatsApp.Send)

	app.Post("/auth/admin/login", cfg.Auth.Login)
	app.Post("/auth/password/change", cfg.AdminMiddleware.Handle, cfg.Auth.ChangePassword)

	admin := app.Group("/admin", cfg.AdminMiddleware.Handle)
	admin.Get("/customers", cfg.Customers.List)
	admin.Get("/customers/:code", cfg.Customers.Get)
	admin.Put("/customers/:code", cfg.Customers.Update)
	admin.Delete("/customers/:code", cfg.Customers.Delete)

	admin.Post("/staff", cfg.Staff.Create)
	admin.Get("/staff", cfg.Staff.List)
	admin.Put("/staff/:phone", cfg.Staff.Update)
	admin.Delete("/staff/:phone", cfg.Staff.Delete)

	admin.Get("/analytics/stats", cfg.Analytics.Stats)
	admin.Get("/analytics/audit", cfg.Analytics.Audit)
}
