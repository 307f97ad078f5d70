// Package router wires handlers and middleware onto the echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-booking-desk/internal/handler"
	"github.com/iliyamo/speaker-booking-desk/internal/middleware"
	"github.com/iliyamo/speaker-booking-desk/internal/model"
)

// RegisterPublic registers routes that need no session.  cache wraps the
// static booking options; limit guards the contact form.
func RegisterPublic(e *echo.Echo, contact *handler.ContactHandler, cache, limit echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	e.GET("/v1/booking/options", handler.BookingOptions, cache)
	e.POST("/v1/contact", contact.Send, limit)
}

// RegisterAuth registers sign-up, sign-in and token endpoints under
// /v1/auth, plus GET /v1/me for any signed-in caller.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register, limit)
	g.POST("/login", a.Login, limit)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	e.POST("/v1/logout", a.Logout)
	e.GET("/v1/me", a.Me,
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleUser),
	)
}

// RegisterUser registers the booking endpoints for the USER role.
func RegisterUser(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser),
	)
	g.POST("/bookings", b.Submit, middleware.RequireCapability(model.CapabilitySubmitBooking))
	g.GET("/my-bookings", b.Mine)
	g.GET("/bookings/:id", b.Get)
}

// RegisterAdmin registers the dashboard endpoints under /v1/admin for the
// ADMIN role.
func RegisterAdmin(e *echo.Echo, b *handler.BookingHandler, a *handler.AnalyticsHandler, contact *handler.ContactHandler, jwtSecret string) {
	g := e.Group("/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/bookings", b.List)
	g.GET("/bookings/export", a.Export)
	g.GET("/bookings/:id", b.Get)
	g.POST("/bookings/:id/confirm", b.Confirm)
	g.POST("/bookings/:id/cancel", b.Cancel)
	g.DELETE("/bookings/:id", b.Delete)

	analytics := g.Group("", middleware.RequireCapability(model.CapabilityViewAnalytics))
	analytics.GET("/stats", a.Stats)
	analytics.GET("/charts/timeseries", a.TimeSeries)
	analytics.GET("/assistant/questions", a.Questions)
	analytics.POST("/assistant/ask", a.Ask)

	g.GET("/contact-messages", contact.List)
}
