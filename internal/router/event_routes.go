package router

import (
	"github.com/labstack/echo/v4"

	"github.com/avesta-dev/campus-connect/internal/handler"
	"github.com/avesta-dev/campus-connect/internal/middleware"
)

// RegisterEvents wires the event endpoints.  Browsing requires any
// authenticated role; creation is ADMIN-only; registration goes through the
// optional rate limiter so one client cannot hammer the allocator.
func RegisterEvents(e *echo.Echo, h *handler.EventHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.GET("/events", h.List)
	g.GET("/events/:id", h.Get)
	g.GET("/my-registrations", h.MyRegistrations)

	admin := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("ADMIN"))
	admin.POST("/events", h.Create)

	register := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("STUDENT", "ADMIN"))
	if limiter != nil {
		register.Use(limiter)
	}
	register.POST("/events/:id/register", h.Register)
}
