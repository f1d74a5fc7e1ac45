package router

import (
	"github.com/labstack/echo/v4"

	"github.com/avesta-dev/campus-connect/internal/handler"
	"github.com/avesta-dev/campus-connect/internal/middleware"
)

// RegisterResources wires the plain owned-resource endpoints: blogs, jobs
// and counseling appointments.  All of them require a valid access token;
// deletes are further scoped to the owner inside the repository layer.
func RegisterResources(e *echo.Echo, blogs *handler.BlogHandler, jobs *handler.JobHandler, appts *handler.AppointmentHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.POST("/blogs", blogs.Create)
	g.GET("/blogs", blogs.List)
	g.DELETE("/blogs/:id", blogs.Delete)

	g.POST("/jobs", jobs.Create)
	g.GET("/jobs", jobs.List)
	g.DELETE("/jobs/:id", jobs.Delete)

	g.POST("/appointments", appts.Create)
	g.GET("/appointments", appts.List)
	g.DELETE("/appointments/:id", appts.Delete)
}
