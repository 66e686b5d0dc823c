package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orbitmeetai/orbitmeet/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")
	rt.setupMeetingRoutes(v1)
}

// setupMeetingRoutes configures transcript and project routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	g.POST("/meetings", rt.meetingHandler.Ingest)
	g.GET("/records/:id", rt.meetingHandler.GetRecord)
	g.GET("/projects/:key", rt.meetingHandler.GetProject)
	g.POST("/projects/:key/chat", rt.meetingHandler.Chat)
	g.POST("/scheduler/run", rt.meetingHandler.RunScheduler)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}
