package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dealpulse/insight-engine/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	insightHandler *Insight
	contactHandler *Contact
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, insightHandler *Insight, contactHandler *Contact) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		insightHandler: insightHandler,
		contactHandler: contactHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupOpportunityRoutes(v1)
}

// setupMeetingRoutes configures parser delivery ingest
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	if rt.meetingHandler != nil {
		meetingGroup.POST("", rt.meetingHandler.Ingest)
	} else {
		meetingGroup.POST("", rt.notImplemented)
	}
}

// setupOpportunityRoutes configures the per-opportunity read views and the
// contact duplicate check
func (rt *Router) setupOpportunityRoutes(g *echo.Group) {
	oppGroup := g.Group("/opportunities/:id")

	if rt.insightHandler != nil {
		oppGroup.GET("/timeline", rt.insightHandler.Timeline)
		oppGroup.GET("/insights/:field", rt.insightHandler.Ranked)
		oppGroup.GET("/ledger/:field", rt.insightHandler.Ledger)
		oppGroup.GET("/next-step", rt.insightHandler.NextStep)
	} else {
		oppGroup.GET("/timeline", rt.notImplemented)
		oppGroup.GET("/insights/:field", rt.notImplemented)
		oppGroup.GET("/ledger/:field", rt.notImplemented)
		oppGroup.GET("/next-step", rt.notImplemented)
	}

	if rt.contactHandler != nil {
		oppGroup.POST("/contacts/check-duplicates", rt.contactHandler.CheckDuplicates)
	} else {
		oppGroup.POST("/contacts/check-duplicates", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
