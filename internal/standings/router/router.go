// Package router provides standings module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leaguedesk/standings/internal/standings/handler"
	"github.com/leaguedesk/standings/internal/standings/service"
)

// RegisterRoutes registers standings module routes.
func RegisterRoutes(r gin.IRouter, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	leagues := r.Group("/leagues/:league_id")
	leagues.POST("/standings/recalculate", h.Recalculate)
	leagues.GET("/standings", h.GetStandings)
}
