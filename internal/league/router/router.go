// Package router provides league module routes registration.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/leaguedesk/standings/internal/game/status"
	"github.com/leaguedesk/standings/internal/league/handler"
	"github.com/leaguedesk/standings/internal/league/repository"
	"github.com/leaguedesk/standings/internal/league/service"
)

// RegisterRoutes registers league module routes and returns the service so
// standings can read the same roster and games.
func RegisterRoutes(
	r gin.IRouter,
	db *gorm.DB,
	resolver *status.Resolver,
	now func() time.Time,
	logger *zap.SugaredLogger,
) service.Service {
	repo := repository.New(db, logger)
	svc := service.New(repo, resolver, now, logger)
	h := handler.New(svc, logger)

	leagues := r.Group("/leagues/:league_id")
	leagues.POST("/teams", h.AddTeam)
	leagues.GET("/teams", h.ListTeams)
	leagues.POST("/games", h.AddGame)
	leagues.GET("/games", h.ListGames)
	leagues.POST("/games/:game_id/result", h.RecordResult)

	return svc
}
