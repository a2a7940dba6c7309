// Package handler provides HTTP handlers for league roster and game endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leaguedesk/standings/internal/apierror"
	leagueModel "github.com/leaguedesk/standings/internal/league/model"
	"github.com/leaguedesk/standings/internal/league/service"
)

// Handler handles HTTP requests for league endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new league handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// AddTeam handles POST /leagues/:league_id/teams request.
// @Summary Add a team to a league roster
// @Tags Leagues
// @Accept json
// @Produce json
// @Param league_id path string true "League ID"
// @Param request body leagueModel.AddTeamRequest true "Request"
// @Success 201 {object} map[string]leagueModel.TeamResponse "Response wrapped in team object"
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 409 {object} apierror.Response "Team id or name already on the roster (TEAM_EXISTS)"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /leagues/{league_id}/teams [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) AddTeam(c *gin.Context) {
	leagueID := c.Param("league_id")

	var req leagueModel.AddTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.AddTeam(c.Request.Context(), leagueID, &req)
	if err != nil {
		h.handleError(c, "error adding team", leagueID, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"team": resp,
	})
}

// ListTeams handles GET /leagues/:league_id/teams request.
// @Summary List a league roster
// @Tags Leagues
// @Produce json
// @Param league_id path string true "League ID"
// @Success 200 {object} leagueModel.TeamsResponse "Roster"
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /leagues/{league_id}/teams [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListTeams(c *gin.Context) {
	leagueID := c.Param("league_id")

	resp, err := h.service.ListTeams(c.Request.Context(), leagueID)
	if err != nil {
		h.handleError(c, "error listing teams", leagueID, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddGame handles POST /leagues/:league_id/games request.
// @Summary Enter a game manually
// @Tags Games
// @Accept json
// @Produce json
// @Param league_id path string true "League ID"
// @Param request body leagueModel.AddGameRequest true "Request"
// @Success 201 {object} map[string]gameModel.Game "Response wrapped in game object"
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 409 {object} apierror.Response "Game already exists (GAME_EXISTS)"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /leagues/{league_id}/games [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) AddGame(c *gin.Context) {
	leagueID := c.Param("league_id")

	var req leagueModel.AddGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.BadRequest(c, "invalid request body")
		return
	}

	game, err := h.service.AddGame(c.Request.Context(), leagueID, &req)
	if err != nil {
		h.handleError(c, "error adding game", leagueID, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"game": game,
	})
}

// ListGames handles GET /leagues/:league_id/games request.
// @Summary List league games with their canonical status
// @Tags Games
// @Produce json
// @Param league_id path string true "League ID"
// @Success 200 {object} leagueModel.GamesResponse "Games"
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /leagues/{league_id}/games [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListGames(c *gin.Context) {
	leagueID := c.Param("league_id")

	resp, err := h.service.ListGames(c.Request.Context(), leagueID)
	if err != nil {
		h.handleError(c, "error listing games", leagueID, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RecordResult handles POST /leagues/:league_id/games/:game_id/result request.
// @Summary Record the result of a game
// @Tags Games
// @Accept json
// @Produce json
// @Param league_id path string true "League ID"
// @Param game_id path string true "Game ID"
// @Param request body leagueModel.RecordResultRequest true "Request"
// @Success 200 {object} map[string]gameModel.Game "Response wrapped in game object"
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 404 {object} apierror.Response "Game not found"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /leagues/{league_id}/games/{game_id}/result [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) RecordResult(c *gin.Context) {
	leagueID := c.Param("league_id")
	gameID := c.Param("game_id")

	var req leagueModel.RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.BadRequest(c, "home_score and away_score are required")
		return
	}

	game, err := h.service.RecordResult(c.Request.Context(), leagueID, gameID, &req)
	if err != nil {
		h.handleError(c, "error recording result", leagueID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game": game,
	})
}

func (h *Handler) handleError(c *gin.Context, msg, leagueID string, err error) {
	switch {
	case errors.Is(err, leagueModel.ErrInvalidLeagueID),
		errors.Is(err, leagueModel.ErrInvalidTeamName),
		errors.Is(err, leagueModel.ErrInvalidGame),
		errors.Is(err, leagueModel.ErrInvalidScore):
		apierror.BadRequest(c, err.Error())
	case errors.Is(err, leagueModel.ErrTeamExists):
		apierror.Abort(c, http.StatusConflict, apierror.CodeTeamExists, "team id or name already on the roster")
	case errors.Is(err, leagueModel.ErrGameExists):
		apierror.Abort(c, http.StatusConflict, apierror.CodeGameExists, "game already exists")
	case errors.Is(err, leagueModel.ErrGameNotFound):
		apierror.NotFound(c, "game not found")
	case errors.Is(err, leagueModel.ErrTeamNotFound):
		apierror.NotFound(c, "team not found")
	default:
		h.logger.Errorw(msg, "league_id", leagueID, "error", err)
		apierror.Internal(c)
	}
}
