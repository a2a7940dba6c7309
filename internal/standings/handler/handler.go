// Package handler provides HTTP handlers for standings endpoints.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leaguedesk/standings/internal/apierror"
	"github.com/leaguedesk/standings/internal/standings/model"
	"github.com/leaguedesk/standings/internal/standings/service"
)

// Handler handles HTTP requests for standings endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new standings handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Recalculate handles POST /leagues/:league_id/standings/recalculate request.
// @Summary Recalculate and persist league standings
// @Tags Standings
// @Produce json
// @Param league_id path string true "League ID"
// @Success 200 {object} model.StandingsResponse "Ranked standings"
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 500 {object} apierror.Response "Persist failed (PERSIST_FAILED) or internal error"
// @Failure 503 {object} apierror.Response "Standings could not be calculated (STANDINGS_UNAVAILABLE)"
// @Router /leagues/{league_id}/standings/recalculate [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Recalculate(c *gin.Context) {
	leagueID := c.Param("league_id")

	resp, err := h.service.Recalculate(c.Request.Context(), leagueID)
	if err != nil {
		var persistErr *model.PersistError
		switch {
		case errors.Is(err, model.ErrInvalidLeagueID):
			apierror.BadRequest(c, "league_id is required")
		case errors.Is(err, model.ErrStandingsUnavailable):
			apierror.Abort(c, http.StatusServiceUnavailable, apierror.CodeStandingsUnavailable, model.ErrStandingsUnavailable.Error())
		case errors.As(err, &persistErr):
			apierror.Abort(c, http.StatusInternalServerError, apierror.CodePersistFailed,
				"standings could not be persisted: "+strings.Join(persistErr.FailedKeys, ", "))
		default:
			h.logger.Errorw("error recalculating standings", "league_id", leagueID, "error", err)
			apierror.Internal(c)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetStandings handles GET /leagues/:league_id/standings request.
// @Summary Get the last persisted league standings
// @Tags Standings
// @Produce json
// @Param league_id path string true "League ID"
// @Success 200 {object} model.StandingsResponse "Ranked standings"
// @Failure 400 {object} apierror.Response "Bad request (INVALID_REQUEST)"
// @Failure 404 {object} apierror.Response "Standings have not been calculated"
// @Failure 500 {object} apierror.Response "Internal server error"
// @Router /leagues/{league_id}/standings [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetStandings(c *gin.Context) {
	leagueID := c.Param("league_id")

	resp, err := h.service.GetStandings(c.Request.Context(), leagueID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidLeagueID):
			apierror.BadRequest(c, "league_id is required")
		case errors.Is(err, model.ErrStandingsNotFound):
			apierror.NotFound(c, "standings have not been calculated")
		default:
			h.logger.Errorw("error reading standings", "league_id", leagueID, "error", err)
			apierror.Internal(c)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
