package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/leaguedesk/standings/internal/game/status"
	historyRepository "github.com/leaguedesk/standings/internal/history/repository"
	leagueRouter "github.com/leaguedesk/standings/internal/league/router"
	"github.com/leaguedesk/standings/internal/standings/engine"
	"github.com/leaguedesk/standings/internal/standings/model"
	"github.com/leaguedesk/standings/internal/standings/repository"
	"github.com/leaguedesk/standings/internal/standings/service"
)

const sqliteSchema = `
CREATE TABLE teams (
	league_id  TEXT NOT NULL,
	team_id    TEXT NOT NULL,
	name       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (league_id, team_id)
);
CREATE UNIQUE INDEX teams_league_name_idx ON teams (league_id, name);
CREATE TABLE games (
	game_id        TEXT PRIMARY KEY,
	league_id      TEXT NOT NULL,
	date_time_iso  TEXT,
	location       TEXT,
	home_team_id   TEXT,
	away_team_id   TEXT,
	home_team_name TEXT,
	away_team_name TEXT,
	home_score     INTEGER,
	away_score     INTEGER,
	status         TEXT NOT NULL DEFAULT 'scheduled',
	source         TEXT NOT NULL DEFAULT 'manual',
	created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

type stack struct {
	router *gin.Engine
	redis  *miniredis.Miniredis
}

func setupStack(t *testing.T) *stack {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec(sqliteSchema).Error)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zap.NewNop().Sugar()
	now := func() time.Time { return time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC) }
	resolver := status.New(status.DefaultGracePeriod)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	leagueSvc := leagueRouter.RegisterRoutes(r, db, resolver, now, logger)
	history := historyRepository.New(client, logger)
	svc := service.New(
		repository.New(client, true, logger),
		engine.New(resolver),
		service.Sources{
			Roster: leagueSvc,
			Games:  []service.GameSource{leagueSvc, history},
			Names:  []service.NameSource{history},
		},
		service.Options{Now: now},
		logger,
	)
	RegisterRoutes(r, svc, logger)

	return &stack{router: r, redis: mr}
}

func (s *stack) do(method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	return w
}

func TestIntegration_RecalculateAndRead(t *testing.T) {
	s := setupStack(t)

	for _, team := range []map[string]string{
		{"team_id": "A", "name": "Aces"},
		{"team_id": "B", "name": "Bears"},
		{"team_id": "C", "name": "Comets"},
		{"team_id": "D", "name": "Dingos"},
	} {
		require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/leagues/L1/teams", team).Code)
	}

	// Manual games: A beats B, B vs C still scheduled.
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/leagues/L1/games", map[string]any{
		"game_id": "m1", "home_team_id": "A", "away_team_id": "B",
		"home_score": 80, "away_score": 65, "status": "final",
	}).Code)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/leagues/L1/games", map[string]any{
		"game_id": "m2", "home_team_id": "B", "away_team_id": "C", "date_time_iso": "2024-05-12T18:00:00Z",
	}).Code)

	// Legacy history: C beats B by name, plus a cancelled game with a score.
	_, err := s.redis.RPush(historyRepository.GamesKey("L1"),
		`{"id":"h1","homeTeamName":"Comets","awayTeamName":"Bears","score":{"home":"50","away":"40"},"status":"Final"}`,
		`{"id":"h2","homeTeamId":"A","awayTeamId":"C","homeScore":1,"awayScore":0,"status":"Cancelled"}`,
	)
	require.NoError(t, err)

	w := s.do(http.MethodGet, "/leagues/L1/standings", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/leagues/L1/standings/recalculate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var recalculated model.StandingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recalculated))
	require.Len(t, recalculated.Standings, 4)
	names := make([]string, 0, 4)
	for _, row := range recalculated.Standings {
		names = append(names, row.TeamName)
	}
	assert.Equal(t, []string{"Aces", "Comets", "Bears", "Dingos"}, names)
	assert.Equal(t, 2, recalculated.Standings[2].Losses)
	assert.Equal(t, 0, recalculated.Standings[3].GamesPlayed)
	require.NotNil(t, recalculated.Summary)
	assert.Equal(t, 4, recalculated.Summary.GamesEvaluated)
	assert.Equal(t, 2, recalculated.Summary.GamesCounted)

	w = s.do(http.MethodGet, "/leagues/L1/standings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stored model.StandingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	assert.Equal(t, recalculated.Standings, stored.Standings)
	assert.True(t, s.redis.Exists(repository.BackupKey("L1")))
}

func TestIntegration_RecalculateEmptyLeague(t *testing.T) {
	s := setupStack(t)

	w := s.do(http.MethodPost, "/leagues/empty/standings/recalculate", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var response model.StandingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.Standings)
}

func TestIntegration_RecalculateRedisDown(t *testing.T) {
	s := setupStack(t)
	s.redis.SetError("ERR unavailable")

	w := s.do(http.MethodPost, "/leagues/L1/standings/recalculate", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var response map[string]map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "STANDINGS_UNAVAILABLE", response["error"]["code"])
}
