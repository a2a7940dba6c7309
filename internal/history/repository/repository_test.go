package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	gameModel "github.com/leaguedesk/standings/internal/game/model"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, Repository) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, New(client, zap.NewNop().Sugar())
}

func TestRepository_RawGames(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, repo := setupRedis(t)

		games, err := repo.RawGames(ctx, "L1")

		require.NoError(t, err)
		assert.NotNil(t, games)
		assert.Empty(t, games)
	})

	t.Run("json array string", func(t *testing.T) {
		mr, repo := setupRedis(t)
		require.NoError(t, mr.Set(GamesKey("L1"),
			`[{"id":"g1","homeTeamName":"Aces","awayTeamName":"Bears","homeScore":3,"awayScore":1,"status":"final"}]`))

		games, err := repo.RawGames(ctx, "L1")

		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, "g1", games[0].String("id"))
		assert.Equal(t, "L1", games[0].String("leagueId"))
		score, ok := gameModel.ParseScore(games[0]["homeScore"])
		assert.True(t, ok)
		assert.Equal(t, 3, score)
	})

	t.Run("double encoded string", func(t *testing.T) {
		mr, repo := setupRedis(t)
		inner := `[{"id":"g1","leagueId":"other"},{"id":"g2"}]`
		outer, err := json.Marshal(inner)
		require.NoError(t, err)
		require.NoError(t, mr.Set(GamesKey("L1"), string(outer)))

		games, err := repo.RawGames(ctx, "L1")

		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, "other", games[0].String("leagueId"))
		assert.Equal(t, "L1", games[1].String("leagueId"))
	})

	t.Run("malformed string", func(t *testing.T) {
		mr, repo := setupRedis(t)
		require.NoError(t, mr.Set(GamesKey("L1"), `not json`))

		games, err := repo.RawGames(ctx, "L1")

		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("list skips malformed entries", func(t *testing.T) {
		mr, repo := setupRedis(t)
		_, err := mr.RPush(GamesKey("L1"),
			`{"id":"g1","status":"final"}`,
			`garbage`,
			`{"id":"g2","score":{"home":"2","away":"2"}}`,
		)
		require.NoError(t, err)

		games, err := repo.RawGames(ctx, "L1")

		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, "g1", games[0].String("id"))
		assert.Equal(t, "g2", games[1].String("id"))
		nested, ok := games[1].Map("score")
		require.True(t, ok)
		assert.Equal(t, "2", nested["home"])
	})

	t.Run("hash ordered by field", func(t *testing.T) {
		mr, repo := setupRedis(t)
		mr.HSet(GamesKey("L1"), "g2", `{"homeTeamName":"Bears"}`)
		mr.HSet(GamesKey("L1"), "g1", `{"id":"custom","homeTeamName":"Aces"}`)

		games, err := repo.RawGames(ctx, "L1")

		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, "custom", games[0].String("id"))
		assert.Equal(t, "g2", games[1].String("id"))
	})

	t.Run("unsupported type", func(t *testing.T) {
		mr, repo := setupRedis(t)
		_, err := mr.SAdd(GamesKey("L1"), "x")
		require.NoError(t, err)

		games, err := repo.RawGames(ctx, "L1")

		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("connection error", func(t *testing.T) {
		mr, repo := setupRedis(t)
		mr.Close()

		games, err := repo.RawGames(ctx, "L1")

		assert.Nil(t, games)
		assert.Error(t, err)
	})
}

func TestRepository_TeamNames(t *testing.T) {
	ctx := context.Background()

	t.Run("hash", func(t *testing.T) {
		mr, repo := setupRedis(t)
		mr.HSet(TeamNamesKey("L1"), "A", "Aces")
		mr.HSet(TeamNamesKey("L1"), "B", "Bears")

		names, err := repo.TeamNames(ctx, "L1")

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"A": "Aces", "B": "Bears"}, names)
	})

	t.Run("missing", func(t *testing.T) {
		_, repo := setupRedis(t)

		names, err := repo.TeamNames(ctx, "L1")

		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("wrong type", func(t *testing.T) {
		mr, repo := setupRedis(t)
		require.NoError(t, mr.Set(TeamNamesKey("L1"), "oops"))

		names, err := repo.TeamNames(ctx, "L1")

		require.NoError(t, err)
		assert.Empty(t, names)
	})
}
