// Package repository reads legacy game history stored in Redis. Writers over
// the years stored the same data in several shapes, so every read is tolerant:
// malformed entries are logged and skipped rather than failing the read.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	gameModel "github.com/leaguedesk/standings/internal/game/model"
)

// GamesKey returns the key holding a league's stored game history.
func GamesKey(leagueID string) string {
	return "league:" + leagueID + ":games"
}

// TeamNamesKey returns the key of the hash mapping team ids to display names.
func TeamNamesKey(leagueID string) string {
	return "league:" + leagueID + ":team_names"
}

// Repository reads legacy history for a league.
type Repository interface {
	// RawGames returns every stored game record of a league. A missing key
	// yields an empty slice.
	RawGames(ctx context.Context, leagueID string) ([]gameModel.RawGame, error)

	// TeamNames returns the stored team id to name lookup of a league.
	TeamNames(ctx context.Context, leagueID string) (map[string]string, error)
}

type repository struct {
	client redis.Cmdable
	logger *zap.SugaredLogger
}

// New creates a new history repository instance.
func New(client redis.Cmdable, logger *zap.SugaredLogger) Repository {
	return &repository{client: client, logger: logger}
}

// RawGames returns every stored game record of a league.
func (r *repository) RawGames(ctx context.Context, leagueID string) ([]gameModel.RawGame, error) {
	key := GamesKey(leagueID)

	kind, err := r.client.Type(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", key, err)
	}

	var games []gameModel.RawGame
	switch kind {
	case "none":
		return []gameModel.RawGame{}, nil
	case "string":
		games, err = r.readString(ctx, key)
	case "list":
		games, err = r.readList(ctx, key)
	case "hash":
		games, err = r.readHash(ctx, key)
	default:
		r.logger.Warnw("unsupported game history type", "key", key, "type", kind)
		return []gameModel.RawGame{}, nil
	}
	if err != nil {
		return nil, err
	}

	for _, g := range games {
		if _, ok := g.First("leagueId", "league_id", "league"); !ok {
			g["leagueId"] = leagueID
		}
	}
	return games, nil
}

// TeamNames returns the stored team id to name lookup of a league.
func (r *repository) TeamNames(ctx context.Context, leagueID string) (map[string]string, error) {
	key := TeamNamesKey(leagueID)
	names, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		if isWrongType(err) {
			r.logger.Warnw("team names key is not a hash", "key", key)
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}
	return names, nil
}

func (r *repository) readString(ctx context.Context, key string) ([]gameModel.RawGame, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []gameModel.RawGame{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	games, err := decodeGames(b)
	if err != nil {
		r.logger.Warnw("malformed game history", "key", key, "error", err)
		return []gameModel.RawGame{}, nil
	}
	return games, nil
}

func (r *repository) readList(ctx context.Context, key string) ([]gameModel.RawGame, error) {
	items, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}

	games := make([]gameModel.RawGame, 0, len(items))
	for i, item := range items {
		g, err := decodeGame([]byte(item))
		if err != nil {
			r.logger.Warnw("skipping malformed game entry", "key", key, "index", i, "error", err)
			continue
		}
		games = append(games, g)
	}
	return games, nil
}

func (r *repository) readHash(ctx context.Context, key string) ([]gameModel.RawGame, error) {
	entries, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}

	// Hash iteration order is random; field order keeps recomputation stable.
	fields := make([]string, 0, len(entries))
	for field := range entries {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	games := make([]gameModel.RawGame, 0, len(fields))
	for _, field := range fields {
		g, err := decodeGame([]byte(entries[field]))
		if err != nil {
			r.logger.Warnw("skipping malformed game entry", "key", key, "field", field, "error", err)
			continue
		}
		if _, ok := g.First("id", "gameId", "game_id", "_id"); !ok {
			g["id"] = field
		}
		games = append(games, g)
	}
	return games, nil
}

// decodeGames decodes a JSON array of game objects. The array may itself have
// been stored as an encoded JSON string.
func decodeGames(b []byte) ([]gameModel.RawGame, error) {
	var value any
	if err := unmarshal(b, &value); err != nil {
		return nil, err
	}
	if s, ok := value.(string); ok {
		if err := unmarshal([]byte(s), &value); err != nil {
			return nil, err
		}
	}

	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array, got %T", value)
	}
	games := make([]gameModel.RawGame, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			games = append(games, gameModel.RawGame(obj))
		}
	}
	return games, nil
}

// decodeGame decodes one game object, unwrapping one level of string encoding.
func decodeGame(b []byte) (gameModel.RawGame, error) {
	var value any
	if err := unmarshal(b, &value); err != nil {
		return nil, err
	}
	if s, ok := value.(string); ok {
		if err := unmarshal([]byte(s), &value); err != nil {
			return nil, err
		}
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", value)
	}
	return gameModel.RawGame(obj), nil
}

func unmarshal(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return dec.Decode(v)
}

func isWrongType(err error) bool {
	return strings.HasPrefix(err.Error(), "WRONGTYPE")
}
