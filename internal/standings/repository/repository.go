// Package repository persists computed standings in Redis.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/leaguedesk/standings/internal/standings/model"
)

// Key roles reported in persistence failures.
const (
	RolePrimary   = "primary"
	RoleBackup    = "backup"
	RoleUpdatedAt = "updated_at"
)

// PrimaryKey returns the key holding a league's standings rows.
func PrimaryKey(leagueID string) string {
	return "league:" + leagueID + ":standings"
}

// BackupKey returns the key mirroring the primary standings rows.
func BackupKey(leagueID string) string {
	return "standings:" + leagueID
}

// UpdatedAtKey returns the key holding the time of the last recalculation.
func UpdatedAtKey(leagueID string) string {
	return PrimaryKey(leagueID) + ":updated_at"
}

// Role reports which role a standings key plays.
func Role(key string) string {
	switch {
	case strings.HasSuffix(key, ":updated_at"):
		return RoleUpdatedAt
	case strings.HasPrefix(key, "standings:"):
		return RoleBackup
	default:
		return RolePrimary
	}
}

// Repository defines standings persistence operations.
type Repository interface {
	// Save replaces the stored standings of a league. On failure the returned
	// error is a *model.PersistError naming the keys that were not written.
	Save(ctx context.Context, leagueID string, rows []model.StandingRow, updatedAt time.Time) error

	// Load returns the last stored standings of a league, reading the backup
	// key when the primary one is empty.
	Load(ctx context.Context, leagueID string) (*model.StandingsResponse, error)
}

type repository struct {
	client        redis.Cmdable
	backupEnabled bool
	logger        *zap.SugaredLogger
}

// New creates a new standings repository instance.
func New(client redis.Cmdable, backupEnabled bool, logger *zap.SugaredLogger) Repository {
	return &repository{client: client, backupEnabled: backupEnabled, logger: logger}
}

// Save replaces the stored standings of a league in a single MULTI/EXEC.
func (r *repository) Save(ctx context.Context, leagueID string, rows []model.StandingRow, updatedAt time.Time) error {
	values := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		b, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshal standing row %s: %w", row.TeamID, err)
		}
		values = append(values, string(b))
	}

	keys := []string{PrimaryKey(leagueID)}
	if r.backupEnabled {
		keys = append(keys, BackupKey(leagueID))
	}

	// cmdKeys[i] is the key written by the i-th queued command.
	var cmdKeys []string
	cmds, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Del(ctx, key)
			cmdKeys = append(cmdKeys, key)
			if len(values) > 0 {
				pipe.RPush(ctx, key, values...)
				cmdKeys = append(cmdKeys, key)
			}
		}
		if !r.backupEnabled {
			// Load reads the backup when the primary is empty, so a mirror
			// left over from an earlier run must not survive this one.
			pipe.Del(ctx, BackupKey(leagueID))
			cmdKeys = append(cmdKeys, BackupKey(leagueID))
		}
		pipe.Set(ctx, UpdatedAtKey(leagueID), updatedAt.UTC().Format(time.RFC3339Nano), 0)
		cmdKeys = append(cmdKeys, UpdatedAtKey(leagueID))
		return nil
	})
	if err == nil {
		return nil
	}

	failed := failedKeys(cmds, cmdKeys)
	if len(failed) == 0 {
		failed = append(keys, UpdatedAtKey(leagueID))
	}
	r.logger.Errorw("standings persist failed", "league_id", leagueID, "failed_keys", failed, "error", err)
	return &model.PersistError{FailedKeys: failed, Err: err}
}

// Load returns the last stored standings of a league.
func (r *repository) Load(ctx context.Context, leagueID string) (*model.StandingsResponse, error) {
	rows, err := r.readRows(ctx, PrimaryKey(leagueID))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		rows, err = r.readRows(ctx, BackupKey(leagueID))
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			r.logger.Warnw("serving standings from backup key", "league_id", leagueID)
		}
	}

	var updatedAt time.Time
	stamp, err := r.client.Get(ctx, UpdatedAtKey(leagueID)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		if len(rows) == 0 {
			return nil, model.ErrStandingsNotFound
		}
	case err != nil:
		return nil, fmt.Errorf("get %s: %w", UpdatedAtKey(leagueID), err)
	default:
		if parsed, perr := time.Parse(time.RFC3339Nano, stamp); perr == nil {
			updatedAt = parsed
		}
	}

	return &model.StandingsResponse{
		LeagueID:  leagueID,
		Standings: rows,
		UpdatedAt: updatedAt,
	}, nil
}

func (r *repository) readRows(ctx context.Context, key string) ([]model.StandingRow, error) {
	items, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if strings.HasPrefix(err.Error(), "WRONGTYPE") {
			r.logger.Warnw("standings key is not a list", "key", key)
			return []model.StandingRow{}, nil
		}
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}

	rows := make([]model.StandingRow, 0, len(items))
	for i, item := range items {
		var row model.StandingRow
		if err := json.Unmarshal([]byte(item), &row); err != nil {
			r.logger.Warnw("skipping malformed standings row", "key", key, "index", i, "error", err)
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func failedKeys(cmds []redis.Cmder, cmdKeys []string) []string {
	var failed []string
	seen := make(map[string]bool)
	for i, cmd := range cmds {
		if i >= len(cmdKeys) || cmd.Err() == nil {
			continue
		}
		key := cmdKeys[i]
		if !seen[key] {
			seen[key] = true
			failed = append(failed, key)
		}
	}
	return failed
}
