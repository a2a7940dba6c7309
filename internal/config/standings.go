package config

import (
	"fmt"
	"time"
)

// StandingsConfig holds standings computation settings.
type StandingsConfig struct {
	// GracePeriod is how long after its start an unresolved scheduled game
	// is presumed completed.
	GracePeriod time.Duration
	// BackupEnabled mirrors persisted standings to the backup key.
	BackupEnabled bool
	// HistoryEnabled includes legacy game history stored in Redis.
	HistoryEnabled bool
	// ComputeTimeout bounds one recalculation including reads and writes.
	ComputeTimeout time.Duration
}

// LoadStandingsConfigFromEnv loads standings configuration from environment variables.
func LoadStandingsConfigFromEnv() StandingsConfig {
	return StandingsConfig{
		GracePeriod:    GetEnvDuration("STANDINGS_GRACE_PERIOD", 120*time.Minute),
		BackupEnabled:  GetEnvBool("STANDINGS_BACKUP_ENABLED", true),
		HistoryEnabled: GetEnvBool("STANDINGS_HISTORY_ENABLED", true),
		ComputeTimeout: GetEnvDuration("STANDINGS_COMPUTE_TIMEOUT", 30*time.Second),
	}
}

// Validate validates standings configuration.
func (c StandingsConfig) Validate() error {
	if c.GracePeriod <= 0 {
		return fmt.Errorf("GracePeriod must be greater than 0")
	}
	if c.ComputeTimeout <= 0 {
		return fmt.Errorf("ComputeTimeout must be greater than 0")
	}
	return nil
}
