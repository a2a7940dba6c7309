package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6379")
	assert.Equal(t, "cache:6379", GetEnv("REDIS_ADDR", "localhost:6379"))

	t.Setenv("REDIS_ADDR", "")
	assert.Equal(t, "localhost:6379", GetEnv("REDIS_ADDR", "localhost:6379"), "empty value falls back")
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{value: "3", want: 3},
		{value: "-1", want: -1},
		{value: "three", want: 7},
		{value: "", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("REDIS_DB", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("REDIS_DB", 7))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{value: "90m", want: 90 * time.Minute},
		{value: "1h30m", want: 90 * time.Minute},
		{value: "120", want: 2 * time.Hour},
		{value: "", want: 2 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("STANDINGS_GRACE_PERIOD", tt.value)
			assert.Equal(t, tt.want, GetEnvDuration("STANDINGS_GRACE_PERIOD", 2*time.Hour))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{value: "true", def: false, want: true},
		{value: "false", def: true, want: false},
		{value: "1", def: false, want: true},
		{value: "0", def: true, want: false},
		{value: "yes", def: true, want: true},
		{value: "", def: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("STANDINGS_BACKUP_ENABLED", tt.value)
			assert.Equal(t, tt.want, GetEnvBool("STANDINGS_BACKUP_ENABLED", tt.def))
		})
	}
}
