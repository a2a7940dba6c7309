package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"SERVER_HOST", "SERVER_PORT", "SERVER_WRITE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT"} {
			t.Setenv(key, "")
		}

		cfg := LoadServerConfigFromEnv()
		assert.Equal(t, "", cfg.Host)
		assert.Equal(t, ":8080", cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
		assert.Equal(t, 45*time.Second, cfg.WriteTimeout)
		assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
		require.NoError(t, cfg.Validate())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("SERVER_HOST", "0.0.0.0")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("SERVER_WRITE_TIMEOUT", "2m")
		t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "5s")

		cfg := LoadServerConfigFromEnv()
		assert.Equal(t, "0.0.0.0:9090", cfg.Address())
		assert.Equal(t, 2*time.Minute, cfg.WriteTimeout)
		assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	})
}

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		host string
		port string
		want string
	}{
		{name: "port with colon", port: ":8080", want: ":8080"},
		{name: "bare port", port: "8080", want: "8080"},
		{name: "host and bare port", host: "localhost", port: "8080", want: "localhost:8080"},
		{name: "host and port with colon", host: "0.0.0.0", port: ":8080", want: "0.0.0.0:8080"},
		{name: "ipv6 host", host: "::1", port: "8080", want: "[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ServerConfig{Host: tt.host, Port: tt.port}.Address())
		})
	}
}

func TestServerConfig_Validate(t *testing.T) {
	valid := func() ServerConfig {
		return ServerConfig{
			Port:              ":8080",
			ReadHeaderTimeout: time.Second,
			ReadTimeout:       time.Second,
			WriteTimeout:      time.Second,
			IdleTimeout:       time.Second,
			ShutdownTimeout:   time.Second,
		}
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{name: "missing port", mutate: func(c *ServerConfig) { c.Port = "" }, wantErr: "SERVER_PORT"},
		{name: "read header timeout", mutate: func(c *ServerConfig) { c.ReadHeaderTimeout = 0 }, wantErr: "ReadHeaderTimeout"},
		{name: "read timeout", mutate: func(c *ServerConfig) { c.ReadTimeout = -time.Second }, wantErr: "ReadTimeout"},
		{name: "write timeout", mutate: func(c *ServerConfig) { c.WriteTimeout = 0 }, wantErr: "WriteTimeout"},
		{name: "idle timeout", mutate: func(c *ServerConfig) { c.IdleTimeout = 0 }, wantErr: "IdleTimeout"},
		{name: "shutdown timeout", mutate: func(c *ServerConfig) { c.ShutdownTimeout = 0 }, wantErr: "ShutdownTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
