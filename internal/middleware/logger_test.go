package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func setupTestRouter(logger *zap.SugaredLogger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(logger))
	r.GET("/leagues/:league_id/standings", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	r.GET("/error", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
	})
	r.GET("/server-error", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	})
	return r
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		expectedLevel zapcore.Level
	}{
		{name: "success", path: "/leagues/L1/standings", expectedLevel: zapcore.InfoLevel},
		{name: "client error", path: "/error", expectedLevel: zapcore.WarnLevel},
		{name: "server error", path: "/server-error", expectedLevel: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := observedLogger()
			router := setupTestRouter(logger)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.expectedLevel, entries[0].Level)
			assert.Equal(t, "HTTP request", entries[0].Message)
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	logger, logs := observedLogger()
	router := setupTestRouter(logger)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/leagues/L7/standings?verbose=1", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	router.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "/leagues/:league_id/standings", fields["route"])
	assert.Equal(t, "L7", fields["league_id"])
	assert.Equal(t, "verbose=1", fields["query"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestLogger_UnmatchedRoute(t *testing.T) {
	logger, logs := observedLogger()
	router := setupTestRouter(logger)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, 1, logs.Len())
	_, hasRoute := logs.All()[0].ContextMap()["route"]
	assert.False(t, hasRoute)
}
