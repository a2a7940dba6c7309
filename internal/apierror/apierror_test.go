package apierror

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		write      func(c *gin.Context)
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "bad request",
			write:      func(c *gin.Context) { BadRequest(c, "league_id is required") },
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidRequest,
			wantMsg:    "league_id is required",
		},
		{
			name:       "not found",
			write:      func(c *gin.Context) { NotFound(c, "game not found") },
			wantStatus: http.StatusNotFound,
			wantCode:   CodeNotFound,
			wantMsg:    "game not found",
		},
		{
			name:       "internal",
			write:      Internal,
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeInternal,
			wantMsg:    "internal server error",
		},
		{
			name: "custom",
			write: func(c *gin.Context) {
				Abort(c, http.StatusServiceUnavailable, CodeStandingsUnavailable, "standings could not be calculated")
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   CodeStandingsUnavailable,
			wantMsg:    "standings could not be calculated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			r := gin.New()
			r.GET("/", tt.write, func(c *gin.Context) { nextCalled = true })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, nextCalled, "chain must stop after an error")

			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMsg, resp.Error.Message)
		})
	}
}
