// Package apierror defines the JSON error envelope shared by all endpoints.
package apierror

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes.
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeNotFound             = "NOT_FOUND"
	CodeTeamExists           = "TEAM_EXISTS"
	CodeGameExists           = "GAME_EXISTS"
	CodeStandingsUnavailable = "STANDINGS_UNAVAILABLE"
	CodePersistFailed        = "PERSIST_FAILED"
	CodeInternal             = "INTERNAL_ERROR"
)

// Detail is the body of an error envelope.
type Detail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response is the error envelope: {"error": {"code", "message"}}.
type Response struct {
	Error Detail `json:"error"`
}

// New builds an envelope.
func New(code, message string) Response {
	return Response{Error: Detail{Code: code, Message: message}}
}

// Abort writes the envelope and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, New(code, message))
}

// BadRequest writes a 400 INVALID_REQUEST envelope.
func BadRequest(c *gin.Context, message string) {
	Abort(c, http.StatusBadRequest, CodeInvalidRequest, message)
}

// NotFound writes a 404 NOT_FOUND envelope.
func NotFound(c *gin.Context, message string) {
	Abort(c, http.StatusNotFound, CodeNotFound, message)
}

// Internal writes a 500 INTERNAL_ERROR envelope without leaking the cause.
func Internal(c *gin.Context) {
	Abort(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}
