package api

import (
	"errors"
	"net/http"

	"github.com/bootyhunt/server/pkg/fault"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// statusForKind maps the error taxonomy onto HTTP statuses.
func statusForKind(kind fault.Kind) int {
	switch kind {
	case fault.Validation:
		return http.StatusBadRequest
	case fault.NotFound:
		return http.StatusNotFound
	case fault.Conflict:
		return http.StatusConflict
	case fault.Storage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
