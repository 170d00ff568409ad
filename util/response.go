package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FailedResponse builds the error envelope returned to clients.
func FailedResponse(err error) gin.H {
	resp := gin.H{
		"status": "failed",
		"error":  err.Error(),
	}
	if kind := KindOf(err); kind != "" {
		resp["kind"] = kind
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		resp["violations"] = verr.Violations
	}
	return resp
}

// StatusCode maps an error onto the HTTP status the API layer reports.
func StatusCode(err error) int {
	switch KindOf(err) {
	case MissingField, InvalidFormat, OutOfRange, InvalidIdentifier, ReferenceNotFound:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case StoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
