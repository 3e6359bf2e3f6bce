// File: handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"wrenchly/database/repository"
	"wrenchly/services/booking"
	"wrenchly/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP statuses. Unrecognized errors are
// internal.
func statusFor(err error) int {
	switch booking.KindOf(err) {
	case booking.KindNotFound:
		return http.StatusNotFound
	case booking.KindConflict:
		return http.StatusConflict
	case booking.KindPermissionDenied:
		return http.StatusForbidden
	case booking.KindInvalidState:
		return http.StatusUnprocessableEntity
	case booking.KindInvalidArgument:
		return http.StatusBadRequest
	case booking.KindDayNotPublished:
		return http.StatusBadRequest
	case booking.KindTransient:
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, repository.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, repository.ErrInsufficientStock) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Never leak internals to clients.
		msg = "internal error"
	}
	utils.JSONError(c, status, msg, "")
}
