package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourmate/internal/domain"
	"tourmate/internal/http/middleware"
)

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindAuthenticationRequired:
		return http.StatusUnauthorized
	case domain.KindPermissionDenied:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidData:
		return http.StatusBadRequest
	case domain.KindDuplicateID, domain.KindVehicleUnavailable, domain.KindBookingConflict:
		return http.StatusConflict
	case domain.KindPaymentFailed:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError maps domain errors to HTTP responses. The taxonomy code
// travels in the payload so clients can branch without parsing messages.
func RespondDomainError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := statusFor(kind)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	c.JSON(status, gin.H{
		"error":      message,
		"code":       string(kind),
		"request_id": middleware.GetRequestID(c),
	})
}
