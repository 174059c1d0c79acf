package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tourmate/internal/audit"
	"tourmate/internal/http/middleware"
	"tourmate/internal/repositories"
	"tourmate/internal/services"
)

// Handler carries the shared dependencies and builds a service per request
// so each one carries the request id for tracing.
type Handler struct {
	Store        *repositories.Store
	Audit        audit.Sink
	JWTSecret    string
	TripDuration time.Duration
	Now          func() time.Time
}

func (h Handler) customers(c *gin.Context) services.CustomerService {
	return services.CustomerService{Store: h.Store, Audit: h.Audit, RequestID: middleware.GetRequestID(c), Now: h.Now}
}

func (h Handler) vehicles(c *gin.Context) services.VehicleService {
	return services.VehicleService{Store: h.Store, Audit: h.Audit, RequestID: middleware.GetRequestID(c), Now: h.Now}
}

func (h Handler) bookings(c *gin.Context) services.BookingService {
	return services.BookingService{
		Store:        h.Store,
		Audit:        h.Audit,
		RequestID:    middleware.GetRequestID(c),
		Now:          h.Now,
		TripDuration: h.TripDuration,
	}
}

func (h Handler) sales(c *gin.Context) services.SalesService {
	return services.SalesService{Store: h.Store, Audit: h.Audit, RequestID: middleware.GetRequestID(c), Now: h.Now}
}

func (h Handler) reports(c *gin.Context) services.ReportsService {
	return services.ReportsService{Store: h.Store, RequestID: middleware.GetRequestID(c), Now: h.Now}
}

func (h Handler) docs(c *gin.Context) services.DocsService {
	return services.DocsService{Store: h.Store, RequestID: middleware.GetRequestID(c), Now: h.Now}
}

func (h Handler) auth(c *gin.Context) services.AuthService {
	return services.AuthService{
		Store:     h.Store,
		Audit:     h.Audit,
		JWTSecret: h.JWTSecret,
		RequestID: middleware.GetRequestID(c),
		Now:       h.Now,
	}
}

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
