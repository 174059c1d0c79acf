package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourmate/internal/http/middleware"
	"tourmate/internal/services"
)

// CreateBooking quotes a fare and records a pending booking.
func (h Handler) CreateBooking(c *gin.Context) {
	var req services.BookingInput
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := h.bookings(c).Create(middleware.GetActor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBookings lists bookings, optionally filtered by ?status=.
func (h Handler) GetBookings(c *gin.Context) {
	svc := h.bookings(c)
	actor := middleware.GetActor(c)

	if status := c.Query("status"); status != "" {
		bookings, err := svc.ByStatus(actor, status)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	bookings, err := svc.All(actor)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingByID returns one booking.
func (h Handler) GetBookingByID(c *gin.Context) {
	booking, err := h.bookings(c).Get(middleware.GetActor(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ConfirmBooking moves a pending booking to confirmed with a payment method.
func (h Handler) ConfirmBooking(c *gin.Context) {
	var req struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := h.bookings(c).Confirm(middleware.GetActor(c), c.Param("id"), req.PaymentMethod)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// StartTrip moves a confirmed booking to in progress.
func (h Handler) StartTrip(c *gin.Context) {
	booking, err := h.bookings(c).StartTrip(middleware.GetActor(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CompleteTrip settles an in-progress booking, optionally with the actual
// distance for a fare recompute.
func (h Handler) CompleteTrip(c *gin.Context) {
	var req struct {
		ActualDistance float64 `json:"actualDistance"`
	}
	// Body is optional here.
	if c.Request.Body != nil {
		_ = c.ShouldBindJSON(&req)
	}

	booking, err := h.bookings(c).CompleteTrip(middleware.GetActor(c), c.Param("id"), req.ActualDistance)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBooking cancels any non-terminal booking.
func (h Handler) CancelBooking(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if c.Request.Body != nil {
		_ = c.ShouldBindJSON(&req)
	}

	booking, err := h.bookings(c).Cancel(middleware.GetActor(c), c.Param("id"), req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// RefundBooking administratively reverses a completed booking.
func (h Handler) RefundBooking(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if c.Request.Body != nil {
		_ = c.ShouldBindJSON(&req)
	}

	booking, err := h.bookings(c).Refund(middleware.GetActor(c), c.Param("id"), req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetBookingReceipt streams the trip receipt PDF.
func (h Handler) GetBookingReceipt(c *gin.Context) {
	data, filename, err := h.docs(c).TripReceipt(middleware.GetActor(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
