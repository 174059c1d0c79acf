package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourmate/internal/http/middleware"
	"tourmate/internal/services"
)

// CreateCustomer registers a new customer.
func (h Handler) CreateCustomer(c *gin.Context) {
	var req services.CustomerInput
	if !BindJSONOrError(c, &req) {
		return
	}

	customer, err := h.customers(c).Register(middleware.GetActor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists customers, optionally filtered by ?q= substring search.
func (h Handler) GetCustomers(c *gin.Context) {
	svc := h.customers(c)
	actor := middleware.GetActor(c)

	if q := c.Query("q"); q != "" {
		customers, err := svc.Search(actor, q)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, customers)
		return
	}

	customers, err := svc.All(actor)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomerByID returns one customer.
func (h Handler) GetCustomerByID(c *gin.Context) {
	customer, err := h.customers(c).Get(middleware.GetActor(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer applies a partial edit.
func (h Handler) UpdateCustomer(c *gin.Context) {
	var req services.CustomerPatch
	if !BindJSONOrError(c, &req) {
		return
	}

	customer, err := h.customers(c).Update(middleware.GetActor(c), c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer record.
func (h Handler) DeleteCustomer(c *gin.Context) {
	if err := h.customers(c).Delete(middleware.GetActor(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// GetCustomerBookings lists a customer's bookings.
func (h Handler) GetCustomerBookings(c *gin.Context) {
	bookings, err := h.bookings(c).ByCustomer(middleware.GetActor(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
