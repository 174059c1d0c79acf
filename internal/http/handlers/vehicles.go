package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourmate/internal/http/middleware"
	"tourmate/internal/services"
	"tourmate/internal/utils"
)

// CreateVehicle registers a fleet vehicle.
func (h Handler) CreateVehicle(c *gin.Context) {
	var req services.VehicleInput
	if !BindJSONOrError(c, &req) {
		return
	}

	vehicle, err := h.vehicles(c).Add(middleware.GetActor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

// GetVehicles lists the fleet.
func (h Handler) GetVehicles(c *gin.Context) {
	vehicles, err := h.vehicles(c).All(middleware.GetActor(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// GetVehicleByID returns one vehicle.
func (h Handler) GetVehicleByID(c *gin.Context) {
	vehicle, err := h.vehicles(c).Get(middleware.GetActor(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicleStatus moves a vehicle between statuses.
func (h Handler) UpdateVehicleStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}

	vehicle, err := h.vehicles(c).SetStatus(middleware.GetActor(c), c.Param("id"), req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle removes a vehicle from the roster.
func (h Handler) DeleteVehicle(c *gin.Context) {
	if err := h.vehicles(c).Remove(middleware.GetActor(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// GetVehicleAvailability answers ?start=...&end=... (YYYY-MM-DD HH:MM:SS)
// for one vehicle.
func (h Handler) GetVehicleAvailability(c *gin.Context) {
	start, err := utils.ParseDateTime(c.Query("start"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid start", err)
		return
	}
	end, err := utils.ParseDateTime(c.Query("end"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid end", err)
		return
	}

	oracle := services.AvailabilityService{Store: h.Store}
	available, err := oracle.Check(middleware.GetActor(c), c.Param("id"), start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicleId": c.Param("id"), "available": available})
}

// GetVehicleBookings lists a vehicle's bookings.
func (h Handler) GetVehicleBookings(c *gin.Context) {
	bookings, err := h.bookings(c).ByVehicle(middleware.GetActor(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
