package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourmate/internal/http/middleware"
	"tourmate/internal/services"
	"tourmate/internal/utils"
)

// CreateSale records a manual settlement entry.
func (h Handler) CreateSale(c *gin.Context) {
	var req services.SalesInput
	if !BindJSONOrError(c, &req) {
		return
	}

	rec, err := h.sales(c).Add(middleware.GetActor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// GetSales lists the ledger with optional filters: ?q= substring search,
// ?vehicleId=, ?customerId=, or ?start=&end= date range.
func (h Handler) GetSales(c *gin.Context) {
	svc := h.sales(c)
	actor := middleware.GetActor(c)

	switch {
	case c.Query("q") != "":
		records, err := svc.Search(actor, c.Query("q"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
	case c.Query("vehicleId") != "":
		records, err := svc.ByVehicle(actor, c.Query("vehicleId"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
	case c.Query("customerId") != "":
		records, err := svc.ByCustomer(actor, c.Query("customerId"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
	case c.Query("start") != "" || c.Query("end") != "":
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
		records, err := svc.ByDateRange(actor, start, end)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
	default:
		records, err := svc.All(actor)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

// GetSaleByID returns one sales record.
func (h Handler) GetSaleByID(c *gin.Context) {
	rec, err := h.sales(c).Get(middleware.GetActor(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateSale corrects a ledger entry.
func (h Handler) UpdateSale(c *gin.Context) {
	var req services.SalesPatch
	if !BindJSONOrError(c, &req) {
		return
	}

	rec, err := h.sales(c).Update(middleware.GetActor(c), c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DeleteSale removes a ledger entry.
func (h Handler) DeleteSale(c *gin.Context) {
	if err := h.sales(c).Delete(middleware.GetActor(c), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
