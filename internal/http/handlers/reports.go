package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourmate/internal/domain"
	"tourmate/internal/http/middleware"
	"tourmate/internal/services"
	"tourmate/internal/utils"
)

func (h Handler) reportWindow(c *gin.Context) (services.RevenueReport, error) {
	svc := h.reports(c)
	actor := middleware.GetActor(c)

	switch c.Param("window") {
	case "daily":
		return svc.Daily(actor)
	case "weekly":
		return svc.Weekly(actor)
	case "monthly":
		return svc.Monthly(actor)
	case "yearly":
		return svc.Yearly(actor)
	default:
		start, err := utils.ParseDateTime(c.Query("start"))
		if err != nil {
			return services.RevenueReport{}, domain.Wrap(domain.KindInvalidData, "start", err)
		}
		end, err := utils.ParseDateTime(c.Query("end"))
		if err != nil {
			return services.RevenueReport{}, domain.Wrap(domain.KindInvalidData, "end", err)
		}
		return svc.Report(actor, start, end)
	}
}

// GetRevenueReport serves /reports/revenue (custom ?start=&end=) and the
// /reports/revenue/:window convenience paths.
func (h Handler) GetRevenueReport(c *gin.Context) {
	rep, err := h.reportWindow(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetRevenueReportPDF streams a revenue report PDF for ?start=&end=.
func (h Handler) GetRevenueReportPDF(c *gin.Context) {
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

	data, filename, err := h.docs(c).RevenueReportPDF(middleware.GetActor(c), start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// GetCustomerAnalytics serves the customer-base summary.
func (h Handler) GetCustomerAnalytics(c *gin.Context) {
	rep, err := h.reports(c).CustomerAnalytics(middleware.GetActor(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetTopCustomers lists the ?n= highest spenders, default 5.
func (h Handler) GetTopCustomers(c *gin.Context) {
	n := 5
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid n", err)
			return
		}
		n = parsed
	}

	customers, err := h.reports(c).TopCustomers(middleware.GetActor(c), n)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomerLifetimeValue returns a customer's accrued spend.
func (h Handler) GetCustomerLifetimeValue(c *gin.Context) {
	value, err := h.reports(c).CustomerLifetimeValue(middleware.GetActor(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customerId": c.Param("id"), "lifetimeValue": value})
}
