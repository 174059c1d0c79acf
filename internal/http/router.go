package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	h "tourmate/internal/http/handlers"
	"tourmate/internal/http/middleware"
)

// NewRouter builds the gin engine with the full API surface mounted.
func NewRouter(handler h.Handler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(allowedOrigins)))
	r.Use(middleware.Auth(handler.JWTSecret))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		auth := api.Group("/auth")
		auth.POST("/login", handler.Login)
		auth.POST("/register", handler.RegisterUser)

		customers := api.Group("/customers")
		customers.GET("", handler.GetCustomers)
		customers.POST("", handler.CreateCustomer)
		customers.GET("/:id", handler.GetCustomerByID)
		customers.PUT("/:id", handler.UpdateCustomer)
		customers.DELETE("/:id", handler.DeleteCustomer)
		customers.GET("/:id/bookings", handler.GetCustomerBookings)
		customers.GET("/:id/lifetime-value", handler.GetCustomerLifetimeValue)

		vehicles := api.Group("/vehicles")
		vehicles.GET("", handler.GetVehicles)
		vehicles.POST("", handler.CreateVehicle)
		vehicles.GET("/:id", handler.GetVehicleByID)
		vehicles.PUT("/:id/status", handler.UpdateVehicleStatus)
		vehicles.DELETE("/:id", handler.DeleteVehicle)
		vehicles.GET("/:id/availability", handler.GetVehicleAvailability)
		vehicles.GET("/:id/bookings", handler.GetVehicleBookings)

		bookings := api.Group("/bookings")
		bookings.GET("", handler.GetBookings)
		bookings.POST("", handler.CreateBooking)
		bookings.GET("/:id", handler.GetBookingByID)
		bookings.POST("/:id/confirm", handler.ConfirmBooking)
		bookings.POST("/:id/start", handler.StartTrip)
		bookings.POST("/:id/complete", handler.CompleteTrip)
		bookings.POST("/:id/cancel", handler.CancelBooking)
		bookings.POST("/:id/refund", handler.RefundBooking)
		bookings.GET("/:id/receipt", handler.GetBookingReceipt)

		sales := api.Group("/sales")
		sales.GET("", handler.GetSales)
		sales.POST("", handler.CreateSale)
		sales.GET("/:id", handler.GetSaleByID)
		sales.PUT("/:id", handler.UpdateSale)
		sales.DELETE("/:id", handler.DeleteSale)

		reports := api.Group("/reports")
		reports.GET("/revenue", handler.GetRevenueReport)
		reports.GET("/revenue/pdf", handler.GetRevenueReportPDF)
		reports.GET("/revenue/:window", handler.GetRevenueReport)
		reports.GET("/customers", handler.GetCustomerAnalytics)
		reports.GET("/customers/top", handler.GetTopCustomers)
	}

	return r
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		cfg.AllowOrigins = allowedOrigins
	} else {
		cfg.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"}
	cfg.AllowCredentials = true
	return cfg
}
