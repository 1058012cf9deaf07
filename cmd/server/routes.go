package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"trimly.backend/internal/interfaces/http/handlers"
	"trimly.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	businessHandler      *handlers.BusinessHandler
	staffHandler         *handlers.StaffHandler
	bookingHandler       *handlers.BookingHandler
	revenueHandler       *handlers.RevenueHandler
	webhookHandler       *handlers.WebhookHandler
	resellerHandler      *handlers.ResellerHandler
	authMiddleware       gin.HandlerFunc
	apiKeyAuthMiddleware gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Api-Key, X-Idempotency-Key, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "trimly-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Public business routes
		v1.GET("/businesses/slug/:slug", d.businessHandler.GetBySlug)
		v1.GET("/businesses/:businessId/services", d.businessHandler.ListServices)
		v1.GET("/businesses/:businessId/fees/quote", d.revenueHandler.QuoteFee)

		// Business routes (protected)
		businesses := v1.Group("/businesses")
		businesses.Use(d.authMiddleware)
		{
			businesses.POST("", middleware.IdempotencyMiddleware(), d.businessHandler.Register)
			businesses.GET("", d.businessHandler.List)
			businesses.GET("/:businessId", d.businessHandler.Get)
			businesses.POST("/:businessId/activate", d.businessHandler.Activate)
			businesses.POST("/:businessId/suspend", d.businessHandler.Suspend)
			businesses.PUT("/:businessId/fee-rate", d.businessHandler.UpdateFeeRate)
			businesses.POST("/:businessId/services", d.businessHandler.CreateService)

			// Staff
			businesses.POST("/:businessId/staff", d.staffHandler.Add)
			businesses.GET("/:businessId/staff", d.staffHandler.List)
			businesses.PUT("/:businessId/staff/:staffId/payout-policy", d.staffHandler.SetPayoutPolicy)
			businesses.DELETE("/:businessId/staff/:staffId", d.staffHandler.Remove)

			// Bookings
			businesses.POST("/:businessId/bookings", middleware.IdempotencyMiddleware(), d.bookingHandler.Create)
			businesses.GET("/:businessId/bookings", d.bookingHandler.List)
			businesses.GET("/:businessId/bookings/:bookingId", d.bookingHandler.Get)
			businesses.POST("/:businessId/bookings/:bookingId/confirm", d.bookingHandler.Confirm)
			businesses.POST("/:businessId/bookings/:bookingId/start", d.bookingHandler.Start)
			businesses.POST("/:businessId/bookings/:bookingId/complete", d.bookingHandler.Complete)
			businesses.POST("/:businessId/bookings/:bookingId/cancel", d.bookingHandler.Cancel)
			businesses.POST("/:businessId/bookings/:bookingId/no-show", d.bookingHandler.NoShow)

			// Funds and payouts
			businesses.GET("/:businessId/funds", d.revenueHandler.GetFunds)
			businesses.GET("/:businessId/payouts/allocations", d.revenueHandler.GetAllocations)
			businesses.POST("/:businessId/payouts", middleware.IdempotencyMiddleware(), d.revenueHandler.RequestPayout)
			businesses.GET("/:businessId/payouts", d.revenueHandler.ListPayouts)
			businesses.GET("/:businessId/payouts/:payoutId", d.revenueHandler.GetPayout)
		}

		// Reseller administration (protected)
		resellers := v1.Group("/resellers")
		resellers.Use(d.authMiddleware)
		{
			resellers.POST("", d.resellerHandler.Create)
			resellers.GET("", d.resellerHandler.List)
			resellers.PUT("/:resellerId/platform-fee", d.resellerHandler.SetPlatformFee)
			resellers.POST("/:resellerId/api-keys", d.resellerHandler.IssueAPIKey)
			resellers.DELETE("/:resellerId/api-keys/:keyId", d.resellerHandler.RevokeAPIKey)
		}

		// Reseller console (API key)
		console := v1.Group("/console")
		console.Use(d.apiKeyAuthMiddleware)
		{
			console.GET("/profile", d.resellerHandler.ConsoleProfile)
		}

		// Payment processor webhooks (signature-verified)
		webhooks := v1.Group("/webhooks")
		{
			webhooks.POST("/checkout-completed", d.webhookHandler.CheckoutCompleted)
			webhooks.POST("/payout-confirmed", d.webhookHandler.PayoutConfirmed)
		}
	}
}
