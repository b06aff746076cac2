// Package app wires the HTTP surface together.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"mentor-payments/internal/middleware"
	"mentor-payments/internal/services/payments/handler"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	PaymentsHandler *handler.Handler
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a Gin router with all routes registered. CORS runs
// first so preflight requests never reach a handler.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.POST("/create-payment-intent", deps.PaymentsHandler.CreatePaymentIntent)
	router.POST("/create-refund", deps.PaymentsHandler.CreateRefund)
	router.POST("/create-connect-account", deps.PaymentsHandler.CreateConnectAccount)
	router.GET("/mentor-balance/:mentorId", deps.PaymentsHandler.MentorBalance)
	router.POST("/stripe-webhook", deps.PaymentsHandler.StripeWebhook)

	return router
}
