package handler

import (
	"net/http"

	"github.com/dafibh/gofinance/gofinance-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes sets up all API routes. apiBaseURL is advertised as the
// server in the OpenAPI doc.
func RegisterRoutes(e *echo.Echo, apiBaseURL string, rateLimiter *middleware.RateLimiter, ledgerHandler *LedgerHandler, categoryHandler *CategoryHandler, wsHandler *WebSocketHandler) {
	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", OpenAPIHandler(apiBaseURL))

	// API version 1
	api := e.Group("/api/v1")

	api.GET("/ledger", ledgerHandler.GetLedger)

	// Writes are rate limited per client
	transactions := api.Group("/transactions")
	if rateLimiter != nil {
		transactions.Use(middleware.RateLimitMiddleware(rateLimiter))
	}
	transactions.POST("", ledgerHandler.CreateTransaction)

	categories := api.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:key", categoryHandler.GetCategory)

	api.GET("/ws", wsHandler.HandleWS)
}
