// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/agrostack/farmkeep/internal/config"
	"github.com/agrostack/farmkeep/internal/handler"
	"github.com/agrostack/farmkeep/internal/middleware"
	"github.com/agrostack/farmkeep/internal/model"
)

// Handlers groups every handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Farm     *handler.FarmHandler
	Advisor  *handler.AdvisorHandler
	Insights *handler.InsightsHandler
	Market   *handler.MarketHandler
	Payments *handler.PaymentHandler
	Admin    *handler.AdminHandler
	Reports  *handler.ReportHandler
}

// Register mounts all routes. Public routes are the health check and the
// auth endpoints; everything else sits behind SessionAuth, with the admin
// console additionally behind RequireRole.
func Register(e *echo.Echo, h Handlers, db *gorm.DB, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health(db))

	auth := e.Group("/api/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	api := e.Group("/api", middleware.SessionAuth(cfg.JWTSecret))
	api.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	api.GET("/auth/me", h.Auth.Me)

	// dashboard CRUD
	api.POST("/task", h.Farm.UpsertTask)
	api.GET("/tasks", h.Farm.ListTasks)
	api.POST("/delete_task", h.Farm.DeleteTask)
	api.POST("/inventory", h.Farm.AddInventory)
	api.GET("/inventory_list", h.Farm.ListInventory)
	api.POST("/delete_inventory", h.Farm.DeleteInventory)
	api.POST("/expense", h.Farm.AddExpense)
	api.GET("/expenses", h.Farm.ListExpenses)
	api.POST("/delete_expense", h.Farm.DeleteExpense)
	api.POST("/journal", h.Farm.AddJournal)
	api.GET("/journal_entries", h.Farm.ListJournal)
	api.POST("/delete_journal", h.Farm.DeleteJournal)
	api.POST("/send_reminder", h.Farm.SendReminder)

	// advisory endpoints; GETs that hit paid upstreams are cached
	cached := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	api.POST("/predict", h.Advisor.Predict)
	api.GET("/crop_recommendations", h.Advisor.CropRecommendations, cached)
	api.GET("/weather_current", h.Advisor.CurrentWeather, cached)
	api.GET("/weather_forecast", h.Advisor.WeatherForecast, cached)
	api.GET("/geocode", h.Advisor.Geocode, cached)
	api.GET("/market_insights", h.Insights.MarketInsights, cached)
	api.GET("/farming_alerts", h.Insights.FarmingAlerts, cached)
	api.GET("/smart_calendar", h.Insights.SmartCalendar, cached)
	api.GET("/risk_bands", h.Insights.RiskBands, cached)
	api.POST("/chat", h.Insights.Chat)

	// reports
	api.GET("/seasonal_report", h.Reports.Seasonal)
	api.GET("/report/pdf", h.Reports.PDF)
	api.GET("/report/xlsx", h.Reports.XLSX)

	// marketplace
	api.POST("/request_verification", h.Market.RequestVerification)
	api.GET("/verification_status", h.Market.VerificationStatus)
	api.POST("/product", h.Market.CreateProduct)
	api.GET("/my_products", h.Market.MyProducts)
	api.POST("/delete_product", h.Market.DeleteProduct)
	api.GET("/marketplace", h.Market.Marketplace)
	api.POST("/submit_payment", h.Payments.SubmitPayment)
	api.GET("/my_orders", h.Payments.MyOrders)

	admin := api.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	admin.GET("/pending_products", h.Admin.PendingProducts)
	admin.GET("/pending_verifications", h.Admin.PendingVerifications)
	admin.GET("/pending_payments", h.Admin.PendingPayments)
	admin.GET("/payment_screenshot", h.Admin.PaymentScreenshot)
	admin.POST("/approve_product", h.Admin.ApproveProduct)
	admin.POST("/reject_product", h.Admin.RejectProduct)
	admin.POST("/approve_verification", h.Admin.ApproveVerification)
	admin.POST("/reject_verification", h.Admin.RejectVerification)
	admin.POST("/verify_payment", h.Admin.VerifyPayment)
	admin.POST("/reject_payment", h.Admin.RejectPayment)
}
