package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/kmayhew/propfolio/propfolio-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, exportLimiter *middleware.RateLimiter,
	authHandler *AuthHandler, analysisHandler *AnalysisHandler, exportHandler *ExportHandler, photoHandler *PhotoHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (protected)
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)
	auth.POST("/logout", authHandler.Logout)

	// Analysis routes (protected)
	analyses := api.Group("/analyses")
	analyses.Use(authMiddleware.Authenticate())
	analyses.POST("", analysisHandler.CreateAnalysis)
	analyses.GET("", analysisHandler.GetAnalyses)
	analyses.GET("/:id", analysisHandler.GetAnalysis)
	analyses.DELETE("/:id", analysisHandler.DeleteAnalysis)

	// Questionnaire section updates
	analyses.PUT("/:id/property-info", analysisHandler.UpdatePropertyInfo)
	analyses.PUT("/:id/mortgage", analysisHandler.UpdateMortgage)
	analyses.PUT("/:id/rent-occupancy", analysisHandler.UpdateRentOccupancy)
	analyses.PUT("/:id/operating-expenses", analysisHandler.UpdateOperatingExpenses)
	analyses.PUT("/:id/capital-expenditures", analysisHandler.UpdateCapitalExpenditures)
	analyses.PUT("/:id/purchase-costs", analysisHandler.UpdatePurchaseCosts)
	analyses.PUT("/:id/contingency", analysisHandler.UpdateContingency)
	analyses.PUT("/:id/appreciation", analysisHandler.UpdateAppreciation)

	// Workflow navigation
	analyses.POST("/:id/steps/complete", analysisHandler.CompleteStep)
	analyses.POST("/:id/steps/enter", analysisHandler.EnterStep)

	// Summary and export
	analyses.GET("/:id/summary", analysisHandler.GetSummary)
	analyses.POST("/:id/export", exportHandler.ExportAnalysis, middleware.RateLimitMiddleware(exportLimiter))

	// Photos
	analyses.POST("/:id/photos", photoHandler.UploadPhoto)
	analyses.GET("/:id/photos", photoHandler.GetPhotos)

	photos := api.Group("/photos")
	photos.Use(authMiddleware.Authenticate())
	photos.DELETE("/:photoId", photoHandler.DeletePhoto)
}
