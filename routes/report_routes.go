package routes

import (
	"printstock/config"
	"printstock/controllers"
	"printstock/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB) {
	reportController := controllers.NewReportController(db)
	api := app.Group(config.MAIN_ROUTES+"/reports", middleware.AuthMiddleware)

	api.Get("/valuation", reportController.GetStockValuation)
	api.Get("/scrap", reportController.GetScrapReports)
	api.Get("/scrap/summary", reportController.GetScrapSummary)
}
