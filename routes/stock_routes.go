package routes

import (
	"printstock/config"
	"printstock/controllers"
	"printstock/middleware"
	"printstock/models"
	"printstock/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupStockRoutes(app *fiber.App, db *gorm.DB, stock *services.StockService) {
	stockController := controllers.NewStockController(db, stock)
	api := app.Group(config.MAIN_ROUTES+"/stock", middleware.AuthMiddleware)

	api.Get("/movements", stockController.GetMovements)
	api.Get("/movements/excel", stockController.ExportMovements)

	keeper := middleware.RequireRole(models.RoleStockKeeper)
	api.Post("/transfer", keeper, stockController.Transfer)
	api.Post("/receive", keeper, stockController.ReceiveGoods)
	api.Post("/issue", keeper, stockController.IssueMaterial)
	api.Post("/return", keeper, stockController.ReturnMaterial)
}
