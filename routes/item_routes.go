package routes

import (
	"printstock/config"
	"printstock/controllers"
	"printstock/middleware"
	"printstock/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupItemRoutes(app *fiber.App, db *gorm.DB) {
	itemController := controllers.NewItemController(db)
	api := app.Group(config.MAIN_ROUTES+"/items", middleware.AuthMiddleware)

	api.Get("/", itemController.GetAllItems)
	api.Get("/low-stock", itemController.GetLowStock)
	api.Get("/excel", itemController.ExportExcel)
	api.Post("/upload-excel", middleware.RequireRole(models.RoleStockKeeper), itemController.ImportExcel)
	api.Get("/:id", itemController.GetItemByID)
	api.Post("/", middleware.RequireRole(models.RoleStockKeeper), itemController.CreateItem)
	api.Put("/:id", middleware.RequireRole(models.RoleStockKeeper), itemController.UpdateItem)
}
