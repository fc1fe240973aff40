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

func SetupIndentRoutes(app *fiber.App, db *gorm.DB, indent *services.IndentService) {
	indentController := controllers.NewIndentController(db, indent)
	api := app.Group(config.MAIN_ROUTES+"/indents", middleware.AuthMiddleware)

	api.Get("/", indentController.GetIndents)

	keeper := middleware.RequireRole(models.RoleStockKeeper)
	api.Post("/", keeper, indentController.CreateIndent)
	api.Post("/auto-generate", keeper, indentController.AutoGenerate)
	api.Post("/:id/order", keeper, indentController.MarkOrdered)
	api.Post("/:id/receive", keeper, indentController.MarkReceived)
}
