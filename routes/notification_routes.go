package routes

import (
	"printstock/config"
	"printstock/controllers"
	"printstock/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupNotificationRoutes(app *fiber.App, db *gorm.DB) {
	notificationController := controllers.NewNotificationController(db)
	api := app.Group(config.MAIN_ROUTES+"/notifications", middleware.AuthMiddleware)

	api.Get("/", notificationController.GetNotifications)
	api.Post("/:id/read", notificationController.MarkRead)
}
