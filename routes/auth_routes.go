package routes

import (
	"printstock/config"
	"printstock/controllers"
	"printstock/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controllers.NewAuthController(db)
	api := app.Group(config.MAIN_ROUTES)

	api.Post("/login", authController.Login)
	api.Get("/me", middleware.AuthMiddleware, authController.Me)
}
