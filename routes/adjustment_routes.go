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

func SetupAdjustmentRoutes(app *fiber.App, db *gorm.DB, approval *services.ApprovalService) {
	adjustmentController := controllers.NewAdjustmentController(db, approval)
	api := app.Group(config.MAIN_ROUTES+"/adjustments", middleware.AuthMiddleware)

	api.Get("/", adjustmentController.GetPending)
	api.Get("/history", adjustmentController.GetHistory)
	api.Post("/", middleware.RequireRole(models.RoleStockKeeper), adjustmentController.RequestAdjustment)

	// Only admins resolve requests.
	admin := middleware.RequireRole(models.RoleAdmin)
	api.Post("/:id/approve", admin, adjustmentController.ApproveAdjustment)
	api.Post("/:id/reject", admin, adjustmentController.RejectAdjustment)
}
