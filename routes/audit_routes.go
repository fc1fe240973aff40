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

func SetupAuditRoutes(app *fiber.App, db *gorm.DB, audit *services.AuditService) {
	auditController := controllers.NewAuditController(db, audit)
	api := app.Group(config.MAIN_ROUTES+"/audits", middleware.AuthMiddleware)

	api.Get("/", auditController.GetAllAudits)
	api.Get("/:code", auditController.GetAuditDetail)
	api.Get("/:code/review", auditController.ReviewAudit)

	keeper := middleware.RequireRole(models.RoleStockKeeper)
	api.Post("/", keeper, auditController.StartAudit)
	api.Post("/:code/count", keeper, auditController.RecordCount)
	api.Post("/:code/confirm", middleware.RequireRole(models.RoleAdmin), auditController.ConfirmAudit)
}
