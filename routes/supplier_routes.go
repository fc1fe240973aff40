package routes

import (
	"printstock/config"
	"printstock/controllers"
	"printstock/middleware"
	"printstock/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSupplierRoutes(app *fiber.App, db *gorm.DB) {
	supplierController := controllers.NewSupplierController(db)
	api := app.Group(config.MAIN_ROUTES+"/suppliers", middleware.AuthMiddleware)

	api.Get("/", supplierController.GetAllSuppliers)
	api.Get("/:id", supplierController.GetSupplierByID)

	keeper := middleware.RequireRole(models.RoleStockKeeper)
	api.Post("/", keeper, supplierController.CreateSupplier)
	api.Put("/:id", keeper, supplierController.UpdateSupplier)
	api.Delete("/:id", middleware.RequireRole(models.RoleAdmin), supplierController.DeleteSupplier)
}
