package main

import (
	"fmt"
	"log"
	"os"

	"printstock/config"
	"printstock/controllers/idgen"
	"printstock/database"
	"printstock/routes"
	"printstock/services"

	"github.com/gofiber/fiber/v2"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	// Wire the core: one notification emitter, one stock processor, and
	// the workflows that all funnel through it.
	notifier := services.NewNotifier(db)
	stockService := services.NewStockService(db, notifier)
	approvalService := services.NewApprovalService(db, stockService, notifier)
	indentService := services.NewIndentService(db, notifier)
	auditService := services.NewAuditService(db, stockService, notifier)

	if os.Getenv("SEED_DEMO") == "true" {
		database.SeedDemoMovements(db, stockService)
	}

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, db)
	routes.SetupItemRoutes(app, db)
	routes.SetupStockRoutes(app, db, stockService)
	routes.SetupAdjustmentRoutes(app, db, approvalService)
	routes.SetupIndentRoutes(app, db, indentService)
	routes.SetupAuditRoutes(app, db, auditService)
	routes.SetupSupplierRoutes(app, db)
	routes.SetupNotificationRoutes(app, db)
	routes.SetupReportRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
