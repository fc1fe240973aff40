package database

import (
	"printstock/models"

	"gorm.io/gorm"
)

// Migrate creates/updates the schema for every entity. The movement
// ledger and scrap reports are append-only by convention: nothing in the
// codebase updates or deletes their rows.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.InventoryItem{},
		&models.StockMovement{},
		&models.ScrapReport{},
		&models.PendingAdjustment{},
		&models.PurchaseRequest{},
		&models.StockAudit{},
		&models.StockAuditFinding{},
		&models.Notification{},
	)
}
