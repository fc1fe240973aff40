package services

import (
	"testing"

	"printstock/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One in-memory sqlite database per test; a single connection keeps
	// every goroutine on the same database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
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
	))

	return db
}

func newStockService(t *testing.T) (*gorm.DB, *StockService) {
	t.Helper()
	db := newTestDB(t)
	return db, NewStockService(db, NewNotifier(db))
}

// createTestItem seeds a paper item with 100 base units in the godown,
// conversion ratio 10 and average cost 100 per purchase unit. Overrides
// tweak individual fields.
func createTestItem(t *testing.T, db *gorm.DB, overrides ...func(*models.InventoryItem)) *models.InventoryItem {
	t.Helper()

	item := &models.InventoryItem{
		ItemCode:        "PPR-TEST",
		ItemName:        "Test Paper",
		Category:        models.CategoryPaper,
		GodownQty:       100,
		ShopQty:         0,
		BaseUnit:        "sheet",
		PurchaseUnit:    "ream",
		ConversionRatio: 10,
		MinLevel:        50,
		PurchasePrice:   100,
	}
	for _, override := range overrides {
		override(item)
	}

	require.NoError(t, db.Create(item).Error)
	return item
}

func reloadItem(t *testing.T, db *gorm.DB, id uint) *models.InventoryItem {
	t.Helper()
	var item models.InventoryItem
	require.NoError(t, db.First(&item, id).Error)
	return &item
}

func countMovements(t *testing.T, db *gorm.DB, itemID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.StockMovement{}).Where("item_id = ?", itemID).Count(&count).Error)
	return count
}
