package repositories

import (
	"testing"
	"time"

	"printstock/models"
	"printstock/types"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) (*gorm.DB, *CatalogRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.InventoryItem{},
		&models.StockMovement{},
		&models.ScrapReport{},
	))

	return db, NewCatalogRepository(db)
}

func seedItem(t *testing.T, db *gorm.DB, code string, godown, shop, ratio, price, minLevel int) *models.InventoryItem {
	t.Helper()
	item := &models.InventoryItem{
		ItemCode:        code,
		ItemName:        "Item " + code,
		Category:        models.CategoryPaper,
		GodownQty:       godown,
		ShopQty:         shop,
		BaseUnit:        "sheet",
		PurchaseUnit:    "ream",
		ConversionRatio: ratio,
		MinLevel:        minLevel,
		PurchasePrice:   price,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func seedMovement(t *testing.T, db *gorm.DB, id int64, itemID uint, movType string, qty int) {
	t.Helper()
	movement := models.StockMovement{
		ID:        types.SnowflakeID(id),
		ItemID:    itemID,
		Type:      movType,
		Quantity:  qty,
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&movement).Error)
}

func TestGetItemByCodeAndID(t *testing.T) {
	db, repo := newTestRepo(t)
	item := seedItem(t, db, "PPR-A4-75", 100, 0, 500, 250, 50)

	byCode, err := repo.GetItemByCode("PPR-A4-75")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, item.ID, byCode.ID)

	byID, err := repo.GetItemByID(item.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "PPR-A4-75", byID.ItemCode)

	missing, err := repo.GetItemByCode("NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.GetItemByID(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetItemsSortedByCode(t *testing.T) {
	db, repo := newTestRepo(t)
	seedItem(t, db, "INK-CYAN", 10, 0, 1, 900, 2)
	seedItem(t, db, "PPR-A4-75", 100, 0, 500, 250, 50)
	seedItem(t, db, "HRD-BLADE", 5, 0, 1, 150, 2)

	items, err := repo.GetItems()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "HRD-BLADE", items[0].ItemCode)
	assert.Equal(t, "INK-CYAN", items[1].ItemCode)
	assert.Equal(t, "PPR-A4-75", items[2].ItemCode)
}

func TestGetLowStockItems(t *testing.T) {
	db, repo := newTestRepo(t)
	// Below minimum across both locations: 20 + 10 < 50.
	low := seedItem(t, db, "PPR-LOW", 20, 10, 10, 100, 50)
	// At the minimum is not low.
	seedItem(t, db, "PPR-EDGE", 40, 10, 10, 100, 50)
	// No minimum set, never reported.
	seedItem(t, db, "PPR-NOMIN", 0, 0, 10, 100, 0)

	rows, err := repo.GetLowStockItems()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, low.ID, rows[0].ID)
	assert.Equal(t, 30, rows[0].TotalQty)
	assert.Equal(t, 50, rows[0].MinLevel)
}

func TestGetMovementsJoinsCatalogFields(t *testing.T) {
	db, repo := newTestRepo(t)
	paper := seedItem(t, db, "PPR-A4-75", 100, 0, 500, 250, 50)
	ink := seedItem(t, db, "INK-CYAN", 10, 0, 1, 900, 2)

	seedMovement(t, db, 1001, paper.ID, models.MovementInward, 500)
	seedMovement(t, db, 1002, paper.ID, models.MovementOutward, 100)
	seedMovement(t, db, 1003, ink.ID, models.MovementInward, 2)

	rows, err := repo.GetMovements(MovementFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Newest first, and each row carries the item's display fields.
	assert.EqualValues(t, 1003, rows[0].ID)
	assert.Equal(t, "INK-CYAN", rows[0].ItemCode)
	assert.Equal(t, "Item INK-CYAN", rows[0].ItemName)

	byItem, err := repo.GetMovements(MovementFilter{ItemID: paper.ID})
	require.NoError(t, err)
	require.Len(t, byItem, 2)

	byType, err := repo.GetMovements(MovementFilter{Type: models.MovementOutward})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.EqualValues(t, 1002, byType[0].ID)

	limited, err := repo.GetMovements(MovementFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.EqualValues(t, 1003, limited[0].ID)
}

func TestGetStockValuation(t *testing.T) {
	db, repo := newTestRepo(t)
	// 1000 sheets at 250 per ream of 500 values to 500.
	seedItem(t, db, "PPR-A4-75", 800, 200, 500, 250, 50)
	// 3 cartridges at 900 each.
	seedItem(t, db, "INK-CYAN", 3, 0, 1, 900, 2)

	rows, total, err := repo.GetStockValuation()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "INK-CYAN", rows[0].ItemCode)
	assert.Equal(t, 2700, rows[0].StockValue)
	assert.Equal(t, "PPR-A4-75", rows[1].ItemCode)
	assert.Equal(t, 500, rows[1].StockValue)
	assert.Equal(t, 3200, total)
}

func TestGetScrapSummary(t *testing.T) {
	db, repo := newTestRepo(t)
	item := seedItem(t, db, "PPR-A4-75", 100, 0, 10, 100, 50)

	scraps := []models.ScrapReport{
		{ItemID: item.ID, Quantity: 10, Reason: models.ScrapExpired, CostOfWaste: 100},
		{ItemID: item.ID, Quantity: 20, Reason: models.ScrapExpired, CostOfWaste: 200},
		{ItemID: item.ID, Quantity: 5, Reason: models.ScrapMaterialDefect, CostOfWaste: 50},
	}
	require.NoError(t, db.Create(&scraps).Error)

	rows, err := repo.GetScrapSummary()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, models.ScrapExpired, rows[0].Reason)
	assert.Equal(t, 2, rows[0].Entries)
	assert.Equal(t, 30, rows[0].TotalQty)
	assert.Equal(t, 300, rows[0].TotalCost)

	assert.Equal(t, models.ScrapMaterialDefect, rows[1].Reason)
	assert.Equal(t, 50, rows[1].TotalCost)
}
