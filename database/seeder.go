package database

import (
	"fmt"
	"log"

	"printstock/models"
	"printstock/services"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/rand"
	"gorm.io/gorm"
)

// RunSeeders fills empty tables with the starter users, suppliers and the
// print-shop catalog. Existing data is never touched.
func RunSeeders(db *gorm.DB) {
	seedUsers(db)
	seedSuppliers(db)
	seedCatalog(db)
}

func seedUsers(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	users := []struct {
		username string
		name     string
		role     string
	}{
		{"admin", "Administrator", models.RoleAdmin},
		{"keeper", "Stock Keeper", models.RoleStockKeeper},
		{"operator", "Machine Operator", models.RoleOperator},
	}

	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.username+"123"), bcrypt.DefaultCost)
		if err != nil {
			log.Println("seeder: failed to hash password:", err)
			continue
		}
		db.Create(&models.User{
			Username: u.username,
			Name:     u.name,
			Email:    u.username + "@printstock.local",
			Password: string(hashed),
			Role:     u.role,
		})
	}

	fmt.Println("Seeded default users")
}

func seedSuppliers(db *gorm.DB) {
	var count int64
	db.Model(&models.Supplier{}).Count(&count)
	if count > 0 {
		return
	}

	suppliers := []models.Supplier{
		{SupplierCode: "SUP001", SupplierName: "Sharma Paper Mart", Contact: "Ramesh Sharma", Phone: "9876500001", Category: models.CategoryPaper},
		{SupplierCode: "SUP002", SupplierName: "Inkwell Traders", Contact: "Priya Nair", Phone: "9876500002", Category: models.CategoryInk},
		{SupplierCode: "SUP003", SupplierName: "City Hardware Stores", Contact: "Abdul Khan", Phone: "9876500003", Category: models.CategoryHardware},
	}
	db.Create(&suppliers)

	fmt.Println("Seeded suppliers")
}

func seedCatalog(db *gorm.DB) {
	var count int64
	db.Model(&models.InventoryItem{}).Count(&count)
	if count > 0 {
		return
	}

	items := []models.InventoryItem{
		{ItemCode: "PPR-A4-75", ItemName: "A4 Paper 75gsm", Category: models.CategoryPaper, BaseUnit: "sheet", PurchaseUnit: "ream", ConversionRatio: 500, MinLevel: 2000, BinLocation: "G-A1", PurchasePrice: 240, SellingPrice: 1},
		{ItemCode: "PPR-A3-100", ItemName: "A3 Paper 100gsm", Category: models.CategoryPaper, BaseUnit: "sheet", PurchaseUnit: "ream", ConversionRatio: 500, MinLevel: 1000, BinLocation: "G-A2", PurchasePrice: 520, SellingPrice: 3},
		{ItemCode: "INK-CMYK-BK", ItemName: "Offset Ink Black", Category: models.CategoryInk, BaseUnit: "ml", PurchaseUnit: "bottle", ConversionRatio: 1000, MinLevel: 3000, BinLocation: "G-B1", PurchasePrice: 850},
		{ItemCode: "INK-CMYK-CY", ItemName: "Offset Ink Cyan", Category: models.CategoryInk, BaseUnit: "ml", PurchaseUnit: "bottle", ConversionRatio: 1000, MinLevel: 2000, BinLocation: "G-B2", PurchasePrice: 950},
		{ItemCode: "HW-STAPLE-26", ItemName: "Staples 26/6", Category: models.CategoryHardware, BaseUnit: "pin", PurchaseUnit: "box", ConversionRatio: 5000, MinLevel: 5000, BinLocation: "S-C1", PurchasePrice: 45},
		{ItemCode: "SPR-BLADE-STD", ItemName: "Cutting Machine Blade", Category: models.CategorySpares, BaseUnit: "piece", PurchaseUnit: "piece", ConversionRatio: 1, MinLevel: 2, BinLocation: "G-D1", PurchasePrice: 1200},
	}
	db.Create(&items)

	fmt.Println("Seeded item catalog")
}

// SeedDemoMovements books a handful of random receipts and transfers so a
// fresh install has something on the ledger. Goes through the stock
// service like any other caller.
func SeedDemoMovements(db *gorm.DB, stock *services.StockService) {
	var count int64
	db.Model(&models.StockMovement{}).Count(&count)
	if count > 0 {
		return
	}

	var items []models.InventoryItem
	if err := db.Find(&items).Error; err != nil {
		log.Println("seeder: failed to load items:", err)
		return
	}

	for _, item := range items {
		qty := int(rand.Int31n(8)) + 2
		_, err := stock.ReceiveGoods(services.ReceiveInput{
			ItemID:     item.ID,
			Qty:        qty,
			Unit:       models.UnitPurchase,
			Supplier:   "Opening Stock",
			InvoiceRef: "OPENING",
			UnitCost:   item.PurchasePrice,
			Location:   models.LocationGodown,
		})
		if err != nil {
			log.Println("seeder: failed to book opening stock:", err)
			continue
		}

		if shopQty := (qty / 2) * item.ConversionRatio; shopQty > 0 {
			if _, err := stock.Transfer(services.TransferInput{
				ItemID: item.ID,
				From:   models.LocationGodown,
				To:     models.LocationShop,
				Qty:    shopQty,
				Notes:  "Initial shop floor stock",
			}); err != nil {
				log.Println("seeder: failed to transfer demo stock:", err)
			}
		}
	}

	fmt.Println("Seeded demo movements")
}
