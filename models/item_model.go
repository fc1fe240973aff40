package models

import (
	"time"

	"gorm.io/gorm"
)

// InventoryItem is the catalog master record. GodownQty and ShopQty are
// cached levels in base units; they are only ever written inside the stock
// service's critical section, in the same transaction as the ledger append.
type InventoryItem struct {
	gorm.Model
	ItemCode        string `json:"item_code" gorm:"unique;not null" validate:"required,min=3"`
	ItemName        string `json:"item_name" gorm:"not null" validate:"required"`
	Category        string `json:"category" gorm:"not null" validate:"required"`
	GodownQty       int    `json:"godown_qty" gorm:"default:0"`
	ShopQty         int    `json:"shop_qty" gorm:"default:0"`
	BaseUnit        string `json:"base_unit" gorm:"not null"`
	PurchaseUnit    string `json:"purchase_unit" gorm:"not null"`
	ConversionRatio int    `json:"conversion_ratio" gorm:"default:1" validate:"required,min=1"`
	MinLevel        int    `json:"min_level" gorm:"default:0"`
	BinLocation     string `json:"bin_location"`
	LastSupplier    string `json:"last_supplier"`
	LastMovedAt     *time.Time `json:"last_moved_at"`
	PurchasePrice   int    `json:"purchase_price" gorm:"default:0"`
	LastCost        int    `json:"last_cost" gorm:"default:0"`
	SellingPrice    int    `json:"selling_price" gorm:"default:0"`
	CreatedBy       int    `json:"created_by"`
	UpdatedBy       int    `json:"updated_by"`
}

// TotalQty is the combined stock across both locations, in base units.
func (i *InventoryItem) TotalQty() int {
	return i.GodownQty + i.ShopQty
}

// QtyAt returns the cached level for one location.
func (i *InventoryItem) QtyAt(location string) int {
	if location == LocationShop {
		return i.ShopQty
	}
	return i.GodownQty
}
