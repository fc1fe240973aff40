package models

import (
	"time"

	"printstock/types"

	"gorm.io/gorm"
)

// StockMovement is the single append-only stock ledger. Rows are written
// exactly once, inside the same transaction as the level mutation they
// describe, and are never updated or deleted afterwards. Item name and
// other display fields are joined from the catalog at read time.
type StockMovement struct {
	ID           types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	ItemID       uint              `json:"item_id" gorm:"index;not null"`
	Type         string            `json:"type" gorm:"index;not null"`
	Quantity     int               `json:"quantity" gorm:"not null"`
	FromLocation string            `json:"from_location"`
	ToLocation   string            `json:"to_location"`
	RefNo        string            `json:"ref_no"`
	UnitCost     int               `json:"unit_cost" gorm:"default:0"`
	Reason       string            `json:"reason"`
	Notes        string            `json:"notes"`
	PerformedBy  int               `json:"performed_by"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ScrapReport records inventory written off as loss, with its estimated
// cost at the item's weighted-average price when the write-off executed.
type ScrapReport struct {
	gorm.Model
	ItemID      uint   `json:"item_id" gorm:"index;not null"`
	Quantity    int    `json:"quantity" gorm:"not null"`
	Reason      string `json:"reason" gorm:"not null"`
	CostOfWaste int    `json:"cost_of_waste" gorm:"default:0"`
	ReportedBy  int    `json:"reported_by"`
}
