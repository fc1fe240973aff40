package models

import (
	"gorm.io/gorm"
)

// StockAudit is a two-phase physical count: findings are collected first,
// then variances are reviewed and posted as corrective adjustments.
type StockAudit struct {
	gorm.Model
	Code      string              `json:"code" gorm:"unique"`
	Status    string              `json:"status" gorm:"default:'IN_PROGRESS'"`
	CreatedBy int                 `json:"created_by"`
	UpdatedBy int                 `json:"updated_by"`
	Findings  []StockAuditFinding `json:"findings" gorm:"foreignKey:StockAuditID;references:ID;constraint:OnDelete:CASCADE"`
}

type StockAuditFinding struct {
	gorm.Model
	StockAuditID uint   `json:"stock_audit_id" gorm:"index"`
	ItemID       uint   `json:"item_id" gorm:"index"`
	SystemQty    int    `json:"system_qty"`
	PhysicalQty  int    `json:"physical_qty"`
	Counted      bool   `json:"counted" gorm:"default:false"`
	Variance     int    `json:"variance"`
	Notes        string `json:"notes"`
	CountedBy    int    `json:"counted_by"`
}
