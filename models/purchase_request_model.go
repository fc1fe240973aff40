package models

import (
	"gorm.io/gorm"
)

// PurchaseRequest is an internal replenishment indent raised before an
// actual supplier purchase order. Lifecycle is strictly
// PENDING -> ORDERED -> RECEIVED.
type PurchaseRequest struct {
	gorm.Model
	ItemID       uint   `json:"item_id" gorm:"index;not null"`
	CurrentStock int    `json:"current_stock"`
	RequestedQty int    `json:"requested_qty" gorm:"not null"`
	Status       string `json:"status" gorm:"index;default:'PENDING'"`
	Supplier     string `json:"supplier"`
	Urgency      string `json:"urgency" gorm:"default:'MEDIUM'"`
	AutoCreated  bool   `json:"auto_created" gorm:"default:false"`
	CreatedBy    int    `json:"created_by"`
	UpdatedBy    int    `json:"updated_by"`
}
