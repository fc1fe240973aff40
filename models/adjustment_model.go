package models

import (
	"time"

	"gorm.io/gorm"
)

// PendingAdjustment is an approval-gated stock correction request.
// Resolved requests are retained with a terminal status instead of being
// deleted, so the approval trail stays auditable.
type PendingAdjustment struct {
	gorm.Model
	ItemID      uint       `json:"item_id" gorm:"index;not null"`
	Qty         int        `json:"qty" gorm:"not null"`
	Unit        string     `json:"unit" gorm:"default:'BASE'"`
	Type        string     `json:"type" gorm:"not null"`
	Location    string     `json:"location" gorm:"not null"`
	Reason      string     `json:"reason"`
	Cost        int        `json:"cost" gorm:"default:0"`
	Status      string     `json:"status" gorm:"index;default:'PENDING'"`
	RequestedBy int        `json:"requested_by"`
	ResolvedBy  int        `json:"resolved_by"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}
