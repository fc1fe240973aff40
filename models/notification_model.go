package models

import (
	"gorm.io/gorm"
)

// Notification is a persisted copy of every emitted notification. Email
// delivery is fire-and-forget; this row is what the dashboard reads.
type Notification struct {
	gorm.Model
	Title      string `json:"title" gorm:"not null"`
	Message    string `json:"message"`
	Severity   string `json:"severity" gorm:"default:'INFO'"`
	TargetRole string `json:"target_role" gorm:"index"`
	IsRead     bool   `json:"is_read" gorm:"default:false"`
}
