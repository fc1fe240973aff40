package models

import (
	"gorm.io/gorm"
)

type Supplier struct {
	gorm.Model
	SupplierCode string `json:"supplier_code" gorm:"unique;not null"`
	SupplierName string `json:"supplier_name" gorm:"not null"`
	Contact      string `json:"contact"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Category     string `json:"category"`
	CreatedBy    int    `json:"created_by"`
	UpdatedBy    int    `json:"updated_by"`
}
