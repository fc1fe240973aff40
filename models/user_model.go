package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"unique;not null" validate:"required,min=3"`
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"default:'OPERATOR'"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}
