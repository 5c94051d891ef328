package models

import (
	"time"
)

// User is an identity record. Roles are independent capability flags, not
// an exclusive enum: a user may be admin, restaurant owner, and courier at
// the same time.
type User struct {
	ID           uint      `json:"user_id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	IsRestaurant bool      `json:"is_restaurant" gorm:"default:false"`
	IsCourier    bool      `json:"is_courier" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
