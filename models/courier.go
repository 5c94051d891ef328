package models

import "time"

// Courier is a delivery profile owned by a User. It is created pending
// (inactive, unapproved) when a user registers with the courier role;
// only an approved and active courier may claim orders.
type Courier struct {
	ID            uint      `json:"courier_id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null"`
	User          User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name          string    `json:"name" gorm:"not null"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	VehicleMake   string    `json:"vehicle_make"`
	VehicleModel  string    `json:"vehicle_model"`
	VehicleYear   int       `json:"vehicle_year"`
	LicensePlate  string    `json:"license_plate"`
	VehicleColour string    `json:"vehicle_colour"`
	City          string    `json:"city"`
	IsActive      bool      `json:"is_active" gorm:"default:false"`
	IsApproved    bool      `json:"is_approved" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
