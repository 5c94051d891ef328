package models

import "time"

// OrderStatus represents the delivery lifecycle states of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusAccepted  OrderStatus = "Accepted"
	StatusPickedUp  OrderStatus = "Picked Up"
	StatusDelivered OrderStatus = "Delivered"
)

type Order struct {
	ID                    uint        `json:"order_id" gorm:"primaryKey"`
	UserID                uint        `json:"user_id" gorm:"not null"`
	Customer              User        `json:"customer,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID          uint        `json:"restaurant_id" gorm:"not null"`
	Restaurant            Restaurant  `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	CourierID             *uint       `json:"courier_id"`
	Courier               *Courier    `json:"courier,omitempty" gorm:"foreignKey:CourierID"`
	OrderAddress          string      `json:"order_address" gorm:"not null"`
	Status                OrderStatus `json:"status" gorm:"not null;default:'Pending'"`
	OrderTime             time.Time   `json:"order_time" gorm:"autoCreateTime"`
	EstimatedDeliveryTime *time.Time  `json:"estimated_delivery_time"`
	DeliveryFee           float64     `json:"delivery_fee" gorm:"default:5.00"`
	Tip                   float64     `json:"tip" gorm:"default:0.00"`
	Items                 []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID         uint     `json:"order_item_id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null"`
	MenuItemID uint     `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int      `json:"quantity" gorm:"not null"`
}
