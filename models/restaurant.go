package models

import "time"

type Restaurant struct {
	ID          uint       `json:"restaurant_id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"not null"`
	Owner       User       `json:"owner,omitempty" gorm:"foreignKey:UserID"`
	Name        string     `json:"name" gorm:"not null"`
	Address     string     `json:"address"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	CuisineType string     `json:"cuisine_type"`
	Details     string     `json:"details"`
	IsApproved  bool       `json:"isapproved" gorm:"default:false"`
	RatingSum   int64      `json:"rating_sum" gorm:"default:0"`
	RatingCount int64      `json:"rating_count" gorm:"default:0"`
	MenuItems   []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// AverageRating derives the displayed rating from the rolling aggregates.
// The average is never stored; rating_sum/rating_count are the source of
// truth and are only ever changed by atomic increments.
func (r *Restaurant) AverageRating() float64 {
	if r.RatingCount == 0 {
		return 0
	}
	return float64(r.RatingSum) / float64(r.RatingCount)
}

type MenuItem struct {
	ID           uint      `json:"menu_item_id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null"`
	ItemName     string    `json:"item_name" gorm:"not null"`
	ItemPrice    float64   `json:"item_price" gorm:"not null"`
	Category     string    `json:"category" gorm:"default:'Main'"`
	Description  string    `json:"description"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Rating is one user's score for one restaurant. The composite unique
// index enforces one rating per user per restaurant.
type Rating struct {
	ID           uint `json:"rating_id" gorm:"primaryKey"`
	RestaurantID uint `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_rating_restaurant_user"`
	UserID       uint `json:"user_id" gorm:"not null;uniqueIndex:idx_rating_restaurant_user"`
	Score        int  `json:"rating" gorm:"not null"`
}
