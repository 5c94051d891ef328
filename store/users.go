package store

import (
	"food-marketplace-api/errs"
	"food-marketplace-api/models"

	"gorm.io/gorm"
)

// ApprovedRestaurants is the customer-facing listing: unapproved
// restaurants never appear here.
func ApprovedRestaurants(db *gorm.DB) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := db.Where("is_approved = ?", true).Find(&restaurants).Error
	return restaurants, err
}

// Deletion policy: entities that orders reference are refused with
// Conflict, since removing them would orphan order history. Purely
// personal records (ratings, an orderless courier profile) go with the
// account.

// DeleteUser removes a user account together with its ratings and its
// courier profile. Orders, owned restaurants, and a courier profile with
// delivery history block the delete.
func DeleteUser(db *gorm.DB, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return errs.NotFound("user not found")
		}

		var count int64
		tx.Model(&models.Order{}).Where("user_id = ?", userID).Count(&count)
		if count > 0 {
			return errs.Conflict("user has %d order(s); delete them first", count)
		}
		tx.Model(&models.Restaurant{}).Where("user_id = ?", userID).Count(&count)
		if count > 0 {
			return errs.Conflict("user owns %d restaurant(s); delete them first", count)
		}

		var courier models.Courier
		if err := tx.Where("user_id = ?", userID).First(&courier).Error; err == nil {
			tx.Model(&models.Order{}).Where("courier_id = ?", courier.ID).Count(&count)
			if count > 0 {
				return errs.Conflict("courier profile has %d order(s) on record; it cannot be removed", count)
			}
			if err := tx.Delete(&courier).Error; err != nil {
				return err
			}
		}

		var ratings []models.Rating
		tx.Where("user_id = ?", userID).Find(&ratings)
		for _, rating := range ratings {
			if err := DeleteRating(tx, rating.RestaurantID, userID); err != nil {
				return err
			}
		}

		return tx.Delete(&user).Error
	})
}

// DeleteMenuItem removes a menu item unless order lines still reference it.
func DeleteMenuItem(db *gorm.DB, menuItemID uint) error {
	var item models.MenuItem
	if err := db.First(&item, menuItemID).Error; err != nil {
		return errs.NotFound("menu item not found")
	}

	var count int64
	db.Model(&models.OrderItem{}).Where("menu_item_id = ?", menuItemID).Count(&count)
	if count > 0 {
		return errs.Conflict("menu item appears in %d order line(s); it cannot be deleted", count)
	}

	return db.Delete(&item).Error
}

// DeleteRestaurant removes a restaurant with its menu and ratings in one
// transaction. Orders block the delete.
func DeleteRestaurant(db *gorm.DB, restaurantID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, restaurantID).Error; err != nil {
			return errs.NotFound("restaurant not found")
		}

		var count int64
		tx.Model(&models.Order{}).Where("restaurant_id = ?", restaurantID).Count(&count)
		if count > 0 {
			return errs.Conflict("restaurant has %d order(s); delete them first", count)
		}

		var itemIDs []uint
		tx.Model(&models.MenuItem{}).Where("restaurant_id = ?", restaurantID).Pluck("id", &itemIDs)
		for _, id := range itemIDs {
			if err := DeleteMenuItem(tx, id); err != nil {
				return err
			}
		}
		if err := tx.Where("restaurant_id = ?", restaurantID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&restaurant).Error
	})
}
