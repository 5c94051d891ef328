package store

import (
	"errors"

	"food-marketplace-api/errs"
	"food-marketplace-api/models"

	"gorm.io/gorm"
)

// AddRating records one user's score for one restaurant. The composite
// unique index enforces at most one rating per (restaurant, user), and the
// restaurant aggregates are bumped with a single SQL increment rather than
// read-modify-write, so concurrent raters cannot lose updates.
func AddRating(db *gorm.DB, restaurantID, userID uint, score int) (*models.Rating, error) {
	if score < 1 || score > 5 {
		return nil, errs.Validation("rating must be between 1 and 5")
	}

	var restaurant models.Restaurant
	if err := db.First(&restaurant, restaurantID).Error; err != nil {
		return nil, errs.NotFound("restaurant not found")
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, errs.NotFound("user not found")
	}

	rating := models.Rating{
		RestaurantID: restaurantID,
		UserID:       userID,
		Score:        score,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Rating
		err := tx.Where("restaurant_id = ? AND user_id = ?", restaurantID, userID).
			First(&existing).Error
		if err == nil {
			return errs.Conflict("you have already rated this restaurant")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&rating).Error; err != nil {
			// The unique index is the backstop for a racing duplicate.
			return errs.Conflict("you have already rated this restaurant")
		}
		return tx.Model(&models.Restaurant{}).
			Where("id = ?", restaurantID).
			Updates(map[string]interface{}{
				"rating_sum":   gorm.Expr("rating_sum + ?", score),
				"rating_count": gorm.Expr("rating_count + 1"),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// DeleteRating removes a user's rating for a restaurant and backs the
// score out of the aggregates in the same transaction.
func DeleteRating(db *gorm.DB, restaurantID, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var rating models.Rating
		err := tx.Where("restaurant_id = ? AND user_id = ?", restaurantID, userID).
			First(&rating).Error
		if err != nil {
			return errs.NotFound("rating not found")
		}
		if err := tx.Delete(&rating).Error; err != nil {
			return err
		}
		return tx.Model(&models.Restaurant{}).
			Where("id = ?", restaurantID).
			Updates(map[string]interface{}{
				"rating_sum":   gorm.Expr("rating_sum - ?", rating.Score),
				"rating_count": gorm.Expr("rating_count - 1"),
			}).Error
	})
}

// RatingsForUser lists every rating a user has left.
func RatingsForUser(db *gorm.DB, userID uint) ([]models.Rating, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, errs.NotFound("user not found")
	}
	var ratings []models.Rating
	err := db.Where("user_id = ?", userID).Find(&ratings).Error
	return ratings, err
}

// RatingsForRestaurant lists the individual ratings behind the aggregate.
func RatingsForRestaurant(db *gorm.DB, restaurantID uint) ([]models.Rating, error) {
	var restaurant models.Restaurant
	if err := db.First(&restaurant, restaurantID).Error; err != nil {
		return nil, errs.NotFound("restaurant not found")
	}
	var ratings []models.Rating
	err := db.Where("restaurant_id = ?", restaurantID).Find(&ratings).Error
	return ratings, err
}
