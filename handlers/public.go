package handlers

import (
	"net/http"

	"food-marketplace-api/config"
	"food-marketplace-api/errs"
	"food-marketplace-api/models"
	"food-marketplace-api/statemachine"
	"food-marketplace-api/store"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns the customer-facing listing. Only approved
// restaurants appear, each with its derived average rating.
func ListRestaurants(c *gin.Context) {
	restaurants, err := store.ApprovedRestaurants(config.DB)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(restaurants))
	for i := range restaurants {
		r := &restaurants[i]
		out = append(out, gin.H{
			"restaurant":     r,
			"average_rating": r.AverageRating(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "restaurants": out})
}

// GetRestaurant returns one approved restaurant with its menu and rating.
func GetRestaurant(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.Preload("MenuItems").First(&restaurant, id).Error; err != nil {
		respondError(c, errs.NotFound("restaurant not found"))
		return
	}
	if !restaurant.IsApproved {
		respondError(c, errs.NotFound("restaurant not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":     restaurant,
		"average_rating": restaurant.AverageRating(),
	})
}

// GetMenu returns a restaurant's available menu items.
func GetMenu(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, id).Error; err != nil {
		respondError(c, errs.NotFound("restaurant not found"))
		return
	}

	var items []models.MenuItem
	config.DB.Where("restaurant_id = ? AND is_available = ?", id, true).Find(&items)
	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(items),
		"menu":       items,
	})
}

// GetStateMachineInfo documents the order lifecycle for API consumers.
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"states": []models.OrderStatus{
			models.StatusPending,
			models.StatusAccepted,
			models.StatusPickedUp,
			models.StatusDelivered,
		},
		"transitions": statemachine.GetAllTransitions(),
		"terminal":    models.StatusDelivered,
	})
}
