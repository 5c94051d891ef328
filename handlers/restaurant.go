package handlers

import (
	"net/http"

	"food-marketplace-api/config"
	"food-marketplace-api/errs"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
	"food-marketplace-api/store"

	"github.com/gin-gonic/gin"
)

// ownedRestaurant resolves the acting principal's restaurant.
func ownedRestaurant(c *gin.Context) (*models.Restaurant, error) {
	user := middleware.GetPrincipal(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("user_id = ?", user.ID).First(&restaurant).Error; err != nil {
		return nil, errs.NotFound("no restaurant found for your account")
	}
	return &restaurant, nil
}

type RestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	CuisineType string `json:"cuisine_type"`
	Details     string `json:"details"`
}

// CreateRestaurant registers the owner's restaurant, pending admin
// approval. Owner-created restaurants never start approved.
func CreateRestaurant(c *gin.Context) {
	user := middleware.GetPrincipal(c)

	var existing models.Restaurant
	if err := config.DB.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		respondError(c, errs.Conflict("you already own a restaurant"))
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := models.Restaurant{
		UserID:      user.ID,
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		CuisineType: req.CuisineType,
		Details:     req.Details,
		IsApproved:  false,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Restaurant created, pending admin approval",
		"restaurant": restaurant,
	})
}

// GetMyRestaurant returns the owner's restaurant with menu and rating.
func GetMyRestaurant(c *gin.Context) {
	restaurant, err := ownedRestaurant(c)
	if err != nil {
		respondError(c, err)
		return
	}
	config.DB.Preload("MenuItems").First(restaurant, restaurant.ID)
	c.JSON(http.StatusOK, gin.H{
		"restaurant":     restaurant,
		"average_rating": restaurant.AverageRating(),
	})
}

// UpdateRestaurant mutates profile fields. Approval state is untouchable
// from this path.
func UpdateRestaurant(c *gin.Context) {
	restaurant, err := ownedRestaurant(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":         req.Name,
		"address":      req.Address,
		"phone":        req.Phone,
		"email":        req.Email,
		"cuisine_type": req.CuisineType,
		"details":      req.Details,
	}
	if err := config.DB.Model(restaurant).Updates(updates).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

type MenuItemRequest struct {
	ItemName    string   `json:"item_name" binding:"required"`
	ItemPrice   *float64 `json:"item_price" binding:"required"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	IsAvailable *bool    `json:"is_available"`
}

// AddMenuItem creates a menu item on the owner's restaurant.
func AddMenuItem(c *gin.Context) {
	restaurant, err := ownedRestaurant(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.ItemPrice < 0 {
		respondError(c, errs.Validation("item price must be non-negative"))
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		ItemName:     req.ItemName,
		ItemPrice:    *req.ItemPrice,
		Category:     req.Category,
		Description:  req.Description,
		IsAvailable:  true,
	}
	if req.Category == "" {
		item.Category = "Main"
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if err := config.DB.Create(&item).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "menu_item": item})
}

// menuItemOwnedBy loads a menu item and checks it belongs to the restaurant.
func menuItemOwnedBy(c *gin.Context, restaurant *models.Restaurant) (*models.MenuItem, error) {
	itemID, err := parseID(c, "itemId")
	if err != nil {
		return nil, err
	}
	var item models.MenuItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		return nil, errs.NotFound("menu item not found")
	}
	if item.RestaurantID != restaurant.ID {
		return nil, errs.Forbidden("menu item does not belong to your restaurant")
	}
	return &item, nil
}

// UpdateMenuItem mutates name, price, category, description, availability.
func UpdateMenuItem(c *gin.Context) {
	restaurant, err := ownedRestaurant(c)
	if err != nil {
		respondError(c, err)
		return
	}
	item, err := menuItemOwnedBy(c, restaurant)
	if err != nil {
		respondError(c, err)
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.ItemPrice < 0 {
		respondError(c, errs.Validation("item price must be non-negative"))
		return
	}

	updates := map[string]interface{}{
		"item_name":   req.ItemName,
		"item_price":  *req.ItemPrice,
		"description": req.Description,
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if err := config.DB.Model(item).Updates(updates).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "menu_item": item})
}

// DeleteMenuItem removes a menu item unless past orders reference it.
func DeleteMenuItem(c *gin.Context) {
	restaurant, err := ownedRestaurant(c)
	if err != nil {
		respondError(c, err)
		return
	}
	item, err := menuItemOwnedBy(c, restaurant)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := store.DeleteMenuItem(config.DB, item.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// GetRestaurantOrders lists the restaurant's orders, optionally filtered by
// ?status=, with a per-status summary.
func GetRestaurantOrders(c *gin.Context) {
	restaurant, err := ownedRestaurant(c)
	if err != nil {
		respondError(c, err)
		return
	}

	status := models.OrderStatus(c.Query("status"))
	orders, err := store.OrdersForRestaurant(config.DB, restaurant.ID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

type AcceptOrderRequest struct {
	Status models.OrderStatus `json:"status"`
}

// AcceptOrder is the restaurant-side status write. It goes through the same
// transition table as the courier path, so it is only legal from Pending.
func AcceptOrder(c *gin.Context) {
	restaurant, err := ownedRestaurant(c)
	if err != nil {
		respondError(c, err)
		return
	}
	orderID, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req AcceptOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	order, err := store.RestaurantAcceptOrder(config.DB, orderID, restaurant.ID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"order":   order,
	})
}
