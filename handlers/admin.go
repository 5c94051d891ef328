package handlers

import (
	"net/http"

	"food-marketplace-api/config"
	"food-marketplace-api/errs"
	"food-marketplace-api/models"
	"food-marketplace-api/store"

	"github.com/gin-gonic/gin"
)

// AdminGetAllUsers lists every account, optionally filtered by a role flag
// (?role=admin|restaurant|courier).
func AdminGetAllUsers(c *gin.Context) {
	query := config.DB
	switch c.Query("role") {
	case "admin":
		query = query.Where("is_admin = ?", true)
	case "restaurant":
		query = query.Where("is_restaurant = ?", true)
	case "courier":
		query = query.Where("is_courier = ?", true)
	}

	var users []models.User
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllOrders returns every order with a per-status summary and the
// revenue of delivered orders.
func AdminGetAllOrders(c *gin.Context) {
	query := config.DB.Preload("Customer").Preload("Restaurant").Preload("Courier").
		Preload("Items.MenuItem")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	var orders []models.Order
	query.Order("order_time desc").Find(&orders)

	summary := map[string]int{}
	var totalRevenue float64
	for i := range orders {
		summary[string(orders[i].Status)]++
		if orders[i].Status == models.StatusDelivered {
			totalRevenue += store.OrderTotal(&orders[i])
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminDeleteOrder removes an order and its items.
func AdminDeleteOrder(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := store.DeleteOrder(config.DB, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

type ForceStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// AdminForceOrderStatus overrides an order's status (emergency use).
func AdminForceOrderStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req ForceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := store.ForceOrderStatus(config.DB, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status overridden", "order": order})
}

// AdminGetAllRestaurants lists every restaurant, approved or not.
func AdminGetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	config.DB.Preload("Owner").Preload("MenuItems").Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

type AdminRestaurantRequest struct {
	RestaurantRequest
	UserID uint `json:"user_id" binding:"required"`
}

// AdminAddRestaurant creates a restaurant for a given owner, pre-approved.
func AdminAddRestaurant(c *gin.Context) {
	var req AdminRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var owner models.User
	if err := config.DB.First(&owner, req.UserID).Error; err != nil {
		respondError(c, errs.NotFound("owner user not found"))
		return
	}

	restaurant := models.Restaurant{
		UserID:      req.UserID,
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		CuisineType: req.CuisineType,
		Details:     req.Details,
		IsApproved:  true,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant added successfully", "restaurant": restaurant})
}

// AdminListPendingRestaurants lists restaurants waiting for approval.
func AdminListPendingRestaurants(c *gin.Context) {
	var pending []models.Restaurant
	config.DB.Preload("Owner").Where("is_approved = ?", false).Find(&pending)
	c.JSON(http.StatusOK, gin.H{"count": len(pending), "restaurants": pending})
}

// AdminApproveRestaurant marks a restaurant as approved, making it visible
// in the public listing.
func AdminApproveRestaurant(c *gin.Context) {
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
	if err := config.DB.Model(&restaurant).Update("is_approved", true).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant approved", "restaurant": restaurant})
}

// AdminDeleteRestaurant removes a restaurant with its menu and ratings.
// Restaurants with orders cannot be deleted.
func AdminDeleteRestaurant(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := store.DeleteRestaurant(config.DB, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted successfully"})
}

type AdminMenuItemRequest struct {
	RestaurantID uint     `json:"restaurant_id" binding:"required"`
	ItemName     string   `json:"item_name" binding:"required"`
	ItemPrice    *float64 `json:"item_price" binding:"required"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
}

// AdminAddMenuItem creates a menu item on any restaurant.
func AdminAddMenuItem(c *gin.Context) {
	var req AdminMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.ItemPrice < 0 {
		respondError(c, errs.Validation("item price must be non-negative"))
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		respondError(c, errs.NotFound("restaurant not found"))
		return
	}

	item := models.MenuItem{
		RestaurantID: req.RestaurantID,
		ItemName:     req.ItemName,
		ItemPrice:    *req.ItemPrice,
		Category:     req.Category,
		Description:  req.Description,
		IsAvailable:  true,
	}
	if item.Category == "" {
		item.Category = "Main"
	}
	if err := config.DB.Create(&item).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added successfully", "menu_item": item})
}

// AdminDeleteMenuItem removes any menu item, subject to the same dependent
// check as the owner path.
func AdminDeleteMenuItem(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := store.DeleteMenuItem(config.DB, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}

type AdminCourierRequest struct {
	UserID        uint   `json:"user_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	VehicleMake   string `json:"vehicle_make"`
	VehicleModel  string `json:"vehicle_model"`
	VehicleYear   int    `json:"vehicle_year"`
	LicensePlate  string `json:"license_plate"`
	VehicleColour string `json:"vehicle_colour"`
	City          string `json:"city"`
	IsActive      bool   `json:"is_active"`
}

// AdminAddCourier creates a courier profile for an existing user. Like
// self-registered couriers it starts unapproved; approval is a separate
// admin action.
func AdminAddCourier(c *gin.Context) {
	var req AdminCourierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var owner models.User
	if err := config.DB.First(&owner, req.UserID).Error; err != nil {
		respondError(c, errs.NotFound("courier's user not found"))
		return
	}
	var existing models.Courier
	if err := config.DB.Where("user_id = ?", req.UserID).First(&existing).Error; err == nil {
		respondError(c, errs.Conflict("user already has a courier profile"))
		return
	}

	courier := models.Courier{
		UserID:        req.UserID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		VehicleMake:   req.VehicleMake,
		VehicleModel:  req.VehicleModel,
		VehicleYear:   req.VehicleYear,
		LicensePlate:  req.LicensePlate,
		VehicleColour: req.VehicleColour,
		City:          req.City,
		IsActive:      req.IsActive,
		IsApproved:    false,
	}
	if err := config.DB.Create(&courier).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Courier added successfully", "courier": courier})
}

// AdminGetAllCouriers lists every courier profile.
func AdminGetAllCouriers(c *gin.Context) {
	var couriers []models.Courier
	config.DB.Preload("User").Find(&couriers)
	c.JSON(http.StatusOK, gin.H{"count": len(couriers), "couriers": couriers})
}

// AdminListPendingCouriers lists couriers waiting for approval.
func AdminListPendingCouriers(c *gin.Context) {
	var pending []models.Courier
	config.DB.Preload("User").Where("is_approved = ?", false).Find(&pending)
	c.JSON(http.StatusOK, gin.H{"count": len(pending), "couriers": pending})
}

// AdminApproveCourier marks a courier profile as approved. The courier
// still has to set itself active before it can claim orders.
func AdminApproveCourier(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var courier models.Courier
	if err := config.DB.First(&courier, id).Error; err != nil {
		respondError(c, errs.NotFound("courier not found"))
		return
	}
	if err := config.DB.Model(&courier).Update("is_approved", true).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Courier approved", "courier": courier})
}
