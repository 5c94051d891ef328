package handlers

import (
	"net/http"
	"strconv"

	"food-marketplace-api/config"
	"food-marketplace-api/errs"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
	"food-marketplace-api/store"

	"github.com/gin-gonic/gin"
)

// courierProfile resolves the acting principal's courier profile. The role
// flag alone is not enough to act as a courier; the profile row carries the
// approval and availability state.
func courierProfile(c *gin.Context) (*models.Courier, error) {
	user := middleware.GetPrincipal(c)
	var courier models.Courier
	if err := config.DB.Where("user_id = ?", user.ID).First(&courier).Error; err != nil {
		return nil, errs.NotFound("no courier profile found for your account")
	}
	return &courier, nil
}

// GetAvailableOrders shows pending orders with no courier, oldest first.
func GetAvailableOrders(c *gin.Context) {
	orders, err := store.AvailableOrders(config.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// ClaimOrder assigns a pending order to the acting courier. Of concurrent
// claims on the same order at most one succeeds; the rest get 409.
func ClaimOrder(c *gin.Context) {
	courier, err := courierProfile(c)
	if err != nil {
		respondError(c, err)
		return
	}
	orderID, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := store.ClaimOrder(config.DB, orderID, courier.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order claimed successfully",
		"order":   order,
	})
}

type AdvanceOrderRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// AdvanceOrderStatus moves the courier's assigned order strictly forward
// (Accepted → Picked Up → Delivered).
func AdvanceOrderStatus(c *gin.Context) {
	courier, err := courierProfile(c)
	if err != nil {
		respondError(c, err)
		return
	}
	orderID, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req AdvanceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := store.AdvanceOrder(config.DB, orderID, courier.ID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated to " + string(req.Status),
		"order":   order,
	})
}

// GetCurrentOrder returns the courier's single in-flight order, or null.
func GetCurrentOrder(c *gin.Context) {
	courier, err := courierProfile(c)
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := store.CurrentOrder(config.DB, courier.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetDeliveryHistory returns the courier's delivered orders, newest first,
// bounded by ?limit= (default 10).
func GetDeliveryHistory(c *gin.Context) {
	courier, err := courierProfile(c)
	if err != nil {
		respondError(c, err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(c, errs.Validation("limit must be a positive integer"))
			return
		}
		limit = n
	}

	orders, err := store.CourierHistory(config.DB, courier.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type CourierProfileRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	VehicleMake   string `json:"vehicle_make"`
	VehicleModel  string `json:"vehicle_model"`
	VehicleYear   int    `json:"vehicle_year"`
	LicensePlate  string `json:"license_plate"`
	VehicleColour string `json:"vehicle_colour"`
	City          string `json:"city"`
}

// UpdateCourierProfile mutates contact and vehicle fields. Approval and
// availability have their own paths.
func UpdateCourierProfile(c *gin.Context) {
	courier, err := courierProfile(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req CourierProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.VehicleMake != "" {
		updates["vehicle_make"] = req.VehicleMake
	}
	if req.VehicleModel != "" {
		updates["vehicle_model"] = req.VehicleModel
	}
	if req.VehicleYear != 0 {
		updates["vehicle_year"] = req.VehicleYear
	}
	if req.LicensePlate != "" {
		updates["license_plate"] = req.LicensePlate
	}
	if req.VehicleColour != "" {
		updates["vehicle_colour"] = req.VehicleColour
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if len(updates) > 0 {
		if err := config.DB.Model(courier).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Courier profile updated", "courier": courier})
}

type AvailabilityRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ToggleAvailability flips the courier on or off duty. Approval stays an
// admin-only action.
func ToggleAvailability(c *gin.Context) {
	courier, err := courierProfile(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Model(courier).Update("is_active", *req.IsActive).Error; err != nil {
		respondError(c, err)
		return
	}

	state := "offline"
	if *req.IsActive {
		state = "available"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Courier is now " + state,
		"courier": courier,
	})
}
