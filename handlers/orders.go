package handlers

import (
	"net/http"

	"food-marketplace-api/config"
	"food-marketplace-api/errs"
	"food-marketplace-api/middleware"
	"food-marketplace-api/store"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	RestaurantID uint     `json:"restaurant_id" binding:"required"`
	OrderAddress string   `json:"order_address"`
	DeliveryFee  *float64 `json:"delivery_fee"`
	Tip          float64  `json:"tip"`
	Items        []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// PlaceOrder creates a new pending order for the authenticated user.
func PlaceOrder(c *gin.Context) {
	user := middleware.GetPrincipal(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := store.CreateOrderInput{
		UserID:       user.ID,
		RestaurantID: req.RestaurantID,
		Address:      req.OrderAddress,
		DeliveryFee:  req.DeliveryFee,
		Tip:          req.Tip,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, store.OrderItemInput{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		})
	}

	order, err := store.CreateOrder(config.DB, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
		"total":   store.OrderTotal(order),
	})
}

// GetMyOrders returns all orders placed by the authenticated user.
func GetMyOrders(c *gin.Context) {
	user := middleware.GetPrincipal(c)
	orders, err := store.OrdersForUser(config.DB, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order with its computed total. Admins may
// read any order; everyone else only their own.
func GetOrderDetail(c *gin.Context) {
	user := middleware.GetPrincipal(c)
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := store.GetOrder(config.DB, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if order.UserID != user.ID && !user.IsAdmin {
		respondError(c, errs.Forbidden("this order does not belong to you"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"total": store.OrderTotal(order),
	})
}

type RateRestaurantRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// RateRestaurant records the authenticated user's score for a restaurant,
// one per user per restaurant.
func RateRestaurant(c *gin.Context) {
	user := middleware.GetPrincipal(c)
	restaurantID, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req RateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := store.AddRating(config.DB, restaurantID, user.ID, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Rating recorded",
		"rating":  rating,
	})
}

// DeleteMyRating withdraws the authenticated user's rating for a
// restaurant, backing the score out of the aggregates.
func DeleteMyRating(c *gin.Context) {
	user := middleware.GetPrincipal(c)
	restaurantID, err := parseID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := store.DeleteRating(config.DB, restaurantID, user.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rating removed"})
}

// GetMyRatings lists every rating the authenticated user has left.
func GetMyRatings(c *gin.Context) {
	user := middleware.GetPrincipal(c)
	ratings, err := store.RatingsForUser(config.DB, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(ratings), "ratings": ratings})
}
