// Package store funnels all entity mutation through one place. Handlers
// never touch the concurrency-sensitive writes directly; in particular the
// claim path is a single conditional update so two couriers can never both
// win the same order.
package store

import (
	"errors"

	"food-marketplace-api/errs"
	"food-marketplace-api/models"
	"food-marketplace-api/statemachine"

	"gorm.io/gorm"
)

const (
	DefaultDeliveryFee = 5.00
	// DefaultHistoryLimit bounds courier delivery history when the caller
	// does not supply a limit.
	DefaultHistoryLimit = 10
)

type OrderItemInput struct {
	MenuItemID uint
	Quantity   int
}

type CreateOrderInput struct {
	UserID       uint
	RestaurantID uint
	Items        []OrderItemInput
	Address      string
	DeliveryFee  *float64
	Tip          float64
}

// CreateOrder validates every referenced entity and persists the order with
// its items in one transaction, so a failed creation leaves no orphan rows.
// The delivery address falls back to the customer's profile address.
func CreateOrder(db *gorm.DB, in CreateOrderInput) (*models.Order, error) {
	var customer models.User
	if err := db.First(&customer, in.UserID).Error; err != nil {
		return nil, errs.NotFound("user not found")
	}

	var restaurant models.Restaurant
	if err := db.First(&restaurant, in.RestaurantID).Error; err != nil {
		return nil, errs.NotFound("restaurant not found")
	}
	if !restaurant.IsApproved {
		return nil, errs.Conflict("restaurant is pending approval")
	}

	if len(in.Items) == 0 {
		return nil, errs.Validation("order must contain at least one item")
	}

	var orderItems []models.OrderItem
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, errs.Validation("item quantity must be a positive integer")
		}
		var menuItem models.MenuItem
		if err := db.First(&menuItem, item.MenuItemID).Error; err != nil {
			return nil, errs.NotFound("menu item %d not found", item.MenuItemID)
		}
		if menuItem.RestaurantID != in.RestaurantID {
			return nil, errs.Validation("menu item %q does not belong to this restaurant", menuItem.ItemName)
		}
		if !menuItem.IsAvailable {
			return nil, errs.Conflict("menu item %q is not available", menuItem.ItemName)
		}
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   item.Quantity,
		})
	}

	address := in.Address
	if address == "" {
		address = customer.Address
	}
	fee := DefaultDeliveryFee
	if in.DeliveryFee != nil {
		fee = *in.DeliveryFee
	}

	order := models.Order{
		UserID:       in.UserID,
		RestaurantID: in.RestaurantID,
		OrderAddress: address,
		Status:       models.StatusPending,
		DeliveryFee:  fee,
		Tip:          in.Tip,
		Items:        orderItems,
	}
	if err := db.Create(&order).Error; err != nil {
		return nil, err
	}
	return GetOrder(db, order.ID)
}

// GetOrder loads an order with its full entity graph.
func GetOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Customer").Preload("Restaurant").Preload("Courier").
		Preload("Items.MenuItem").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("order not found")
		}
		return nil, err
	}
	return &order, nil
}

// OrderTotal computes the order's total from its preloaded items. Totals
// are derived on read and never stored.
func OrderTotal(order *models.Order) float64 {
	var total float64
	for _, item := range order.Items {
		total += item.MenuItem.ItemPrice * float64(item.Quantity)
	}
	return total
}

// ClaimOrder assigns an unassigned pending order to a courier. The gate is
// two-layer: the courier profile must be approved and active, and the
// status write is a compare-and-set keyed on (id, Pending, no courier) so
// that of N concurrent claims at most one wins. Losers get Conflict.
func ClaimOrder(db *gorm.DB, orderID, courierID uint) (*models.Order, error) {
	var courier models.Courier
	if err := db.First(&courier, courierID).Error; err != nil {
		return nil, errs.NotFound("courier not found")
	}
	if !courier.IsApproved {
		return nil, errs.Forbidden("courier is not approved")
	}
	if !courier.IsActive {
		return nil, errs.Forbidden("courier is not active/available")
	}

	if err := statemachine.CanTransition(models.StatusPending, models.StatusAccepted, statemachine.ActorCourier); err != nil {
		return nil, err
	}

	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ? AND courier_id IS NULL", orderID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":     models.StatusAccepted,
			"courier_id": courierID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var order models.Order
		if err := db.First(&order, orderID).Error; err != nil {
			return nil, errs.NotFound("order not found")
		}
		return nil, errs.Conflict("order is not claimable: already assigned or not pending")
	}
	return GetOrder(db, orderID)
}

// AdvanceOrder moves an order strictly forward through the lifecycle on
// behalf of its assigned courier.
func AdvanceOrder(db *gorm.DB, orderID, courierID uint, newStatus models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, errs.NotFound("order not found")
	}
	if order.CourierID == nil || *order.CourierID != courierID {
		return nil, errs.Forbidden("you are not the assigned courier for this order")
	}
	if err := statemachine.CanTransition(order.Status, newStatus, statemachine.ActorCourier); err != nil {
		return nil, err
	}

	// Conditional on the status we just read, in case it moved underneath us.
	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, order.Status).
		Update("status", newStatus)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.Conflict("order status changed concurrently, re-read and retry")
	}
	return GetOrder(db, orderID)
}

// RestaurantAcceptOrder is the restaurant-side status write. It validates
// through the same transition table as the courier path, so a restaurant
// can no longer overwrite a courier's in-flight delivery.
func RestaurantAcceptOrder(db *gorm.DB, orderID, restaurantID uint, status models.OrderStatus) (*models.Order, error) {
	if status == "" {
		status = models.StatusAccepted
	}
	var order models.Order
	err := db.Where("id = ? AND restaurant_id = ?", orderID, restaurantID).First(&order).Error
	if err != nil {
		return nil, errs.NotFound("order not found for this restaurant")
	}
	if err := statemachine.CanTransition(order.Status, status, statemachine.ActorRestaurant); err != nil {
		return nil, err
	}

	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, order.Status).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.Conflict("order status changed concurrently, re-read and retry")
	}
	return GetOrder(db, orderID)
}

// ForceOrderStatus is the admin override: any recognized status, no
// forward-only restriction.
func ForceOrderStatus(db *gorm.DB, orderID uint, status models.OrderStatus) (*models.Order, error) {
	if err := statemachine.CanTransition("", status, statemachine.ActorAdmin); err != nil {
		return nil, err
	}
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, errs.NotFound("order not found")
	}
	if err := db.Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}
	return GetOrder(db, orderID)
}

// DeleteOrder removes an order and its items. The children go first in an
// explicit two-step delete inside one transaction.
func DeleteOrder(db *gorm.DB, orderID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return errs.NotFound("order not found")
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// AvailableOrders lists orders a courier may claim: pending and unassigned,
// oldest first for first-come-first-served fairness.
func AvailableOrders(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("Customer").Preload("Restaurant").Preload("Items.MenuItem").
		Where("status = ? AND courier_id IS NULL", models.StatusPending).
		Order("order_time asc").
		Find(&orders).Error
	return orders, err
}

// CurrentOrder returns the courier's single in-flight order, or nil when
// the courier has none.
func CurrentOrder(db *gorm.DB, courierID uint) (*models.Order, error) {
	if err := courierExists(db, courierID); err != nil {
		return nil, err
	}
	var order models.Order
	err := db.Preload("Customer").Preload("Restaurant").Preload("Items.MenuItem").
		Where("courier_id = ? AND status IN ?", courierID,
			[]models.OrderStatus{models.StatusAccepted, models.StatusPickedUp}).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// CourierHistory returns the courier's delivered orders, most recent first.
func CourierHistory(db *gorm.DB, courierID uint, limit int) ([]models.Order, error) {
	if err := courierExists(db, courierID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	var orders []models.Order
	err := db.Preload("Customer").Preload("Restaurant").Preload("Items.MenuItem").
		Where("courier_id = ? AND status = ?", courierID, models.StatusDelivered).
		Order("updated_at desc").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

// OrdersForUser returns all orders placed by a user, newest first.
func OrdersForUser(db *gorm.DB, userID uint) ([]models.Order, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, errs.NotFound("user not found")
	}
	var orders []models.Order
	err := db.Preload("Restaurant").Preload("Courier").Preload("Items.MenuItem").
		Where("user_id = ?", userID).
		Order("order_time desc").
		Find(&orders).Error
	return orders, err
}

// OrdersForRestaurant returns a restaurant's orders, optionally filtered by
// status, newest first.
func OrdersForRestaurant(db *gorm.DB, restaurantID uint, status models.OrderStatus) ([]models.Order, error) {
	query := db.Preload("Customer").Preload("Courier").Preload("Items.MenuItem").
		Where("restaurant_id = ?", restaurantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var orders []models.Order
	err := query.Order("order_time desc").Find(&orders).Error
	return orders, err
}

func courierExists(db *gorm.DB, courierID uint) error {
	var courier models.Courier
	if err := db.First(&courier, courierID).Error; err != nil {
		return errs.NotFound("courier not found")
	}
	return nil
}
