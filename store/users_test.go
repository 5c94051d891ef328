package store_test

import (
	"testing"

	"food-marketplace-api/errs"
	"food-marketplace-api/models"
	"food-marketplace-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovedRestaurants(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner")
	approved := createRestaurant(t, db, owner, true)
	createRestaurant(t, db, createUser(t, db, "owner2"), false)

	listed, err := store.ApprovedRestaurants(db)
	require.NoError(t, err)
	require.Len(t, listed, 1, "unapproved restaurants must never be listed")
	assert.Equal(t, approved.ID, listed[0].ID)
}

func TestDeleteUser(t *testing.T) {
	t.Run("deletes a user with no dependents", func(t *testing.T) {
		db := newTestDB(t)
		user := createUser(t, db, "alice")
		require.NoError(t, store.DeleteUser(db, user.ID))

		var count int64
		db.Model(&models.User{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("orders and owned restaurants block the delete", func(t *testing.T) {
		db := newTestDB(t)
		customer := createUser(t, db, "alice")
		owner := createUser(t, db, "owner")
		restaurant := createRestaurant(t, db, owner, true)
		item := createMenuItem(t, db, restaurant, "Burger", 10.00)
		placeOrder(t, db, customer, restaurant, []store.OrderItemInput{{MenuItemID: item.ID, Quantity: 1}})

		assert.True(t, errs.Is(store.DeleteUser(db, customer.ID), errs.KindConflict), "orders block delete")
		assert.True(t, errs.Is(store.DeleteUser(db, owner.ID), errs.KindConflict), "owned restaurant blocks delete")
	})

	t.Run("ratings go with the account and come out of the aggregates", func(t *testing.T) {
		db := newTestDB(t)
		owner := createUser(t, db, "owner")
		restaurant := createRestaurant(t, db, owner, true)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		_, err := store.AddRating(db, restaurant.ID, alice.ID, 5)
		require.NoError(t, err)
		_, err = store.AddRating(db, restaurant.ID, bob.ID, 2)
		require.NoError(t, err)

		require.NoError(t, store.DeleteUser(db, alice.ID))

		var ratingCount int64
		db.Model(&models.Rating{}).Count(&ratingCount)
		assert.EqualValues(t, 1, ratingCount)

		var fresh models.Restaurant
		require.NoError(t, db.First(&fresh, restaurant.ID).Error)
		assert.EqualValues(t, 2, fresh.RatingSum)
		assert.EqualValues(t, 1, fresh.RatingCount)
	})

	t.Run("orderless courier profile goes with the account", func(t *testing.T) {
		db := newTestDB(t)
		courierUser := createUser(t, db, "carl")
		createCourier(t, db, courierUser, false, false)

		require.NoError(t, store.DeleteUser(db, courierUser.ID))

		var courierCount int64
		db.Model(&models.Courier{}).Count(&courierCount)
		assert.Zero(t, courierCount)
	})

	t.Run("courier delivery history blocks the delete", func(t *testing.T) {
		db := newTestDB(t)
		customer := createUser(t, db, "alice")
		owner := createUser(t, db, "owner")
		restaurant := createRestaurant(t, db, owner, true)
		item := createMenuItem(t, db, restaurant, "Burger", 10.00)
		order := placeOrder(t, db, customer, restaurant, []store.OrderItemInput{{MenuItemID: item.ID, Quantity: 1}})

		courierUser := createUser(t, db, "carl")
		courier := createCourier(t, db, courierUser, true, true)
		_, err := store.ClaimOrder(db, order.ID, courier.ID)
		require.NoError(t, err)

		assert.True(t, errs.Is(store.DeleteUser(db, courierUser.ID), errs.KindConflict))
	})

	t.Run("missing user", func(t *testing.T) {
		db := newTestDB(t)
		assert.True(t, errs.Is(store.DeleteUser(db, 42), errs.KindNotFound))
	})
}

func TestDeleteMenuItem(t *testing.T) {
	db := newTestDB(t)
	customer := createUser(t, db, "alice")
	owner := createUser(t, db, "owner")
	restaurant := createRestaurant(t, db, owner, true)
	ordered := createMenuItem(t, db, restaurant, "Burger", 10.00)
	unused := createMenuItem(t, db, restaurant, "Salad", 6.00)
	placeOrder(t, db, customer, restaurant, []store.OrderItemInput{{MenuItemID: ordered.ID, Quantity: 1}})

	err := store.DeleteMenuItem(db, ordered.ID)
	assert.True(t, errs.Is(err, errs.KindConflict), "referenced item must not be deletable")

	require.NoError(t, store.DeleteMenuItem(db, unused.ID))
	assert.True(t, errs.Is(store.DeleteMenuItem(db, unused.ID), errs.KindNotFound))
}

func TestDeleteRestaurant(t *testing.T) {
	t.Run("removes menu and ratings with the restaurant", func(t *testing.T) {
		db := newTestDB(t)
		owner := createUser(t, db, "owner")
		restaurant := createRestaurant(t, db, owner, true)
		createMenuItem(t, db, restaurant, "Burger", 10.00)
		alice := createUser(t, db, "alice")
		_, err := store.AddRating(db, restaurant.ID, alice.ID, 4)
		require.NoError(t, err)

		require.NoError(t, store.DeleteRestaurant(db, restaurant.ID))

		var menuCount, ratingCount, restaurantCount int64
		db.Model(&models.MenuItem{}).Count(&menuCount)
		db.Model(&models.Rating{}).Count(&ratingCount)
		db.Model(&models.Restaurant{}).Count(&restaurantCount)
		assert.Zero(t, menuCount)
		assert.Zero(t, ratingCount)
		assert.Zero(t, restaurantCount)
	})

	t.Run("orders block the delete, and ordered items keep it blocked", func(t *testing.T) {
		db := newTestDB(t)
		customer := createUser(t, db, "alice")
		owner := createUser(t, db, "owner")
		restaurant := createRestaurant(t, db, owner, true)
		item := createMenuItem(t, db, restaurant, "Burger", 10.00)
		order := placeOrder(t, db, customer, restaurant, []store.OrderItemInput{{MenuItemID: item.ID, Quantity: 1}})

		err := store.DeleteRestaurant(db, restaurant.ID)
		assert.True(t, errs.Is(err, errs.KindConflict))

		// After the order goes away the restaurant delete succeeds.
		require.NoError(t, store.DeleteOrder(db, order.ID))
		require.NoError(t, store.DeleteRestaurant(db, restaurant.ID))
	})
}
