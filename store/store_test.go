package store_test

import (
	"fmt"
	"testing"

	"food-marketplace-api/config"
	"food-marketplace-api/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a migrated in-memory database. The pool is pinned to a
// single connection so every session sees the same in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

var emailSeq int

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	emailSeq++
	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s%d@example.com", name, emailSeq),
		PasswordHash: "x",
		Address:      "12 Default St",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createRestaurant(t *testing.T, db *gorm.DB, owner *models.User, approved bool) *models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{
		UserID:     owner.ID,
		Name:       "Testaurant",
		Address:    "1 Food Way",
		IsApproved: approved,
	}
	require.NoError(t, db.Create(&restaurant).Error)
	return &restaurant
}

func createCourier(t *testing.T, db *gorm.DB, owner *models.User, approved, active bool) *models.Courier {
	t.Helper()
	courier := models.Courier{
		UserID:     owner.ID,
		Name:       owner.Name,
		City:       "Springfield",
		IsApproved: approved,
		IsActive:   active,
	}
	require.NoError(t, db.Create(&courier).Error)
	return &courier
}

func createMenuItem(t *testing.T, db *gorm.DB, restaurant *models.Restaurant, name string, price float64) *models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		ItemName:     name,
		ItemPrice:    price,
		IsAvailable:  true,
	}
	require.NoError(t, db.Create(&item).Error)
	return &item
}
