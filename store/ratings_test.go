package store_test

import (
	"testing"

	"food-marketplace-api/errs"
	"food-marketplace-api/models"
	"food-marketplace-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRating(t *testing.T) {
	t.Run("records rating and bumps aggregates", func(t *testing.T) {
		db := newTestDB(t)
		owner := createUser(t, db, "owner")
		restaurant := createRestaurant(t, db, owner, true)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")

		_, err := store.AddRating(db, restaurant.ID, alice.ID, 5)
		require.NoError(t, err)
		_, err = store.AddRating(db, restaurant.ID, bob.ID, 2)
		require.NoError(t, err)

		var fresh models.Restaurant
		require.NoError(t, db.First(&fresh, restaurant.ID).Error)
		assert.EqualValues(t, 7, fresh.RatingSum)
		assert.EqualValues(t, 2, fresh.RatingCount)
		assert.InDelta(t, 3.5, fresh.AverageRating(), 0.001)
	})

	t.Run("one rating per user per restaurant", func(t *testing.T) {
		db := newTestDB(t)
		owner := createUser(t, db, "owner")
		restaurant := createRestaurant(t, db, owner, true)
		alice := createUser(t, db, "alice")

		first, err := store.AddRating(db, restaurant.ID, alice.ID, 4)
		require.NoError(t, err)

		_, err = store.AddRating(db, restaurant.ID, alice.ID, 1)
		assert.True(t, errs.Is(err, errs.KindConflict))

		// The first rating and the aggregates are unaffected.
		var stored models.Rating
		require.NoError(t, db.First(&stored, first.ID).Error)
		assert.Equal(t, 4, stored.Score)

		var fresh models.Restaurant
		require.NoError(t, db.First(&fresh, restaurant.ID).Error)
		assert.EqualValues(t, 4, fresh.RatingSum)
		assert.EqualValues(t, 1, fresh.RatingCount)
	})

	t.Run("score bounds", func(t *testing.T) {
		db := newTestDB(t)
		owner := createUser(t, db, "owner")
		restaurant := createRestaurant(t, db, owner, true)
		alice := createUser(t, db, "alice")

		for _, score := range []int{0, 6, -1} {
			_, err := store.AddRating(db, restaurant.ID, alice.ID, score)
			assert.True(t, errs.Is(err, errs.KindValidation), "score %d must be rejected", score)
		}
	})

	t.Run("missing restaurant or user", func(t *testing.T) {
		db := newTestDB(t)
		alice := createUser(t, db, "alice")

		_, err := store.AddRating(db, 999, alice.ID, 3)
		assert.True(t, errs.Is(err, errs.KindNotFound))

		owner := createUser(t, db, "owner")
		restaurant := createRestaurant(t, db, owner, true)
		_, err = store.AddRating(db, restaurant.ID, 999, 3)
		assert.True(t, errs.Is(err, errs.KindNotFound))
	})

	t.Run("zero ratings average to zero", func(t *testing.T) {
		r := models.Restaurant{}
		assert.Zero(t, r.AverageRating())
	})
}

func TestDeleteRating(t *testing.T) {
	t.Run("removes the rating and backs out the aggregates", func(t *testing.T) {
		db := newTestDB(t)
		owner := createUser(t, db, "owner")
		restaurant := createRestaurant(t, db, owner, true)
		alice := createUser(t, db, "alice")
		bob := createUser(t, db, "bob")
		_, err := store.AddRating(db, restaurant.ID, alice.ID, 5)
		require.NoError(t, err)
		_, err = store.AddRating(db, restaurant.ID, bob.ID, 2)
		require.NoError(t, err)

		require.NoError(t, store.DeleteRating(db, restaurant.ID, alice.ID))

		var fresh models.Restaurant
		require.NoError(t, db.First(&fresh, restaurant.ID).Error)
		assert.EqualValues(t, 2, fresh.RatingSum)
		assert.EqualValues(t, 1, fresh.RatingCount)
		assert.InDelta(t, 2.0, fresh.AverageRating(), 0.001)

		// Deleting frees the slot for a fresh rating.
		_, err = store.AddRating(db, restaurant.ID, alice.ID, 3)
		require.NoError(t, err)
	})

	t.Run("no rating to delete", func(t *testing.T) {
		db := newTestDB(t)
		owner := createUser(t, db, "owner")
		restaurant := createRestaurant(t, db, owner, true)
		alice := createUser(t, db, "alice")

		assert.True(t, errs.Is(store.DeleteRating(db, restaurant.ID, alice.ID), errs.KindNotFound))
	})
}

func TestRatingsForUser(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner")
	first := createRestaurant(t, db, owner, true)
	second := createRestaurant(t, db, createUser(t, db, "owner2"), true)
	alice := createUser(t, db, "alice")
	_, err := store.AddRating(db, first.ID, alice.ID, 4)
	require.NoError(t, err)
	_, err = store.AddRating(db, second.ID, alice.ID, 2)
	require.NoError(t, err)
	_, err = store.AddRating(db, first.ID, createUser(t, db, "bob").ID, 1)
	require.NoError(t, err)

	ratings, err := store.RatingsForUser(db, alice.ID)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	for _, r := range ratings {
		assert.Equal(t, alice.ID, r.UserID)
	}

	_, err = store.RatingsForUser(db, 999)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}
