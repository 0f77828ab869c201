package repositories

import (
	"context"
	"testing"

	"blogly/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("create and get user", func(t *testing.T) {
		user := &models.User{FirstName: "Ada", LastName: "Lovelace", ImageURL: models.DefaultImageURL}
		mustUpdate(t, store, func(tx Tx) error { return tx.Users().Create(user) })
		assert.Greater(t, user.ID, 0)

		var got *models.User
		err := store.View(ctx, func(tx Tx) error {
			var err error
			got, err = tx.Users().GetByID(user.ID)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("get missing user", func(t *testing.T) {
		err := store.View(ctx, func(tx Tx) error {
			_, err := tx.Users().GetByID(999)
			return err
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list is sorted by last then first name", func(t *testing.T) {
		mustUpdate(t, store, func(tx Tx) error {
			for _, u := range []*models.User{
				{FirstName: "Alan", LastName: "Turing", ImageURL: "x"},
				{FirstName: "Grace", LastName: "Hopper", ImageURL: "x"},
				{FirstName: "Augusta", LastName: "Lovelace", ImageURL: "x"},
			} {
				if err := tx.Users().Create(u); err != nil {
					return err
				}
			}
			return nil
		})

		var users []*models.User
		require.NoError(t, store.View(ctx, func(tx Tx) error {
			var err error
			users, err = tx.Users().List()
			return err
		}))

		var names []string
		for _, u := range users {
			names = append(names, u.SortName())
		}
		assert.Equal(t, []string{"Hopper, Grace", "Lovelace, Ada", "Lovelace, Augusta", "Turing, Alan"}, names)
	})

	t.Run("update user", func(t *testing.T) {
		user := &models.User{FirstName: "Old", LastName: "Name", ImageURL: "x"}
		mustUpdate(t, store, func(tx Tx) error { return tx.Users().Create(user) })

		user.FirstName = "New"
		mustUpdate(t, store, func(tx Tx) error { return tx.Users().Update(user) })

		require.NoError(t, store.View(ctx, func(tx Tx) error {
			got, err := tx.Users().GetByID(user.ID)
			if err != nil {
				return err
			}
			assert.Equal(t, "New", got.FirstName)
			return nil
		}))
	})

	t.Run("update missing user", func(t *testing.T) {
		err := store.Update(ctx, func(tx Tx) error {
			return tx.Users().Update(&models.User{ID: 999, FirstName: "a", LastName: "b", ImageURL: "x"})
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete user", func(t *testing.T) {
		user := &models.User{FirstName: "Gone", LastName: "Soon", ImageURL: "x"}
		mustUpdate(t, store, func(tx Tx) error { return tx.Users().Create(user) })
		mustUpdate(t, store, func(tx Tx) error { return tx.Users().Delete(user.ID) })

		err := store.Update(ctx, func(tx Tx) error { return tx.Users().Delete(user.ID) })
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("failed transaction leaves no rows", func(t *testing.T) {
		var before, after []*models.User
		require.NoError(t, store.View(ctx, func(tx Tx) error {
			var err error
			before, err = tx.Users().List()
			return err
		}))

		err := store.Update(ctx, func(tx Tx) error {
			if err := tx.Users().Create(&models.User{FirstName: "Half", LastName: "Done", ImageURL: "x"}); err != nil {
				return err
			}
			return ErrDuplicate
		})
		assert.ErrorIs(t, err, ErrDuplicate)

		require.NoError(t, store.View(ctx, func(tx Tx) error {
			var err error
			after, err = tx.Users().List()
			return err
		}))
		assert.Equal(t, before, after)
	})
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.View(ctx, func(tx Tx) error { return nil }), context.Canceled)
	assert.ErrorIs(t, store.Update(ctx, func(tx Tx) error { return nil }), context.Canceled)
}
