package services

import (
	"context"
	"testing"

	"blogly/app/models"
	"blogly/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService(t *testing.T) {
	store := newTestStore(t)
	tags := NewTagService(store)
	posts := NewPostService(store)
	users := NewUserService(store)
	ctx := context.Background()

	t.Run("create and list", func(t *testing.T) {
		seedTags(t, tags, "zeta", "alpha", "mu")
		list, err := tags.ListTags(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "mu", "zeta"}, tagNames(list))
	})

	t.Run("duplicate name creates nothing", func(t *testing.T) {
		err := tags.CreateTag(ctx, &models.Tag{Name: "alpha"})
		assert.ErrorIs(t, err, repositories.ErrDuplicate)

		list, err := tags.ListTags(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("empty name is invalid", func(t *testing.T) {
		err := tags.CreateTag(ctx, &models.Tag{})
		assert.ErrorIs(t, err, models.ErrInvalid)
	})

	t.Run("detail lists tagged posts", func(t *testing.T) {
		list, err := tags.ListTags(ctx)
		require.NoError(t, err)
		alpha := list[0]

		user := seedUser(t, users, "Ada", "Lovelace")
		post := &models.Post{Title: "Tagged", Content: "C", UserID: user.ID}
		require.NoError(t, posts.CreatePost(ctx, post, map[int]bool{alpha.ID: true}))

		detail, err := tags.GetTagDetail(ctx, alpha.ID)
		require.NoError(t, err)
		assert.Equal(t, "alpha", detail.Tag.Name)
		require.Len(t, detail.PostTags, 1)
		assert.Equal(t, post.ID, detail.PostTags[0].PostID)
		require.Len(t, detail.Posts, 1)
		assert.Equal(t, "Tagged", detail.Posts[0].Title)
	})

	t.Run("detail of missing tag", func(t *testing.T) {
		_, err := tags.GetTagDetail(ctx, 999)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
