package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"blogly/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagController(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()

	t.Run("add tag form", func(t *testing.T) {
		w := app.get(t, "/tags/new")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="add_button"`)
	})

	t.Run("create tags", func(t *testing.T) {
		assertRedirect(t, app.post(t, "/tags/new", url.Values{"add_button": {""}, "name": {"zeta"}}), "/tags")
		assertRedirect(t, app.post(t, "/tags/new", url.Values{"add_button": {""}, "name": {"alpha"}}), "/tags")

		w := app.get(t, "/tags")
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Less(t, strings.Index(body, "alpha"), strings.Index(body, "zeta"))
	})

	t.Run("without add button nothing is created", func(t *testing.T) {
		assertRedirect(t, app.post(t, "/tags/new", url.Values{"name": {"skipped"}}), "/tags")
		assert.NotContains(t, app.get(t, "/tags").Body.String(), "skipped")
	})

	t.Run("duplicate name is swallowed", func(t *testing.T) {
		assertRedirect(t, app.post(t, "/tags/new", url.Values{"add_button": {""}, "name": {"alpha"}}), "/tags")

		tags, err := app.tags.ListTags(ctx)
		require.NoError(t, err)
		assert.Len(t, tags, 2)
	})

	t.Run("show tag with posts", func(t *testing.T) {
		tags, err := app.tags.ListTags(ctx)
		require.NoError(t, err)
		alpha := tags[0]

		user := &models.User{FirstName: "Ada", LastName: "Lovelace"}
		require.NoError(t, app.users.CreateUser(ctx, user))
		post := &models.Post{Title: "Tagged post", Content: "C", UserID: user.ID}
		require.NoError(t, app.posts.CreatePost(ctx, post, map[int]bool{alpha.ID: true}))

		w := app.get(t, fmt.Sprintf("/tags/%d", alpha.ID))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Tagged post")
	})

	t.Run("missing tag is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, app.get(t, "/tags/999").Code)
	})
}
