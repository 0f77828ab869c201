package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"blogly/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostController(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()

	user := &models.User{FirstName: "Ada", LastName: "Lovelace"}
	require.NoError(t, app.users.CreateUser(ctx, user))
	var tagIDs []int
	for _, name := range []string{"one", "two", "three"} {
		tag := &models.Tag{Name: name}
		require.NoError(t, app.tags.CreateTag(ctx, tag))
		tagIDs = append(tagIDs, tag.ID)
	}
	newPostPath := fmt.Sprintf("/users/%d/posts/new", user.ID)

	t.Run("add post form lists tags", func(t *testing.T) {
		w := app.get(t, newPostPath)
		assert.Equal(t, http.StatusOK, w.Code)
		for _, id := range tagIDs {
			assert.Contains(t, w.Body.String(), fmt.Sprintf(`name="%d"`, id))
		}
	})

	t.Run("submission without save creates nothing", func(t *testing.T) {
		before := app.store.Updates()
		w := app.post(t, newPostPath, url.Values{"title": {"T"}, "content": {"C"}})
		assertRedirect(t, w, fmt.Sprintf("/users/%d", user.ID))
		assert.Equal(t, before, app.store.Updates())

		detail, err := app.users.GetUserDetail(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, detail.Posts)
	})

	t.Run("store failure creates nothing", func(t *testing.T) {
		app.store.FailUpdates(errors.New("disk full"))
		w := app.post(t, newPostPath, url.Values{
			"save_button": {""}, "title": {"T"}, "content": {"C"}, "1": {"on"},
		})
		app.store.FailUpdates(nil)
		assertRedirect(t, w, "/users")

		detail, err := app.users.GetUserDetail(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, detail.Posts)
	})

	t.Run("create post for missing user", func(t *testing.T) {
		w := app.post(t, "/users/999/posts/new", url.Values{"save_button": {""}, "title": {"T"}, "content": {"C"}})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	var postID int
	t.Run("create post with tags one and three", func(t *testing.T) {
		w := app.post(t, newPostPath, url.Values{
			"save_button": {""},
			"title":       {"T"},
			"content":     {"C"},
			fmt.Sprint(tagIDs[0]): {"on"},
			fmt.Sprint(tagIDs[2]): {"on"},
		})
		assertRedirect(t, w, fmt.Sprintf("/users/%d", user.ID))

		detail, err := app.users.GetUserDetail(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, detail.Posts, 1)
		postID = detail.Posts[0].ID

		w = app.get(t, fmt.Sprintf("/posts/%d", postID))
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, ">one<")
		assert.Contains(t, body, ">three<")
		assert.NotContains(t, body, ">two<")
		assert.Contains(t, body, "Ada Lovelace")
	})

	t.Run("post page actions", func(t *testing.T) {
		path := fmt.Sprintf("/posts/%d", postID)
		assertRedirect(t, app.post(t, path, url.Values{"cancel_button": {""}}), "/users")
		assertRedirect(t, app.post(t, path, url.Values{"edit_button": {""}}), path+"/edit")
		assertRedirect(t, app.post(t, path, url.Values{"delete_button": {""}}), path+"/delete")
		assertRedirect(t, app.post(t, path, url.Values{}), path)
	})

	t.Run("edit form splits tags", func(t *testing.T) {
		w := app.get(t, fmt.Sprintf("/posts/%d/edit", postID))
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, fmt.Sprintf(`name="%d" checked`, tagIDs[0]))
		assert.Contains(t, body, fmt.Sprintf(`name="%d" checked`, tagIDs[2]))
		assert.NotContains(t, body, fmt.Sprintf(`name="%d" checked`, tagIDs[1]))
	})

	t.Run("edit unchecking tag one twice", func(t *testing.T) {
		path := fmt.Sprintf("/posts/%d/edit", postID)
		form := url.Values{
			"edit_button":         {""},
			"title":               {"T2"},
			"content":             {"C2"},
			fmt.Sprint(tagIDs[2]): {"on"},
		}
		for i := 0; i < 2; i++ {
			assertRedirect(t, app.post(t, path, form), fmt.Sprintf("/posts/%d", postID))
		}

		detail, err := app.posts.GetPost(ctx, postID)
		require.NoError(t, err)
		assert.Equal(t, "T2", detail.Post.Title)
		require.Len(t, detail.Tags, 1)
		assert.Equal(t, "three", detail.Tags[0].Name)

		tag, err := app.tags.GetTagDetail(ctx, tagIDs[2])
		require.NoError(t, err)
		assert.Len(t, tag.PostTags, 1)
	})

	t.Run("edit without the edit button changes nothing", func(t *testing.T) {
		path := fmt.Sprintf("/posts/%d/edit", postID)
		w := app.post(t, path, url.Values{"title": {"ignored"}, "content": {"ignored"}})
		assertRedirect(t, w, fmt.Sprintf("/posts/%d", postID))

		detail, err := app.posts.GetPost(ctx, postID)
		require.NoError(t, err)
		assert.Equal(t, "T2", detail.Post.Title)
	})

	t.Run("invalid edit falls back to the user list", func(t *testing.T) {
		path := fmt.Sprintf("/posts/%d/edit", postID)
		w := app.post(t, path, url.Values{"edit_button": {""}, "title": {""}, "content": {"C3"}})
		assertRedirect(t, w, "/users")
	})

	t.Run("missing post is 404", func(t *testing.T) {
		for _, path := range []string{"/posts/999", "/posts/999/edit", "/posts/999/delete"} {
			assert.Equal(t, http.StatusNotFound, app.get(t, path).Code, path)
		}
		assert.Equal(t, http.StatusNotFound, app.post(t, "/posts/999", url.Values{"edit_button": {""}}).Code)
		assert.Equal(t, http.StatusNotFound, app.post(t, "/posts/999/edit", url.Values{"edit_button": {""}}).Code)
	})

	t.Run("delete post", func(t *testing.T) {
		w := app.post(t, fmt.Sprintf("/posts/%d/delete", postID), url.Values{})
		assertRedirect(t, w, "/users")

		assert.Equal(t, http.StatusNotFound, app.get(t, fmt.Sprintf("/posts/%d", postID)).Code)
		tag, err := app.tags.GetTagDetail(ctx, tagIDs[2])
		require.NoError(t, err)
		assert.Empty(t, tag.PostTags)
	})
}
