package services

import (
	"context"
	"testing"

	"blogly/app/models"
	"blogly/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *repositories.BadgerStore {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	store := repositories.NewBadgerStore(db)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedUser(t *testing.T, s *UserService, first, last string) *models.User {
	t.Helper()
	user := &models.User{FirstName: first, LastName: last}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func seedTags(t *testing.T, s *TagService, names ...string) []*models.Tag {
	t.Helper()
	var tags []*models.Tag
	for _, name := range names {
		tag := &models.Tag{Name: name}
		require.NoError(t, s.CreateTag(context.Background(), tag))
		tags = append(tags, tag)
	}
	return tags
}

func tagNames(tags []*models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func countPostTags(t *testing.T, store repositories.Store, postID int) map[int]int {
	t.Helper()
	counts := map[int]int{}
	require.NoError(t, store.View(context.Background(), func(tx repositories.Tx) error {
		pts, err := tx.PostTags().ListByPost(postID)
		for _, pt := range pts {
			counts[pt.TagID]++
		}
		return err
	}))
	return counts
}
