package repositories

import (
	"blogly/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository inside a Badger transaction
type BadgerPostRepository struct {
	txn *badger.Txn
}

// Create creates a new post for an existing user
func (r *BadgerPostRepository) Create(post *models.Post) error {
	ok, err := exists(r.txn, entityKey(UserKeyPrefix, post.UserID))
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	id, err := getNextID(r.txn, PostSeqKey)
	if err != nil {
		return err
	}
	post.ID = id

	if err := putEntity(r.txn, entityKey(PostKeyPrefix, id), post); err != nil {
		return err
	}
	return r.txn.Set(pairKey(UserPostsIndexPrefix, post.UserID, id), []byte{})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post
	if err := getEntity(r.txn, entityKey(PostKeyPrefix, id), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByUser retrieves all posts owned by a user
func (r *BadgerPostRepository) ListByUser(userID int) ([]*models.Post, error) {
	prefix := pairPrefix(UserPostsIndexPrefix, userID)
	rows, err := scanPrefix(r.txn, prefix)
	if err != nil {
		return nil, err
	}

	posts := make([]*models.Post, 0, len(rows))
	for _, row := range rows {
		postKey := append([]byte(PostKeyPrefix), row.key[len(prefix):]...)
		var post models.Post
		if err := getEntity(r.txn, postKey, &post); err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, nil
}

// Update updates an existing post
func (r *BadgerPostRepository) Update(post *models.Post) error {
	existing, err := r.GetByID(post.ID)
	if err != nil {
		return err
	}

	if existing.UserID != post.UserID {
		ok, err := exists(r.txn, entityKey(UserKeyPrefix, post.UserID))
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		if err := r.txn.Delete(pairKey(UserPostsIndexPrefix, existing.UserID, post.ID)); err != nil {
			return err
		}
		if err := r.txn.Set(pairKey(UserPostsIndexPrefix, post.UserID, post.ID), []byte{}); err != nil {
			return err
		}
	}
	return putEntity(r.txn, entityKey(PostKeyPrefix, post.ID), post)
}

// Delete deletes a post by ID. Tag associations are the caller's responsibility.
func (r *BadgerPostRepository) Delete(id int) error {
	existing, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if err := r.txn.Delete(pairKey(UserPostsIndexPrefix, existing.UserID, id)); err != nil {
		return err
	}
	return r.txn.Delete(entityKey(PostKeyPrefix, id))
}
