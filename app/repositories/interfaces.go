package repositories

import (
	"context"

	"blogly/app/models"
)

// Store runs functions inside transactions over the blog tables.
//
// Update commits when fn returns nil and discards every write otherwise, so a
// request that performs several mutations either lands all of them or none.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}

// Tx hands out repositories bound to one transaction.
type Tx interface {
	Users() UserRepository
	Posts() PostRepository
	Tags() TagRepository
	PostTags() PostTagRepository
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	// List returns every user ordered by last name, first name, then id.
	List() ([]*models.User, error)
	Update(user *models.User) error
	Delete(id int) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	// ListByUser returns the user's posts ordered by id.
	ListByUser(userID int) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// Create fails with ErrDuplicate when the name is taken.
	Create(tag *models.Tag) error
	GetByID(id int) (*models.Tag, error)
	// List returns every tag ordered by name.
	List() ([]*models.Tag, error)
}

// PostTagRepository defines the interface for post/tag association access
type PostTagRepository interface {
	// Create fails with ErrDuplicate when the pair is already associated.
	Create(postTag *models.PostTag) error
	ListByPost(postID int) ([]*models.PostTag, error)
	ListByTag(tagID int) ([]*models.PostTag, error)
	Delete(postID, tagID int) error
	DeleteByPost(postID int) error
}
