package services

import (
	"context"
	"fmt"

	"blogly/app/models"
	"blogly/app/repositories"
)

// UserDetail is a user together with the posts they own.
type UserDetail struct {
	User  *models.User   `json:"user"`
	Posts []*models.Post `json:"posts"`
}

// UserService handles business logic for users
type UserService struct {
	store repositories.Store
}

// NewUserService creates a new UserService
func NewUserService(store repositories.Store) *UserService {
	return &UserService{store: store}
}

// ListUsers returns every user ordered by last name, then first name
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		users, err = tx.Users().List()
		return err
	})
	return users, err
}

// CreateUser validates and stores a new user. An empty image URL becomes the
// default placeholder.
func (s *UserService) CreateUser(ctx context.Context, user *models.User) error {
	user.ApplyDefaults()
	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}
	return s.store.Update(ctx, func(tx repositories.Tx) error {
		return tx.Users().Create(user)
	})
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	var user *models.User
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		user, err = tx.Users().GetByID(id)
		return err
	})
	return user, err
}

// GetUserDetail retrieves a user with their posts
func (s *UserService) GetUserDetail(ctx context.Context, id int) (*UserDetail, error) {
	detail := &UserDetail{}
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		if detail.User, err = tx.Users().GetByID(id); err != nil {
			return err
		}
		if detail.Posts, err = tx.Posts().ListByUser(id); err != nil {
			return fmt.Errorf("failed to get posts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// UpdateUser replaces the names and image URL of an existing user
func (s *UserService) UpdateUser(ctx context.Context, user *models.User) error {
	user.ApplyDefaults()
	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}
	return s.store.Update(ctx, func(tx repositories.Tx) error {
		return tx.Users().Update(user)
	})
}

// DeleteUser deletes a user, their posts and those posts' tag associations
// in one transaction
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.store.Update(ctx, func(tx repositories.Tx) error {
		if _, err := tx.Users().GetByID(id); err != nil {
			return err
		}
		posts, err := tx.Posts().ListByUser(id)
		if err != nil {
			return fmt.Errorf("failed to get posts: %w", err)
		}
		for _, post := range posts {
			if err := deletePost(tx, post.ID); err != nil {
				return fmt.Errorf("failed to delete post %d: %w", post.ID, err)
			}
		}
		return tx.Users().Delete(id)
	})
}
