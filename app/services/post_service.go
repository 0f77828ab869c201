package services

import (
	"context"
	"fmt"

	"blogly/app/models"
	"blogly/app/repositories"
)

// PostDetail is a post with its author and tags.
type PostDetail struct {
	Post   *models.Post  `json:"post"`
	Author *models.User  `json:"author"`
	Tags   []*models.Tag `json:"tags"`
}

// NewPostForm carries what the add-post form needs.
type NewPostForm struct {
	User *models.User
	Tags []*models.Tag
}

// EditPostForm carries what the edit-post form needs. Every tag appears in
// exactly one of Checked and Unchecked.
type EditPostForm struct {
	Post      *models.Post
	Checked   []*models.Tag
	Unchecked []*models.Tag
}

// PostService handles business logic for blog posts
type PostService struct {
	store repositories.Store
}

// NewPostService creates a new PostService
func NewPostService(store repositories.Store) *PostService {
	return &PostService{store: store}
}

// NewPostForm loads the owner and the full tag list for the add-post form
func (s *PostService) NewPostForm(ctx context.Context, userID int) (*NewPostForm, error) {
	form := &NewPostForm{}
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		if form.User, err = tx.Users().GetByID(userID); err != nil {
			return err
		}
		form.Tags, err = tx.Tags().List()
		return err
	})
	if err != nil {
		return nil, err
	}
	return form, nil
}

// CreatePost creates a post for post.UserID and associates it with every
// existing tag whose id is in tagIDs. Nothing is written unless all of it is.
func (s *PostService) CreatePost(ctx context.Context, post *models.Post, tagIDs map[int]bool) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	return s.store.Update(ctx, func(tx repositories.Tx) error {
		if _, err := tx.Users().GetByID(post.UserID); err != nil {
			return err
		}
		if err := tx.Posts().Create(post); err != nil {
			return err
		}

		tags, err := tx.Tags().List()
		if err != nil {
			return err
		}
		for _, tag := range models.SelectTags(tags, tagIDs) {
			if err := tx.PostTags().Create(&models.PostTag{PostID: post.ID, TagID: tag.ID}); err != nil {
				return fmt.Errorf("failed to tag post with %d: %w", tag.ID, err)
			}
		}
		return nil
	})
}

// GetPost retrieves a post with its author and tags
func (s *PostService) GetPost(ctx context.Context, id int) (*PostDetail, error) {
	detail := &PostDetail{}
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		if detail.Post, err = tx.Posts().GetByID(id); err != nil {
			return err
		}
		if detail.Author, err = tx.Users().GetByID(detail.Post.UserID); err != nil {
			return fmt.Errorf("failed to get author: %w", err)
		}
		detail.Tags, err = postTags(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// EditPostForm loads a post and splits the tag list into the tags it carries
// and the rest
func (s *PostService) EditPostForm(ctx context.Context, id int) (*EditPostForm, error) {
	form := &EditPostForm{}
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		if form.Post, err = tx.Posts().GetByID(id); err != nil {
			return err
		}
		all, err := tx.Tags().List()
		if err != nil {
			return err
		}
		existing, err := tx.PostTags().ListByPost(id)
		if err != nil {
			return err
		}
		form.Checked, form.Unchecked = models.SplitTags(all, existing)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return form, nil
}

// UpdatePost replaces the title and content of post.ID and reconciles its
// tags against checked. On success post holds the stored record.
func (s *PostService) UpdatePost(ctx context.Context, post *models.Post, checked map[int]bool) error {
	return s.store.Update(ctx, func(tx repositories.Tx) error {
		existing, err := tx.Posts().GetByID(post.ID)
		if err != nil {
			return err
		}

		existing.Title = post.Title
		existing.Content = post.Content
		if err := existing.Validate(); err != nil {
			return fmt.Errorf("invalid post: %w", err)
		}
		if err := tx.Posts().Update(existing); err != nil {
			return err
		}

		all, err := tx.Tags().List()
		if err != nil {
			return err
		}
		current, err := tx.PostTags().ListByPost(post.ID)
		if err != nil {
			return err
		}
		changes := models.ReconcileTags(all, current, checked)
		if changes.Empty() {
			*post = *existing
			return nil
		}
		for _, tagID := range changes.Add {
			if err := tx.PostTags().Create(&models.PostTag{PostID: post.ID, TagID: tagID}); err != nil {
				return fmt.Errorf("failed to add tag %d: %w", tagID, err)
			}
		}
		for _, tagID := range changes.Remove {
			if err := tx.PostTags().Delete(post.ID, tagID); err != nil {
				return fmt.Errorf("failed to remove tag %d: %w", tagID, err)
			}
		}

		*post = *existing
		return nil
	})
}

// DeletePost deletes a post and its tag associations
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	return s.store.Update(ctx, func(tx repositories.Tx) error {
		return deletePost(tx, id)
	})
}

func deletePost(tx repositories.Tx, id int) error {
	if _, err := tx.Posts().GetByID(id); err != nil {
		return err
	}
	if err := tx.PostTags().DeleteByPost(id); err != nil {
		return fmt.Errorf("failed to delete tag associations: %w", err)
	}
	return tx.Posts().Delete(id)
}

// postTags resolves the tags associated with a post.
func postTags(tx repositories.Tx, postID int) ([]*models.Tag, error) {
	pts, err := tx.PostTags().ListByPost(postID)
	if err != nil {
		return nil, err
	}
	tags := make([]*models.Tag, 0, len(pts))
	for _, pt := range pts {
		tag, err := tx.Tags().GetByID(pt.TagID)
		if err != nil {
			return nil, fmt.Errorf("failed to get tag %d: %w", pt.TagID, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
