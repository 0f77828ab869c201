package services

import (
	"context"
	"fmt"

	"blogly/app/models"
	"blogly/app/repositories"
)

// TagDetail is a tag with its associations and the posts behind them.
type TagDetail struct {
	Tag      *models.Tag       `json:"tag"`
	PostTags []*models.PostTag `json:"post_tags"`
	Posts    []*models.Post    `json:"posts"`
}

// TagService handles business logic for tags
type TagService struct {
	store repositories.Store
}

// NewTagService creates a new TagService
func NewTagService(store repositories.Store) *TagService {
	return &TagService{store: store}
}

// ListTags returns every tag ordered by name
func (s *TagService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		tags, err = tx.Tags().List()
		return err
	})
	return tags, err
}

// CreateTag stores a new tag. Names are unique; a taken name fails with
// repositories.ErrDuplicate.
func (s *TagService) CreateTag(ctx context.Context, tag *models.Tag) error {
	if err := tag.Validate(); err != nil {
		return fmt.Errorf("invalid tag: %w", err)
	}
	return s.store.Update(ctx, func(tx repositories.Tx) error {
		return tx.Tags().Create(tag)
	})
}

// GetTagDetail retrieves a tag with its associated posts
func (s *TagService) GetTagDetail(ctx context.Context, id int) (*TagDetail, error) {
	detail := &TagDetail{}
	err := s.store.View(ctx, func(tx repositories.Tx) error {
		var err error
		if detail.Tag, err = tx.Tags().GetByID(id); err != nil {
			return err
		}
		if detail.PostTags, err = tx.PostTags().ListByTag(id); err != nil {
			return err
		}
		detail.Posts = make([]*models.Post, 0, len(detail.PostTags))
		for _, pt := range detail.PostTags {
			post, err := tx.Posts().GetByID(pt.PostID)
			if err != nil {
				return fmt.Errorf("failed to get post %d: %w", pt.PostID, err)
			}
			detail.Posts = append(detail.Posts, post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}
