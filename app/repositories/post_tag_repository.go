package repositories

import (
	"fmt"
	"strconv"

	"blogly/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostTagRepository implements PostTagRepository inside a Badger transaction.
// Each association is stored once under post_tag:<id> and indexed from both
// sides so that the (post, tag) pair stays unique.
type BadgerPostTagRepository struct {
	txn *badger.Txn
}

// Create associates an existing post with an existing tag
func (r *BadgerPostTagRepository) Create(pt *models.PostTag) error {
	for _, key := range [][]byte{
		entityKey(PostKeyPrefix, pt.PostID),
		entityKey(TagKeyPrefix, pt.TagID),
	} {
		ok, err := exists(r.txn, key)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
	}

	pairK := pairKey(PostTagsIndexPrefix, pt.PostID, pt.TagID)
	taken, err := exists(r.txn, pairK)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: post %d already tagged %d", ErrDuplicate, pt.PostID, pt.TagID)
	}

	id, err := getNextID(r.txn, PostTagSeqKey)
	if err != nil {
		return err
	}
	pt.ID = id

	if err := putEntity(r.txn, entityKey(PostTagKeyPrefix, id), pt); err != nil {
		return err
	}
	if err := setIntValue(r.txn, pairK, id); err != nil {
		return err
	}
	return setIntValue(r.txn, pairKey(TagPostsIndexPrefix, pt.TagID, pt.PostID), id)
}

// ListByPost retrieves the associations of a post ordered by tag id
func (r *BadgerPostTagRepository) ListByPost(postID int) ([]*models.PostTag, error) {
	return r.listByIndex(pairPrefix(PostTagsIndexPrefix, postID))
}

// ListByTag retrieves the associations of a tag ordered by post id
func (r *BadgerPostTagRepository) ListByTag(tagID int) ([]*models.PostTag, error) {
	return r.listByIndex(pairPrefix(TagPostsIndexPrefix, tagID))
}

func (r *BadgerPostTagRepository) listByIndex(prefix []byte) ([]*models.PostTag, error) {
	rows, err := scanPrefix(r.txn, prefix)
	if err != nil {
		return nil, err
	}
	postTags := make([]*models.PostTag, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.Atoi(string(row.value))
		if err != nil {
			return nil, fmt.Errorf("corrupt index %s: %w", row.key, err)
		}
		var pt models.PostTag
		if err := getEntity(r.txn, entityKey(PostTagKeyPrefix, id), &pt); err != nil {
			return nil, err
		}
		postTags = append(postTags, &pt)
	}
	return postTags, nil
}

// Delete removes the association between a post and a tag
func (r *BadgerPostTagRepository) Delete(postID, tagID int) error {
	pairK := pairKey(PostTagsIndexPrefix, postID, tagID)
	id, err := getIntValue(r.txn, pairK)
	if err != nil {
		return err
	}
	if err := r.txn.Delete(entityKey(PostTagKeyPrefix, id)); err != nil {
		return err
	}
	if err := r.txn.Delete(pairK); err != nil {
		return err
	}
	return r.txn.Delete(pairKey(TagPostsIndexPrefix, tagID, postID))
}

// DeleteByPost removes every association of a post
func (r *BadgerPostTagRepository) DeleteByPost(postID int) error {
	postTags, err := r.ListByPost(postID)
	if err != nil {
		return err
	}
	for _, pt := range postTags {
		if err := r.Delete(pt.PostID, pt.TagID); err != nil {
			return err
		}
	}
	return nil
}
