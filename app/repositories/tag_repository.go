package repositories

import (
	"fmt"
	"sort"

	"blogly/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerTagRepository implements TagRepository inside a Badger transaction
type BadgerTagRepository struct {
	txn *badger.Txn
}

// Create creates a new tag with a unique name
func (r *BadgerTagRepository) Create(tag *models.Tag) error {
	nameKey := []byte(TagNameIndexPrefix + tag.Name)
	taken, err := exists(r.txn, nameKey)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: tag %q", ErrDuplicate, tag.Name)
	}

	id, err := getNextID(r.txn, TagSeqKey)
	if err != nil {
		return err
	}
	tag.ID = id

	if err := putEntity(r.txn, entityKey(TagKeyPrefix, id), tag); err != nil {
		return err
	}
	return setIntValue(r.txn, nameKey, id)
}

// GetByID retrieves a tag by ID
func (r *BadgerTagRepository) GetByID(id int) (*models.Tag, error) {
	var tag models.Tag
	if err := getEntity(r.txn, entityKey(TagKeyPrefix, id), &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// List retrieves all tags ordered by name
func (r *BadgerTagRepository) List() ([]*models.Tag, error) {
	rows, err := scanPrefix(r.txn, []byte(TagKeyPrefix))
	if err != nil {
		return nil, err
	}
	tags := make([]*models.Tag, 0, len(rows))
	for _, row := range rows {
		var tag models.Tag
		if err := unmarshalEntity(row.value, &tag); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tag: %w", err)
		}
		tags = append(tags, &tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Less(tags[j]) })
	return tags, nil
}
