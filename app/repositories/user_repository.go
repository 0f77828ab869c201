package repositories

import (
	"fmt"
	"sort"

	"blogly/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository inside a Badger transaction
type BadgerUserRepository struct {
	txn *badger.Txn
}

// Create creates a new user
func (r *BadgerUserRepository) Create(user *models.User) error {
	id, err := getNextID(r.txn, UserSeqKey)
	if err != nil {
		return err
	}
	user.ID = id
	return putEntity(r.txn, entityKey(UserKeyPrefix, id), user)
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User
	if err := getEntity(r.txn, entityKey(UserKeyPrefix, id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves all users sorted for display
func (r *BadgerUserRepository) List() ([]*models.User, error) {
	rows, err := scanPrefix(r.txn, []byte(UserKeyPrefix))
	if err != nil {
		return nil, err
	}
	users := make([]*models.User, 0, len(rows))
	for _, row := range rows {
		var user models.User
		if err := unmarshalEntity(row.value, &user); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user: %w", err)
		}
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Less(users[j]) })
	return users, nil
}

// Update replaces an existing user
func (r *BadgerUserRepository) Update(user *models.User) error {
	key := entityKey(UserKeyPrefix, user.ID)
	ok, err := exists(r.txn, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return putEntity(r.txn, key, user)
}

// Delete deletes a user by ID. Owned posts are the caller's responsibility.
func (r *BadgerUserRepository) Delete(id int) error {
	key := entityKey(UserKeyPrefix, id)
	ok, err := exists(r.txn, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return r.txn.Delete(key)
}
