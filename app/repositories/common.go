package repositories

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	UserKeyPrefix    = "user:"
	PostKeyPrefix    = "post:"
	TagKeyPrefix     = "tag:"
	PostTagKeyPrefix = "post_tag:"

	// Index prefixes, written in the same transaction as the entity
	UserPostsIndexPrefix = "idx:user_posts:"
	TagNameIndexPrefix   = "idx:tag_name:"
	PostTagsIndexPrefix  = "idx:post_tags:"
	TagPostsIndexPrefix  = "idx:tag_posts:"

	// Sequence keys for auto-incrementing IDs
	UserSeqKey    = "seq:user"
	PostSeqKey    = "seq:post"
	TagSeqKey     = "seq:tag"
	PostTagSeqKey = "seq:post_tag"
)

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, fmt.Errorf("failed to get sequence: %w", err)
	} else {
		err = item.Value(func(val []byte) error {
			n, err := strconv.Atoi(string(val))
			if err != nil {
				return fmt.Errorf("failed to parse sequence: %w", err)
			}
			id = n + 1
			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	// Update the sequence
	if err := txn.Set([]byte(seqKey), []byte(strconv.Itoa(id))); err != nil {
		return 0, fmt.Errorf("failed to update sequence: %w", err)
	}

	return id, nil
}

// idSegment zero-pads ids so that prefix iteration walks them in numeric order.
func idSegment(id int) string {
	return fmt.Sprintf("%010d", id)
}

func entityKey(prefix string, id int) []byte {
	return []byte(prefix + idSegment(id))
}

func pairKey(prefix string, a, b int) []byte {
	return []byte(prefix + idSegment(a) + ":" + idSegment(b))
}

func pairPrefix(prefix string, a int) []byte {
	return []byte(prefix + idSegment(a) + ":")
}

// marshalEntity marshals an entity to JSON
func marshalEntity(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}

// getEntity loads the JSON value at key into v.
func getEntity(txn *badger.Txn, key []byte, v interface{}) error {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, v)
	})
}

func putEntity(txn *badger.Txn, key []byte, v interface{}) error {
	data, err := marshalEntity(v)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// getIntValue reads a key whose value is a decimal id.
func getIntValue(txn *badger.Txn, key []byte) (int, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	var id int
	err = item.Value(func(val []byte) error {
		id, err = strconv.Atoi(string(val))
		return err
	})
	return id, err
}

func setIntValue(txn *badger.Txn, key []byte, id int) error {
	return txn.Set(key, []byte(strconv.Itoa(id)))
}

type kv struct {
	key   []byte
	value []byte
}

// scanPrefix copies out every key/value under prefix. The iterator is closed
// before returning, so callers may write to the transaction afterwards.
func scanPrefix(txn *badger.Txn, prefix []byte) ([]kv, error) {
	var out []kv
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		out = append(out, kv{key: item.KeyCopy(nil), value: val})
	}
	return out, nil
}
