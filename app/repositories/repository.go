package repositories

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore implements Store on an embedded Badger database. Each table is
// a key prefix; see common.go for the layout.
type BadgerStore struct {
	db       *badger.DB
	dbPath   string
	isTestDB bool
}

// NewBadgerStore wraps an already opened database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens (or creates) the database at path. An empty path
// opens a throwaway database in a fresh temporary directory that Close removes.
// Badger's own messages go to logger; nil silences them.
func OpenBadgerStore(path string, logger badger.Logger) (*BadgerStore, error) {
	isTest := false
	if path == "" {
		tempPath, err := os.MkdirTemp("", "blogly_test_db_")
		if err != nil {
			return nil, fmt.Errorf("create temp dir: %w", err)
		}
		path = tempPath
		isTest = true
	}
	opts := badger.DefaultOptions(path).
		WithLogger(logger).
		WithNumVersionsToKeep(1)
	if isTest {
		opts = opts.WithSyncWrites(false).WithNumGoroutines(1)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return &BadgerStore{
		db:       db,
		dbPath:   path,
		isTestDB: isTest,
	}, nil
}

func (s *BadgerStore) View(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		return fn(&badgerTx{txn: txn})
	})
}

func (s *BadgerStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return fn(&badgerTx{txn: txn})
	})
}

// Backup streams a full backup of the database to w.
func (s *BadgerStore) Backup(w io.Writer) (uint64, error) {
	return s.db.Backup(w, 0)
}

// Load restores a backup produced by Backup.
func (s *BadgerStore) Load(r io.Reader) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic occurred during restore: %v", rec)
		}
	}()
	return s.db.Load(r, 4)
}

func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}

	// Clean up test database
	if s.isTestDB {
		if err := os.RemoveAll(s.dbPath); err != nil {
			return fmt.Errorf("failed to cleanup test database: %w", err)
		}
	}
	return nil
}

type badgerTx struct {
	txn *badger.Txn
}

func (t *badgerTx) Users() UserRepository       { return &BadgerUserRepository{txn: t.txn} }
func (t *badgerTx) Posts() PostRepository       { return &BadgerPostRepository{txn: t.txn} }
func (t *badgerTx) Tags() TagRepository         { return &BadgerTagRepository{txn: t.txn} }
func (t *badgerTx) PostTags() PostTagRepository { return &BadgerPostTagRepository{txn: t.txn} }
