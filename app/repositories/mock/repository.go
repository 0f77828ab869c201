package mock

import (
	"context"
	"sync"

	"blogly/app/repositories"
)

// Store wraps a real store and lets tests force write transactions to fail
// after their work has been done, which is the point where a partial write
// would become visible if the store were not atomic.
type Store struct {
	repositories.Store

	mutex     sync.RWMutex
	updateErr error
	updates   int
}

func NewStore(inner repositories.Store) *Store {
	return &Store{Store: inner}
}

// FailUpdates makes every following Update return err. Pass nil to stop.
func (s *Store) FailUpdates(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.updateErr = err
}

// Updates reports how many write transactions were attempted.
func (s *Store) Updates() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.updates
}

func (s *Store) Update(ctx context.Context, fn func(tx repositories.Tx) error) error {
	s.mutex.Lock()
	s.updates++
	failWith := s.updateErr
	s.mutex.Unlock()

	return s.Store.Update(ctx, func(tx repositories.Tx) error {
		if err := fn(tx); err != nil {
			return err
		}
		return failWith
	})
}
