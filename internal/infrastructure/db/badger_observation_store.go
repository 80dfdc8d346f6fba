package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/jessicarod7/boc-usd-cad/internal/domain/entity"
)

// DefaultCacheTTL is how long a cached observation window stays valid. The
// source publishes once per business day, so a day-old window is stale.
const DefaultCacheTTL = 24 * time.Hour

// BadgerObservationStore implements the observation cache interface using
// BadgerDB. Whole successful fetch windows are stored as JSON under a key
// derived from the series and the window bounds; partial or failed fetches
// are never stored.
type BadgerObservationStore struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerObservationStore creates a new BadgerDB observation store.
func NewBadgerObservationStore(db *badger.DB, ttl time.Duration) *BadgerObservationStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &BadgerObservationStore{db: db, ttl: ttl}
}

// windowKey derives the cache key for a fetch window. An absent end date is
// part of the key: an open window and a bounded one ending today can hold
// different data tomorrow.
func windowKey(series entity.Series, start time.Time, end *time.Time) []byte {
	endStr := "open"
	if end != nil {
		endStr = entity.FormatDate(*end)
	}
	return []byte(fmt.Sprintf("obs:%s:%s:%s", series, entity.FormatDate(start), endStr))
}

// Get retrieves a cached observation window if present and unexpired.
func (s *BadgerObservationStore) Get(ctx context.Context, series entity.Series, start time.Time, end *time.Time) ([]entity.Observation, bool, error) {
	var observations []entity.Observation

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(windowKey(series, start, end))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &observations)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached observations: %w", err)
	}

	return observations, true, nil
}

// Put stores the observations fetched for a window, with the store's TTL.
func (s *BadgerObservationStore) Put(ctx context.Context, series entity.Series, start time.Time, end *time.Time, observations []entity.Observation) error {
	data, err := json.Marshal(observations)
	if err != nil {
		return fmt.Errorf("failed to marshal observations: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(windowKey(series, start, end), data).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})

	if err != nil {
		return fmt.Errorf("failed to store observations: %w", err)
	}

	return nil
}
