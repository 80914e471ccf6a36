// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore implements Store on an embedded badger database.
//   - records: key = "match:<id>" (JSON)
//   - order:   key = "finished:<unix-nano, zero padded>:<id>" (empty value)
//
// The order index sorts lexically by finish time so List is a reverse prefix scan.
type BadgerStore struct {
	db *badger.DB
}

const (
	prefixMatch    = "match:"
	prefixFinished = "finished:"
)

// NewBadgerStore opens a badger history store in dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger history: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func matchKey(id string) []byte { return []byte(prefixMatch + id) }

func finishedKey(rec Record) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", prefixFinished, rec.FinishedAt.UnixNano(), rec.ID))
}

func (s *BadgerStore) Save(_ context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	buf, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		// drop the previous order entry when a record is rewritten
		if item, err := txn.Get(matchKey(rec.ID)); err == nil {
			var prev Record
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &prev)
			}); err != nil {
				return err
			}
			if err := txn.Delete(finishedKey(prev)); err != nil {
				return err
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set(matchKey(rec.ID), buf); err != nil {
			return err
		}
		return txn.Set(finishedKey(rec), nil)
	})
}

func (s *BadgerStore) get(txn *badger.Txn, id string) (Record, error) {
	item, err := txn.Get(matchKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	var rec Record
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	})
	return rec, err
}

func (s *BadgerStore) Get(_ context.Context, id string) (Record, error) {
	var out Record
	err := s.db.View(func(txn *badger.Txn) error {
		rec, err := s.get(txn, id)
		out = rec
		return err
	})
	if err != nil {
		return Record{}, err
	}
	return cloneRecord(out), nil
}

func (s *BadgerStore) List(ctx context.Context, limit int) ([]Record, error) {
	out := []Record{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixFinished)
		// reverse iteration must seek past the last possible key of the prefix
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := string(it.Item().Key())
			// finished:<20 digits>:<id>
			id := key[len(prefixFinished)+21:]
			rec, err := s.get(txn, id)
			if err != nil {
				return err
			}
			out = append(out, cloneRecord(rec))
			if limit > 0 && len(out) >= limit {
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (s *BadgerStore) Stats(ctx context.Context) (Stats, error) {
	st := newStats()
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixMatch)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			st.add(rec.Mode, rec.Difficulty, rec.Outcome, 1)
		}
		return nil
	})
	return st, err
}

func (s *BadgerStore) Backend() string { return "badger" }

func (s *BadgerStore) Close() error { return s.db.Close() }
