// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// ErrNotFound indicates no record exists for the requested key.
var ErrNotFound = errors.New("ledger record not found")

// Store is the BadgerDB-backed batch history. It keeps one RunRecord per
// pipeline run and one FileRecord per processed file, for lineage queries
// across runs.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens the batch history at the specified path, creating the
// directory if it doesn't exist. With inMemory set, path is ignored and
// nothing is persisted; used by tests.
func Open(path string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(path, 0o755); err != nil {
					return nil, err
				}
				info, err = os.Stat(path)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", path)
		}
		opts = badger.DefaultOptions(path)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: slog.Default(),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun persists a run summary, replacing any previous record for the
// same batch id.
func (s *Store) RecordRun(run *RunRecord) error {
	return s.db.Update(func(tx *badger.Txn) error {
		return tx.Set(makeRunKey(run.BatchID), MarshalRunRecord(run))
	})
}

// RecordFile persists the outcome of one file within a run.
func (s *Store) RecordFile(file *FileRecord) error {
	return s.db.Update(func(tx *badger.Txn) error {
		key := makeFileKey(file.BatchID, file.Department, file.Filename)
		return tx.Set(key, MarshalFileRecord(file))
	})
}

// Run retrieves the summary of a batch. Returns ErrNotFound if the batch
// id is unknown.
func (s *Store) Run(batchID string) (*RunRecord, error) {
	var run *RunRecord
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRunKey(batchID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: batch %s", ErrNotFound, batchID)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			run, err = UnmarshalRunRecord(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// Runs lists all recorded runs, most recent first.
func (s *Store) Runs() ([]*RunRecord, error) {
	var runs []*RunRecord
	err := s.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				run, err := UnmarshalRunRecord(val)
				if err != nil {
					return err
				}
				runs = append(runs, run)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}

// FilesForRun lists the file records of a batch in department/filename
// order.
func (s *Store) FilesForRun(batchID string) ([]*FileRecord, error) {
	var files []*FileRecord
	err := s.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeFileScanPrefix(batchID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				file, err := UnmarshalFileRecord(val)
				if err != nil {
					return err
				}
				files = append(files, file)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
