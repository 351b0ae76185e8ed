// Package boltengine implements the non-core alternative engine backend
// that spec.md §2 describes only by its interface: a delegate to a
// third-party embedded KV library. It satisfies the same
// internal/engine.Engine contract as internal/bitcask, backed by
// go.etcd.io/bbolt instead of a hand-rolled log.
//
// Unlike bitcask, a bbolt database already serialises concurrent
// transactions internally, so this engine does not implement
// internal/engine.Duplicable - one *Engine is shared directly across
// callers.
package boltengine

import (
	"context"
	"path/filepath"
	"time"

	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/filesys"
	"github.com/ignitedb/ignite/pkg/options"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var bucketName = []byte("ignite")

// Engine is the bbolt-backed alternative storage backend.
type Engine struct {
	db  *bbolt.DB
	log *zap.SugaredLogger
}

// Config configures a new Engine.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// Open opens (creating if absent) a bbolt database file under
// opts.DataDir and ensures its single bucket exists.
func Open(ctx context.Context, config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "boltengine configuration is required",
		).WithField("config").WithRule("required")
	}

	if err := filesys.CreateDir(config.Options.DataDir, 0755, true); err != nil {
		return nil, errors.ClassifyDirectoryCreationError(err, config.Options.DataDir)
	}

	dbPath := filepath.Join(config.Options.DataDir, "bolt.db")
	db, err := bbolt.Open(dbPath, 0644, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.NewIOError(err, "failed to open bolt database").WithPath(dbPath)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, errors.NewIOError(err, "failed to create bolt bucket").WithPath(dbPath)
	}

	config.Logger.Infow("boltengine opened", "path", dbPath)
	return &Engine{db: db, log: config.Logger}, nil
}

// Set stores key/value, overwriting any existing value.
func (e *Engine) Set(ctx context.Context, key, value string) error {
	err := e.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return errors.NewIOError(err, "failed to write key to bolt database")
	}
	return nil
}

// Get returns the value for key and true, or "" and false if absent.
func (e *Engine) Get(ctx context.Context, key string) (string, bool, error) {
	var value []byte
	err := e.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketName).Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", false, errors.NewIOError(err, "failed to read key from bolt database")
	}
	if value == nil {
		return "", false, nil
	}
	return string(value), true, nil
}

// Remove deletes key, failing with ErrorCodeKeyNotFound when it was
// already absent - spec §9 notes this backend's remove reports
// KeyNotFound on absence, the same contract as internal/bitcask.
func (e *Engine) Remove(ctx context.Context, key string) error {
	var found bool
	err := e.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b.Get([]byte(key)) == nil {
			return nil
		}
		found = true
		return b.Delete([]byte(key))
	})
	if err != nil {
		return errors.NewIOError(err, "failed to delete key from bolt database")
	}
	if !found {
		return errors.ErrKeyNotFound
	}
	return nil
}

// Close closes the underlying bbolt database.
func (e *Engine) Close() error {
	if err := e.db.Close(); err != nil {
		return errors.NewIOError(err, "failed to close bolt database")
	}
	return nil
}
