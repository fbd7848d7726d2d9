// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"gitlab.com/meridianledger/meridian/internal/logging"
	"gitlab.com/meridianledger/meridian/pkg/database/keyvalue"
	"gitlab.com/meridianledger/meridian/pkg/errors"
)

// Database is a Badger-backed key-value store.
type Database struct {
	badger *badger.DB
	stop   chan struct{}
	once   sync.Once
}

var _ keyvalue.Beginner = (*Database)(nil)

type opts struct {
	logger logging.Logger
}

type Option func(*opts)

// WithLogger routes Badger's logging through the given logger.
func WithLogger(l logging.Logger) Option {
	return func(o *opts) { o.logger = l }
}

func New(filepath string, o ...Option) (*Database, error) {
	// Make sure all directories exist
	err := os.MkdirAll(filepath, 0700)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: create %q: %v", filepath, err)
	}

	var op opts
	for _, o := range o {
		o(&op)
	}

	bo := badger.DefaultOptions(filepath)
	bo = bo.WithLogger(badgerLogger{logging.OptionalLogger{L: op.logger}})

	d := new(Database)
	d.badger, err = badger.Open(bo)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("open badger: %v", err)
	}

	// Run GC every hour
	d.stop = make(chan struct{})
	go d.gc()

	return d, nil
}

// Begin begins a change set.
func (d *Database) Begin(writable bool) keyvalue.ChangeSet {
	return &changeSet{txn: d.badger.NewTransaction(writable)}
}

func (d *Database) Close() error {
	var err error
	d.once.Do(func() {
		close(d.stop)
		err = d.badger.Close()
	})
	return err
}

func (d *Database) gc() {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-d.stop:
			return
		case <-t.C:
		}

		// Re-run GC until it reports there's nothing left to collect
		for {
			err := d.badger.RunValueLogGC(0.5)
			if err != nil {
				break
			}
		}
	}
}

type changeSet struct {
	txn  *badger.Txn
	done bool
}

var _ keyvalue.ChangeSet = (*changeSet)(nil)

func (c *changeSet) Get(key []byte) ([]byte, error) {
	item, err := c.txn.Get(key)
	switch {
	case err == nil:
		// Ok
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, errors.NotFound.WithFormat("key %x not found", key)
	default:
		return nil, errors.UnknownError.WithFormat("get %x: %v", key, err)
	}

	v, err := item.ValueCopy(nil)
	if err != nil {
		return nil, errors.UnknownError.WithFormat("get %x: %v", key, err)
	}
	return v, nil
}

func (c *changeSet) Put(key, value []byte) error {
	err := c.txn.Set(key, value)
	return errors.UnknownError.Wrap(err)
}

func (c *changeSet) Delete(key []byte) error {
	err := c.txn.Delete(key)
	return errors.UnknownError.Wrap(err)
}

func (c *changeSet) Commit() error {
	if c.done {
		return errors.InternalError.With("change set is closed")
	}
	c.done = true
	return errors.UnknownError.Wrap(c.txn.Commit())
}

func (c *changeSet) Discard() {
	c.done = true
	c.txn.Discard()
}

// badgerLogger adapts Badger's logger interface.
type badgerLogger struct {
	l logging.OptionalLogger
}

func (l badgerLogger) Errorf(format string, args ...interface{})   { l.l.Error(sprintf(format, args)) }
func (l badgerLogger) Warningf(format string, args ...interface{}) { l.l.Info(sprintf(format, args)) }
func (l badgerLogger) Infof(format string, args ...interface{})    { l.l.Info(sprintf(format, args)) }
func (l badgerLogger) Debugf(format string, args ...interface{})   { l.l.Debug(sprintf(format, args)) }

func sprintf(format string, args []interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\r\n")
}
