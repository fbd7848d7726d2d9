// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"sync"

	"gitlab.com/meridianledger/meridian/pkg/database/keyvalue"
	"gitlab.com/meridianledger/meridian/pkg/errors"
)

// Database is an in-memory key-value store.
type Database struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ keyvalue.Beginner = (*Database)(nil)

func New() *Database {
	return &Database{entries: map[string][]byte{}}
}

// Begin begins a change set.
func (d *Database) Begin(writable bool) keyvalue.ChangeSet {
	return &changeSet{db: d, writable: writable}
}

// Close discards the database contents.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = nil
	return nil
}

func (d *Database) get(key []byte) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.entries[string(key)]
	if !ok {
		return nil, errors.NotFound.WithFormat("key %x not found", key)
	}
	u := make([]byte, len(v))
	copy(u, v)
	return u, nil
}

func (d *Database) put(pending map[string]entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.entries == nil {
		return errors.InternalError.With("database is closed")
	}
	for k, e := range pending {
		if e.delete {
			delete(d.entries, k)
		} else {
			d.entries[k] = e.value
		}
	}
	return nil
}

type entry struct {
	value  []byte
	delete bool
}

type changeSet struct {
	db       *Database
	writable bool
	pending  map[string]entry
	done     bool
}

var _ keyvalue.ChangeSet = (*changeSet)(nil)

func (c *changeSet) Get(key []byte) ([]byte, error) {
	if e, ok := c.pending[string(key)]; ok {
		if e.delete {
			return nil, errors.NotFound.WithFormat("key %x not found", key)
		}
		return e.value, nil
	}
	return c.db.get(key)
}

func (c *changeSet) Put(key, value []byte) error {
	if !c.writable {
		return errors.NotAllowed.With("change set is not writable")
	}
	if c.done {
		return errors.InternalError.With("change set is closed")
	}
	if c.pending == nil {
		c.pending = map[string]entry{}
	}
	v := make([]byte, len(value))
	copy(v, value)
	c.pending[string(key)] = entry{value: v}
	return nil
}

func (c *changeSet) Delete(key []byte) error {
	if !c.writable {
		return errors.NotAllowed.With("change set is not writable")
	}
	if c.done {
		return errors.InternalError.With("change set is closed")
	}
	if c.pending == nil {
		c.pending = map[string]entry{}
	}
	c.pending[string(key)] = entry{delete: true}
	return nil
}

func (c *changeSet) Commit() error {
	if c.done {
		return errors.InternalError.With("change set is closed")
	}
	c.done = true
	if len(c.pending) == 0 {
		return nil
	}
	return c.db.put(c.pending)
}

func (c *changeSet) Discard() {
	c.done = true
	c.pending = nil
}
