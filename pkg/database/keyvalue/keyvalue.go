// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package keyvalue

// Store is a key-value store.
type Store interface {
	// Get loads a value. Get returns a NotFound error if the key does not
	// exist.
	Get(key []byte) ([]byte, error)

	// Put stores a value.
	Put(key, value []byte) error

	// Delete removes a value.
	Delete(key []byte) error
}

// ChangeSet is a key-value change set.
type ChangeSet interface {
	Store

	// Commit commits pending changes.
	Commit() error

	// Discard discards pending changes.
	Discard()
}

// A Beginner can begin key-value change sets.
type Beginner interface {
	// Begin begins a change set.
	Begin(writable bool) ChangeSet

	// Close releases the underlying database.
	Close() error
}
