// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package database stores typed resource records in a key-value store. A
// record is addressed by its owner's address and a kind, and encoded with
// CBOR.
package database

import (
	"github.com/fxamacker/cbor/v2"
	"gitlab.com/meridianledger/meridian/internal/logging"
	"gitlab.com/meridianledger/meridian/pkg/database/keyvalue"
	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

var encMode cbor.EncMode
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Batch is a set of pending record changes.
type Batch struct {
	kv     keyvalue.ChangeSet
	logger logging.OptionalLogger
}

func NewBatch(kv keyvalue.ChangeSet, logger logging.Logger) *Batch {
	b := &Batch{kv: kv}
	b.logger.Set(logger, "module", "database")
	return b
}

func recordKey(addr address.Address, kind string) []byte {
	key := make([]byte, 0, len(addr)+1+len(kind))
	key = append(key, addr[:]...)
	key = append(key, '/')
	key = append(key, kind...)
	return key
}

// GetValue loads and decodes the record of the given kind at the given
// address. GetValue returns a NotFound error if the record does not exist.
func (b *Batch) GetValue(addr address.Address, kind string, v interface{}) error {
	data, err := b.kv.Get(recordKey(addr, kind))
	switch {
	case err == nil:
		// Ok
	case errors.Is(err, errors.NotFound):
		return errors.NotFound.WithFormat("%s record of %v not found", kind, addr)
	default:
		return errors.UnknownError.WithFormat("load %s record of %v: %v", kind, addr, err)
	}

	err = decMode.Unmarshal(data, v)
	if err != nil {
		return errors.EncodingError.WithFormat("decode %s record of %v: %v", kind, addr, err)
	}
	return nil
}

// PutValue encodes and stores the record of the given kind at the given
// address.
func (b *Batch) PutValue(addr address.Address, kind string, v interface{}) error {
	data, err := encMode.Marshal(v)
	if err != nil {
		return errors.EncodingError.WithFormat("encode %s record of %v: %v", kind, addr, err)
	}

	err = b.kv.Put(recordKey(addr, kind), data)
	if err != nil {
		return errors.UnknownError.WithFormat("store %s record of %v: %v", kind, addr, err)
	}
	return nil
}

// DeleteValue removes the record of the given kind at the given address.
func (b *Batch) DeleteValue(addr address.Address, kind string) error {
	err := b.kv.Delete(recordKey(addr, kind))
	if err != nil {
		return errors.UnknownError.WithFormat("delete %s record of %v: %v", kind, addr, err)
	}
	return nil
}

// HasValue returns true if a record of the given kind exists at the given
// address.
func (b *Batch) HasValue(addr address.Address, kind string) (bool, error) {
	_, err := b.kv.Get(recordKey(addr, kind))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errors.NotFound):
		return false, nil
	default:
		return false, errors.UnknownError.WithFormat("load %s record of %v: %v", kind, addr, err)
	}
}

// Commit commits pending changes to the underlying store.
func (b *Batch) Commit() error {
	return b.kv.Commit()
}

// Discard discards pending changes.
func (b *Batch) Discard() {
	b.kv.Discard()
}
