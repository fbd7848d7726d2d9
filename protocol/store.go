// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"gitlab.com/meridianledger/meridian/internal/aggregator"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

// FungibleStore is one owner's holding of one asset type.
type FungibleStore struct {
	// Metadata is the address of the asset type's metadata record.
	Metadata address.Address `cbor:"1,keyasint"`

	// Balance is the plain balance. When a concurrent companion exists,
	// accounting routes through the companion once this field is zero.
	Balance uint64 `cbor:"2,keyasint"`

	// Frozen stores cannot be the source or target of a non-privileged
	// transfer.
	Frozen bool `cbor:"3,keyasint,omitempty"`
}

// ConcurrentBalance is the aggregated companion of a FungibleStore, stored
// at the same address.
type ConcurrentBalance struct {
	Balance aggregator.Aggregator `cbor:"1,keyasint"`
}

// NewConcurrentBalance returns a zero aggregated balance.
func NewConcurrentBalance() *ConcurrentBalance {
	cb := new(ConcurrentBalance)
	cb.Balance.Max.Set(aggregator.MaxUint64)
	return cb
}
