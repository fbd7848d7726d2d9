// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package aggregator provides a bounded commutative counter. Additions and
// subtractions are order-independent deltas, so an execution engine can run
// delta-only operations on the same counter in parallel; only operations
// that read the exact value introduce an ordering dependency.
package aggregator

import (
	"math/big"

	"gitlab.com/meridianledger/meridian/pkg/errors"
)

var (
	// MaxUint64 is the bound used for store balances.
	MaxUint64 = new(big.Int).SetUint64(^uint64(0))

	// MaxUint128 is the bound used for supply counters with no explicit
	// maximum.
	MaxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// Aggregator is a counter bounded by [0, Max].
type Aggregator struct {
	Value big.Int `cbor:"1,keyasint"`
	Max   big.Int `cbor:"2,keyasint"`
}

// New returns a zero-valued counter with the given bound. A nil bound means
// MaxUint128.
func New(max *big.Int) *Aggregator {
	a := new(Aggregator)
	if max == nil {
		max = MaxUint128
	}
	a.Max.Set(max)
	return a
}

// TryAdd adds delta to the counter. TryAdd returns false and leaves the
// counter unchanged if the result would exceed the bound.
func (a *Aggregator) TryAdd(delta uint64) bool {
	v := new(big.Int).SetUint64(delta)
	v.Add(v, &a.Value)
	if v.Cmp(&a.Max) > 0 {
		return false
	}
	a.Value.Set(v)
	return true
}

// TrySub subtracts delta from the counter. TrySub returns false and leaves
// the counter unchanged if the result would be negative.
func (a *Aggregator) TrySub(delta uint64) bool {
	v := new(big.Int).SetUint64(delta)
	if a.Value.Cmp(v) < 0 {
		return false
	}
	a.Value.Sub(&a.Value, v)
	return true
}

// Add adds delta to the counter or fails with OutOfRange.
func (a *Aggregator) Add(delta uint64) error {
	if !a.TryAdd(delta) {
		return errors.OutOfRange.WithFormat("counter exceeds bound: %v + %d > %v", &a.Value, delta, &a.Max)
	}
	return nil
}

// Sub subtracts delta from the counter or fails with OutOfRange.
func (a *Aggregator) Sub(delta uint64) error {
	if !a.TrySub(delta) {
		return errors.OutOfRange.WithFormat("counter underflow: %v < %d", &a.Value, delta)
	}
	return nil
}

// Read returns a copy of the counter's value. Reading the exact value
// forfeits the commutativity of subsequent deltas.
func (a *Aggregator) Read() *big.Int {
	return new(big.Int).Set(&a.Value)
}

// IsAtLeast returns true if the counter's value is at least v.
func (a *Aggregator) IsAtLeast(v uint64) bool {
	return a.Value.Cmp(new(big.Int).SetUint64(v)) >= 0
}
