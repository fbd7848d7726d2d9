// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"math/big"

	"gitlab.com/meridianledger/meridian/internal/aggregator"
	"gitlab.com/meridianledger/meridian/pkg/errors"
)

// Supply is the plain total-issued counter of one asset type. All mints and
// burns of the asset serialize on this record.
type Supply struct {
	Current big.Int  `cbor:"1,keyasint"`
	Maximum *big.Int `cbor:"2,keyasint,omitempty"`
}

// Increase adds amount to the current supply. Increase is a no-op for zero.
func (s *Supply) Increase(amount uint64) error {
	if amount == 0 {
		return nil
	}
	v := new(big.Int).SetUint64(amount)
	v.Add(v, &s.Current)
	if s.Maximum != nil && v.Cmp(s.Maximum) > 0 {
		return errors.OutOfRange.WithFormat("supply %v plus %d exceeds maximum %v", &s.Current, amount, s.Maximum)
	}
	s.Current.Set(v)
	return nil
}

// Decrease subtracts amount from the current supply. Decrease is a no-op for
// zero.
func (s *Supply) Decrease(amount uint64) error {
	if amount == 0 {
		return nil
	}
	v := new(big.Int).SetUint64(amount)
	if s.Current.Cmp(v) < 0 {
		return errors.OutOfRange.WithFormat("supply underflow: %v < %d", &s.Current, amount)
	}
	s.Current.Sub(&s.Current, v)
	return nil
}

// ConcurrentSupply is the aggregated total-issued counter of one asset type.
// Mints and burns are commutative deltas on the counter and do not serialize
// against each other.
type ConcurrentSupply struct {
	Current aggregator.Aggregator `cbor:"1,keyasint"`
}

// NewConcurrentSupply returns an aggregated counter carrying the given
// current value and bound. A nil maximum maps to the unlimited bound.
func NewConcurrentSupply(current *big.Int, maximum *big.Int) *ConcurrentSupply {
	cs := new(ConcurrentSupply)
	if maximum == nil {
		maximum = aggregator.MaxUint128
	}
	cs.Current.Max.Set(maximum)
	if current != nil {
		cs.Current.Value.Set(current)
	}
	return cs
}

// Unlimited returns true if the counter's bound is the unlimited bound.
func (s *ConcurrentSupply) Unlimited() bool {
	return s.Current.Max.Cmp(aggregator.MaxUint128) == 0
}
