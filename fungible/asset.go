// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package fungible

import (
	"fmt"

	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

// FungibleAsset is an amount of one asset type in hand. It is never stored;
// it exists only in transit between a withdraw or mint and a deposit, burn,
// or merge. Each value must be consumed exactly once: the only legal ways to
// dispose of one are Deposit, Burn, Merge, and DestroyZero. Values cannot be
// constructed outside this package except via Zero.
type FungibleAsset struct {
	metadata address.Address
	amount   uint64
	consumed bool
}

func newAsset(metadata address.Address, amount uint64) *FungibleAsset {
	return &FungibleAsset{metadata: metadata, amount: amount}
}

// Zero returns a zero-amount value of the given asset type, a safe starting
// accumulator for Merge.
func Zero(metadata address.Address) *FungibleAsset {
	return newAsset(metadata, 0)
}

// Metadata returns the asset type of the value.
func (fa *FungibleAsset) Metadata() address.Address { return fa.metadata }

// Amount returns the amount of the value.
func (fa *FungibleAsset) Amount() uint64 { return fa.amount }

func (fa *FungibleAsset) String() string {
	return fmt.Sprintf("%d of %v", fa.amount, fa.metadata)
}

func (fa *FungibleAsset) live() error {
	if fa == nil {
		return errors.BadRequest.With("nil asset value")
	}
	if fa.consumed {
		return errors.InternalError.With("asset value used after being consumed")
	}
	return nil
}

// Consume marks the value consumed and returns its amount. Consume is for
// value sinks, deposit-like operations that absorb the value into a store
// or counter. Consuming twice fails.
func (fa *FungibleAsset) Consume() (uint64, error) {
	if err := fa.live(); err != nil {
		return 0, err
	}
	fa.consumed = true
	return fa.amount, nil
}

// Extract removes amount from the value and returns it as a new value of
// the same asset type.
func (fa *FungibleAsset) Extract(amount uint64) (*FungibleAsset, error) {
	if err := fa.live(); err != nil {
		return nil, err
	}
	if fa.amount < amount {
		return nil, errors.InsufficientBalance.WithFormat("asset value holds %d, want %d", fa.amount, amount)
	}
	fa.amount -= amount
	return newAsset(fa.metadata, amount), nil
}

// Merge absorbs src into the value, consuming src. The asset types must
// match.
func (fa *FungibleAsset) Merge(src *FungibleAsset) error {
	if err := fa.live(); err != nil {
		return err
	}
	if err := src.live(); err != nil {
		return err
	}
	if fa.metadata != src.metadata {
		return errors.BadRequest.WithFormat("cannot merge %v into %v: asset type mismatch", src.metadata, fa.metadata)
	}
	sum := fa.amount + src.amount
	if sum < fa.amount {
		return errors.OutOfRange.WithFormat("merge overflows: %d + %d", fa.amount, src.amount)
	}
	src.consumed = true
	fa.amount = sum
	return nil
}

// DestroyZero consumes a zero-amount value. Destroying a non-zero value is
// an error: value must never be silently dropped.
func (fa *FungibleAsset) DestroyZero() error {
	if err := fa.live(); err != nil {
		return err
	}
	if fa.amount != 0 {
		return errors.BadRequest.WithFormat("cannot destroy asset value holding %d", fa.amount)
	}
	fa.consumed = true
	return nil
}
