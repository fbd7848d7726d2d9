// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package fungible

import (
	"math/big"

	"gitlab.com/meridianledger/meridian/object"
	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
	"gitlab.com/meridianledger/meridian/protocol"
)

// Supply returns the asset type's current supply. The second return is
// false if the asset predates supply tracking, which is treated as
// untracked rather than an error.
func (b *Batch) Supply(metadata address.Address) (*big.Int, bool, error) {
	cs := new(protocol.ConcurrentSupply)
	err := b.batch.GetValue(metadata, kindConcurrentSupply, cs)
	switch {
	case err == nil:
		return cs.Current.Read(), true, nil
	case !errors.Is(err, errors.NotFound):
		return nil, false, errors.UnknownError.Wrap(err)
	}

	s := new(protocol.Supply)
	err = b.batch.GetValue(metadata, kindSupply, s)
	switch {
	case err == nil:
		return new(big.Int).Set(&s.Current), true, nil
	case errors.Is(err, errors.NotFound):
		return nil, false, nil
	default:
		return nil, false, errors.UnknownError.Wrap(err)
	}
}

// MaximumSupply returns the asset type's maximum supply, or (nil, false) if
// the supply is unlimited.
func (b *Batch) MaximumSupply(metadata address.Address) (*big.Int, bool, error) {
	cs := new(protocol.ConcurrentSupply)
	err := b.batch.GetValue(metadata, kindConcurrentSupply, cs)
	switch {
	case err == nil:
		if cs.Unlimited() {
			return nil, false, nil
		}
		return new(big.Int).Set(&cs.Current.Max), true, nil
	case !errors.Is(err, errors.NotFound):
		return nil, false, errors.UnknownError.Wrap(err)
	}

	s := new(protocol.Supply)
	err = b.batch.GetValue(metadata, kindSupply, s)
	switch {
	case err == nil:
		if s.Maximum == nil {
			return nil, false, nil
		}
		return new(big.Int).Set(s.Maximum), true, nil
	case errors.Is(err, errors.NotFound):
		return nil, false, nil
	default:
		return nil, false, errors.UnknownError.Wrap(err)
	}
}

// increaseSupply adds amount to the asset type's supply counter. An asset
// with no supply record is left alone; absence means supply tracking
// predates the asset and is treated as unlimited.
func (b *Batch) increaseSupply(metadata address.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}

	cs := new(protocol.ConcurrentSupply)
	err := b.batch.GetValue(metadata, kindConcurrentSupply, cs)
	switch {
	case err == nil:
		if !cs.Current.TryAdd(amount) {
			return errors.OutOfRange.WithFormat("supply %v plus %d exceeds maximum %v", &cs.Current.Value, amount, &cs.Current.Max)
		}
		return b.batch.PutValue(metadata, kindConcurrentSupply, cs)
	case !errors.Is(err, errors.NotFound):
		return errors.UnknownError.Wrap(err)
	}

	s := new(protocol.Supply)
	err = b.batch.GetValue(metadata, kindSupply, s)
	switch {
	case err == nil:
		err = s.Increase(amount)
		if err != nil {
			return errors.UnknownError.Wrap(err)
		}
		return b.batch.PutValue(metadata, kindSupply, s)
	case errors.Is(err, errors.NotFound):
		return nil
	default:
		return errors.UnknownError.Wrap(err)
	}
}

// decreaseSupply subtracts amount from the asset type's supply counter.
func (b *Batch) decreaseSupply(metadata address.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}

	cs := new(protocol.ConcurrentSupply)
	err := b.batch.GetValue(metadata, kindConcurrentSupply, cs)
	switch {
	case err == nil:
		if !cs.Current.TrySub(amount) {
			return errors.OutOfRange.WithFormat("supply underflow: %v < %d", &cs.Current.Value, amount)
		}
		return b.batch.PutValue(metadata, kindConcurrentSupply, cs)
	case !errors.Is(err, errors.NotFound):
		return errors.UnknownError.Wrap(err)
	}

	s := new(protocol.Supply)
	err = b.batch.GetValue(metadata, kindSupply, s)
	switch {
	case err == nil:
		err = s.Decrease(amount)
		if err != nil {
			return errors.UnknownError.Wrap(err)
		}
		return b.batch.PutValue(metadata, kindSupply, s)
	case errors.Is(err, errors.NotFound):
		return nil
	default:
		return errors.UnknownError.Wrap(err)
	}
}

// MigrateSupplyToConcurrent converts the asset type's supply from the plain
// to the aggregated representation, preserving the current value and
// maximum. The conversion is one-way and fails if the plain record no
// longer exists, such as after a previous migration.
func (b *Batch) MigrateSupplyToConcurrent(ref *object.ExtendRef) error {
	if !b.ledger.features.ConcurrentSupply {
		return errors.NotActivated.With("concurrent supply is not enabled")
	}

	metadata := ref.Address()
	s := new(protocol.Supply)
	err := b.batch.GetValue(metadata, kindSupply, s)
	switch {
	case err == nil:
		// Ok
	case errors.Is(err, errors.NotFound):
		return errors.NotFound.WithFormat("plain supply record of %v not found", metadata)
	default:
		return errors.UnknownError.Wrap(err)
	}

	cs := protocol.NewConcurrentSupply(&s.Current, s.Maximum)
	err = b.batch.PutValue(metadata, kindConcurrentSupply, cs)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	err = b.batch.DeleteValue(metadata, kindSupply)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	b.ledger.logger.Info("Migrated supply to concurrent", "metadata", metadata)
	return nil
}
