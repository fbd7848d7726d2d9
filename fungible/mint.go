// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package fungible

import (
	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

// Mint issues amount of the asset type and returns it in hand.
func (b *Batch) Mint(ref *MintRef, amount uint64) (*FungibleAsset, error) {
	if amount == 0 {
		return Zero(ref.metadata), nil
	}
	err := b.increaseSupply(ref.metadata, amount)
	if err != nil {
		return nil, err
	}
	opMint.Inc()
	return newAsset(ref.metadata, amount), nil
}

// MintTo issues amount of the asset type directly into a store. The deposit
// bypasses the dispatch-conflict check (the minter is trusted to not need
// the hook) but a frozen store still rejects it.
func (b *Batch) MintTo(ref *MintRef, store address.Address, amount uint64) error {
	fa, err := b.Mint(ref, amount)
	if err != nil {
		return err
	}
	return b.depositInternal(store, fa, depositChecks{frozen: true})
}

// Burn destroys the value, consuming it and decreasing the supply. The ref
// must be bound to the value's asset type.
func (b *Batch) Burn(ref *BurnRef, fa *FungibleAsset) error {
	if err := fa.live(); err != nil {
		return err
	}
	if fa.Metadata() != ref.metadata {
		return errors.BadRequest.WithFormat("burn ref of %v does not match value of %v", ref.metadata, fa.Metadata())
	}

	amount, err := fa.Consume()
	if err != nil {
		return err
	}
	err = b.decreaseSupply(ref.metadata, amount)
	if err != nil {
		return err
	}
	opBurn.Inc()
	return nil
}

// BurnFrom withdraws amount from the store with the ref's authority,
// bypassing the ownership, frozen, and dispatch checks, and burns it.
func (b *Batch) BurnFrom(ref *BurnRef, store address.Address, amount uint64) error {
	err := b.assertRefMatches(ref.metadata, store)
	if err != nil {
		return err
	}
	fa, err := b.withdrawInternal(store, amount, withdrawChecks{})
	if err != nil {
		return err
	}
	return b.Burn(ref, fa)
}
