// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package fungible

import (
	"gitlab.com/meridianledger/meridian/object"
	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

// primarySeed derives the seed for an account's primary store of an asset
// type.
func primarySeed(metadata address.Address) []byte {
	return append([]byte("primary/"), metadata[:]...)
}

// PrimaryStoreAddress returns the deterministic address of the owner's
// primary store for the asset type. The store may not exist yet.
func PrimaryStoreAddress(owner, metadata address.Address) address.Address {
	return address.Derive(owner, primarySeed(metadata))
}

// EnsurePrimaryStore returns the owner's primary store for the asset type,
// creating it if it does not exist.
func (b *Batch) EnsurePrimaryStore(owner, metadata address.Address) (address.Address, error) {
	store := PrimaryStoreAddress(owner, metadata)
	ok, err := b.StoreExists(store)
	if err != nil {
		return address.Zero, errors.UnknownError.Wrap(err)
	}
	if ok {
		return store, nil
	}

	cref, err := object.CreateAt(b.batch, store, owner)
	if err != nil {
		return address.Zero, errors.UnknownError.Wrap(err)
	}
	_, err = b.CreateStore(cref, metadata)
	if err != nil {
		return address.Zero, errors.UnknownError.Wrap(err)
	}
	return store, nil
}

// PrimaryBalance returns the balance of the owner's primary store, or zero
// if it does not exist.
func (b *Batch) PrimaryBalance(owner, metadata address.Address) (uint64, error) {
	return b.Balance(PrimaryStoreAddress(owner, metadata))
}

// PrimaryWithdraw withdraws from the owner's primary store.
func (b *Batch) PrimaryWithdraw(owner, metadata address.Address, amount uint64) (*FungibleAsset, error) {
	return b.Withdraw(owner, PrimaryStoreAddress(owner, metadata), amount)
}

// PrimaryDeposit deposits into the recipient's primary store, creating it
// if necessary.
func (b *Batch) PrimaryDeposit(to address.Address, fa *FungibleAsset) error {
	if err := fa.live(); err != nil {
		return err
	}
	store, err := b.EnsurePrimaryStore(to, fa.metadata)
	if err != nil {
		return err
	}
	return b.Deposit(store, fa)
}

// PrimaryTransfer moves amount of the asset type between primary stores,
// creating the recipient's store if necessary.
func (b *Batch) PrimaryTransfer(owner, to, metadata address.Address, amount uint64) error {
	from := PrimaryStoreAddress(owner, metadata)
	dest, err := b.EnsurePrimaryStore(to, metadata)
	if err != nil {
		return err
	}
	return b.Transfer(owner, from, dest, amount)
}
