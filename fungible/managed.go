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

// managedRecord marks an asset type whose capabilities are held by the
// ledger itself instead of by in-hand refs. The owner of the metadata
// object is the asset's administrator.
type managedRecord struct {
	Mint     bool `cbor:"1,keyasint,omitempty"`
	Transfer bool `cbor:"2,keyasint,omitempty"`
	Burn     bool `cbor:"3,keyasint,omitempty"`
}

// InitManaged stores the asset type's capabilities in the ledger, bound to
// whoever owns the metadata object. This is what lets long-running tools
// mint, burn and freeze across process restarts, since refs themselves
// never leave the process that generated them. It only works within the
// batch that created the asset and is irreversible.
func (b *Batch) InitManaged(ref *MetadataRef, mint, transfer, burn bool) error {
	ok, err := b.batch.HasValue(ref.addr, kindManaged)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if ok {
		return errors.Conflict.WithFormat("fungible asset %v is already managed", ref.addr)
	}
	rec := &managedRecord{Mint: mint, Transfer: transfer, Burn: burn}
	return b.batch.PutValue(ref.addr, kindManaged, rec)
}

// IsManaged returns true if the asset type's capabilities are held by the
// ledger.
func (b *Batch) IsManaged(metadata address.Address) (bool, error) {
	return b.batch.HasValue(metadata, kindManaged)
}

// managedAuthority checks that the admin owns the metadata object and that
// the asset is managed, then returns the stored capability set.
func (b *Batch) managedAuthority(admin, metadata address.Address) (*managedRecord, error) {
	rec := new(managedRecord)
	err := b.batch.GetValue(metadata, kindManaged, rec)
	switch {
	case err == nil:
		// Ok
	case errors.Is(err, errors.NotFound):
		return nil, errors.NotFound.WithFormat("fungible asset %v is not managed", metadata)
	default:
		return nil, errors.UnknownError.Wrap(err)
	}

	ok, err := object.IsOwner(b.batch, metadata, admin)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if !ok {
		return nil, errors.Unauthorized.WithFormat("%v is not the administrator of %v", admin, metadata)
	}
	return rec, nil
}

// ManagedMint mints amount of the managed asset into the store. The caller
// must own the asset's metadata object.
func (b *Batch) ManagedMint(admin, metadata, store address.Address, amount uint64) error {
	rec, err := b.managedAuthority(admin, metadata)
	if err != nil {
		return err
	}
	if !rec.Mint {
		return errors.NotAllowed.WithFormat("fungible asset %v does not retain the mint capability", metadata)
	}
	return b.MintTo(&MintRef{metadata: metadata}, store, amount)
}

// ManagedBurn burns amount of the managed asset from the store.
func (b *Batch) ManagedBurn(admin, metadata, store address.Address, amount uint64) error {
	rec, err := b.managedAuthority(admin, metadata)
	if err != nil {
		return err
	}
	if !rec.Burn {
		return errors.NotAllowed.WithFormat("fungible asset %v does not retain the burn capability", metadata)
	}
	return b.BurnFrom(&BurnRef{metadata: metadata}, store, amount)
}

// ManagedSetFrozen freezes or unfreezes a store of the managed asset.
func (b *Batch) ManagedSetFrozen(admin, metadata, store address.Address, frozen bool) error {
	rec, err := b.managedAuthority(admin, metadata)
	if err != nil {
		return err
	}
	if !rec.Transfer {
		return errors.NotAllowed.WithFormat("fungible asset %v does not retain the transfer capability", metadata)
	}
	return b.SetFrozen(&TransferRef{metadata: metadata}, store, frozen)
}

// ManagedForceTransfer moves amount between stores of the managed asset,
// ignoring frozen marks.
func (b *Batch) ManagedForceTransfer(admin, metadata, from, to address.Address, amount uint64) error {
	rec, err := b.managedAuthority(admin, metadata)
	if err != nil {
		return err
	}
	if !rec.Transfer {
		return errors.NotAllowed.WithFormat("fungible asset %v does not retain the transfer capability", metadata)
	}
	return b.TransferWithRef(&TransferRef{metadata: metadata}, from, to, amount)
}
