// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package fungible

import (
	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
	"gitlab.com/meridianledger/meridian/protocol"
)

// PermissionToken lets a delegate withdraw from the grantor's stores of one
// asset type, up to a pre-authorized budget. The budget is persistent; the
// token itself is the in-hand capability and cannot be constructed outside
// this package.
type PermissionToken struct {
	owner    address.Address
	delegate address.Address
	metadata address.Address
}

// Owner returns the grantor.
func (t *PermissionToken) Owner() address.Address { return t.owner }

// Delegate returns the authorized delegate.
func (t *PermissionToken) Delegate() address.Address { return t.delegate }

// Metadata returns the asset type the token covers.
func (t *PermissionToken) Metadata() address.Address { return t.metadata }

// permissionRecord is stored at the grantor's address and holds the
// remaining budget per delegate and asset type.
type permissionRecord struct {
	Entries []permissionEntry `cbor:"1,keyasint"`
}

type permissionEntry struct {
	Delegate  address.Address `cbor:"1,keyasint"`
	Metadata  address.Address `cbor:"2,keyasint"`
	Remaining uint64          `cbor:"3,keyasint"`
}

func (r *permissionRecord) find(delegate, metadata address.Address) *permissionEntry {
	for i := range r.Entries {
		e := &r.Entries[i]
		if e.Delegate == delegate && e.Metadata == metadata {
			return e
		}
	}
	return nil
}

func (r *permissionRecord) remove(delegate, metadata address.Address) {
	for i := range r.Entries {
		e := r.Entries[i]
		if e.Delegate == delegate && e.Metadata == metadata {
			r.Entries = append(r.Entries[:i], r.Entries[i+1:]...)
			return
		}
	}
}

func (b *Batch) getPermissions(owner address.Address) (*permissionRecord, error) {
	rec := new(permissionRecord)
	err := b.batch.GetValue(owner, kindPermission, rec)
	switch {
	case err == nil, errors.Is(err, errors.NotFound):
		return rec, nil
	default:
		return nil, errors.UnknownError.Wrap(err)
	}
}

// GrantPermission authorizes the delegate to withdraw up to amount of the
// asset type from the owner's stores. Granting again replaces the budget.
func (b *Batch) GrantPermission(owner, delegate, metadata address.Address, amount uint64) (*PermissionToken, error) {
	ok, err := b.AssetExists(metadata)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if !ok {
		return nil, errors.NotFound.WithFormat("fungible asset %v not found", metadata)
	}

	rec, err := b.getPermissions(owner)
	if err != nil {
		return nil, err
	}
	if e := rec.find(delegate, metadata); e != nil {
		e.Remaining = amount
	} else {
		rec.Entries = append(rec.Entries, permissionEntry{Delegate: delegate, Metadata: metadata, Remaining: amount})
	}
	err = b.batch.PutValue(owner, kindPermission, rec)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return &PermissionToken{owner: owner, delegate: delegate, metadata: metadata}, nil
}

// GrantNativeAssetPermission authorizes the delegate for the native gas
// asset.
func (b *Batch) GrantNativeAssetPermission(owner, delegate address.Address, amount uint64) (*PermissionToken, error) {
	return b.GrantPermission(owner, delegate, protocol.NativeAssetAddress, amount)
}

// RevokePermission removes the delegate's budget for the asset type.
func (b *Batch) RevokePermission(owner, delegate, metadata address.Address) error {
	rec, err := b.getPermissions(owner)
	if err != nil {
		return err
	}
	rec.remove(delegate, metadata)
	return b.batch.PutValue(owner, kindPermission, rec)
}

// RefillPermission adds amount to the token's remaining budget.
func (b *Batch) RefillPermission(tok *PermissionToken, amount uint64) error {
	rec, err := b.getPermissions(tok.owner)
	if err != nil {
		return err
	}
	e := rec.find(tok.delegate, tok.metadata)
	if e == nil {
		return errors.Unauthorized.WithFormat("%v has no permission for %v", tok.delegate, tok.metadata)
	}
	sum := e.Remaining + amount
	if sum < e.Remaining {
		return errors.OutOfRange.With("permission budget overflow")
	}
	e.Remaining = sum
	return b.batch.PutValue(tok.owner, kindPermission, rec)
}

// RemainingPermission returns the token's remaining budget.
func (b *Batch) RemainingPermission(tok *PermissionToken) (uint64, error) {
	rec, err := b.getPermissions(tok.owner)
	if err != nil {
		return 0, err
	}
	e := rec.find(tok.delegate, tok.metadata)
	if e == nil {
		return 0, nil
	}
	return e.Remaining, nil
}

// consumePermission checks the token authorizes at least amount and
// consumes that much from its budget.
func (b *Batch) consumePermission(tok *PermissionToken, amount uint64) error {
	rec, err := b.getPermissions(tok.owner)
	if err != nil {
		return err
	}
	e := rec.find(tok.delegate, tok.metadata)
	if e == nil || e.Remaining < amount {
		var have uint64
		if e != nil {
			have = e.Remaining
		}
		return errors.Unauthorized.WithFormat("%v is authorized for %d of %v, want %d", tok.delegate, have, tok.metadata, amount)
	}
	e.Remaining -= amount
	return b.batch.PutValue(tok.owner, kindPermission, rec)
}
