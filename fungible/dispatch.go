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

// hookSlot identifies one of the three override slots of an asset type.
type hookSlot int

const (
	hookWithdraw hookSlot = iota + 1
	hookDeposit
	hookDeriveBalance
)

// RegisterDispatch installs withdraw, deposit, and derive-balance overrides
// for the asset type. Each named function's shape was declared when it was
// published; registration verifies the shape once, and per-call dispatch is
// an unchecked lookup. A type's dispatch record is installed at most once
// and never modified. The native gas asset and deletable objects are
// excluded.
func (b *Batch) RegisterDispatch(ref *MetadataRef, withdraw, deposit, deriveBalance *protocol.FunctionInfo) error {
	err := b.registerPreflight(ref)
	if err != nil {
		return err
	}

	ok, err := b.batch.HasValue(ref.addr, kindDispatch)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if ok {
		return errors.Conflict.WithFormat("dispatch functions of %v are already registered", ref.addr)
	}

	for _, c := range []struct {
		fi   *protocol.FunctionInfo
		kind HookKind
	}{
		{withdraw, KindWithdraw},
		{deposit, KindDeposit},
		{deriveBalance, KindDeriveBalance},
	} {
		if c.fi == nil {
			continue
		}
		err = b.ledger.hooks.Verify(*c.fi, c.kind)
		if err != nil {
			return errors.UnknownError.Wrap(err)
		}
	}

	rec := &protocol.DispatchFunctions{Withdraw: withdraw, Deposit: deposit, DeriveBalance: deriveBalance}
	err = b.batch.PutValue(ref.addr, kindDispatch, rec)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	b.ledger.logger.Info("Registered dispatch functions", "metadata", ref.addr)
	return nil
}

// RegisterDeriveSupply installs a supply-derivation override for the asset
// type. The record is independent of the three-slot dispatch record but has
// the same preconditions.
func (b *Batch) RegisterDeriveSupply(ref *MetadataRef, fn protocol.FunctionInfo) error {
	err := b.registerPreflight(ref)
	if err != nil {
		return err
	}

	ok, err := b.batch.HasValue(ref.addr, kindDeriveSupply)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if ok {
		return errors.Conflict.WithFormat("derive-supply function of %v is already registered", ref.addr)
	}

	err = b.ledger.hooks.Verify(fn, KindDeriveSupply)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	return b.batch.PutValue(ref.addr, kindDeriveSupply, &protocol.DeriveSupply{Function: &fn})
}

func (b *Batch) registerPreflight(ref *MetadataRef) error {
	if !b.ledger.features.Dispatchable {
		return errors.NotActivated.With("dispatchable fungible assets are not enabled")
	}
	if ref.addr == protocol.NativeAssetAddress {
		return errors.NotAllowed.With("the native asset is not dispatchable")
	}
	if ref.deletable {
		return errors.BadRequest.WithFormat("object %v is deletable; dispatchable assets must be permanent", ref.addr)
	}
	return nil
}

func (b *Batch) getDispatch(metadata address.Address) (*protocol.DispatchFunctions, bool, error) {
	rec := new(protocol.DispatchFunctions)
	err := b.batch.GetValue(metadata, kindDispatch, rec)
	switch {
	case err == nil:
		return rec, true, nil
	case errors.Is(err, errors.NotFound):
		return nil, false, nil
	default:
		return nil, false, errors.UnknownError.Wrap(err)
	}
}

func (b *Batch) isDispatchable(metadata address.Address) (bool, error) {
	return b.batch.HasValue(metadata, kindDispatch)
}

// IsStoreDispatchable returns true if the store's asset type has dispatch
// hooks installed.
func (b *Batch) IsStoreDispatchable(store address.Address) (bool, error) {
	rec, err := b.getStore(store)
	if err != nil {
		return false, err
	}
	return b.isDispatchable(rec.Metadata)
}

// assertNoHook fails if the asset type has an override for the slot. The
// primitive paths refuse to touch dispatchable assets so a hook cannot be
// sidestepped.
func (b *Batch) assertNoHook(metadata address.Address, slot hookSlot) error {
	rec, ok, err := b.getDispatch(metadata)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	var fi *protocol.FunctionInfo
	switch slot {
	case hookWithdraw:
		fi = rec.Withdraw
	case hookDeposit:
		fi = rec.Deposit
	case hookDeriveBalance:
		fi = rec.DeriveBalance
	}
	if fi != nil {
		return errors.Conflict.WithFormat("asset %v has a dispatch override; use the dispatch-aware entry point", metadata)
	}
	return nil
}

// DispatchWithdraw withdraws through the asset type's withdraw hook. The
// ownership and frozen checks still apply before the hook runs, and the
// store's raw balance must decrease by exactly the requested amount, so a
// hook that short-changes the withdrawal aborts it.
func (b *Batch) DispatchWithdraw(owner, store address.Address, amount uint64) (*FungibleAsset, error) {
	if !b.ledger.features.Dispatchable {
		return nil, errors.NotActivated.With("dispatchable fungible assets are not enabled")
	}

	rec, err := b.getStore(store)
	if err != nil {
		return nil, err
	}
	dispatch, ok, err := b.getDispatch(rec.Metadata)
	if err != nil {
		return nil, err
	}
	if !ok || dispatch.Withdraw == nil {
		return b.Withdraw(owner, store, amount)
	}

	isOwner, err := object.IsOwner(b.batch, store, owner)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if !isOwner {
		return nil, errors.Unauthorized.WithFormat("%v does not own store %v", owner, store)
	}
	if rec.Frozen {
		return nil, errors.NotAllowed.WithFormat("store %v is frozen", store)
	}

	fn, err := b.ledger.hooks.resolveWithdraw(*dispatch.Withdraw)
	if err != nil {
		return nil, err
	}

	before, err := b.Balance(store)
	if err != nil {
		return nil, err
	}

	ref := &TransferRef{metadata: rec.Metadata}
	fa, err := fn(b, owner, store, amount, ref)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if err := fa.live(); err != nil {
		return nil, err
	}
	if fa.Metadata() != rec.Metadata {
		return nil, errors.Aborted.WithFormat("withdraw hook of %v returned a value of %v", rec.Metadata, fa.Metadata())
	}

	after, err := b.Balance(store)
	if err != nil {
		return nil, err
	}
	if before < after || before-after != amount {
		return nil, errors.Aborted.WithFormat("withdraw hook of %v moved %d, want %d", rec.Metadata, before-after, amount)
	}
	return fa, nil
}

// DispatchDeposit deposits through the asset type's deposit hook. The
// frozen and metadata checks still apply before the hook runs, and the
// store's raw balance must increase by exactly the value's amount.
func (b *Batch) DispatchDeposit(store address.Address, fa *FungibleAsset) error {
	if !b.ledger.features.Dispatchable {
		return errors.NotActivated.With("dispatchable fungible assets are not enabled")
	}

	rec, err := b.getStore(store)
	if err != nil {
		return err
	}
	dispatch, ok, err := b.getDispatch(rec.Metadata)
	if err != nil {
		return err
	}
	if !ok || dispatch.Deposit == nil {
		return b.Deposit(store, fa)
	}

	if rec.Frozen {
		return errors.NotAllowed.WithFormat("store %v is frozen", store)
	}
	if err := fa.live(); err != nil {
		return err
	}
	if fa.Metadata() != rec.Metadata {
		return errors.BadRequest.WithFormat("cannot deposit %v into a store of %v", fa.Metadata(), rec.Metadata)
	}
	amount := fa.Amount()

	fn, err := b.ledger.hooks.resolveDeposit(*dispatch.Deposit)
	if err != nil {
		return err
	}

	before, err := b.Balance(store)
	if err != nil {
		return err
	}

	ref := &TransferRef{metadata: rec.Metadata}
	err = fn(b, store, fa, ref)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	if !fa.consumed {
		return errors.Aborted.WithFormat("deposit hook of %v did not consume the value", rec.Metadata)
	}

	after, err := b.Balance(store)
	if err != nil {
		return err
	}
	if after < before || after-before != amount {
		return errors.Aborted.WithFormat("deposit hook of %v moved %d, want %d", rec.Metadata, after-before, amount)
	}
	return nil
}

// DerivedBalance returns the store's balance as derived by the asset
// type's derive-balance hook, or the raw balance if no hook is installed.
func (b *Batch) DerivedBalance(store address.Address) (uint64, error) {
	rec := new(protocol.FungibleStore)
	err := b.batch.GetValue(store, kindStore, rec)
	switch {
	case errors.Is(err, errors.NotFound):
		return 0, nil
	case err != nil:
		return 0, errors.UnknownError.Wrap(err)
	}

	dispatch, ok, err := b.getDispatch(rec.Metadata)
	if err != nil {
		return 0, err
	}
	if !ok || dispatch.DeriveBalance == nil {
		return b.Balance(store)
	}
	if !b.ledger.features.Dispatchable {
		return 0, errors.NotActivated.With("dispatchable fungible assets are not enabled")
	}

	fn, err := b.ledger.hooks.resolveDeriveBalance(*dispatch.DeriveBalance)
	if err != nil {
		return 0, err
	}
	v, err := fn(b, store)
	return v, errors.UnknownError.Wrap(err)
}

// DerivedSupply returns the asset type's supply as derived by its
// derive-supply hook, or the raw supply if no hook is installed.
func (b *Batch) DerivedSupply(metadata address.Address) (*big.Int, bool, error) {
	rec := new(protocol.DeriveSupply)
	err := b.batch.GetValue(metadata, kindDeriveSupply, rec)
	switch {
	case errors.Is(err, errors.NotFound):
		return b.Supply(metadata)
	case err != nil:
		return nil, false, errors.UnknownError.Wrap(err)
	}
	if !b.ledger.features.Dispatchable {
		return nil, false, errors.NotActivated.With("dispatchable fungible assets are not enabled")
	}

	fn, err := b.ledger.hooks.resolveDeriveSupply(*rec.Function)
	if err != nil {
		return nil, false, err
	}
	v, err := fn(b, metadata)
	if err != nil {
		return nil, false, errors.UnknownError.Wrap(err)
	}
	return v, true, nil
}
