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
	"gitlab.com/meridianledger/meridian/protocol"
)

// withdrawChecks selects which checks withdrawInternal applies.
type withdrawChecks struct {
	owner    *address.Address // nil skips the ownership check
	frozen   bool
	dispatch bool
}

func (b *Batch) withdrawInternal(store address.Address, amount uint64, checks withdrawChecks) (*FungibleAsset, error) {
	rec, err := b.getStore(store)
	if err != nil {
		return nil, err
	}

	if checks.owner != nil {
		ok, err := object.IsOwner(b.batch, store, *checks.owner)
		if err != nil {
			return nil, errors.UnknownError.Wrap(err)
		}
		if !ok {
			return nil, errors.Unauthorized.WithFormat("%v does not own store %v", *checks.owner, store)
		}
	}

	if checks.dispatch {
		err = b.assertNoHook(rec.Metadata, hookWithdraw)
		if err != nil {
			return nil, err
		}
	}

	if checks.frozen && rec.Frozen {
		return nil, errors.NotAllowed.WithFormat("store %v is frozen", store)
	}

	if amount == 0 {
		return Zero(rec.Metadata), nil
	}

	err = b.debit(store, rec, amount)
	if err != nil {
		return nil, err
	}

	b.publish(protocol.WithdrawEvent{Store: store, Metadata: rec.Metadata, Amount: amount})
	opWithdraw.Inc()
	return newAsset(rec.Metadata, amount), nil
}

// depositChecks selects which checks depositInternal applies.
type depositChecks struct {
	frozen   bool
	dispatch bool
}

func (b *Batch) depositInternal(store address.Address, fa *FungibleAsset, checks depositChecks) error {
	rec, err := b.getStore(store)
	if err != nil {
		return err
	}

	if checks.dispatch {
		err = b.assertNoHook(rec.Metadata, hookDeposit)
		if err != nil {
			return err
		}
	}

	if checks.frozen && rec.Frozen {
		return errors.NotAllowed.WithFormat("store %v is frozen", store)
	}

	if err := fa.live(); err != nil {
		return err
	}
	if fa.Metadata() != rec.Metadata {
		return errors.BadRequest.WithFormat("cannot deposit %v into a store of %v", fa.Metadata(), rec.Metadata)
	}

	amount, err := fa.Consume()
	if err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}

	err = b.credit(store, rec, amount)
	if err != nil {
		return err
	}

	b.publish(protocol.DepositEvent{Store: store, Metadata: rec.Metadata, Amount: amount})
	opDeposit.Inc()
	return nil
}

// Withdraw debits amount from the store and returns it in hand. The owner
// must own the store's object, the store must not be frozen, and the asset
// type must not have a withdraw hook; withdrawing from a dispatchable
// asset goes through DispatchWithdraw.
func (b *Batch) Withdraw(owner, store address.Address, amount uint64) (*FungibleAsset, error) {
	return b.withdrawInternal(store, amount, withdrawChecks{owner: &owner, frozen: true, dispatch: true})
}

// WithdrawWithRef debits amount from the store, bypassing the ownership and
// frozen checks. The ref must be bound to the store's asset type.
func (b *Batch) WithdrawWithRef(ref *TransferRef, store address.Address, amount uint64) (*FungibleAsset, error) {
	err := b.assertRefMatches(ref.metadata, store)
	if err != nil {
		return nil, err
	}
	return b.withdrawInternal(store, amount, withdrawChecks{})
}

// WithdrawWithPermission debits amount from the store on behalf of its
// owner, consuming that much from the permission token's budget.
func (b *Batch) WithdrawWithPermission(tok *PermissionToken, store address.Address, amount uint64) (*FungibleAsset, error) {
	rec, err := b.getStore(store)
	if err != nil {
		return nil, err
	}
	ok, err := object.IsOwner(b.batch, store, tok.owner)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if !ok {
		return nil, errors.Unauthorized.WithFormat("permission grantor %v does not own store %v", tok.owner, store)
	}
	if rec.Metadata != tok.metadata {
		return nil, errors.Unauthorized.WithFormat("permission token of %v does not cover %v", tok.metadata, rec.Metadata)
	}

	err = b.consumePermission(tok, amount)
	if err != nil {
		return nil, err
	}
	return b.withdrawInternal(store, amount, withdrawChecks{frozen: true, dispatch: true})
}

// Deposit credits the value into the store, consuming it. The store must
// not be frozen, the asset types must match, and the asset type must not
// have a deposit hook; depositing into a dispatchable asset goes through
// DispatchDeposit.
func (b *Batch) Deposit(store address.Address, fa *FungibleAsset) error {
	return b.depositInternal(store, fa, depositChecks{frozen: true, dispatch: true})
}

// DepositWithRef credits the value into the store, bypassing the frozen
// check. The ref must be bound to the store's asset type.
func (b *Batch) DepositWithRef(ref *TransferRef, store address.Address, fa *FungibleAsset) error {
	err := b.assertRefMatches(ref.metadata, store)
	if err != nil {
		return err
	}
	return b.depositInternal(store, fa, depositChecks{})
}

// TransferWithRef moves amount between stores, bypassing frozen checks on
// both sides.
func (b *Batch) TransferWithRef(ref *TransferRef, from, to address.Address, amount uint64) error {
	fa, err := b.WithdrawWithRef(ref, from, amount)
	if err != nil {
		return err
	}
	return b.DepositWithRef(ref, to, fa)
}

// Transfer moves amount from one store to another. If the asset type has
// dispatch hooks installed, the transfer routes through the dispatch-aware
// entry points; otherwise it composes the primitive withdraw and deposit.
func (b *Batch) Transfer(owner, from, to address.Address, amount uint64) error {
	rec, err := b.getStore(from)
	if err != nil {
		return err
	}

	dispatched, err := b.isDispatchable(rec.Metadata)
	if err != nil {
		return err
	}
	if dispatched {
		fa, err := b.DispatchWithdraw(owner, from, amount)
		if err != nil {
			return err
		}
		return b.DispatchDeposit(to, fa)
	}

	fa, err := b.Withdraw(owner, from, amount)
	if err != nil {
		return err
	}
	err = b.Deposit(to, fa)
	if err != nil {
		return err
	}
	opTransfer.Inc()
	return nil
}

// TransferAssertMinimumDeposit moves amount between stores and fails with
// Aborted unless the destination's balance grew by at least min. This is
// the safety net for transfers into dispatchable assets whose deposit hook
// may divert part of the value, such as a fee-taking token.
func (b *Batch) TransferAssertMinimumDeposit(owner, from, to address.Address, amount, min uint64) error {
	before, err := b.DerivedBalance(to)
	if err != nil {
		return err
	}
	err = b.Transfer(owner, from, to, amount)
	if err != nil {
		return err
	}
	after, err := b.DerivedBalance(to)
	if err != nil {
		return err
	}
	if after < before || after-before < min {
		return errors.Aborted.WithFormat("store %v received %d, want at least %d", to, after-before, min)
	}
	return nil
}

func (b *Batch) assertRefMatches(refMetadata, store address.Address) error {
	rec, err := b.getStore(store)
	if err != nil {
		return err
	}
	if rec.Metadata != refMetadata {
		return errors.BadRequest.WithFormat("ref of %v does not match store of %v", refMetadata, rec.Metadata)
	}
	return nil
}
