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

// CreateStore creates a balance store for the given asset type on the
// object identified by the constructor ref. If the asset type is marked
// untransferable-stores, the store's object is made untransferable so the
// store cannot escape a freeze by changing owners.
func (b *Batch) CreateStore(cref *object.ConstructorRef, metadata address.Address) (address.Address, error) {
	ok, err := b.AssetExists(metadata)
	if err != nil {
		return address.Zero, errors.UnknownError.Wrap(err)
	}
	if !ok {
		return address.Zero, errors.NotFound.WithFormat("fungible asset %v not found", metadata)
	}

	addr := cref.Address()
	ok, err = b.batch.HasValue(addr, kindStore)
	if err != nil {
		return address.Zero, errors.UnknownError.Wrap(err)
	}
	if ok {
		return address.Zero, errors.Conflict.WithFormat("object %v already has a store", addr)
	}

	err = b.batch.PutValue(addr, kindStore, &protocol.FungibleStore{Metadata: metadata})
	if err != nil {
		return address.Zero, errors.UnknownError.Wrap(err)
	}

	// New stores default to the aggregated balance when the feature is on
	if b.ledger.features.ConcurrentBalance {
		err = b.batch.PutValue(addr, kindConcurrentBalance, protocol.NewConcurrentBalance())
		if err != nil {
			return address.Zero, errors.UnknownError.Wrap(err)
		}
	}

	untransferable, err := b.storesUntransferable(metadata)
	if err != nil {
		return address.Zero, errors.UnknownError.Wrap(err)
	}
	if untransferable {
		err = object.SetUntransferable(b.batch, cref)
		if err != nil {
			return address.Zero, errors.UnknownError.Wrap(err)
		}
	}

	b.ledger.logger.Debug("Created store", "store", addr, "metadata", metadata)
	return addr, nil
}

// RemoveStore deletes a store and its object. It fails unless the balance,
// including any aggregated companion, is exactly zero.
func (b *Batch) RemoveStore(dref *object.DeleteRef) error {
	addr := dref.Address()
	store, err := b.getStore(addr)
	if err != nil {
		return err
	}
	if store.Balance != 0 {
		return errors.BadRequest.WithFormat("store %v balance is not zero", addr)
	}

	cb, ok, err := b.getConcurrentBalance(addr)
	if err != nil {
		return err
	}
	if ok {
		if cb.Balance.Read().Sign() != 0 {
			return errors.BadRequest.WithFormat("store %v balance is not zero", addr)
		}
		err = b.batch.DeleteValue(addr, kindConcurrentBalance)
		if err != nil {
			return errors.UnknownError.Wrap(err)
		}
	}

	err = b.batch.DeleteValue(addr, kindStore)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	return object.Delete(b.batch, dref)
}

func (b *Batch) getStore(store address.Address) (*protocol.FungibleStore, error) {
	rec := new(protocol.FungibleStore)
	err := b.batch.GetValue(store, kindStore, rec)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return rec, nil
}

func (b *Batch) getConcurrentBalance(store address.Address) (*protocol.ConcurrentBalance, bool, error) {
	cb := new(protocol.ConcurrentBalance)
	err := b.batch.GetValue(store, kindConcurrentBalance, cb)
	switch {
	case err == nil:
		return cb, true, nil
	case errors.Is(err, errors.NotFound):
		return nil, false, nil
	default:
		return nil, false, errors.UnknownError.Wrap(err)
	}
}

// StoreExists returns true if a store exists at the address.
func (b *Batch) StoreExists(store address.Address) (bool, error) {
	return b.batch.HasValue(store, kindStore)
}

// StoreMetadata returns the asset type of the store.
func (b *Batch) StoreMetadata(store address.Address) (address.Address, error) {
	rec, err := b.getStore(store)
	if err != nil {
		return address.Zero, err
	}
	return rec.Metadata, nil
}

// Balance returns the store's balance. A missing store reads as zero, so
// deposits can target accounts that do not exist yet.
func (b *Batch) Balance(store address.Address) (uint64, error) {
	rec := new(protocol.FungibleStore)
	err := b.batch.GetValue(store, kindStore, rec)
	switch {
	case errors.Is(err, errors.NotFound):
		return 0, nil
	case err != nil:
		return 0, errors.UnknownError.Wrap(err)
	}

	// The aggregated companion wins once the plain field is zero
	if rec.Balance == 0 {
		cb, ok, err := b.getConcurrentBalance(store)
		if err != nil {
			return 0, err
		}
		if ok {
			return cb.Balance.Read().Uint64(), nil
		}
	}
	return rec.Balance, nil
}

// IsBalanceAtLeast returns true if the store's balance is at least amount.
func (b *Batch) IsBalanceAtLeast(store address.Address, amount uint64) (bool, error) {
	balance, err := b.Balance(store)
	if err != nil {
		return false, err
	}
	return balance >= amount, nil
}

// IsFrozen returns the store's frozen flag. A missing store is not frozen.
func (b *Batch) IsFrozen(store address.Address) (bool, error) {
	rec := new(protocol.FungibleStore)
	err := b.batch.GetValue(store, kindStore, rec)
	switch {
	case errors.Is(err, errors.NotFound):
		return false, nil
	case err != nil:
		return false, errors.UnknownError.Wrap(err)
	}
	return rec.Frozen, nil
}

// SetFrozen sets the store's frozen flag. The ref must be bound to the
// store's asset type.
func (b *Batch) SetFrozen(ref *TransferRef, store address.Address, frozen bool) error {
	rec, err := b.getStore(store)
	if err != nil {
		return err
	}
	if rec.Metadata != ref.metadata {
		return errors.BadRequest.WithFormat("transfer ref of %v does not match store of %v", ref.metadata, rec.Metadata)
	}

	rec.Frozen = frozen
	err = b.batch.PutValue(store, kindStore, rec)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	b.publish(protocol.FrozenEvent{Store: store, Metadata: rec.Metadata, Frozen: frozen})
	return nil
}

// EnsureConcurrentBalance migrates a store to the aggregated balance
// representation. The plain balance carries over into the aggregator, so
// the hand-off is observable immediately instead of waiting for the plain
// field's first zero-crossing. Idempotent.
func (b *Batch) EnsureConcurrentBalance(ref *object.ExtendRef) error {
	if !b.ledger.features.ConcurrentBalance {
		return errors.NotActivated.With("concurrent balances are not enabled")
	}

	addr := ref.Address()
	rec, err := b.getStore(addr)
	if err != nil {
		return err
	}

	cb, ok, err := b.getConcurrentBalance(addr)
	if err != nil {
		return err
	}
	if ok && rec.Balance == 0 {
		return nil
	}
	if !ok {
		cb = protocol.NewConcurrentBalance()
	}
	if rec.Balance != 0 {
		if !cb.Balance.TryAdd(rec.Balance) {
			return errors.OutOfRange.WithFormat("store %v balance overflows the aggregated counter", addr)
		}
		rec.Balance = 0
		err = b.batch.PutValue(addr, kindStore, rec)
		if err != nil {
			return errors.UnknownError.Wrap(err)
		}
	}
	return b.batch.PutValue(addr, kindConcurrentBalance, cb)
}

// credit adds amount to the store's balance, routing through the aggregated
// companion when the plain field is zero and a companion exists.
func (b *Batch) credit(store address.Address, rec *protocol.FungibleStore, amount uint64) error {
	if rec.Balance == 0 {
		cb, ok, err := b.getConcurrentBalance(store)
		if err != nil {
			return err
		}
		if ok {
			if !cb.Balance.TryAdd(amount) {
				return errors.OutOfRange.WithFormat("store %v balance overflow", store)
			}
			return b.batch.PutValue(store, kindConcurrentBalance, cb)
		}
	}

	sum := rec.Balance + amount
	if sum < rec.Balance {
		return errors.OutOfRange.WithFormat("store %v balance overflow", store)
	}
	rec.Balance = sum
	return b.batch.PutValue(store, kindStore, rec)
}

// debit subtracts amount from the store's balance, with the same routing
// rule as credit.
func (b *Batch) debit(store address.Address, rec *protocol.FungibleStore, amount uint64) error {
	if rec.Balance == 0 {
		cb, ok, err := b.getConcurrentBalance(store)
		if err != nil {
			return err
		}
		if ok {
			if !cb.Balance.TrySub(amount) {
				return errors.InsufficientBalance.WithFormat("store %v balance %v is less than %d", store, cb.Balance.Read(), amount)
			}
			return b.batch.PutValue(store, kindConcurrentBalance, cb)
		}
	}

	if rec.Balance < amount {
		return errors.InsufficientBalance.WithFormat("store %v balance %d is less than %d", store, rec.Balance, amount)
	}
	rec.Balance -= amount
	return b.batch.PutValue(store, kindStore, rec)
}
