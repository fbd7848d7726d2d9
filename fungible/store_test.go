// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package fungible

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/meridianledger/meridian/object"
	"gitlab.com/meridianledger/meridian/pkg/database/keyvalue/memory"
	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/protocol"
)

func TestCreateStore(t *testing.T) {
	b := openBatch(t)
	ref := createAsset(t, b, "USD", nil)

	cref, err := object.Create(b.Database(), bob, []byte("bob/usd"), false)
	require.NoError(t, err)
	store, err := b.CreateStore(cref, ref.Address())
	require.NoError(t, err)

	ok, err := b.StoreExists(store)
	require.NoError(t, err)
	require.True(t, ok)

	md, err := b.StoreMetadata(store)
	require.NoError(t, err)
	require.Equal(t, ref.Address(), md)

	require.Zero(t, balance(t, b, store))

	// One store per object
	_, err = b.CreateStore(cref, ref.Address())
	require.ErrorIs(t, err, errors.Conflict)
}

func TestCreateStoreUnknownAsset(t *testing.T) {
	b := openBatch(t)

	cref, err := object.Create(b.Database(), bob, []byte("bob/usd"), false)
	require.NoError(t, err)
	_, err = b.CreateStore(cref, carol)
	require.ErrorIs(t, err, errors.NotFound)
}

func TestBalanceMissingStore(t *testing.T) {
	b := openBatch(t)
	require.Zero(t, balance(t, b, bob))

	ok, err := b.IsBalanceAtLeast(bob, 1)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = b.IsBalanceAtLeast(bob, 0)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRemoveStore(t *testing.T) {
	b := openBatch(t)
	ref := createAsset(t, b, "USD", nil)

	cref, err := object.Create(b.Database(), bob, []byte("bob/usd"), true)
	require.NoError(t, err)
	dref, err := cref.GenerateDeleteRef()
	require.NoError(t, err)
	store, err := b.CreateStore(cref, ref.Address())
	require.NoError(t, err)

	mintTo(t, b, ref, store, 7)

	// A non-empty store cannot be removed
	err = b.RemoveStore(dref)
	require.ErrorIs(t, err, errors.BadRequest)

	require.NoError(t, b.BurnFrom(GenerateBurnRef(ref), store, 7))
	require.NoError(t, b.RemoveStore(dref))

	ok, err := b.StoreExists(store)
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = object.Exists(b.Database(), store)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFreeze(t *testing.T) {
	b := openBatch(t)
	ref := createAsset(t, b, "USD", nil)
	store := createStore(t, b, bob, ref.Address())
	mintTo(t, b, ref, store, 100)

	frozen, err := b.IsFrozen(store)
	require.NoError(t, err)
	require.False(t, frozen)

	admin := GenerateTransferRef(ref)
	require.NoError(t, b.SetFrozen(admin, store, true))

	frozen, err = b.IsFrozen(store)
	require.NoError(t, err)
	require.True(t, frozen)

	// Frozen stores refuse normal movement in both directions
	_, err = b.Withdraw(bob, store, 10)
	require.ErrorIs(t, err, errors.NotAllowed)
	err = b.Deposit(store, Zero(ref.Address()))
	require.ErrorIs(t, err, errors.NotAllowed)

	// The admin ref bypasses the freeze
	fa, err := b.WithdrawWithRef(admin, store, 10)
	require.NoError(t, err)
	require.NoError(t, b.DepositWithRef(admin, store, fa))
	require.Equal(t, uint64(100), balance(t, b, store))

	require.NoError(t, b.SetFrozen(admin, store, false))
	fa, err = b.Withdraw(bob, store, 10)
	require.NoError(t, err)
	require.NoError(t, b.Deposit(store, fa))
}

func TestFreezeWrongRef(t *testing.T) {
	b := openBatch(t)
	usd := createAsset(t, b, "USD", nil)
	eur := createAsset(t, b, "EUR", nil)
	store := createStore(t, b, bob, usd.Address())

	err := b.SetFrozen(GenerateTransferRef(eur), store, true)
	require.ErrorIs(t, err, errors.BadRequest)
}

func TestEnsureConcurrentBalanceDisabled(t *testing.T) {
	b := openBatch(t, WithFeatures(protocol.Features{ConcurrentSupply: true, Dispatchable: true}))
	ref := createAsset(t, b, "USD", nil)

	cref, err := object.Create(b.Database(), bob, []byte("bob/usd"), false)
	require.NoError(t, err)
	extend := cref.GenerateExtendRef()
	_, err = b.CreateStore(cref, ref.Address())
	require.NoError(t, err)

	err = b.EnsureConcurrentBalance(extend)
	require.ErrorIs(t, err, errors.NotActivated)
}

func TestEnsureConcurrentBalanceMigration(t *testing.T) {
	db := memory.New()

	// Created while the feature was off, so the store is plain
	setup := NewLedger(db, WithFeatures(protocol.Features{})).Begin(true)
	ref := createAsset(t, setup, "USD", nil)
	cref, err := object.Create(setup.Database(), bob, []byte("bob/usd"), false)
	require.NoError(t, err)
	extend := cref.GenerateExtendRef()
	store, err := setup.CreateStore(cref, ref.Address())
	require.NoError(t, err)
	mintTo(t, setup, ref, store, 250)
	require.NoError(t, setup.Commit())

	// Migrated after the feature turns on
	b := NewLedger(db).Begin(true)
	defer b.Discard()

	require.NoError(t, b.EnsureConcurrentBalance(extend))
	require.Equal(t, uint64(250), balance(t, b, store))

	// Idempotent
	require.NoError(t, b.EnsureConcurrentBalance(extend))
	require.Equal(t, uint64(250), balance(t, b, store))

	// The plain field was folded into the aggregator
	rec, err := b.getStore(store)
	require.NoError(t, err)
	require.Zero(t, rec.Balance)
	cb, ok, err := b.getConcurrentBalance(store)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, big.NewInt(250), cb.Balance.Read())
}
