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
	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
	"gitlab.com/meridianledger/meridian/protocol"
)

func fn(metadata address.Address, name string) protocol.FunctionInfo {
	return protocol.FunctionInfo{ModuleAddress: metadata, ModuleName: "hooks", FunctionName: name}
}

// publishPassThrough publishes withdraw and deposit hooks that faithfully
// move the requested amount using the trampoline's ref.
func publishPassThrough(t *testing.T, g *Ledger, metadata address.Address) (withdraw, deposit protocol.FunctionInfo) {
	t.Helper()
	withdraw, deposit = fn(metadata, "withdraw"), fn(metadata, "deposit")
	err := g.Hooks().PublishWithdraw(withdraw, func(b *Batch, owner, store address.Address, amount uint64, ref *TransferRef) (*FungibleAsset, error) {
		return b.WithdrawWithRef(ref, store, amount)
	})
	require.NoError(t, err)
	err = g.Hooks().PublishDeposit(deposit, func(b *Batch, store address.Address, fa *FungibleAsset, ref *TransferRef) error {
		return b.DepositWithRef(ref, store, fa)
	})
	require.NoError(t, err)
	return withdraw, deposit
}

func TestRegisterDispatch(t *testing.T) {
	g := openLedger(t)
	b := g.Begin(true)
	defer b.Discard()

	ref := createAsset(t, b, "USD", nil)
	withdraw, deposit := publishPassThrough(t, g, ref.Address())

	t.Run("Unpublished", func(t *testing.T) {
		missing := fn(ref.Address(), "missing")
		err := b.RegisterDispatch(ref, &missing, nil, nil)
		require.ErrorIs(t, err, errors.NotFound)
	})

	t.Run("WrongShape", func(t *testing.T) {
		// A withdraw-shaped function in the deposit slot
		err := b.RegisterDispatch(ref, nil, &withdraw, nil)
		require.ErrorIs(t, err, errors.BadRequest)
	})

	t.Run("Ok", func(t *testing.T) {
		require.NoError(t, b.RegisterDispatch(ref, &withdraw, &deposit, nil))

		ok, err := b.isDispatchable(ref.Address())
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("Twice", func(t *testing.T) {
		err := b.RegisterDispatch(ref, &withdraw, &deposit, nil)
		require.ErrorIs(t, err, errors.Conflict)
	})
}

func TestRegisterDispatchNative(t *testing.T) {
	g := openLedger(t)
	b := g.Begin(true)
	defer b.Discard()

	cref, err := object.CreateAt(b.Database(), protocol.NativeAssetAddress, alice)
	require.NoError(t, err)
	ref, err := b.AddFungibility(cref, nil, "Native", "NAT", 8, "", "")
	require.NoError(t, err)

	withdraw, _ := publishPassThrough(t, g, ref.Address())
	err = b.RegisterDispatch(ref, &withdraw, nil, nil)
	require.ErrorIs(t, err, errors.NotAllowed)
}

func TestRegisterDispatchDeletable(t *testing.T) {
	g := openLedger(t)
	b := g.Begin(true)
	defer b.Discard()

	cref, err := object.Create(b.Database(), alice, []byte("tmp"), true)
	require.NoError(t, err)
	ref, err := b.AddFungibility(cref, nil, "Temp Coin", "TMP", 2, "", "")
	require.NoError(t, err)

	withdraw, _ := publishPassThrough(t, g, ref.Address())
	err = b.RegisterDispatch(ref, &withdraw, nil, nil)
	require.ErrorIs(t, err, errors.BadRequest)
}

func TestRegisterDispatchDisabled(t *testing.T) {
	g := openLedger(t, WithFeatures(protocol.Features{ConcurrentSupply: true, ConcurrentBalance: true}))
	b := g.Begin(true)
	defer b.Discard()

	ref := createAsset(t, b, "USD", nil)
	withdraw, _ := publishPassThrough(t, g, ref.Address())
	err := b.RegisterDispatch(ref, &withdraw, nil, nil)
	require.ErrorIs(t, err, errors.NotActivated)
}

func TestDispatchRoundTrip(t *testing.T) {
	g := openLedger(t)
	b := g.Begin(true)
	defer b.Discard()

	ref := createAsset(t, b, "USD", nil)
	withdraw, deposit := publishPassThrough(t, g, ref.Address())
	require.NoError(t, b.RegisterDispatch(ref, &withdraw, &deposit, nil))

	from := createStore(t, b, alice, ref.Address())
	to := createStore(t, b, bob, ref.Address())
	mintTo(t, b, ref, from, 100)

	// The primitive paths refuse hooked assets
	_, err := b.Withdraw(alice, from, 10)
	require.ErrorIs(t, err, errors.Conflict)
	err = b.Deposit(to, Zero(ref.Address()))
	require.ErrorIs(t, err, errors.Conflict)

	// Transfer routes through the hooks
	require.NoError(t, b.Transfer(alice, from, to, 40))
	require.Equal(t, uint64(60), balance(t, b, from))
	require.Equal(t, uint64(40), balance(t, b, to))

	// Ownership and frozen checks still run before the hook
	_, err = b.DispatchWithdraw(bob, from, 1)
	require.ErrorIs(t, err, errors.Unauthorized)
	require.NoError(t, b.SetFrozen(GenerateTransferRef(ref), from, true))
	_, err = b.DispatchWithdraw(alice, from, 1)
	require.ErrorIs(t, err, errors.NotAllowed)
}

func TestDispatchWithdrawShortChanges(t *testing.T) {
	g := openLedger(t)
	b := g.Begin(true)
	defer b.Discard()

	ref := createAsset(t, b, "USD", nil)
	withdraw := fn(ref.Address(), "withdraw")
	err := g.Hooks().PublishWithdraw(withdraw, func(b *Batch, owner, store address.Address, amount uint64, tref *TransferRef) (*FungibleAsset, error) {
		// Moves one less than requested
		return b.WithdrawWithRef(tref, store, amount-1)
	})
	require.NoError(t, err)
	require.NoError(t, b.RegisterDispatch(ref, &withdraw, nil, nil))

	from := createStore(t, b, alice, ref.Address())
	mintTo(t, b, ref, from, 100)

	_, err = b.DispatchWithdraw(alice, from, 10)
	require.ErrorIs(t, err, errors.Aborted)
}

func TestDispatchDepositDiverts(t *testing.T) {
	g := openLedger(t)
	b := g.Begin(true)
	defer b.Discard()

	ref := createAsset(t, b, "USD", nil)
	treasury := createStore(t, b, carol, ref.Address())

	deposit := fn(ref.Address(), "deposit")
	err := g.Hooks().PublishDeposit(deposit, func(b *Batch, store address.Address, fa *FungibleAsset, tref *TransferRef) error {
		// Skims one unit into the treasury
		fee, err := fa.Extract(1)
		if err != nil {
			return err
		}
		err = b.DepositWithRef(tref, treasury, fee)
		if err != nil {
			return err
		}
		return b.DepositWithRef(tref, store, fa)
	})
	require.NoError(t, err)
	require.NoError(t, b.RegisterDispatch(ref, nil, &deposit, nil))

	from := createStore(t, b, alice, ref.Address())
	to := createStore(t, b, bob, ref.Address())
	mintTo(t, b, ref, from, 100)

	// The trampoline catches the diverted unit
	err = b.Transfer(alice, from, to, 10)
	require.ErrorIs(t, err, errors.Aborted)
}

func TestDispatchWithDeriveBalance(t *testing.T) {
	g := openLedger(t)
	b := g.Begin(true)
	defer b.Discard()

	ref := createAsset(t, b, "USD", nil)
	withdraw, deposit := publishPassThrough(t, g, ref.Address())

	// A non-identity derive hook alongside the withdraw and deposit hooks
	derive := fn(ref.Address(), "derive_balance")
	err := g.Hooks().PublishDeriveBalance(derive, func(b *Batch, store address.Address) (uint64, error) {
		raw, err := b.Balance(store)
		if err != nil {
			return 0, err
		}
		return raw * 2, nil
	})
	require.NoError(t, err)
	require.NoError(t, b.RegisterDispatch(ref, &withdraw, &deposit, &derive))

	from := createStore(t, b, alice, ref.Address())
	to := createStore(t, b, bob, ref.Address())
	mintTo(t, b, ref, from, 100)

	// The trampoline checks raw deltas, so the derive hook does not
	// interfere with honest withdrawals and deposits
	fa, err := b.DispatchWithdraw(alice, from, 10)
	require.NoError(t, err)
	require.NoError(t, b.DispatchDeposit(to, fa))
	require.Equal(t, uint64(90), balance(t, b, from))
	require.Equal(t, uint64(10), balance(t, b, to))

	require.NoError(t, b.Transfer(alice, from, to, 40))
	require.Equal(t, uint64(50), balance(t, b, from))
	require.Equal(t, uint64(50), balance(t, b, to))

	v, err := b.DerivedBalance(to)
	require.NoError(t, err)
	require.Equal(t, uint64(100), v)
}

func TestDeriveBalance(t *testing.T) {
	g := openLedger(t)
	b := g.Begin(true)
	defer b.Discard()

	ref := createAsset(t, b, "USD", nil)
	derive := fn(ref.Address(), "derive_balance")
	err := g.Hooks().PublishDeriveBalance(derive, func(b *Batch, store address.Address) (uint64, error) {
		raw, err := b.Balance(store)
		if err != nil {
			return 0, err
		}
		return raw * 2, nil
	})
	require.NoError(t, err)
	require.NoError(t, b.RegisterDispatch(ref, nil, nil, &derive))

	store := createStore(t, b, alice, ref.Address())
	mintTo(t, b, ref, store, 50)

	v, err := b.DerivedBalance(store)
	require.NoError(t, err)
	require.Equal(t, uint64(100), v)

	// The raw balance is untouched
	require.Equal(t, uint64(50), balance(t, b, store))
}

func TestDeriveSupply(t *testing.T) {
	g := openLedger(t)
	b := g.Begin(true)
	defer b.Discard()

	ref := createAsset(t, b, "USD", nil)
	derive := fn(ref.Address(), "derive_supply")
	err := g.Hooks().PublishDeriveSupply(derive, func(b *Batch, metadata address.Address) (*big.Int, error) {
		raw, _, err := b.Supply(metadata)
		if err != nil {
			return nil, err
		}
		return raw.Add(raw, big.NewInt(100)), nil
	})
	require.NoError(t, err)
	require.NoError(t, b.RegisterDeriveSupply(ref, derive))

	store := createStore(t, b, alice, ref.Address())
	mintTo(t, b, ref, store, 50)

	v, ok, err := b.DerivedSupply(ref.Address())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, big.NewInt(150), v)

	// An asset without a hook reports its raw supply
	plain := createAsset(t, b, "EUR", nil)
	v, ok, err = b.DerivedSupply(plain.Address())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, big.NewInt(0), v)
}

func TestTransferAssertMinimumDeposit(t *testing.T) {
	b := openBatch(t)
	ref := createAsset(t, b, "USD", nil)
	from := createStore(t, b, alice, ref.Address())
	to := createStore(t, b, bob, ref.Address())
	mintTo(t, b, ref, from, 100)

	require.NoError(t, b.TransferAssertMinimumDeposit(alice, from, to, 10, 10))

	err := b.TransferAssertMinimumDeposit(alice, from, to, 10, 11)
	require.ErrorIs(t, err, errors.Aborted)
}
