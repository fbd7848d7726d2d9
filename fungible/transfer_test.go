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
	"gitlab.com/meridianledger/meridian/internal/events"
	"gitlab.com/meridianledger/meridian/object"
	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/protocol"
)

func TestTransfer(t *testing.T) {
	b := openBatch(t)
	ref := createAsset(t, b, "USD", big.NewInt(100_000))
	from := createStore(t, b, alice, ref.Address())
	to := createStore(t, b, bob, ref.Address())
	mintTo(t, b, ref, from, 1000)

	require.NoError(t, b.Transfer(alice, from, to, 250))
	require.Equal(t, uint64(750), balance(t, b, from))
	require.Equal(t, uint64(250), balance(t, b, to))

	// Supply is conserved by transfers
	require.Equal(t, big.NewInt(1000), supply(t, b, ref.Address()))
}

func TestTransferNotOwner(t *testing.T) {
	b := openBatch(t)
	ref := createAsset(t, b, "USD", nil)
	from := createStore(t, b, alice, ref.Address())
	to := createStore(t, b, bob, ref.Address())
	mintTo(t, b, ref, from, 100)

	err := b.Transfer(bob, from, to, 10)
	require.ErrorIs(t, err, errors.Unauthorized)
	require.Equal(t, uint64(100), balance(t, b, from))
}

func TestTransferInsufficient(t *testing.T) {
	b := openBatch(t)
	ref := createAsset(t, b, "USD", nil)
	from := createStore(t, b, alice, ref.Address())
	to := createStore(t, b, bob, ref.Address())
	mintTo(t, b, ref, from, 100)

	err := b.Transfer(alice, from, to, 101)
	require.ErrorIs(t, err, errors.InsufficientBalance)
	require.Equal(t, uint64(100), balance(t, b, from))
	require.Zero(t, balance(t, b, to))
}

func TestTransferWrongAsset(t *testing.T) {
	b := openBatch(t)
	usd := createAsset(t, b, "USD", nil)
	eur := createAsset(t, b, "EUR", nil)
	from := createStore(t, b, alice, usd.Address())
	to := createStore(t, b, bob, eur.Address())
	mintTo(t, b, usd, from, 100)

	err := b.Transfer(alice, from, to, 10)
	require.ErrorIs(t, err, errors.BadRequest)
}

func TestWithdrawZero(t *testing.T) {
	b := openBatch(t)
	ref := createAsset(t, b, "USD", nil)
	store := createStore(t, b, alice, ref.Address())

	fa, err := b.Withdraw(alice, store, 0)
	require.NoError(t, err)
	require.Zero(t, fa.Amount())
	require.NoError(t, fa.DestroyZero())
}

// TestIssuerLifecycle walks an asset through issuance, circulation, and
// redemption.
func TestIssuerLifecycle(t *testing.T) {
	b := openBatch(t)
	ref := createAsset(t, b, "USD", big.NewInt(1000))
	aliceUSD := createStore(t, b, alice, ref.Address())
	bobUSD := createStore(t, b, bob, ref.Address())

	mintTo(t, b, ref, aliceUSD, 1000)
	require.Equal(t, big.NewInt(1000), supply(t, b, ref.Address()))

	require.NoError(t, b.Transfer(alice, aliceUSD, bobUSD, 250))
	require.Equal(t, uint64(750), balance(t, b, aliceUSD))
	require.Equal(t, uint64(250), balance(t, b, bobUSD))

	// Redeem: bob sends back, the issuer burns
	require.NoError(t, b.Transfer(bob, bobUSD, aliceUSD, 100))
	require.NoError(t, b.BurnFrom(GenerateBurnRef(ref), aliceUSD, 100))

	require.Equal(t, big.NewInt(900), supply(t, b, ref.Address()))
	require.Equal(t, uint64(750), balance(t, b, aliceUSD))
	require.Equal(t, uint64(150), balance(t, b, bobUSD))
}

func TestEventsPublishOnCommit(t *testing.T) {
	g := openLedger(t)

	var deposits []protocol.DepositEvent
	var withdraws []protocol.WithdrawEvent
	events.SubscribeSync(g.Events(), func(e protocol.DepositEvent) { deposits = append(deposits, e) })
	events.SubscribeSync(g.Events(), func(e protocol.WithdrawEvent) { withdraws = append(withdraws, e) })

	b := g.Begin(true)
	ref := createAsset(t, b, "USD", nil)
	from := createStore(t, b, alice, ref.Address())
	to := createStore(t, b, bob, ref.Address())
	mintTo(t, b, ref, from, 100)
	require.NoError(t, b.Transfer(alice, from, to, 40))

	// Nothing is published until the batch commits
	require.Empty(t, deposits)
	require.Empty(t, withdraws)

	require.NoError(t, b.Commit())
	require.Len(t, deposits, 2) // mint and transfer
	require.Len(t, withdraws, 1)
	require.Equal(t, protocol.WithdrawEvent{Store: from, Metadata: ref.Address(), Amount: 40}, withdraws[0])
	require.Equal(t, protocol.DepositEvent{Store: to, Metadata: ref.Address(), Amount: 40}, deposits[1])
}

func TestEventsDroppedOnDiscard(t *testing.T) {
	g := openLedger(t)

	var count int
	events.SubscribeSync(g.Events(), func(protocol.WithdrawEvent) { count++ })

	b := g.Begin(true)
	ref := createAsset(t, b, "USD", nil)
	from := createStore(t, b, alice, ref.Address())
	to := createStore(t, b, bob, ref.Address())
	mintTo(t, b, ref, from, 100)
	require.NoError(t, b.Transfer(alice, from, to, 40))

	b.Discard()
	require.Zero(t, count)
}

func TestUntransferableStores(t *testing.T) {
	b := openBatch(t)

	ref := createAsset(t, b, "PTS", nil)
	require.NoError(t, b.SetUntransferableStores(ref))

	store := createStore(t, b, bob, ref.Address())

	rec, err := object.Get(b.Database(), store)
	require.NoError(t, err)
	require.True(t, rec.Untransferable)
}
