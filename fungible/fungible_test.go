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
	"gitlab.com/meridianledger/meridian/internal/logging"
	"gitlab.com/meridianledger/meridian/object"
	"gitlab.com/meridianledger/meridian/pkg/database/keyvalue/memory"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

var (
	alice = address.Named("alice")
	bob   = address.Named("bob")
	carol = address.Named("carol")
)

func openLedger(t testing.TB, opts ...Option) *Ledger {
	t.Helper()
	opts = append([]Option{WithLogger(logging.NewTestLogger(t))}, opts...)
	return NewLedger(memory.New(), opts...)
}

func openBatch(t testing.TB, opts ...Option) *Batch {
	t.Helper()
	b := openLedger(t, opts...).Begin(true)
	t.Cleanup(b.Discard)
	return b
}

// createAsset creates a fungible asset type owned by alice.
func createAsset(t testing.TB, b *Batch, symbol string, maximum *big.Int) *MetadataRef {
	t.Helper()
	cref, err := object.Create(b.Database(), alice, []byte(symbol), false)
	require.NoError(t, err)
	ref, err := b.AddFungibility(cref, maximum, symbol+" Coin", symbol, 2, "", "")
	require.NoError(t, err)
	return ref
}

// createStore creates a store of the asset type owned by the given account.
func createStore(t testing.TB, b *Batch, owner, metadata address.Address) address.Address {
	t.Helper()
	cref, err := object.Create(b.Database(), owner, append(owner[:], metadata[:]...), true)
	require.NoError(t, err)
	store, err := b.CreateStore(cref, metadata)
	require.NoError(t, err)
	return store
}

func mintTo(t testing.TB, b *Batch, ref *MetadataRef, store address.Address, amount uint64) {
	t.Helper()
	require.NoError(t, b.MintTo(GenerateMintRef(ref), store, amount))
}

func balance(t testing.TB, b *Batch, store address.Address) uint64 {
	t.Helper()
	v, err := b.Balance(store)
	require.NoError(t, err)
	return v
}

func supply(t testing.TB, b *Batch, metadata address.Address) *big.Int {
	t.Helper()
	v, ok, err := b.Supply(metadata)
	require.NoError(t, err)
	require.True(t, ok)
	return v
}
