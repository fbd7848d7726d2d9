// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/meridianledger/meridian/pkg/database/keyvalue/memory"
	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

type testRecord struct {
	Name   string  `cbor:"1,keyasint"`
	Amount big.Int `cbor:"2,keyasint"`
}

func TestRoundTrip(t *testing.T) {
	db := memory.New()
	batch := NewBatch(db.Begin(true), nil)
	defer batch.Discard()

	addr := address.Named("alice")
	in := &testRecord{Name: "x"}
	in.Amount.SetUint64(12345)
	require.NoError(t, batch.PutValue(addr, "test", in))
	require.NoError(t, batch.Commit())

	batch = NewBatch(db.Begin(false), nil)
	defer batch.Discard()
	out := new(testRecord)
	require.NoError(t, batch.GetValue(addr, "test", out))
	require.Equal(t, "x", out.Name)
	require.Equal(t, uint64(12345), out.Amount.Uint64())
}

func TestKinds(t *testing.T) {
	db := memory.New()
	batch := NewBatch(db.Begin(true), nil)
	defer batch.Discard()

	// Records of different kinds at the same address do not collide
	addr := address.Named("alice")
	require.NoError(t, batch.PutValue(addr, "a", &testRecord{Name: "a"}))
	require.NoError(t, batch.PutValue(addr, "b", &testRecord{Name: "b"}))

	out := new(testRecord)
	require.NoError(t, batch.GetValue(addr, "a", out))
	require.Equal(t, "a", out.Name)
	require.NoError(t, batch.GetValue(addr, "b", out))
	require.Equal(t, "b", out.Name)
}

func TestNotFound(t *testing.T) {
	db := memory.New()
	batch := NewBatch(db.Begin(true), nil)
	defer batch.Discard()

	addr := address.Named("alice")
	err := batch.GetValue(addr, "test", new(testRecord))
	require.Equal(t, errors.NotFound, errors.Code(err))

	ok, err := batch.HasValue(addr, "test")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, batch.PutValue(addr, "test", new(testRecord)))
	ok, err = batch.HasValue(addr, "test")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, batch.DeleteValue(addr, "test"))
	ok, err = batch.HasValue(addr, "test")
	require.NoError(t, err)
	require.False(t, ok)
}
