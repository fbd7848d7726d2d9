// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package object

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/meridianledger/meridian/internal/database"
	"gitlab.com/meridianledger/meridian/pkg/database/keyvalue/memory"
	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

func testBatch(t *testing.T) *database.Batch {
	t.Helper()
	return database.NewBatch(memory.New().Begin(true), nil)
}

func TestCreate(t *testing.T) {
	batch := testBatch(t)
	defer batch.Discard()

	alice := address.Named("alice")
	ref, err := Create(batch, alice, []byte("seed"), true)
	require.NoError(t, err)

	owner, err := Owner(batch, ref.Address())
	require.NoError(t, err)
	require.Equal(t, alice, owner)

	// The derived address is deterministic, so a second creation conflicts
	_, err = Create(batch, alice, []byte("seed"), true)
	require.Equal(t, errors.Conflict, errors.Code(err))
}

func TestDeleteRef(t *testing.T) {
	batch := testBatch(t)
	defer batch.Discard()

	alice := address.Named("alice")
	ref, err := Create(batch, alice, []byte("a"), false)
	require.NoError(t, err)
	_, err = ref.GenerateDeleteRef()
	require.Equal(t, errors.NotAllowed, errors.Code(err))

	ref, err = Create(batch, alice, []byte("b"), true)
	require.NoError(t, err)
	dref, err := ref.GenerateDeleteRef()
	require.NoError(t, err)
	require.NoError(t, Delete(batch, dref))

	ok, err := Exists(batch, ref.Address())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTransfer(t *testing.T) {
	batch := testBatch(t)
	defer batch.Discard()

	alice, bob := address.Named("alice"), address.Named("bob")
	ref, err := Create(batch, alice, []byte("a"), false)
	require.NoError(t, err)
	tref := ref.GenerateTransferRef()

	require.NoError(t, Transfer(batch, tref, bob))
	owner, err := Owner(batch, ref.Address())
	require.NoError(t, err)
	require.Equal(t, bob, owner)

	// Untransferable sticks, even against a transfer ref
	require.NoError(t, SetUntransferable(batch, ref))
	err = Transfer(batch, tref, alice)
	require.Equal(t, errors.NotAllowed, errors.Code(err))
}
