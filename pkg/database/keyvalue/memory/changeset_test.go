// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/meridianledger/meridian/pkg/errors"
)

func TestCommit(t *testing.T) {
	db := New()
	cs := db.Begin(true)
	require.NoError(t, cs.Put([]byte("a"), []byte("1")))
	require.NoError(t, cs.Commit())

	cs = db.Begin(false)
	defer cs.Discard()
	v, err := cs.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), v)
}

func TestDiscard(t *testing.T) {
	db := New()
	cs := db.Begin(true)
	require.NoError(t, cs.Put([]byte("a"), []byte("1")))
	cs.Discard()

	cs = db.Begin(false)
	defer cs.Discard()
	_, err := cs.Get([]byte("a"))
	require.Equal(t, errors.NotFound, errors.Code(err))
}

func TestDelete(t *testing.T) {
	db := New()
	cs := db.Begin(true)
	require.NoError(t, cs.Put([]byte("a"), []byte("1")))
	require.NoError(t, cs.Commit())

	cs = db.Begin(true)
	require.NoError(t, cs.Delete([]byte("a")))

	// The deletion is visible within the change set before commit
	_, err := cs.Get([]byte("a"))
	require.Equal(t, errors.NotFound, errors.Code(err))
	require.NoError(t, cs.Commit())

	cs = db.Begin(false)
	defer cs.Discard()
	_, err = cs.Get([]byte("a"))
	require.Equal(t, errors.NotFound, errors.Code(err))
}

func TestReadOnly(t *testing.T) {
	db := New()
	cs := db.Begin(false)
	defer cs.Discard()
	require.Error(t, cs.Put([]byte("a"), []byte("1")))
	require.Error(t, cs.Delete([]byte("a")))
}
