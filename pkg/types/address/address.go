// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package address

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"gitlab.com/meridianledger/meridian/pkg/errors"
)

// Address is a 32-byte account or object address.
type Address [32]byte

// Zero is the all-zero address.
var Zero Address

// Derivation scheme bytes, appended to the hash preimage so addresses derived
// by different schemes can never collide.
const (
	schemeObject byte = 0xFE
	schemeNamed  byte = 0xFD
)

// Parse parses a hex address, with or without a 0x prefix. Short input is
// left-padded with zeros.
func Parse(s string) (Address, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) > 64 {
		return Zero, errors.BadRequest.WithFormat("invalid address: %q is too long", s)
	}
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Zero, errors.BadRequest.WithFormat("invalid address: %v", err)
	}
	var a Address
	copy(a[32-len(b):], b)
	return a, nil
}

// MustParse parses a hex address and panics on failure.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromBytes converts a 32-byte slice to an address.
func FromBytes(b []byte) (Address, error) {
	if len(b) != 32 {
		return Zero, errors.BadRequest.WithFormat("invalid address: want 32 bytes, got %d", len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// Derive derives an object address from a creator address and a seed.
func Derive(creator Address, seed []byte) Address {
	h := sha256.New()
	h.Write(creator[:])
	h.Write(seed)
	h.Write([]byte{schemeObject})
	var a Address
	copy(a[:], h.Sum(nil))
	return a
}

// Named derives an address from a name, independent of any creator.
func Named(name string) Address {
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte{schemeNamed})
	var a Address
	copy(a[:], h.Sum(nil))
	return a
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero returns true if the address is all zeros.
func (a Address) IsZero() bool { return a == Zero }

// MarshalText implements [encoding.TextMarshaler].
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Address) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
