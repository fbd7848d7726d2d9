// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"gitlab.com/meridianledger/meridian/pkg/errors"
)

// Metadata is the identity record of one fungible-asset type. The record's
// address is the asset type's immutable identity; the display fields are
// mutable only through a MutateMetadataRef.
type Metadata struct {
	Name       string `cbor:"1,keyasint"`
	Symbol     string `cbor:"2,keyasint"`
	Decimals   uint8  `cbor:"3,keyasint"`
	IconURI    string `cbor:"4,keyasint,omitempty"`
	ProjectURI string `cbor:"5,keyasint,omitempty"`
}

// Validate checks the metadata's field limits.
func (m *Metadata) Validate() error {
	switch {
	case len(m.Name) > MaxNameLength:
		return errors.BadRequest.WithFormat("name exceeds %d bytes", MaxNameLength)
	case len(m.Symbol) > MaxSymbolLength:
		return errors.BadRequest.WithFormat("symbol exceeds %d bytes", MaxSymbolLength)
	case m.Decimals > MaxDecimals:
		return errors.BadRequest.WithFormat("decimals exceeds %d", MaxDecimals)
	case len(m.IconURI) > MaxURILength:
		return errors.BadRequest.WithFormat("icon URI exceeds %d bytes", MaxURILength)
	case len(m.ProjectURI) > MaxURILength:
		return errors.BadRequest.WithFormat("project URI exceeds %d bytes", MaxURILength)
	}
	return nil
}
