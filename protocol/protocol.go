// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package protocol defines the resource records of the fungible-asset
// ledger.
package protocol

import (
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

// Field limits for asset metadata.
const (
	MaxNameLength     = 32
	MaxSymbolLength   = 10
	MaxDecimals       = 32
	MaxURILength      = 512
	MaxFunctionLength = 128
)

// NativeAssetAddress is the reserved address of the native gas asset. The
// native asset is permanently excluded from dispatch.
var NativeAssetAddress = address.MustParse("0xa")

// Features are the ledger's feature gates.
type Features struct {
	// ConcurrentSupply gates the aggregated supply representation and the
	// one-way migration to it.
	ConcurrentSupply bool

	// ConcurrentBalance makes newly created stores default to the
	// aggregated balance representation.
	ConcurrentBalance bool

	// Dispatchable gates hook registration and every dispatch-aware entry
	// point.
	Dispatchable bool
}

// DefaultFeatures returns the default feature set, with everything enabled.
func DefaultFeatures() Features {
	return Features{
		ConcurrentSupply:  true,
		ConcurrentBalance: true,
		Dispatchable:      true,
	}
}
