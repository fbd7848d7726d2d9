// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

// WithdrawEvent is published when an amount leaves a store.
type WithdrawEvent struct {
	Store    address.Address
	Metadata address.Address
	Amount   uint64
}

// DepositEvent is published when an amount enters a store.
type DepositEvent struct {
	Store    address.Address
	Metadata address.Address
	Amount   uint64
}

// FrozenEvent is published when a store's frozen flag changes.
type FrozenEvent struct {
	Store    address.Address
	Metadata address.Address
	Frozen   bool
}
