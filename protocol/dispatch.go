// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"fmt"

	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

// FunctionInfo names a function of a published module.
type FunctionInfo struct {
	ModuleAddress address.Address `cbor:"1,keyasint"`
	ModuleName    string          `cbor:"2,keyasint"`
	FunctionName  string          `cbor:"3,keyasint"`
}

func (f FunctionInfo) String() string {
	return fmt.Sprintf("%v::%s::%s", f.ModuleAddress, f.ModuleName, f.FunctionName)
}

// Validate checks the function name limits.
func (f FunctionInfo) Validate() error {
	switch {
	case f.ModuleName == "" || f.FunctionName == "":
		return errors.BadRequest.With("module and function names must not be empty")
	case len(f.ModuleName) > MaxFunctionLength || len(f.FunctionName) > MaxFunctionLength:
		return errors.BadRequest.WithFormat("module or function name exceeds %d bytes", MaxFunctionLength)
	}
	return nil
}

// DispatchFunctions is the override record of one asset type. Installed at
// most once; never modified afterward.
type DispatchFunctions struct {
	Withdraw      *FunctionInfo `cbor:"1,keyasint,omitempty"`
	Deposit       *FunctionInfo `cbor:"2,keyasint,omitempty"`
	DeriveBalance *FunctionInfo `cbor:"3,keyasint,omitempty"`
}

// DeriveSupply is the supply override record of one asset type, independent
// of DispatchFunctions.
type DeriveSupply struct {
	Function *FunctionInfo `cbor:"1,keyasint"`
}
