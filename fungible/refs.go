// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package fungible

import (
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

// MetadataRef is the genesis authority over a just-created asset type. It is
// returned by AddFungibility and is the only source of capability refs and
// dispatch registrations. None of the ref types can be constructed outside
// this package, which is what makes them unforgeable.
type MetadataRef struct {
	addr      address.Address
	deletable bool
}

// Address returns the asset type's metadata address.
func (r *MetadataRef) Address() address.Address { return r.addr }

// MintRef authorizes minting the asset type.
type MintRef struct {
	metadata address.Address
}

// TransferRef authorizes administrative freezes and forced transfers,
// bypassing the frozen check.
type TransferRef struct {
	metadata address.Address
}

// BurnRef authorizes burning the asset type.
type BurnRef struct {
	metadata address.Address
}

// MutateMetadataRef authorizes editing the asset type's display fields.
type MutateMetadataRef struct {
	metadata address.Address
}

// Metadata returns the asset type the ref is bound to.
func (r *MintRef) Metadata() address.Address { return r.metadata }

// Metadata returns the asset type the ref is bound to.
func (r *TransferRef) Metadata() address.Address { return r.metadata }

// Metadata returns the asset type the ref is bound to.
func (r *BurnRef) Metadata() address.Address { return r.metadata }

// Metadata returns the asset type the ref is bound to.
func (r *MutateMetadataRef) Metadata() address.Address { return r.metadata }

// GenerateMintRef mints the mint capability. Only possible while the
// genesis authority is in scope.
func GenerateMintRef(ref *MetadataRef) *MintRef {
	return &MintRef{metadata: ref.addr}
}

// GenerateTransferRef mints the administrative transfer capability.
func GenerateTransferRef(ref *MetadataRef) *TransferRef {
	return &TransferRef{metadata: ref.addr}
}

// GenerateBurnRef mints the burn capability.
func GenerateBurnRef(ref *MetadataRef) *BurnRef {
	return &BurnRef{metadata: ref.addr}
}

// GenerateMutateMetadataRef mints the metadata-editing capability.
func GenerateMutateMetadataRef(ref *MetadataRef) *MutateMetadataRef {
	return &MutateMetadataRef{metadata: ref.addr}
}
