// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package fungible

import (
	"math/big"

	"gitlab.com/meridianledger/meridian/object"
	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
	"gitlab.com/meridianledger/meridian/protocol"
)

// AddFungibility promotes an object to a fungible-asset type, creating its
// metadata and supply records. It can only be called with the object's
// constructor ref, so a type's genesis happens exactly once; the returned
// MetadataRef is the only source of capability refs for the type. A nil
// maximum means unlimited supply.
func (b *Batch) AddFungibility(cref *object.ConstructorRef, maximum *big.Int, name, symbol string, decimals uint8, iconURI, projectURI string) (*MetadataRef, error) {
	md := &protocol.Metadata{
		Name:       name,
		Symbol:     symbol,
		Decimals:   decimals,
		IconURI:    iconURI,
		ProjectURI: projectURI,
	}
	err := md.Validate()
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if maximum != nil && maximum.Sign() < 0 {
		return nil, errors.BadRequest.With("maximum supply cannot be negative")
	}

	addr := cref.Address()
	ok, err := b.batch.HasValue(addr, kindMetadata)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if ok {
		return nil, errors.Conflict.WithFormat("object %v is already a fungible asset", addr)
	}

	err = b.batch.PutValue(addr, kindMetadata, md)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	supply := new(protocol.Supply)
	if maximum != nil {
		supply.Maximum = new(big.Int).Set(maximum)
	}
	err = b.batch.PutValue(addr, kindSupply, supply)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	b.ledger.logger.Info("Created fungible asset", "metadata", addr, "symbol", symbol)
	return &MetadataRef{addr: addr, deletable: cref.CanDelete()}, nil
}

// SetUntransferableStores marks the asset type so that every store created
// for it is untransferable at the object layer. Only possible at genesis.
func (b *Batch) SetUntransferableStores(ref *MetadataRef) error {
	return b.batch.PutValue(ref.addr, kindUntransferable, true)
}

func (b *Batch) storesUntransferable(metadata address.Address) (bool, error) {
	return b.batch.HasValue(metadata, kindUntransferable)
}

// Metadata loads the metadata record of an asset type.
func (b *Batch) Metadata(metadata address.Address) (*protocol.Metadata, error) {
	md := new(protocol.Metadata)
	err := b.batch.GetValue(metadata, kindMetadata, md)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return md, nil
}

// Name returns the asset type's name.
func (b *Batch) Name(metadata address.Address) (string, error) {
	md, err := b.Metadata(metadata)
	if err != nil {
		return "", err
	}
	return md.Name, nil
}

// Symbol returns the asset type's symbol.
func (b *Batch) Symbol(metadata address.Address) (string, error) {
	md, err := b.Metadata(metadata)
	if err != nil {
		return "", err
	}
	return md.Symbol, nil
}

// Decimals returns the asset type's decimals.
func (b *Batch) Decimals(metadata address.Address) (uint8, error) {
	md, err := b.Metadata(metadata)
	if err != nil {
		return 0, err
	}
	return md.Decimals, nil
}

// IconURI returns the asset type's icon URI.
func (b *Batch) IconURI(metadata address.Address) (string, error) {
	md, err := b.Metadata(metadata)
	if err != nil {
		return "", err
	}
	return md.IconURI, nil
}

// ProjectURI returns the asset type's project URI.
func (b *Batch) ProjectURI(metadata address.Address) (string, error) {
	md, err := b.Metadata(metadata)
	if err != nil {
		return "", err
	}
	return md.ProjectURI, nil
}

// MetadataMutation is a set of optional display-field updates.
type MetadataMutation struct {
	Name       *string
	Symbol     *string
	Decimals   *uint8
	IconURI    *string
	ProjectURI *string
}

// MutateMetadata overwrites the asset type's display fields named by the
// mutation, re-validating the same limits as genesis.
func (b *Batch) MutateMetadata(ref *MutateMetadataRef, mut MetadataMutation) error {
	md, err := b.Metadata(ref.metadata)
	if err != nil {
		return err
	}

	if mut.Name != nil {
		md.Name = *mut.Name
	}
	if mut.Symbol != nil {
		md.Symbol = *mut.Symbol
	}
	if mut.Decimals != nil {
		md.Decimals = *mut.Decimals
	}
	if mut.IconURI != nil {
		md.IconURI = *mut.IconURI
	}
	if mut.ProjectURI != nil {
		md.ProjectURI = *mut.ProjectURI
	}

	err = md.Validate()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	return b.batch.PutValue(ref.metadata, kindMetadata, md)
}

// AssetExists returns true if the address is a fungible-asset type.
func (b *Batch) AssetExists(metadata address.Address) (bool, error) {
	return b.batch.HasValue(metadata, kindMetadata)
}
