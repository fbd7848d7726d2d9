// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package object is the capability-issuing object substrate. An object is a
// storage address with an owner. Creating an object yields a one-time
// constructor ref from which the other refs derive; none of the ref types
// can be constructed outside this package.
package object

import (
	"gitlab.com/meridianledger/meridian/internal/database"
	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

const recordKind = "object"

// Record is the persistent state of an object.
type Record struct {
	Owner          address.Address `cbor:"1,keyasint"`
	Deletable      bool            `cbor:"2,keyasint,omitempty"`
	Untransferable bool            `cbor:"3,keyasint,omitempty"`
}

// ConstructorRef is the one-time authority over a just-created object.
type ConstructorRef struct {
	addr      address.Address
	deletable bool
}

// ExtendRef authorizes adding resources to an object after creation.
type ExtendRef struct {
	addr address.Address
}

// DeleteRef authorizes deleting an object. It can only be generated for
// deletable objects.
type DeleteRef struct {
	addr address.Address
}

// TransferRef authorizes transferring an object's ownership.
type TransferRef struct {
	addr address.Address
}

// Create creates an object at an address derived from the creator and seed.
func Create(batch *database.Batch, creator address.Address, seed []byte, deletable bool) (*ConstructorRef, error) {
	return createAt(batch, address.Derive(creator, seed), creator, deletable)
}

// CreateAt creates a non-deletable object at a fixed address.
func CreateAt(batch *database.Batch, addr, owner address.Address) (*ConstructorRef, error) {
	return createAt(batch, addr, owner, false)
}

func createAt(batch *database.Batch, addr, owner address.Address, deletable bool) (*ConstructorRef, error) {
	ok, err := batch.HasValue(addr, recordKind)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if ok {
		return nil, errors.Conflict.WithFormat("object %v already exists", addr)
	}

	err = batch.PutValue(addr, recordKind, &Record{Owner: owner, Deletable: deletable})
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return &ConstructorRef{addr: addr, deletable: deletable}, nil
}

// Address returns the object's address.
func (r *ConstructorRef) Address() address.Address { return r.addr }

// CanDelete returns true if a delete ref can be generated for the object.
func (r *ConstructorRef) CanDelete() bool { return r.deletable }

// GenerateExtendRef derives an extend ref.
func (r *ConstructorRef) GenerateExtendRef() *ExtendRef {
	return &ExtendRef{addr: r.addr}
}

// GenerateDeleteRef derives a delete ref. It fails for non-deletable
// objects.
func (r *ConstructorRef) GenerateDeleteRef() (*DeleteRef, error) {
	if !r.deletable {
		return nil, errors.NotAllowed.WithFormat("object %v is not deletable", r.addr)
	}
	return &DeleteRef{addr: r.addr}, nil
}

// GenerateTransferRef derives a transfer ref.
func (r *ConstructorRef) GenerateTransferRef() *TransferRef {
	return &TransferRef{addr: r.addr}
}

// Address returns the object's address.
func (r *ExtendRef) Address() address.Address { return r.addr }

// Address returns the object's address.
func (r *DeleteRef) Address() address.Address { return r.addr }

// Address returns the object's address.
func (r *TransferRef) Address() address.Address { return r.addr }

// Get loads an object's record.
func Get(batch *database.Batch, addr address.Address) (*Record, error) {
	rec := new(Record)
	err := batch.GetValue(addr, recordKind, rec)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return rec, nil
}

// Exists returns true if an object exists at the address.
func Exists(batch *database.Batch, addr address.Address) (bool, error) {
	return batch.HasValue(addr, recordKind)
}

// Owner returns the owner of the object at the address.
func Owner(batch *database.Batch, addr address.Address) (address.Address, error) {
	rec, err := Get(batch, addr)
	if err != nil {
		return address.Zero, err
	}
	return rec.Owner, nil
}

// IsOwner returns true if the given address owns the object.
func IsOwner(batch *database.Batch, addr, owner address.Address) (bool, error) {
	rec, err := Get(batch, addr)
	if err != nil {
		return false, err
	}
	return rec.Owner == owner, nil
}

// Transfer changes the object's owner. Transfer fails for untransferable
// objects; the transfer ref does not bypass that mark.
func Transfer(batch *database.Batch, ref *TransferRef, newOwner address.Address) error {
	rec, err := Get(batch, ref.addr)
	if err != nil {
		return err
	}
	if rec.Untransferable {
		return errors.NotAllowed.WithFormat("object %v is untransferable", ref.addr)
	}
	rec.Owner = newOwner
	return batch.PutValue(ref.addr, recordKind, rec)
}

// SetUntransferable permanently marks the object untransferable.
func SetUntransferable(batch *database.Batch, ref *ConstructorRef) error {
	rec, err := Get(batch, ref.addr)
	if err != nil {
		return err
	}
	rec.Untransferable = true
	return batch.PutValue(ref.addr, recordKind, rec)
}

// Delete removes the object.
func Delete(batch *database.Batch, ref *DeleteRef) error {
	_, err := Get(batch, ref.addr)
	if err != nil {
		return err
	}
	return batch.DeleteValue(ref.addr, recordKind)
}
