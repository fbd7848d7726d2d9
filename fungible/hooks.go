// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package fungible

import (
	"math/big"
	"sync"

	"gitlab.com/meridianledger/meridian/pkg/errors"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
	"gitlab.com/meridianledger/meridian/protocol"
)

// HookKind is the fixed signature shape of a dispatch hook.
type HookKind int

const (
	KindWithdraw HookKind = iota + 1
	KindDeposit
	KindDeriveBalance
	KindDeriveSupply
)

func (k HookKind) String() string {
	switch k {
	case KindWithdraw:
		return "withdraw"
	case KindDeposit:
		return "deposit"
	case KindDeriveBalance:
		return "derive-balance"
	case KindDeriveSupply:
		return "derive-supply"
	default:
		return "unknown"
	}
}

// WithdrawHook overrides the withdraw path. The hook is expected to call
// WithdrawWithRef internally and return a value of exactly the requested
// amount; the trampoline verifies the store's balance delta afterward.
type WithdrawHook func(b *Batch, owner, store address.Address, amount uint64, ref *TransferRef) (*FungibleAsset, error)

// DepositHook overrides the deposit path. The hook is expected to call
// DepositWithRef internally.
type DepositHook func(b *Batch, store address.Address, fa *FungibleAsset, ref *TransferRef) error

// DeriveBalanceHook overrides balance derivation.
type DeriveBalanceHook func(b *Batch, store address.Address) (uint64, error)

// DeriveSupplyHook overrides supply derivation.
type DeriveSupplyHook func(b *Batch, metadata address.Address) (*big.Int, error)

type publishedHook struct {
	kind HookKind
	fn   interface{}
}

// HookRegistry models the module loader: functions published by name with a
// declared signature shape, resolvable by FunctionInfo. Registration of
// dispatch functions checks a candidate's shape here exactly once; per-call
// dispatch is a plain lookup.
type HookRegistry struct {
	mu    sync.RWMutex
	hooks map[protocol.FunctionInfo]publishedHook
}

func NewHookRegistry() *HookRegistry {
	return &HookRegistry{hooks: map[protocol.FunctionInfo]publishedHook{}}
}

func (r *HookRegistry) publish(fi protocol.FunctionInfo, kind HookKind, fn interface{}) error {
	err := fi.Validate()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hooks[fi]; ok {
		return errors.Conflict.WithFormat("function %v is already published", fi)
	}
	r.hooks[fi] = publishedHook{kind: kind, fn: fn}
	return nil
}

// PublishWithdraw publishes a withdraw-shaped function.
func (r *HookRegistry) PublishWithdraw(fi protocol.FunctionInfo, fn WithdrawHook) error {
	return r.publish(fi, KindWithdraw, fn)
}

// PublishDeposit publishes a deposit-shaped function.
func (r *HookRegistry) PublishDeposit(fi protocol.FunctionInfo, fn DepositHook) error {
	return r.publish(fi, KindDeposit, fn)
}

// PublishDeriveBalance publishes a derive-balance-shaped function.
func (r *HookRegistry) PublishDeriveBalance(fi protocol.FunctionInfo, fn DeriveBalanceHook) error {
	return r.publish(fi, KindDeriveBalance, fn)
}

// PublishDeriveSupply publishes a derive-supply-shaped function.
func (r *HookRegistry) PublishDeriveSupply(fi protocol.FunctionInfo, fn DeriveSupplyHook) error {
	return r.publish(fi, KindDeriveSupply, fn)
}

// Verify checks that the named function exists and has the expected shape.
func (r *HookRegistry) Verify(fi protocol.FunctionInfo, kind HookKind) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hooks[fi]
	if !ok {
		return errors.NotFound.WithFormat("function %v not found", fi)
	}
	if h.kind != kind {
		return errors.BadRequest.WithFormat("function %v is %v-shaped, want %v", fi, h.kind, kind)
	}
	return nil
}

func (r *HookRegistry) resolve(fi protocol.FunctionInfo, kind HookKind) (interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hooks[fi]
	if !ok {
		return nil, errors.InternalError.WithFormat("registered function %v is no longer published", fi)
	}
	if h.kind != kind {
		return nil, errors.InternalError.WithFormat("registered function %v is %v-shaped, want %v", fi, h.kind, kind)
	}
	return h.fn, nil
}

func (r *HookRegistry) resolveWithdraw(fi protocol.FunctionInfo) (WithdrawHook, error) {
	fn, err := r.resolve(fi, KindWithdraw)
	if err != nil {
		return nil, err
	}
	return fn.(WithdrawHook), nil
}

func (r *HookRegistry) resolveDeposit(fi protocol.FunctionInfo) (DepositHook, error) {
	fn, err := r.resolve(fi, KindDeposit)
	if err != nil {
		return nil, err
	}
	return fn.(DepositHook), nil
}

func (r *HookRegistry) resolveDeriveBalance(fi protocol.FunctionInfo) (DeriveBalanceHook, error) {
	fn, err := r.resolve(fi, KindDeriveBalance)
	if err != nil {
		return nil, err
	}
	return fn.(DeriveBalanceHook), nil
}

func (r *HookRegistry) resolveDeriveSupply(fi protocol.FunctionInfo) (DeriveSupplyHook, error) {
	fn, err := r.resolve(fi, KindDeriveSupply)
	if err != nil {
		return nil, err
	}
	return fn.(DeriveSupplyHook), nil
}
