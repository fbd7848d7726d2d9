// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package fungible implements the fungible-asset ledger: asset metadata,
// supply accounting, balance stores, capability refs, and the dispatch
// override protocol.
package fungible

import (
	"gitlab.com/meridianledger/meridian/internal/database"
	"gitlab.com/meridianledger/meridian/internal/events"
	"gitlab.com/meridianledger/meridian/internal/logging"
	"gitlab.com/meridianledger/meridian/pkg/database/keyvalue"
	"gitlab.com/meridianledger/meridian/protocol"
)

// Record kinds of the asset ledger.
const (
	kindMetadata          = "asset/metadata"
	kindSupply            = "asset/supply"
	kindConcurrentSupply  = "asset/supply/concurrent"
	kindStore             = "asset/store"
	kindConcurrentBalance = "asset/balance/concurrent"
	kindDispatch          = "asset/dispatch"
	kindDeriveSupply      = "asset/dispatch/supply"
	kindUntransferable    = "asset/untransferable"
	kindManaged           = "asset/managed"
	kindPermission        = "asset/permission"
)

// Ledger is a fungible-asset ledger over a key-value store.
type Ledger struct {
	store    keyvalue.Beginner
	features protocol.Features
	hooks    *HookRegistry
	bus      *events.Bus
	logger   logging.OptionalLogger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the ledger's logger.
func WithLogger(l logging.Logger) Option {
	return func(g *Ledger) { g.logger.Set(l, "module", "fungible") }
}

// WithFeatures sets the ledger's feature gates.
func WithFeatures(f protocol.Features) Option {
	return func(g *Ledger) { g.features = f }
}

// WithHooks sets the hook registry used for dispatch.
func WithHooks(h *HookRegistry) Option {
	return func(g *Ledger) { g.hooks = h }
}

// WithEvents sets the event bus.
func WithEvents(b *events.Bus) Option {
	return func(g *Ledger) { g.bus = b }
}

// NewLedger constructs a ledger with default features, a fresh hook
// registry, and a private event bus unless options say otherwise.
func NewLedger(store keyvalue.Beginner, opts ...Option) *Ledger {
	g := &Ledger{store: store, features: protocol.DefaultFeatures()}
	for _, o := range opts {
		o(g)
	}
	if g.hooks == nil {
		g.hooks = NewHookRegistry()
	}
	if g.bus == nil {
		g.bus = events.NewBus(g.logger)
	}
	return g
}

// Features returns the ledger's feature gates.
func (g *Ledger) Features() protocol.Features { return g.features }

// Hooks returns the ledger's hook registry.
func (g *Ledger) Hooks() *HookRegistry { return g.hooks }

// Events returns the ledger's event bus.
func (g *Ledger) Events() *events.Bus { return g.bus }

// Begin begins a batch of ledger operations. The batch either commits as a
// whole or is discarded; there is no partial commit.
func (g *Ledger) Begin(writable bool) *Batch {
	return &Batch{
		ledger: g,
		batch:  database.NewBatch(g.store.Begin(writable), g.logger.L),
	}
}

// Batch is a set of ledger operations that commit atomically.
type Batch struct {
	ledger  *Ledger
	batch   *database.Batch
	pending []events.Event
}

// Commit commits the batch. Events emitted by the batch's operations are
// published only after the commit succeeds.
func (b *Batch) Commit() error {
	err := b.batch.Commit()
	if err != nil {
		return err
	}
	for _, e := range b.pending {
		b.ledger.bus.Publish(e)
	}
	b.pending = nil
	return nil
}

// Discard discards the batch and its unpublished events.
func (b *Batch) Discard() {
	b.pending = nil
	b.batch.Discard()
}

// Database returns the underlying record batch, for collaborators such as
// the object layer that share the ledger's storage.
func (b *Batch) Database() *database.Batch { return b.batch }

func (b *Batch) publish(event events.Event) {
	b.pending = append(b.pending, event)
}
