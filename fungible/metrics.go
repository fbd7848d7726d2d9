// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package fungible

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger operation metrics
var (
	opWithdraw = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "meridian",
		Subsystem: "fungible",
		Name:      "withdraw_total",
		Help:      "Number of withdrawals",
	})
	opDeposit = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "meridian",
		Subsystem: "fungible",
		Name:      "deposit_total",
		Help:      "Number of deposits",
	})
	opMint = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "meridian",
		Subsystem: "fungible",
		Name:      "mint_total",
		Help:      "Number of mints",
	})
	opBurn = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "meridian",
		Subsystem: "fungible",
		Name:      "burn_total",
		Help:      "Number of burns",
	})
	opTransfer = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "meridian",
		Subsystem: "fungible",
		Name:      "transfer_total",
		Help:      "Number of transfers",
	})
)
