// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blocksApplied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledgerd",
		Subsystem: "block",
		Name:      "applied_total",
		Help:      "Blocks added to the top of the chain.",
	})
	blocksOrphaned = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledgerd",
		Subsystem: "block",
		Name:      "orphaned_total",
		Help:      "Blocks removed from the top of the chain.",
	})
	blocksRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgerd",
		Subsystem: "block",
		Name:      "rejected_total",
		Help:      "Blocks that failed validation, by result.",
	}, []string{"result"})
	transactionsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledgerd",
		Subsystem: "block",
		Name:      "transactions_confirmed_total",
		Help:      "Transactions applied as part of a block.",
	})
	chainHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ledgerd",
		Subsystem: "block",
		Name:      "height",
		Help:      "Height of the top block.",
	})
)
