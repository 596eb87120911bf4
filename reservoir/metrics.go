// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsAdmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledgerd",
		Subsystem: "reservoir",
		Name:      "admitted_total",
		Help:      "Transactions accepted into the unconfirmed pool.",
	})
	transactionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgerd",
		Subsystem: "reservoir",
		Name:      "rejected_total",
		Help:      "Submitted transactions that were refused, by result.",
	}, []string{"result"})
	transactionsPending = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "ledgerd",
		Subsystem: "reservoir",
		Name:      "pending",
		Help:      "Transactions waiting to be confirmed.",
	})
)
