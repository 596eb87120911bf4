// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reservoir - the pool of unconfirmed transactions
//
// a submitted transaction is admitted only if it would apply on top of
// the confirmed chain after the creator's earlier pending transactions.
// The check runs inside a storage transaction that is always aborted,
// so the confirmed state never changes here.
//
// admitted transactions stay until they are confirmed in a block or
// reach their deadline
package reservoir
