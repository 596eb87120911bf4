// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package group - apply and undo of group transactions
//
// every satellite row carries the signature of the transaction that
// last wrote it.  Apply copies the reference of any row it is about to
// change onto the transaction's apply-time fields; undo fetches the
// transaction a saved reference names and rebuilds the row from it.
// Where the prior relation cannot be told from the saved references
// alone (a kick or ban of a join requester) apply records a branch
// marker.
//
// validation is done by the caller; a failure here means the stored
// state is inconsistent and is reported as a fault.DataError
package group
