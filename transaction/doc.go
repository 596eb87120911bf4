// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - validate, apply and undo of transactions
//
// every record type has an entry in a dispatch table giving its
// recipients, its balance movements and its payload validate, apply
// and undo functions.  The reference and fee handling is common to
// all types except genesis.
//
// apply order:
//   ApplyPayload → ApplyReferencesAndFees
//
// undo order, only ever for the most recently applied transaction:
//   UndoReferencesAndFees → UndoPayload
//
// the fee is debited here; crediting the minter is done once per block
package transaction
