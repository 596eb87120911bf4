// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package block - signed batches of transactions and the atomic
// apply and undo of each batch
//
// a block is identified by its signature, the minter signature
// followed by the transactions signature:
//
//   minter signature       = sign(parent reference ‖ minting weight ‖ minter public key)
//   transactions signature = sign(minter signature ‖ transaction signatures...)
//
// blocks are applied strictly in height order and only the top block
// may be undone
package block
