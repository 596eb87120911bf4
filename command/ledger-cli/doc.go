// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// ledger-cli - build and sign ledger transactions offline
//
// signed transactions are printed as hex, ready for:
//   ledgerd --config-file=FILE submit HEX
//
// the signing seed is taken from --seed or the LEDGER_SEED
// environment variable; --reference must be the signature of the
// creator's previous transaction, or blank for a new account
package main
