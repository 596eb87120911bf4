// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/ledgerd/fault"
)

// command errors - keep in alphabetic order
const (
	ErrAlreadyInitialised = fault.ExistsError("chain already has a genesis block")
	ErrBlockRejected      = fault.InvalidError("block rejected")
	ErrEmptyChain         = fault.NotFoundError("chain has no blocks, run init first")
	ErrMissingArgument    = fault.InvalidError("missing argument")
	ErrNoPending          = fault.NotFoundError("no pending transactions to mint")
	ErrNotHex             = fault.InvalidError("not a hex string")
	ErrTransactionRefused = fault.InvalidError("transaction refused")
	ErrUnknownCommand     = fault.NotFoundError("unknown command")
)
