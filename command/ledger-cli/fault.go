// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/ledgerd/fault"
)

// common errors - keep in alphabetic order
const (
	ErrMissingArgument  = fault.InvalidError("missing argument")
	ErrMissingSeed      = fault.NotFoundError("seed is required")
	ErrNotHex           = fault.InvalidError("not a hex string")
	ErrTrailingBytes    = fault.LengthError("trailing bytes after transaction")
	ErrUnknownRecipient = fault.InvalidError("recipient is not a valid address")
)
