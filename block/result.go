// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"strconv"
)

// Result - outcome of validating a block
type Result int

// possible results
const (
	OK                             Result = 1
	INVALID_VERSION                Result = 2
	PARENT_DOES_NOT_EXIST          Result = 3
	TIMESTAMP_OLDER_THAN_PARENT    Result = 4
	INVALID_GENESIS_TIMESTAMP      Result = 5
	TOO_MANY_TRANSACTIONS          Result = 6
	BLOCK_TOO_LARGE                Result = 7
	INVALID_MINTER_SIGNATURE       Result = 8
	INVALID_TRANSACTIONS_SIGNATURE Result = 9
	MINTER_NOT_ACCEPTED            Result = 10
	INVALID_MINTING_WEIGHT         Result = 11
	DUPLICATE_TRANSACTION          Result = 12
	GENESIS_TRANSACTIONS_INVALID   Result = 13
	TRANSACTION_INVALID            Result = 14
	NEGATIVE_AT_FEES               Result = 15
	INVALID_FEES                   Result = 16
)

var resultNames = map[Result]string{
	OK:                             "OK",
	INVALID_VERSION:                "INVALID_VERSION",
	PARENT_DOES_NOT_EXIST:          "PARENT_DOES_NOT_EXIST",
	TIMESTAMP_OLDER_THAN_PARENT:    "TIMESTAMP_OLDER_THAN_PARENT",
	INVALID_GENESIS_TIMESTAMP:      "INVALID_GENESIS_TIMESTAMP",
	TOO_MANY_TRANSACTIONS:          "TOO_MANY_TRANSACTIONS",
	BLOCK_TOO_LARGE:                "BLOCK_TOO_LARGE",
	INVALID_MINTER_SIGNATURE:       "INVALID_MINTER_SIGNATURE",
	INVALID_TRANSACTIONS_SIGNATURE: "INVALID_TRANSACTIONS_SIGNATURE",
	MINTER_NOT_ACCEPTED:            "MINTER_NOT_ACCEPTED",
	INVALID_MINTING_WEIGHT:         "INVALID_MINTING_WEIGHT",
	DUPLICATE_TRANSACTION:          "DUPLICATE_TRANSACTION",
	GENESIS_TRANSACTIONS_INVALID:   "GENESIS_TRANSACTIONS_INVALID",
	TRANSACTION_INVALID:            "TRANSACTION_INVALID",
	NEGATIVE_AT_FEES:               "NEGATIVE_AT_FEES",
	INVALID_FEES:                   "INVALID_FEES",
}

// String - name of the result
func (r Result) String() string {
	if s, ok := resultNames[r]; ok {
		return s
	}
	return "RESULT_" + strconv.Itoa(int(r))
}
