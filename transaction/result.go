// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"strconv"
)

// Result - outcome of validating a transaction
//
// a rejection is an expected value returned to the submitter, never an
// error; the numeric values are part of the external interface
type Result int

// possible results
const (
	OK                               Result = 1
	INVALID_ADDRESS                  Result = 2
	NEGATIVE_AMOUNT                  Result = 3
	NEGATIVE_FEE                     Result = 4
	NO_BALANCE                       Result = 5
	INVALID_REFERENCE                Result = 6
	INVALID_NAME_LENGTH              Result = 7
	INVALID_VALUE_LENGTH             Result = 8
	NAME_ALREADY_REGISTERED          Result = 9
	NAME_DOES_NOT_EXIST              Result = 10
	INVALID_NAME_OWNER               Result = 11
	INVALID_AMOUNT                   Result = 15
	NAME_NOT_LOWER_CASE              Result = 17
	INVALID_DESCRIPTION_LENGTH       Result = 18
	INVALID_DATA_LENGTH              Result = 26
	INVALID_QUANTITY                 Result = 27
	ASSET_DOES_NOT_EXIST             Result = 28
	ASSET_ALREADY_EXISTS             Result = 41
	TIMESTAMP_TOO_OLD                Result = 43
	TIMESTAMP_TOO_NEW                Result = 44
	TOO_MANY_UNCONFIRMED             Result = 45
	GROUP_ALREADY_EXISTS             Result = 46
	GROUP_DOES_NOT_EXIST             Result = 47
	INVALID_GROUP_OWNER              Result = 48
	ALREADY_GROUP_MEMBER             Result = 49
	GROUP_OWNER_CANNOT_LEAVE         Result = 50
	NOT_GROUP_MEMBER                 Result = 51
	ALREADY_GROUP_ADMIN              Result = 52
	NOT_GROUP_ADMIN                  Result = 53
	INVITE_UNKNOWN                   Result = 55
	BAN_UNKNOWN                      Result = 57
	BANNED_FROM_GROUP                Result = 58
	JOIN_REQUEST_EXISTS              Result = 59
	INVALID_GROUP_APPROVAL_THRESHOLD Result = 60
	TRANSACTION_ALREADY_EXISTS       Result = 64
	INVALID_REASON_LENGTH            Result = 65
	INVALID_GROUP_BLOCK_DELAY        Result = 66
	INVALID_MESSAGE_CONTENT          Result = 67
	INVALID_SIGNATURE                Result = 68
	INVALID_GENESIS                  Result = 69
	NOT_YET_RELEASED                 Result = 1000
)

var resultNames = map[Result]string{
	OK:                               "OK",
	INVALID_ADDRESS:                  "INVALID_ADDRESS",
	NEGATIVE_AMOUNT:                  "NEGATIVE_AMOUNT",
	NEGATIVE_FEE:                     "NEGATIVE_FEE",
	NO_BALANCE:                       "NO_BALANCE",
	INVALID_REFERENCE:                "INVALID_REFERENCE",
	INVALID_NAME_LENGTH:              "INVALID_NAME_LENGTH",
	INVALID_VALUE_LENGTH:             "INVALID_VALUE_LENGTH",
	NAME_ALREADY_REGISTERED:          "NAME_ALREADY_REGISTERED",
	NAME_DOES_NOT_EXIST:              "NAME_DOES_NOT_EXIST",
	INVALID_NAME_OWNER:               "INVALID_NAME_OWNER",
	INVALID_AMOUNT:                   "INVALID_AMOUNT",
	NAME_NOT_LOWER_CASE:              "NAME_NOT_LOWER_CASE",
	INVALID_DESCRIPTION_LENGTH:       "INVALID_DESCRIPTION_LENGTH",
	INVALID_DATA_LENGTH:              "INVALID_DATA_LENGTH",
	INVALID_QUANTITY:                 "INVALID_QUANTITY",
	ASSET_DOES_NOT_EXIST:             "ASSET_DOES_NOT_EXIST",
	ASSET_ALREADY_EXISTS:             "ASSET_ALREADY_EXISTS",
	TIMESTAMP_TOO_OLD:                "TIMESTAMP_TOO_OLD",
	TIMESTAMP_TOO_NEW:                "TIMESTAMP_TOO_NEW",
	TOO_MANY_UNCONFIRMED:             "TOO_MANY_UNCONFIRMED",
	GROUP_ALREADY_EXISTS:             "GROUP_ALREADY_EXISTS",
	GROUP_DOES_NOT_EXIST:             "GROUP_DOES_NOT_EXIST",
	INVALID_GROUP_OWNER:              "INVALID_GROUP_OWNER",
	ALREADY_GROUP_MEMBER:             "ALREADY_GROUP_MEMBER",
	GROUP_OWNER_CANNOT_LEAVE:         "GROUP_OWNER_CANNOT_LEAVE",
	NOT_GROUP_MEMBER:                 "NOT_GROUP_MEMBER",
	ALREADY_GROUP_ADMIN:              "ALREADY_GROUP_ADMIN",
	NOT_GROUP_ADMIN:                  "NOT_GROUP_ADMIN",
	INVITE_UNKNOWN:                   "INVITE_UNKNOWN",
	BAN_UNKNOWN:                      "BAN_UNKNOWN",
	BANNED_FROM_GROUP:                "BANNED_FROM_GROUP",
	JOIN_REQUEST_EXISTS:              "JOIN_REQUEST_EXISTS",
	INVALID_GROUP_APPROVAL_THRESHOLD: "INVALID_GROUP_APPROVAL_THRESHOLD",
	TRANSACTION_ALREADY_EXISTS:       "TRANSACTION_ALREADY_EXISTS",
	INVALID_REASON_LENGTH:            "INVALID_REASON_LENGTH",
	INVALID_GROUP_BLOCK_DELAY:        "INVALID_GROUP_BLOCK_DELAY",
	INVALID_MESSAGE_CONTENT:          "INVALID_MESSAGE_CONTENT",
	INVALID_SIGNATURE:                "INVALID_SIGNATURE",
	INVALID_GENESIS:                  "INVALID_GENESIS",
	NOT_YET_RELEASED:                 "NOT_YET_RELEASED",
}

// String - the name of a result
func (r Result) String() string {
	if s, ok := resultNames[r]; ok {
		return s
	}
	return "RESULT_" + strconv.Itoa(int(r))
}

// MarshalText - results are reported by name
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
