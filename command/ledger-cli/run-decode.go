// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

type decoded struct {
	Type           string                        `json:"type"`
	Creator        account.Address               `json:"creator_address"`
	SignatureValid bool                          `json:"signature_valid"`
	Record         transactionrecord.Transaction `json:"record"`
}

func runDecode(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	s := strings.TrimSpace(c.Args().First())
	if "" == s {
		return ErrMissingArgument
	}
	buffer, err := hex.DecodeString(s)
	if nil != err {
		return ErrNotHex
	}

	record, n, err := transactionrecord.Packed(buffer).Unpack()
	if nil != err {
		return err
	}
	if n != len(buffer) {
		return ErrTrailingBytes
	}

	return printJson(m.w, decoded{
		Type:           record.Type().String(),
		Creator:        record.Head().CreatorAddress(),
		SignatureValid: nil == transactionrecord.CheckSignature(record),
		Record:         record,
	})
}
