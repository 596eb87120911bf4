// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func printJson(handle io.Writer, message interface{}) error {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(handle, "%s\n", b)
	return err
}

func signingKey(c *cli.Context) (*account.PrivateKey, error) {
	seed := c.GlobalString("seed")
	if "" == seed {
		return nil, ErrMissingSeed
	}
	return account.PrivateKeyFromBase58Seed(seed)
}

// the common fields from the global flags
func header(c *cli.Context) (transactionrecord.Header, error) {
	h := transactionrecord.Header{
		Timestamp: c.GlobalInt64("timestamp"),
	}
	if 0 == h.Timestamp {
		h.Timestamp = time.Now().UnixNano() / int64(time.Millisecond)
	}

	fee, err := amount.Parse(c.GlobalString("fee"))
	if nil != err {
		return h, err
	}
	h.Fee = fee

	if reference := c.GlobalString("reference"); "" != reference {
		h.Reference, err = account.SignatureFromBase58(reference)
		if nil != err {
			return h, err
		}
	}
	return h, nil
}

// sign and print the hex form; verbose also shows the record
func output(c *cli.Context, key *account.PrivateKey, record transactionrecord.Transaction) error {
	m := c.App.Metadata["config"].(*metadata)

	packed, err := transactionrecord.Sign(record, key)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "type: %s\n", record.Type())
		fmt.Fprintf(m.e, "signature: %s\n", record.Head().Signature)
		printJson(m.e, record)
	}

	_, err = fmt.Fprintf(m.w, "%s\n", hex.EncodeToString(packed))
	return err
}
