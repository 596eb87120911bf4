// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func runPayment(c *cli.Context) error {
	key, err := signingKey(c)
	if nil != err {
		return err
	}

	to := c.String("to")
	if "" == to {
		return ErrMissingArgument
	}
	recipient, err := account.AddressFromBase58(to)
	if nil != err {
		return ErrUnknownRecipient
	}

	value, err := amount.Parse(c.String("amount"))
	if nil != err {
		return err
	}

	h, err := header(c)
	if nil != err {
		return err
	}

	return output(c, key, &transactionrecord.Payment{
		Header:    h,
		Recipient: recipient,
		Amount:    value,
	})
}
