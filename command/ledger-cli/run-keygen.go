// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/account"
)

type keyDisplay struct {
	Seed      string            `json:"seed,omitempty"`
	PublicKey account.PublicKey `json:"public_key"`
	Address   account.Address   `json:"address"`
}

func display(key *account.PrivateKey) keyDisplay {
	return keyDisplay{
		Seed:      key.Seed(),
		PublicKey: key.PublicKey(),
		Address:   key.Address(),
	}
}

func runKeygen(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	key, err := account.GenerateKey(rand.Reader)
	if nil != err {
		return err
	}
	return printJson(m.w, display(key))
}

func runAddress(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	key, err := signingKey(c)
	if nil != err {
		return err
	}
	d := display(key)
	d.Seed = ""
	return printJson(m.w, d)
}
