// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func runCreateGroup(c *cli.Context) error {
	key, err := signingKey(c)
	if nil != err {
		return err
	}

	name := c.String("name")
	description := c.String("description")
	if "" == name || "" == description {
		return ErrMissingArgument
	}

	h, err := header(c)
	if nil != err {
		return err
	}

	return output(c, key, &transactionrecord.CreateGroup{
		Header:            h,
		GroupName:         name,
		Description:       description,
		IsOpen:            c.Bool("open"),
		ApprovalThreshold: uint8(c.Int("threshold")),
		MinimumBlockDelay: uint32(c.Int("minimum-delay")),
		MaximumBlockDelay: uint32(c.Int("maximum-delay")),
	})
}

func runJoinGroup(c *cli.Context) error {
	key, h, id, err := groupArguments(c)
	if nil != err {
		return err
	}
	return output(c, key, &transactionrecord.JoinGroup{
		Header:  h,
		GroupId: id,
	})
}

func runLeaveGroup(c *cli.Context) error {
	key, h, id, err := groupArguments(c)
	if nil != err {
		return err
	}
	return output(c, key, &transactionrecord.LeaveGroup{
		Header:  h,
		GroupId: id,
	})
}

func groupArguments(c *cli.Context) (*account.PrivateKey, transactionrecord.Header, uint32, error) {
	key, err := signingKey(c)
	if nil != err {
		return nil, transactionrecord.Header{}, 0, err
	}
	id := c.Int("group")
	if id <= 0 {
		return nil, transactionrecord.Header{}, 0, ErrMissingArgument
	}
	h, err := header(c)
	if nil != err {
		return nil, transactionrecord.Header{}, 0, err
	}
	return key, h, uint32(id), nil
}
