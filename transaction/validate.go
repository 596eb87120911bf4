// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Validate - check a transaction against the current state
//
// a non-nil error is a fault; any rejection is returned as a Result
//
// order: release and timestamps, payload (structure, existence,
// authorisation), fee, reference, balance
func (t *Transaction) Validate(c *Context) (Result, error) {
	h := t.Record.Head()
	tag := t.Type()

	if transactionrecord.GenesisTag == tag {
		return handlers[tag].validate(c, t.Record)
	}

	if !c.Parameters.IsReleased(tag, h.Timestamp) {
		return NOT_YET_RELEASED, nil
	}
	if h.Timestamp > c.Timestamp {
		return TIMESTAMP_TOO_NEW, nil
	}
	if t.Deadline(c.Parameters) <= c.Timestamp {
		return TIMESTAMP_TOO_OLD, nil
	}

	exists, err := c.State.HasTransaction(h.Signature)
	if nil != err {
		return 0, err
	}
	if exists {
		return TRANSACTION_ALREADY_EXISTS, nil
	}

	result, err := handlers[tag].validate(c, t.Record)
	if nil != err || OK != result {
		return result, err
	}

	if h.Fee <= 0 {
		return NEGATIVE_FEE, nil
	}

	creator := t.Creator()
	reference, err := c.State.GetLastReference(creator)
	if nil != err {
		return 0, err
	}
	if reference != h.Reference {
		return INVALID_REFERENCE, nil
	}

	return t.checkBalances(c)
}

// the creator must hold the fee and everything the payload debits
func (t *Transaction) checkBalances(c *Context) (Result, error) {
	creator := t.Creator()
	needed := map[uint64]amount.Amount{
		state.NativeAsset: t.Record.Head().Fee,
	}

	var err error
	for _, e := range t.effects() {
		if e.address != creator || e.amount >= 0 {
			continue
		}
		needed[e.asset], err = needed[e.asset].Add(-e.amount)
		if nil != err {
			return INVALID_AMOUNT, nil
		}
	}

	for asset, need := range needed {
		balance, err := c.State.GetBalance(creator, asset)
		if nil != err {
			return 0, err
		}
		if balance < need {
			return NO_BALANCE, nil
		}
	}
	return OK, nil
}

// common payload checks

func validAmount(c *Context, asset uint64, value amount.Amount) (Result, error) {
	if value <= 0 {
		return NEGATIVE_AMOUNT, nil
	}
	a, err := c.State.GetAsset(asset)
	if nil != err {
		return 0, err
	}
	if nil == a {
		return ASSET_DOES_NOT_EXIST, nil
	}
	if !a.IsDivisible && !value.IsWhole() {
		return INVALID_AMOUNT, nil
	}
	return OK, nil
}

// names must be between 1 and the maximum bytes, and already reduced
func validName(name string) Result {
	if 0 == len(name) || len(name) > transactionrecord.MaxNameLength {
		return INVALID_NAME_LENGTH
	}
	if name != state.ReducedName(name) {
		return NAME_NOT_LOWER_CASE
	}
	return OK
}
