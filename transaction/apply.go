// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Apply - payload then references and fees
//
// the transaction must have validated against the same state
func (t *Transaction) Apply(c *Context) error {
	if err := t.ApplyPayload(c); nil != err {
		return err
	}
	return t.ApplyReferencesAndFees(c)
}

// Undo - exact inverse of Apply
func (t *Transaction) Undo(c *Context) error {
	if err := t.UndoReferencesAndFees(c); nil != err {
		return err
	}
	return t.UndoPayload(c)
}

// ApplyPayload - balance movements then the type specific changes
func (t *Transaction) ApplyPayload(c *Context) error {
	transactionrecord.ResetApplied(t.Record)

	h := handlers[t.Type()]

	// ids assigned by the payload are needed by the balance movements
	if nil != h.apply {
		if err := h.apply(c, t.Record); nil != err {
			return err
		}
	}
	for _, e := range t.effects() {
		if err := c.State.ModifyBalance(e.address, e.asset, e.amount); nil != err {
			return err
		}
	}
	return nil
}

// UndoPayload - inverse of ApplyPayload
func (t *Transaction) UndoPayload(c *Context) error {
	effects := t.effects()
	for i := len(effects) - 1; i >= 0; i -= 1 {
		e := effects[i]
		if err := c.State.ModifyBalance(e.address, e.asset, -e.amount); nil != err {
			return err
		}
	}

	h := handlers[t.Type()]
	if nil != h.undo {
		return h.undo(c, t.Record)
	}
	return nil
}

// ApplyReferencesAndFees - debit the fee, record the creator's key
// and advance its reference; give recipients without a reference
// this one
func (t *Transaction) ApplyReferencesAndFees(c *Context) error {
	head := t.Record.Head()
	signature := head.Signature

	if transactionrecord.GenesisTag != t.Type() {
		creator := t.Creator()
		recorded, err := c.State.EnsureAccount(creator, &head.Creator)
		if nil != err {
			return err
		}
		head.KeyRecorded = recorded

		if err := c.State.ModifyBalance(creator, state.NativeAsset, -head.Fee); nil != err {
			return err
		}
		if err := c.State.SetLastReference(creator, signature); nil != err {
			return err
		}
	}

	if !handlers[t.Type()].initialReference {
		return nil
	}
	for _, recipient := range t.Recipients() {
		if recipient == t.Creator() {
			continue
		}
		reference, err := c.State.GetLastReference(recipient)
		if nil != err {
			return err
		}
		if reference.IsNull() {
			if err := c.State.SetLastReference(recipient, signature); nil != err {
				return err
			}
		}
	}
	return nil
}

// UndoReferencesAndFees - inverse of ApplyReferencesAndFees
func (t *Transaction) UndoReferencesAndFees(c *Context) error {
	head := t.Record.Head()
	signature := head.Signature

	if handlers[t.Type()].initialReference {
		recipients := t.Recipients()
		for i := len(recipients) - 1; i >= 0; i -= 1 {
			if recipients[i] == t.Creator() {
				continue
			}
			reference, err := c.State.GetLastReference(recipients[i])
			if nil != err {
				return err
			}
			if reference == signature {
				if err := c.State.SetLastReference(recipients[i], account.NullSignature); nil != err {
					return err
				}
			}
		}
	}

	if transactionrecord.GenesisTag == t.Type() {
		return nil
	}

	creator := t.Creator()
	if err := c.State.SetLastReference(creator, head.Reference); nil != err {
		return err
	}
	if err := c.State.ModifyBalance(creator, state.NativeAsset, head.Fee); nil != err {
		return err
	}
	if head.KeyRecorded {
		return c.State.ClearPublicKey(creator)
	}
	return nil
}
