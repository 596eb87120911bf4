// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// register name

func registerNameRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.RegisterName).Owner}
}

func validateRegisterName(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.RegisterName)
	if !tx.Owner.IsValid() {
		return INVALID_ADDRESS, nil
	}
	if result := validName(tx.Name); OK != result {
		return result, nil
	}
	if len(tx.Data) > transactionrecord.MaxDataLength {
		return INVALID_VALUE_LENGTH, nil
	}
	n, err := c.State.GetName(tx.Name)
	if nil != err {
		return 0, err
	}
	if nil != n {
		return NAME_ALREADY_REGISTERED, nil
	}
	return OK, nil
}

func applyRegisterName(c *Context, t transactionrecord.Transaction) error {
	tx := t.(*transactionrecord.RegisterName)
	return c.State.PutName(&state.Name{
		Name:       tx.Name,
		Owner:      tx.Owner,
		Data:       tx.Data,
		Registered: tx.Timestamp,
		Reference:  tx.Signature,
	})
}

func undoRegisterName(c *Context, t transactionrecord.Transaction) error {
	return c.State.DeleteName(t.(*transactionrecord.RegisterName).Name)
}

// update name

func updateNameRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.UpdateName).NewOwner}
}

func validateUpdateName(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.UpdateName)
	if !tx.NewOwner.IsValid() {
		return INVALID_ADDRESS, nil
	}
	if result := validName(tx.Name); OK != result {
		return result, nil
	}
	if len(tx.NewData) > transactionrecord.MaxDataLength {
		return INVALID_VALUE_LENGTH, nil
	}
	n, err := c.State.GetName(tx.Name)
	if nil != err {
		return 0, err
	}
	if nil == n {
		return NAME_DOES_NOT_EXIST, nil
	}
	if n.Owner != tx.CreatorAddress() {
		return INVALID_NAME_OWNER, nil
	}
	return OK, nil
}

func applyUpdateName(c *Context, t transactionrecord.Transaction) error {
	tx := t.(*transactionrecord.UpdateName)
	n, err := c.State.GetName(tx.Name)
	if nil != err {
		return err
	}
	if nil == n {
		return fault.DataErrorf("name: %q does not exist", tx.Name)
	}
	tx.Applied.NameReference = n.Reference
	n.Owner = tx.NewOwner
	n.Data = tx.NewData
	n.Updated = tx.Timestamp
	n.Reference = tx.Signature
	return c.State.PutName(n)
}

// rebuild owner and data from the transaction that last set them
func undoUpdateName(c *Context, t transactionrecord.Transaction) error {
	tx := t.(*transactionrecord.UpdateName)
	n, err := c.State.GetName(tx.Name)
	if nil != err {
		return err
	}
	if nil == n {
		return fault.DataErrorf("name: %q does not exist", tx.Name)
	}
	record, err := c.State.GetTransactionRecord(tx.Applied.NameReference)
	if nil != err {
		return err
	}
	switch previous := record.(type) {
	case *transactionrecord.RegisterName:
		n.Owner = previous.Owner
		n.Data = previous.Data
		n.Updated = 0
	case *transactionrecord.UpdateName:
		n.Owner = previous.NewOwner
		n.Data = previous.NewData
		n.Updated = previous.Timestamp
	default:
		return fault.DataErrorf("name: %q reference: %s is a: %s", tx.Name, tx.Applied.NameReference, record.Type())
	}
	n.Reference = tx.Applied.NameReference
	return c.State.PutName(n)
}
