// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// genesis

// the block that may carry genesis records
const genesisHeight = 1

func genesisRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.Genesis).Recipient}
}

func genesisEffects(t transactionrecord.Transaction) []effect {
	tx := t.(*transactionrecord.Genesis)
	if 0 == tx.Amount {
		return nil
	}
	return []effect{
		{address: tx.Recipient, asset: tx.Asset, amount: tx.Amount},
	}
}

func validateGenesis(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.Genesis)
	if genesisHeight != c.State.Height() {
		return INVALID_GENESIS, nil
	}
	if !tx.Recipient.IsValid() {
		return INVALID_ADDRESS, nil
	}
	if tx.Amount < 0 {
		return NEGATIVE_AMOUNT, nil
	}
	if 0 == tx.Amount {
		return OK, nil
	}
	return validAmount(c, tx.Asset, tx.Amount)
}

// level and flags of the initial accounts
func applyGenesis(c *Context, t transactionrecord.Transaction) error {
	tx := t.(*transactionrecord.Genesis)
	return c.State.UpdateAccount(tx.Recipient, func(a *state.Account) error {
		tx.Applied.PreviousLevel = a.Level
		tx.Applied.PreviousFlags = a.Flags
		a.Level = tx.Level
		a.InitialLevel = tx.Level
		a.Flags = tx.Flags
		return nil
	})
}

func undoGenesis(c *Context, t transactionrecord.Transaction) error {
	tx := t.(*transactionrecord.Genesis)
	return c.State.UpdateAccount(tx.Recipient, func(a *state.Account) error {
		a.Level = tx.Applied.PreviousLevel
		a.InitialLevel = tx.Applied.PreviousLevel
		a.Flags = tx.Applied.PreviousFlags
		return nil
	})
}

// payment

func paymentRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.Payment).Recipient}
}

func paymentEffects(t transactionrecord.Transaction) []effect {
	tx := t.(*transactionrecord.Payment)
	return transfer(tx.CreatorAddress(), tx.Recipient, state.NativeAsset, tx.Amount)
}

func validatePayment(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.Payment)
	if !tx.Recipient.IsValid() {
		return INVALID_ADDRESS, nil
	}
	return validAmount(c, state.NativeAsset, tx.Amount)
}

// transfer asset

func transferAssetRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.TransferAsset).Recipient}
}

func transferAssetEffects(t transactionrecord.Transaction) []effect {
	tx := t.(*transactionrecord.TransferAsset)
	return transfer(tx.CreatorAddress(), tx.Recipient, tx.Asset, tx.Amount)
}

func validateTransferAsset(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.TransferAsset)
	if !tx.Recipient.IsValid() {
		return INVALID_ADDRESS, nil
	}
	return validAmount(c, tx.Asset, tx.Amount)
}

// message

func messageRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.Message).Recipient}
}

func messageEffects(t transactionrecord.Transaction) []effect {
	tx := t.(*transactionrecord.Message)
	if 0 == tx.Amount {
		return nil
	}
	return transfer(tx.CreatorAddress(), tx.Recipient, tx.Asset, tx.Amount)
}

// carries an amount or some data, never both
func validateMessage(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.Message)
	if !tx.Recipient.IsValid() {
		return INVALID_ADDRESS, nil
	}
	if len(tx.Data) > transactionrecord.MaxDataLength {
		return INVALID_DATA_LENGTH, nil
	}
	if tx.Amount < 0 {
		return NEGATIVE_AMOUNT, nil
	}
	hasAmount := 0 != tx.Amount
	hasData := 0 != len(tx.Data)
	if hasAmount == hasData {
		return INVALID_MESSAGE_CONTENT, nil
	}
	if hasAmount {
		return validAmount(c, tx.Asset, tx.Amount)
	}
	return OK, nil
}

// debit then credit
func transfer(from account.Address, to account.Address, asset uint64, value amount.Amount) []effect {
	return []effect{
		{address: from, asset: asset, amount: -value},
		{address: to, asset: asset, amount: value},
	}
}
