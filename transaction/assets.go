// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// whole units that may be issued
const (
	minimumQuantity = 1
	maximumQuantity = 10000000000
)

func issueAssetRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.IssueAsset).Owner}
}

// the owner is credited with the whole quantity once an id is assigned
func issueAssetEffects(t transactionrecord.Transaction) []effect {
	tx := t.(*transactionrecord.IssueAsset)
	if 0 == tx.Applied.AssetId {
		return nil
	}
	return []effect{
		{address: tx.Owner, asset: tx.Applied.AssetId, amount: amount.Amount(tx.Quantity) * amount.Unit},
	}
}

func validateIssueAsset(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.IssueAsset)
	if !tx.Owner.IsValid() {
		return INVALID_ADDRESS, nil
	}
	if 0 == len(tx.AssetName) || len(tx.AssetName) > transactionrecord.MaxNameLength {
		return INVALID_NAME_LENGTH, nil
	}
	if 0 == len(tx.Description) || len(tx.Description) > transactionrecord.MaxDescriptionLength {
		return INVALID_DESCRIPTION_LENGTH, nil
	}
	if tx.Quantity < minimumQuantity || tx.Quantity > maximumQuantity {
		return INVALID_QUANTITY, nil
	}
	a, err := c.State.AssetByName(tx.AssetName)
	if nil != err {
		return 0, err
	}
	if nil != a {
		return ASSET_ALREADY_EXISTS, nil
	}
	return OK, nil
}

func applyIssueAsset(c *Context, t transactionrecord.Transaction) error {
	tx := t.(*transactionrecord.IssueAsset)
	id, err := c.State.IssueAsset(&state.Asset{
		Owner:       tx.Owner,
		Name:        tx.AssetName,
		Description: tx.Description,
		Quantity:    tx.Quantity,
		IsDivisible: tx.IsDivisible,
		Reference:   tx.Signature,
	})
	tx.Applied.AssetId = id
	return err
}

func undoIssueAsset(c *Context, t transactionrecord.Transaction) error {
	tx := t.(*transactionrecord.IssueAsset)
	if 0 == tx.Applied.AssetId {
		return fault.DataErrorf("issue asset: %s has no asset id", tx.Signature)
	}
	return c.State.DeleteAsset(tx.Applied.AssetId)
}
