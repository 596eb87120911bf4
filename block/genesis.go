// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/transaction"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Allocation - one genesis record
type Allocation struct {
	Address account.Address `json:"address"`
	Asset   uint64          `json:"asset"`
	Amount  amount.Amount   `json:"amount"`
	Level   uint8           `json:"level"`
	Flags   uint32          `json:"flags"`
}

// NewGenesis - the first block, signed by the key given
func NewGenesis(parameters *chain.Parameters, key *account.PrivateKey, allocations []Allocation) (*Block, error) {
	b := &Block{
		Version:      Version,
		Timestamp:    parameters.GenesisTimestamp,
		Transactions: make([]*transaction.Transaction, 0, len(allocations)),
	}

	for _, a := range allocations {
		record := &transactionrecord.Genesis{
			Header: transactionrecord.Header{
				Timestamp: parameters.GenesisTimestamp,
			},
			Recipient: a.Address,
			Asset:     a.Asset,
			Amount:    a.Amount,
			Level:     a.Level,
			Flags:     a.Flags,
		}
		if _, err := transactionrecord.Sign(record, nil); nil != err {
			return nil, err
		}
		tx, err := transaction.New(record)
		if nil != err {
			return nil, err
		}
		b.Transactions = append(b.Transactions, tx)
	}

	b.Sign(key)
	return b, nil
}
