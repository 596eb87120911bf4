// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transaction"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Rejection - which transaction made a block invalid
type Rejection struct {
	Index  int                `json:"index"`
	Result transaction.Result `json:"result"`
}

// Validate - check a block against the top of the chain
//
// the transactions are applied in sequence under a savepoint and
// rolled back, so the write transaction is left as it was
func Validate(trx *storage.Transaction, parameters *chain.Parameters, b *Block) (Result, *Rejection, error) {
	if Version != b.Version {
		return INVALID_VERSION, nil, nil
	}

	s := state.New(trx, 0)
	parent, err := topHeader(s)
	if nil != err {
		return 0, nil, err
	}

	height := uint64(GenesisHeight)
	if nil == parent {
		if !b.Reference.IsNull() {
			return PARENT_DOES_NOT_EXIST, nil, nil
		}
		if b.Timestamp != parameters.GenesisTimestamp {
			return INVALID_GENESIS_TIMESTAMP, nil, nil
		}
	} else {
		if b.Reference != parent.Signature() {
			return PARENT_DOES_NOT_EXIST, nil, nil
		}
		if b.Timestamp <= parent.Timestamp {
			return TIMESTAMP_OLDER_THAN_PARENT, nil, nil
		}
		height = parent.Height + 1
	}
	s.SetHeight(height)

	if len(b.Transactions) > parameters.MaximumBlockTransactions {
		return TOO_MANY_TRANSACTIONS, nil, nil
	}
	if len(b.Pack()) > parameters.MaximumBlockBytes {
		return BLOCK_TOO_LARGE, nil, nil
	}
	if b.ATFees < 0 {
		return NEGATIVE_AT_FEES, nil, nil
	}
	if _, err := b.TotalFees(); nil != err {
		return INVALID_FEES, nil, nil
	}

	if nil != b.CheckMinterSignature() {
		return INVALID_MINTER_SIGNATURE, nil, nil
	}
	if nil != b.CheckTransactionsSignature() {
		return INVALID_TRANSACTIONS_SIGNATURE, nil, nil
	}

	if GenesisHeight != height {
		result, err := validateMinter(s, parameters, b)
		if nil != err || OK != result {
			return result, nil, err
		}
	}

	seen := make(map[account.Signature]struct{}, len(b.Transactions))
	for _, tx := range b.Transactions {
		isGenesis := transactionrecord.GenesisTag == tx.Type()
		if isGenesis != (GenesisHeight == height) {
			return GENESIS_TRANSACTIONS_INVALID, nil, nil
		}
		if _, ok := seen[tx.Signature()]; ok {
			return DUPLICATE_TRANSACTION, nil, nil
		}
		seen[tx.Signature()] = struct{}{}
	}

	savepoint := trx.Savepoint()
	c := &transaction.Context{
		State:      s,
		Parameters: parameters,
		Timestamp:  b.Timestamp,
	}
	rejection, err := applyTransactions(c, b.Transactions, true)
	if rollbackErr := trx.RollbackTo(savepoint); nil != rollbackErr {
		return 0, nil, rollbackErr
	}
	if nil != err {
		return 0, nil, err
	}
	if nil != rejection {
		return TRANSACTION_INVALID, rejection, nil
	}
	return OK, nil, nil
}

// the minter must be allowed to mint and claim its own level as weight
func validateMinter(s *state.State, parameters *chain.Parameters, b *Block) (Result, error) {
	a, err := s.GetAccount(b.MinterAddress())
	if nil != err {
		return 0, err
	}
	if nil == a {
		return MINTER_NOT_ACCEPTED, nil
	}
	if a.Level < parameters.MinimumMintingLevel && 0 == a.Flags&chain.FlagFounder {
		return MINTER_NOT_ACCEPTED, nil
	}
	if uint32(a.Level) != b.MintingWeight {
		return INVALID_MINTING_WEIGHT, nil
	}
	return OK, nil
}
