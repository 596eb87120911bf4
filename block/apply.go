// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// Apply - add a validated block to the top of the chain
//
// sets the block height; the caller commits or aborts the write
// transaction
func Apply(trx *storage.Transaction, parameters *chain.Parameters, b *Block) error {
	s := state.New(trx, 0)
	height, err := s.ChainHeight()
	if nil != err {
		return err
	}
	height += 1
	s.SetHeight(height)

	c := &transaction.Context{
		State:      s,
		Parameters: parameters,
		Timestamp:  b.Timestamp,
	}
	if _, err := applyTransactions(c, b.Transactions, false); nil != err {
		return err
	}

	if GenesisHeight != height {
		if err := creditMinter(s, parameters, b); nil != err {
			return err
		}
	}

	signature := b.Signature()
	if err := s.PutBlock(height, signature[:], b.packStored()); nil != err {
		return err
	}
	b.Height = height
	return nil
}

// Undo - remove the top block, returning it with its transactions
func Undo(trx *storage.Transaction, parameters *chain.Parameters) (*Block, error) {
	s := state.New(trx, 0)
	height, err := s.ChainHeight()
	if nil != err {
		return nil, err
	}
	if 0 == height {
		return nil, fault.ErrBlockNotFound
	}
	if GenesisHeight == height {
		return nil, fault.ErrGenesisUndo
	}
	s.SetHeight(height)

	b, err := get(s, height)
	if nil != err {
		return nil, err
	}
	if nil == b {
		return nil, fault.DataErrorf("block: %d is missing", height)
	}

	if err := debitMinter(s, parameters, b); nil != err {
		return nil, err
	}

	c := &transaction.Context{
		State:      s,
		Parameters: parameters,
		Timestamp:  b.Timestamp,
	}
	for i := len(b.Transactions) - 1; i >= 0; i -= 1 {
		tx := b.Transactions[i]
		if err := tx.Undo(c); nil != err {
			return nil, err
		}
		if err := s.DeleteTransaction(tx.Signature(), tx.Participants()); nil != err {
			return nil, err
		}
	}

	if err := s.DeleteBalancesFromHeight(height); nil != err {
		return nil, err
	}
	signature := b.Signature()
	if err := s.DeleteBlock(height, signature[:]); nil != err {
		return nil, err
	}
	return b, nil
}

// apply in sequence, storing each transaction so later ones in the
// same block can refer to it
//
// when validating, stops at the first transaction that does not
// validate against the state left by the earlier ones
func applyTransactions(c *transaction.Context, transactions []*transaction.Transaction, validate bool) (*Rejection, error) {
	for i, tx := range transactions {
		if validate {
			result, err := tx.Validate(c)
			if nil != err {
				return nil, err
			}
			if transaction.OK != result {
				return &Rejection{Index: i, Result: result}, nil
			}
		}
		if err := tx.Apply(c); nil != err {
			return nil, err
		}
		err := c.State.PutTransaction(&state.Confirmed{
			Height:      c.State.Height(),
			Sequence:    uint32(i + 1),
			Packed:      tx.Packed,
			Transaction: tx.Record,
		}, tx.Participants())
		if nil != err {
			return nil, err
		}
	}
	return nil, nil
}

// fees are credited once per block
func creditMinter(s *state.State, parameters *chain.Parameters, b *Block) error {
	total, err := b.TotalFees()
	if nil != err {
		return fault.WrapData(err, "block fees")
	}
	minter := b.MinterAddress()
	if 0 != total {
		if err := s.ModifyBalance(minter, state.NativeAsset, total); nil != err {
			return err
		}
	}
	return s.UpdateAccount(minter, func(a *state.Account) error {
		a.BlocksMinted += 1
		a.Level = levelOf(parameters, a)
		return nil
	})
}

func debitMinter(s *state.State, parameters *chain.Parameters, b *Block) error {
	minter := b.MinterAddress()
	err := s.UpdateAccount(minter, func(a *state.Account) error {
		if 0 == a.BlocksMinted {
			return fault.DataErrorf("minter: %s has minted no blocks", minter)
		}
		a.BlocksMinted -= 1
		a.Level = levelOf(parameters, a)
		return nil
	})
	if nil != err {
		return err
	}
	total, err := b.TotalFees()
	if nil != err {
		return fault.WrapData(err, "block fees")
	}
	if 0 == total {
		return nil
	}
	return s.ModifyBalance(minter, state.NativeAsset, -total)
}

// never below the level given at genesis
func levelOf(parameters *chain.Parameters, a *state.Account) uint8 {
	level := parameters.LevelFor(a.BlocksMinted)
	if level < a.InitialLevel {
		return a.InitialLevel
	}
	return level
}
