// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// Get - block at a height with its transactions, nil if absent
func Get(reader storage.Reader, height uint64) (*Block, error) {
	return get(state.NewReadOnly(reader), height)
}

// GetBySignature - block with a signature, nil if absent
func GetBySignature(reader storage.Reader, signature Signature) (*Block, error) {
	s := state.NewReadOnly(reader)
	height, err := s.GetBlockHeight(signature[:])
	if nil != err || 0 == height {
		return nil, err
	}
	return get(s, height)
}

// Top - the last block with its transactions, nil for an empty chain
func Top(reader storage.Reader) (*Block, error) {
	s := state.NewReadOnly(reader)
	height, err := s.ChainHeight()
	if nil != err || 0 == height {
		return nil, err
	}
	return get(s, height)
}

func get(s *state.State, height uint64) (*Block, error) {
	b, err := getHeader(s, height)
	if nil != err || nil == b {
		return nil, err
	}

	signatures, err := s.BlockTransactions(height)
	if nil != err {
		return nil, err
	}
	b.Transactions = make([]*transaction.Transaction, 0, len(signatures))
	for _, signature := range signatures {
		confirmed, err := s.GetTransaction(signature)
		if nil != err {
			return nil, err
		}
		if nil == confirmed {
			return nil, fault.DataErrorf("block: %d transaction: %s is missing", height, signature)
		}
		b.Transactions = append(b.Transactions, &transaction.Transaction{
			Record: confirmed.Transaction,
			Packed: confirmed.Packed,
		})
	}
	return b, nil
}

// block without its transactions
func getHeader(s *state.State, height uint64) (*Block, error) {
	buffer, err := s.GetBlock(height)
	if nil != err || nil == buffer {
		return nil, err
	}
	b, err := unpackStored(buffer)
	if nil != err {
		return nil, fault.WrapData(err, "block: %d", height)
	}
	b.Height = height
	return b, nil
}

// the last block without its transactions, nil for an empty chain
func topHeader(s *state.State) (*Block, error) {
	height, err := s.ChainHeight()
	if nil != err || 0 == height {
		return nil, err
	}
	b, err := getHeader(s, height)
	if nil == b && nil == err {
		return nil, fault.DataErrorf("block: %d is missing", height)
	}
	return b, err
}

func stateOf(reader storage.Reader) *state.State {
	return state.NewReadOnly(reader)
}
