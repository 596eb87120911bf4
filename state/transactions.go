// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// keys:
//   Transactions:        signature                      → height ++ sequence ++ packed ++ applied
//   BlockTransactions:   height ++ sequence             → signature
//   AddressTransactions: address ++ height ++ sequence  → signature

// Confirmed - a transaction stored in a block
type Confirmed struct {
	Height      uint64                        `json:"height"`
	Sequence    uint32                        `json:"sequence"`
	Packed      transactionrecord.Packed      `json:"-"`
	Transaction transactionrecord.Transaction `json:"transaction"`
}

func positionKey(height uint64, sequence uint32) []byte {
	return makeKey(uint64Bytes(height), uint32Bytes(sequence))
}

// PutTransaction - store a transaction applied at height and sequence
// with its apply-time fields and index it under each participant
func (s *State) PutTransaction(c *Confirmed, participants []account.Address) error {
	signature := c.Transaction.Head().Signature
	position := positionKey(c.Height, c.Sequence)

	e := &encoder{}
	e.raw(position).
		blob(c.Packed).
		raw(transactionrecord.PackApplied(c.Transaction))
	if err := s.put(storage.Pool.Transactions, signature[:], e.buffer); nil != err {
		return err
	}
	if err := s.put(storage.Pool.BlockTransactions, position, signature[:]); nil != err {
		return err
	}
	for _, address := range uniqueAddresses(participants) {
		if err := s.put(storage.Pool.AddressTransactions, makeKey(address[:], position), signature[:]); nil != err {
			return err
		}
	}
	return nil
}

// GetTransaction - nil if not confirmed
func (s *State) GetTransaction(signature account.Signature) (*Confirmed, error) {
	buffer, err := s.get(storage.Pool.Transactions, signature[:])
	if nil != err || nil == buffer {
		return nil, err
	}

	d := &decoder{buffer: buffer}
	c := &Confirmed{
		Height:   d.uint64(),
		Sequence: d.uint32(),
		Packed:   d.blob(),
	}
	applied := d.rest()
	if err := d.check("transaction", signature[:]); nil != err {
		return nil, err
	}

	tx, n, err := c.Packed.Unpack()
	if nil != err {
		return nil, fault.WrapData(err, "transaction: %s", signature)
	}
	if n != len(c.Packed) {
		return nil, fault.DataErrorf("transaction: %s has %d trailing bytes", signature, len(c.Packed)-n)
	}
	if err := transactionrecord.UnpackApplied(tx, applied); nil != err {
		return nil, fault.WrapData(err, "transaction: %s applied", signature)
	}
	c.Transaction = tx
	return c, nil
}

// GetTransactionRecord - the stored record, a fault if absent
//
// used to rebuild rows from the transaction a reference points at
func (s *State) GetTransactionRecord(signature account.Signature) (transactionrecord.Transaction, error) {
	c, err := s.GetTransaction(signature)
	if nil != err {
		return nil, err
	}
	if nil == c {
		return nil, fault.DataErrorf("transaction: %s referenced but not stored", signature)
	}
	return c.Transaction, nil
}

// HasTransaction - true if confirmed
func (s *State) HasTransaction(signature account.Signature) (bool, error) {
	return s.has(storage.Pool.Transactions, signature[:])
}

// DeleteTransaction - remove a confirmed transaction and its indexes
func (s *State) DeleteTransaction(signature account.Signature, participants []account.Address) error {
	c, err := s.GetTransaction(signature)
	if nil != err {
		return err
	}
	if nil == c {
		return fault.DataErrorf("transaction: %s is not stored", signature)
	}
	position := positionKey(c.Height, c.Sequence)
	for _, address := range uniqueAddresses(participants) {
		if err := s.remove(storage.Pool.AddressTransactions, makeKey(address[:], position)); nil != err {
			return err
		}
	}
	if err := s.remove(storage.Pool.BlockTransactions, position); nil != err {
		return err
	}
	return s.remove(storage.Pool.Transactions, signature[:])
}

// BlockTransactions - signatures of a block's transactions in sequence
func (s *State) BlockTransactions(height uint64) ([]account.Signature, error) {
	signatures := make([]account.Signature, 0, 16)
	expected := uint32(1)
	err := s.cursor(storage.Pool.BlockTransactions).Prefix(uint64Bytes(height)).Map(func(key []byte, value []byte) error {
		if 12 != len(key) {
			return fault.DataErrorf("block transaction: key: %x has length: %d", key, len(key))
		}
		sequence := binary.BigEndian.Uint32(key[8:])
		if sequence != expected {
			return fault.DataErrorf("block: %d transaction sequence: %d expected: %d", height, sequence, expected)
		}
		expected += 1
		signature, err := account.SignatureFromBytes(value)
		if nil != err {
			return fault.WrapData(err, "block: %d transaction: %d", height, sequence)
		}
		signatures = append(signatures, signature)
		return nil
	})
	return signatures, fault.WrapData(err, "block: %d transactions", height)
}

// AddressTransactions - signatures of transactions involving an
// address, newest first
func (s *State) AddressTransactions(address account.Address, offset int, count int) ([]account.Signature, error) {
	elements, err := s.cursor(storage.Pool.AddressTransactions).
		Prefix(address[:]).
		Reverse().
		Offset(offset).
		Fetch(count)
	if nil != err {
		return nil, fault.WrapData(err, "address: %s transactions", address)
	}
	signatures := make([]account.Signature, len(elements))
	for i, e := range elements {
		signatures[i], err = account.SignatureFromBytes(e.Value)
		if nil != err {
			return nil, fault.WrapData(err, "address: %s transactions", address)
		}
	}
	return signatures, nil
}

func uniqueAddresses(addresses []account.Address) []account.Address {
	seen := make(map[account.Address]struct{}, len(addresses))
	unique := make([]account.Address, 0, len(addresses))
	for _, a := range addresses {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		unique = append(unique, a)
	}
	return unique
}
