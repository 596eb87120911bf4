// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Transaction - a signed record with its wire bytes
type Transaction struct {
	Record transactionrecord.Transaction
	Packed transactionrecord.Packed
}

// Context - everything an operation needs, passed explicitly
type Context struct {
	State      *state.State
	Parameters *chain.Parameters

	// timestamp of the block the transaction is being applied in
	Timestamp int64
}

// NewContext - context for a block at height inside a write transaction
func NewContext(trx *storage.Transaction, parameters *chain.Parameters, height uint64, timestamp int64) *Context {
	return &Context{
		State:      state.New(trx, height),
		Parameters: parameters,
		Timestamp:  timestamp,
	}
}

// FromPacked - decode one transaction and check its signature
//
// returns the number of bytes consumed
func FromPacked(packed []byte) (*Transaction, int, error) {
	record, n, err := transactionrecord.Packed(packed).Unpack()
	if nil != err {
		return nil, 0, err
	}
	if _, ok := handlers[record.Type()]; !ok {
		return nil, 0, fault.ErrUnknownTransactionType
	}
	if err := transactionrecord.CheckSignature(record); nil != err {
		return nil, 0, err
	}
	return &Transaction{
		Record: record,
		Packed: append(transactionrecord.Packed{}, packed[:n]...),
	}, n, nil
}

// New - wrap a signed record
func New(record transactionrecord.Transaction) (*Transaction, error) {
	if _, ok := handlers[record.Type()]; !ok {
		return nil, fault.ErrUnknownTransactionType
	}
	packed, err := transactionrecord.Pack(record)
	if nil != err {
		return nil, err
	}
	return &Transaction{
		Record: record,
		Packed: packed,
	}, nil
}

// Type - the record type
func (t *Transaction) Type() transactionrecord.TagType {
	return t.Record.Type()
}

// Signature - identifies the transaction
func (t *Transaction) Signature() account.Signature {
	return t.Record.Head().Signature
}

// Timestamp - creation time in milliseconds
func (t *Transaction) Timestamp() int64 {
	return t.Record.Head().Timestamp
}

// Creator - address of the creator
func (t *Transaction) Creator() account.Address {
	return t.Record.Head().CreatorAddress()
}

// Deadline - the transaction cannot be included in a block at or
// after this timestamp
func (t *Transaction) Deadline(parameters *chain.Parameters) int64 {
	return t.Timestamp() + parameters.TransactionExpiry
}

// Recipients - addresses affected by the transaction, other than the creator
func (t *Transaction) Recipients() []account.Address {
	return handlers[t.Type()].recipients(t.Record)
}

// Participants - creator and recipients, used for indexing
func (t *Transaction) Participants() []account.Address {
	recipients := t.Recipients()
	if transactionrecord.GenesisTag == t.Type() {
		return recipients
	}
	return append([]account.Address{t.Creator()}, recipients...)
}

// IsInvolved - true for the creator and any recipient
func (t *Transaction) IsInvolved(address account.Address) bool {
	for _, a := range t.Participants() {
		if a == address {
			return true
		}
	}
	return false
}

// AmountEffect - net change to an address's balance of an asset,
// including the fee
func (t *Transaction) AmountEffect(address account.Address, asset uint64) amount.Amount {
	total := amount.Amount(0)
	for _, e := range t.effects() {
		if e.address == address && e.asset == asset {
			total += e.amount
		}
	}
	if state.NativeAsset == asset && transactionrecord.GenesisTag != t.Type() && t.Creator() == address {
		total -= t.Record.Head().Fee
	}
	return total
}

// a balance movement made by the payload
type effect struct {
	address account.Address
	asset   uint64
	amount  amount.Amount
}

func (t *Transaction) effects() []effect {
	h := handlers[t.Type()]
	if nil == h.effects {
		return nil
	}
	return h.effects(t.Record)
}
