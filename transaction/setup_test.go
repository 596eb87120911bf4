// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transaction"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

type harness struct {
	t         *testing.T
	db        *storage.DB
	trx       *storage.Transaction
	c         *transaction.Context
	timestamp int64
	sequence  uint32
}

// a ledger at height 1 ready for genesis records
func setup(t *testing.T) *harness {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open memory database error: %s", err)
	}
	trx, err := db.Begin()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	parameters, err := chain.ParametersFor(chain.Testing)
	if nil != err {
		t.Fatalf("parameters error: %s", err)
	}
	timestamp := parameters.GenesisTimestamp
	return &harness{
		t:         t,
		db:        db,
		trx:       trx,
		c:         transaction.NewContext(trx, parameters, 1, timestamp),
		timestamp: timestamp,
	}
}

func teardown(h *harness) {
	h.trx.Abort()
	h.db.Close()
}

func makeKey(t *testing.T, fill byte) *account.PrivateKey {
	key, err := account.NewPrivateKey(bytes.Repeat([]byte{fill}, account.SeedLength))
	if nil != err {
		t.Fatalf("new private key error: %s", err)
	}
	return key
}

func coins(n int64) amount.Amount {
	return amount.Amount(n) * amount.Unit
}

func (h *harness) dump() []storage.Element {
	elements, err := storage.Dump(h.trx)
	if nil != err {
		h.t.Fatalf("dump error: %s", err)
	}
	return elements
}

// credit an address in the genesis block and move to height 2
func (h *harness) genesis(allocations map[account.Address]amount.Amount) {
	for address, value := range allocations {
		tx := h.signed(nil, &transactionrecord.Genesis{
			Recipient: address,
			Asset:     state.NativeAsset,
			Amount:    value,
		})
		if result := h.validate(tx); transaction.OK != result {
			h.t.Fatalf("genesis result: %s", result)
		}
		h.apply(tx)
	}
	h.next()
}

// advance to the next block
func (h *harness) next() {
	h.c.State.SetHeight(h.c.State.Height() + 1)
	h.sequence = 0
}

// sign with the creator's current reference
func (h *harness) sign(key *account.PrivateKey, record transactionrecord.Transaction) *transaction.Transaction {
	reference, err := h.c.State.GetLastReference(key.Address())
	if nil != err {
		h.t.Fatalf("get last reference error: %s", err)
	}
	record.Head().Reference = reference
	return h.signed(key, record)
}

// sign the record exactly as given
func (h *harness) signed(key *account.PrivateKey, record transactionrecord.Transaction) *transaction.Transaction {
	h.timestamp += 1000
	h.c.Timestamp = h.timestamp + 1000
	if 0 == record.Head().Timestamp {
		record.Head().Timestamp = h.timestamp
	}
	packed, err := transactionrecord.Sign(record, key)
	if nil != err {
		h.t.Fatalf("sign %s error: %s", record.Type(), err)
	}
	tx, n, err := transaction.FromPacked(packed)
	if nil != err {
		h.t.Fatalf("from packed %s error: %s", record.Type(), err)
	}
	if n != len(packed) {
		h.t.Fatalf("from packed consumed: %d of: %d bytes", n, len(packed))
	}
	return tx
}

func (h *harness) validate(tx *transaction.Transaction) transaction.Result {
	result, err := tx.Validate(h.c)
	if nil != err {
		h.t.Fatalf("validate %s error: %s", tx.Type(), err)
	}
	return result
}

// apply and store, as a block does
func (h *harness) apply(tx *transaction.Transaction) {
	if err := tx.Apply(h.c); nil != err {
		h.t.Fatalf("apply %s error: %s", tx.Type(), err)
	}
	h.sequence += 1
	err := h.c.State.PutTransaction(&state.Confirmed{
		Height:      h.c.State.Height(),
		Sequence:    h.sequence,
		Packed:      tx.Packed,
		Transaction: tx.Record,
	}, tx.Participants())
	if nil != err {
		h.t.Fatalf("put transaction error: %s", err)
	}
}

// undo from the stored copy and remove it
func (h *harness) undo(tx *transaction.Transaction) {
	confirmed, err := h.c.State.GetTransaction(tx.Signature())
	if nil != err || nil == confirmed {
		h.t.Fatalf("get transaction: %v error: %v", confirmed, err)
	}
	stored := &transaction.Transaction{
		Record: confirmed.Transaction,
		Packed: confirmed.Packed,
	}
	if err := stored.Undo(h.c); nil != err {
		h.t.Fatalf("undo %s error: %s", tx.Type(), err)
	}
	if err := h.c.State.DeleteTransaction(tx.Signature(), tx.Participants()); nil != err {
		h.t.Fatalf("delete transaction error: %s", err)
	}
	h.sequence -= 1
}

// validate, apply, then check that undo and re-apply are exact
func (h *harness) step(key *account.PrivateKey, record transactionrecord.Transaction) *transaction.Transaction {
	tx := h.sign(key, record)
	if result := h.validate(tx); transaction.OK != result {
		h.t.Fatalf("validate %s result: %s", tx.Type(), result)
	}

	before := h.dump()
	h.apply(tx)
	after := h.dump()

	h.undo(tx)
	if !equalElements(before, h.dump()) {
		h.t.Fatalf("%s: undo did not restore state", tx.Type())
	}

	h.apply(tx)
	if !equalElements(after, h.dump()) {
		h.t.Fatalf("%s: re-apply differs", tx.Type())
	}
	return tx
}

func equalElements(a []storage.Element, b []storage.Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i].Key, b[i].Key) || !bytes.Equal(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func (h *harness) balance(address account.Address, asset uint64) amount.Amount {
	value, err := h.c.State.GetBalance(address, asset)
	if nil != err {
		h.t.Fatalf("get balance error: %s", err)
	}
	return value
}

func (h *harness) reference(address account.Address) account.Signature {
	reference, err := h.c.State.GetLastReference(address)
	if nil != err {
		h.t.Fatalf("get last reference error: %s", err)
	}
	return reference
}
