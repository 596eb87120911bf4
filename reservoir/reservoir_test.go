// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir_test

import (
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/reservoir"
	"github.com/bitmark-inc/ledgerd/reservoir/mocks"
	"github.com/bitmark-inc/ledgerd/transaction"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func atHeight(ctl *gomock.Controller, height uint64) *mocks.MockChain {
	c := mocks.NewMockChain(ctl)
	c.EXPECT().Height().Return(height, nil).AnyTimes()
	return c
}

func TestSubmitPayment(t *testing.T) {
	x := makeKey(t, 0x01)
	y := makeKey(t, 0x02)
	h := setup(t, x.Address())
	defer teardown(h)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := h.pool(atHeight(ctl, 1), reservoir.Configuration{})

	tx := h.payment(x, h.reference(x.Address()), y.Address(), coins(10))
	result, err := r.Submit(tx.Packed)
	assert.Nil(t, err, "submit error")
	assert.Equal(t, transaction.OK, result, "wrong result")

	result, err = r.Submit(tx.Packed)
	assert.Nil(t, err, "resubmit error")
	assert.Equal(t, transaction.TRANSACTION_ALREADY_EXISTS, result, "duplicate admitted")

	pending := r.Pending()
	if 1 != len(pending) {
		t.Fatalf("pending: %d  expected: 1", len(pending))
	}
	assert.Equal(t, tx.Signature(), pending[0].Signature(), "wrong pending transaction")
	assert.Equal(t, 1, r.Count(), "wrong count")

	// nothing reaches the confirmed state
	assert.Equal(t, h.reference(x.Address()), tx.Record.Head().Reference, "reference moved")
}

func TestPendingChain(t *testing.T) {
	x := makeKey(t, 0x01)
	y := makeKey(t, 0x02)
	h := setup(t, x.Address())
	defer teardown(h)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := h.pool(atHeight(ctl, 1), reservoir.Configuration{})

	confirmed := h.reference(x.Address())
	first := h.payment(x, confirmed, y.Address(), coins(60))
	result, err := r.Submit(first.Packed)
	assert.Nil(t, err, "first error")
	assert.Equal(t, transaction.OK, result, "first result")

	// must follow the pending transaction, not the confirmed one
	stale := h.payment(x, confirmed, y.Address(), coins(1))
	result, err = r.Submit(stale.Packed)
	assert.Nil(t, err, "stale error")
	assert.Equal(t, transaction.INVALID_REFERENCE, result, "stale reference admitted")

	// 100 - 61 leaves too little for another 60
	second := h.payment(x, first.Signature(), y.Address(), coins(60))
	result, err = r.Submit(second.Packed)
	assert.Nil(t, err, "second error")
	assert.Equal(t, transaction.NO_BALANCE, result, "overspend admitted")

	third := h.payment(x, first.Signature(), y.Address(), coins(30))
	result, err = r.Submit(third.Packed)
	assert.Nil(t, err, "third error")
	assert.Equal(t, transaction.OK, result, "third result")

	pending := r.Pending()
	if 2 != len(pending) {
		t.Fatalf("pending: %d  expected: 2", len(pending))
	}
	assert.Equal(t, first.Signature(), pending[0].Signature(), "wrong order")
	assert.Equal(t, third.Signature(), pending[1].Signature(), "wrong order")
}

func TestTooManyUnconfirmed(t *testing.T) {
	x := makeKey(t, 0x01)
	y := makeKey(t, 0x02)
	h := setup(t, x.Address())
	defer teardown(h)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	h.parameters.MaximumUnconfirmed = 2
	r := h.pool(atHeight(ctl, 1), reservoir.Configuration{})

	reference := h.reference(x.Address())
	for i := 0; i < 2; i += 1 {
		tx := h.payment(x, reference, y.Address(), coins(1))
		result, err := r.Submit(tx.Packed)
		if nil != err || transaction.OK != result {
			t.Fatalf("%d: result: %s  error: %v", i, result, err)
		}
		reference = tx.Signature()
	}

	tx := h.payment(x, reference, y.Address(), coins(1))
	result, err := r.Submit(tx.Packed)
	assert.Nil(t, err, "submit error")
	assert.Equal(t, transaction.TOO_MANY_UNCONFIRMED, result, "limit not applied")
}

func TestSubmitRejections(t *testing.T) {
	x := makeKey(t, 0x01)
	y := makeKey(t, 0x02)
	h := setup(t, x.Address())
	defer teardown(h)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := h.pool(atHeight(ctl, 1), reservoir.Configuration{})

	tx := h.payment(x, h.reference(x.Address()), y.Address(), coins(1))

	corrupt := append([]byte{}, tx.Packed...)
	corrupt[len(corrupt)-1] ^= 0xff
	result, err := r.Submit(corrupt)
	assert.Nil(t, err, "corrupt signature error")
	assert.Equal(t, transaction.INVALID_SIGNATURE, result, "corrupt signature admitted")

	_, err = r.Submit(append(append([]byte{}, tx.Packed...), 0x00))
	assert.Equal(t, fault.ErrNotTransactionPack, err, "trailing bytes accepted")

	_, err = r.Submit(tx.Packed[:10])
	assert.NotNil(t, err, "truncated record accepted")

	genesis := &transactionrecord.Genesis{
		Header: transactionrecord.Header{
			Timestamp: h.parameters.GenesisTimestamp,
		},
		Recipient: y.Address(),
		Amount:    coins(1000),
	}
	packed, err := transactionrecord.Sign(genesis, nil)
	if nil != err {
		t.Fatalf("sign genesis error: %s", err)
	}
	result, err = r.Submit(packed)
	assert.Nil(t, err, "genesis error")
	assert.Equal(t, transaction.INVALID_GENESIS, result, "genesis admitted")

	// y holds nothing
	poor := h.payment(y, h.reference(y.Address()), x.Address(), coins(1))
	result, err = r.Submit(poor.Packed)
	assert.Nil(t, err, "no balance error")
	assert.Equal(t, transaction.NO_BALANCE, result, "unfunded payment admitted")

	assert.Equal(t, 0, len(r.Pending()), "rejected transactions kept")
}

func TestRateLimit(t *testing.T) {
	x := makeKey(t, 0x01)
	y := makeKey(t, 0x02)
	h := setup(t, x.Address())
	defer teardown(h)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := h.pool(atHeight(ctl, 1), reservoir.Configuration{
		RateLimit: 0.001,
		Burst:     1,
	})

	first := h.payment(x, h.reference(x.Address()), y.Address(), coins(1))
	result, err := r.Submit(first.Packed)
	assert.Nil(t, err, "first error")
	assert.Equal(t, transaction.OK, result, "first result")

	second := h.payment(x, first.Signature(), y.Address(), coins(1))
	_, err = r.Submit(second.Packed)
	assert.Equal(t, fault.ErrRateLimited, err, "limit not applied")

	// orphan resubmission bypasses the limiter
	n, err := r.Resubmit([]*transaction.Transaction{second})
	assert.Nil(t, err, "resubmit error")
	assert.Equal(t, 1, n, "resubmit count")
}

func TestChainHeightError(t *testing.T) {
	x := makeKey(t, 0x01)
	y := makeKey(t, 0x02)
	h := setup(t, x.Address())
	defer teardown(h)

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := fmt.Errorf("broken")
	c := mocks.NewMockChain(ctl)
	c.EXPECT().Height().Return(uint64(0), e).Times(1)

	r := h.pool(c, reservoir.Configuration{})

	tx := h.payment(x, h.reference(x.Address()), y.Address(), coins(1))
	_, err := r.Submit(tx.Packed)
	assert.Equal(t, e, err, "wrong error")
	assert.Equal(t, 0, r.Count(), "transaction kept")
}

func TestConfirmed(t *testing.T) {
	x := makeKey(t, 0x01)
	y := makeKey(t, 0x02)
	z := makeKey(t, 0x03)
	h := setup(t, x.Address(), z.Address())
	defer teardown(h)

	r := h.pool(h.p, reservoir.Configuration{})

	first := h.payment(x, h.reference(x.Address()), y.Address(), coins(10))
	second := h.payment(x, first.Signature(), y.Address(), coins(10))
	fromZ := h.payment(z, h.reference(z.Address()), y.Address(), coins(10))
	for _, tx := range []*transaction.Transaction{first, second, fromZ} {
		result, err := r.Submit(tx.Packed)
		if nil != err || transaction.OK != result {
			t.Fatalf("submit result: %s  error: %v", result, err)
		}
	}

	// z spends its reference outside the pool
	conflict := h.payment(z, h.reference(z.Address()), x.Address(), coins(5))

	b := h.process(first, conflict)
	err := r.Confirmed(b)
	assert.Nil(t, err, "confirmed error")

	pending := r.Pending()
	if 1 != len(pending) {
		t.Fatalf("pending: %d  expected: 1", len(pending))
	}
	assert.Equal(t, second.Signature(), pending[0].Signature(), "wrong survivor")
}

func TestResubmitOrphaned(t *testing.T) {
	x := makeKey(t, 0x01)
	y := makeKey(t, 0x02)
	h := setup(t, x.Address())
	defer teardown(h)

	r := h.pool(h.p, reservoir.Configuration{})

	tx := h.payment(x, h.reference(x.Address()), y.Address(), coins(10))
	h.process(tx)

	result, err := r.Submit(tx.Packed)
	assert.Nil(t, err, "submit error")
	assert.Equal(t, transaction.TRANSACTION_ALREADY_EXISTS, result, "confirmed transaction admitted")

	orphan, err := h.p.Orphan()
	if nil != err {
		t.Fatalf("orphan error: %s", err)
	}

	n, err := r.Resubmit(orphan.Transactions)
	assert.Nil(t, err, "resubmit error")
	assert.Equal(t, 1, n, "resubmit count")
	assert.Equal(t, tx.Signature(), r.Pending()[0].Signature(), "wrong pending transaction")
}
