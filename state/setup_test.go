// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
)

type testState struct {
	db  *storage.DB
	trx *storage.Transaction
	s   *state.State
}

func setup(t *testing.T, height uint64) *testState {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open memory database error: %s", err)
	}
	trx, err := db.Begin()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	return &testState{
		db:  db,
		trx: trx,
		s:   state.New(trx, height),
	}
}

func teardown(ts *testState) {
	ts.trx.Abort()
	ts.db.Close()
}

func dump(t *testing.T, reader storage.Reader) []storage.Element {
	elements, err := storage.Dump(reader)
	if nil != err {
		t.Fatalf("dump error: %s", err)
	}
	return elements
}

func makeKey(t *testing.T, fill byte) *account.PrivateKey {
	key, err := account.NewPrivateKey(bytes.Repeat([]byte{fill}, account.SeedLength))
	if nil != err {
		t.Fatalf("new private key error: %s", err)
	}
	return key
}

func signature(fill byte) account.Signature {
	s := account.Signature{}
	for i := range s {
		s[i] = fill
	}
	return s
}
