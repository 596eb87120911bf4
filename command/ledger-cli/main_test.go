// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func run(t *testing.T, arguments ...string) (string, error) {
	app := newApp()
	out := &bytes.Buffer{}
	app.Writer = out
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run(append([]string{"ledger-cli"}, arguments...))
	return strings.TrimSpace(out.String()), err
}

func testKey(t *testing.T, fill byte) *account.PrivateKey {
	key, err := account.NewPrivateKey(bytes.Repeat([]byte{fill}, account.SeedLength))
	if nil != err {
		t.Fatalf("new private key error: %s", err)
	}
	return key
}

func TestKeygen(t *testing.T) {
	out, err := run(t, "keygen")
	if nil != err {
		t.Fatalf("keygen error: %s", err)
	}

	var k keyDisplay
	if err := json.Unmarshal([]byte(out), &k); nil != err {
		t.Fatalf("unmarshal: %q  error: %s", out, err)
	}

	key, err := account.PrivateKeyFromBase58Seed(k.Seed)
	if nil != err {
		t.Fatalf("seed error: %s", err)
	}
	assert.Equal(t, key.PublicKey(), k.PublicKey, "wrong public key")
	assert.Equal(t, key.Address(), k.Address, "wrong address")
}

func TestAddress(t *testing.T) {
	key := testKey(t, 0x01)

	out, err := run(t, "--seed", key.Seed(), "address")
	if nil != err {
		t.Fatalf("address error: %s", err)
	}
	assert.NotContains(t, out, "seed", "seed printed")
	assert.Contains(t, out, key.Address().String(), "address missing")

	_, err = run(t, "address")
	assert.Equal(t, ErrMissingSeed, err, "missing seed accepted")
}

func TestPayment(t *testing.T) {
	key := testKey(t, 0x01)
	to := testKey(t, 0x02).Address()
	reference := key.Sign([]byte("previous"))

	out, err := run(t,
		"--seed", key.Seed(),
		"--reference", reference.String(),
		"--fee", "0.5",
		"--timestamp", "1500000001000",
		"payment", "--to", to.String(), "--amount", "12.25",
	)
	if nil != err {
		t.Fatalf("payment error: %s", err)
	}

	packed, err := hex.DecodeString(out)
	if nil != err {
		t.Fatalf("hex: %q  error: %s", out, err)
	}
	record, n, err := transactionrecord.Packed(packed).Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	assert.Equal(t, len(packed), n, "wrong length")
	assert.Nil(t, transactionrecord.CheckSignature(record), "bad signature")

	payment, ok := record.(*transactionrecord.Payment)
	if !ok {
		t.Fatalf("not a payment: %T", record)
	}
	assert.Equal(t, to, payment.Recipient, "wrong recipient")
	assert.Equal(t, amount.Amount(1225000000), payment.Amount, "wrong amount")
	assert.Equal(t, amount.Amount(50000000), payment.Fee, "wrong fee")
	assert.Equal(t, int64(1500000001000), payment.Timestamp, "wrong timestamp")
	assert.Equal(t, reference, payment.Reference, "wrong reference")
	assert.Equal(t, key.PublicKey(), payment.Creator, "wrong creator")

	_, err = run(t, "--seed", key.Seed(), "payment", "--to", "not-an-address", "--amount", "1")
	assert.Equal(t, ErrUnknownRecipient, err, "bad recipient accepted")
}

func TestGroupsAndDecode(t *testing.T) {
	key := testKey(t, 0x03)

	out, err := run(t, "--seed", key.Seed(), "create-group",
		"--name", "builders", "--description", "people who build", "--open",
		"--threshold", "40", "--minimum-delay", "5", "--maximum-delay", "10",
	)
	if nil != err {
		t.Fatalf("create group error: %s", err)
	}

	decodedOut, err := run(t, "decode", out)
	if nil != err {
		t.Fatalf("decode error: %s", err)
	}

	result := map[string]interface{}{}
	if err := json.Unmarshal([]byte(decodedOut), &result); nil != err {
		t.Fatalf("unmarshal: %q  error: %s", decodedOut, err)
	}
	assert.Equal(t, "CREATE_GROUP", result["type"], "wrong type")
	assert.Equal(t, true, result["signature_valid"], "signature not valid")
	assert.Equal(t, key.Address().String(), result["creator_address"], "wrong creator")

	record := result["record"].(map[string]interface{})
	assert.Equal(t, "builders", record["groupName"], "wrong name")
	assert.Equal(t, true, record["isOpen"], "wrong open flag")
	assert.Equal(t, float64(40), record["approvalThreshold"], "wrong threshold")

	out, err = run(t, "--seed", key.Seed(), "join-group", "--group", "7")
	if nil != err {
		t.Fatalf("join group error: %s", err)
	}
	packed, _ := hex.DecodeString(out)
	record2, _, err := transactionrecord.Packed(packed).Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	assert.Equal(t, uint32(7), record2.(*transactionrecord.JoinGroup).GroupId, "wrong group")

	_, err = run(t, "--seed", key.Seed(), "leave-group")
	assert.Equal(t, ErrMissingArgument, err, "missing group accepted")

	_, err = run(t, "decode", "zz")
	assert.Equal(t, ErrNotHex, err, "bad hex accepted")

	_, err = run(t, "decode", out+"00")
	assert.Equal(t, ErrTrailingBytes, err, "trailing bytes accepted")
}
