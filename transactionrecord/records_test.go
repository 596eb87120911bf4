// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
	"github.com/bitmark-inc/ledgerd/util"
)

func TestPackPayment(t *testing.T) {
	sender := makeKeyPair(t, 0x01)
	recipient := makeKeyPair(t, 0x02)

	r := &transactionrecord.Payment{
		Header: transactionrecord.Header{
			Timestamp: 1500000000000,
			Reference: reference(0x5a),
			Fee:       amount.Unit,
		},
		Recipient: recipient.address,
		Amount:    10 * amount.Unit,
	}

	_, err := transactionrecord.Pack(r)
	assert.Equal(t, fault.ErrTransactionNotSigned, err, "pack unsigned")

	packed, err := transactionrecord.Sign(r, sender.privateKey)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}

	// header layout
	assert.Equal(t, uint32(2), binary.BigEndian.Uint32(packed[0:4]), "tag")
	assert.Equal(t, sender.privateKey.PublicKey().Bytes(), []byte(packed[4:36]), "creator")
	assert.Equal(t, uint64(1500000000000), binary.BigEndian.Uint64(packed[36:44]), "timestamp")
	assert.Equal(t, r.Reference.Bytes(), []byte(packed[44:108]), "reference")
	assert.Equal(t, uint64(amount.Unit), binary.BigEndian.Uint64(packed[108:116]), "fee")
	assert.Equal(t, recipient.address.Bytes(), []byte(packed[116:141]), "recipient")
	assert.Equal(t, uint64(10*amount.Unit), binary.BigEndian.Uint64(packed[141:149]), "amount")
	assert.Equal(t, 149+account.SignatureLength, len(packed), "length")

	unsigned := transactionrecord.PackUnsigned(r)
	if !bytes.Equal(unsigned, packed[:len(packed)-account.SignatureLength]) {
		t.Errorf("unsigned prefix mismatch: %s", formatBytes("unsigned", unsigned))
	}

	transaction, n, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	assert.Equal(t, len(packed), n, "consumed")

	payment, ok := transaction.(*transactionrecord.Payment)
	if !ok {
		t.Fatalf("unpacked wrong type: %T", transaction)
	}
	assert.Equal(t, r, payment, "round trip")
	assert.Nil(t, transactionrecord.CheckSignature(payment), "signature")

	payment.Amount += 1
	assert.Equal(t, fault.ErrInvalidSignature, transactionrecord.CheckSignature(payment), "tampered amount")
}

func TestGenesisSignature(t *testing.T) {
	recipient := makeKeyPair(t, 0x03)
	r := &transactionrecord.Genesis{
		Header: transactionrecord.Header{
			Timestamp: 1400000000000,
		},
		Recipient: recipient.address,
		Amount:    1000 * amount.Unit,
		Level:     2,
		Flags:     1,
	}

	packed, err := transactionrecord.Sign(r, nil)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}
	assert.True(t, r.Creator.IsZero(), "genesis creator")

	transaction, _, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	assert.Nil(t, transactionrecord.CheckSignature(transaction), "genesis signature")

	g := transaction.(*transactionrecord.Genesis)
	g.Level = 3
	assert.Equal(t, fault.ErrInvalidSignature, transactionrecord.CheckSignature(g), "tampered genesis")
}

func TestUnpackAll(t *testing.T) {
	creator := makeKeyPair(t, 0x04)
	other := makeKeyPair(t, 0x05)
	header := transactionrecord.Header{
		Timestamp: 1600000000000,
		Reference: reference(0x11),
		Fee:       amount.Unit,
	}

	records := []transactionrecord.Transaction{
		&transactionrecord.RegisterName{Header: header, Owner: other.address, Name: "alpha", Data: "{}"},
		&transactionrecord.UpdateName{Header: header, Name: "alpha", NewOwner: other.address, NewData: "x"},
		&transactionrecord.IssueAsset{Header: header, Owner: creator.address, AssetName: "gold", Description: "shiny", Quantity: 1000, IsDivisible: true},
		&transactionrecord.TransferAsset{Header: header, Recipient: other.address, Asset: 7, Amount: 5 * amount.Unit},
		&transactionrecord.Message{Header: header, Recipient: other.address, Data: []byte("hello"), IsText: true},
		&transactionrecord.CreateGroup{Header: header, GroupName: "club", Description: "a club", ApprovalThreshold: 1, MinimumBlockDelay: 5, MaximumBlockDelay: 10},
		&transactionrecord.UpdateGroup{Header: header, GroupId: 1, NewOwner: other.address, NewDescription: "new", NewIsOpen: true},
		&transactionrecord.AddGroupAdmin{Header: header, GroupId: 1, Member: other.address},
		&transactionrecord.RemoveGroupAdmin{Header: header, GroupId: 1, Admin: other.address},
		&transactionrecord.GroupBan{Header: header, GroupId: 1, Offender: other.address, Reason: "spam", TimeToLive: 3600},
		&transactionrecord.CancelGroupBan{Header: header, GroupId: 1, Member: other.address},
		&transactionrecord.GroupKick{Header: header, GroupId: 1, Member: other.address, Reason: "rude"},
		&transactionrecord.GroupInvite{Header: header, GroupId: 1, Invitee: other.address, TimeToLive: 60},
		&transactionrecord.CancelGroupInvite{Header: header, GroupId: 1, Invitee: other.address},
		&transactionrecord.JoinGroup{Header: header, GroupId: 1},
		&transactionrecord.LeaveGroup{Header: header, GroupId: 1},
	}

	for i, r := range records {
		packed, err := transactionrecord.Sign(r, creator.privateKey)
		if nil != err {
			t.Fatalf("%d: sign error: %s", i, err)
		}

		// trailing data belongs to the next record
		buffer := append(append(transactionrecord.Packed{}, packed...), 0xde, 0xad)
		unpacked, n, err := buffer.Unpack()
		if nil != err {
			t.Errorf("%d: %s unpack error: %s", i, r.Type(), err)
			continue
		}
		assert.Equal(t, len(packed), n, "%d: %s consumed", i, r.Type())
		assert.Equal(t, r, unpacked, "%d: %s round trip", i, r.Type())
		assert.Nil(t, transactionrecord.CheckSignature(unpacked), "%d: %s signature", i, r.Type())

		// every proper prefix is truncated
		for _, cut := range []int{1, 10, len(packed) / 2, len(packed) - 1} {
			_, _, err := packed[:cut].Unpack()
			assert.NotNil(t, err, "%d: %s truncated at %d", i, r.Type(), cut)
		}
	}
}

func TestUnpackErrors(t *testing.T) {
	_, _, err := transactionrecord.Packed{}.Unpack()
	assert.Equal(t, fault.ErrNotTransactionPack, err, "empty")

	_, _, err = transactionrecord.Packed{0, 0, 0, 99, 1, 2, 3}.Unpack()
	assert.Equal(t, fault.ErrUnknownTransactionType, err, "unknown type")
}

func TestTags(t *testing.T) {
	for _, tag := range transactionrecord.Tags() {
		r, ok := transactionrecord.New(tag)
		if !ok {
			t.Errorf("no record for tag: %d", tag)
			continue
		}
		assert.Equal(t, tag, r.Type(), "type of %s", tag)
		assert.True(t, tag.IsValid(), "valid %s", tag)
	}
	assert.False(t, transactionrecord.NullTag.IsValid(), "null tag valid")
	assert.Equal(t, "GROUP_KICK", transactionrecord.GroupKickTag.String(), "name")
}

func TestApplied(t *testing.T) {
	r := &transactionrecord.GroupBan{GroupId: 3}
	r.KeyRecorded = true
	r.Applied.Prior = transactionrecord.BranchJoinRequest
	r.Applied.JoinReference = reference(0x21)
	r.Applied.BanReference = reference(0x22)

	buffer := transactionrecord.PackApplied(r)

	again := &transactionrecord.GroupBan{GroupId: 3}
	err := transactionrecord.UnpackApplied(again, buffer)
	assert.Nil(t, err, "unpack applied error")
	assert.Equal(t, r, again, "applied round trip")

	err = transactionrecord.UnpackApplied(again, buffer[:10])
	assert.Equal(t, fault.ErrUnexpectedEndOfRecord, err, "truncated applied")

	p := &transactionrecord.Payment{}
	err = transactionrecord.UnpackApplied(p, []byte{0x00, 0x01})
	assert.Equal(t, fault.ErrNotTransactionPack, err, "trailing applied data")
}

func TestLengthPrefix(t *testing.T) {
	owner := makeKeyPair(t, 0x01)

	r := &transactionrecord.RegisterName{
		Header: transactionrecord.Header{
			Timestamp: 1500000000000,
			Reference: reference(0x5a),
			Fee:       amount.Unit,
		},
		Owner: owner.address,
		Name:  "home",
		Data:  "x",
	}
	packed, err := transactionrecord.Sign(r, owner.privateKey)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}

	// header then owner then the name's length
	const offset = 116 + account.AddressLength
	assert.Equal(t, byte(len(r.Name)), packed[offset], "name length")

	tooLong := append([]byte{}, packed[:offset]...)
	tooLong = util.AppendVarint64(tooLong, 65537)
	tooLong = append(tooLong, packed[offset+1:]...)
	_, _, err = transactionrecord.Packed(tooLong).Unpack()
	assert.Equal(t, fault.ErrValueTooLong, err, "oversized length")

	truncated := append(append([]byte{}, packed[:offset]...), 0x80)
	_, _, err = transactionrecord.Packed(truncated).Unpack()
	assert.Equal(t, fault.ErrUnexpectedEndOfRecord, err, "truncated length")

	_, n, err := packed.Unpack()
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, len(packed), n, "consumed")
}
