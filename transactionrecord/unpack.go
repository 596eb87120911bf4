// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// Unpack - turn a byte slice into a record
//
// returns the record and the number of bytes consumed; a block holds
// several records back to back so trailing bytes are not an error
//
// must cast result to correct type
//
// e.g.
//   switch tx := result.(type) {
//   case *transactionrecord.Payment:
func (record Packed) Unpack() (t Transaction, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			t = nil
			n = 0
			e = fault.ErrNotTransactionPack
		}
	}()

	r := &reader{buffer: record}

	tag := TagType(r.uint32())
	if nil != r.err {
		return nil, 0, fault.ErrNotTransactionPack
	}
	t, ok := New(tag)
	if !ok {
		return nil, 0, fault.ErrUnknownTransactionType
	}

	h := t.Head()
	h.Creator = r.publicKey()
	h.Timestamp = r.int64()
	h.Reference = r.signature()
	h.Fee = amount.Amount(r.int64())

	t.unpackPayload(r)

	h.Signature = r.signature()
	if nil != r.err {
		return nil, 0, r.err
	}
	return t, r.n, nil
}

// sequential decoder that remembers the first error
type reader struct {
	buffer []byte
	n      int
	err    error
}

func (r *reader) take(length int) []byte {
	if nil != r.err {
		return nil
	}
	if length < 0 || r.n+length > len(r.buffer) {
		r.err = fault.ErrUnexpectedEndOfRecord
		return nil
	}
	b := r.buffer[r.n : r.n+length]
	r.n += length
	return b
}

func (r *reader) uint32() uint32 {
	b := r.take(4)
	if nil == b {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *reader) uint64() uint64 {
	b := r.take(8)
	if nil == b {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func (r *reader) int64() int64 {
	return int64(r.uint64())
}

func (r *reader) octet() byte {
	b := r.take(1)
	if nil == b {
		return 0
	}
	return b[0]
}

func (r *reader) boolean() bool {
	switch r.octet() {
	case 0:
		return false
	case 1:
		return true
	default:
		if nil == r.err {
			r.err = fault.ErrNotTransactionPack
		}
		return false
	}
}

func (r *reader) publicKey() account.PublicKey {
	k := account.PublicKey{}
	copy(k[:], r.take(account.PublicKeyLength))
	return k
}

func (r *reader) signature() account.Signature {
	s := account.Signature{}
	copy(s[:], r.take(account.SignatureLength))
	return s
}

// version and checksum are left for validation to report
func (r *reader) address() account.Address {
	a := account.Address{}
	copy(a[:], r.take(account.AddressLength))
	return a
}

func (r *reader) bytes() []byte {
	if nil != r.err {
		return nil
	}
	length, count := util.ClippedVarint64(r.buffer[r.n:], 0, maxFieldLength)
	if 0 == count {
		if _, n := util.FromVarint64(r.buffer[r.n:]); 0 == n {
			r.err = fault.ErrUnexpectedEndOfRecord
		} else {
			r.err = fault.ErrValueTooLong
		}
		return nil
	}
	r.n += count
	b := r.take(length)
	if 0 == len(b) {
		return nil
	}
	return append([]byte{}, b...)
}

func (r *reader) text() string {
	b := r.bytes()
	if !utf8.Valid(b) {
		if nil == r.err {
			r.err = fault.ErrNotTransactionPack
		}
		return ""
	}
	return string(b)
}

func (t *Genesis) unpackPayload(r *reader) {
	t.Recipient = r.address()
	t.Asset = r.uint64()
	t.Amount = amount.Amount(r.int64())
	t.Level = r.octet()
	t.Flags = r.uint32()
}

func (t *Payment) unpackPayload(r *reader) {
	t.Recipient = r.address()
	t.Amount = amount.Amount(r.int64())
}

func (t *RegisterName) unpackPayload(r *reader) {
	t.Owner = r.address()
	t.Name = r.text()
	t.Data = r.text()
}

func (t *UpdateName) unpackPayload(r *reader) {
	t.Name = r.text()
	t.NewOwner = r.address()
	t.NewData = r.text()
}

func (t *IssueAsset) unpackPayload(r *reader) {
	t.Owner = r.address()
	t.AssetName = r.text()
	t.Description = r.text()
	t.Quantity = r.int64()
	t.IsDivisible = r.boolean()
}

func (t *TransferAsset) unpackPayload(r *reader) {
	t.Recipient = r.address()
	t.Asset = r.uint64()
	t.Amount = amount.Amount(r.int64())
}

func (t *Message) unpackPayload(r *reader) {
	t.Recipient = r.address()
	t.Asset = r.uint64()
	t.Amount = amount.Amount(r.int64())
	t.Data = r.bytes()
	t.IsText = r.boolean()
	t.IsEncrypted = r.boolean()
}

func (t *CreateGroup) unpackPayload(r *reader) {
	t.GroupName = r.text()
	t.Description = r.text()
	t.IsOpen = r.boolean()
	t.ApprovalThreshold = r.octet()
	t.MinimumBlockDelay = r.uint32()
	t.MaximumBlockDelay = r.uint32()
}

func (t *UpdateGroup) unpackPayload(r *reader) {
	t.GroupId = r.uint32()
	t.NewOwner = r.address()
	t.NewDescription = r.text()
	t.NewIsOpen = r.boolean()
	t.NewApprovalThreshold = r.octet()
	t.NewMinimumBlockDelay = r.uint32()
	t.NewMaximumBlockDelay = r.uint32()
}

func (t *AddGroupAdmin) unpackPayload(r *reader) {
	t.GroupId = r.uint32()
	t.Member = r.address()
}

func (t *RemoveGroupAdmin) unpackPayload(r *reader) {
	t.GroupId = r.uint32()
	t.Admin = r.address()
}

func (t *GroupBan) unpackPayload(r *reader) {
	t.GroupId = r.uint32()
	t.Offender = r.address()
	t.Reason = r.text()
	t.TimeToLive = r.uint32()
}

func (t *CancelGroupBan) unpackPayload(r *reader) {
	t.GroupId = r.uint32()
	t.Member = r.address()
}

func (t *GroupKick) unpackPayload(r *reader) {
	t.GroupId = r.uint32()
	t.Member = r.address()
	t.Reason = r.text()
}

func (t *GroupInvite) unpackPayload(r *reader) {
	t.GroupId = r.uint32()
	t.Invitee = r.address()
	t.TimeToLive = r.uint32()
}

func (t *CancelGroupInvite) unpackPayload(r *reader) {
	t.GroupId = r.uint32()
	t.Invitee = r.address()
}

func (t *JoinGroup) unpackPayload(r *reader) {
	t.GroupId = r.uint32()
}

func (t *LeaveGroup) unpackPayload(r *reader) {
	t.GroupId = r.uint32()
}
