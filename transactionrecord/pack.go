// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// PackUnsigned - the bytes covered by the signature
func PackUnsigned(t Transaction) Packed {
	h := t.Head()

	buffer := make([]byte, 0, headerLength+128+account.SignatureLength)
	buffer = appendUint32(buffer, uint32(t.Type()))
	buffer = append(buffer, h.Creator[:]...)
	buffer = appendUint64(buffer, uint64(h.Timestamp))
	buffer = append(buffer, h.Reference[:]...)
	buffer = appendUint64(buffer, uint64(h.Fee))
	return t.packPayload(buffer)
}

// Pack - the complete wire form
func Pack(t Transaction) (Packed, error) {
	h := t.Head()
	if h.Signature.IsNull() {
		return nil, fault.ErrTransactionNotSigned
	}
	return append(PackUnsigned(t), h.Signature[:]...), nil
}

// Sign - set creator and signature
//
// genesis records use a digest in place of a signature
func Sign(t Transaction, key *account.PrivateKey) (Packed, error) {
	h := t.Head()
	if GenesisTag == t.Type() {
		h.Creator = account.GenesisPublicKey
		h.Signature = genesisSignature(PackUnsigned(t))
	} else {
		h.Creator = key.PublicKey()
		h.Signature = key.Sign(PackUnsigned(t))
	}
	return Pack(t)
}

// CheckSignature - verify the signature against the creator
func CheckSignature(t Transaction) error {
	h := t.Head()
	message := PackUnsigned(t)
	if GenesisTag == t.Type() {
		if !h.Creator.IsZero() || genesisSignature(message) != h.Signature {
			return fault.ErrInvalidSignature
		}
		return nil
	}
	if h.Creator.IsZero() {
		return fault.ErrInvalidPublicKey
	}
	return h.Creator.CheckSignature(message, h.Signature)
}

func genesisSignature(message []byte) account.Signature {
	return account.Signature(sha3.Sum512(message))
}

func (t *Genesis) packPayload(buffer []byte) []byte {
	buffer = append(buffer, t.Recipient[:]...)
	buffer = appendUint64(buffer, t.Asset)
	buffer = appendUint64(buffer, uint64(t.Amount))
	buffer = append(buffer, t.Level)
	return appendUint32(buffer, t.Flags)
}

func (t *Payment) packPayload(buffer []byte) []byte {
	buffer = append(buffer, t.Recipient[:]...)
	return appendUint64(buffer, uint64(t.Amount))
}

func (t *RegisterName) packPayload(buffer []byte) []byte {
	buffer = append(buffer, t.Owner[:]...)
	buffer = appendString(buffer, t.Name)
	return appendString(buffer, t.Data)
}

func (t *UpdateName) packPayload(buffer []byte) []byte {
	buffer = appendString(buffer, t.Name)
	buffer = append(buffer, t.NewOwner[:]...)
	return appendString(buffer, t.NewData)
}

func (t *IssueAsset) packPayload(buffer []byte) []byte {
	buffer = append(buffer, t.Owner[:]...)
	buffer = appendString(buffer, t.AssetName)
	buffer = appendString(buffer, t.Description)
	buffer = appendUint64(buffer, uint64(t.Quantity))
	return appendBool(buffer, t.IsDivisible)
}

func (t *TransferAsset) packPayload(buffer []byte) []byte {
	buffer = append(buffer, t.Recipient[:]...)
	buffer = appendUint64(buffer, t.Asset)
	return appendUint64(buffer, uint64(t.Amount))
}

func (t *Message) packPayload(buffer []byte) []byte {
	buffer = append(buffer, t.Recipient[:]...)
	buffer = appendUint64(buffer, t.Asset)
	buffer = appendUint64(buffer, uint64(t.Amount))
	buffer = appendBytes(buffer, t.Data)
	buffer = appendBool(buffer, t.IsText)
	return appendBool(buffer, t.IsEncrypted)
}

func (t *CreateGroup) packPayload(buffer []byte) []byte {
	buffer = appendString(buffer, t.GroupName)
	buffer = appendString(buffer, t.Description)
	buffer = appendBool(buffer, t.IsOpen)
	buffer = append(buffer, t.ApprovalThreshold)
	buffer = appendUint32(buffer, t.MinimumBlockDelay)
	return appendUint32(buffer, t.MaximumBlockDelay)
}

func (t *UpdateGroup) packPayload(buffer []byte) []byte {
	buffer = appendUint32(buffer, t.GroupId)
	buffer = append(buffer, t.NewOwner[:]...)
	buffer = appendString(buffer, t.NewDescription)
	buffer = appendBool(buffer, t.NewIsOpen)
	buffer = append(buffer, t.NewApprovalThreshold)
	buffer = appendUint32(buffer, t.NewMinimumBlockDelay)
	return appendUint32(buffer, t.NewMaximumBlockDelay)
}

func (t *AddGroupAdmin) packPayload(buffer []byte) []byte {
	buffer = appendUint32(buffer, t.GroupId)
	return append(buffer, t.Member[:]...)
}

func (t *RemoveGroupAdmin) packPayload(buffer []byte) []byte {
	buffer = appendUint32(buffer, t.GroupId)
	return append(buffer, t.Admin[:]...)
}

func (t *GroupBan) packPayload(buffer []byte) []byte {
	buffer = appendUint32(buffer, t.GroupId)
	buffer = append(buffer, t.Offender[:]...)
	buffer = appendString(buffer, t.Reason)
	return appendUint32(buffer, t.TimeToLive)
}

func (t *CancelGroupBan) packPayload(buffer []byte) []byte {
	buffer = appendUint32(buffer, t.GroupId)
	return append(buffer, t.Member[:]...)
}

func (t *GroupKick) packPayload(buffer []byte) []byte {
	buffer = appendUint32(buffer, t.GroupId)
	buffer = append(buffer, t.Member[:]...)
	return appendString(buffer, t.Reason)
}

func (t *GroupInvite) packPayload(buffer []byte) []byte {
	buffer = appendUint32(buffer, t.GroupId)
	buffer = append(buffer, t.Invitee[:]...)
	return appendUint32(buffer, t.TimeToLive)
}

func (t *CancelGroupInvite) packPayload(buffer []byte) []byte {
	buffer = appendUint32(buffer, t.GroupId)
	return append(buffer, t.Invitee[:]...)
}

func (t *JoinGroup) packPayload(buffer []byte) []byte {
	return appendUint32(buffer, t.GroupId)
}

func (t *LeaveGroup) packPayload(buffer []byte) []byte {
	return appendUint32(buffer, t.GroupId)
}

// append a single string
func appendString(buffer []byte, s string) []byte {
	return appendBytes(buffer, []byte(s))
}

// append a bytes with a Varint64 length prefix
func appendBytes(buffer []byte, data []byte) []byte {
	buffer = util.AppendVarint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

func appendBool(buffer []byte, b bool) []byte {
	if b {
		return append(buffer, 1)
	}
	return append(buffer, 0)
}

func appendUint32(buffer []byte, value uint32) []byte {
	n := make([]byte, 4)
	binary.BigEndian.PutUint32(n, value)
	return append(buffer, n...)
}

func appendUint64(buffer []byte, value uint64) []byte {
	n := make([]byte, 8)
	binary.BigEndian.PutUint64(n, value)
	return append(buffer, n...)
}
