// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
)

const keyRecordedFlag = 0x01

// PackApplied - the apply-time half of a record
//
// stored next to the signed bytes of a confirmed transaction, it is
// everything undo needs that cannot be derived from the signed fields
func PackApplied(t Transaction) []byte {
	buffer := make([]byte, 0, 1+5*account.SignatureLength)

	flags := byte(0)
	if t.Head().KeyRecorded {
		flags |= keyRecordedFlag
	}
	buffer = append(buffer, flags)

	switch tx := t.(type) {
	case *Genesis:
		buffer = append(buffer, tx.Applied.PreviousLevel)
		buffer = appendUint32(buffer, tx.Applied.PreviousFlags)
	case *UpdateName:
		buffer = append(buffer, tx.Applied.NameReference[:]...)
	case *IssueAsset:
		buffer = appendUint64(buffer, tx.Applied.AssetId)
	case *CreateGroup:
		buffer = appendUint32(buffer, tx.Applied.GroupId)
	case *UpdateGroup:
		buffer = append(buffer, tx.Applied.GroupReference[:]...)
		buffer = append(buffer, tx.Applied.JoinReference[:]...)
	case *RemoveGroupAdmin:
		buffer = append(buffer, tx.Applied.AdminReference[:]...)
	case *GroupBan:
		buffer = append(buffer, byte(tx.Applied.Prior))
		buffer = append(buffer, tx.Applied.MemberReference[:]...)
		buffer = append(buffer, tx.Applied.AdminReference[:]...)
		buffer = append(buffer, tx.Applied.JoinReference[:]...)
		buffer = append(buffer, tx.Applied.InviteReference[:]...)
		buffer = append(buffer, tx.Applied.BanReference[:]...)
	case *CancelGroupBan:
		buffer = append(buffer, tx.Applied.BanReference[:]...)
	case *GroupKick:
		buffer = append(buffer, byte(tx.Applied.Prior))
		buffer = append(buffer, tx.Applied.MemberReference[:]...)
		buffer = append(buffer, tx.Applied.AdminReference[:]...)
		buffer = append(buffer, tx.Applied.JoinReference[:]...)
	case *GroupInvite:
		buffer = append(buffer, byte(tx.Applied.Outcome))
		buffer = append(buffer, tx.Applied.JoinReference[:]...)
		buffer = append(buffer, tx.Applied.InviteReference[:]...)
	case *CancelGroupInvite:
		buffer = append(buffer, tx.Applied.InviteReference[:]...)
	case *JoinGroup:
		buffer = append(buffer, byte(tx.Applied.Outcome))
		buffer = append(buffer, tx.Applied.InviteReference[:]...)
	case *LeaveGroup:
		buffer = append(buffer, tx.Applied.MemberReference[:]...)
		buffer = append(buffer, tx.Applied.AdminReference[:]...)
	}
	return buffer
}

// ResetApplied - clear the apply-time half before a record is applied
//
// a record can be applied more than once (pool checks, a block, a
// resubmission after an orphan) and each apply fills only the fields
// of the branch it takes
func ResetApplied(t Transaction) {
	t.Head().KeyRecorded = false

	switch tx := t.(type) {
	case *Genesis:
		tx.Applied = Genesis{}.Applied
	case *UpdateName:
		tx.Applied = UpdateName{}.Applied
	case *IssueAsset:
		tx.Applied = IssueAsset{}.Applied
	case *CreateGroup:
		tx.Applied = CreateGroup{}.Applied
	case *UpdateGroup:
		tx.Applied = UpdateGroup{}.Applied
	case *RemoveGroupAdmin:
		tx.Applied = RemoveGroupAdmin{}.Applied
	case *GroupBan:
		tx.Applied = GroupBan{}.Applied
	case *CancelGroupBan:
		tx.Applied = CancelGroupBan{}.Applied
	case *GroupKick:
		tx.Applied = GroupKick{}.Applied
	case *GroupInvite:
		tx.Applied = GroupInvite{}.Applied
	case *CancelGroupInvite:
		tx.Applied = CancelGroupInvite{}.Applied
	case *JoinGroup:
		tx.Applied = JoinGroup{}.Applied
	case *LeaveGroup:
		tx.Applied = LeaveGroup{}.Applied
	}
}

// UnpackApplied - restore the apply-time half onto an unpacked record
func UnpackApplied(t Transaction, buffer []byte) error {
	r := &reader{buffer: buffer}

	t.Head().KeyRecorded = 0 != r.octet()&keyRecordedFlag

	switch tx := t.(type) {
	case *Genesis:
		tx.Applied.PreviousLevel = r.octet()
		tx.Applied.PreviousFlags = r.uint32()
	case *UpdateName:
		tx.Applied.NameReference = r.signature()
	case *IssueAsset:
		tx.Applied.AssetId = r.uint64()
	case *CreateGroup:
		tx.Applied.GroupId = r.uint32()
	case *UpdateGroup:
		tx.Applied.GroupReference = r.signature()
		tx.Applied.JoinReference = r.signature()
	case *RemoveGroupAdmin:
		tx.Applied.AdminReference = r.signature()
	case *GroupBan:
		tx.Applied.Prior = Branch(r.octet())
		tx.Applied.MemberReference = r.signature()
		tx.Applied.AdminReference = r.signature()
		tx.Applied.JoinReference = r.signature()
		tx.Applied.InviteReference = r.signature()
		tx.Applied.BanReference = r.signature()
	case *CancelGroupBan:
		tx.Applied.BanReference = r.signature()
	case *GroupKick:
		tx.Applied.Prior = Branch(r.octet())
		tx.Applied.MemberReference = r.signature()
		tx.Applied.AdminReference = r.signature()
		tx.Applied.JoinReference = r.signature()
	case *GroupInvite:
		tx.Applied.Outcome = Branch(r.octet())
		tx.Applied.JoinReference = r.signature()
		tx.Applied.InviteReference = r.signature()
	case *CancelGroupInvite:
		tx.Applied.InviteReference = r.signature()
	case *JoinGroup:
		tx.Applied.Outcome = Branch(r.octet())
		tx.Applied.InviteReference = r.signature()
	case *LeaveGroup:
		tx.Applied.MemberReference = r.signature()
		tx.Applied.AdminReference = r.signature()
	}

	if nil != r.err {
		return r.err
	}
	if r.n != len(buffer) {
		return fault.ErrNotTransactionPack
	}
	return nil
}
