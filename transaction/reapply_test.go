// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/transaction"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// a record checked against one state and later confirmed against
// another must not carry apply-time fields from the first
func TestReapplyAfterRollback(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	owner := makeKey(t, 0x01)
	admin := makeKey(t, 0x02)
	invitee := makeKey(t, 0x03)
	h.genesis(map[account.Address]amount.Amount{
		owner.Address():   coins(100),
		admin.Address():   coins(100),
		invitee.Address(): coins(100),
	})

	created := h.step(owner, &transactionrecord.CreateGroup{
		Header:            fee(),
		GroupName:         "club",
		Description:       "the club",
		IsOpen:            true,
		ApprovalThreshold: 50,
		MaximumBlockDelay: 10,
	})
	id := created.Record.(*transactionrecord.CreateGroup).Applied.GroupId

	h.step(admin, &transactionrecord.JoinGroup{Header: fee(), GroupId: id})
	h.step(owner, &transactionrecord.AddGroupAdmin{Header: fee(), GroupId: id, Member: admin.Address()})
	h.step(owner, &transactionrecord.GroupInvite{Header: fee(), GroupId: id, Invitee: invitee.Address()})

	ban := h.sign(owner, &transactionrecord.GroupBan{Header: fee(), GroupId: id, Offender: invitee.Address(), Reason: "spam"})
	if result := h.validate(ban); transaction.OK != result {
		t.Fatalf("validate ban result: %s", result)
	}

	// tentative apply while the invite exists
	savepoint := h.trx.Savepoint()
	if err := ban.Apply(h.c); nil != err {
		t.Fatalf("tentative apply error: %s", err)
	}
	if err := h.trx.RollbackTo(savepoint); nil != err {
		t.Fatalf("rollback error: %s", err)
	}
	assert.False(t, ban.Record.(*transactionrecord.GroupBan).Applied.InviteReference.IsNull(), "tentative apply saw no invite")

	h.step(admin, &transactionrecord.CancelGroupInvite{Header: fee(), GroupId: id, Invitee: invitee.Address()})

	if result := h.validate(ban); transaction.OK != result {
		t.Fatalf("revalidate ban result: %s", result)
	}

	before := h.dump()
	h.apply(ban)

	confirmed, err := h.c.State.GetTransaction(ban.Signature())
	if nil != err || nil == confirmed {
		t.Fatalf("get transaction: %v error: %v", confirmed, err)
	}
	stored := confirmed.Transaction.(*transactionrecord.GroupBan)
	assert.True(t, stored.Applied.InviteReference.IsNull(), "stale invite reference stored")
	assert.True(t, stored.Applied.JoinReference.IsNull(), "stale join reference stored")
	assert.Equal(t, transactionrecord.BranchNone, stored.Applied.Prior, "wrong prior branch")

	h.undo(ban)
	if !equalElements(before, h.dump()) {
		t.Fatalf("undo after re-apply did not restore state")
	}

	invite, err := h.c.State.GetInvite(id, invitee.Address())
	if nil != err {
		t.Fatalf("get invite error: %s", err)
	}
	assert.Nil(t, invite, "cancelled invite restored by undo")
}

// every apply-time field is cleared, including those a branch skips
func TestResetApplied(t *testing.T) {
	reference := account.Signature{0x5a}

	invite := &transactionrecord.GroupInvite{}
	invite.KeyRecorded = true
	invite.Applied.Outcome = transactionrecord.BranchInvite
	invite.Applied.JoinReference = reference
	invite.Applied.InviteReference = reference

	transactionrecord.ResetApplied(invite)
	assert.False(t, invite.KeyRecorded, "key recorded flag kept")
	assert.Equal(t, transactionrecord.GroupInvite{}.Applied, invite.Applied, "invite applied half kept")

	issue := &transactionrecord.IssueAsset{}
	issue.Applied.AssetId = 7
	transactionrecord.ResetApplied(issue)
	assert.Equal(t, uint64(0), issue.Applied.AssetId, "asset id kept")

	update := &transactionrecord.UpdateGroup{}
	update.Applied.GroupReference = reference
	update.Applied.JoinReference = reference
	transactionrecord.ResetApplied(update)
	assert.True(t, update.Applied.JoinReference.IsNull(), "join reference kept")
	assert.True(t, update.Applied.GroupReference.IsNull(), "group reference kept")
}
