// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package group_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/group"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func header() transactionrecord.Header {
	return transactionrecord.Header{Fee: 1}
}

func TestCreateGroup(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	owner := makeKey(t, 0x01)
	id := h.create(owner, "Alpha", false)
	assert.Equal(t, uint32(1), id, "group id")

	g, err := h.s.GetGroup(id)
	if nil != err || nil == g {
		t.Fatalf("get group: %v error: %v", g, err)
	}
	assert.Equal(t, owner.Address(), g.Owner, "owner")
	assert.Equal(t, "Alpha", g.Name, "name")
	assert.Equal(t, int64(0), g.Updated, "updated")
	assert.True(t, h.isMember(id, owner.Address()), "owner not member")
	assert.True(t, h.isAdmin(id, owner.Address()), "owner not admin")

	assert.Equal(t, uint32(2), h.create(owner, "Beta", true), "second group id")
}

// closed group: a join request is approved by an invite
func TestJoinRequestApprovedByInvite(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	owner := makeKey(t, 0x01)
	joiner := makeKey(t, 0x02)
	id := h.create(owner, "closed", false)

	join := h.step(joiner, &transactionrecord.JoinGroup{Header: header(), GroupId: id}).(*transactionrecord.JoinGroup)
	assert.Equal(t, transactionrecord.BranchJoinRequest, join.Applied.Outcome, "join outcome")
	assert.True(t, h.hasJoinRequest(id, joiner.Address()), "no join request")
	assert.False(t, h.isMember(id, joiner.Address()), "joined a closed group")

	before := h.dump()
	invite := h.step(owner, &transactionrecord.GroupInvite{
		Header:  header(),
		GroupId: id,
		Invitee: joiner.Address(),
	}).(*transactionrecord.GroupInvite)
	assert.Equal(t, transactionrecord.BranchJoinRequest, invite.Applied.Outcome, "invite outcome")
	assert.Equal(t, join.Signature, invite.Applied.JoinReference, "join reference")
	assert.True(t, h.isMember(id, joiner.Address()), "not a member after approval")
	assert.False(t, h.hasJoinRequest(id, joiner.Address()), "join request not consumed")
	assert.False(t, h.hasInvite(id, joiner.Address()), "invite row written for an approval")

	h.undo(invite)
	assert.True(t, h.hasJoinRequest(id, joiner.Address()), "join request not restored")
	assert.False(t, h.isMember(id, joiner.Address()), "membership not removed")
	assert.Equal(t, before, h.dump(), "state after undo")
}

// kicking a join requester restores only the request
func TestKickJoinRequester(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	owner := makeKey(t, 0x01)
	joiner := makeKey(t, 0x02)
	id := h.create(owner, "closed", false)
	h.step(joiner, &transactionrecord.JoinGroup{Header: header(), GroupId: id})

	before := h.dump()
	kick := h.step(owner, &transactionrecord.GroupKick{
		Header:  header(),
		GroupId: id,
		Member:  joiner.Address(),
		Reason:  "no",
	}).(*transactionrecord.GroupKick)
	assert.Equal(t, transactionrecord.BranchJoinRequest, kick.Applied.Prior, "prior branch")
	assert.True(t, kick.Applied.MemberReference.IsNull(), "member reference recorded")
	assert.True(t, kick.Applied.AdminReference.IsNull(), "admin reference recorded")
	assert.False(t, h.hasJoinRequest(id, joiner.Address()), "join request not removed")

	h.undo(kick)
	assert.True(t, h.hasJoinRequest(id, joiner.Address()), "join request not restored")
	assert.False(t, h.isMember(id, joiner.Address()), "spurious membership")
	assert.Equal(t, before, h.dump(), "state after undo")
}

func TestKickAdmin(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	owner := makeKey(t, 0x01)
	member := makeKey(t, 0x02)
	id := h.create(owner, "open", true)
	join := h.step(member, &transactionrecord.JoinGroup{Header: header(), GroupId: id})
	promote := h.step(owner, &transactionrecord.AddGroupAdmin{Header: header(), GroupId: id, Member: member.Address()})

	kick := h.step(owner, &transactionrecord.GroupKick{
		Header:  header(),
		GroupId: id,
		Member:  member.Address(),
	}).(*transactionrecord.GroupKick)
	assert.Equal(t, transactionrecord.BranchMember, kick.Applied.Prior, "prior branch")
	assert.Equal(t, join.Head().Signature, kick.Applied.MemberReference, "member reference")
	assert.Equal(t, promote.Head().Signature, kick.Applied.AdminReference, "admin reference")

	h.undo(kick)
	m, _ := h.s.GetMember(id, member.Address())
	if nil == m {
		t.Fatal("member not restored")
	}
	assert.Equal(t, join.Head().Timestamp, m.Joined, "joined timestamp rebuilt from reference")
	assert.True(t, h.isAdmin(id, member.Address()), "admin not restored")
}

// ownership moves to an existing member
func TestUpdateOwnerToMember(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	owner := makeKey(t, 0x01)
	next := makeKey(t, 0x02)
	id := h.create(owner, "open", true)
	join := h.step(next, &transactionrecord.JoinGroup{Header: header(), GroupId: id})

	before := h.dump()
	update := h.step(owner, &transactionrecord.UpdateGroup{
		Header:               header(),
		GroupId:              id,
		NewOwner:             next.Address(),
		NewDescription:       "new",
		NewIsOpen:            false,
		NewApprovalThreshold: 2,
	}).(*transactionrecord.UpdateGroup)

	g, _ := h.s.GetGroup(id)
	assert.Equal(t, next.Address(), g.Owner, "owner")
	assert.Equal(t, "new", g.Description, "description")
	assert.Equal(t, update.Timestamp, g.Updated, "updated")

	m, _ := h.s.GetMember(id, next.Address())
	assert.Equal(t, join.Head().Signature, m.Reference, "member row replaced")
	a, _ := h.s.GetAdmin(id, next.Address())
	assert.Equal(t, update.Signature, a.Reference, "admin row reference")
	assert.True(t, h.isMember(id, owner.Address()), "previous owner lost membership")
	assert.True(t, h.isAdmin(id, owner.Address()), "previous owner lost adminship")

	h.undo(update)
	assert.False(t, h.isAdmin(id, next.Address()), "granted admin not revoked")
	assert.True(t, h.isMember(id, next.Address()), "existing membership revoked")
	g, _ = h.s.GetGroup(id)
	assert.Equal(t, owner.Address(), g.Owner, "owner restored")
	assert.Equal(t, "group open", g.Description, "description restored")
	assert.Equal(t, int64(0), g.Updated, "updated restored")
	assert.Equal(t, before, h.dump(), "state after undo")
}

// ownership moves to an address with a pending join request, then back
func TestUpdateOwnerChain(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	owner := makeKey(t, 0x01)
	next := makeKey(t, 0x02)
	id := h.create(owner, "closed", false)
	join := h.step(next, &transactionrecord.JoinGroup{Header: header(), GroupId: id})

	first := h.step(owner, &transactionrecord.UpdateGroup{
		Header:         header(),
		GroupId:        id,
		NewOwner:       next.Address(),
		NewDescription: "first",
	}).(*transactionrecord.UpdateGroup)
	assert.Equal(t, join.Head().Signature, first.Applied.JoinReference, "join reference")
	assert.False(t, h.hasJoinRequest(id, next.Address()), "join request not consumed")

	second := h.step(next, &transactionrecord.UpdateGroup{
		Header:         header(),
		GroupId:        id,
		NewOwner:       owner.Address(),
		NewDescription: "second",
		NewIsOpen:      true,
	}).(*transactionrecord.UpdateGroup)
	assert.Equal(t, first.Signature, second.Applied.GroupReference, "group reference")

	h.undo(second)
	g, _ := h.s.GetGroup(id)
	assert.Equal(t, next.Address(), g.Owner, "owner from first update")
	assert.Equal(t, "first", g.Description, "description from first update")
	assert.Equal(t, first.Timestamp, g.Updated, "updated from first update")

	h.undo(first)
	assert.True(t, h.hasJoinRequest(id, next.Address()), "join request not restored")
	assert.False(t, h.isMember(id, next.Address()), "membership not revoked")
}

func TestRemoveAdmin(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	owner := makeKey(t, 0x01)
	member := makeKey(t, 0x02)
	id := h.create(owner, "open", true)
	h.step(member, &transactionrecord.JoinGroup{Header: header(), GroupId: id})
	promote := h.step(owner, &transactionrecord.AddGroupAdmin{Header: header(), GroupId: id, Member: member.Address()})
	assert.True(t, h.isAdmin(id, member.Address()), "not promoted")

	demote := h.step(owner, &transactionrecord.RemoveGroupAdmin{
		Header:  header(),
		GroupId: id,
		Admin:   member.Address(),
	}).(*transactionrecord.RemoveGroupAdmin)
	assert.Equal(t, promote.Head().Signature, demote.Applied.AdminReference, "admin reference")
	assert.False(t, h.isAdmin(id, member.Address()), "not demoted")
	assert.True(t, h.isMember(id, member.Address()), "membership lost")
}

func TestBanAndCancel(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	owner := makeKey(t, 0x01)
	offender := makeKey(t, 0x02)
	id := h.create(owner, "closed", false)

	invite := h.step(owner, &transactionrecord.GroupInvite{
		Header:     header(),
		GroupId:    id,
		Invitee:    offender.Address(),
		TimeToLive: 3600,
	})

	first := h.step(owner, &transactionrecord.GroupBan{
		Header:     header(),
		GroupId:    id,
		Offender:   offender.Address(),
		Reason:     "first",
		TimeToLive: 60,
	}).(*transactionrecord.GroupBan)
	assert.Equal(t, transactionrecord.BranchNone, first.Applied.Prior, "prior branch")
	assert.Equal(t, invite.Head().Signature, first.Applied.InviteReference, "invite reference")
	assert.False(t, h.hasInvite(id, offender.Address()), "invite not removed")

	ban, _ := h.s.GetBan(id, offender.Address())
	if nil == ban {
		t.Fatal("ban missing")
	}
	assert.Equal(t, first.Timestamp+60000, ban.Expiry, "expiry")
	assert.Equal(t, owner.Address(), ban.Admin, "banning admin")

	second := h.step(owner, &transactionrecord.GroupBan{
		Header:   header(),
		GroupId:  id,
		Offender: offender.Address(),
		Reason:   "second",
	}).(*transactionrecord.GroupBan)
	assert.Equal(t, first.Signature, second.Applied.BanReference, "ban reference")

	cancel := h.step(owner, &transactionrecord.CancelGroupBan{
		Header:  header(),
		GroupId: id,
		Member:  offender.Address(),
	}).(*transactionrecord.CancelGroupBan)
	assert.Equal(t, second.Signature, cancel.Applied.BanReference, "cancel reference")

	h.undo(cancel)
	h.undo(second)
	ban, _ = h.s.GetBan(id, offender.Address())
	if nil == ban {
		t.Fatal("first ban not restored")
	}
	assert.Equal(t, "first", ban.Reason, "reason rebuilt")
	assert.Equal(t, first.Timestamp+60000, ban.Expiry, "expiry rebuilt")

	h.undo(first)
	i, _ := h.s.GetInvite(id, offender.Address())
	if nil == i {
		t.Fatal("invite not restored")
	}
	assert.Equal(t, invite.Head().Timestamp+3600000, i.Expiry, "invite expiry rebuilt")
}

func TestBanMember(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	owner := makeKey(t, 0x01)
	member := makeKey(t, 0x02)
	id := h.create(owner, "open", true)
	join := h.step(member, &transactionrecord.JoinGroup{Header: header(), GroupId: id})

	ban := h.step(owner, &transactionrecord.GroupBan{
		Header:   header(),
		GroupId:  id,
		Offender: member.Address(),
	}).(*transactionrecord.GroupBan)
	assert.Equal(t, transactionrecord.BranchMember, ban.Applied.Prior, "prior branch")
	assert.Equal(t, join.Head().Signature, ban.Applied.MemberReference, "member reference")
	assert.False(t, h.isMember(id, member.Address()), "still a member")

	banned, err := h.s.IsBanned(id, member.Address(), ban.Timestamp+1)
	assert.Nil(t, err, "is banned error")
	assert.True(t, banned, "not banned")
}

func TestInviteThenJoin(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	owner := makeKey(t, 0x01)
	invitee := makeKey(t, 0x02)
	id := h.create(owner, "closed", false)

	first := h.step(owner, &transactionrecord.GroupInvite{Header: header(), GroupId: id, Invitee: invitee.Address()})
	second := h.step(owner, &transactionrecord.GroupInvite{
		Header:     header(),
		GroupId:    id,
		Invitee:    invitee.Address(),
		TimeToLive: 10,
	}).(*transactionrecord.GroupInvite)
	assert.Equal(t, transactionrecord.BranchInvite, second.Applied.Outcome, "outcome")
	assert.Equal(t, first.Head().Signature, second.Applied.InviteReference, "previous invite")

	join := h.step(invitee, &transactionrecord.JoinGroup{Header: header(), GroupId: id}).(*transactionrecord.JoinGroup)
	assert.Equal(t, transactionrecord.BranchInvite, join.Applied.Outcome, "join outcome")
	assert.Equal(t, second.Signature, join.Applied.InviteReference, "consumed invite")
	assert.True(t, h.isMember(id, invitee.Address()), "not a member")
	assert.False(t, h.hasInvite(id, invitee.Address()), "invite not consumed")

	leave := h.step(invitee, &transactionrecord.LeaveGroup{Header: header(), GroupId: id}).(*transactionrecord.LeaveGroup)
	assert.Equal(t, join.Signature, leave.Applied.MemberReference, "member reference")
	assert.True(t, leave.Applied.AdminReference.IsNull(), "admin reference")
	assert.False(t, h.isMember(id, invitee.Address()), "still a member")
}

func TestExpiredInviteIsNotConsumed(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	owner := makeKey(t, 0x01)
	invitee := makeKey(t, 0x02)
	id := h.create(owner, "closed", false)

	h.step(owner, &transactionrecord.GroupInvite{
		Header:     header(),
		GroupId:    id,
		Invitee:    invitee.Address(),
		TimeToLive: 1,
	})
	join := h.step(invitee, &transactionrecord.JoinGroup{Header: header(), GroupId: id}).(*transactionrecord.JoinGroup)
	assert.Equal(t, transactionrecord.BranchJoinRequest, join.Applied.Outcome, "expired invite used")
	assert.True(t, h.hasInvite(id, invitee.Address()), "expired invite removed")
}

func TestCancelInvite(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	owner := makeKey(t, 0x01)
	invitee := makeKey(t, 0x02)
	id := h.create(owner, "closed", false)

	invite := h.step(owner, &transactionrecord.GroupInvite{Header: header(), GroupId: id, Invitee: invitee.Address()})
	cancel := h.step(owner, &transactionrecord.CancelGroupInvite{
		Header:  header(),
		GroupId: id,
		Invitee: invitee.Address(),
	}).(*transactionrecord.CancelGroupInvite)
	assert.Equal(t, invite.Head().Signature, cancel.Applied.InviteReference, "invite reference")
	assert.False(t, h.hasInvite(id, invitee.Address()), "invite not removed")
}

func TestInconsistentStateIsFatal(t *testing.T) {
	h := setup(t)
	defer teardown(h)

	nobody := makeKey(t, 0x09).Address()

	err := group.Leave(h.s, &transactionrecord.LeaveGroup{
		Header:  transactionrecord.Header{Creator: makeKey(t, 0x09).PublicKey()},
		GroupId: 7,
	})
	assert.True(t, fault.IsErrData(err), "leave without membership: %v", err)

	err = group.UndoCancelBan(h.s, &transactionrecord.CancelGroupBan{GroupId: 7, Member: nobody})
	assert.True(t, fault.IsErrData(err), "undo without reference: %v", err)

	tx := &transactionrecord.CancelGroupInvite{GroupId: 7, Invitee: nobody}
	tx.Applied.InviteReference = account.Signature{1}
	err = group.UndoCancelInvite(h.s, tx)
	assert.True(t, fault.IsErrData(err), "undo with missing reference: %v", err)
}

func TestExpiry(t *testing.T) {
	assert.Equal(t, int64(0), group.Expiry(1000, 0), "forever")
	assert.Equal(t, int64(61000), group.Expiry(1000, 60), "one minute")
}
