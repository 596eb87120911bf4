// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package group

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// what an address held before a kick or ban removed it
type prior struct {
	branch          transactionrecord.Branch
	memberReference account.Signature
	adminReference  account.Signature
	joinReference   account.Signature
}

// remove a member, or failing that a join request
//
// the branch is recorded explicitly since a join requester has no
// member reference to be restored from
func removeRelation(s *state.State, id uint32, address account.Address) (prior, error) {
	p := prior{}

	member, err := s.GetMember(id, address)
	if nil != err {
		return p, err
	}
	if nil != member {
		p.branch = transactionrecord.BranchMember
		p.memberReference, p.adminReference, err = removeMembership(s, id, address)
		return p, err
	}

	request, err := s.GetJoinRequest(id, address)
	if nil != err {
		return p, err
	}
	if nil != request {
		p.branch = transactionrecord.BranchJoinRequest
		p.joinReference = request.Reference
		return p, s.DeleteJoinRequest(id, address)
	}

	p.branch = transactionrecord.BranchNone
	return p, nil
}

func restoreRelation(s *state.State, id uint32, address account.Address, p prior) error {
	switch p.branch {
	case transactionrecord.BranchMember:
		return restoreMembership(s, id, address, p.memberReference, p.adminReference)
	case transactionrecord.BranchJoinRequest:
		if p.joinReference.IsNull() {
			return fault.DataErrorf("group: %d address: %s has no join request reference", id, address)
		}
		return restoreJoinRequest(s, id, address, p.joinReference)
	case transactionrecord.BranchNone:
		return nil
	default:
		return fault.DataErrorf("group: %d address: %s unknown branch: %d", id, address, p.branch)
	}
}

// Kick - remove a member or reject a join request
func Kick(s *state.State, tx *transactionrecord.GroupKick) error {
	p, err := removeRelation(s, tx.GroupId, tx.Member)
	if nil != err {
		return err
	}
	if transactionrecord.BranchNone == p.branch {
		return fault.DataErrorf("group: %d address: %s is neither member nor requester", tx.GroupId, tx.Member)
	}
	tx.Applied.Prior = p.branch
	tx.Applied.MemberReference = p.memberReference
	tx.Applied.AdminReference = p.adminReference
	tx.Applied.JoinReference = p.joinReference
	return nil
}

// UndoKick - restore the membership or the join request
func UndoKick(s *state.State, tx *transactionrecord.GroupKick) error {
	if transactionrecord.BranchNone == tx.Applied.Prior {
		return fault.DataErrorf("group kick: %s has no prior branch", tx.Signature)
	}
	return restoreRelation(s, tx.GroupId, tx.Member, prior{
		branch:          tx.Applied.Prior,
		memberReference: tx.Applied.MemberReference,
		adminReference:  tx.Applied.AdminReference,
		joinReference:   tx.Applied.JoinReference,
	})
}

// Ban - remove every relation the offender has and write the ban
//
// a pending invite and any previous ban are replaced; both are
// recorded so undo can restore them
func Ban(s *state.State, tx *transactionrecord.GroupBan) error {
	p, err := removeRelation(s, tx.GroupId, tx.Offender)
	if nil != err {
		return err
	}
	tx.Applied.Prior = p.branch
	tx.Applied.MemberReference = p.memberReference
	tx.Applied.AdminReference = p.adminReference
	tx.Applied.JoinReference = p.joinReference

	invite, err := s.GetInvite(tx.GroupId, tx.Offender)
	if nil != err {
		return err
	}
	if nil != invite {
		tx.Applied.InviteReference = invite.Reference
		if err := s.DeleteInvite(tx.GroupId, tx.Offender); nil != err {
			return err
		}
	}

	ban, err := s.GetBan(tx.GroupId, tx.Offender)
	if nil != err {
		return err
	}
	if nil != ban {
		tx.Applied.BanReference = ban.Reference
	}

	return s.PutBan(&state.Ban{
		GroupId:   tx.GroupId,
		Offender:  tx.Offender,
		Admin:     tx.CreatorAddress(),
		Banned:    tx.Timestamp,
		Reason:    tx.Reason,
		Expiry:    Expiry(tx.Timestamp, tx.TimeToLive),
		Reference: tx.Signature,
	})
}

// UndoBan - lift the ban and restore everything it replaced
func UndoBan(s *state.State, tx *transactionrecord.GroupBan) error {
	if err := s.DeleteBan(tx.GroupId, tx.Offender); nil != err {
		return err
	}
	if err := restoreBan(s, tx.GroupId, tx.Offender, tx.Applied.BanReference); nil != err {
		return err
	}
	if err := restoreInvite(s, tx.GroupId, tx.Offender, tx.Applied.InviteReference); nil != err {
		return err
	}
	return restoreRelation(s, tx.GroupId, tx.Offender, prior{
		branch:          tx.Applied.Prior,
		memberReference: tx.Applied.MemberReference,
		adminReference:  tx.Applied.AdminReference,
		joinReference:   tx.Applied.JoinReference,
	})
}

// CancelBan - lift a ban
func CancelBan(s *state.State, tx *transactionrecord.CancelGroupBan) error {
	ban, err := s.GetBan(tx.GroupId, tx.Member)
	if nil != err {
		return err
	}
	if nil == ban {
		return fault.DataErrorf("group: %d address: %s is not banned", tx.GroupId, tx.Member)
	}
	tx.Applied.BanReference = ban.Reference
	return s.DeleteBan(tx.GroupId, tx.Member)
}

// UndoCancelBan - rebuild the ban from the transaction that made it
func UndoCancelBan(s *state.State, tx *transactionrecord.CancelGroupBan) error {
	if tx.Applied.BanReference.IsNull() {
		return fault.DataErrorf("cancel group ban: %s has no ban reference", tx.Signature)
	}
	return restoreBan(s, tx.GroupId, tx.Member, tx.Applied.BanReference)
}
