// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package group

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Invite - approve a pending join request, otherwise write an invite
func Invite(s *state.State, tx *transactionrecord.GroupInvite) error {
	request, err := s.GetJoinRequest(tx.GroupId, tx.Invitee)
	if nil != err {
		return err
	}
	if nil != request {
		tx.Applied.Outcome = transactionrecord.BranchJoinRequest
		tx.Applied.JoinReference = request.Reference
		if err := s.DeleteJoinRequest(tx.GroupId, tx.Invitee); nil != err {
			return err
		}
		return s.PutMember(&state.Member{
			GroupId:   tx.GroupId,
			Address:   tx.Invitee,
			Joined:    tx.Timestamp,
			Reference: tx.Signature,
		})
	}

	tx.Applied.Outcome = transactionrecord.BranchInvite
	previous, err := s.GetInvite(tx.GroupId, tx.Invitee)
	if nil != err {
		return err
	}
	if nil != previous {
		tx.Applied.InviteReference = previous.Reference
	}
	return s.PutInvite(&state.Invite{
		GroupId:   tx.GroupId,
		Invitee:   tx.Invitee,
		Inviter:   tx.CreatorAddress(),
		Expiry:    Expiry(tx.Timestamp, tx.TimeToLive),
		Reference: tx.Signature,
	})
}

// UndoInvite - remove the membership and restore the join request,
// or restore whatever invite was replaced
func UndoInvite(s *state.State, tx *transactionrecord.GroupInvite) error {
	switch tx.Applied.Outcome {
	case transactionrecord.BranchJoinRequest:
		if err := s.DeleteMember(tx.GroupId, tx.Invitee); nil != err {
			return err
		}
		if tx.Applied.JoinReference.IsNull() {
			return fault.DataErrorf("group invite: %s has no join request reference", tx.Signature)
		}
		return restoreJoinRequest(s, tx.GroupId, tx.Invitee, tx.Applied.JoinReference)

	case transactionrecord.BranchInvite:
		if err := s.DeleteInvite(tx.GroupId, tx.Invitee); nil != err {
			return err
		}
		return restoreInvite(s, tx.GroupId, tx.Invitee, tx.Applied.InviteReference)

	default:
		return fault.DataErrorf("group invite: %s unknown outcome: %d", tx.Signature, tx.Applied.Outcome)
	}
}

// CancelInvite - withdraw an invite
func CancelInvite(s *state.State, tx *transactionrecord.CancelGroupInvite) error {
	invite, err := s.GetInvite(tx.GroupId, tx.Invitee)
	if nil != err {
		return err
	}
	if nil == invite {
		return fault.DataErrorf("group: %d address: %s is not invited", tx.GroupId, tx.Invitee)
	}
	tx.Applied.InviteReference = invite.Reference
	return s.DeleteInvite(tx.GroupId, tx.Invitee)
}

// UndoCancelInvite - rebuild the invite from the transaction that made it
func UndoCancelInvite(s *state.State, tx *transactionrecord.CancelGroupInvite) error {
	if tx.Applied.InviteReference.IsNull() {
		return fault.DataErrorf("cancel group invite: %s has no invite reference", tx.Signature)
	}
	return restoreInvite(s, tx.GroupId, tx.Invitee, tx.Applied.InviteReference)
}
