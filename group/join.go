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

// Join - accept an invite, join an open group or request to join a
// closed one
func Join(s *state.State, tx *transactionrecord.JoinGroup) error {
	g, err := mustGetGroup(s, tx.GroupId)
	if nil != err {
		return err
	}
	address := tx.CreatorAddress()

	invite, err := s.GetInvite(tx.GroupId, address)
	if nil != err {
		return err
	}

	switch {
	case nil != invite && invite.IsActive(tx.Timestamp):
		tx.Applied.Outcome = transactionrecord.BranchInvite
		tx.Applied.InviteReference = invite.Reference
		if err := s.DeleteInvite(tx.GroupId, address); nil != err {
			return err
		}
	case g.IsOpen:
		tx.Applied.Outcome = transactionrecord.BranchMember
	default:
		tx.Applied.Outcome = transactionrecord.BranchJoinRequest
		return s.PutJoinRequest(&state.JoinRequest{
			GroupId:   tx.GroupId,
			Address:   address,
			Reference: tx.Signature,
		})
	}

	return s.PutMember(&state.Member{
		GroupId:   tx.GroupId,
		Address:   address,
		Joined:    tx.Timestamp,
		Reference: tx.Signature,
	})
}

// UndoJoin - remove the membership or request, restoring a consumed invite
func UndoJoin(s *state.State, tx *transactionrecord.JoinGroup) error {
	address := tx.CreatorAddress()

	switch tx.Applied.Outcome {
	case transactionrecord.BranchInvite:
		if err := s.DeleteMember(tx.GroupId, address); nil != err {
			return err
		}
		if tx.Applied.InviteReference.IsNull() {
			return fault.DataErrorf("join group: %s has no invite reference", tx.Signature)
		}
		return restoreInvite(s, tx.GroupId, address, tx.Applied.InviteReference)
	case transactionrecord.BranchMember:
		return s.DeleteMember(tx.GroupId, address)
	case transactionrecord.BranchJoinRequest:
		return s.DeleteJoinRequest(tx.GroupId, address)
	default:
		return fault.DataErrorf("join group: %s unknown outcome: %d", tx.Signature, tx.Applied.Outcome)
	}
}

// Leave - the creator gives up membership and adminship
func Leave(s *state.State, tx *transactionrecord.LeaveGroup) error {
	var err error
	tx.Applied.MemberReference, tx.Applied.AdminReference, err = removeMembership(s, tx.GroupId, tx.CreatorAddress())
	return err
}

// UndoLeave - rebuild membership and adminship
func UndoLeave(s *state.State, tx *transactionrecord.LeaveGroup) error {
	return restoreMembership(s, tx.GroupId, tx.CreatorAddress(), tx.Applied.MemberReference, tx.Applied.AdminReference)
}
