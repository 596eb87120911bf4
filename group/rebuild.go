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

// Expiry - milliseconds timestamp at which a time to live ends
//
// a zero time to live never expires
func Expiry(timestamp int64, timeToLive uint32) int64 {
	if 0 == timeToLive {
		return 0
	}
	return timestamp + int64(timeToLive)*1000
}

// core fields from the create or update that last wrote them
func rebuildGroup(s *state.State, g *state.Group, reference account.Signature) error {
	record, err := s.GetTransactionRecord(reference)
	if nil != err {
		return err
	}
	switch tx := record.(type) {
	case *transactionrecord.CreateGroup:
		g.Owner = tx.CreatorAddress()
		g.Description = tx.Description
		g.IsOpen = tx.IsOpen
		g.ApprovalThreshold = tx.ApprovalThreshold
		g.MinimumBlockDelay = tx.MinimumBlockDelay
		g.MaximumBlockDelay = tx.MaximumBlockDelay
		g.Updated = 0
	case *transactionrecord.UpdateGroup:
		g.Owner = tx.NewOwner
		g.Description = tx.NewDescription
		g.IsOpen = tx.NewIsOpen
		g.ApprovalThreshold = tx.NewApprovalThreshold
		g.MinimumBlockDelay = tx.NewMinimumBlockDelay
		g.MaximumBlockDelay = tx.NewMaximumBlockDelay
		g.Updated = tx.Timestamp
	default:
		return fault.DataErrorf("group: %d reference: %s is a: %s", g.Id, reference, record.Type())
	}
	g.Reference = reference
	return s.PutGroup(g)
}

// a member joins at the time of the transaction that admitted it
func restoreMember(s *state.State, id uint32, address account.Address, reference account.Signature) error {
	record, err := s.GetTransactionRecord(reference)
	if nil != err {
		return err
	}
	switch record.(type) {
	case *transactionrecord.CreateGroup, *transactionrecord.UpdateGroup,
		*transactionrecord.GroupInvite, *transactionrecord.JoinGroup:
	default:
		return fault.DataErrorf("group: %d member: %s reference: %s is a: %s", id, address, reference, record.Type())
	}
	return s.PutMember(&state.Member{
		GroupId:   id,
		Address:   address,
		Joined:    record.Head().Timestamp,
		Reference: reference,
	})
}

// a null reference means the address was not an admin
func restoreAdmin(s *state.State, id uint32, address account.Address, reference account.Signature) error {
	if reference.IsNull() {
		return nil
	}
	return s.PutAdmin(&state.Admin{
		GroupId:   id,
		Address:   address,
		Reference: reference,
	})
}

func restoreJoinRequest(s *state.State, id uint32, address account.Address, reference account.Signature) error {
	if reference.IsNull() {
		return nil
	}
	record, err := s.GetTransactionRecord(reference)
	if nil != err {
		return err
	}
	if _, ok := record.(*transactionrecord.JoinGroup); !ok {
		return fault.DataErrorf("group: %d join request: %s reference: %s is a: %s", id, address, reference, record.Type())
	}
	return s.PutJoinRequest(&state.JoinRequest{
		GroupId:   id,
		Address:   address,
		Reference: reference,
	})
}

func restoreInvite(s *state.State, id uint32, invitee account.Address, reference account.Signature) error {
	if reference.IsNull() {
		return nil
	}
	record, err := s.GetTransactionRecord(reference)
	if nil != err {
		return err
	}
	tx, ok := record.(*transactionrecord.GroupInvite)
	if !ok {
		return fault.DataErrorf("group: %d invite: %s reference: %s is a: %s", id, invitee, reference, record.Type())
	}
	return s.PutInvite(&state.Invite{
		GroupId:   id,
		Invitee:   invitee,
		Inviter:   tx.CreatorAddress(),
		Expiry:    Expiry(tx.Timestamp, tx.TimeToLive),
		Reference: reference,
	})
}

func restoreBan(s *state.State, id uint32, offender account.Address, reference account.Signature) error {
	if reference.IsNull() {
		return nil
	}
	record, err := s.GetTransactionRecord(reference)
	if nil != err {
		return err
	}
	tx, ok := record.(*transactionrecord.GroupBan)
	if !ok {
		return fault.DataErrorf("group: %d ban: %s reference: %s is a: %s", id, offender, reference, record.Type())
	}
	return s.PutBan(&state.Ban{
		GroupId:   id,
		Offender:  offender,
		Admin:     tx.CreatorAddress(),
		Banned:    tx.Timestamp,
		Reason:    tx.Reason,
		Expiry:    Expiry(tx.Timestamp, tx.TimeToLive),
		Reference: reference,
	})
}

// the group must exist while its transactions are applied or undone
func mustGetGroup(s *state.State, id uint32) (*state.Group, error) {
	g, err := s.GetGroup(id)
	if nil != err {
		return nil, err
	}
	if nil == g {
		return nil, fault.DataErrorf("group: %d does not exist", id)
	}
	return g, nil
}

// remove membership and adminship, returning their references
func removeMembership(s *state.State, id uint32, address account.Address) (account.Signature, account.Signature, error) {
	member, err := s.GetMember(id, address)
	if nil != err {
		return account.NullSignature, account.NullSignature, err
	}
	if nil == member {
		return account.NullSignature, account.NullSignature, fault.DataErrorf("group: %d address: %s is not a member", id, address)
	}
	admin, err := s.GetAdmin(id, address)
	if nil != err {
		return account.NullSignature, account.NullSignature, err
	}
	adminReference := account.NullSignature
	if nil != admin {
		adminReference = admin.Reference
		if err := s.DeleteAdmin(id, address); nil != err {
			return account.NullSignature, account.NullSignature, err
		}
	}
	return member.Reference, adminReference, s.DeleteMember(id, address)
}

// inverse of removeMembership
func restoreMembership(s *state.State, id uint32, address account.Address, memberReference account.Signature, adminReference account.Signature) error {
	if memberReference.IsNull() {
		return fault.DataErrorf("group: %d address: %s has no member reference", id, address)
	}
	if err := restoreMember(s, id, address, memberReference); nil != err {
		return err
	}
	return restoreAdmin(s, id, address, adminReference)
}
