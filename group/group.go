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

// Create - new group with the creator as owner, member and admin
func Create(s *state.State, tx *transactionrecord.CreateGroup) error {
	owner := tx.CreatorAddress()
	g := &state.Group{
		Owner:             owner,
		Name:              tx.GroupName,
		Description:       tx.Description,
		IsOpen:            tx.IsOpen,
		ApprovalThreshold: tx.ApprovalThreshold,
		MinimumBlockDelay: tx.MinimumBlockDelay,
		MaximumBlockDelay: tx.MaximumBlockDelay,
		Created:           tx.Timestamp,
		Reference:         tx.Signature,
	}
	id, err := s.CreateGroup(g)
	if nil != err {
		return err
	}
	tx.Applied.GroupId = id

	err = s.PutMember(&state.Member{
		GroupId:   id,
		Address:   owner,
		Joined:    tx.Timestamp,
		Reference: tx.Signature,
	})
	if nil != err {
		return err
	}
	return s.PutAdmin(&state.Admin{
		GroupId:   id,
		Address:   owner,
		Reference: tx.Signature,
	})
}

// UndoCreate - remove the group and the owner's rows
func UndoCreate(s *state.State, tx *transactionrecord.CreateGroup) error {
	id := tx.Applied.GroupId
	if 0 == id {
		return fault.DataErrorf("create group: %s has no group id", tx.Signature)
	}
	owner := tx.CreatorAddress()
	if err := s.DeleteAdmin(id, owner); nil != err {
		return err
	}
	if err := s.DeleteMember(id, owner); nil != err {
		return err
	}
	return s.DeleteGroup(id)
}

// Update - change the core fields, possibly transferring ownership
//
// the previous owner keeps its member and admin rows; the new owner
// is given whichever of them it lacks, consuming a pending join
// request
func Update(s *state.State, tx *transactionrecord.UpdateGroup) error {
	g, err := mustGetGroup(s, tx.GroupId)
	if nil != err {
		return err
	}
	tx.Applied.GroupReference = g.Reference

	g.Owner = tx.NewOwner
	g.Description = tx.NewDescription
	g.IsOpen = tx.NewIsOpen
	g.ApprovalThreshold = tx.NewApprovalThreshold
	g.MinimumBlockDelay = tx.NewMinimumBlockDelay
	g.MaximumBlockDelay = tx.NewMaximumBlockDelay
	g.Updated = tx.Timestamp
	g.Reference = tx.Signature
	if err := s.PutGroup(g); nil != err {
		return err
	}

	member, err := s.GetMember(tx.GroupId, tx.NewOwner)
	if nil != err {
		return err
	}
	if nil == member {
		request, err := s.GetJoinRequest(tx.GroupId, tx.NewOwner)
		if nil != err {
			return err
		}
		if nil != request {
			tx.Applied.JoinReference = request.Reference
			if err := s.DeleteJoinRequest(tx.GroupId, tx.NewOwner); nil != err {
				return err
			}
		}
		err = s.PutMember(&state.Member{
			GroupId:   tx.GroupId,
			Address:   tx.NewOwner,
			Joined:    tx.Timestamp,
			Reference: tx.Signature,
		})
		if nil != err {
			return err
		}
	}

	admin, err := s.GetAdmin(tx.GroupId, tx.NewOwner)
	if nil != err {
		return err
	}
	if nil == admin {
		return s.PutAdmin(&state.Admin{
			GroupId:   tx.GroupId,
			Address:   tx.NewOwner,
			Reference: tx.Signature,
		})
	}
	return nil
}

// UndoUpdate - rebuild the core fields from the previous transaction
// and revoke only the rows this update granted
func UndoUpdate(s *state.State, tx *transactionrecord.UpdateGroup) error {
	g, err := mustGetGroup(s, tx.GroupId)
	if nil != err {
		return err
	}
	if err := rebuildGroup(s, g, tx.Applied.GroupReference); nil != err {
		return err
	}

	admin, err := s.GetAdmin(tx.GroupId, tx.NewOwner)
	if nil != err {
		return err
	}
	if nil != admin && admin.Reference == tx.Signature {
		if err := s.DeleteAdmin(tx.GroupId, tx.NewOwner); nil != err {
			return err
		}
	}

	member, err := s.GetMember(tx.GroupId, tx.NewOwner)
	if nil != err {
		return err
	}
	if nil != member && member.Reference == tx.Signature {
		if err := s.DeleteMember(tx.GroupId, tx.NewOwner); nil != err {
			return err
		}
		return restoreJoinRequest(s, tx.GroupId, tx.NewOwner, tx.Applied.JoinReference)
	}
	return nil
}
