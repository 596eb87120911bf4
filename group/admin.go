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

// AddAdmin - promote a member
func AddAdmin(s *state.State, tx *transactionrecord.AddGroupAdmin) error {
	return s.PutAdmin(&state.Admin{
		GroupId:   tx.GroupId,
		Address:   tx.Member,
		Reference: tx.Signature,
	})
}

// UndoAddAdmin - demote again
func UndoAddAdmin(s *state.State, tx *transactionrecord.AddGroupAdmin) error {
	return s.DeleteAdmin(tx.GroupId, tx.Member)
}

// RemoveAdmin - demote an admin, keeping its promotion reference
func RemoveAdmin(s *state.State, tx *transactionrecord.RemoveGroupAdmin) error {
	admin, err := s.GetAdmin(tx.GroupId, tx.Admin)
	if nil != err {
		return err
	}
	if nil == admin {
		return fault.DataErrorf("group: %d address: %s is not an admin", tx.GroupId, tx.Admin)
	}
	tx.Applied.AdminReference = admin.Reference
	return s.DeleteAdmin(tx.GroupId, tx.Admin)
}

// UndoRemoveAdmin - restore the admin row
func UndoRemoveAdmin(s *state.State, tx *transactionrecord.RemoveGroupAdmin) error {
	if tx.Applied.AdminReference.IsNull() {
		return fault.DataErrorf("remove group admin: %s has no admin reference", tx.Signature)
	}
	return restoreAdmin(s, tx.GroupId, tx.Admin, tx.Applied.AdminReference)
}
