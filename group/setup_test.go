// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package group_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/group"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

type harness struct {
	t         *testing.T
	db        *storage.DB
	trx       *storage.Transaction
	s         *state.State
	timestamp int64
	sequence  uint32
}

func setup(t *testing.T) *harness {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open memory database error: %s", err)
	}
	trx, err := db.Begin()
	if nil != err {
		t.Fatalf("begin error: %s", err)
	}
	return &harness{
		t:         t,
		db:        db,
		trx:       trx,
		s:         state.New(trx, 2),
		timestamp: 1500000000000,
	}
}

func teardown(h *harness) {
	h.trx.Abort()
	h.db.Close()
}

func makeKey(t *testing.T, fill byte) *account.PrivateKey {
	key, err := account.NewPrivateKey(bytes.Repeat([]byte{fill}, account.SeedLength))
	if nil != err {
		t.Fatalf("new private key error: %s", err)
	}
	return key
}

func (h *harness) dump() []storage.Element {
	elements, err := storage.Dump(h.trx)
	if nil != err {
		h.t.Fatalf("dump error: %s", err)
	}
	return elements
}

// sign, apply and store a transaction after checking that an undo
// followed by a re-apply reproduces the stored state exactly
func (h *harness) step(key *account.PrivateKey, tx transactionrecord.Transaction) transactionrecord.Transaction {
	h.timestamp += 1000
	tx.Head().Timestamp = h.timestamp
	packed, err := transactionrecord.Sign(tx, key)
	if nil != err {
		h.t.Fatalf("sign %s error: %s", tx.Type(), err)
	}

	before := h.dump()
	applied := h.apply(packed)
	after := h.dump()

	h.undo(applied)
	assert.Equal(h.t, before, h.dump(), "%s: undo did not restore state", tx.Type())

	applied = h.apply(packed)
	assert.Equal(h.t, after, h.dump(), "%s: re-apply differs", tx.Type())

	h.checkExclusive()
	return applied
}

func (h *harness) apply(packed transactionrecord.Packed) transactionrecord.Transaction {
	tx, _, err := packed.Unpack()
	if nil != err {
		h.t.Fatalf("unpack error: %s", err)
	}
	if err := applyGroup(h.s, tx); nil != err {
		h.t.Fatalf("apply %s error: %s", tx.Type(), err)
	}
	h.sequence += 1
	err = h.s.PutTransaction(&state.Confirmed{
		Height:      h.s.Height(),
		Sequence:    h.sequence,
		Packed:      packed,
		Transaction: tx,
	}, nil)
	if nil != err {
		h.t.Fatalf("put transaction error: %s", err)
	}
	return tx
}

func (h *harness) undo(tx transactionrecord.Transaction) {
	if err := undoGroup(h.s, tx); nil != err {
		h.t.Fatalf("undo %s error: %s", tx.Type(), err)
	}
	if err := h.s.DeleteTransaction(tx.Head().Signature, nil); nil != err {
		h.t.Fatalf("delete transaction error: %s", err)
	}
	h.sequence -= 1
}

// at most one of member and join request, owner is member and admin
func (h *harness) checkExclusive() {
	for id := uint32(1); ; id += 1 {
		g, err := h.s.GetGroup(id)
		if nil != err {
			h.t.Fatalf("get group error: %s", err)
		}
		if nil == g {
			return
		}
		members, err := h.s.ListMembers(id)
		if nil != err {
			h.t.Fatalf("list members error: %s", err)
		}
		for _, m := range members {
			r, _ := h.s.GetJoinRequest(id, m.Address)
			assert.Nil(h.t, r, "group: %d member: %s also has a join request", id, m.Address)
		}
		m, _ := h.s.GetMember(id, g.Owner)
		assert.NotNil(h.t, m, "group: %d owner is not a member", id)
		a, _ := h.s.GetAdmin(id, g.Owner)
		assert.NotNil(h.t, a, "group: %d owner is not an admin", id)
	}
}

func applyGroup(s *state.State, t transactionrecord.Transaction) error {
	switch tx := t.(type) {
	case *transactionrecord.CreateGroup:
		return group.Create(s, tx)
	case *transactionrecord.UpdateGroup:
		return group.Update(s, tx)
	case *transactionrecord.AddGroupAdmin:
		return group.AddAdmin(s, tx)
	case *transactionrecord.RemoveGroupAdmin:
		return group.RemoveAdmin(s, tx)
	case *transactionrecord.GroupKick:
		return group.Kick(s, tx)
	case *transactionrecord.GroupBan:
		return group.Ban(s, tx)
	case *transactionrecord.CancelGroupBan:
		return group.CancelBan(s, tx)
	case *transactionrecord.GroupInvite:
		return group.Invite(s, tx)
	case *transactionrecord.CancelGroupInvite:
		return group.CancelInvite(s, tx)
	case *transactionrecord.JoinGroup:
		return group.Join(s, tx)
	case *transactionrecord.LeaveGroup:
		return group.Leave(s, tx)
	}
	panic("not a group transaction")
}

func undoGroup(s *state.State, t transactionrecord.Transaction) error {
	switch tx := t.(type) {
	case *transactionrecord.CreateGroup:
		return group.UndoCreate(s, tx)
	case *transactionrecord.UpdateGroup:
		return group.UndoUpdate(s, tx)
	case *transactionrecord.AddGroupAdmin:
		return group.UndoAddAdmin(s, tx)
	case *transactionrecord.RemoveGroupAdmin:
		return group.UndoRemoveAdmin(s, tx)
	case *transactionrecord.GroupKick:
		return group.UndoKick(s, tx)
	case *transactionrecord.GroupBan:
		return group.UndoBan(s, tx)
	case *transactionrecord.CancelGroupBan:
		return group.UndoCancelBan(s, tx)
	case *transactionrecord.GroupInvite:
		return group.UndoInvite(s, tx)
	case *transactionrecord.CancelGroupInvite:
		return group.UndoCancelInvite(s, tx)
	case *transactionrecord.JoinGroup:
		return group.UndoJoin(s, tx)
	case *transactionrecord.LeaveGroup:
		return group.UndoLeave(s, tx)
	}
	panic("not a group transaction")
}

func (h *harness) create(owner *account.PrivateKey, name string, isOpen bool) uint32 {
	tx := h.step(owner, &transactionrecord.CreateGroup{
		Header:            transactionrecord.Header{Fee: 1},
		GroupName:         name,
		Description:       "group " + name,
		IsOpen:            isOpen,
		ApprovalThreshold: 1,
	})
	return tx.(*transactionrecord.CreateGroup).Applied.GroupId
}

func (h *harness) isMember(id uint32, address account.Address) bool {
	m, err := h.s.GetMember(id, address)
	if nil != err {
		h.t.Fatalf("get member error: %s", err)
	}
	return nil != m
}

func (h *harness) isAdmin(id uint32, address account.Address) bool {
	a, err := h.s.GetAdmin(id, address)
	if nil != err {
		h.t.Fatalf("get admin error: %s", err)
	}
	return nil != a
}

func (h *harness) hasJoinRequest(id uint32, address account.Address) bool {
	r, err := h.s.GetJoinRequest(id, address)
	if nil != err {
		h.t.Fatalf("get join request error: %s", err)
	}
	return nil != r
}

func (h *harness) hasInvite(id uint32, address account.Address) bool {
	i, err := h.s.GetInvite(id, address)
	if nil != err {
		h.t.Fatalf("get invite error: %s", err)
	}
	return nil != i
}
