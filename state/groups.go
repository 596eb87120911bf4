// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/storage"
)

// keys:
//   Groups:            id                → group
//   GroupNames:        reduced name      → id
//   GroupMembers:      id ++ address     → member
//   GroupAdmins:       id ++ address     → admin
//   GroupBans:         id ++ offender    → ban
//   GroupInvites:      id ++ invitee     → invite
//   GroupJoinRequests: id ++ address     → join request

const firstGroup = uint32(1)

// Group - the core fields of a group
type Group struct {
	Id                uint32            `json:"id"`
	Owner             account.Address   `json:"owner"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	IsOpen            bool              `json:"isOpen"`
	ApprovalThreshold uint8             `json:"approvalThreshold"`
	MinimumBlockDelay uint32            `json:"minimumBlockDelay"`
	MaximumBlockDelay uint32            `json:"maximumBlockDelay"`
	Created           int64             `json:"created"`
	Updated           int64             `json:"updated"` // zero if never updated
	Reference         account.Signature `json:"reference"`
}

// Member - membership of an address
type Member struct {
	GroupId   uint32            `json:"groupId"`
	Address   account.Address   `json:"address"`
	Joined    int64             `json:"joined"`
	Reference account.Signature `json:"reference"`
}

// Admin - adminship of an address
type Admin struct {
	GroupId   uint32            `json:"groupId"`
	Address   account.Address   `json:"address"`
	Reference account.Signature `json:"reference"`
}

// Ban - an address excluded from a group
type Ban struct {
	GroupId   uint32            `json:"groupId"`
	Offender  account.Address   `json:"offender"`
	Admin     account.Address   `json:"admin"`
	Banned    int64             `json:"banned"`
	Reason    string            `json:"reason"`
	Expiry    int64             `json:"expiry"` // zero is never
	Reference account.Signature `json:"reference"`
}

// Invite - an outstanding invitation
type Invite struct {
	GroupId   uint32            `json:"groupId"`
	Invitee   account.Address   `json:"invitee"`
	Inviter   account.Address   `json:"inviter"`
	Expiry    int64             `json:"expiry"` // zero is never
	Reference account.Signature `json:"reference"`
}

// JoinRequest - a pending request to join a closed group
type JoinRequest struct {
	GroupId   uint32            `json:"groupId"`
	Address   account.Address   `json:"address"`
	Reference account.Signature `json:"reference"`
}

// IsActive - true if the ban has not expired at timestamp
func (b *Ban) IsActive(timestamp int64) bool {
	return 0 == b.Expiry || timestamp < b.Expiry
}

// IsActive - true if the invite has not expired at timestamp
func (i *Invite) IsActive(timestamp int64) bool {
	return 0 == i.Expiry || timestamp < i.Expiry
}

func groupKey(id uint32) []byte {
	return uint32Bytes(id)
}

func satelliteKey(id uint32, address account.Address) []byte {
	return makeKey(uint32Bytes(id), address[:])
}

func satelliteAddress(key []byte) (uint32, account.Address, error) {
	a := account.Address{}
	if 4+account.AddressLength != len(key) {
		return 0, a, fault.DataErrorf("group satellite: key: %x has length: %d", key, len(key))
	}
	copy(a[:], key[4:])
	return binary.BigEndian.Uint32(key[:4]), a, nil
}

// groups

// GetGroup - nil if absent
func (s *State) GetGroup(id uint32) (*Group, error) {
	key := groupKey(id)
	buffer, err := s.get(storage.Pool.Groups, key)
	if nil != err || nil == buffer {
		return nil, err
	}
	d := &decoder{buffer: buffer}
	g := &Group{
		Id:                id,
		Owner:             d.address(),
		Name:              d.text(),
		Description:       d.text(),
		IsOpen:            d.boolean(),
		ApprovalThreshold: d.uint8(),
		MinimumBlockDelay: d.uint32(),
		MaximumBlockDelay: d.uint32(),
		Created:           d.int64(),
		Updated:           d.int64(),
		Reference:         d.signature(),
	}
	return g, d.check("group", key)
}

// GroupByName - nil if no group has the reduced name
func (s *State) GroupByName(name string) (*Group, error) {
	reduced := ReducedName(name)
	value, err := s.get(storage.Pool.GroupNames, []byte(reduced))
	if nil != err || nil == value {
		return nil, err
	}
	if 4 != len(value) {
		return nil, fault.DataErrorf("group name: %q has length: %d", reduced, len(value))
	}
	return s.GetGroup(binary.BigEndian.Uint32(value))
}

// PutGroup - replace the core fields of an existing group
func (s *State) PutGroup(g *Group) error {
	e := &encoder{}
	e.raw(g.Owner[:]).
		text(g.Name).
		text(g.Description).
		boolean(g.IsOpen).
		uint8(g.ApprovalThreshold).
		uint32(g.MinimumBlockDelay).
		uint32(g.MaximumBlockDelay).
		int64(g.Created).
		int64(g.Updated).
		raw(g.Reference[:])
	return s.put(storage.Pool.Groups, groupKey(g.Id), e.buffer)
}

// CreateGroup - store a new group under the next id
func (s *State) CreateGroup(g *Group) (uint32, error) {
	next, err := s.counter(nextGroupCounter, uint64(firstGroup))
	if nil != err {
		return 0, err
	}
	g.Id = uint32(next)
	if err := s.PutGroup(g); nil != err {
		return 0, err
	}
	if err := s.put(storage.Pool.GroupNames, []byte(ReducedName(g.Name)), groupKey(g.Id)); nil != err {
		return 0, err
	}
	return g.Id, s.setCounter(nextGroupCounter, next+1, uint64(firstGroup))
}

// DeleteGroup - remove the most recently created group
func (s *State) DeleteGroup(id uint32) error {
	g, err := s.GetGroup(id)
	if nil != err {
		return err
	}
	if nil == g {
		return fault.DataErrorf("group: %d does not exist", id)
	}
	next, err := s.counter(nextGroupCounter, uint64(firstGroup))
	if nil != err {
		return err
	}
	if next != uint64(id)+1 {
		return fault.DataErrorf("group: %d is not the last created: %d", id, next-1)
	}
	if err := s.remove(storage.Pool.GroupNames, []byte(ReducedName(g.Name))); nil != err {
		return err
	}
	if err := s.remove(storage.Pool.Groups, groupKey(id)); nil != err {
		return err
	}
	return s.setCounter(nextGroupCounter, uint64(id), uint64(firstGroup))
}

// members

// GetMember - nil if not a member
func (s *State) GetMember(id uint32, address account.Address) (*Member, error) {
	key := satelliteKey(id, address)
	buffer, err := s.get(storage.Pool.GroupMembers, key)
	if nil != err || nil == buffer {
		return nil, err
	}
	return unpackMember(id, address, key, buffer)
}

func unpackMember(id uint32, address account.Address, key []byte, buffer []byte) (*Member, error) {
	d := &decoder{buffer: buffer}
	m := &Member{
		GroupId:   id,
		Address:   address,
		Joined:    d.int64(),
		Reference: d.signature(),
	}
	return m, d.check("group member", key)
}

// PutMember - add or replace a member
func (s *State) PutMember(m *Member) error {
	e := &encoder{}
	e.int64(m.Joined).raw(m.Reference[:])
	return s.put(storage.Pool.GroupMembers, satelliteKey(m.GroupId, m.Address), e.buffer)
}

// DeleteMember - remove a member
func (s *State) DeleteMember(id uint32, address account.Address) error {
	return s.remove(storage.Pool.GroupMembers, satelliteKey(id, address))
}

// ListMembers - all members of a group in address order
func (s *State) ListMembers(id uint32) ([]Member, error) {
	members := make([]Member, 0, 8)
	err := s.cursor(storage.Pool.GroupMembers).Prefix(groupKey(id)).Map(func(key []byte, value []byte) error {
		_, address, err := satelliteAddress(key)
		if nil != err {
			return err
		}
		m, err := unpackMember(id, address, key, value)
		if nil != err {
			return err
		}
		members = append(members, *m)
		return nil
	})
	return members, fault.WrapData(err, "group: %d members", id)
}

// admins

// GetAdmin - nil if not an admin
func (s *State) GetAdmin(id uint32, address account.Address) (*Admin, error) {
	key := satelliteKey(id, address)
	buffer, err := s.get(storage.Pool.GroupAdmins, key)
	if nil != err || nil == buffer {
		return nil, err
	}
	d := &decoder{buffer: buffer}
	a := &Admin{
		GroupId:   id,
		Address:   address,
		Reference: d.signature(),
	}
	return a, d.check("group admin", key)
}

// PutAdmin - add or replace an admin
func (s *State) PutAdmin(a *Admin) error {
	return s.put(storage.Pool.GroupAdmins, satelliteKey(a.GroupId, a.Address), a.Reference.Bytes())
}

// DeleteAdmin - remove an admin
func (s *State) DeleteAdmin(id uint32, address account.Address) error {
	return s.remove(storage.Pool.GroupAdmins, satelliteKey(id, address))
}

// ListAdmins - all admins of a group in address order
func (s *State) ListAdmins(id uint32) ([]Admin, error) {
	admins := make([]Admin, 0, 4)
	err := s.cursor(storage.Pool.GroupAdmins).Prefix(groupKey(id)).Map(func(key []byte, value []byte) error {
		_, address, err := satelliteAddress(key)
		if nil != err {
			return err
		}
		if account.SignatureLength != len(value) {
			return fault.DataErrorf("group admin: %x has length: %d", key, len(value))
		}
		a := Admin{
			GroupId: id,
			Address: address,
		}
		copy(a.Reference[:], value)
		admins = append(admins, a)
		return nil
	})
	return admins, fault.WrapData(err, "group: %d admins", id)
}

// bans

// GetBan - nil if not banned, expired bans are returned
func (s *State) GetBan(id uint32, offender account.Address) (*Ban, error) {
	key := satelliteKey(id, offender)
	buffer, err := s.get(storage.Pool.GroupBans, key)
	if nil != err || nil == buffer {
		return nil, err
	}
	return unpackBan(id, offender, key, buffer)
}

func unpackBan(id uint32, offender account.Address, key []byte, buffer []byte) (*Ban, error) {
	d := &decoder{buffer: buffer}
	b := &Ban{
		GroupId:   id,
		Offender:  offender,
		Admin:     d.address(),
		Banned:    d.int64(),
		Reason:    d.text(),
		Expiry:    d.int64(),
		Reference: d.signature(),
	}
	return b, d.check("group ban", key)
}

// IsBanned - true if an unexpired ban exists at timestamp
func (s *State) IsBanned(id uint32, offender account.Address, timestamp int64) (bool, error) {
	b, err := s.GetBan(id, offender)
	if nil != err || nil == b {
		return false, err
	}
	return b.IsActive(timestamp), nil
}

// PutBan - add or replace a ban
func (s *State) PutBan(b *Ban) error {
	e := &encoder{}
	e.raw(b.Admin[:]).
		int64(b.Banned).
		text(b.Reason).
		int64(b.Expiry).
		raw(b.Reference[:])
	return s.put(storage.Pool.GroupBans, satelliteKey(b.GroupId, b.Offender), e.buffer)
}

// DeleteBan - remove a ban
func (s *State) DeleteBan(id uint32, offender account.Address) error {
	return s.remove(storage.Pool.GroupBans, satelliteKey(id, offender))
}

// ListBans - all bans of a group, including expired ones
func (s *State) ListBans(id uint32) ([]Ban, error) {
	bans := make([]Ban, 0, 4)
	err := s.cursor(storage.Pool.GroupBans).Prefix(groupKey(id)).Map(func(key []byte, value []byte) error {
		_, offender, err := satelliteAddress(key)
		if nil != err {
			return err
		}
		b, err := unpackBan(id, offender, key, value)
		if nil != err {
			return err
		}
		bans = append(bans, *b)
		return nil
	})
	return bans, fault.WrapData(err, "group: %d bans", id)
}

// invites

// GetInvite - nil if none, expired invites are returned
func (s *State) GetInvite(id uint32, invitee account.Address) (*Invite, error) {
	key := satelliteKey(id, invitee)
	buffer, err := s.get(storage.Pool.GroupInvites, key)
	if nil != err || nil == buffer {
		return nil, err
	}
	return unpackInvite(id, invitee, key, buffer)
}

func unpackInvite(id uint32, invitee account.Address, key []byte, buffer []byte) (*Invite, error) {
	d := &decoder{buffer: buffer}
	i := &Invite{
		GroupId:   id,
		Invitee:   invitee,
		Inviter:   d.address(),
		Expiry:    d.int64(),
		Reference: d.signature(),
	}
	return i, d.check("group invite", key)
}

// PutInvite - add or replace an invite
func (s *State) PutInvite(i *Invite) error {
	e := &encoder{}
	e.raw(i.Inviter[:]).
		int64(i.Expiry).
		raw(i.Reference[:])
	return s.put(storage.Pool.GroupInvites, satelliteKey(i.GroupId, i.Invitee), e.buffer)
}

// DeleteInvite - remove an invite
func (s *State) DeleteInvite(id uint32, invitee account.Address) error {
	return s.remove(storage.Pool.GroupInvites, satelliteKey(id, invitee))
}

// ListInvites - all invites of a group, including expired ones
func (s *State) ListInvites(id uint32) ([]Invite, error) {
	invites := make([]Invite, 0, 4)
	err := s.cursor(storage.Pool.GroupInvites).Prefix(groupKey(id)).Map(func(key []byte, value []byte) error {
		_, invitee, err := satelliteAddress(key)
		if nil != err {
			return err
		}
		i, err := unpackInvite(id, invitee, key, value)
		if nil != err {
			return err
		}
		invites = append(invites, *i)
		return nil
	})
	return invites, fault.WrapData(err, "group: %d invites", id)
}

// join requests

// GetJoinRequest - nil if none
func (s *State) GetJoinRequest(id uint32, address account.Address) (*JoinRequest, error) {
	key := satelliteKey(id, address)
	buffer, err := s.get(storage.Pool.GroupJoinRequests, key)
	if nil != err || nil == buffer {
		return nil, err
	}
	d := &decoder{buffer: buffer}
	j := &JoinRequest{
		GroupId:   id,
		Address:   address,
		Reference: d.signature(),
	}
	return j, d.check("group join request", key)
}

// PutJoinRequest - add or replace a join request
func (s *State) PutJoinRequest(j *JoinRequest) error {
	return s.put(storage.Pool.GroupJoinRequests, satelliteKey(j.GroupId, j.Address), j.Reference.Bytes())
}

// DeleteJoinRequest - remove a join request
func (s *State) DeleteJoinRequest(id uint32, address account.Address) error {
	return s.remove(storage.Pool.GroupJoinRequests, satelliteKey(id, address))
}

// ListJoinRequests - all pending join requests of a group
func (s *State) ListJoinRequests(id uint32) ([]JoinRequest, error) {
	requests := make([]JoinRequest, 0, 4)
	err := s.cursor(storage.Pool.GroupJoinRequests).Prefix(groupKey(id)).Map(func(key []byte, value []byte) error {
		_, address, err := satelliteAddress(key)
		if nil != err {
			return err
		}
		if account.SignatureLength != len(value) {
			return fault.DataErrorf("group join request: %x has length: %d", key, len(value))
		}
		j := JoinRequest{
			GroupId: id,
			Address: address,
		}
		copy(j.Reference[:], value)
		requests = append(requests, j)
		return nil
	})
	return requests, fault.WrapData(err, "group: %d join requests", id)
}
