// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/group"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// percentage of admins needed to approve
const maximumApprovalThreshold = 100

func validGroupFields(description string, threshold uint8, minimumDelay uint32, maximumDelay uint32) Result {
	if 0 == len(description) || len(description) > transactionrecord.MaxDescriptionLength {
		return INVALID_DESCRIPTION_LENGTH
	}
	if threshold > maximumApprovalThreshold {
		return INVALID_GROUP_APPROVAL_THRESHOLD
	}
	if minimumDelay > maximumDelay {
		return INVALID_GROUP_BLOCK_DELAY
	}
	return OK
}

// the group, and whether the creator is its owner and an admin
type groupAccess struct {
	group   *state.Group
	isOwner bool
	isAdmin bool
}

func getGroupAccess(c *Context, id uint32, creator account.Address) (*groupAccess, error) {
	g, err := c.State.GetGroup(id)
	if nil != err || nil == g {
		return nil, err
	}
	admin, err := c.State.GetAdmin(id, creator)
	if nil != err {
		return nil, err
	}
	return &groupAccess{
		group:   g,
		isOwner: g.Owner == creator,
		isAdmin: nil != admin,
	}, nil
}

func isMember(c *Context, id uint32, address account.Address) (bool, error) {
	m, err := c.State.GetMember(id, address)
	return nil != m, err
}

func isAdmin(c *Context, id uint32, address account.Address) (bool, error) {
	a, err := c.State.GetAdmin(id, address)
	return nil != a, err
}

// create group

func validateCreateGroup(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.CreateGroup)
	if result := validName(tx.GroupName); OK != result {
		return result, nil
	}
	if result := validGroupFields(tx.Description, tx.ApprovalThreshold, tx.MinimumBlockDelay, tx.MaximumBlockDelay); OK != result {
		return result, nil
	}
	g, err := c.State.GroupByName(tx.GroupName)
	if nil != err {
		return 0, err
	}
	if nil != g {
		return GROUP_ALREADY_EXISTS, nil
	}
	return OK, nil
}

func applyCreateGroup(c *Context, t transactionrecord.Transaction) error {
	return group.Create(c.State, t.(*transactionrecord.CreateGroup))
}

func undoCreateGroup(c *Context, t transactionrecord.Transaction) error {
	return group.UndoCreate(c.State, t.(*transactionrecord.CreateGroup))
}

// update group

func updateGroupRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.UpdateGroup).NewOwner}
}

func validateUpdateGroup(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.UpdateGroup)
	if !tx.NewOwner.IsValid() {
		return INVALID_ADDRESS, nil
	}
	if result := validGroupFields(tx.NewDescription, tx.NewApprovalThreshold, tx.NewMinimumBlockDelay, tx.NewMaximumBlockDelay); OK != result {
		return result, nil
	}
	access, err := getGroupAccess(c, tx.GroupId, tx.CreatorAddress())
	if nil != err {
		return 0, err
	}
	if nil == access {
		return GROUP_DOES_NOT_EXIST, nil
	}
	if !access.isOwner {
		return INVALID_GROUP_OWNER, nil
	}
	banned, err := c.State.IsBanned(tx.GroupId, tx.NewOwner, tx.Timestamp)
	if nil != err {
		return 0, err
	}
	if banned {
		return BANNED_FROM_GROUP, nil
	}
	return OK, nil
}

func applyUpdateGroup(c *Context, t transactionrecord.Transaction) error {
	return group.Update(c.State, t.(*transactionrecord.UpdateGroup))
}

func undoUpdateGroup(c *Context, t transactionrecord.Transaction) error {
	return group.UndoUpdate(c.State, t.(*transactionrecord.UpdateGroup))
}

// add group admin

func addGroupAdminRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.AddGroupAdmin).Member}
}

func validateAddGroupAdmin(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.AddGroupAdmin)
	if !tx.Member.IsValid() {
		return INVALID_ADDRESS, nil
	}
	access, err := getGroupAccess(c, tx.GroupId, tx.CreatorAddress())
	if nil != err {
		return 0, err
	}
	if nil == access {
		return GROUP_DOES_NOT_EXIST, nil
	}
	if !access.isOwner {
		return INVALID_GROUP_OWNER, nil
	}
	member, err := isMember(c, tx.GroupId, tx.Member)
	if nil != err {
		return 0, err
	}
	if !member {
		return NOT_GROUP_MEMBER, nil
	}
	admin, err := isAdmin(c, tx.GroupId, tx.Member)
	if nil != err {
		return 0, err
	}
	if admin {
		return ALREADY_GROUP_ADMIN, nil
	}
	return OK, nil
}

func applyAddGroupAdmin(c *Context, t transactionrecord.Transaction) error {
	return group.AddAdmin(c.State, t.(*transactionrecord.AddGroupAdmin))
}

func undoAddGroupAdmin(c *Context, t transactionrecord.Transaction) error {
	return group.UndoAddAdmin(c.State, t.(*transactionrecord.AddGroupAdmin))
}

// remove group admin

func removeGroupAdminRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.RemoveGroupAdmin).Admin}
}

// the owner can never be demoted
func validateRemoveGroupAdmin(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.RemoveGroupAdmin)
	if !tx.Admin.IsValid() {
		return INVALID_ADDRESS, nil
	}
	access, err := getGroupAccess(c, tx.GroupId, tx.CreatorAddress())
	if nil != err {
		return 0, err
	}
	if nil == access {
		return GROUP_DOES_NOT_EXIST, nil
	}
	if !access.isOwner {
		return INVALID_GROUP_OWNER, nil
	}
	admin, err := isAdmin(c, tx.GroupId, tx.Admin)
	if nil != err {
		return 0, err
	}
	if !admin {
		return NOT_GROUP_ADMIN, nil
	}
	if access.group.Owner == tx.Admin {
		return INVALID_GROUP_OWNER, nil
	}
	return OK, nil
}

func applyRemoveGroupAdmin(c *Context, t transactionrecord.Transaction) error {
	return group.RemoveAdmin(c.State, t.(*transactionrecord.RemoveGroupAdmin))
}

func undoRemoveGroupAdmin(c *Context, t transactionrecord.Transaction) error {
	return group.UndoRemoveAdmin(c.State, t.(*transactionrecord.RemoveGroupAdmin))
}

// group ban

func groupBanRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.GroupBan).Offender}
}

// an admin may ban anyone but the owner; only the owner may ban an admin
func validateGroupBan(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.GroupBan)
	if !tx.Offender.IsValid() {
		return INVALID_ADDRESS, nil
	}
	if len(tx.Reason) > transactionrecord.MaxReasonLength {
		return INVALID_REASON_LENGTH, nil
	}
	access, err := getGroupAccess(c, tx.GroupId, tx.CreatorAddress())
	if nil != err {
		return 0, err
	}
	if nil == access {
		return GROUP_DOES_NOT_EXIST, nil
	}
	if !access.isAdmin {
		return NOT_GROUP_ADMIN, nil
	}
	if access.group.Owner == tx.Offender {
		return INVALID_GROUP_OWNER, nil
	}
	admin, err := isAdmin(c, tx.GroupId, tx.Offender)
	if nil != err {
		return 0, err
	}
	if admin && !access.isOwner {
		return INVALID_GROUP_OWNER, nil
	}
	return OK, nil
}

func applyGroupBan(c *Context, t transactionrecord.Transaction) error {
	return group.Ban(c.State, t.(*transactionrecord.GroupBan))
}

func undoGroupBan(c *Context, t transactionrecord.Transaction) error {
	return group.UndoBan(c.State, t.(*transactionrecord.GroupBan))
}

// cancel group ban

func cancelGroupBanRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.CancelGroupBan).Member}
}

func validateCancelGroupBan(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.CancelGroupBan)
	if !tx.Member.IsValid() {
		return INVALID_ADDRESS, nil
	}
	access, err := getGroupAccess(c, tx.GroupId, tx.CreatorAddress())
	if nil != err {
		return 0, err
	}
	if nil == access {
		return GROUP_DOES_NOT_EXIST, nil
	}
	if !access.isAdmin {
		return NOT_GROUP_ADMIN, nil
	}
	ban, err := c.State.GetBan(tx.GroupId, tx.Member)
	if nil != err {
		return 0, err
	}
	if nil == ban {
		return BAN_UNKNOWN, nil
	}
	return OK, nil
}

func applyCancelGroupBan(c *Context, t transactionrecord.Transaction) error {
	return group.CancelBan(c.State, t.(*transactionrecord.CancelGroupBan))
}

func undoCancelGroupBan(c *Context, t transactionrecord.Transaction) error {
	return group.UndoCancelBan(c.State, t.(*transactionrecord.CancelGroupBan))
}

// group kick

func groupKickRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.GroupKick).Member}
}

// the target must be a member or a join requester; only the owner
// may kick an admin and nobody may kick the owner
func validateGroupKick(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.GroupKick)
	if !tx.Member.IsValid() {
		return INVALID_ADDRESS, nil
	}
	if len(tx.Reason) > transactionrecord.MaxReasonLength {
		return INVALID_REASON_LENGTH, nil
	}
	access, err := getGroupAccess(c, tx.GroupId, tx.CreatorAddress())
	if nil != err {
		return 0, err
	}
	if nil == access {
		return GROUP_DOES_NOT_EXIST, nil
	}
	if !access.isAdmin {
		return NOT_GROUP_ADMIN, nil
	}

	member, err := isMember(c, tx.GroupId, tx.Member)
	if nil != err {
		return 0, err
	}
	if !member {
		request, err := c.State.GetJoinRequest(tx.GroupId, tx.Member)
		if nil != err {
			return 0, err
		}
		if nil == request {
			return NOT_GROUP_MEMBER, nil
		}
	}

	if access.group.Owner == tx.Member {
		return INVALID_GROUP_OWNER, nil
	}
	admin, err := isAdmin(c, tx.GroupId, tx.Member)
	if nil != err {
		return 0, err
	}
	if admin && !access.isOwner {
		return INVALID_GROUP_OWNER, nil
	}
	return OK, nil
}

func applyGroupKick(c *Context, t transactionrecord.Transaction) error {
	return group.Kick(c.State, t.(*transactionrecord.GroupKick))
}

func undoGroupKick(c *Context, t transactionrecord.Transaction) error {
	return group.UndoKick(c.State, t.(*transactionrecord.GroupKick))
}

// group invite

func groupInviteRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.GroupInvite).Invitee}
}

func validateGroupInvite(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.GroupInvite)
	if !tx.Invitee.IsValid() {
		return INVALID_ADDRESS, nil
	}
	access, err := getGroupAccess(c, tx.GroupId, tx.CreatorAddress())
	if nil != err {
		return 0, err
	}
	if nil == access {
		return GROUP_DOES_NOT_EXIST, nil
	}
	if !access.isAdmin {
		return NOT_GROUP_ADMIN, nil
	}
	member, err := isMember(c, tx.GroupId, tx.Invitee)
	if nil != err {
		return 0, err
	}
	if member {
		return ALREADY_GROUP_MEMBER, nil
	}
	banned, err := c.State.IsBanned(tx.GroupId, tx.Invitee, tx.Timestamp)
	if nil != err {
		return 0, err
	}
	if banned {
		return BANNED_FROM_GROUP, nil
	}
	return OK, nil
}

func applyGroupInvite(c *Context, t transactionrecord.Transaction) error {
	return group.Invite(c.State, t.(*transactionrecord.GroupInvite))
}

func undoGroupInvite(c *Context, t transactionrecord.Transaction) error {
	return group.UndoInvite(c.State, t.(*transactionrecord.GroupInvite))
}

// cancel group invite

func cancelGroupInviteRecipients(t transactionrecord.Transaction) []account.Address {
	return []account.Address{t.(*transactionrecord.CancelGroupInvite).Invitee}
}

func validateCancelGroupInvite(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.CancelGroupInvite)
	if !tx.Invitee.IsValid() {
		return INVALID_ADDRESS, nil
	}
	access, err := getGroupAccess(c, tx.GroupId, tx.CreatorAddress())
	if nil != err {
		return 0, err
	}
	if nil == access {
		return GROUP_DOES_NOT_EXIST, nil
	}
	if !access.isAdmin {
		return NOT_GROUP_ADMIN, nil
	}
	invite, err := c.State.GetInvite(tx.GroupId, tx.Invitee)
	if nil != err {
		return 0, err
	}
	if nil == invite {
		return INVITE_UNKNOWN, nil
	}
	return OK, nil
}

func applyCancelGroupInvite(c *Context, t transactionrecord.Transaction) error {
	return group.CancelInvite(c.State, t.(*transactionrecord.CancelGroupInvite))
}

func undoCancelGroupInvite(c *Context, t transactionrecord.Transaction) error {
	return group.UndoCancelInvite(c.State, t.(*transactionrecord.CancelGroupInvite))
}

// join group

func validateJoinGroup(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.JoinGroup)
	creator := tx.CreatorAddress()
	g, err := c.State.GetGroup(tx.GroupId)
	if nil != err {
		return 0, err
	}
	if nil == g {
		return GROUP_DOES_NOT_EXIST, nil
	}
	member, err := isMember(c, tx.GroupId, creator)
	if nil != err {
		return 0, err
	}
	if member {
		return ALREADY_GROUP_MEMBER, nil
	}
	banned, err := c.State.IsBanned(tx.GroupId, creator, tx.Timestamp)
	if nil != err {
		return 0, err
	}
	if banned {
		return BANNED_FROM_GROUP, nil
	}
	request, err := c.State.GetJoinRequest(tx.GroupId, creator)
	if nil != err {
		return 0, err
	}
	if nil != request {
		return JOIN_REQUEST_EXISTS, nil
	}
	return OK, nil
}

func applyJoinGroup(c *Context, t transactionrecord.Transaction) error {
	return group.Join(c.State, t.(*transactionrecord.JoinGroup))
}

func undoJoinGroup(c *Context, t transactionrecord.Transaction) error {
	return group.UndoJoin(c.State, t.(*transactionrecord.JoinGroup))
}

// leave group

func validateLeaveGroup(c *Context, t transactionrecord.Transaction) (Result, error) {
	tx := t.(*transactionrecord.LeaveGroup)
	creator := tx.CreatorAddress()
	g, err := c.State.GetGroup(tx.GroupId)
	if nil != err {
		return 0, err
	}
	if nil == g {
		return GROUP_DOES_NOT_EXIST, nil
	}
	if g.Owner == creator {
		return GROUP_OWNER_CANNOT_LEAVE, nil
	}
	member, err := isMember(c, tx.GroupId, creator)
	if nil != err {
		return 0, err
	}
	if !member {
		return NOT_GROUP_MEMBER, nil
	}
	return OK, nil
}

func applyLeaveGroup(c *Context, t transactionrecord.Transaction) error {
	return group.Leave(c.State, t.(*transactionrecord.LeaveGroup))
}

func undoLeaveGroup(c *Context, t transactionrecord.Transaction) error {
	return group.UndoLeave(c.State, t.(*transactionrecord.LeaveGroup))
}
