// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// the functions that differ between record types
type handler struct {
	recipients func(t transactionrecord.Transaction) []account.Address

	// payload balance movements, nil for none
	effects func(t transactionrecord.Transaction) []effect

	// recipients whose null reference is set to this transaction
	initialReference bool

	// payload checks: structure, existence, authorisation
	validate func(c *Context, t transactionrecord.Transaction) (Result, error)

	// extra payload changes beyond the balance movements, nil for none
	apply func(c *Context, t transactionrecord.Transaction) error
	undo  func(c *Context, t transactionrecord.Transaction) error
}

// dispatch table, one entry per record type
var handlers = map[transactionrecord.TagType]*handler{
	transactionrecord.GenesisTag: {
		recipients:       genesisRecipients,
		effects:          genesisEffects,
		initialReference: true,
		validate:         validateGenesis,
		apply:            applyGenesis,
		undo:             undoGenesis,
	},
	transactionrecord.PaymentTag: {
		recipients:       paymentRecipients,
		effects:          paymentEffects,
		initialReference: true,
		validate:         validatePayment,
	},
	transactionrecord.RegisterNameTag: {
		recipients: registerNameRecipients,
		validate:   validateRegisterName,
		apply:      applyRegisterName,
		undo:       undoRegisterName,
	},
	transactionrecord.UpdateNameTag: {
		recipients: updateNameRecipients,
		validate:   validateUpdateName,
		apply:      applyUpdateName,
		undo:       undoUpdateName,
	},
	transactionrecord.IssueAssetTag: {
		recipients: issueAssetRecipients,
		effects:    issueAssetEffects,
		validate:   validateIssueAsset,
		apply:      applyIssueAsset,
		undo:       undoIssueAsset,
	},
	transactionrecord.TransferAssetTag: {
		recipients:       transferAssetRecipients,
		effects:          transferAssetEffects,
		initialReference: true,
		validate:         validateTransferAsset,
	},
	transactionrecord.MessageTag: {
		recipients:       messageRecipients,
		effects:          messageEffects,
		initialReference: true,
		validate:         validateMessage,
	},
	transactionrecord.CreateGroupTag: {
		recipients: noRecipients,
		validate:   validateCreateGroup,
		apply:      applyCreateGroup,
		undo:       undoCreateGroup,
	},
	transactionrecord.UpdateGroupTag: {
		recipients: updateGroupRecipients,
		validate:   validateUpdateGroup,
		apply:      applyUpdateGroup,
		undo:       undoUpdateGroup,
	},
	transactionrecord.AddGroupAdminTag: {
		recipients: addGroupAdminRecipients,
		validate:   validateAddGroupAdmin,
		apply:      applyAddGroupAdmin,
		undo:       undoAddGroupAdmin,
	},
	transactionrecord.RemoveGroupAdminTag: {
		recipients: removeGroupAdminRecipients,
		validate:   validateRemoveGroupAdmin,
		apply:      applyRemoveGroupAdmin,
		undo:       undoRemoveGroupAdmin,
	},
	transactionrecord.GroupBanTag: {
		recipients: groupBanRecipients,
		validate:   validateGroupBan,
		apply:      applyGroupBan,
		undo:       undoGroupBan,
	},
	transactionrecord.CancelGroupBanTag: {
		recipients: cancelGroupBanRecipients,
		validate:   validateCancelGroupBan,
		apply:      applyCancelGroupBan,
		undo:       undoCancelGroupBan,
	},
	transactionrecord.GroupKickTag: {
		recipients: groupKickRecipients,
		validate:   validateGroupKick,
		apply:      applyGroupKick,
		undo:       undoGroupKick,
	},
	transactionrecord.GroupInviteTag: {
		recipients: groupInviteRecipients,
		validate:   validateGroupInvite,
		apply:      applyGroupInvite,
		undo:       undoGroupInvite,
	},
	transactionrecord.CancelGroupInviteTag: {
		recipients: cancelGroupInviteRecipients,
		validate:   validateCancelGroupInvite,
		apply:      applyCancelGroupInvite,
		undo:       undoCancelGroupInvite,
	},
	transactionrecord.JoinGroupTag: {
		recipients: noRecipients,
		validate:   validateJoinGroup,
		apply:      applyJoinGroup,
		undo:       undoJoinGroup,
	},
	transactionrecord.LeaveGroupTag: {
		recipients: noRecipients,
		validate:   validateLeaveGroup,
		apply:      applyLeaveGroup,
		undo:       undoLeaveGroup,
	},
}

func noRecipients(transactionrecord.Transaction) []account.Address {
	return nil
}
