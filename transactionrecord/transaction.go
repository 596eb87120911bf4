// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
)

// TagType - type code for transactions
//
// encoded as a fixed four byte big endian value at the start of "Packed"
type TagType uint32

// enumerate the possible transaction record types
const (
	// null marks beginning of list - not used as a record type
	NullTag TagType = 0

	GenesisTag           TagType = 1
	PaymentTag           TagType = 2
	RegisterNameTag      TagType = 3
	UpdateNameTag        TagType = 4
	IssueAssetTag        TagType = 11
	TransferAssetTag     TagType = 12
	MessageTag           TagType = 17
	CreateGroupTag       TagType = 22
	UpdateGroupTag       TagType = 23
	AddGroupAdminTag     TagType = 24
	RemoveGroupAdminTag  TagType = 25
	GroupBanTag          TagType = 26
	CancelGroupBanTag    TagType = 27
	GroupKickTag         TagType = 28
	GroupInviteTag       TagType = 29
	CancelGroupInviteTag TagType = 30
	JoinGroupTag         TagType = 31
	LeaveGroupTag        TagType = 32
)

var tagNames = map[TagType]string{
	GenesisTag:           "GENESIS",
	PaymentTag:           "PAYMENT",
	RegisterNameTag:      "REGISTER_NAME",
	UpdateNameTag:        "UPDATE_NAME",
	IssueAssetTag:        "ISSUE_ASSET",
	TransferAssetTag:     "TRANSFER_ASSET",
	MessageTag:           "MESSAGE",
	CreateGroupTag:       "CREATE_GROUP",
	UpdateGroupTag:       "UPDATE_GROUP",
	AddGroupAdminTag:     "ADD_GROUP_ADMIN",
	RemoveGroupAdminTag:  "REMOVE_GROUP_ADMIN",
	GroupBanTag:          "GROUP_BAN",
	CancelGroupBanTag:    "CANCEL_GROUP_BAN",
	GroupKickTag:         "GROUP_KICK",
	GroupInviteTag:       "GROUP_INVITE",
	CancelGroupInviteTag: "CANCEL_GROUP_INVITE",
	JoinGroupTag:         "JOIN_GROUP",
	LeaveGroupTag:        "LEAVE_GROUP",
}

// String - name of the transaction type
func (tag TagType) String() string {
	if s, ok := tagNames[tag]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsValid - true for a known record type
func (tag TagType) IsValid() bool {
	_, ok := tagNames[tag]
	return ok
}

// Tags - all known record types in ascending order
func Tags() []TagType {
	return []TagType{
		GenesisTag, PaymentTag, RegisterNameTag, UpdateNameTag,
		IssueAssetTag, TransferAssetTag, MessageTag,
		CreateGroupTag, UpdateGroupTag, AddGroupAdminTag, RemoveGroupAdminTag,
		GroupBanTag, CancelGroupBanTag, GroupKickTag, GroupInviteTag,
		CancelGroupInviteTag, JoinGroupTag, LeaveGroupTag,
	}
}

// size limits, bytes of UTF-8 for text
const (
	MaxNameLength        = 400
	MaxDescriptionLength = 4000
	MaxReasonLength      = 400
	MaxDataLength        = 4000

	// hard limit applied while unpacking, so that the validation
	// can report the specific length error
	maxFieldLength = 65536
)

// fixed sizes of the wire header
const (
	tagLength       = 4
	timestampLength = 8
	feeLength       = 8
	headerLength    = tagLength + account.PublicKeyLength + timestampLength + account.SignatureLength + feeLength
)

// Packed - packed records are just a byte slice
type Packed []byte

// Header - the fields common to every transaction
type Header struct {
	Creator   account.PublicKey `json:"creator"`   // base58
	Timestamp int64             `json:"timestamp"` // milliseconds since epoch
	Reference account.Signature `json:"reference"` // creator's last reference when signed
	Fee       amount.Amount     `json:"fee"`       // native asset
	Signature account.Signature `json:"signature"` // over all preceding fields

	// apply-time, not covered by the signature: the creator's public
	// key was first stored on its account by this transaction
	KeyRecorded bool `json:"-"`
}

// Transaction - generic transaction interface
type Transaction interface {
	Type() TagType
	Head() *Header
	packPayload(buffer []byte) []byte
	unpackPayload(r *reader)
}

// Head - access the common fields
func (h *Header) Head() *Header {
	return h
}

// CreatorAddress - address of the creator's public key
func (h *Header) CreatorAddress() account.Address {
	return h.Creator.Address()
}

// Branch - which path an apply took, stored so undo need not guess
type Branch uint8

// branches recorded by group transactions
const (
	BranchNone        Branch = 0 // no prior relation
	BranchMember      Branch = 1 // address was (or became) a member
	BranchJoinRequest Branch = 2 // address had (or now has) a pending join request
	BranchInvite      Branch = 3 // an invite was written or consumed
)

// Genesis - initial allocation, only valid in the genesis block
type Genesis struct {
	Header
	Recipient account.Address `json:"recipient"`
	Asset     uint64          `json:"asset"`
	Amount    amount.Amount   `json:"amount"`
	Level     uint8           `json:"level"`
	Flags     uint32          `json:"flags"`

	Applied struct {
		PreviousLevel uint8  `json:"previousLevel"`
		PreviousFlags uint32 `json:"previousFlags"`
	} `json:"applied"`
}

// Payment - transfer of the native asset
type Payment struct {
	Header
	Recipient account.Address `json:"recipient"`
	Amount    amount.Amount   `json:"amount"`
}

// RegisterName - claim a name
type RegisterName struct {
	Header
	Owner account.Address `json:"owner"`
	Name  string          `json:"name"`
	Data  string          `json:"data"`
}

// UpdateName - change owner and data of a name
type UpdateName struct {
	Header
	Name     string          `json:"name"`
	NewOwner account.Address `json:"newOwner"`
	NewData  string          `json:"newData"`

	Applied struct {
		NameReference account.Signature `json:"nameReference"`
	} `json:"applied"`
}

// IssueAsset - create a new asset
type IssueAsset struct {
	Header
	Owner       account.Address `json:"owner"`
	AssetName   string          `json:"assetName"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"` // whole units
	IsDivisible bool            `json:"isDivisible"`

	Applied struct {
		AssetId uint64 `json:"assetId"`
	} `json:"applied"`
}

// TransferAsset - transfer any asset
type TransferAsset struct {
	Header
	Recipient account.Address `json:"recipient"`
	Asset     uint64          `json:"asset"`
	Amount    amount.Amount   `json:"amount"`
}

// Message - either an amount or some data for a recipient, never both
type Message struct {
	Header
	Recipient   account.Address `json:"recipient"`
	Asset       uint64          `json:"asset"`
	Amount      amount.Amount   `json:"amount"`
	Data        []byte          `json:"data"`
	IsText      bool            `json:"isText"`
	IsEncrypted bool            `json:"isEncrypted"`
}

// CreateGroup - new group owned by the creator
type CreateGroup struct {
	Header
	GroupName         string `json:"groupName"`
	Description       string `json:"description"`
	IsOpen            bool   `json:"isOpen"`
	ApprovalThreshold uint8  `json:"approvalThreshold"`
	MinimumBlockDelay uint32 `json:"minimumBlockDelay"`
	MaximumBlockDelay uint32 `json:"maximumBlockDelay"`

	Applied struct {
		GroupId uint32 `json:"groupId"`
	} `json:"applied"`
}

// UpdateGroup - owner changes the group's core fields
type UpdateGroup struct {
	Header
	GroupId              uint32          `json:"groupId"`
	NewOwner             account.Address `json:"newOwner"`
	NewDescription       string          `json:"newDescription"`
	NewIsOpen            bool            `json:"newIsOpen"`
	NewApprovalThreshold uint8           `json:"newApprovalThreshold"`
	NewMinimumBlockDelay uint32          `json:"newMinimumBlockDelay"`
	NewMaximumBlockDelay uint32          `json:"newMaximumBlockDelay"`

	Applied struct {
		GroupReference account.Signature `json:"groupReference"`
		JoinReference  account.Signature `json:"joinReference"`
	} `json:"applied"`
}

// AddGroupAdmin - owner promotes a member
type AddGroupAdmin struct {
	Header
	GroupId uint32          `json:"groupId"`
	Member  account.Address `json:"member"`
}

// RemoveGroupAdmin - owner demotes an admin
type RemoveGroupAdmin struct {
	Header
	GroupId uint32          `json:"groupId"`
	Admin   account.Address `json:"admin"`

	Applied struct {
		AdminReference account.Signature `json:"adminReference"`
	} `json:"applied"`
}

// GroupBan - admin bans an address, removing any relation it had
type GroupBan struct {
	Header
	GroupId    uint32          `json:"groupId"`
	Offender   account.Address `json:"offender"`
	Reason     string          `json:"reason"`
	TimeToLive uint32          `json:"timeToLive"` // seconds, zero is forever

	Applied struct {
		Prior           Branch            `json:"prior"`
		MemberReference account.Signature `json:"memberReference"`
		AdminReference  account.Signature `json:"adminReference"`
		JoinReference   account.Signature `json:"joinReference"`
		InviteReference account.Signature `json:"inviteReference"`
		BanReference    account.Signature `json:"banReference"`
	} `json:"applied"`
}

// CancelGroupBan - admin lifts a ban
type CancelGroupBan struct {
	Header
	GroupId uint32          `json:"groupId"`
	Member  account.Address `json:"member"`

	Applied struct {
		BanReference account.Signature `json:"banReference"`
	} `json:"applied"`
}

// GroupKick - admin removes a member or rejects a join request
type GroupKick struct {
	Header
	GroupId uint32          `json:"groupId"`
	Member  account.Address `json:"member"`
	Reason  string          `json:"reason"`

	Applied struct {
		Prior           Branch            `json:"prior"`
		MemberReference account.Signature `json:"memberReference"`
		AdminReference  account.Signature `json:"adminReference"`
		JoinReference   account.Signature `json:"joinReference"`
	} `json:"applied"`
}

// GroupInvite - admin invites an address or approves its join request
type GroupInvite struct {
	Header
	GroupId    uint32          `json:"groupId"`
	Invitee    account.Address `json:"invitee"`
	TimeToLive uint32          `json:"timeToLive"` // seconds, zero is forever

	Applied struct {
		Outcome         Branch            `json:"outcome"`
		JoinReference   account.Signature `json:"joinReference"`
		InviteReference account.Signature `json:"inviteReference"`
	} `json:"applied"`
}

// CancelGroupInvite - admin withdraws an invite
type CancelGroupInvite struct {
	Header
	GroupId uint32          `json:"groupId"`
	Invitee account.Address `json:"invitee"`

	Applied struct {
		InviteReference account.Signature `json:"inviteReference"`
	} `json:"applied"`
}

// JoinGroup - creator joins, accepts an invite or requests to join
type JoinGroup struct {
	Header
	GroupId uint32 `json:"groupId"`

	Applied struct {
		Outcome         Branch            `json:"outcome"`
		InviteReference account.Signature `json:"inviteReference"`
	} `json:"applied"`
}

// LeaveGroup - creator leaves a group it does not own
type LeaveGroup struct {
	Header
	GroupId uint32 `json:"groupId"`

	Applied struct {
		MemberReference account.Signature `json:"memberReference"`
		AdminReference  account.Signature `json:"adminReference"`
	} `json:"applied"`
}

// Type methods
func (t *Genesis) Type() TagType           { return GenesisTag }
func (t *Payment) Type() TagType           { return PaymentTag }
func (t *RegisterName) Type() TagType      { return RegisterNameTag }
func (t *UpdateName) Type() TagType        { return UpdateNameTag }
func (t *IssueAsset) Type() TagType        { return IssueAssetTag }
func (t *TransferAsset) Type() TagType     { return TransferAssetTag }
func (t *Message) Type() TagType           { return MessageTag }
func (t *CreateGroup) Type() TagType       { return CreateGroupTag }
func (t *UpdateGroup) Type() TagType       { return UpdateGroupTag }
func (t *AddGroupAdmin) Type() TagType     { return AddGroupAdminTag }
func (t *RemoveGroupAdmin) Type() TagType  { return RemoveGroupAdminTag }
func (t *GroupBan) Type() TagType          { return GroupBanTag }
func (t *CancelGroupBan) Type() TagType    { return CancelGroupBanTag }
func (t *GroupKick) Type() TagType         { return GroupKickTag }
func (t *GroupInvite) Type() TagType       { return GroupInviteTag }
func (t *CancelGroupInvite) Type() TagType { return CancelGroupInviteTag }
func (t *JoinGroup) Type() TagType         { return JoinGroupTag }
func (t *LeaveGroup) Type() TagType        { return LeaveGroupTag }

// New - empty record of a given type for unpacking
func New(tag TagType) (Transaction, bool) {
	switch tag {
	case GenesisTag:
		return &Genesis{}, true
	case PaymentTag:
		return &Payment{}, true
	case RegisterNameTag:
		return &RegisterName{}, true
	case UpdateNameTag:
		return &UpdateName{}, true
	case IssueAssetTag:
		return &IssueAsset{}, true
	case TransferAssetTag:
		return &TransferAsset{}, true
	case MessageTag:
		return &Message{}, true
	case CreateGroupTag:
		return &CreateGroup{}, true
	case UpdateGroupTag:
		return &UpdateGroup{}, true
	case AddGroupAdminTag:
		return &AddGroupAdmin{}, true
	case RemoveGroupAdminTag:
		return &RemoveGroupAdmin{}, true
	case GroupBanTag:
		return &GroupBan{}, true
	case CancelGroupBanTag:
		return &CancelGroupBan{}, true
	case GroupKickTag:
		return &GroupKick{}, true
	case GroupInviteTag:
		return &GroupInvite{}, true
	case CancelGroupInviteTag:
		return &CancelGroupInvite{}, true
	case JoinGroupTag:
		return &JoinGroup{}, true
	case LeaveGroupTag:
		return &LeaveGroup{}, true
	}
	return nil, false
}
