// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// account flags
const (
	FlagFounder uint32 = 0x01
)

// Parameters - everything that differs between chains
//
// passed explicitly to every ledger operation
type Parameters struct {
	Name string

	// milliseconds since epoch
	GenesisTimestamp int64

	// transaction must be included before timestamp + TransactionExpiry
	TransactionExpiry int64

	MaximumBlockBytes        int
	MaximumBlockTransactions int

	// timestamp from which each transaction type is accepted
	Releases map[transactionrecord.TagType]int64

	// cumulative minted blocks needed to reach level 1, 2, ...
	BlocksNeededByLevel []uint64

	// founders may mint below this level
	MinimumMintingLevel uint8

	// pool admission limit per creator
	MaximumUnconfirmed int
}

const (
	day = 24 * 60 * 60 * 1000

	defaultMaximumBlockBytes        = 1048576
	defaultMaximumBlockTransactions = 1024
	defaultMaximumUnconfirmed       = 25
	defaultMinimumMintingLevel      = 1
)

// ParametersFor - the preset for a named chain
func ParametersFor(name string) (*Parameters, error) {
	p := &Parameters{
		Name:                     name,
		TransactionExpiry:        day,
		MaximumBlockBytes:        defaultMaximumBlockBytes,
		MaximumBlockTransactions: defaultMaximumBlockTransactions,
		Releases:                 make(map[transactionrecord.TagType]int64),
		MinimumMintingLevel:      defaultMinimumMintingLevel,
		MaximumUnconfirmed:       defaultMaximumUnconfirmed,
	}

	switch name {
	case Ledger:
		p.GenesisTimestamp = 1400247274336
		p.BlocksNeededByLevel = []uint64{50, 200, 500, 1000, 2000, 5000, 10000, 20000, 50000, 100000}
		groupRelease := int64(1536000000000)
		for _, tag := range groupTags {
			p.Releases[tag] = groupRelease
		}
	case Testing:
		p.GenesisTimestamp = 1500000000000
		p.BlocksNeededByLevel = []uint64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	case Local:
		p.GenesisTimestamp = 1500000000000
		p.BlocksNeededByLevel = []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	default:
		return nil, fault.ErrChainNotSupported
	}
	return p, nil
}

var groupTags = []transactionrecord.TagType{
	transactionrecord.CreateGroupTag,
	transactionrecord.UpdateGroupTag,
	transactionrecord.AddGroupAdminTag,
	transactionrecord.RemoveGroupAdminTag,
	transactionrecord.GroupBanTag,
	transactionrecord.CancelGroupBanTag,
	transactionrecord.GroupKickTag,
	transactionrecord.GroupInviteTag,
	transactionrecord.CancelGroupInviteTag,
	transactionrecord.JoinGroupTag,
	transactionrecord.LeaveGroupTag,
}

// IsReleased - true if a transaction type is accepted at a timestamp
func (p *Parameters) IsReleased(tag transactionrecord.TagType, timestamp int64) bool {
	release, ok := p.Releases[tag]
	return !ok || timestamp >= release
}

// LevelFor - level reached after minting a number of blocks
func (p *Parameters) LevelFor(blocksMinted uint64) uint8 {
	level := uint8(0)
	for _, needed := range p.BlocksNeededByLevel {
		if blocksMinted < needed {
			break
		}
		level += 1
	}
	return level
}
