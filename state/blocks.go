// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/storage"
)

// keys:
//   Blocks:       height     → packed block header
//   BlockHeights: signature  → height

// PutBlock - store a block header and index its signature
func (s *State) PutBlock(height uint64, signature []byte, header []byte) error {
	key := uint64Bytes(height)
	if err := s.put(storage.Pool.Blocks, key, header); nil != err {
		return err
	}
	return s.put(storage.Pool.BlockHeights, signature, key)
}

// GetBlock - packed header at height, nil if absent
func (s *State) GetBlock(height uint64) ([]byte, error) {
	return s.get(storage.Pool.Blocks, uint64Bytes(height))
}

// GetBlockHeight - height of the block with a signature, zero if absent
func (s *State) GetBlockHeight(signature []byte) (uint64, error) {
	value, err := s.get(storage.Pool.BlockHeights, signature)
	if nil != err || nil == value {
		return 0, err
	}
	if 8 != len(value) {
		return 0, fault.DataErrorf("block height: %x has length: %d", signature, len(value))
	}
	return binary.BigEndian.Uint64(value), nil
}

// DeleteBlock - remove a block header and its signature index
func (s *State) DeleteBlock(height uint64, signature []byte) error {
	if err := s.remove(storage.Pool.BlockHeights, signature); nil != err {
		return err
	}
	return s.remove(storage.Pool.Blocks, uint64Bytes(height))
}

// ChainHeight - height of the last block, zero for an empty chain
func (s *State) ChainHeight() (uint64, error) {
	element, err := s.cursor(storage.Pool.Blocks).Reverse().First()
	if nil != err {
		return 0, fault.WrapData(err, "chain height")
	}
	if nil == element {
		return 0, nil
	}
	if 8 != len(element.Key) {
		return 0, fault.DataErrorf("block: key: %x has length: %d", element.Key, len(element.Key))
	}
	return binary.BigEndian.Uint64(element.Key), nil
}
