// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package state - typed ledger relations over the store
//
// every storage failure is returned as a fault.DataError
package state

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/storage"
)

// State - access to the ledger relations
//
// height is the block being applied or undone; balance history is
// recorded against it
type State struct {
	reader storage.Reader
	writer storage.Writer
	height uint64
}

// New - read/write state inside the write transaction
func New(trx *storage.Transaction, height uint64) *State {
	return &State{
		reader: trx,
		writer: trx,
		height: height,
	}
}

// NewReadOnly - queries over a snapshot or transaction
func NewReadOnly(reader storage.Reader) *State {
	return &State{
		reader: reader,
	}
}

// Height - the height changes are recorded at
func (s *State) Height() uint64 {
	return s.height
}

// SetHeight - change the height changes are recorded at
func (s *State) SetHeight(height uint64) {
	s.height = height
}

func (s *State) get(pool *storage.PoolHandle, key []byte) ([]byte, error) {
	value, err := s.reader.Get(pool, key)
	return value, fault.WrapData(err, "get: %c/%x", pool.Prefix(), key)
}

func (s *State) has(pool *storage.PoolHandle, key []byte) (bool, error) {
	found, err := s.reader.Has(pool, key)
	return found, fault.WrapData(err, "has: %c/%x", pool.Prefix(), key)
}

func (s *State) put(pool *storage.PoolHandle, key []byte, value []byte) error {
	if nil == s.writer {
		return fault.DataErrorf("put: %c/%x: %s", pool.Prefix(), key, fault.ErrDatabaseIsReadOnly)
	}
	return fault.WrapData(s.writer.Put(pool, key, value), "put: %c/%x", pool.Prefix(), key)
}

func (s *State) remove(pool *storage.PoolHandle, key []byte) error {
	if nil == s.writer {
		return fault.DataErrorf("delete: %c/%x: %s", pool.Prefix(), key, fault.ErrDatabaseIsReadOnly)
	}
	return fault.WrapData(s.writer.Delete(pool, key), "delete: %c/%x", pool.Prefix(), key)
}

func (s *State) cursor(pool *storage.PoolHandle) *storage.FetchCursor {
	return storage.NewFetchCursor(s.reader, pool)
}

// names of counters
const (
	nextAssetCounter = "asset"
	nextGroupCounter = "group"
)

// read a counter, absent means the initial value
func (s *State) counter(name string, initial uint64) (uint64, error) {
	value, err := s.get(storage.Pool.Counters, []byte(name))
	if nil != err {
		return 0, err
	}
	if nil == value {
		return initial, nil
	}
	if 8 != len(value) {
		return 0, fault.DataErrorf("counter: %s has length: %d", name, len(value))
	}
	return binary.BigEndian.Uint64(value), nil
}

// write a counter, the initial value is stored as absence so that
// undo restores the original row set exactly
func (s *State) setCounter(name string, value uint64, initial uint64) error {
	if value == initial {
		return s.remove(storage.Pool.Counters, []byte(name))
	}
	return s.put(storage.Pool.Counters, []byte(name), uint64Bytes(value))
}

func uint64Bytes(value uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, value)
	return b
}

func uint32Bytes(value uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, value)
	return b
}

// concatenate key parts
func makeKey(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}
