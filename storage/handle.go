// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// PoolHandle - one logical table
type PoolHandle struct {
	prefix byte
	limit  []byte
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Reader - read access shared by the write transaction and snapshots
type Reader interface {
	Get(pool *PoolHandle, key []byte) ([]byte, error)
	Has(pool *PoolHandle, key []byte) (bool, error)
	newIterator(slice *ldb_util.Range) iterator.Iterator
}

// Writer - the write half of a transaction
type Writer interface {
	Reader
	Put(pool *PoolHandle, key []byte, value []byte) error
	Delete(pool *PoolHandle, key []byte) error
}

// Prefix - the pool's prefix byte
func (p *PoolHandle) Prefix() byte {
	return p.prefix
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// the full key range of the pool
func (p *PoolHandle) fullRange() ldb_util.Range {
	return ldb_util.Range{
		Start: []byte{p.prefix},
		Limit: p.limit,
	}
}

// leveldb reports absence as an error
func getValue(value []byte, err error) ([]byte, error) {
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	return value, nil
}
