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

// Snapshot - read-only view of committed state
//
// any number may be open while a write transaction is in progress
type Snapshot struct {
	snapshot *leveldb.Snapshot
}

// Snapshot - capture the current committed state
func (d *DB) Snapshot() (*Snapshot, error) {
	s, err := d.database.GetSnapshot()
	if nil != err {
		return nil, err
	}
	return &Snapshot{
		snapshot: s,
	}, nil
}

// Get - read a value, nil if not present
func (s *Snapshot) Get(pool *PoolHandle, key []byte) ([]byte, error) {
	return getValue(s.snapshot.Get(pool.prefixKey(key), nil))
}

// Has - check if a key is present
func (s *Snapshot) Has(pool *PoolHandle, key []byte) (bool, error) {
	return s.snapshot.Has(pool.prefixKey(key), nil)
}

func (s *Snapshot) newIterator(slice *ldb_util.Range) iterator.Iterator {
	return s.snapshot.NewIterator(slice, nil)
}

// Release - free the snapshot
func (s *Snapshot) Release() {
	s.snapshot.Release()
}
