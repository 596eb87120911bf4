// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ledgerd/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	reader   Reader
	pool     *PoolHandle
	maxRange ldb_util.Range
	reverse  bool
	offset   int
}

// NewFetchCursor - initialise a cursor to the whole key range of a pool
func NewFetchCursor(reader Reader, pool *PoolHandle) *FetchCursor {
	return &FetchCursor{
		reader:   reader,
		pool:     pool,
		maxRange: pool.fullRange(),
	}
}

// Prefix - restrict the cursor to keys beginning with prefix
func (cursor *FetchCursor) Prefix(prefix []byte) *FetchCursor {
	cursor.maxRange = *ldb_util.BytesPrefix(cursor.pool.prefixKey(prefix))
	return cursor
}

// Seek - move the start of the range to key (included)
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// Limit - move the end of the range to key (excluded)
func (cursor *FetchCursor) Limit(key []byte) *FetchCursor {
	cursor.maxRange.Limit = cursor.pool.prefixKey(key)
	return cursor
}

// Reverse - fetch from the end of the range
func (cursor *FetchCursor) Reverse() *FetchCursor {
	cursor.reverse = true
	return cursor
}

// Offset - skip a number of elements on the next fetch
func (cursor *FetchCursor) Offset(n int) *FetchCursor {
	cursor.offset = n
	return cursor
}

// Fetch - return up to count elements and advance the cursor past them
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	results := make([]Element, 0, count)
	var lastKey []byte
	err := cursor.scan(func(key []byte, dataKey []byte, value []byte) bool {
		results = append(results, Element{
			Key:   dataKey,
			Value: value,
		})
		lastKey = key
		return len(results) < count
	})
	if nil != err {
		return nil, err
	}

	// continue after the last element on a later fetch
	if nil != lastKey {
		if cursor.reverse {
			cursor.maxRange.Limit = lastKey
		} else {
			cursor.maxRange.Start = append(lastKey, 0x00)
		}
	}
	return results, nil
}

// First - the first element in the range or nil
func (cursor *FetchCursor) First() (*Element, error) {
	elements, err := cursor.Fetch(1)
	if nil != err || 0 == len(elements) {
		return nil, err
	}
	return &elements[0], nil
}

// Exists - true if the range holds at least one element
func (cursor *FetchCursor) Exists() (bool, error) {
	e, err := cursor.First()
	return nil != e, err
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}

	var err error
	scanErr := cursor.scan(func(_ []byte, dataKey []byte, value []byte) bool {
		err = f(dataKey, value)
		return nil == err
	})
	if nil != err {
		return err
	}
	return scanErr
}

// iterate the range, honouring offset and direction
//
// the callback receives copies of the full key, the key without
// prefix and the value, and returns false to stop
func (cursor *FetchCursor) scan(f func(key []byte, dataKey []byte, value []byte) bool) error {
	iter := cursor.reader.newIterator(&cursor.maxRange)
	defer iter.Release()

	next := iter.Next
	if cursor.reverse {
		first := true
		next = func() bool {
			if first {
				first = false
				return iter.Last()
			}
			return iter.Prev()
		}
	}

	skip := cursor.offset
	cursor.offset = 0

	for next() {
		if skip > 0 {
			skip -= 1
			continue
		}

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := append([]byte{}, iter.Key()...)
		value := append([]byte{}, iter.Value()...)

		if !f(key, key[1:], value) {
			break
		}
	}
	return iter.Error()
}
