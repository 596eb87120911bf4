// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// Dump - every pool row visible to a reader, in key order
//
// keys include the pool prefix; the version record is excluded
func Dump(reader Reader) ([]Element, error) {
	iter := reader.newIterator(&ldb_util.Range{
		Start: []byte{0x01},
		Limit: nil,
	})
	defer iter.Release()

	elements := make([]Element, 0, 64)
	for iter.Next() {
		elements = append(elements, Element{
			Key:   append([]byte{}, iter.Key()...),
			Value: append([]byte{}, iter.Value()...),
		})
	}
	return elements, iter.Error()
}
