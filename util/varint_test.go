// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/ledgerd/util"
)

var varint64Tests = []struct {
	value   uint64
	encoded []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{300, []byte{0xac, 0x02}},
	{16383, []byte{0xff, 0x7f}},
	{16384, []byte{0x80, 0x80, 0x01}},
	{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

func TestVarint64(t *testing.T) {
	for i, item := range varint64Tests {
		encoded := util.AppendVarint64(nil, item.value)
		if !bytes.Equal(encoded, item.encoded) {
			t.Errorf("%d: AppendVarint64(%x) -> %x  expected: %x", i, item.value, encoded, item.encoded)
		}

		prefixed := util.AppendVarint64([]byte{0x55}, item.value)
		if !bytes.Equal(prefixed[1:], item.encoded) || 0x55 != prefixed[0] {
			t.Errorf("%d: AppendVarint64 to prefix -> %x", i, prefixed)
		}

		buffer := append(append([]byte{}, item.encoded...), 0xff, 0x23)
		value, count := util.FromVarint64(buffer)
		if value != item.value || count != len(item.encoded) {
			t.Errorf("%d: FromVarint64(%x) -> %d, %d  expected: %d, %d", i, buffer, value, count, item.value, len(item.encoded))
		}
	}
}

func TestVarint64Truncated(t *testing.T) {
	truncated := [][]byte{
		{},
		{0x80},
		{0xff, 0xff},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}
	for i, item := range truncated {
		if value, count := util.FromVarint64(item); 0 != value || 0 != count {
			t.Errorf("%d: FromVarint64(%x) -> %d, %d  expected: 0, 0", i, item, value, count)
		}
	}
}

func TestClippedVarint64(t *testing.T) {
	tests := []struct {
		value    uint64
		expected int
		count    int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{400, 400, 2},
		{401, 0, 0},
		{0xffffffffffffffff, 0, 0},
	}
	for i, item := range tests {
		value, count := util.ClippedVarint64(util.AppendVarint64(nil, item.value), 1, 400)
		if value != item.expected || count != item.count {
			t.Errorf("%d: ClippedVarint64(%d) -> %d, %d  expected: %d, %d", i, item.value, value, count, item.expected, item.count)
		}
	}
}
