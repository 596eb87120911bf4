// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// row encoder
type encoder struct {
	buffer []byte
}

func (e *encoder) uint8(v uint8) *encoder {
	e.buffer = append(e.buffer, v)
	return e
}

func (e *encoder) boolean(v bool) *encoder {
	if v {
		return e.uint8(1)
	}
	return e.uint8(0)
}

func (e *encoder) uint32(v uint32) *encoder {
	e.buffer = append(e.buffer, uint32Bytes(v)...)
	return e
}

func (e *encoder) uint64(v uint64) *encoder {
	e.buffer = append(e.buffer, uint64Bytes(v)...)
	return e
}

func (e *encoder) int64(v int64) *encoder {
	return e.uint64(uint64(v))
}

func (e *encoder) raw(b []byte) *encoder {
	e.buffer = append(e.buffer, b...)
	return e
}

func (e *encoder) text(s string) *encoder {
	e.buffer = util.AppendVarint64(e.buffer, uint64(len(s)))
	e.buffer = append(e.buffer, s...)
	return e
}

func (e *encoder) blob(b []byte) *encoder {
	e.buffer = util.AppendVarint64(e.buffer, uint64(len(b)))
	e.buffer = append(e.buffer, b...)
	return e
}

// row decoder, remembers the first error
type decoder struct {
	buffer []byte
	n      int
	err    error
}

func (d *decoder) take(length int) []byte {
	if nil != d.err {
		return nil
	}
	if length < 0 || d.n+length > len(d.buffer) {
		d.err = fault.ErrUnexpectedEndOfRecord
		return nil
	}
	b := d.buffer[d.n : d.n+length]
	d.n += length
	return b
}

func (d *decoder) uint8() uint8 {
	b := d.take(1)
	if nil == b {
		return 0
	}
	return b[0]
}

func (d *decoder) boolean() bool {
	return 0 != d.uint8()
}

func (d *decoder) uint32() uint32 {
	b := d.take(4)
	if nil == b {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (d *decoder) uint64() uint64 {
	b := d.take(8)
	if nil == b {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func (d *decoder) int64() int64 {
	return int64(d.uint64())
}

func (d *decoder) address() account.Address {
	a := account.Address{}
	copy(a[:], d.take(account.AddressLength))
	return a
}

func (d *decoder) publicKey() account.PublicKey {
	k := account.PublicKey{}
	copy(k[:], d.take(account.PublicKeyLength))
	return k
}

func (d *decoder) signature() account.Signature {
	s := account.Signature{}
	copy(s[:], d.take(account.SignatureLength))
	return s
}

func (d *decoder) blob() []byte {
	if nil != d.err {
		return nil
	}
	length, count := util.FromVarint64(d.buffer[d.n:])
	if 0 == count || length > uint64(len(d.buffer)) {
		d.err = fault.ErrUnexpectedEndOfRecord
		return nil
	}
	d.n += count
	b := d.take(int(length))
	if 0 == len(b) {
		return nil
	}
	return append([]byte{}, b...)
}

func (d *decoder) text() string {
	return string(d.blob())
}

func (d *decoder) rest() []byte {
	b := d.take(len(d.buffer) - d.n)
	if 0 == len(b) {
		return nil
	}
	return append([]byte{}, b...)
}

// the error to report for a corrupt row
func (d *decoder) check(what string, key []byte) error {
	if nil != d.err {
		return fault.WrapData(d.err, "%s: %x: corrupt row", what, key)
	}
	if d.n != len(d.buffer) {
		return fault.DataErrorf("%s: %x: %d trailing bytes", what, key, len(d.buffer)-d.n)
	}
	return nil
}
