// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// wire form:
//
//   version                 4
//   reference             128
//   timestamp               8
//   minting weight          4
//   minter public key      32
//   minter signature       64
//   transactions signature 64
//   transaction count       4
//   transactions           count × (length 4 ‖ packed transaction)
//   at fees                 8
//   at data                length 4 ‖ bytes
//
// the stored form omits the count and the transactions, which are
// kept in their own relations
const (
	headerLength = 4 + SignatureLength + 8 + 4 + account.PublicKeyLength + 2*account.SignatureLength
)

// Packed - a block on the wire
type Packed []byte

// Pack - the wire form
func (b *Block) Pack() Packed {
	buffer := b.packHeader()
	buffer = appendUint32(buffer, uint32(len(b.Transactions)))
	for _, tx := range b.Transactions {
		buffer = appendUint32(buffer, uint32(len(tx.Packed)))
		buffer = append(buffer, tx.Packed...)
	}
	return b.packSideChannel(buffer)
}

// the stored form
func (b *Block) packStored() []byte {
	return b.packSideChannel(b.packHeader())
}

func (b *Block) packHeader() []byte {
	buffer := make([]byte, 0, headerLength+64)
	buffer = appendUint32(buffer, b.Version)
	buffer = append(buffer, b.Reference[:]...)
	buffer = appendUint64(buffer, uint64(b.Timestamp))
	buffer = appendUint32(buffer, b.MintingWeight)
	buffer = append(buffer, b.Minter[:]...)
	buffer = append(buffer, b.MinterSignature[:]...)
	return append(buffer, b.TransactionsSignature[:]...)
}

func (b *Block) packSideChannel(buffer []byte) []byte {
	buffer = appendUint64(buffer, uint64(b.ATFees))
	buffer = appendUint32(buffer, uint32(len(b.ATData)))
	return append(buffer, b.ATData...)
}

// Unpack - decode a block and every transaction in it
//
// transaction signatures are checked; the block signatures are not
func (record Packed) Unpack() (*Block, error) {
	b, rest, err := unpackHeader(record)
	if nil != err {
		return nil, err
	}

	if len(rest) < 4 {
		return nil, fault.ErrTruncatedBlock
	}
	count := binary.BigEndian.Uint32(rest)
	rest = rest[4:]

	// every transaction needs at least its length
	if uint64(count)*4 > uint64(len(rest)) {
		return nil, fault.ErrInvalidCount
	}

	b.Transactions = make([]*transaction.Transaction, 0, count)
	for i := uint32(0); i < count; i += 1 {
		if len(rest) < 4 {
			return nil, fault.ErrTruncatedBlock
		}
		length := int(binary.BigEndian.Uint32(rest))
		rest = rest[4:]
		if length > len(rest) {
			return nil, fault.ErrTruncatedBlock
		}
		tx, n, err := transaction.FromPacked(rest[:length])
		if nil != err {
			return nil, err
		}
		if n != length {
			return nil, fault.ErrNotTransactionPack
		}
		b.Transactions = append(b.Transactions, tx)
		rest = rest[length:]
	}

	rest, err = b.unpackSideChannel(rest)
	if nil != err {
		return nil, err
	}
	if 0 != len(rest) {
		return nil, fault.ErrBlockTooLarge
	}
	return b, nil
}

// decode the stored form, transactions are not loaded
func unpackStored(buffer []byte) (*Block, error) {
	b, rest, err := unpackHeader(buffer)
	if nil != err {
		return nil, err
	}
	rest, err = b.unpackSideChannel(rest)
	if nil != err {
		return nil, err
	}
	if 0 != len(rest) {
		return nil, fault.ErrBlockTooLarge
	}
	return b, nil
}

func unpackHeader(buffer []byte) (*Block, []byte, error) {
	if len(buffer) < headerLength {
		return nil, nil, fault.ErrTruncatedBlock
	}
	b := &Block{}
	b.Version = binary.BigEndian.Uint32(buffer)
	if Version != b.Version {
		return nil, nil, fault.ErrInvalidBlockVersion
	}
	n := 4
	n += copy(b.Reference[:], buffer[n:])
	b.Timestamp = int64(binary.BigEndian.Uint64(buffer[n:]))
	n += 8
	b.MintingWeight = binary.BigEndian.Uint32(buffer[n:])
	n += 4
	n += copy(b.Minter[:], buffer[n:])
	n += copy(b.MinterSignature[:], buffer[n:])
	n += copy(b.TransactionsSignature[:], buffer[n:])
	return b, buffer[n:], nil
}

func (b *Block) unpackSideChannel(buffer []byte) ([]byte, error) {
	if len(buffer) < 12 {
		return nil, fault.ErrTruncatedBlock
	}
	b.ATFees = amount.Amount(binary.BigEndian.Uint64(buffer))
	length := int(binary.BigEndian.Uint32(buffer[8:]))
	buffer = buffer[12:]
	if length > len(buffer) {
		return nil, fault.ErrTruncatedBlock
	}
	if length > 0 {
		b.ATData = append([]byte{}, buffer[:length]...)
	}
	return buffer[length:], nil
}
