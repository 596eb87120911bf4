// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// Version - the only block version accepted
const Version = 1

// GenesisHeight - height of the first block
const GenesisHeight = 1

// SignatureLength - minter signature followed by transactions signature
const SignatureLength = 2 * account.SignatureLength

// Signature - identifies a block
type Signature [SignatureLength]byte

// NullSignature - parent reference of the genesis block
var NullSignature Signature

// IsNull - true for the genesis parent reference
func (signature Signature) IsNull() bool {
	return NullSignature == signature
}

// String - hex form
func (signature Signature) String() string {
	return hex.EncodeToString(signature[:])
}

// MarshalText - hex form for JSON
func (signature Signature) MarshalText() ([]byte, error) {
	return []byte(signature.String()), nil
}

// SignatureFromBytes - copy a byte slice into a signature
func SignatureFromBytes(buffer []byte) (Signature, error) {
	signature := Signature{}
	if SignatureLength != len(buffer) {
		return signature, fault.ErrInvalidSignatureLength
	}
	copy(signature[:], buffer)
	return signature, nil
}

// Block - an ordered, signed batch of transactions
type Block struct {
	Version               uint32                     `json:"version"`
	Reference             Signature                  `json:"reference"`
	Timestamp             int64                      `json:"timestamp"`
	MintingWeight         uint32                     `json:"mintingWeight"`
	Minter                account.PublicKey          `json:"minter"`
	MinterSignature       account.Signature          `json:"minterSignature"`
	TransactionsSignature account.Signature          `json:"transactionsSignature"`
	Transactions          []*transaction.Transaction `json:"-"`

	// automated transaction side channel
	ATFees amount.Amount `json:"atFees"`
	ATData []byte        `json:"atData"`

	// assigned when applied
	Height uint64 `json:"height"`
}

// Signature - minter signature then transactions signature
func (b *Block) Signature() Signature {
	signature := Signature{}
	copy(signature[:], b.MinterSignature[:])
	copy(signature[account.SignatureLength:], b.TransactionsSignature[:])
	return signature
}

// MinterAddress - the account credited with the fees
func (b *Block) MinterAddress() account.Address {
	return b.Minter.Address()
}

// TotalFees - transaction fees plus automated transaction fees
func (b *Block) TotalFees() (amount.Amount, error) {
	total := b.ATFees
	var err error
	for _, tx := range b.Transactions {
		total, err = total.Add(tx.Record.Head().Fee)
		if nil != err {
			return 0, err
		}
	}
	return total, nil
}

// IsGenesis - true for the block that starts the chain
func (b *Block) IsGenesis() bool {
	return b.Reference.IsNull()
}

// the bytes covered by the minter signature
func (b *Block) minterMessage() []byte {
	message := make([]byte, 0, SignatureLength+4+account.PublicKeyLength)
	message = append(message, b.Reference[:]...)
	message = appendUint32(message, b.MintingWeight)
	return append(message, b.Minter[:]...)
}

// the bytes covered by the transactions signature
func (b *Block) transactionsMessage() []byte {
	message := make([]byte, 0, account.SignatureLength*(1+len(b.Transactions)))
	message = append(message, b.MinterSignature[:]...)
	for _, tx := range b.Transactions {
		signature := tx.Signature()
		message = append(message, signature[:]...)
	}
	return message
}

// Sign - set the minter and compute both signatures
//
// must be called again after any change to the transactions
func (b *Block) Sign(key *account.PrivateKey) {
	b.Minter = key.PublicKey()
	b.MinterSignature = key.Sign(b.minterMessage())
	b.TransactionsSignature = key.Sign(b.transactionsMessage())
}

// CheckMinterSignature - verify the minter signature
func (b *Block) CheckMinterSignature() error {
	return b.Minter.CheckSignature(b.minterMessage(), b.MinterSignature)
}

// CheckTransactionsSignature - verify the transactions signature
func (b *Block) CheckTransactionsSignature() error {
	return b.Minter.CheckSignature(b.transactionsMessage(), b.TransactionsSignature)
}

func appendUint32(buffer []byte, value uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, value)
	return append(buffer, b...)
}

func appendUint64(buffer []byte, value uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, value)
	return append(buffer, b...)
}
