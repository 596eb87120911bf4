// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/ledgerd/fault"
)

// SignatureLength - size of an ed25519 signature
const SignatureLength = ed25519.SignatureSize

// Signature - the type for a signature
//
// the zero value doubles as the null reference
type Signature [SignatureLength]byte

// NullSignature - no reference
var NullSignature Signature

// SignatureFromBytes - validate the length of a binary signature
func SignatureFromBytes(buffer []byte) (Signature, error) {
	s := Signature{}
	if SignatureLength != len(buffer) {
		return s, fault.ErrInvalidSignatureLength
	}
	copy(s[:], buffer)
	return s, nil
}

// SignatureFromBase58 - convert the text form of a signature
func SignatureFromBase58(s string) (Signature, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Signature{}, fault.ErrCannotDecodeSignature
	}
	return SignatureFromBytes(buffer)
}

// IsNull - true for the null reference
func (signature Signature) IsNull() bool {
	return signature == NullSignature
}

// Bytes - binary form
func (signature Signature) Bytes() []byte {
	return signature[:]
}

// String - base58 form for the fmt package (for %s)
func (signature Signature) String() string {
	return base58.Encode(signature[:])
}

// GoString - for %#v
func (signature Signature) GoString() string {
	if signature.IsNull() {
		return "<signature:null>"
	}
	return "<signature:" + signature.String() + ">"
}

// MarshalText - convert signature to text
func (signature Signature) MarshalText() ([]byte, error) {
	if signature.IsNull() {
		return []byte{}, nil
	}
	return []byte(signature.String()), nil
}

// UnmarshalText - convert text into a signature
func (signature *Signature) UnmarshalText(s []byte) error {
	if 0 == len(s) {
		*signature = NullSignature
		return nil
	}
	sig, err := SignatureFromBase58(string(s))
	if nil != err {
		return err
	}
	*signature = sig
	return nil
}

// CheckSignature - verify a signature over a message
func (k PublicKey) CheckSignature(message []byte, signature Signature) error {
	if !ed25519.Verify(k[:], message, signature[:]) {
		return fault.ErrInvalidSignature
	}
	return nil
}
