// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
)

// miscellaneous constants
const (
	PublicKeyLength = 32
	AddressLength   = 25

	addressVersion = 0x3a
	digestLength   = 20
	checksumLength = 4
	checksumStart  = AddressLength - checksumLength
)

// PublicKey - ed25519 public key
type PublicKey [PublicKeyLength]byte

// Address - fixed length identifier derived from a public key
//
// version byte, first 20 bytes of the SHA3-256 of the key and a four
// byte checksum over the preceding bytes
type Address [AddressLength]byte

// GenesisPublicKey - creator of genesis transactions
var GenesisPublicKey PublicKey

// AddressFromPublicKey - derive the address of a key
func AddressFromPublicKey(publicKey PublicKey) Address {
	digest := sha3.Sum256(publicKey[:])

	a := Address{}
	a[0] = addressVersion
	copy(a[1:], digest[:digestLength])
	checksum := sha3.Sum256(a[:checksumStart])
	copy(a[checksumStart:], checksum[:checksumLength])
	return a
}

// AddressFromBytes - validate a binary address
func AddressFromBytes(buffer []byte) (Address, error) {
	a := Address{}
	if AddressLength != len(buffer) {
		return a, fault.ErrInvalidAddressLength
	}
	copy(a[:], buffer)
	if addressVersion != a[0] {
		return a, fault.ErrInvalidAddressVersion
	}
	checksum := sha3.Sum256(a[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], a[checksumStart:]) {
		return a, fault.ErrAddressChecksum
	}
	return a, nil
}

// AddressFromBase58 - convert the text form of an address
func AddressFromBase58(s string) (Address, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Address{}, fault.ErrCannotDecodeAddress
	}
	return AddressFromBytes(buffer)
}

// IsValidAddress - true if the text is a well formed address
func IsValidAddress(s string) bool {
	_, err := AddressFromBase58(s)
	return nil == err
}

// IsValid - true if version and checksum are correct
func (a Address) IsValid() bool {
	_, err := AddressFromBytes(a[:])
	return nil == err
}

// Bytes - binary form
func (a Address) Bytes() []byte {
	return a[:]
}

// String - base58 form
func (a Address) String() string {
	return base58.Encode(a[:])
}

// GoString - for %#v
func (a Address) GoString() string {
	return "<address:" + a.String() + ">"
}

// MarshalText - base58 form for JSON
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert from base58
func (a *Address) UnmarshalText(s []byte) error {
	address, err := AddressFromBase58(string(s))
	if nil != err {
		return err
	}
	*a = address
	return nil
}

// PublicKeyFromBytes - validate the length of a binary key
func PublicKeyFromBytes(buffer []byte) (PublicKey, error) {
	k := PublicKey{}
	if PublicKeyLength != len(buffer) {
		return k, fault.ErrInvalidKeyLength
	}
	copy(k[:], buffer)
	return k, nil
}

// Address - the address derived from this key
func (k PublicKey) Address() Address {
	return AddressFromPublicKey(k)
}

// Bytes - binary form
func (k PublicKey) Bytes() []byte {
	return k[:]
}

// IsZero - true for the genesis key
func (k PublicKey) IsZero() bool {
	return k == GenesisPublicKey
}

// String - base58 form
func (k PublicKey) String() string {
	return base58.Encode(k[:])
}

// MarshalText - base58 form for JSON
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText - convert from base58
func (k *PublicKey) UnmarshalText(s []byte) error {
	buffer, err := base58.Decode(string(s))
	if nil != err {
		return fault.ErrInvalidPublicKey
	}
	key, err := PublicKeyFromBytes(buffer)
	if nil != err {
		return err
	}
	*k = key
	return nil
}
