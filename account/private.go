// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"io"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/ledgerd/fault"
)

// SeedLength - size of a private key seed
const SeedLength = ed25519.SeedSize

// PrivateKey - signing key
type PrivateKey struct {
	key ed25519.PrivateKey
}

// NewPrivateKey - deterministic key from a 32 byte seed
func NewPrivateKey(seed []byte) (*PrivateKey, error) {
	if SeedLength != len(seed) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &PrivateKey{
		key: ed25519.NewKeyFromSeed(seed),
	}, nil
}

// GenerateKey - random key, reader may be nil to use crypto/rand
func GenerateKey(reader io.Reader) (*PrivateKey, error) {
	if nil == reader {
		reader = rand.Reader
	}
	_, key, err := ed25519.GenerateKey(reader)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{
		key: key,
	}, nil
}

// PrivateKeyFromBase58Seed - decode a base58 seed
func PrivateKeyFromBase58Seed(s string) (*PrivateKey, error) {
	seed, err := base58.Decode(s)
	if nil != err {
		return nil, fault.ErrInvalidKeyLength
	}
	return NewPrivateKey(seed)
}

// PublicKey - the matching public key
func (p *PrivateKey) PublicKey() PublicKey {
	k := PublicKey{}
	copy(k[:], p.key[ed25519.SeedSize:])
	return k
}

// Address - the address of the matching public key
func (p *PrivateKey) Address() Address {
	return AddressFromPublicKey(p.PublicKey())
}

// Sign - sign a message
func (p *PrivateKey) Sign(message []byte) Signature {
	s := Signature{}
	copy(s[:], ed25519.Sign(p.key, message))
	return s
}

// Seed - base58 form of the seed for storing in a key file
func (p *PrivateKey) Seed() string {
	return base58.Encode(p.key.Seed())
}
