// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/storage"
)

// Account - the account row
type Account struct {
	Address      account.Address    `json:"address"`
	PublicKey    *account.PublicKey `json:"publicKey,omitempty"`
	Reference    account.Signature  `json:"reference"`
	Flags        uint32             `json:"flags"`
	DefaultGroup uint32             `json:"defaultGroup"`
	Level        uint8              `json:"level"`
	InitialLevel uint8              `json:"initialLevel"`
	BlocksMinted uint64             `json:"blocksMinted"`
}

// an account that carries no information
func (a *Account) isBare() bool {
	return nil == a.PublicKey &&
		a.Reference.IsNull() &&
		0 == a.Flags &&
		0 == a.DefaultGroup &&
		0 == a.Level &&
		0 == a.InitialLevel &&
		0 == a.BlocksMinted
}

func (a *Account) pack() []byte {
	e := &encoder{}
	if nil == a.PublicKey {
		e.boolean(false)
	} else {
		e.boolean(true).raw(a.PublicKey[:])
	}
	e.raw(a.Reference[:]).
		uint32(a.Flags).
		uint32(a.DefaultGroup).
		uint8(a.Level).
		uint8(a.InitialLevel).
		uint64(a.BlocksMinted)
	return e.buffer
}

func unpackAccount(address account.Address, buffer []byte) (*Account, error) {
	d := &decoder{buffer: buffer}
	a := &Account{
		Address: address,
	}
	if d.boolean() {
		k := d.publicKey()
		a.PublicKey = &k
	}
	a.Reference = d.signature()
	a.Flags = d.uint32()
	a.DefaultGroup = d.uint32()
	a.Level = d.uint8()
	a.InitialLevel = d.uint8()
	a.BlocksMinted = d.uint64()
	return a, d.check("account", address[:])
}

// GetAccount - read an account, nil if absent
func (s *State) GetAccount(address account.Address) (*Account, error) {
	buffer, err := s.get(storage.Pool.Accounts, address[:])
	if nil != err || nil == buffer {
		return nil, err
	}
	return unpackAccount(address, buffer)
}

// EnsureAccount - create a bare row if absent
//
// a public key, if given, is stored when the row has none; a
// different stored key for the same address is a fault.  The result
// is true when the key was stored by this call.
func (s *State) EnsureAccount(address account.Address, publicKey *account.PublicKey) (bool, error) {
	a, err := s.GetAccount(address)
	if nil != err {
		return false, err
	}
	if nil == a {
		a = &Account{
			Address: address,
		}
	} else if nil == publicKey || nil != a.PublicKey {
		if nil != publicKey && *publicKey != *a.PublicKey {
			return false, fault.DataErrorf("account: %s public key: %s conflicts with: %s", address, publicKey, a.PublicKey)
		}
		return false, nil
	}

	recorded := false
	if nil != publicKey {
		if publicKey.Address() != address {
			return false, fault.DataErrorf("account: %s does not match public key: %s", address, publicKey)
		}
		k := *publicKey
		a.PublicKey = &k
		recorded = true
	}
	return recorded, s.put(storage.Pool.Accounts, address[:], a.pack())
}

// UpdateAccount - read-modify-write an account row
//
// the row is created if absent; a row left carrying no information
// and holding no balances is removed
func (s *State) UpdateAccount(address account.Address, update func(a *Account) error) error {
	a, err := s.GetAccount(address)
	if nil != err {
		return err
	}
	if nil == a {
		a = &Account{
			Address: address,
		}
	}
	err = update(a)
	if nil != err {
		return err
	}
	return s.putAccount(a)
}

func (s *State) putAccount(a *Account) error {
	if a.isBare() {
		hasBalances, err := s.hasBalances(a.Address)
		if nil != err {
			return err
		}
		if !hasBalances {
			return s.remove(storage.Pool.Accounts, a.Address[:])
		}
	}
	return s.put(storage.Pool.Accounts, a.Address[:], a.pack())
}

// remove a bare account once its last balance is gone
func (s *State) tidyAccount(address account.Address) error {
	a, err := s.GetAccount(address)
	if nil != err || nil == a {
		return err
	}
	if !a.isBare() {
		return nil
	}
	return s.putAccount(a)
}

// ClearPublicKey - forget a stored public key
func (s *State) ClearPublicKey(address account.Address) error {
	return s.UpdateAccount(address, func(a *Account) error {
		a.PublicKey = nil
		return nil
	})
}

// GetLastReference - signature of the last transaction the address
// authored, null if none
func (s *State) GetLastReference(address account.Address) (account.Signature, error) {
	a, err := s.GetAccount(address)
	if nil != err || nil == a {
		return account.NullSignature, err
	}
	return a.Reference, nil
}

// SetLastReference - null is a legal value
func (s *State) SetLastReference(address account.Address, reference account.Signature) error {
	return s.UpdateAccount(address, func(a *Account) error {
		a.Reference = reference
		return nil
	})
}
