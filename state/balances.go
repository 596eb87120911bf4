// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/storage"
)

// keys:
//   Balances:         address ++ asset              → amount
//   HistoricBalances: address ++ asset ++ height    → amount
//   BalanceHeights:   height ++ address ++ asset    → (empty)

const balanceKeyLength = account.AddressLength + 8

// Balance - one asset held by an address
type Balance struct {
	Asset  uint64        `json:"asset"`
	Amount amount.Amount `json:"amount"`
}

func balanceKey(address account.Address, asset uint64) []byte {
	return makeKey(address[:], uint64Bytes(asset))
}

func unpackAmount(key []byte, value []byte) (amount.Amount, error) {
	if 8 != len(value) {
		return 0, fault.DataErrorf("balance: %x has length: %d", key, len(value))
	}
	return amount.Amount(binary.BigEndian.Uint64(value)), nil
}

// GetBalance - current balance, zero if absent
func (s *State) GetBalance(address account.Address, asset uint64) (amount.Amount, error) {
	key := balanceKey(address, asset)
	value, err := s.get(storage.Pool.Balances, key)
	if nil != err || nil == value {
		return 0, err
	}
	return unpackAmount(key, value)
}

// SetBalance - store a balance and its history row at the current height
//
// a negative value means validation let through something it should
// not have, and is reported as a fault
func (s *State) SetBalance(address account.Address, asset uint64, value amount.Amount) error {
	if value < 0 {
		return fault.DataErrorf("balance: %s asset: %d cannot be set negative: %s", address, asset, value)
	}

	key := balanceKey(address, asset)
	height := uint64Bytes(s.height)

	previous, found, err := s.lastBalanceBelow(address, asset, s.height)
	if nil != err {
		return err
	}
	if !found && 0 == value {
		return s.deleteBalance(address, asset)
	}

	if _, err := s.EnsureAccount(address, nil); nil != err {
		return err
	}
	v := uint64Bytes(uint64(value))
	if err := s.put(storage.Pool.Balances, key, v); nil != err {
		return err
	}

	// no history row for a height that ends where it started
	if found && previous == value {
		if err := s.remove(storage.Pool.HistoricBalances, makeKey(key, height)); nil != err {
			return err
		}
		return s.remove(storage.Pool.BalanceHeights, makeKey(height, key))
	}

	if err := s.put(storage.Pool.HistoricBalances, makeKey(key, height), v); nil != err {
		return err
	}
	return s.put(storage.Pool.BalanceHeights, makeKey(height, key), []byte{})
}

// ModifyBalance - add a signed delta to a balance
func (s *State) ModifyBalance(address account.Address, asset uint64, delta amount.Amount) error {
	balance, err := s.GetBalance(address, asset)
	if nil != err {
		return err
	}
	balance, err = balance.Add(delta)
	if nil != err {
		return fault.WrapData(err, "balance: %s asset: %d", address, asset)
	}
	return s.SetBalance(address, asset, balance)
}

// ListBalances - all balances of an address in asset order
func (s *State) ListBalances(address account.Address) ([]Balance, error) {
	balances := make([]Balance, 0, 4)
	err := s.cursor(storage.Pool.Balances).Prefix(address[:]).Map(func(key []byte, value []byte) error {
		if balanceKeyLength != len(key) {
			return fault.DataErrorf("balance: key: %x has length: %d", key, len(key))
		}
		a, err := unpackAmount(key, value)
		if nil != err {
			return err
		}
		balances = append(balances, Balance{
			Asset:  binary.BigEndian.Uint64(key[account.AddressLength:]),
			Amount: a,
		})
		return nil
	})
	return balances, fault.WrapData(err, "balances: %s", address)
}

// BalanceAt - the balance as it was after the block at height
func (s *State) BalanceAt(address account.Address, asset uint64, height uint64) (amount.Amount, error) {
	balance, _, err := s.lastBalanceBelow(address, asset, height+1)
	return balance, err
}

// BalanceConfirmed - balance as of a number of confirmations below the
// chain height, the current balance for zero confirmations
func (s *State) BalanceConfirmed(address account.Address, asset uint64, confirmations uint64) (amount.Amount, error) {
	if 0 == confirmations {
		return s.GetBalance(address, asset)
	}
	top, err := s.ChainHeight()
	if nil != err {
		return 0, err
	}
	if confirmations >= top {
		return 0, nil
	}
	return s.BalanceAt(address, asset, top-confirmations)
}

// DeleteBalancesFromHeight - remove history at or above a height and
// restore each affected current balance from what remains
func (s *State) DeleteBalancesFromHeight(height uint64) error {
	affected := make(map[string]struct{})
	keys := make([][]byte, 0, 16)

	err := s.cursor(storage.Pool.BalanceHeights).Seek(uint64Bytes(height)).Map(func(key []byte, _ []byte) error {
		if 8+balanceKeyLength != len(key) {
			return fault.DataErrorf("balance height: key: %x has length: %d", key, len(key))
		}
		keys = append(keys, key)
		affected[string(key[8:])] = struct{}{}
		return nil
	})
	if nil != err {
		return fault.WrapData(err, "delete balances from: %d", height)
	}

	for _, key := range keys {
		if err := s.remove(storage.Pool.BalanceHeights, key); nil != err {
			return err
		}
		if err := s.remove(storage.Pool.HistoricBalances, makeKey(key[8:], key[:8])); nil != err {
			return err
		}
	}

	for k := range affected {
		key := []byte(k)
		var address account.Address
		copy(address[:], key[:account.AddressLength])
		asset := binary.BigEndian.Uint64(key[account.AddressLength:])

		if err := s.restoreBalance(address, asset, height); nil != err {
			return err
		}
		if err := s.tidyAccount(address); nil != err {
			return err
		}
	}
	return nil
}

// reset the current balance to the last history row below height
func (s *State) restoreBalance(address account.Address, asset uint64, height uint64) error {
	key := balanceKey(address, asset)
	previous, found, err := s.lastBalanceBelow(address, asset, height)
	if nil != err {
		return err
	}
	if !found {
		return s.remove(storage.Pool.Balances, key)
	}
	return s.put(storage.Pool.Balances, key, uint64Bytes(uint64(previous)))
}

// the latest history row strictly below height
func (s *State) lastBalanceBelow(address account.Address, asset uint64, height uint64) (amount.Amount, bool, error) {
	key := balanceKey(address, asset)
	element, err := s.cursor(storage.Pool.HistoricBalances).
		Prefix(key).
		Limit(makeKey(key, uint64Bytes(height))).
		Reverse().
		First()
	if nil != err {
		return 0, false, fault.WrapData(err, "balance history: %s asset: %d", address, asset)
	}
	if nil == element {
		return 0, false, nil
	}
	a, err := unpackAmount(element.Key, element.Value)
	return a, true, err
}

// remove every trace of an (address, asset) balance
func (s *State) deleteBalance(address account.Address, asset uint64) error {
	key := balanceKey(address, asset)

	heights := make([][]byte, 0, 4)
	err := s.cursor(storage.Pool.HistoricBalances).Prefix(key).Map(func(k []byte, _ []byte) error {
		if len(k) != len(key)+8 {
			return fault.DataErrorf("balance history: key: %x has length: %d", k, len(k))
		}
		heights = append(heights, k[len(key):])
		return nil
	})
	if nil != err {
		return fault.WrapData(err, "delete balance: %s asset: %d", address, asset)
	}
	for _, h := range heights {
		if err := s.remove(storage.Pool.HistoricBalances, makeKey(key, h)); nil != err {
			return err
		}
		if err := s.remove(storage.Pool.BalanceHeights, makeKey(h, key)); nil != err {
			return err
		}
	}
	if err := s.remove(storage.Pool.Balances, key); nil != err {
		return err
	}
	return s.tidyAccount(address)
}

func (s *State) hasBalances(address account.Address) (bool, error) {
	found, err := s.cursor(storage.Pool.Balances).Prefix(address[:]).Exists()
	return found, fault.WrapData(err, "balances: %s", address)
}
