// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"encoding/binary"
	"strings"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/storage"
)

// NativeAsset - the built in asset that pays fees
const NativeAsset = uint64(0)

const firstIssuedAsset = uint64(1)

// Asset - an issued asset
type Asset struct {
	Id          uint64            `json:"id"`
	Owner       account.Address   `json:"owner"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Quantity    int64             `json:"quantity"`
	IsDivisible bool              `json:"isDivisible"`
	Reference   account.Signature `json:"reference"`
}

var nativeAsset = Asset{
	Id:          NativeAsset,
	Name:        "LEDGER",
	Description: "native asset",
	IsDivisible: true,
}

// ReducedName - the form names are compared in
func ReducedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (a *Asset) pack() []byte {
	e := &encoder{}
	e.raw(a.Owner[:]).
		text(a.Name).
		text(a.Description).
		int64(a.Quantity).
		boolean(a.IsDivisible).
		raw(a.Reference[:])
	return e.buffer
}

// GetAsset - nil if absent
func (s *State) GetAsset(id uint64) (*Asset, error) {
	if NativeAsset == id {
		a := nativeAsset
		return &a, nil
	}
	key := uint64Bytes(id)
	buffer, err := s.get(storage.Pool.Assets, key)
	if nil != err || nil == buffer {
		return nil, err
	}
	d := &decoder{buffer: buffer}
	a := &Asset{
		Id:          id,
		Owner:       d.address(),
		Name:        d.text(),
		Description: d.text(),
		Quantity:    d.int64(),
		IsDivisible: d.boolean(),
		Reference:   d.signature(),
	}
	return a, d.check("asset", key)
}

// AssetByName - nil if no asset has the reduced name
func (s *State) AssetByName(name string) (*Asset, error) {
	reduced := ReducedName(name)
	if ReducedName(nativeAsset.Name) == reduced {
		return s.GetAsset(NativeAsset)
	}
	value, err := s.get(storage.Pool.AssetNames, []byte(reduced))
	if nil != err || nil == value {
		return nil, err
	}
	if 8 != len(value) {
		return nil, fault.DataErrorf("asset name: %q has length: %d", reduced, len(value))
	}
	return s.GetAsset(binary.BigEndian.Uint64(value))
}

// IssueAsset - store a new asset under the next id
func (s *State) IssueAsset(a *Asset) (uint64, error) {
	id, err := s.counter(nextAssetCounter, firstIssuedAsset)
	if nil != err {
		return 0, err
	}
	a.Id = id
	key := uint64Bytes(id)
	if err := s.put(storage.Pool.Assets, key, a.pack()); nil != err {
		return 0, err
	}
	if err := s.put(storage.Pool.AssetNames, []byte(ReducedName(a.Name)), key); nil != err {
		return 0, err
	}
	return id, s.setCounter(nextAssetCounter, id+1, firstIssuedAsset)
}

// DeleteAsset - remove the most recently issued asset
func (s *State) DeleteAsset(id uint64) error {
	a, err := s.GetAsset(id)
	if nil != err {
		return err
	}
	if nil == a || NativeAsset == id {
		return fault.DataErrorf("asset: %d cannot be deleted", id)
	}
	next, err := s.counter(nextAssetCounter, firstIssuedAsset)
	if nil != err {
		return err
	}
	if next != id+1 {
		return fault.DataErrorf("asset: %d is not the last issued: %d", id, next-1)
	}
	if err := s.remove(storage.Pool.AssetNames, []byte(ReducedName(a.Name))); nil != err {
		return err
	}
	if err := s.remove(storage.Pool.Assets, uint64Bytes(id)); nil != err {
		return err
	}
	return s.setCounter(nextAssetCounter, id, firstIssuedAsset)
}
