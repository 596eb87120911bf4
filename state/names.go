// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/storage"
)

// Name - a registered name, keyed by its reduced form
type Name struct {
	Name       string            `json:"name"`
	Owner      account.Address   `json:"owner"`
	Data       string            `json:"data"`
	Registered int64             `json:"registered"`
	Updated    int64             `json:"updated"`
	Reference  account.Signature `json:"reference"`
}

// GetName - nil if absent
func (s *State) GetName(name string) (*Name, error) {
	key := []byte(ReducedName(name))
	buffer, err := s.get(storage.Pool.Names, key)
	if nil != err || nil == buffer {
		return nil, err
	}
	d := &decoder{buffer: buffer}
	n := &Name{
		Name:       d.text(),
		Owner:      d.address(),
		Data:       d.text(),
		Registered: d.int64(),
		Updated:    d.int64(),
		Reference:  d.signature(),
	}
	return n, d.check("name", key)
}

// PutName - create or replace a name
func (s *State) PutName(n *Name) error {
	e := &encoder{}
	e.text(n.Name).
		raw(n.Owner[:]).
		text(n.Data).
		int64(n.Registered).
		int64(n.Updated).
		raw(n.Reference[:])
	return s.put(storage.Pool.Names, []byte(ReducedName(n.Name)), e.buffer)
}

// DeleteName - remove a name
func (s *State) DeleteName(name string) error {
	return s.remove(storage.Pool.Names, []byte(ReducedName(name)))
}
