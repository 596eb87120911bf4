// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk ledger store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// All writes go through the single write Transaction, which sees its
// own uncommitted writes and supports nested savepoints.  Readers
// that must not block the writer use a Snapshot of committed state.
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ++        = concatenation of byte data
// 3. height    = big endian uint64 (8 bytes)
// 4. sequence  = big endian uint32 (4 bytes)
// 5. address   = 25 byte binary address
// 6. asset     = big endian uint64 (8 bytes)
// 7. group     = big endian uint32 (4 bytes)
// 8. signature = 64 byte transaction signature, 128 byte block signature
// 9. name      = lower case UTF-8
//
// Accounts:
//
//   a ++ address                   - account row
//   b ++ address ++ asset          - current balance
//   h ++ address ++ asset ++ height - balance after changes at height
//   i ++ height ++ address ++ asset - index for deleting history on orphan
//
// Assets and names:
//
//   A ++ asset                     - asset row
//   N ++ name                      - asset name index  data: asset
//   n ++ name                      - registered name row
//
// Groups:
//
//   g ++ group                     - group row
//   G ++ name                      - group name index  data: group
//   m ++ group ++ address          - member
//   d ++ group ++ address          - admin
//   x ++ group ++ address          - ban
//   v ++ group ++ address          - invite
//   j ++ group ++ address          - join request
//
// Chain:
//
//   B ++ height                    - packed block ++ apply-time data
//   H ++ signature                 - block height
//   L ++ signature ++ sequence     - block transaction linkage  data: transaction signature
//   T ++ signature                 - confirmed transaction
//   P ++ address ++ height ++ sequence - participant index  data: transaction signature
//
// Miscellaneous:
//
//   c ++ name                      - counters (next group, next asset)
//   Z ++ key                       - test data
package storage
