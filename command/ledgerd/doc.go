// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// ledgerd - maintain a ledger database
//
// every command opens the database named in the configuration file,
// performs one operation and exits:
//
//   ledgerd --config-file=ledgerd.conf init
//   ledgerd --config-file=ledgerd.conf mint HEX...
//   ledgerd --config-file=ledgerd.conf balance ADDRESS
//
// the configuration file is Lua, see ledgerd.conf.sample
package main
