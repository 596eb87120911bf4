// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// the file is an ordinary Lua chunk that must return a table; the
// table is mapped onto a structure using the "gluamapper" field tags.
// Base Lua is available so a file can read key files or call
// os.getenv to pick up environment supplied items.
//
// the global "arg" holds the configuration file name as arg[0]
package configuration
