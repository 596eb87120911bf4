// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Rejections of transactions or blocks are not errors; they are
// reported as result codes.  Anything that indicates the ledger or
// its storage is inconsistent is a DataError and is fatal to the
// current storage transaction.
package fault
