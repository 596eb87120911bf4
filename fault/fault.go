// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAddressChecksum          = InvalidError("address checksum mismatch")
	ErrAlreadyInitialised       = ExistsError("already initialised")
	ErrAmountFormat             = InvalidError("amount format is invalid")
	ErrAmountOverflow           = InvalidError("amount overflow")
	ErrBlockNotFound            = NotFoundError("block not found")
	ErrBlockTooLarge            = LengthError("block too large")
	ErrCannotDecodeAddress      = InvalidError("cannot decode address")
	ErrCannotDecodeSignature    = InvalidError("cannot decode signature")
	ErrChainNotSupported        = InvalidError("chain not supported")
	ErrConfigurationNotTable    = InvalidError("configuration did not return a table")
	ErrDatabaseIsReadOnly       = ProcessError("database is read only")
	ErrDatabaseVersion          = InvalidError("database version is not supported")
	ErrGenesisUndo              = ProcessError("genesis block cannot be orphaned")
	ErrInvalidAddressLength     = LengthError("invalid address length")
	ErrInvalidAddressVersion    = InvalidError("invalid address version")
	ErrInvalidBlockVersion      = InvalidError("invalid block version")
	ErrInvalidCount             = InvalidError("invalid count")
	ErrInvalidCursor            = InvalidError("invalid cursor")
	ErrInvalidKeyLength         = LengthError("invalid key length")
	ErrInvalidLoggerChannel     = InvalidError("invalid logger channel")
	ErrInvalidPublicKey         = InvalidError("invalid public key")
	ErrInvalidSavepoint         = InvalidError("invalid savepoint")
	ErrInvalidSignature         = InvalidError("invalid signature")
	ErrInvalidSignatureLength   = LengthError("invalid signature length")
	ErrInvalidStructPointer     = InvalidError("invalid struct pointer")
	ErrNotFound                 = NotFoundError("not found")
	ErrNotInitialised           = NotFoundError("not initialised")
	ErrNotTransactionPack       = InvalidError("not transaction pack")
	ErrRateLimited              = ProcessError("rate limited")
	ErrTransactionAlreadyExists = ExistsError("transaction already exists")
	ErrTransactionClosed        = ProcessError("transaction is closed")
	ErrTransactionNotSigned     = InvalidError("transaction is not signed")
	ErrTruncatedBlock           = LengthError("truncated block")
	ErrUnexpectedEndOfRecord    = LengthError("unexpected end of record")
	ErrUnknownTransactionType   = InvalidError("unknown transaction type")
	ErrValueTooLong             = LengthError("value too long")
	ErrWrongNetworkForPublicKey = InvalidError("wrong network for public key")
)

// the error interface methods
func (e GenericError) Error() string  { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
