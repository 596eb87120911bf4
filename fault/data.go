// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// DataError - the single fatal fault kind
//
// wraps a storage failure or a detected ledger inconsistency; the
// operation that produced it must abort its storage transaction
type DataError struct {
	message string
	cause   error
}

// Error - implement error interface
func (e *DataError) Error() string {
	if nil == e.cause {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

// Unwrap - access the underlying cause
func (e *DataError) Unwrap() error {
	return e.cause
}

// DataErrorf - create a fault from a formatted message
func DataErrorf(format string, arguments ...interface{}) error {
	err := &DataError{
		message: fmt.Sprintf(format, arguments...),
	}
	report(err)
	return err
}

// WrapData - convert a storage error into a fault
//
// nil stays nil and an existing fault is returned unchanged
func WrapData(err error, format string, arguments ...interface{}) error {
	if nil == err {
		return nil
	}
	if IsErrData(err) {
		return err
	}
	e := &DataError{
		message: fmt.Sprintf(format, arguments...),
		cause:   err,
	}
	report(e)
	return e
}

// IsErrData - true if any error in the chain is a DataError
func IsErrData(err error) bool {
	var d *DataError
	return errors.As(err, &d)
}
