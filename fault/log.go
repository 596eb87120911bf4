// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"runtime"
	"sync"

	"github.com/bitmark-inc/logger"
)

// hold a logger channel for reporting faults
var globalData struct {
	sync.Mutex
	log *logger.L
}

// Initialise - setup a log channel so that faults reach the operator
//
// optional: faults are still returned if this is never called
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.log {
		return ErrAlreadyInitialised
	}
	globalData.log = logger.New("fault")
	if nil == globalData.log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any data and detach the channel
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.log {
		globalData.log.Flush()
		globalData.log = nil
	}
}

// log the fault with the caller of the fault constructor
func report(err *DataError) {
	globalData.Lock()
	log := globalData.log
	globalData.Unlock()

	if nil == log {
		return
	}
	if _, file, line, ok := runtime.Caller(2); ok {
		log.Criticalf("(%q:%d) %s", file, line, err.Error())
	} else {
		log.Criticalf("%s", err.Error())
	}
}
