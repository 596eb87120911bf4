// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/block"
	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/reservoir"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/util"
)

// everything a command can operate on
type node struct {
	log           *logger.L
	configuration *Configuration
	parameters    *chain.Parameters
	db            *storage.DB
	processor     *block.Processor
	pool          *reservoir.Reservoir
}

func newNode(configuration *Configuration, readOnly bool) (*node, error) {
	log := logger.New("node")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	parameters, err := chain.ParametersFor(configuration.Chain)
	if nil != err {
		return nil, err
	}

	log.Infof("database: %q  read only: %t", configuration.Database.Name, readOnly)
	db, err := storage.Open(configuration.Database.Name, readOnly)
	if nil != err {
		return nil, err
	}

	processor, err := block.NewProcessor(db, parameters)
	if nil != err {
		db.Close()
		return nil, err
	}

	pool, err := reservoir.New(db, parameters, processor, configuration.Reservoir)
	if nil != err {
		db.Close()
		return nil, err
	}

	return &node{
		log:           log,
		configuration: configuration,
		parameters:    parameters,
		db:            db,
		processor:     processor,
		pool:          pool,
	}, nil
}

func (n *node) close() {
	if err := n.db.Close(); nil != err {
		n.log.Errorf("database close error: %s", err)
	}
}

// read only view of the committed state, release when done
func (n *node) state() (*state.State, func(), error) {
	snapshot, err := n.db.Snapshot()
	if nil != err {
		return nil, nil, err
	}
	return state.NewReadOnly(snapshot), snapshot.Release, nil
}

// a key file holds the base58 seed on its first non-comment line
func readKeyFile(fileName string) (*account.PrivateKey, error) {
	seed, err := util.FirstLine(fileName)
	if nil != err {
		return nil, err
	}
	return account.PrivateKeyFromBase58Seed(seed)
}
