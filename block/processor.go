// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// Processor - the single writer of blocks
type Processor struct {
	sync.Mutex

	log        *logger.L
	db         *storage.DB
	parameters *chain.Parameters
}

// NewProcessor - block processing over an open database
func NewProcessor(db *storage.DB, parameters *chain.Parameters) (*Processor, error) {
	log := logger.New("block")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	p := &Processor{
		log:        log,
		db:         db,
		parameters: parameters,
	}

	height, err := p.Height()
	if nil != err {
		return nil, err
	}
	chainHeight.Set(float64(height))
	log.Infof("chain: %s  height: %d", parameters.Name, height)

	return p, nil
}

// Parameters - the chain parameters blocks are processed with
func (p *Processor) Parameters() *chain.Parameters {
	return p.parameters
}

// Process - validate a block and add it to the chain
//
// a rejected block leaves the chain unchanged
func (p *Processor) Process(b *Block) (Result, *Rejection, error) {
	p.Lock()
	defer p.Unlock()

	trx, err := p.db.Begin()
	if nil != err {
		return 0, nil, err
	}

	result, rejection, err := Validate(trx, p.parameters, b)
	if nil != err {
		trx.Abort()
		p.log.Criticalf("validate block: %s  error: %s", b.Signature(), err)
		return 0, nil, err
	}
	if OK != result {
		trx.Abort()
		blocksRejected.WithLabelValues(result.String()).Inc()
		if nil != rejection {
			p.log.Warnf("rejected block: %s  result: %s  transaction[%d]: %s", b.Signature(), result, rejection.Index, rejection.Result)
		} else {
			p.log.Warnf("rejected block: %s  result: %s", b.Signature(), result)
		}
		return result, rejection, nil
	}

	if err := Apply(trx, p.parameters, b); nil != err {
		trx.Abort()
		p.log.Criticalf("apply block: %s  error: %s", b.Signature(), err)
		return 0, nil, err
	}
	if err := trx.Commit(); nil != err {
		p.log.Criticalf("commit block: %d  error: %s", b.Height, err)
		return 0, nil, err
	}

	blocksApplied.Inc()
	transactionsConfirmed.Add(float64(len(b.Transactions)))
	chainHeight.Set(float64(b.Height))
	p.log.Infof("applied block: %d  transactions: %d  signature: %s", b.Height, len(b.Transactions), b.Signature())

	return OK, nil, nil
}

// Orphan - undo the top block, returning it with its transactions
func (p *Processor) Orphan() (*Block, error) {
	p.Lock()
	defer p.Unlock()

	trx, err := p.db.Begin()
	if nil != err {
		return nil, err
	}
	b, err := Undo(trx, p.parameters)
	if nil != err {
		trx.Abort()
		p.undoFailed("orphan", err)
		return nil, err
	}
	if err := trx.Commit(); nil != err {
		p.log.Criticalf("commit orphan of block: %d  error: %s", b.Height, err)
		return nil, err
	}

	blocksOrphaned.Inc()
	chainHeight.Set(float64(b.Height - 1))
	p.log.Infof("orphaned block: %d  transactions: %d", b.Height, len(b.Transactions))
	return b, nil
}

// DeleteDownToHeight - undo blocks from the top down to and including
// the given height
//
// all blocks are removed in one write transaction; the transactions
// they held are returned oldest first so they can be resubmitted
func (p *Processor) DeleteDownToHeight(height uint64) ([]*transaction.Transaction, error) {
	p.Lock()
	defer p.Unlock()

	if height <= GenesisHeight {
		return nil, fault.ErrGenesisUndo
	}

	trx, err := p.db.Begin()
	if nil != err {
		return nil, err
	}

	p.log.Infof("delete down to block: %d", height)

	orphaned := make([]*Block, 0, 8)
	for {
		top, err := topHeader(stateOf(trx))
		if nil != err {
			trx.Abort()
			return nil, err
		}
		if nil == top || top.Height < height {
			break
		}
		b, err := Undo(trx, p.parameters)
		if nil != err {
			trx.Abort()
			p.undoFailed(fmt.Sprintf("delete block: %d", top.Height), err)
			return nil, err
		}
		orphaned = append(orphaned, b)
	}

	if err := trx.Commit(); nil != err {
		p.log.Criticalf("commit delete down to block: %d  error: %s", height, err)
		return nil, err
	}

	transactions := make([]*transaction.Transaction, 0, len(orphaned))
	for i := len(orphaned) - 1; i >= 0; i -= 1 {
		transactions = append(transactions, orphaned[i].Transactions...)
		blocksOrphaned.Inc()
	}
	if 0 != len(orphaned) {
		chainHeight.Set(float64(height - 1))
	}
	p.log.Infof("deleted blocks: %d  transactions: %d", len(orphaned), len(transactions))
	return transactions, nil
}

// Height - height of the committed top block
func (p *Processor) Height() (uint64, error) {
	snapshot, err := p.db.Snapshot()
	if nil != err {
		return 0, err
	}
	defer snapshot.Release()
	return stateOf(snapshot).ChainHeight()
}

// Get - committed block at a height, nil if absent
func (p *Processor) Get(height uint64) (*Block, error) {
	snapshot, err := p.db.Snapshot()
	if nil != err {
		return nil, err
	}
	defer snapshot.Release()
	return Get(snapshot, height)
}

// refusing to remove genesis or an empty chain is expected, any other
// undo failure means the store is damaged
func (p *Processor) undoFailed(operation string, err error) {
	switch err {
	case fault.ErrBlockNotFound, fault.ErrGenesisUndo:
		p.log.Warnf("%s  refused: %s", operation, err)
	default:
		p.log.Criticalf("%s  error: %s", operation, err)
	}
}
