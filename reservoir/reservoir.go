// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"bytes"
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/block"
	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transaction"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

const (
	defaultRateLimit = 100
	defaultBurst     = 200
	cleanupInterval  = 10 * time.Minute
)

// Chain - the confirmed chain that pending transactions build on
type Chain interface {
	Height() (uint64, error)
}

// Configuration - submission limits
type Configuration struct {
	RateLimit float64 `gluamapper:"rate_limit" json:"rate_limit"`
	Burst     int     `gluamapper:"burst" json:"burst"`
}

// Reservoir - unconfirmed transactions keyed by signature
type Reservoir struct {
	sync.Mutex

	log        *logger.L
	db         *storage.DB
	parameters *chain.Parameters
	chain      Chain
	limiter    *rate.Limiter
	pending    *cache.Cache
}

// New - an empty pool over an open database
func New(db *storage.DB, parameters *chain.Parameters, c Chain, configuration Configuration) (*Reservoir, error) {
	log := logger.New("reservoir")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	limit := rate.Limit(configuration.RateLimit)
	if configuration.RateLimit <= 0 {
		limit = defaultRateLimit
	}
	burst := configuration.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	pending := cache.New(cache.NoExpiration, cleanupInterval)
	pending.OnEvicted(func(string, interface{}) {
		transactionsPending.Dec()
	})

	log.Infof("rate limit: %.1f/s  burst: %d  maximum unconfirmed: %d", float64(limit), burst, parameters.MaximumUnconfirmed)

	return &Reservoir{
		log:        log,
		db:         db,
		parameters: parameters,
		chain:      c,
		limiter:    rate.NewLimiter(limit, burst),
		pending:    pending,
	}, nil
}

// Submit - decode a packed transaction and add it to the pool
//
// a rejection is a Result; errors are for undecodable input, rate
// limiting and storage faults
func (r *Reservoir) Submit(packed []byte) (transaction.Result, error) {
	if !r.limiter.Allow() {
		return 0, fault.ErrRateLimited
	}

	tx, n, err := transaction.FromPacked(packed)
	if fault.ErrInvalidSignature == err || fault.ErrInvalidPublicKey == err {
		transactionsRejected.WithLabelValues(transaction.INVALID_SIGNATURE.String()).Inc()
		return transaction.INVALID_SIGNATURE, nil
	}
	if nil != err {
		return 0, err
	}
	if n != len(packed) {
		return 0, fault.ErrNotTransactionPack
	}

	return r.admit(tx)
}

// Resubmit - return orphaned transactions to the pool
//
// not rate limited; gives the number admitted
func (r *Reservoir) Resubmit(transactions []*transaction.Transaction) (int, error) {
	admitted := 0
	for _, tx := range transactions {
		if transactionrecord.GenesisTag == tx.Type() {
			continue
		}
		result, err := r.admit(tx)
		if nil != err {
			return admitted, err
		}
		if transaction.OK == result {
			admitted += 1
		}
	}
	return admitted, nil
}

// Pending - everything in the pool ordered by timestamp then signature
func (r *Reservoir) Pending() []*transaction.Transaction {
	r.Lock()
	defer r.Unlock()

	return r.sorted(nil)
}

// Count - number of unexpired pending transactions
func (r *Reservoir) Count() int {
	return len(r.pending.Items())
}

// Confirmed - drop the transactions included in a block, then any
// that no longer apply on top of the new chain
func (r *Reservoir) Confirmed(b *block.Block) error {
	r.Lock()
	defer r.Unlock()

	for _, tx := range b.Transactions {
		r.pending.Delete(tx.Signature().String())
	}
	return r.purge()
}

func (r *Reservoir) admit(tx *transaction.Transaction) (transaction.Result, error) {
	result, err := r.check(tx)
	if nil != err {
		r.log.Errorf("check transaction: %s  error: %s", tx.Signature(), err)
		return 0, err
	}
	if transaction.OK != result {
		transactionsRejected.WithLabelValues(result.String()).Inc()
		r.log.Debugf("rejected transaction: %s  result: %s", tx.Signature(), result)
	}
	return result, nil
}

func (r *Reservoir) check(tx *transaction.Transaction) (transaction.Result, error) {
	if transactionrecord.GenesisTag == tx.Type() {
		return transaction.INVALID_GENESIS, nil
	}

	r.Lock()
	defer r.Unlock()

	key := tx.Signature().String()
	if _, found := r.pending.Get(key); found {
		return transaction.TRANSACTION_ALREADY_EXISTS, nil
	}

	creator := tx.Creator()
	earlier := r.sorted(func(t *transaction.Transaction) bool {
		return t.Creator() == creator
	})
	if len(earlier) >= r.parameters.MaximumUnconfirmed {
		return transaction.TOO_MANY_UNCONFIRMED, nil
	}

	now := milliseconds(time.Now())
	trx, c, err := r.context(now)
	if nil != err {
		return 0, err
	}
	defer trx.Abort()

	for _, e := range earlier {
		result, err := e.Validate(c)
		if nil != err {
			return 0, err
		}
		if transaction.OK != result {
			continue
		}
		if err := e.Apply(c); nil != err {
			return 0, err
		}
	}

	result, err := tx.Validate(c)
	if nil != err || transaction.OK != result {
		return result, err
	}

	savepoint := trx.Savepoint()
	if err := tx.Apply(c); nil != err {
		return 0, err
	}
	if err := trx.RollbackTo(savepoint); nil != err {
		return 0, err
	}

	expiry := time.Duration(tx.Deadline(r.parameters)-now) * time.Millisecond
	r.pending.Set(key, tx, expiry)
	transactionsAdmitted.Inc()
	transactionsPending.Inc()
	r.log.Debugf("admitted transaction: %s  creator: %s  expiry: %s", tx.Signature(), creator, expiry)

	return transaction.OK, nil
}

// apply the whole pool in order, dropping what no longer validates
//
// must hold lock
func (r *Reservoir) purge() error {
	trx, c, err := r.context(milliseconds(time.Now()))
	if nil != err {
		return err
	}
	defer trx.Abort()

	for _, tx := range r.sorted(nil) {
		result, err := tx.Validate(c)
		if nil != err {
			return err
		}
		if transaction.OK != result {
			r.pending.Delete(tx.Signature().String())
			r.log.Debugf("dropped transaction: %s  result: %s", tx.Signature(), result)
			continue
		}
		if err := tx.Apply(c); nil != err {
			return err
		}
	}
	return nil
}

// a throwaway write transaction positioned for the next block
func (r *Reservoir) context(timestamp int64) (*storage.Transaction, *transaction.Context, error) {
	height, err := r.chain.Height()
	if nil != err {
		return nil, nil, err
	}
	trx, err := r.db.Begin()
	if nil != err {
		return nil, nil, err
	}
	return trx, transaction.NewContext(trx, r.parameters, height+1, timestamp), nil
}

// unexpired transactions passing the filter, oldest first
//
// must hold lock
func (r *Reservoir) sorted(filter func(*transaction.Transaction) bool) []*transaction.Transaction {
	items := r.pending.Items()
	transactions := make([]*transaction.Transaction, 0, len(items))
	for _, item := range items {
		tx := item.Object.(*transaction.Transaction)
		if nil == filter || filter(tx) {
			transactions = append(transactions, tx)
		}
	}
	sort.Slice(transactions, func(i, j int) bool {
		ti := transactions[i].Timestamp()
		tj := transactions[j].Timestamp()
		if ti != tj {
			return ti < tj
		}
		return less(transactions[i].Signature(), transactions[j].Signature())
	})
	return transactions
}

func less(a account.Signature, b account.Signature) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

func milliseconds(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
