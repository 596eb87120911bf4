// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ledgerd/fault"
)

// Transaction - the single active write transaction
//
// reads see the transaction's own writes; nothing is visible to
// snapshots until Commit
type Transaction struct {
	db      *DB
	trx     *leveldb.Transaction
	journal []change
	serial  uint64
	marks   []uint64
	closed  bool
}

// one undo record: the value a key had before a write
type change struct {
	key     []byte
	value   []byte
	existed bool
}

// Savepoint - a position in the transaction that can be returned to
type Savepoint struct {
	trx      *Transaction
	serial   uint64
	position int
}

// Begin - start the write transaction
//
// blocks until any other write transaction has finished
func (d *DB) Begin() (*Transaction, error) {
	if d.readOnly {
		return nil, fault.ErrDatabaseIsReadOnly
	}

	d.writer.Lock()

	trx, err := d.database.OpenTransaction()
	if nil != err {
		d.writer.Unlock()
		return nil, err
	}
	return &Transaction{
		db:      d,
		trx:     trx,
		journal: make([]change, 0, 64),
	}, nil
}

// Get - read a value, nil if not present
func (t *Transaction) Get(pool *PoolHandle, key []byte) ([]byte, error) {
	if t.closed {
		return nil, fault.ErrTransactionClosed
	}
	return getValue(t.trx.Get(pool.prefixKey(key), nil))
}

// Has - check if a key is present
func (t *Transaction) Has(pool *PoolHandle, key []byte) (bool, error) {
	if t.closed {
		return false, fault.ErrTransactionClosed
	}
	return t.trx.Has(pool.prefixKey(key), nil)
}

func (t *Transaction) newIterator(slice *ldb_util.Range) iterator.Iterator {
	if t.closed {
		return iterator.NewEmptyIterator(fault.ErrTransactionClosed)
	}
	return t.trx.NewIterator(slice, nil)
}

// Put - store a key/value pair
func (t *Transaction) Put(pool *PoolHandle, key []byte, value []byte) error {
	k := pool.prefixKey(key)
	if err := t.record(k); nil != err {
		return err
	}
	return t.trx.Put(k, value, nil)
}

// Delete - remove a key, absent keys are ignored
func (t *Transaction) Delete(pool *PoolHandle, key []byte) error {
	k := pool.prefixKey(key)
	if err := t.record(k); nil != err {
		return err
	}
	return t.trx.Delete(k, nil)
}

// save the previous state of a key before it is changed
func (t *Transaction) record(key []byte) error {
	if t.closed {
		return fault.ErrTransactionClosed
	}
	value, err := t.trx.Get(key, nil)
	existed := true
	if leveldb.ErrNotFound == err {
		existed = false
	} else if nil != err {
		return err
	}
	t.journal = append(t.journal, change{
		key:     key,
		value:   value,
		existed: existed,
	})
	return nil
}

// Savepoint - mark the current position
func (t *Transaction) Savepoint() Savepoint {
	t.serial += 1
	t.marks = append(t.marks, t.serial)
	return Savepoint{
		trx:      t,
		serial:   t.serial,
		position: len(t.journal),
	}
}

// RollbackTo - undo all writes made after the savepoint
//
// savepoints taken after this one become invalid; this one remains
// usable so the same savepoint can be rolled back to again
func (t *Transaction) RollbackTo(savepoint Savepoint) error {
	if t.closed {
		return fault.ErrTransactionClosed
	}
	if t != savepoint.trx || savepoint.position > len(t.journal) {
		return fault.ErrInvalidSavepoint
	}
	active := -1
	for i, serial := range t.marks {
		if serial == savepoint.serial {
			active = i
			break
		}
	}
	if active < 0 {
		return fault.ErrInvalidSavepoint
	}

	for i := len(t.journal) - 1; i >= savepoint.position; i -= 1 {
		c := t.journal[i]
		var err error
		if c.existed {
			err = t.trx.Put(c.key, c.value, nil)
		} else {
			err = t.trx.Delete(c.key, nil)
		}
		if nil != err {
			return err
		}
	}
	t.journal = t.journal[:savepoint.position]
	t.marks = t.marks[:active+1]
	return nil
}

// Commit - make all writes durable and release the writer
func (t *Transaction) Commit() error {
	if t.closed {
		return fault.ErrTransactionClosed
	}
	t.closed = true
	t.journal = nil
	defer t.db.writer.Unlock()

	err := t.trx.Commit()
	if nil != err {
		t.trx.Discard()
	}
	return err
}

// Abort - discard all writes and release the writer
//
// safe to call after Commit, so it can be deferred
func (t *Transaction) Abort() {
	if t.closed {
		return
	}
	t.closed = true
	t.journal = nil
	t.trx.Discard()
	t.db.writer.Unlock()
}
