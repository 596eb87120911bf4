// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/ledgerd/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Accounts            *PoolHandle `prefix:"a"`
	Balances            *PoolHandle `prefix:"b"`
	HistoricBalances    *PoolHandle `prefix:"h"`
	BalanceHeights      *PoolHandle `prefix:"i"`
	Assets              *PoolHandle `prefix:"A"`
	AssetNames          *PoolHandle `prefix:"N"`
	Names               *PoolHandle `prefix:"n"`
	Groups              *PoolHandle `prefix:"g"`
	GroupNames          *PoolHandle `prefix:"G"`
	GroupMembers        *PoolHandle `prefix:"m"`
	GroupAdmins         *PoolHandle `prefix:"d"`
	GroupBans           *PoolHandle `prefix:"x"`
	GroupInvites        *PoolHandle `prefix:"v"`
	GroupJoinRequests   *PoolHandle `prefix:"j"`
	Blocks              *PoolHandle `prefix:"B"`
	BlockHeights        *PoolHandle `prefix:"H"`
	BlockTransactions   *PoolHandle `prefix:"L"`
	Transactions        *PoolHandle `prefix:"T"`
	AddressTransactions *PoolHandle `prefix:"P"`
	Counters            *PoolHandle `prefix:"c"`
	TestData            *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
//
// only holds key prefixes, so it is immutable after package init
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// DB - the ledger store
type DB struct {
	writer   sync.Mutex
	database *leveldb.DB
	readOnly bool
}

func init() {
	if err := setupPools(); nil != err {
		panic(err)
	}
}

func setupPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	seen := make(map[byte]string)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		if name, ok := seen[prefix]; ok {
			return fmt.Errorf("pool: %s duplicates prefix of: %s", fieldInfo.Name, name)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// Open - open up the database
func Open(name string, readOnly bool) (*DB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly)
}

// OpenMemory - a volatile database for testing
func OpenMemory() (*DB, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, ReadWrite)
}

// check the version record and create it for an empty database
func setup(db *leveldb.DB, readOnly bool) (*DB, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		if readOnly {
			db.Close()
			return nil, fault.ErrDatabaseVersion
		}
		currentVersion := make([]byte, 4)
		binary.BigEndian.PutUint32(currentVersion, currentDBVersion)
		err = db.Put(versionKey, currentVersion, nil)
		if nil != err {
			db.Close()
			return nil, err
		}
	} else if nil != err {
		db.Close()
		return nil, err
	} else if 4 != len(versionValue) || currentDBVersion != binary.BigEndian.Uint32(versionValue) {
		db.Close()
		return nil, fault.ErrDatabaseVersion
	}

	return &DB{
		database: db,
		readOnly: readOnly,
	}, nil
}

// Close - close the database
//
// an open write transaction is discarded by LevelDB
func (d *DB) Close() error {
	return d.database.Close()
}
