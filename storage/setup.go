// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
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

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/record"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Messages     *PoolHandle `prefix:"M" table:"messages"`
	Metadata     *PoolHandle `prefix:"D" table:"metadata"`
	Transactions *PoolHandle `prefix:"T" table:"transactions"`
	Addresses    *PoolHandle `prefix:"A" table:"addresses"`
	Indexes      *PoolHandle `prefix:"I" table:"indexes"`
	Parents      *PoolHandle `prefix:"P" table:"parents"`
	Hints        *PoolHandle `prefix:"H" table:"hints"`
	Milestones   *PoolHandle `prefix:"S" table:"milestones"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// holds the database handle
var poolData struct {
	sync.RWMutex
	log         *logger.L
	database    *leveldb.DB
	readOnly    bool
	partitioner record.Partitioner
	cache       Cache
	tables      map[string]*PoolHandle
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string, readOnly bool, partitioner record.Partitioner) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.database {
		return fault.ErrAlreadyInitialised
	}
	if 0 == partitioner.Count || 0 == partitioner.ChunkSize {
		return fault.ErrInvalidPartitionSize
	}

	ok := false
	defer func() {
		if !ok {
			dbClose()
		}
	}()

	db, version, err := getDB(database, readOnly)
	if nil != err {
		return err
	}
	poolData.database = db

	// ensure no database downgrade
	if version > currentDBVersion {
		logger.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version {
		if readOnly {
			logger.Criticalf("database: %s has no version", database)
			return fmt.Errorf("database: %s has no version", database)
		}
		// database was empty so tag as current version
		err = putVersion(poolData.database, currentDBVersion)
		if nil != err {
			return err
		}
	}

	poolData.log = logger.New("storage")
	poolData.readOnly = readOnly
	poolData.partitioner = partitioner
	poolData.cache = newCache()
	poolData.tables = make(map[string]*PoolHandle)

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}
		table := fieldInfo.Tag.Get("table")
		if "" == table {
			return fmt.Errorf("pool: %v has no table name", fieldInfo)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix:   prefix,
			limit:    limit,
			table:    table,
			database: poolData.database,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
		poolData.tables[table] = p
	}

	ok = true // prevent db close
	return nil
}

func dbClose() {
	if nil != poolData.database {
		poolData.database.Close()
		poolData.database = nil
	}
	if nil != poolData.cache {
		poolData.cache.Clear()
	}
	Pool = pools{}
	poolData.tables = nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	dbClose()
	poolData.Unlock()
}

// Partitioner - the partitioning the database was opened with
func Partitioner() record.Partitioner {
	poolData.RLock()
	defer poolData.RUnlock()
	return poolData.partitioner
}

// Tables - names of all pools in prefix order
func Tables() []string {
	poolType := reflect.TypeOf(Pool)
	names := make([]string, 0, poolType.NumField())
	for i := 0; i < poolType.NumField(); i += 1 {
		names = append(names, poolType.Field(i).Tag.Get("table"))
	}
	return names
}

// PoolByTable - look up a pool by its table name
func PoolByTable(table string) (*PoolHandle, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return nil, fault.ErrNotInitialised
	}
	p, ok := poolData.tables[table]
	if !ok {
		return nil, fault.ErrInvalidTable
	}
	return p, nil
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

func storageLog() *logger.L {
	poolData.RLock()
	defer poolData.RUnlock()
	return poolData.log
}

func initialised() bool {
	poolData.RLock()
	defer poolData.RUnlock()
	return nil != poolData.database
}
