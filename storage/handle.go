// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/permanode/fault"
)

// PoolHandle - access to one table of the database
type PoolHandle struct {
	prefix   byte
	limit    []byte
	table    string
	database *leveldb.DB
}

// a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Table - name used to address the pool in a query
func (p *PoolHandle) Table() string {
	return p.table
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// read a value for a given key
//
// a missing key gives nil without error; the result is a copy
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return nil, fault.ErrNotInitialised
	}

	prefixedKey := p.prefixKey(key)
	if value, found := poolData.cache.Get(prefixedKey); found {
		return value, nil
	}

	value, err := p.database.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	} else if nil != err {
		return nil, err
	}
	return value, nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return false
	}
	value, err := p.database.Has(p.prefixKey(key), nil)
	logger.PanicIfError("pool.Has", err)
	return value
}

// LastElement - the element with the highest key in the pool
func (p *PoolHandle) LastElement() (Element, bool) {
	maxRange := ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	}

	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return Element{}, false
	}

	iter := p.database.NewIterator(&maxRange, nil)

	found := false
	result := Element{}
	if iter.Last() {
		result = copyElement(iter.Key(), iter.Value())
		found = true
	}
	iter.Release()
	err := iter.Error()
	logger.PanicIfError("pool.LastElement", err)
	return result, found
}

// LastMatching - the element with the highest key accepted by f
//
// walks backward from the end of the pool and stops at the first match
func (p *PoolHandle) LastMatching(f func(key []byte, value []byte) bool) (Element, bool) {
	maxRange := ldb_util.Range{
		Start: []byte{p.prefix},
		Limit: p.limit,
	}

	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return Element{}, false
	}

	iter := p.database.NewIterator(&maxRange, nil)

	found := false
	result := Element{}
	for ok := iter.Last(); ok; ok = iter.Prev() {
		e := copyElement(iter.Key(), iter.Value())
		if f(e.Key, e.Value) {
			result = e
			found = true
			break
		}
	}
	iter.Release()
	err := iter.Error()
	logger.PanicIfError("pool.LastMatching", err)
	return result, found
}

// Scan - run f on every element whose key starts with keyPrefix
//
// elements are passed in key order; f returning an error stops the scan
func (p *PoolHandle) Scan(keyPrefix []byte, f func(key []byte, value []byte) error) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return fault.ErrNotInitialised
	}

	iter := p.database.NewIterator(ldb_util.BytesPrefix(p.prefixKey(keyPrefix)), nil)

	var err error
iterating:
	for iter.Next() {
		e := copyElement(iter.Key(), iter.Value())
		err = f(e.Key, e.Value)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}

// contents of iterator slices must not be modified, and are only
// valid until the next call to Next
func copyElement(key []byte, value []byte) Element {
	dataKey := make([]byte, len(key)-1) // strip the prefix
	copy(dataKey, key[1:])              // ...

	dataValue := make([]byte, len(value))
	copy(dataValue, value)

	return Element{
		Key:   dataKey,
		Value: dataValue,
	}
}
