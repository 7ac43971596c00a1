// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - recently written values, consulted before the database
type Cache interface {
	Get([]byte) ([]byte, bool)
	Set(int, []byte, []byte)
	Clear()
}

const (
	dbPut = iota
	dbDelete
)

const (
	defaultCleanup    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    int
	value []byte
}

func newCache() Cache {
	return &dbCache{
		cache: cache.New(defaultExpiration, defaultCleanup),
	}
}

// Get - found is false for unknown and deleted keys
//
// a deleted key is reported as found with a nil value so the caller
// does not fall through to the database
func (c *dbCache) Get(key []byte) ([]byte, bool) {
	obj, found := c.cache.Get(string(key))
	if !found {
		return nil, false
	}

	data := obj.(cacheData)
	if dbDelete == data.op {
		return nil, true
	}
	return data.value, true
}

func (c *dbCache) Set(op int, key []byte, value []byte) {
	c.cache.Set(string(key), cacheData{op: op, value: value}, defaultExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
