// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/permanode/fault"
)

// Batch - writes applied to the database together on Commit
type Batch struct {
	batch   *leveldb.Batch
	written []cacheEntry
}

type cacheEntry struct {
	op    int
	key   []byte
	value []byte
}

// NewBatch - start an empty batch
func NewBatch() *Batch {
	return &Batch{
		batch: new(leveldb.Batch),
	}
}

// Len - number of pending writes
func (b *Batch) Len() int {
	return b.batch.Len()
}

func (b *Batch) put(p *PoolHandle, key []byte, value []byte) {
	prefixedKey := p.prefixKey(key)
	b.batch.Put(prefixedKey, value)
	b.written = append(b.written, cacheEntry{op: dbPut, key: prefixedKey, value: value})
}

func (b *Batch) remove(p *PoolHandle, key []byte) {
	prefixedKey := p.prefixKey(key)
	b.batch.Delete(prefixedKey)
	b.written = append(b.written, cacheEntry{op: dbDelete, key: prefixedKey})
}

// Commit - write all pending changes and reset the batch
func (b *Batch) Commit() error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return fault.ErrNotInitialised
	}

	err := poolData.database.Write(b.batch, nil)
	if nil != err {
		return err
	}

	for _, e := range b.written {
		poolData.cache.Set(e.op, e.key, e.value)
	}

	b.batch.Reset()
	b.written = nil
	return nil
}
