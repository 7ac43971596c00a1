// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	"github.com/bitmark-inc/logger"
)

// rows deleted per batch
const pruneBatchSize = 1000

// Prune - delete every expired row, returning the number removed
//
// hints are kept since they never expire, rows that cannot be
// unstamped are logged and left in place
func Prune() (int, error) {
	if !initialised() {
		return 0, nil
	}

	log := storageLog()
	total := 0
	for _, p := range []*PoolHandle{
		Pool.Messages,
		Pool.Metadata,
		Pool.Transactions,
		Pool.Addresses,
		Pool.Indexes,
		Pool.Parents,
		Pool.Milestones,
	} {
		expired := [][]byte{}
		err := p.Scan(nil, func(key []byte, value []byte) error {
			_, live, err := unstamp(value)
			if nil != err {
				log.Warnf("prune: %s: key: %x  error: %s", p.Table(), key, err)
				return nil
			}
			if !live {
				expired = append(expired, key)
			}
			return nil
		})
		if nil != err {
			return total, err
		}

		b := NewBatch()
		for _, key := range expired {
			b.remove(p, key)
			if b.Len() >= pruneBatchSize {
				n := b.Len()
				if err := b.Commit(); nil != err {
					return total, err
				}
				total += n
			}
		}
		n := b.Len()
		if err := b.Commit(); nil != err {
			return total, err
		}
		total += n
	}
	return total, nil
}

// Expirer - background process that prunes expired rows
type Expirer struct {
	Log      *logger.L
	Interval time.Duration
}

// Run - prune on every interval until shutdown
func (e *Expirer) Run(args interface{}, shutdown <-chan struct{}) {
	e.Log.Info("starting…")

	ticker := time.NewTicker(e.Interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			n, err := Prune()
			if nil != err {
				e.Log.Errorf("prune error: %s", err)
				continue loop
			}
			if n > 0 {
				e.Log.Infof("pruned: %d expired rows", n)
			}
		}
	}

	e.Log.Info("shutting down…")
}
