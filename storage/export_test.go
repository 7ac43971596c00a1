// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"
)

// SetClock - replace the expiry clock, returning a restore function
func SetClock(clock func() time.Time) func() {
	saved := now
	now = clock
	return func() {
		now = saved
	}
}

// PutRaw - store a value without a stamp
func PutRaw(p *PoolHandle, key []byte, value []byte) error {
	b := NewBatch()
	b.put(p, key, value)
	return b.Commit()
}
