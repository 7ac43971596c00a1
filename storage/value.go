// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"time"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/record"
	"github.com/bitmark-inc/permanode/util"
)

// clock for expiry, replaced in tests
var now = time.Now

// already packed row data
type rawRow []byte

func (r rawRow) Pack(buffer []byte) []byte {
	return append(buffer, r...)
}

// written ++ row ++ ttl
const stampSize = 8 + 4

// stamp - wrap a row for storage with its write time and ttl
func stamp[T record.Packer](row T, ttl uint32) ([]byte, error) {
	wrapped, err := record.NewTTL(row, ttl)
	if nil != err {
		return nil, err
	}
	buffer := util.AppendUint64(nil, uint64(now().Unix()))
	return wrapped.Pack(buffer), nil
}

// unstamp - the row of a stored value and whether it is still live
func unstamp(value []byte) ([]byte, bool, error) {
	if len(value) < stampSize {
		return nil, false, errors.Wrapf(fault.ErrMalformedRow, "stored value length: %d", len(value))
	}
	written := binary.BigEndian.Uint64(value[:8])
	ttl := binary.BigEndian.Uint32(value[len(value)-4:])
	if ttl > record.MaxTTL {
		return nil, false, errors.Wrapf(fault.ErrMalformedRow, "ttl: %d", ttl)
	}
	live := 0 == ttl || uint64(now().Unix()) < written+uint64(ttl)
	return value[8 : len(value)-4], live, nil
}

// Stamp - the retention header of a stored value
type Stamp struct {
	Written time.Time `json:"written"`
	TTL     uint32    `json:"ttl"`
	Live    bool      `json:"live"`
}

// InspectValue - split a stored value into its row and retention header
func InspectValue(value []byte) ([]byte, Stamp, error) {
	row, live, err := unstamp(value)
	if nil != err {
		return nil, Stamp{}, err
	}
	s := Stamp{
		Written: time.Unix(int64(binary.BigEndian.Uint64(value[:8])), 0).UTC(),
		TTL:     binary.BigEndian.Uint32(value[len(value)-4:]),
		Live:    live,
	}
	return row, s, nil
}
