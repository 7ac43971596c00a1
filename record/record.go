// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/permanode/util"
)

// Packer - anything with a binary row form
type Packer interface {
	Pack(buffer []byte) []byte
}

// UnpackFunc - reads one T from the cursor, reporting failure through it
type UnpackFunc[T any] func(u *util.Unpacker) T

// Record - a value produced by a successful decode
//
// the caller owns the value; there is no other way to create one
type Record[T any] struct {
	inner T
}

// Get - the decoded value
func (r Record[T]) Get() T {
	return r.inner
}

// UnpackRecord - decode a single value from a row
func UnpackRecord[T any](row []byte, unpack UnpackFunc[T]) (Record[T], error) {
	u := util.NewUnpacker(row)
	inner := unpack(u)
	if err := u.Err(); nil != err {
		return Record[T]{}, err
	}
	return Record[T]{inner: inner}, nil
}
