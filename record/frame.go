// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/util"
)

// PackRows - the result payload of a select: i32 count ++ (i32 length ++ row)*
func PackRows(rows [][]byte) []byte {
	size := 4
	for _, row := range rows {
		size += 4 + len(row)
	}
	buffer := make([]byte, 0, size)
	buffer = util.AppendInt32(buffer, int32(len(rows)))
	for _, row := range rows {
		buffer = util.AppendBytes(buffer, row)
	}
	return buffer
}

// RowIterator - walks the rows of a result payload
type RowIterator struct {
	u     *util.Unpacker
	count int
	read  int
}

// NewRowIterator - parse the row count header
func NewRowIterator(payload []byte) (*RowIterator, error) {
	u := util.NewUnpacker(payload)
	count := u.Int32()
	if err := u.Err(); nil != err {
		return nil, err
	}
	if count < 0 {
		return nil, errors.Wrapf(fault.ErrMalformedRow, "row count: %d", count)
	}
	return &RowIterator{
		u:     u,
		count: int(count),
	}, nil
}

// Count - number of rows in the payload
func (it *RowIterator) Count() int {
	return it.count
}

// Next - the next row, nil after the last one
func (it *RowIterator) Next() ([]byte, error) {
	if it.read >= it.count {
		return nil, nil
	}
	row := it.u.Bytes()
	if err := it.u.Err(); nil != err {
		return nil, err
	}
	it.read += 1
	return row, nil
}

// DecodeRow - first row of a payload, ok is false when there are no rows
func DecodeRow[T any](payload []byte, unpack UnpackFunc[T]) (Record[T], bool, error) {
	it, err := NewRowIterator(payload)
	if nil != err {
		return Record[T]{}, false, err
	}
	if 0 == it.Count() {
		return Record[T]{}, false, nil
	}
	row, err := it.Next()
	if nil != err {
		return Record[T]{}, false, err
	}
	r, err := UnpackRecord(row, unpack)
	if nil != err {
		return Record[T]{}, false, err
	}
	return r, true, nil
}

// DecodeRows - every row of a payload, ok is false when there are no rows
func DecodeRows[T any](payload []byte, unpack UnpackFunc[T]) ([]T, bool, error) {
	it, err := NewRowIterator(payload)
	if nil != err {
		return nil, false, err
	}
	if 0 == it.Count() {
		return nil, false, nil
	}
	result := make([]T, 0, it.Count())
	for i := 0; i < it.Count(); i += 1 {
		row, err := it.Next()
		if nil != err {
			return nil, false, err
		}
		r, err := UnpackRecord(row, unpack)
		if nil != err {
			return nil, false, err
		}
		result = append(result, r.Get())
	}
	return result, true, nil
}
