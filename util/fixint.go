// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/permanode/fault"
)

// all integers are fixed width big endian, the same layout as the
// rows written by every other archive component
//
// length prefixes are a signed 32 bit count followed by the data

// AppendUint8 - append a single byte
func AppendUint8(buffer []byte, value uint8) []byte {
	return append(buffer, value)
}

// AppendUint16 - append 2 bytes big endian
func AppendUint16(buffer []byte, value uint16) []byte {
	return binary.BigEndian.AppendUint16(buffer, value)
}

// AppendUint32 - append 4 bytes big endian
func AppendUint32(buffer []byte, value uint32) []byte {
	return binary.BigEndian.AppendUint32(buffer, value)
}

// AppendUint64 - append 8 bytes big endian
func AppendUint64(buffer []byte, value uint64) []byte {
	return binary.BigEndian.AppendUint64(buffer, value)
}

// AppendInt32 - append 4 bytes big endian two's complement
func AppendInt32(buffer []byte, value int32) []byte {
	return binary.BigEndian.AppendUint32(buffer, uint32(value))
}

// AppendBytes - append Int32(length) ++ data
func AppendBytes(buffer []byte, data []byte) []byte {
	if len(data) > math.MaxInt32 {
		panic("util.AppendBytes: data too long")
	}
	buffer = AppendInt32(buffer, int32(len(data)))
	return append(buffer, data...)
}

// AppendString - append Int32(length) ++ UTF-8 bytes
func AppendString(buffer []byte, s string) []byte {
	if len(s) > math.MaxInt32 {
		panic("util.AppendString: string too long")
	}
	buffer = AppendInt32(buffer, int32(len(s)))
	return append(buffer, s...)
}

// Unpacker - sequential reader over a packed buffer
//
// the first failure is sticky: later reads return zero values and
// Err reports the first failure.  Bytes remaining after the last
// read are never an error.
type Unpacker struct {
	buffer []byte
	n      int
	err    error
}

// NewUnpacker - start reading at the beginning of buffer
func NewUnpacker(buffer []byte) *Unpacker {
	return &Unpacker{
		buffer: buffer,
	}
}

// Err - first error encountered
func (u *Unpacker) Err() error {
	return u.err
}

// Offset - number of bytes consumed so far
func (u *Unpacker) Offset() int {
	return u.n
}

// Remaining - count of unread bytes
func (u *Unpacker) Remaining() int {
	return len(u.buffer) - u.n
}

// Fail - record an error found by a caller while decoding
func (u *Unpacker) Fail(err error) {
	if nil == u.err {
		u.err = err
	}
}

// take the next count bytes; the result aliases the buffer
func (u *Unpacker) next(count int) []byte {
	if nil != u.err {
		return nil
	}
	if count < 0 || count > len(u.buffer)-u.n {
		u.err = errors.Wrapf(fault.ErrMalformedRow, "offset: %d  need: %d  have: %d", u.n, count, len(u.buffer)-u.n)
		return nil
	}
	b := u.buffer[u.n : u.n+count]
	u.n += count
	return b
}

// Uint8 - read one byte
func (u *Unpacker) Uint8() uint8 {
	b := u.next(1)
	if nil == b {
		return 0
	}
	return b[0]
}

// Uint16 - read 2 bytes big endian
func (u *Unpacker) Uint16() uint16 {
	b := u.next(2)
	if nil == b {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// Uint32 - read 4 bytes big endian
func (u *Unpacker) Uint32() uint32 {
	b := u.next(4)
	if nil == b {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// Uint64 - read 8 bytes big endian
func (u *Unpacker) Uint64() uint64 {
	b := u.next(8)
	if nil == b {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// Int32 - read 4 bytes big endian two's complement
func (u *Unpacker) Int32() int32 {
	return int32(u.Uint32())
}

// Fixed - copy of the next count bytes
func (u *Unpacker) Fixed(count int) []byte {
	b := u.next(count)
	if nil == b {
		return nil
	}
	result := make([]byte, count)
	copy(result, b)
	return result
}

// FixedInto - fill destination from the next len(destination) bytes
func (u *Unpacker) FixedInto(destination []byte) {
	b := u.next(len(destination))
	if nil != b {
		copy(destination, b)
	}
}

// Bytes - read Int32(length) ++ data, returning a copy of data
func (u *Unpacker) Bytes() []byte {
	length := u.Int32()
	if nil != u.err {
		return nil
	}
	if length < 0 {
		u.err = errors.Wrapf(fault.ErrMalformedRow, "offset: %d  negative length: %d", u.n-4, length)
		return nil
	}
	return u.Fixed(int(length))
}

// String - read Int32(length) ++ UTF-8 bytes
func (u *Unpacker) String() string {
	return string(u.Bytes())
}
