// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/util"
)

func TestFixedWidthLayout(t *testing.T) {
	buffer := util.AppendUint8(nil, 0x7f)
	buffer = util.AppendUint16(buffer, 0x0102)
	buffer = util.AppendUint32(buffer, 0x03040506)
	buffer = util.AppendUint64(buffer, 0x0708090a0b0c0d0e)
	buffer = util.AppendInt32(buffer, -2)

	expected := []byte{
		0x7f,
		0x01, 0x02,
		0x03, 0x04, 0x05, 0x06,
		0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e,
		0xff, 0xff, 0xff, 0xfe,
	}
	assert.Equal(t, expected, buffer, "wrong byte layout")

	u := util.NewUnpacker(buffer)
	assert.Equal(t, uint8(0x7f), u.Uint8())
	assert.Equal(t, uint16(0x0102), u.Uint16())
	assert.Equal(t, uint32(0x03040506), u.Uint32())
	assert.Equal(t, uint64(0x0708090a0b0c0d0e), u.Uint64())
	assert.Equal(t, int32(-2), u.Int32())
	assert.Nil(t, u.Err())
	assert.Equal(t, 0, u.Remaining())
}

func TestStringLayout(t *testing.T) {
	buffer := util.AppendString(nil, "output")
	assert.Equal(t, []byte{0, 0, 0, 6, 'o', 'u', 't', 'p', 'u', 't'}, buffer, "wrong string layout")

	u := util.NewUnpacker(buffer)
	assert.Equal(t, "output", u.String())
	assert.Nil(t, u.Err())
}

func TestTrailingBytesIgnored(t *testing.T) {
	buffer := util.AppendUint32(nil, 42)
	buffer = append(buffer, 0xde, 0xad)

	u := util.NewUnpacker(buffer)
	assert.Equal(t, uint32(42), u.Uint32())
	assert.Nil(t, u.Err())
	assert.Equal(t, 2, u.Remaining())
}

func TestTruncated(t *testing.T) {
	truncated := [][]byte{
		{},
		{0x00},
		{0x00, 0x00, 0x00},
	}
	for i, buffer := range truncated {
		u := util.NewUnpacker(buffer)
		_ = u.Uint32()
		assert.True(t, fault.IsErrRecord(u.Err()), "%d: expected malformed row, got: %v", i, u.Err())

		// sticky
		_ = u.Uint8()
		assert.True(t, fault.IsErrRecord(u.Err()), "%d: error not sticky", i)
	}
}

func TestBadLengthPrefix(t *testing.T) {
	negative := util.AppendInt32(nil, -1)
	u := util.NewUnpacker(negative)
	_ = u.Bytes()
	assert.True(t, fault.IsErrRecord(u.Err()), "negative length accepted")

	short := util.AppendInt32(nil, 10)
	short = append(short, 1, 2, 3)
	u = util.NewUnpacker(short)
	_ = u.Bytes()
	assert.True(t, fault.IsErrRecord(u.Err()), "overlong length accepted")
}
