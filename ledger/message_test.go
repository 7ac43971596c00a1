// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/util"
)

func TestTransactionMessage(t *testing.T) {
	m := makeTransactionMessage()

	packed, err := m.Pack()
	assert.Nil(t, err, "pack error")

	unpacked, err := ledger.MessageFromBytes(packed)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, m, unpacked, "message differs")
	assert.NotNil(t, unpacked.Transaction(), "expected transaction payload")
}

func TestOtherPayloads(t *testing.T) {
	messages := []*ledger.Message{
		{
			NetworkId: 1,
			Parents:   []ledger.MessageId{makeMessageId(7)},
			Payload:   &ledger.MilestonePayload{Index: 100, Timestamp: 1609459200},
			Nonce:     2,
		},
		{
			NetworkId: 1,
			Parents:   []ledger.MessageId{makeMessageId(8)},
			Payload:   &ledger.IndexationPayload{Index: []byte("idx"), Data: []byte{}},
			Nonce:     3,
		},
		{
			NetworkId: 1,
			Parents:   []ledger.MessageId{makeMessageId(9), makeMessageId(10), makeMessageId(11)},
			Nonce:     4,
		},
	}

	for i, m := range messages {
		packed, err := m.Pack()
		assert.Nil(t, err, "%d: pack error", i)

		unpacked, err := ledger.MessageFromBytes(packed)
		assert.Nil(t, err, "%d: unpack error", i)
		assert.Equal(t, m, unpacked, "%d: message differs", i)
		assert.Nil(t, unpacked.Transaction(), "%d: unexpected transaction", i)
	}
}

func TestParentLimits(t *testing.T) {
	m := &ledger.Message{}
	_, err := m.Pack()
	assert.Equal(t, fault.ErrTooManyParents, err, "no parents accepted")

	m.Parents = make([]ledger.MessageId, ledger.MaxParents+1)
	_, err = m.Pack()
	assert.Equal(t, fault.ErrTooManyParents, err, "too many parents accepted")
}

func TestMalformedMessage(t *testing.T) {
	packed, err := makeTransactionMessage().Pack()
	assert.Nil(t, err, "pack error")

	for _, n := range []int{0, 8, 9, 40, len(packed) - 1} {
		_, err := ledger.MessageFromBytes(packed[:n])
		assert.True(t, fault.IsErrRecord(err), "truncated at %d: expected malformed row, got: %v", n, err)
	}

	unknown := util.AppendUint64(nil, 1)
	unknown = util.AppendUint8(unknown, 1)
	unknown = append(unknown, make([]byte, ledger.MessageIdLength)...)
	unknown = util.AppendUint32(unknown, 4)
	unknown = util.AppendUint32(unknown, 99)
	unknown = util.AppendUint64(unknown, 0)
	_, err = ledger.MessageFromBytes(unknown)
	assert.True(t, fault.IsErrRecord(err), "unknown payload accepted: %v", err)
}

func TestMetadata(t *testing.T) {
	index := ledger.MilestoneIndex(100)
	items := []*ledger.MessageMetadata{
		{
			Flags:                   ledger.FlagSolid | ledger.FlagReferenced,
			MilestoneIndex:          &index,
			ArrivalTimestamp:        1,
			SolidificationTimestamp: 2,
			ConfirmationTimestamp:   3,
			Conflict:                ledger.ConflictInputNotFound,
		},
		{
			Flags: ledger.FlagRequested,
		},
	}

	for i, m := range items {
		packed := m.Pack(nil)
		unpacked := ledger.UnpackMessageMetadata(util.NewUnpacker(packed))
		assert.Equal(t, m, unpacked, "%d: metadata differs", i)
	}

	f := ledger.FlagMilestone | ledger.FlagValid
	assert.True(t, f.IsMilestone())
	assert.True(t, f.IsValid())
	assert.False(t, f.IsSolid())
	assert.False(t, f.IsReferenced())
	assert.False(t, f.IsRequested())
}
