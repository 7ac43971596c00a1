// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/record"
)

func TestAddressRecord(t *testing.T) {
	included := record.Included
	items := []record.AddressRecord{
		{
			MilestoneIndex: 10,
			TransactionId:  makeTransactionId(1),
			Index:          2,
			Amount:         1000000,
			AddressType:    ledger.Ed25519AddressType,
		},
		{
			MilestoneIndex:       11,
			TransactionId:        makeTransactionId(3),
			Index:                0,
			Amount:               1,
			AddressType:          ledger.Ed25519AddressType,
			LedgerInclusionState: &included,
		},
	}

	for i, item := range items {
		r, err := record.UnpackRecord(item.Pack(nil), record.UnpackAddressRecord)
		assert.Nil(t, err, "%d: unpack error", i)
		assert.Equal(t, item, r.Get(), "%d: record differs", i)
	}
	assert.Equal(t, ledger.NewOutputId(makeTransactionId(1), 2), items[0].OutputId(), "output id")
}

func TestInclusionStateOutOfRange(t *testing.T) {
	item := record.ParentRecord{MilestoneIndex: 5, MessageId: makeMessageId(1)}
	packed := item.Pack(nil)
	packed[len(packed)-1] = 1
	packed = append(packed, 0, 0, 0, 9)

	_, err := record.UnpackRecord(packed, record.UnpackParentRecord)
	assert.ErrorIs(t, err, fault.ErrMalformedRow)
}

func TestInclusionStateText(t *testing.T) {
	assert.Equal(t, "noTransaction", record.NoTransaction.String())
	assert.Equal(t, "included", record.Included.String())
	assert.Equal(t, "conflicting", record.Conflicting.String())
}

func TestIndexAndParentRecords(t *testing.T) {
	conflicting := record.Conflicting
	index := record.HashedIndexRecord{MilestoneIndex: 7, MessageId: makeMessageId(9), LedgerInclusionState: &conflicting}
	parent := record.ParentRecord{MilestoneIndex: 8, MessageId: makeMessageId(10)}

	r1, err := record.UnpackRecord(index.Pack(nil), record.UnpackHashedIndexRecord)
	assert.Nil(t, err, "index unpack error")
	assert.Equal(t, index, r1.Get(), "index record")

	r2, err := record.UnpackRecord(parent.Pack(nil), record.UnpackParentRecord)
	assert.Nil(t, err, "parent unpack error")
	assert.Equal(t, parent, r2.Get(), "parent record")
}

func TestMessageRow(t *testing.T) {
	m := &ledger.Message{
		NetworkId: 3,
		Parents:   []ledger.MessageId{makeMessageId(1)},
		Payload:   &ledger.MilestonePayload{Index: 4, Timestamp: 5},
		Nonce:     6,
	}
	packedMessage, err := m.Pack()
	assert.Nil(t, err, "pack message")

	index := ledger.MilestoneIndex(4)
	metadata := &ledger.MessageMetadata{
		Flags:            ledger.FlagSolid | ledger.FlagReferenced,
		MilestoneIndex:   &index,
		ArrivalTimestamp: 99,
	}

	id := makeMessageId(20)

	full, err := record.UnpackRecord(record.PackMessageRow(nil, id, packedMessage, metadata.Pack(nil)), record.UnpackMessageRow)
	assert.Nil(t, err, "full row")
	assert.Equal(t, record.MessageRow{Id: id, Message: m, Metadata: metadata}, full.Get(), "full row")

	bare, err := record.UnpackRecord(record.PackMessageRow(nil, id, nil, nil), record.UnpackMessageRow)
	assert.Nil(t, err, "bare row")
	assert.Equal(t, record.MessageRow{Id: id}, bare.Get(), "bare row")

	metaOnly, err := record.UnpackRecord(record.PackMessageRow(nil, id, nil, metadata.Pack(nil)), record.UnpackMessageRow)
	assert.Nil(t, err, "metadata row")
	assert.Nil(t, metaOnly.Get().Message, "message present")
	assert.Equal(t, metadata, metaOnly.Get().Metadata, "metadata row")
}

func TestMilestoneRecord(t *testing.T) {
	item := record.MilestoneRecord{MessageId: makeMessageId(30), Timestamp: 1609459200}
	r, err := record.UnpackRecord(item.Pack(nil), record.UnpackMilestoneRecord)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, item, r.Get(), "milestone differs")
}
