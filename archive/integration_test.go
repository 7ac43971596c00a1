// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package archive_test

import (
	"context"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/permanode/archive"
	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/fixtures"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/record"
	"github.com/bitmark-inc/permanode/ring"
	"github.com/bitmark-inc/permanode/storage"
)

const databaseFileName = "archive.leveldb"

func TestArchiveOverRing(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	os.RemoveAll(databaseFileName)
	defer os.RemoveAll(databaseFileName)

	partitioner := record.Partitioner{Count: 4, ChunkSize: 10}
	err := storage.Initialise(databaseFileName, storage.ReadWrite, partitioner)
	assert.Nil(t, err, "storage")
	defer storage.Finalise()

	spent := ledger.NewOutputId(fixtures.Id(0x30), 0)
	to1 := ledger.Ed25519Address(fixtures.Id(0x40))
	to2 := ledger.Ed25519Address(fixtures.Id(0x50))
	message := fixtures.TransactionMessage(spent, to1, to2)
	id, err := message.Id()
	assert.Nil(t, err, "message id")

	err = storage.InsertMessage(id, message, fixtures.ReferencedMetadata(13, ledger.ConflictNone), 0)
	assert.Nil(t, err, "insert message")
	err = storage.InsertMilestone(13, record.MilestoneRecord{MessageId: id, Timestamp: 1609459260}, 0)
	assert.Nil(t, err, "insert milestone")

	log := logger.New(fixtures.LogCategory)
	r, err := ring.New(ring.Configuration{Shards: 2, QueueSize: 16}, storage.Executor{Log: log})
	assert.Nil(t, err, "ring")
	r.Start()
	defer r.Stop()

	a := archive.New(log, archive.Configuration{Concurrency: 2}, r)
	ctx := context.Background()

	stored, err := a.Message(ctx, id)
	assert.Nil(t, err, "message")
	assert.Equal(t, message.Parents, stored.Parents, "parents")
	assert.Equal(t, message.Nonce, stored.Nonce, "nonce")

	metadata, err := a.MessageMetadata(ctx, id)
	assert.Nil(t, err, "metadata")
	assert.Equal(t, ledger.MilestoneIndex(13), *metadata.ReferencedByMilestoneIndex, "referenced")
	assert.Equal(t, record.Included, *metadata.LedgerInclusionState, "inclusion")

	children, err := a.MessageChildren(ctx, fixtures.Id(0x10))
	assert.Nil(t, err, "children")
	assert.Equal(t, []ledger.MessageId{id}, children.Items, "children items")

	indexed, err := a.MessagesForIndex(ctx, []byte("permanode"))
	assert.Nil(t, err, "index")
	assert.Equal(t, []ledger.MessageId{id}, indexed.Items, "index items")

	transactionId := message.Transaction().Id()
	outputs, err := a.OutputsForAddress(ctx, to1)
	assert.Nil(t, err, "outputs")
	assert.Equal(t, []ledger.OutputId{ledger.NewOutputId(transactionId, 0)}, outputs.Items, "output ids")

	balance, err := a.Balance(ctx, to2)
	assert.Nil(t, err, "balance")
	assert.Equal(t, uint64(42), balance.Balance, "amount")
	assert.Equal(t, 1, len(balance.Outputs), "unspent outputs")
	assert.Equal(t, 1, balance.Count, "balance count")

	unspent, err := a.UnspentOutputs(ctx, to1)
	assert.Nil(t, err, "unspent")
	assert.Equal(t, 1, unspent.Count, "listed count")
	assert.Equal(t, 1, len(unspent.Items), "unspent count")
	assert.Equal(t, uint64(1000000), unspent.Items[0].Output.Amount, "unspent amount")
	assert.Equal(t, id, unspent.Items[0].MessageId, "unspent message")

	// only the unlock of the spent output is known
	_, err = a.Output(ctx, spent)
	assert.Equal(t, fault.ErrOutputNotFound, errors.Cause(err), "spent output")

	milestone, err := a.Milestone(ctx, 13)
	assert.Nil(t, err, "milestone")
	assert.Equal(t, id, milestone.MessageId, "milestone message")

	latest, err := a.LatestMilestone(ctx)
	assert.Nil(t, err, "latest")
	assert.Equal(t, uint64(1609459260), latest.Timestamp, "latest timestamp")

	partitions, err := archive.Partitions(ctx, a, record.NewHint(to1))
	assert.Nil(t, err, "partitions")
	assert.Equal(t, []record.Partition{partitioner.Partition(to1[:], 13)}, partitions, "address partitions")

	partitions, err = archive.Partitions(ctx, a, record.NewHint(ledger.Ed25519Address(fixtures.Id(0x60))))
	assert.Nil(t, err, "no partitions")
	assert.Equal(t, []record.Partition{}, partitions, "empty partitions")
}
