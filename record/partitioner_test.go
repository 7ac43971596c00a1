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

func TestNewPartitioner(t *testing.T) {
	_, err := record.NewPartitioner(0, 10)
	assert.Equal(t, fault.ErrInvalidPartitionSize, err, "zero count")

	_, err = record.NewPartitioner(10, 0)
	assert.Equal(t, fault.ErrInvalidPartitionSize, err, "zero chunk")

	p, err := record.NewPartitioner(16, 100)
	assert.Nil(t, err, "valid")
	assert.Equal(t, uint16(16), p.Count, "count")
}

func TestPartitionDeterminism(t *testing.T) {
	p, _ := record.NewPartitioner(16, 100)
	key := []byte("some key")

	a := p.Partition(key, 250)
	b := p.Partition(key, 299)
	c := p.Partition(key, 300)

	assert.Equal(t, a, b, "same chunk")
	assert.Equal(t, ledger.MilestoneIndex(200), a.MilestoneIndex, "anchor")
	assert.Equal(t, a.Id, c.Id, "id depends only on key")
	assert.Equal(t, ledger.MilestoneIndex(300), c.MilestoneIndex, "next chunk")
	assert.True(t, a.Id < 16, "id in range")

	assert.Nil(t, p.Check(key, a), "check")
	assert.Equal(t, fault.ErrInvalidPartition, p.Check(key, record.Partition{Id: a.Id, MilestoneIndex: 250}), "unaligned")
	assert.Equal(t, fault.ErrInvalidPartition, p.Check(key, record.Partition{Id: (a.Id + 1) % 16, MilestoneIndex: 200}), "wrong id")
}

func TestPartitionRange(t *testing.T) {
	p, _ := record.NewPartitioner(4, 100)
	key := []byte("range")
	id := p.Id(key)

	expected := []record.Partition{
		{Id: id, MilestoneIndex: 300},
		{Id: id, MilestoneIndex: 200},
		{Id: id, MilestoneIndex: 100},
	}
	assert.Equal(t, expected, p.Partitions(key, 150, 301), "newest first")
	assert.Equal(t, []record.Partition{{Id: id, MilestoneIndex: 0}}, p.Partitions(key, 0, 99), "single")
	assert.Nil(t, p.Partitions(key, 10, 5), "empty range")
}

func TestPartitionersAgree(t *testing.T) {
	constructed, err := record.NewPartitioner(32, 500)
	assert.Nil(t, err, "constructed")
	literal := record.Partitioner{Count: 32, ChunkSize: 500}

	for i, key := range []string{"alpha", "beta", "gamma", "", "a much longer key than the others"} {
		for _, m := range []ledger.MilestoneIndex{0, 499, 500, 123456} {
			assert.Equal(t, constructed.Partition([]byte(key), m), literal.Partition([]byte(key), m), "%d: key: %q  milestone: %d", i, key, m)
		}
	}
	assert.Equal(t, constructed.Partitions([]byte("alpha"), 100, 2100), literal.Partitions([]byte("alpha"), 100, 2100), "ranges")
}

func TestZeroPartitioner(t *testing.T) {
	p := record.Partitioner{}
	key := []byte("zero")

	assert.Equal(t, uint16(0), p.Id(key), "id")
	assert.Equal(t, ledger.MilestoneIndex(0), p.Anchor(12345), "anchor")
	assert.Equal(t, record.Partition{Id: 0, MilestoneIndex: 0}, p.Partition(key, 777), "partition")
	assert.Equal(t, []record.Partition{{Id: 0, MilestoneIndex: 0}}, p.Partitions(key, 5, 5000), "single partition")
	assert.Nil(t, p.Check(key, record.Partition{}), "check")
}
