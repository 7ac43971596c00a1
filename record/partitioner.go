// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/cespare/xxhash/v2"

	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
)

// default partitioning
const (
	DefaultPartitionCount = uint16(256)
	DefaultChunkSize      = uint32(60480)
)

// Partitioner - maps an index key and milestone onto a partition
//
// the id depends only on the key; the milestone is anchored to the
// start of its chunk so that a key moves to a new partition row once
// per chunk rather than once per milestone
//
// a zero Count puts every key in partition 0 and a zero ChunkSize
// anchors every milestone at 0, so the zero value stores everything
// in a single partition
type Partitioner struct {
	Count     uint16 `json:"count"`
	ChunkSize uint32 `json:"chunk_size"`
}

// NewPartitioner - both sizes must be non-zero
func NewPartitioner(count uint16, chunkSize uint32) (Partitioner, error) {
	if 0 == count || 0 == chunkSize {
		return Partitioner{}, fault.ErrInvalidPartitionSize
	}
	return Partitioner{
		Count:     count,
		ChunkSize: chunkSize,
	}, nil
}

// Id - partition id for a key
func (p Partitioner) Id(key []byte) uint16 {
	if 0 == p.Count {
		return 0
	}
	return uint16(xxhash.Sum64(key) % uint64(p.Count))
}

// Anchor - first milestone of the chunk containing milestone
func (p Partitioner) Anchor(milestone ledger.MilestoneIndex) ledger.MilestoneIndex {
	if 0 == p.ChunkSize {
		return 0
	}
	return milestone - milestone%ledger.MilestoneIndex(p.ChunkSize)
}

// Partition - where a key at a given milestone is stored
func (p Partitioner) Partition(key []byte, milestone ledger.MilestoneIndex) Partition {
	return Partition{
		Id:             p.Id(key),
		MilestoneIndex: p.Anchor(milestone),
	}
}

// Partitions - every partition of key covering [from, to], newest first
func (p Partitioner) Partitions(key []byte, from ledger.MilestoneIndex, to ledger.MilestoneIndex) []Partition {
	if from > to {
		return nil
	}
	id := p.Id(key)
	if 0 == p.ChunkSize {
		return []Partition{{Id: id, MilestoneIndex: 0}}
	}
	first := p.Anchor(from)
	result := make([]Partition, 0, int((to-first)/ledger.MilestoneIndex(p.ChunkSize))+1)
	for m := p.Anchor(to); ; m -= ledger.MilestoneIndex(p.ChunkSize) {
		result = append(result, Partition{Id: id, MilestoneIndex: m})
		if m <= first {
			break
		}
	}
	return result
}

// Check - confirm a stored partition belongs to key
func (p Partitioner) Check(key []byte, partition Partition) error {
	if partition.Id != p.Id(key) || partition.MilestoneIndex != p.Anchor(partition.MilestoneIndex) {
		return fault.ErrInvalidPartition
	}
	return nil
}
