// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/ledgerstate"
	"github.com/bitmark-inc/permanode/record"
	"github.com/bitmark-inc/permanode/util"
)

// InsertMessage - store a message together with every index row it produces
//
// metadata may be nil; when present and referenced by a milestone that
// milestone anchors the index partitions and supplies the inclusion state
func InsertMessage(id ledger.MessageId, message *ledger.Message, metadata *ledger.MessageMetadata, ttl uint32) error {
	if !initialised() {
		return fault.ErrNotInitialised
	}
	if nil == message {
		return fault.ErrNoMessageData
	}
	packed, err := message.Pack()
	if nil != err {
		return err
	}

	b := NewBatch()

	value, err := stamp(rawRow(packed), ttl)
	if nil != err {
		return err
	}
	b.put(Pool.Messages, id[:], value)

	milestone := ledger.MilestoneIndex(0)
	var state *record.LedgerInclusionState
	if nil != metadata {
		if err := putMetadata(b, id, metadata, ttl); nil != err {
			return err
		}
		view, err := ledgerstate.ResolveMetadata(id, message, metadata)
		if nil != err {
			return err
		}
		if nil != view.ReferencedByMilestoneIndex {
			milestone = *view.ReferencedByMilestoneIndex
		}
		state = view.LedgerInclusionState
	}

	for _, parent := range message.Parents {
		row := record.ParentRecord{
			MilestoneIndex:       milestone,
			MessageId:            id,
			LedgerInclusionState: state,
		}
		err := putPartitioned(b, Pool.Parents, record.NewHint(parent), milestone, id[:], row, ttl)
		if nil != err {
			return err
		}
	}

	var indexation *ledger.IndexationPayload
	switch payload := message.Payload.(type) {
	case *ledger.IndexationPayload:
		indexation = payload
	case *ledger.TransactionPayload:
		indexation = payload.Indexation
		if err := putTransaction(b, id, payload, milestone, state, ttl); nil != err {
			return err
		}
	}

	if nil != indexation {
		row := record.HashedIndexRecord{
			MilestoneIndex:       milestone,
			MessageId:            id,
			LedgerInclusionState: state,
		}
		err := putPartitioned(b, Pool.Indexes, record.NewHint(indexation.HashedIndex()), milestone, id[:], row, ttl)
		if nil != err {
			return err
		}
	}

	return b.Commit()
}

// InsertMetadata - store or replace the metadata of a message
func InsertMetadata(id ledger.MessageId, metadata *ledger.MessageMetadata, ttl uint32) error {
	if !initialised() {
		return fault.ErrNotInitialised
	}
	if nil == metadata {
		return fault.ErrNoMetadata
	}
	b := NewBatch()
	if err := putMetadata(b, id, metadata, ttl); nil != err {
		return err
	}
	return b.Commit()
}

// InsertMilestone - store the message carrying a milestone
func InsertMilestone(index ledger.MilestoneIndex, milestone record.MilestoneRecord, ttl uint32) error {
	if !initialised() {
		return fault.ErrNotInitialised
	}
	value, err := stamp(milestone, ttl)
	if nil != err {
		return err
	}
	b := NewBatch()
	b.put(Pool.Milestones, index.Bytes(), value)
	return b.Commit()
}

// InsertAddressRecord - store a single address row and its hint
func InsertAddressRecord(address ledger.Ed25519Address, row record.AddressRecord, ttl uint32) error {
	outputId := row.OutputId()
	return insertPartitioned(Pool.Addresses, record.NewHint(address), row.MilestoneIndex, outputId[:], row, ttl)
}

// InsertIndexRecord - store a single indexation row and its hint
func InsertIndexRecord(index ledger.HashedIndex, row record.HashedIndexRecord, ttl uint32) error {
	return insertPartitioned(Pool.Indexes, record.NewHint(index), row.MilestoneIndex, row.MessageId[:], row, ttl)
}

// InsertParentRecord - store a single child row under its parent
func InsertParentRecord(parent ledger.MessageId, row record.ParentRecord, ttl uint32) error {
	return insertPartitioned(Pool.Parents, record.NewHint(parent), row.MilestoneIndex, row.MessageId[:], row, ttl)
}

// InsertTransactionRecord - store a single input, output or unlock row
func InsertTransactionRecord(outputId ledger.OutputId, row record.TransactionRecord, ttl uint32) error {
	if !initialised() {
		return fault.ErrNotInitialised
	}
	b := NewBatch()
	if err := putTransactionRecord(b, outputId, row, ttl); nil != err {
		return err
	}
	return b.Commit()
}

func insertPartitioned[H record.HintVariant, T record.Packer](p *PoolHandle, hint record.Hint[H], milestone ledger.MilestoneIndex, suffix []byte, row T, ttl uint32) error {
	if !initialised() {
		return fault.ErrNotInitialised
	}
	b := NewBatch()
	if err := putPartitioned(b, p, hint, milestone, suffix, row, ttl); nil != err {
		return err
	}
	return b.Commit()
}

func putMetadata(b *Batch, id ledger.MessageId, metadata *ledger.MessageMetadata, ttl uint32) error {
	value, err := stamp(metadata, ttl)
	if nil != err {
		return err
	}
	b.put(Pool.Metadata, id[:], value)
	return nil
}

// one row per input, output and unlock; unlock n unlocks input n
func putTransaction(b *Batch, id ledger.MessageId, transaction *ledger.TransactionPayload, milestone ledger.MilestoneIndex, state *record.LedgerInclusionState, ttl uint32) error {
	for _, input := range transaction.Inputs {
		err := putTransactionRecord(b, input.OutputId, record.NewInputRecord(id, input), ttl)
		if nil != err {
			return err
		}
	}

	transactionId := transaction.Id()
	for i, output := range transaction.Outputs {
		outputId := ledger.NewOutputId(transactionId, uint16(i))
		err := putTransactionRecord(b, outputId, record.NewOutputRecord(id, output), ttl)
		if nil != err {
			return err
		}

		row := record.AddressRecord{
			MilestoneIndex:       milestone,
			TransactionId:        transactionId,
			Index:                uint16(i),
			Amount:               output.Amount,
			AddressType:          output.AddressType,
			LedgerInclusionState: state,
		}
		err = putPartitioned(b, Pool.Addresses, record.NewHint(output.Address), milestone, outputId[:], row, ttl)
		if nil != err {
			return err
		}
	}

	for i, unlock := range transaction.Unlocks {
		if i >= len(transaction.Inputs) {
			break
		}
		err := putTransactionRecord(b, transaction.Inputs[i].OutputId, record.NewUnlockRecord(id, unlock), ttl)
		if nil != err {
			return err
		}
	}
	return nil
}

func putTransactionRecord(b *Batch, outputId ledger.OutputId, row record.TransactionRecord, ttl uint32) error {
	value, err := stamp(row, ttl)
	if nil != err {
		return err
	}
	key := make([]byte, 0, len(outputId)+1+len(row.MessageId))
	key = append(key, outputId[:]...)
	key = util.AppendUint8(key, uint8(row.Variant))
	key = append(key, row.MessageId[:]...)
	b.put(Pool.Transactions, key, value)
	return nil
}

// write a row into the partition of its key and record the partition
// under the hint; hints never expire
func putPartitioned[H record.HintVariant, T record.Packer](b *Batch, p *PoolHandle, hint record.Hint[H], milestone ledger.MilestoneIndex, suffix []byte, row T, ttl uint32) error {
	naturalKey := hint.HintBytes()
	partition := Partitioner().Partition(naturalKey, milestone)

	value, err := stamp(record.NewPartitioned(row, partition.Id), ttl)
	if nil != err {
		return err
	}
	b.put(p, partitionKey(naturalKey, partition, milestone, suffix), value)

	hintValue, err := stamp(partition, 0)
	if nil != err {
		return err
	}
	b.put(Pool.Hints, partition.Pack(hint.Pack(nil)), hintValue)
	return nil
}

// natural key ++ partition ++ milestone ++ suffix
func partitionKey(naturalKey []byte, partition record.Partition, milestone ledger.MilestoneIndex, suffix []byte) []byte {
	key := make([]byte, 0, len(naturalKey)+6+4+len(suffix))
	key = append(key, naturalKey...)
	key = partition.Pack(key)
	key = util.AppendUint32(key, uint32(milestone))
	return append(key, suffix...)
}
