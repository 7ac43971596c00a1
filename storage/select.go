// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/record"
	"github.com/bitmark-inc/permanode/util"
)

// names of the tables a query can select from
const (
	TableMessages     = "messages"
	TableMetadata     = "metadata"
	TableTransactions = "transactions"
	TableAddresses    = "addresses"
	TableIndexes      = "indexes"
	TableParents      = "parents"
	TableHints        = "hints"
	TableMilestones   = "milestones"
)

// Executor - runs selects against the open database
type Executor struct {
	Log *logger.L
}

// Select - see the package function
func (e Executor) Select(table string, key []byte) ([]byte, error) {
	payload, err := Select(table, key)
	if nil != err && nil != e.Log {
		e.Log.Warnf("select: %s  key: %x  error: %s", table, key, err)
	}
	return payload, err
}

// Select - all live rows for a key as a row set payload
//
//   messages      message id      one message row (message and/or metadata)
//   metadata      message id      one metadata row
//   transactions  output id       every transaction record of the output
//   addresses     address         address records, newest partition first
//   indexes       hashed index    hashed index records, newest partition first
//   parents       message id      parent records, newest partition first
//   hints         packed hint     partitions of the hint key, newest first
//   milestones    milestone       one milestone record, empty key gives the latest
func Select(table string, key []byte) ([]byte, error) {
	if !initialised() {
		return nil, fault.ErrNotInitialised
	}

	var rows [][]byte
	var err error

	switch table {
	case TableMessages:
		rows, err = selectMessage(key)
	case TableMetadata:
		rows, err = selectOne(Pool.Metadata, key, ledger.MessageIdLength)
	case TableTransactions:
		rows, err = selectTransactions(key)
	case TableAddresses:
		rows, err = selectPartitioned(Pool.Addresses, key, record.AddressHint)
	case TableIndexes:
		rows, err = selectPartitioned(Pool.Indexes, key, record.IndexHint)
	case TableParents:
		rows, err = selectPartitioned(Pool.Parents, key, record.ParentHint)
	case TableHints:
		rows, err = selectHints(key)
	case TableMilestones:
		rows, err = selectMilestone(key)
	default:
		return nil, errors.Wrapf(fault.ErrInvalidTable, "%q", table)
	}
	if nil != err {
		return nil, err
	}
	return record.PackRows(rows), nil
}

func checkLength(key []byte, length int) error {
	if length != len(key) {
		return errors.Wrapf(fault.ErrWrongIdLength, "expected: %d  actual: %d", length, len(key))
	}
	return nil
}

// live row of a single key, nil when absent or expired
func getLive(p *PoolHandle, key []byte) ([]byte, error) {
	value, err := p.Get(key)
	if nil != err || nil == value {
		return nil, err
	}
	row, live, err := unstamp(value)
	if nil != err || !live {
		return nil, err
	}
	return row, nil
}

func selectOne(p *PoolHandle, key []byte, length int) ([][]byte, error) {
	if err := checkLength(key, length); nil != err {
		return nil, err
	}
	row, err := getLive(p, key)
	if nil != err || nil == row {
		return nil, err
	}
	return [][]byte{row}, nil
}

func selectMessage(key []byte) ([][]byte, error) {
	id := ledger.MessageId{}
	if err := ledger.MessageIdFromBytes(&id, key); nil != err {
		return nil, err
	}
	message, err := getLive(Pool.Messages, key)
	if nil != err {
		return nil, err
	}
	metadata, err := getLive(Pool.Metadata, key)
	if nil != err {
		return nil, err
	}
	if nil == message && nil == metadata {
		return nil, nil
	}
	return [][]byte{record.PackMessageRow(nil, id, message, metadata)}, nil
}

func selectTransactions(key []byte) ([][]byte, error) {
	if err := checkLength(key, ledger.OutputIdLength); nil != err {
		return nil, err
	}
	rows := [][]byte{}
	err := Pool.Transactions.Scan(key, func(_ []byte, value []byte) error {
		row, live, err := unstamp(value)
		if nil != err {
			return err
		}
		if live {
			rows = append(rows, row)
		}
		return nil
	})
	return rows, err
}

func selectMilestone(key []byte) ([][]byte, error) {
	if 0 != len(key) {
		return selectOne(Pool.Milestones, key, ledger.MilestoneIndexLength)
	}

	// latest milestone still live
	var latest []byte
	var err error
	Pool.Milestones.LastMatching(func(key []byte, value []byte) bool {
		row, live, e := unstamp(value)
		if nil != e {
			err = e
			return true
		}
		if live {
			latest = row
		}
		return live
	})
	if nil != err {
		return nil, err
	}

	rows := [][]byte{}
	if nil != latest {
		rows = append(rows, latest)
	}
	return rows, nil
}

// hint key of a natural key, validating its form
func hintKey[H record.HintVariant](key []byte, fromBytes func([]byte) (H, error)) ([]byte, error) {
	natural, err := fromBytes(key)
	if nil != err {
		return nil, err
	}
	return record.NewHint(natural).Pack(nil), nil
}

// partitions stored for a hint, newest first
func partitionsOf(hint []byte, naturalKey []byte) ([]record.Partition, error) {
	partitioner := Partitioner()
	log := storageLog()
	partitions := []record.Partition{}
	err := Pool.Hints.Scan(hint, func(key []byte, value []byte) error {
		if len(key) != len(hint)+6 {
			return nil // a longer hint sharing this prefix
		}
		row, _, err := unstamp(value)
		if nil != err {
			return err
		}
		p, err := record.UnpackRecord(row, record.UnpackPartition)
		if nil != err {
			return err
		}
		if err := partitioner.Check(naturalKey, p.Get()); nil != err {
			log.Warnf("hint: %x  partition: %+v  error: %s", hint, p.Get(), err)
			return nil
		}
		partitions = append(partitions, p.Get())
		return nil
	})
	if nil != err {
		return nil, err
	}

	// keys ascend by milestone within the single id of the key
	for i, j := 0, len(partitions)-1; i < j; i, j = i+1, j-1 {
		partitions[i], partitions[j] = partitions[j], partitions[i]
	}
	return partitions, nil
}

func selectHints(key []byte) ([][]byte, error) {
	u := util.NewUnpacker(key)
	variant := u.String()
	naturalKey := u.Bytes()
	if err := u.Err(); nil != err {
		return nil, err
	}
	switch variant {
	case "address", "parent", "index":
	default:
		return nil, errors.Wrapf(fault.ErrInvalidHintVariant, "%q", variant)
	}

	partitions, err := partitionsOf(key, naturalKey)
	if nil != err {
		return nil, err
	}
	rows := make([][]byte, 0, len(partitions))
	for _, p := range partitions {
		rows = append(rows, p.Pack(nil))
	}
	return rows, nil
}

// every live row of a key across its partitions, newest first
func selectPartitioned[H record.HintVariant](p *PoolHandle, key []byte, fromBytes func([]byte) (H, error)) ([][]byte, error) {
	hint, err := hintKey(key, fromBytes)
	if nil != err {
		return nil, err
	}
	partitions, err := partitionsOf(hint, key)
	if nil != err {
		return nil, err
	}

	log := storageLog()
	rows := [][]byte{}
	for _, partition := range partitions {
		prefix := partition.Pack(append([]byte{}, key...))

		chunk := [][]byte{}
		err := p.Scan(prefix, func(k []byte, value []byte) error {
			row, live, err := unstamp(value)
			if nil != err {
				return err
			}
			if !live {
				return nil
			}
			if len(row) < 2 || binary.BigEndian.Uint16(row[len(row)-2:]) != partition.Id {
				log.Warnf("table: %s  key: %x  row outside partition: %d", p.Table(), k, partition.Id)
				return nil
			}
			chunk = append(chunk, row[:len(row)-2])
			return nil
		})
		if nil != err {
			return nil, err
		}
		for i := len(chunk) - 1; i >= 0; i -= 1 {
			rows = append(rows, chunk[i])
		}
	}
	return rows, nil
}
