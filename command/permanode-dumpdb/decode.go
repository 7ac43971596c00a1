// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/record"
	"github.com/bitmark-inc/permanode/storage"
	"github.com/bitmark-inc/permanode/util"
)

// a partitioned row as stored
type partitionedRow[T record.Packer] struct {
	PartitionId uint16 `json:"partitionId"`
	Row         T      `json:"row"`
}

func unpackPartitioned[T record.Packer](row []byte, unpack record.UnpackFunc[T]) (interface{}, error) {
	r, err := record.UnpackRecord(row, func(u *util.Unpacker) record.Partitioned[T] {
		return record.UnpackPartitioned(u, unpack)
	})
	if nil != err {
		return nil, err
	}
	p := r.Get()
	return partitionedRow[T]{PartitionId: p.PartitionId(), Row: p.Inner()}, nil
}

func unpackOne[T any](row []byte, unpack record.UnpackFunc[T]) (interface{}, error) {
	r, err := record.UnpackRecord(row, unpack)
	if nil != err {
		return nil, err
	}
	return r.Get(), nil
}

// unpack a stored row of a table into a value that marshals to JSON
func unpackRow(table string, row []byte) (interface{}, error) {
	switch table {
	case storage.TableMessages:
		return ledger.MessageFromBytes(row)
	case storage.TableMetadata:
		return unpackOne(row, ledger.UnpackMessageMetadata)
	case storage.TableTransactions:
		return unpackOne(row, record.UnpackTransactionRecord)
	case storage.TableAddresses:
		return unpackPartitioned(row, record.UnpackAddressRecord)
	case storage.TableIndexes:
		return unpackPartitioned(row, record.UnpackHashedIndexRecord)
	case storage.TableParents:
		return unpackPartitioned(row, record.UnpackParentRecord)
	case storage.TableHints:
		return unpackOne(row, record.UnpackPartition)
	case storage.TableMilestones:
		return unpackOne(row, record.UnpackMilestoneRecord)
	default:
		return nil, fault.ErrInvalidTable
	}
}
