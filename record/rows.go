// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/util"
)

// LedgerInclusionState - effect of a referenced message on the ledger
type LedgerInclusionState uint32

// inclusion states, values are persisted
const (
	NoTransaction LedgerInclusionState = iota
	Included
	Conflicting
)

func (s LedgerInclusionState) String() string {
	switch s {
	case NoTransaction:
		return "noTransaction"
	case Included:
		return "included"
	case Conflicting:
		return "conflicting"
	default:
		return "invalid"
	}
}

func (s LedgerInclusionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func packInclusionState(buffer []byte, state *LedgerInclusionState) []byte {
	if nil == state {
		return util.AppendUint8(buffer, 0)
	}
	buffer = util.AppendUint8(buffer, 1)
	return util.AppendUint32(buffer, uint32(*state))
}

func unpackInclusionState(u *util.Unpacker) *LedgerInclusionState {
	if 0 == u.Uint8() {
		return nil
	}
	state := LedgerInclusionState(u.Uint32())
	if nil != u.Err() {
		return nil
	}
	if state > Conflicting {
		u.Fail(errors.Wrapf(fault.ErrMalformedRow, "inclusion state: %d", state))
		return nil
	}
	return &state
}

// AddressRecord - one ledger movement against an address
type AddressRecord struct {
	MilestoneIndex       ledger.MilestoneIndex `json:"milestoneIndex"`
	TransactionId        ledger.TransactionId  `json:"transactionId"`
	Index                uint16                `json:"index"`
	Amount               uint64                `json:"amount,string"`
	AddressType          uint8                 `json:"addressType"`
	LedgerInclusionState *LedgerInclusionState `json:"ledgerInclusionState,omitempty"`
}

// OutputId - the output this movement refers to
func (r AddressRecord) OutputId() ledger.OutputId {
	return ledger.NewOutputId(r.TransactionId, r.Index)
}

// Pack - see package documentation for layout
func (r AddressRecord) Pack(buffer []byte) []byte {
	buffer = util.AppendUint32(buffer, uint32(r.MilestoneIndex))
	buffer = append(buffer, r.TransactionId[:]...)
	buffer = util.AppendUint16(buffer, r.Index)
	buffer = util.AppendUint64(buffer, r.Amount)
	buffer = util.AppendUint8(buffer, r.AddressType)
	return packInclusionState(buffer, r.LedgerInclusionState)
}

// UnpackAddressRecord - read an address row
func UnpackAddressRecord(u *util.Unpacker) AddressRecord {
	r := AddressRecord{}
	r.MilestoneIndex = ledger.MilestoneIndex(u.Uint32())
	u.FixedInto(r.TransactionId[:])
	r.Index = u.Uint16()
	r.Amount = u.Uint64()
	r.AddressType = u.Uint8()
	r.LedgerInclusionState = unpackInclusionState(u)
	return r
}

// HashedIndexRecord - message found under an indexation hash
type HashedIndexRecord struct {
	MilestoneIndex       ledger.MilestoneIndex `json:"milestoneIndex"`
	MessageId            ledger.MessageId      `json:"messageId"`
	LedgerInclusionState *LedgerInclusionState `json:"ledgerInclusionState,omitempty"`
}

// Pack - milestone ++ message id ++ option(state)
func (r HashedIndexRecord) Pack(buffer []byte) []byte {
	buffer = util.AppendUint32(buffer, uint32(r.MilestoneIndex))
	buffer = append(buffer, r.MessageId[:]...)
	return packInclusionState(buffer, r.LedgerInclusionState)
}

// UnpackHashedIndexRecord - read an index row
func UnpackHashedIndexRecord(u *util.Unpacker) HashedIndexRecord {
	r := HashedIndexRecord{}
	r.MilestoneIndex = ledger.MilestoneIndex(u.Uint32())
	u.FixedInto(r.MessageId[:])
	r.LedgerInclusionState = unpackInclusionState(u)
	return r
}

// ParentRecord - child message found under a parent id
type ParentRecord struct {
	MilestoneIndex       ledger.MilestoneIndex `json:"milestoneIndex"`
	MessageId            ledger.MessageId      `json:"messageId"`
	LedgerInclusionState *LedgerInclusionState `json:"ledgerInclusionState,omitempty"`
}

// Pack - milestone ++ message id ++ option(state)
func (r ParentRecord) Pack(buffer []byte) []byte {
	buffer = util.AppendUint32(buffer, uint32(r.MilestoneIndex))
	buffer = append(buffer, r.MessageId[:]...)
	return packInclusionState(buffer, r.LedgerInclusionState)
}

// UnpackParentRecord - read a parent row
func UnpackParentRecord(u *util.Unpacker) ParentRecord {
	r := ParentRecord{}
	r.MilestoneIndex = ledger.MilestoneIndex(u.Uint32())
	u.FixedInto(r.MessageId[:])
	r.LedgerInclusionState = unpackInclusionState(u)
	return r
}

// MessageRow - a message with its metadata, either may be absent
type MessageRow struct {
	Id       ledger.MessageId
	Message  *ledger.Message
	Metadata *ledger.MessageMetadata
}

// PackMessageRow - build a row from the stored forms, nil is absent
func PackMessageRow(buffer []byte, id ledger.MessageId, packedMessage []byte, packedMetadata []byte) []byte {
	buffer = append(buffer, id[:]...)
	if nil == packedMessage {
		buffer = util.AppendUint8(buffer, 0)
	} else {
		buffer = util.AppendUint8(buffer, 1)
		buffer = util.AppendBytes(buffer, packedMessage)
	}
	if nil == packedMetadata {
		return util.AppendUint8(buffer, 0)
	}
	buffer = util.AppendUint8(buffer, 1)
	return append(buffer, packedMetadata...)
}

// UnpackMessageRow - read a message row
func UnpackMessageRow(u *util.Unpacker) MessageRow {
	row := MessageRow{}
	u.FixedInto(row.Id[:])
	if 0 != u.Uint8() {
		packed := u.Bytes()
		if nil == u.Err() {
			m, err := ledger.MessageFromBytes(packed)
			if nil != err {
				u.Fail(err)
			}
			row.Message = m
		}
	}
	if 0 != u.Uint8() {
		row.Metadata = ledger.UnpackMessageMetadata(u)
	}
	return row
}

// MilestoneRecord - the message carrying a milestone
type MilestoneRecord struct {
	MessageId ledger.MessageId `json:"messageId"`
	Timestamp uint64           `json:"timestamp"`
}

// Pack - message id ++ timestamp
func (r MilestoneRecord) Pack(buffer []byte) []byte {
	buffer = append(buffer, r.MessageId[:]...)
	return util.AppendUint64(buffer, r.Timestamp)
}

// UnpackMilestoneRecord - read a milestone row
func UnpackMilestoneRecord(u *util.Unpacker) MilestoneRecord {
	r := MilestoneRecord{}
	u.FixedInto(r.MessageId[:])
	r.Timestamp = u.Uint64()
	return r
}
