// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/util"
)

// payload type codes
const (
	TransactionPayloadType = uint32(0)
	MilestonePayloadType   = uint32(1)
	IndexationPayloadType  = uint32(2)
)

// Payload - the optional content of a message
type Payload interface {
	PayloadType() uint32
	Pack(buffer []byte) []byte
}

// TransactionPayload - transfer of funds
type TransactionPayload struct {
	Inputs     []Input            `json:"inputs"`
	Outputs    []Output           `json:"outputs"`
	Indexation *IndexationPayload `json:"payload,omitempty"`
	Unlocks    []UnlockBlock      `json:"unlockBlocks"`
}

// MilestonePayload - checkpoint issued by the network
type MilestonePayload struct {
	Index     MilestoneIndex `json:"index"`
	Timestamp uint64         `json:"timestamp"`
}

// IndexationPayload - arbitrary data under a searchable index
type IndexationPayload struct {
	Index []byte `json:"index"`
	Data  []byte `json:"data"`
}

func (p *TransactionPayload) PayloadType() uint32 { return TransactionPayloadType }
func (p *MilestonePayload) PayloadType() uint32   { return MilestonePayloadType }
func (p *IndexationPayload) PayloadType() uint32  { return IndexationPayloadType }

// Pack - type ++ inputs ++ outputs ++ [indexation] ++ unlocks
//
// counts are u16
func (p *TransactionPayload) Pack(buffer []byte) []byte {
	buffer = util.AppendUint32(buffer, TransactionPayloadType)
	buffer = util.AppendUint16(buffer, uint16(len(p.Inputs)))
	for _, input := range p.Inputs {
		buffer = input.Pack(buffer)
	}
	buffer = util.AppendUint16(buffer, uint16(len(p.Outputs)))
	for _, output := range p.Outputs {
		buffer = output.Pack(buffer)
	}
	if nil == p.Indexation {
		buffer = util.AppendUint8(buffer, 0)
	} else {
		buffer = util.AppendUint8(buffer, 1)
		buffer = p.Indexation.packBody(buffer)
	}
	buffer = util.AppendUint16(buffer, uint16(len(p.Unlocks)))
	for _, unlock := range p.Unlocks {
		buffer = unlock.Pack(buffer)
	}
	return buffer
}

// Id - transaction id is the digest of the packed payload
func (p *TransactionPayload) Id() TransactionId {
	return NewTransactionId(p.Pack(nil))
}

// Pack - type ++ index ++ timestamp
func (p *MilestonePayload) Pack(buffer []byte) []byte {
	buffer = util.AppendUint32(buffer, MilestonePayloadType)
	buffer = util.AppendUint32(buffer, uint32(p.Index))
	return util.AppendUint64(buffer, p.Timestamp)
}

// Pack - type ++ bytes(index) ++ bytes(data)
func (p *IndexationPayload) Pack(buffer []byte) []byte {
	buffer = util.AppendUint32(buffer, IndexationPayloadType)
	return p.packBody(buffer)
}

func (p *IndexationPayload) packBody(buffer []byte) []byte {
	buffer = util.AppendBytes(buffer, p.Index)
	return util.AppendBytes(buffer, p.Data)
}

// HashedIndex - secondary index key of this payload
func (p *IndexationPayload) HashedIndex() HashedIndex {
	return NewHashedIndex(p.Index)
}

// UnpackPayload - read a type tagged payload
func UnpackPayload(u *util.Unpacker) Payload {
	payloadType := u.Uint32()
	if nil != u.Err() {
		return nil
	}

	switch payloadType {
	case TransactionPayloadType:
		p := &TransactionPayload{}
		n := int(u.Uint16())
		for i := 0; i < n && nil == u.Err(); i += 1 {
			p.Inputs = append(p.Inputs, UnpackInput(u))
		}
		n = int(u.Uint16())
		for i := 0; i < n && nil == u.Err(); i += 1 {
			p.Outputs = append(p.Outputs, UnpackOutput(u))
		}
		if 0 != u.Uint8() {
			p.Indexation = unpackIndexationBody(u)
		}
		n = int(u.Uint16())
		for i := 0; i < n && nil == u.Err(); i += 1 {
			p.Unlocks = append(p.Unlocks, UnpackUnlockBlock(u))
		}
		return p

	case MilestonePayloadType:
		return &MilestonePayload{
			Index:     MilestoneIndex(u.Uint32()),
			Timestamp: u.Uint64(),
		}

	case IndexationPayloadType:
		return unpackIndexationBody(u)

	default:
		u.Fail(errors.Wrapf(fault.ErrMalformedRow, "payload type: %d", payloadType))
		return nil
	}
}

func unpackIndexationBody(u *util.Unpacker) *IndexationPayload {
	return &IndexationPayload{
		Index: u.Bytes(),
		Data:  u.Bytes(),
	}
}
