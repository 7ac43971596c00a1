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

// parent count limits
const (
	MinParents = 1
	MaxParents = 8
)

// Message - a vertex of the ledger graph
type Message struct {
	NetworkId uint64      `json:"networkId,string"`
	Parents   []MessageId `json:"parentMessageIds"`
	Payload   Payload     `json:"payload"`
	Nonce     uint64      `json:"nonce,string"`
}

// Pack - network id ++ parents ++ payload ++ nonce
func (m *Message) Pack() ([]byte, error) {
	if len(m.Parents) < MinParents || len(m.Parents) > MaxParents {
		return nil, fault.ErrTooManyParents
	}

	buffer := util.AppendUint64(nil, m.NetworkId)
	buffer = util.AppendUint8(buffer, uint8(len(m.Parents)))
	for _, parent := range m.Parents {
		buffer = append(buffer, parent[:]...)
	}

	if nil == m.Payload {
		buffer = util.AppendUint32(buffer, 0)
	} else {
		payload := m.Payload.Pack(nil)
		buffer = util.AppendUint32(buffer, uint32(len(payload)))
		buffer = append(buffer, payload...)
	}
	return util.AppendUint64(buffer, m.Nonce), nil
}

// Id - message id is the digest of the packed message
func (m *Message) Id() (MessageId, error) {
	packed, err := m.Pack()
	if nil != err {
		return MessageId{}, err
	}
	return NewMessageId(packed), nil
}

// Transaction - the transaction payload or nil
func (m *Message) Transaction() *TransactionPayload {
	if t, ok := m.Payload.(*TransactionPayload); ok {
		return t
	}
	return nil
}

// UnpackMessage - read a message
func UnpackMessage(u *util.Unpacker) *Message {
	m := &Message{}
	m.NetworkId = u.Uint64()

	count := int(u.Uint8())
	if nil == u.Err() && (count < MinParents || count > MaxParents) {
		u.Fail(errors.Wrapf(fault.ErrMalformedRow, "parent count: %d", count))
		return nil
	}
	m.Parents = make([]MessageId, count)
	for i := range m.Parents {
		u.FixedInto(m.Parents[i][:])
	}

	payloadLength := int(u.Uint32())
	if 0 != payloadLength && nil == u.Err() {
		start := u.Offset()
		m.Payload = UnpackPayload(u)
		if nil == u.Err() && u.Offset()-start != payloadLength {
			u.Fail(errors.Wrapf(fault.ErrMalformedRow, "payload length: %d  consumed: %d", payloadLength, u.Offset()-start))
		}
	}
	m.Nonce = u.Uint64()

	if nil != u.Err() {
		return nil
	}
	return m
}

// MessageFromBytes - decode a whole packed message
func MessageFromBytes(buffer []byte) (*Message, error) {
	u := util.NewUnpacker(buffer)
	m := UnpackMessage(u)
	return m, u.Err()
}
