// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/permanode/util"
)

// Flags - per message state bits
type Flags uint8

// flag bits
const (
	FlagSolid      Flags = 1 << 0
	FlagMilestone  Flags = 1 << 1
	FlagReferenced Flags = 1 << 2
	FlagValid      Flags = 1 << 3
	FlagRequested  Flags = 1 << 4
)

func (f Flags) IsSolid() bool      { return 0 != f&FlagSolid }
func (f Flags) IsMilestone() bool  { return 0 != f&FlagMilestone }
func (f Flags) IsReferenced() bool { return 0 != f&FlagReferenced }
func (f Flags) IsValid() bool      { return 0 != f&FlagValid }
func (f Flags) IsRequested() bool  { return 0 != f&FlagRequested }

// conflict reasons, zero means no conflict
const (
	ConflictNone                   = uint8(0)
	ConflictInputAlreadySpent      = uint8(1)
	ConflictInputAlreadySpentInRef = uint8(2)
	ConflictInputNotFound          = uint8(3)
	ConflictInputOutputSumMismatch = uint8(4)
	ConflictInvalidSignature       = uint8(5)
)

// MessageMetadata - node derived state of a message
type MessageMetadata struct {
	Flags                   Flags           `json:"flags"`
	MilestoneIndex          *MilestoneIndex `json:"milestoneIndex,omitempty"`
	ArrivalTimestamp        uint64          `json:"arrivalTimestamp"`
	SolidificationTimestamp uint64          `json:"solidificationTimestamp"`
	ConfirmationTimestamp   uint64          `json:"confirmationTimestamp"`
	Conflict                uint8           `json:"conflict"`
}

// Pack - flags ++ option(milestone) ++ timestamps ++ conflict
func (m *MessageMetadata) Pack(buffer []byte) []byte {
	buffer = util.AppendUint8(buffer, uint8(m.Flags))
	if nil == m.MilestoneIndex {
		buffer = util.AppendUint8(buffer, 0)
	} else {
		buffer = util.AppendUint8(buffer, 1)
		buffer = util.AppendUint32(buffer, uint32(*m.MilestoneIndex))
	}
	buffer = util.AppendUint64(buffer, m.ArrivalTimestamp)
	buffer = util.AppendUint64(buffer, m.SolidificationTimestamp)
	buffer = util.AppendUint64(buffer, m.ConfirmationTimestamp)
	return util.AppendUint8(buffer, m.Conflict)
}

// UnpackMessageMetadata - read metadata
func UnpackMessageMetadata(u *util.Unpacker) *MessageMetadata {
	m := &MessageMetadata{}
	m.Flags = Flags(u.Uint8())
	if 0 != u.Uint8() {
		index := MilestoneIndex(u.Uint32())
		m.MilestoneIndex = &index
	}
	m.ArrivalTimestamp = u.Uint64()
	m.SolidificationTimestamp = u.Uint64()
	m.ConfirmationTimestamp = u.Uint64()
	m.Conflict = u.Uint8()
	if nil != u.Err() {
		return nil
	}
	return m
}
