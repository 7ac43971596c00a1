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

// TransactionVariant - which part of a transaction a row holds
//
// persisted as text for the benefit of the column typing of the store
type TransactionVariant uint8

// variants
const (
	InputVariant TransactionVariant = iota
	OutputVariant
	UnlockVariant
)

// the persisted spellings must never change
var variantNames = map[TransactionVariant]string{
	InputVariant:  "input",
	OutputVariant: "output",
	UnlockVariant: "unlock",
}

func (v TransactionVariant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return "invalid"
}

func (v TransactionVariant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Pack - i32 length ++ variant name
func (v TransactionVariant) Pack(buffer []byte) []byte {
	return util.AppendString(buffer, v.String())
}

// UnpackTransactionVariant - read a variant name, unknown names fail
func UnpackTransactionVariant(u *util.Unpacker) TransactionVariant {
	s := u.String()
	if nil != u.Err() {
		return 0
	}
	switch s {
	case "input":
		return InputVariant
	case "output":
		return OutputVariant
	case "unlock":
		return UnlockVariant
	}
	u.Fail(errors.Wrapf(fault.ErrMalformedVariant, "%q", s))
	return 0
}

// TransactionData - exactly one field is set, matching the variant
type TransactionData struct {
	Input  *ledger.Input       `json:"input,omitempty"`
	Output *ledger.Output      `json:"output,omitempty"`
	Unlock *ledger.UnlockBlock `json:"unlock,omitempty"`
}

// TransactionRecord - one row of the per output transaction index
type TransactionRecord struct {
	Variant   TransactionVariant `json:"variant"`
	MessageId ledger.MessageId   `json:"messageId"`
	Data      TransactionData    `json:"data"`
}

// NewInputRecord - a message consuming the output
func NewInputRecord(messageId ledger.MessageId, input ledger.Input) TransactionRecord {
	return TransactionRecord{
		Variant:   InputVariant,
		MessageId: messageId,
		Data:      TransactionData{Input: &input},
	}
}

// NewOutputRecord - the message creating the output
func NewOutputRecord(messageId ledger.MessageId, output ledger.Output) TransactionRecord {
	return TransactionRecord{
		Variant:   OutputVariant,
		MessageId: messageId,
		Data:      TransactionData{Output: &output},
	}
}

// NewUnlockRecord - the unlock block of the spending message
func NewUnlockRecord(messageId ledger.MessageId, unlock ledger.UnlockBlock) TransactionRecord {
	return TransactionRecord{
		Variant:   UnlockVariant,
		MessageId: messageId,
		Data:      TransactionData{Unlock: &unlock},
	}
}

// Pack - variant ++ message id ++ data of that variant
func (r TransactionRecord) Pack(buffer []byte) []byte {
	buffer = r.Variant.Pack(buffer)
	buffer = append(buffer, r.MessageId[:]...)
	switch r.Variant {
	case InputVariant:
		buffer = derefInput(r.Data.Input).Pack(buffer)
	case OutputVariant:
		buffer = derefOutput(r.Data.Output).Pack(buffer)
	case UnlockVariant:
		buffer = derefUnlock(r.Data.Unlock).Pack(buffer)
	}
	return buffer
}

// UnpackTransactionRecord - read a transaction index row
func UnpackTransactionRecord(u *util.Unpacker) TransactionRecord {
	r := TransactionRecord{}
	r.Variant = UnpackTransactionVariant(u)
	u.FixedInto(r.MessageId[:])
	if nil != u.Err() {
		return r
	}
	switch r.Variant {
	case InputVariant:
		input := ledger.UnpackInput(u)
		r.Data.Input = &input
	case OutputVariant:
		output := ledger.UnpackOutput(u)
		r.Data.Output = &output
	case UnlockVariant:
		unlock := ledger.UnpackUnlockBlock(u)
		r.Data.Unlock = &unlock
	}
	return r
}

func derefInput(p *ledger.Input) ledger.Input {
	if nil == p {
		return ledger.Input{}
	}
	return *p
}

func derefOutput(p *ledger.Output) ledger.Output {
	if nil == p {
		return ledger.Output{}
	}
	return *p
}

func derefUnlock(p *ledger.UnlockBlock) ledger.UnlockBlock {
	if nil == p {
		return ledger.UnlockBlock{}
	}
	return *p
}
