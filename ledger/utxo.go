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

// address types
const (
	Ed25519AddressType = uint8(0)
)

// unlock block kinds
const (
	SignatureUnlockKind = uint8(0)
	ReferenceUnlockKind = uint8(1)
)

// signature sizes
const (
	PublicKeyLength = 32
	SignatureLength = 64
)

// Input - reference to the output being consumed
type Input struct {
	OutputId OutputId `json:"outputId"`
}

// Output - signature locked single output
type Output struct {
	AddressType uint8          `json:"addressType"`
	Address     Ed25519Address `json:"address"`
	Amount      uint64         `json:"amount,string"`
}

// UnlockBlock - either a signature or a reference to an earlier block
type UnlockBlock struct {
	Kind      uint8                 `json:"type"`
	PublicKey [PublicKeyLength]byte `json:"-"`
	Signature [SignatureLength]byte `json:"-"`
	Reference uint16                `json:"reference"`
}

// Pack - output id
func (input Input) Pack(buffer []byte) []byte {
	return append(buffer, input.OutputId[:]...)
}

// UnpackInput - read an input
func UnpackInput(u *util.Unpacker) Input {
	input := Input{}
	u.FixedInto(input.OutputId[:])
	return input
}

// Pack - address type ++ address ++ amount
func (output Output) Pack(buffer []byte) []byte {
	buffer = util.AppendUint8(buffer, output.AddressType)
	buffer = append(buffer, output.Address[:]...)
	return util.AppendUint64(buffer, output.Amount)
}

// UnpackOutput - read an output
func UnpackOutput(u *util.Unpacker) Output {
	output := Output{}
	output.AddressType = u.Uint8()
	if nil == u.Err() && Ed25519AddressType != output.AddressType {
		u.Fail(errors.Wrapf(fault.ErrMalformedRow, "address type: %d", output.AddressType))
	}
	u.FixedInto(output.Address[:])
	output.Amount = u.Uint64()
	return output
}

// Pack - kind ++ (public key ++ signature | reference)
func (unlock UnlockBlock) Pack(buffer []byte) []byte {
	buffer = util.AppendUint8(buffer, unlock.Kind)
	if ReferenceUnlockKind == unlock.Kind {
		return util.AppendUint16(buffer, unlock.Reference)
	}
	buffer = append(buffer, unlock.PublicKey[:]...)
	return append(buffer, unlock.Signature[:]...)
}

// UnpackUnlockBlock - read an unlock block
func UnpackUnlockBlock(u *util.Unpacker) UnlockBlock {
	unlock := UnlockBlock{}
	unlock.Kind = u.Uint8()
	switch unlock.Kind {
	case SignatureUnlockKind:
		u.FixedInto(unlock.PublicKey[:])
		u.FixedInto(unlock.Signature[:])
	case ReferenceUnlockKind:
		unlock.Reference = u.Uint16()
	default:
		u.Fail(errors.Wrapf(fault.ErrMalformedRow, "unlock block kind: %d", unlock.Kind))
	}
	return unlock
}
