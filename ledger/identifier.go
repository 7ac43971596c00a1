// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/bitmark-inc/permanode/fault"
)

// byte sizes of the identifiers
const (
	MessageIdLength      = 32
	TransactionIdLength  = 32
	AddressLength        = 32
	HashedIndexLength    = 32
	OutputIndexLength    = 2
	OutputIdLength       = TransactionIdLength + OutputIndexLength
	MilestoneIndexLength = 4
)

// MessageId - identifies a message
type MessageId [MessageIdLength]byte

// TransactionId - identifies a transaction payload
type TransactionId [TransactionIdLength]byte

// Ed25519Address - digest of an Ed25519 public key
type Ed25519Address [AddressLength]byte

// HashedIndex - digest of an indexation payload index
type HashedIndex [HashedIndexLength]byte

// OutputId - transaction id ++ big endian output index
type OutputId [OutputIdLength]byte

// MilestoneIndex - sequence number of a milestone
type MilestoneIndex uint32

// decode hex text of exactly length bytes into destination
func fromHex(destination []byte, s []byte) error {
	if hex.DecodedLen(len(s)) != len(destination) {
		return fault.ErrWrongIdLength
	}
	if _, err := hex.Decode(destination, s); nil != err {
		return fault.ErrInvalidHexString
	}
	return nil
}

// copy a binary value of exactly len(destination) bytes
func fromBytes(destination []byte, buffer []byte) error {
	if len(destination) != len(buffer) {
		return fault.ErrWrongIdLength
	}
	copy(destination, buffer)
	return nil
}

// message id
// ----------

func (id MessageId) String() string {
	return hex.EncodeToString(id[:])
}

func (id MessageId) GoString() string {
	return "<MessageId:" + hex.EncodeToString(id[:]) + ">"
}

func (id MessageId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *MessageId) UnmarshalText(s []byte) error {
	return fromHex(id[:], s)
}

// HintVariant - secondary index category for reverse lookup by parent
func (id MessageId) HintVariant() string { return "parent" }

// HintBytes - raw form used as the secondary index key
func (id MessageId) HintBytes() []byte { return id[:] }

// MessageIdFromBytes - convert and validate a binary message id
func MessageIdFromBytes(id *MessageId, buffer []byte) error {
	return fromBytes(id[:], buffer)
}

// MessageIdFromString - convert and validate a hex message id
func MessageIdFromString(s string) (MessageId, error) {
	id := MessageId{}
	err := id.UnmarshalText([]byte(s))
	return id, err
}

// transaction id
// --------------

func (id TransactionId) String() string {
	return hex.EncodeToString(id[:])
}

func (id TransactionId) GoString() string {
	return "<TransactionId:" + hex.EncodeToString(id[:]) + ">"
}

func (id TransactionId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *TransactionId) UnmarshalText(s []byte) error {
	return fromHex(id[:], s)
}

// TransactionIdFromBytes - convert and validate a binary transaction id
func TransactionIdFromBytes(id *TransactionId, buffer []byte) error {
	return fromBytes(id[:], buffer)
}

// address
// -------

func (address Ed25519Address) String() string {
	return hex.EncodeToString(address[:])
}

func (address Ed25519Address) GoString() string {
	return "<Ed25519Address:" + hex.EncodeToString(address[:]) + ">"
}

func (address Ed25519Address) MarshalText() ([]byte, error) {
	return []byte(address.String()), nil
}

func (address *Ed25519Address) UnmarshalText(s []byte) error {
	return fromHex(address[:], s)
}

// HintVariant - secondary index category for reverse lookup by address
func (address Ed25519Address) HintVariant() string { return "address" }

// HintBytes - raw form used as the secondary index key
func (address Ed25519Address) HintBytes() []byte { return address[:] }

// AddressFromBytes - convert and validate a binary address
func AddressFromBytes(address *Ed25519Address, buffer []byte) error {
	return fromBytes(address[:], buffer)
}

// AddressFromString - convert and validate a hex address
func AddressFromString(s string) (Ed25519Address, error) {
	address := Ed25519Address{}
	err := address.UnmarshalText([]byte(s))
	return address, err
}

// hashed index
// ------------

func (index HashedIndex) String() string {
	return hex.EncodeToString(index[:])
}

func (index HashedIndex) GoString() string {
	return "<HashedIndex:" + hex.EncodeToString(index[:]) + ">"
}

func (index HashedIndex) MarshalText() ([]byte, error) {
	return []byte(index.String()), nil
}

func (index *HashedIndex) UnmarshalText(s []byte) error {
	return fromHex(index[:], s)
}

// HintVariant - secondary index category for reverse lookup by indexation
func (index HashedIndex) HintVariant() string { return "index" }

// HintBytes - raw form used as the secondary index key
func (index HashedIndex) HintBytes() []byte { return index[:] }

// HashedIndexFromBytes - convert and validate a binary hashed index
func HashedIndexFromBytes(index *HashedIndex, buffer []byte) error {
	return fromBytes(index[:], buffer)
}

// HashedIndexFromString - convert and validate a hex hashed index
func HashedIndexFromString(s string) (HashedIndex, error) {
	index := HashedIndex{}
	err := index.UnmarshalText([]byte(s))
	return index, err
}

// output id
// ---------

// NewOutputId - combine a transaction id and an output position
func NewOutputId(transactionId TransactionId, index uint16) OutputId {
	id := OutputId{}
	copy(id[:TransactionIdLength], transactionId[:])
	binary.BigEndian.PutUint16(id[TransactionIdLength:], index)
	return id
}

// TransactionId - the transaction that created the output
func (id OutputId) TransactionId() TransactionId {
	transactionId := TransactionId{}
	copy(transactionId[:], id[:TransactionIdLength])
	return transactionId
}

// Index - position of the output in its transaction
func (id OutputId) Index() uint16 {
	return binary.BigEndian.Uint16(id[TransactionIdLength:])
}

func (id OutputId) String() string {
	return hex.EncodeToString(id[:])
}

func (id OutputId) GoString() string {
	return "<OutputId:" + hex.EncodeToString(id[:TransactionIdLength]) + ":" + strconv.Itoa(int(id.Index())) + ">"
}

func (id OutputId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *OutputId) UnmarshalText(s []byte) error {
	return fromHex(id[:], s)
}

// OutputIdFromBytes - convert and validate a binary output id
func OutputIdFromBytes(id *OutputId, buffer []byte) error {
	return fromBytes(id[:], buffer)
}

// OutputIdFromString - convert and validate a hex output id
func OutputIdFromString(s string) (OutputId, error) {
	id := OutputId{}
	err := id.UnmarshalText([]byte(s))
	return id, err
}

// milestone index
// ---------------

// Bytes - big endian form used in keys
func (index MilestoneIndex) Bytes() []byte {
	b := make([]byte, MilestoneIndexLength)
	binary.BigEndian.PutUint32(b, uint32(index))
	return b
}
