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

// MaxTTL - twenty years in seconds
const MaxTTL = uint32(20 * 365 * 24 * 60 * 60)

// Partition - one bucket of a time sharded secondary index
type Partition struct {
	Id             uint16                `json:"id"`
	MilestoneIndex ledger.MilestoneIndex `json:"milestoneIndex"`
}

// Pack - id ++ milestone index
func (p Partition) Pack(buffer []byte) []byte {
	buffer = util.AppendUint16(buffer, p.Id)
	return util.AppendUint32(buffer, uint32(p.MilestoneIndex))
}

// UnpackPartition - read a partition
func UnpackPartition(u *util.Unpacker) Partition {
	return Partition{
		Id:             u.Uint16(),
		MilestoneIndex: ledger.MilestoneIndex(u.Uint32()),
	}
}

// Partitioned - a value tagged with the shard it belongs to
type Partitioned[T Packer] struct {
	inner       T
	partitionId uint16
}

// NewPartitioned - tag a value with its partition id
func NewPartitioned[T Packer](inner T, partitionId uint16) Partitioned[T] {
	return Partitioned[T]{
		inner:       inner,
		partitionId: partitionId,
	}
}

func (p Partitioned[T]) Inner() T            { return p.inner }
func (p Partitioned[T]) PartitionId() uint16 { return p.partitionId }

// Pack - inner ++ partition id
func (p Partitioned[T]) Pack(buffer []byte) []byte {
	buffer = p.inner.Pack(buffer)
	return util.AppendUint16(buffer, p.partitionId)
}

// UnpackPartitioned - read a partitioned value
func UnpackPartitioned[T Packer](u *util.Unpacker, unpack UnpackFunc[T]) Partitioned[T] {
	inner := unpack(u)
	return Partitioned[T]{
		inner:       inner,
		partitionId: u.Uint16(),
	}
}

// TTL - a value with a retention period in seconds, zero is no expiry
type TTL[T Packer] struct {
	inner T
	ttl   uint32
}

// NewTTL - reject retention periods above MaxTTL
func NewTTL[T Packer](inner T, ttl uint32) (TTL[T], error) {
	if ttl > MaxTTL {
		return TTL[T]{}, fault.ErrTTLTooLarge
	}
	return TTL[T]{inner: inner, ttl: ttl}, nil
}

// ClampTTL - limit the retention period to MaxTTL
func ClampTTL[T Packer](inner T, ttl uint32) TTL[T] {
	if ttl > MaxTTL {
		ttl = MaxTTL
	}
	return TTL[T]{inner: inner, ttl: ttl}
}

func (t TTL[T]) Inner() T    { return t.inner }
func (t TTL[T]) TTL() uint32 { return t.ttl }

// Pack - inner ++ ttl
func (t TTL[T]) Pack(buffer []byte) []byte {
	buffer = t.inner.Pack(buffer)
	return util.AppendUint32(buffer, t.ttl)
}

// UnpackTTL - read a value with retention period
func UnpackTTL[T Packer](u *util.Unpacker, unpack UnpackFunc[T]) TTL[T] {
	inner := unpack(u)
	ttl := u.Uint32()
	if nil == u.Err() && ttl > MaxTTL {
		u.Fail(errors.Wrapf(fault.ErrMalformedRow, "ttl: %d exceeds: %d", ttl, MaxTTL))
	}
	return TTL[T]{inner: inner, ttl: ttl}
}

// HintVariant - a key type usable for reverse lookups
type HintVariant interface {
	HintVariant() string
	HintBytes() []byte
}

// Hint - secondary index entry for address, parent or index lookups
type Hint[T HintVariant] struct {
	inner T
}

// NewHint - wrap a secondary index key
func NewHint[T HintVariant](inner T) Hint[T] {
	return Hint[T]{inner: inner}
}

func (h Hint[T]) Inner() T          { return h.inner }
func (h Hint[T]) Variant() string   { return h.inner.HintVariant() }
func (h Hint[T]) HintBytes() []byte { return h.inner.HintBytes() }

// Pack - string(variant) ++ bytes(key)
func (h Hint[T]) Pack(buffer []byte) []byte {
	buffer = util.AppendString(buffer, h.inner.HintVariant())
	return util.AppendBytes(buffer, h.inner.HintBytes())
}

// UnpackHint - read a hint whose variant must be the one of T
func UnpackHint[T HintVariant](u *util.Unpacker, fromBytes func(buffer []byte) (T, error)) Hint[T] {
	var inner T
	variant := u.String()
	data := u.Bytes()
	if nil != u.Err() {
		return Hint[T]{}
	}
	if expected := inner.HintVariant(); expected != variant {
		u.Fail(errors.Wrapf(fault.ErrInvalidHintVariant, "%q  expected: %q", variant, expected))
		return Hint[T]{}
	}
	inner, err := fromBytes(data)
	if nil != err {
		u.Fail(errors.Wrap(fault.ErrMalformedRow, err.Error()))
		return Hint[T]{}
	}
	return Hint[T]{inner: inner}
}

// hint key conversions for UnpackHint

func AddressHint(buffer []byte) (ledger.Ed25519Address, error) {
	a := ledger.Ed25519Address{}
	err := ledger.AddressFromBytes(&a, buffer)
	return a, err
}

func ParentHint(buffer []byte) (ledger.MessageId, error) {
	id := ledger.MessageId{}
	err := ledger.MessageIdFromBytes(&id, buffer)
	return id, err
}

func IndexHint(buffer []byte) (ledger.HashedIndex, error) {
	index := ledger.HashedIndex{}
	err := ledger.HashedIndexFromBytes(&index, buffer)
	return index, err
}
