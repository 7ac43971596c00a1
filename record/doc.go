// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - binary row codec for the archive
//
// Notes:
// 1. ++            = concatenation of byte data
// 2. integers      = fixed width big endian
// 3. string/bytes  = i32 length ++ data
// 4. option        = 0x00 | 0x01 ++ value
// 5. trailing bytes after a decoded value are ignored
//
// Wrappers (the wrapped value is always first):
//
//   Partition         id(u16) ++ milestone index(u32)
//   Partitioned<T>    T ++ partition id(u16)
//   TTL<T>            T ++ ttl seconds(u32)          ttl ≤ MaxTTL
//   Hint<T>           string(variant) ++ bytes(T)    variant: address | parent | index
//
// Rows:
//
//   AddressRecord     milestone(u32) ++ transaction id ++ index(u16) ++ amount(u64)
//                     ++ address type(u8) ++ option(inclusion state(u32))
//   HashedIndexRecord milestone(u32) ++ message id ++ option(inclusion state(u32))
//   ParentRecord      milestone(u32) ++ message id ++ option(inclusion state(u32))
//   TransactionRecord string(input|output|unlock) ++ message id ++ input|output|unlock block
//   MessageRow        message id ++ option(bytes(message)) ++ option(metadata)
//   MilestoneRecord   message id ++ timestamp(u64)
//
// Result payload returned by a select:
//
//   row count(i32) ++ [ bytes(row) ]
package record
