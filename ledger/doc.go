// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - identifiers and ledger payloads as archived
//
// Notes:
// 1. ++             = concatenation of byte data
// 2. all integers   = big endian fixed width
// 3. identifiers    = 32 bytes, output id = transaction id ++ u16 index
//
// Message:
//
//   network id(u64) ++ parent count(u8) ++ parents ++ payload length(u32) ++ payload ++ nonce(u64)
//
// Payload:
//
//   type(u32) ++ body    0 = transaction, 1 = milestone, 2 = indexation
//
// Metadata:
//
//   flags(u8) ++ [0|1 ++ milestone index(u32)] ++ arrival(u64) ++ solidification(u64)
//   ++ confirmation(u64) ++ conflict(u8)
package ledger
