// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk archive
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. milestone    = big endian uint32 (4 bytes)
// 4. partition    = id (big endian uint16) ++ anchor milestone
// 5. every value  = written(unix seconds, uint64) ++ row ++ ttl(seconds, uint32)
//                   a ttl of zero never expires
//
// Messages:
//
//   M ++ message id                           - packed message
//   D ++ message id                           - packed message metadata
//
// Ledger:
//
//   T ++ output id ++ variant ++ message id   - transaction record
//   A ++ address ++ partition ++ milestone ++ output id
//                                             - address record
//
// Secondary indexes:
//
//   I ++ hashed index ++ partition ++ milestone ++ message id
//                                             - hashed index record
//   P ++ parent id ++ partition ++ milestone ++ message id
//                                             - parent record
//   H ++ hint ++ partition                    - partition holding rows for a hint key
//
// Milestones:
//
//   S ++ milestone                            - milestone record
package storage
