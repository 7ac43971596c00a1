// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ed25519"
)

// NewHashedIndex - BLAKE2b-256 digest of an indexation payload index
func NewHashedIndex(index []byte) HashedIndex {
	return HashedIndex(blake2b.Sum256(index))
}

// AddressFromPublicKey - BLAKE2b-256 digest of an Ed25519 public key
func AddressFromPublicKey(publicKey ed25519.PublicKey) Ed25519Address {
	return Ed25519Address(blake2b.Sum256(publicKey))
}

// NewMessageId - digest of a packed message
func NewMessageId(packed []byte) MessageId {
	return MessageId(blake2b.Sum256(packed))
}

// NewTransactionId - digest of a packed transaction payload
func NewTransactionId(packed []byte) TransactionId {
	return TransactionId(blake2b.Sum256(packed))
}
