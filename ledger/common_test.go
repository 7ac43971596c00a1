// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"github.com/bitmark-inc/permanode/ledger"
)

// fill an identifier with a recognisable pattern
func pattern(b []byte, seed byte) {
	for i := range b {
		b[i] = seed + byte(i)
	}
}

func makeMessageId(seed byte) ledger.MessageId {
	id := ledger.MessageId{}
	pattern(id[:], seed)
	return id
}

func makeAddress(seed byte) ledger.Ed25519Address {
	a := ledger.Ed25519Address{}
	pattern(a[:], seed)
	return a
}

func makeTransactionId(seed byte) ledger.TransactionId {
	id := ledger.TransactionId{}
	pattern(id[:], seed)
	return id
}

func makeTransactionMessage() *ledger.Message {
	unlock := ledger.UnlockBlock{Kind: ledger.SignatureUnlockKind}
	pattern(unlock.PublicKey[:], 0x40)
	pattern(unlock.Signature[:], 0x80)

	return &ledger.Message{
		NetworkId: 6530425480034647824,
		Parents:   []ledger.MessageId{makeMessageId(1), makeMessageId(2)},
		Payload: &ledger.TransactionPayload{
			Inputs: []ledger.Input{
				{OutputId: ledger.NewOutputId(makeTransactionId(9), 3)},
			},
			Outputs: []ledger.Output{
				{AddressType: ledger.Ed25519AddressType, Address: makeAddress(5), Amount: 1000000},
				{AddressType: ledger.Ed25519AddressType, Address: makeAddress(6), Amount: 42},
			},
			Indexation: &ledger.IndexationPayload{
				Index: []byte("permanode"),
				Data:  []byte("some data"),
			},
			Unlocks: []ledger.UnlockBlock{
				unlock,
				{Kind: ledger.ReferenceUnlockKind, Reference: 0},
			},
		},
		Nonce: 12345,
	}
}
