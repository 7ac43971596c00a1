// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"github.com/bitmark-inc/permanode/ledger"
)

func fill(b []byte, seed byte) {
	for i := range b {
		b[i] = seed + byte(i)
	}
}

func makeMessageId(seed byte) ledger.MessageId {
	id := ledger.MessageId{}
	fill(id[:], seed)
	return id
}

func makeTransactionId(seed byte) ledger.TransactionId {
	id := ledger.TransactionId{}
	fill(id[:], seed)
	return id
}

func makeAddress(seed byte) ledger.Ed25519Address {
	a := ledger.Ed25519Address{}
	fill(a[:], seed)
	return a
}
