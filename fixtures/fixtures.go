// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test setup and sample ledger data
package fixtures

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/permanode/ledger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// SetupTestLogger - log to a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// Id - an identifier filled with a recognisable pattern
func Id(seed byte) [32]byte {
	id := [32]byte{}
	for i := range id {
		id[i] = seed + byte(i)
	}
	return id
}

// TransactionMessage - a message spending one output into two addresses
func TransactionMessage(spent ledger.OutputId, to1 ledger.Ed25519Address, to2 ledger.Ed25519Address) *ledger.Message {
	return &ledger.Message{
		NetworkId: 6530425480034647824,
		Parents:   []ledger.MessageId{Id(0x10), Id(0x20)},
		Payload: &ledger.TransactionPayload{
			Inputs: []ledger.Input{
				{OutputId: spent},
			},
			Outputs: []ledger.Output{
				{AddressType: ledger.Ed25519AddressType, Address: to1, Amount: 1000000},
				{AddressType: ledger.Ed25519AddressType, Address: to2, Amount: 42},
			},
			Indexation: &ledger.IndexationPayload{
				Index: []byte("permanode"),
				Data:  []byte("spend"),
			},
			Unlocks: []ledger.UnlockBlock{
				{Kind: ledger.SignatureUnlockKind},
			},
		},
		Nonce: 12345,
	}
}

// IndexationMessage - a data message under an index
func IndexationMessage(parent ledger.MessageId, index string) *ledger.Message {
	return &ledger.Message{
		NetworkId: 6530425480034647824,
		Parents:   []ledger.MessageId{parent},
		Payload: &ledger.IndexationPayload{
			Index: []byte(index),
			Data:  []byte("data"),
		},
		Nonce: 1,
	}
}

// ReferencedMetadata - metadata of a message confirmed by a milestone
func ReferencedMetadata(milestone ledger.MilestoneIndex, conflict uint8) *ledger.MessageMetadata {
	return &ledger.MessageMetadata{
		Flags:                 ledger.FlagSolid | ledger.FlagReferenced,
		MilestoneIndex:        &milestone,
		ArrivalTimestamp:      1609459200,
		ConfirmationTimestamp: 1609459260,
		Conflict:              conflict,
	}
}
