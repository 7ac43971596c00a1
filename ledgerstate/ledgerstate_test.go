// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledgerstate_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/ledgerstate"
	"github.com/bitmark-inc/permanode/record"
)

var (
	messageA = ledger.MessageId{0xaa}
	messageB = ledger.MessageId{0xbb}
	parent1  = ledger.MessageId{0x01}
	parent2  = ledger.MessageId{0x02}
)

func transactionMessage() *ledger.Message {
	return &ledger.Message{
		NetworkId: 1,
		Parents:   []ledger.MessageId{parent1, parent2},
		Payload: &ledger.TransactionPayload{
			Inputs:  []ledger.Input{{OutputId: ledger.NewOutputId(ledger.TransactionId{9}, 0)}},
			Outputs: []ledger.Output{{AddressType: ledger.Ed25519AddressType, Amount: 10}},
			Unlocks: []ledger.UnlockBlock{{Kind: ledger.SignatureUnlockKind}},
		},
	}
}

func indexationMessage() *ledger.Message {
	return &ledger.Message{
		NetworkId: 1,
		Parents:   []ledger.MessageId{parent1},
		Payload:   &ledger.IndexationPayload{Index: []byte("i"), Data: []byte("d")},
	}
}

func milestone(n uint32) *ledger.MilestoneIndex {
	m := ledger.MilestoneIndex(n)
	return &m
}

func TestReferencedTransaction(t *testing.T) {
	metadata := &ledger.MessageMetadata{
		Flags:          ledger.FlagSolid | ledger.FlagReferenced,
		MilestoneIndex: milestone(100),
	}

	view, err := ledgerstate.ResolveMetadata(messageA, transactionMessage(), metadata)
	assert.Nil(t, err, "resolve error")
	assert.True(t, view.IsSolid, "solid")
	assert.Equal(t, milestone(100), view.ReferencedByMilestoneIndex, "referenced by")
	assert.Nil(t, view.MilestoneIndex, "not a milestone")
	assert.Equal(t, record.Included, *view.LedgerInclusionState, "inclusion")
	assert.Nil(t, view.ConflictReason, "conflict")
	assert.Nil(t, view.ShouldPromote, "promote")
	assert.Nil(t, view.ShouldReattach, "reattach")
	assert.Equal(t, []ledger.MessageId{parent1, parent2}, view.ParentMessageIds, "parents")
	assert.Equal(t, messageA, view.MessageId, "id")
}

func TestConflictingTransaction(t *testing.T) {
	metadata := &ledger.MessageMetadata{
		Flags:          ledger.FlagSolid | ledger.FlagReferenced,
		MilestoneIndex: milestone(100),
		Conflict:       ledger.ConflictInputNotFound,
	}

	view, err := ledgerstate.ResolveMetadata(messageA, transactionMessage(), metadata)
	assert.Nil(t, err, "resolve error")
	assert.Equal(t, record.Conflicting, *view.LedgerInclusionState, "inclusion")
	assert.Equal(t, uint8(3), *view.ConflictReason, "conflict")
}

func TestReferencedMilestone(t *testing.T) {
	metadata := &ledger.MessageMetadata{
		Flags:          ledger.FlagSolid | ledger.FlagMilestone,
		MilestoneIndex: milestone(7),
		Conflict:       ledger.ConflictInvalidSignature,
	}

	view, err := ledgerstate.ResolveMetadata(messageA, indexationMessage(), metadata)
	assert.Nil(t, err, "resolve error")
	assert.Equal(t, milestone(7), view.MilestoneIndex, "is milestone")
	assert.Equal(t, milestone(7), view.ReferencedByMilestoneIndex, "referenced by")
	assert.Equal(t, record.NoTransaction, *view.LedgerInclusionState, "inclusion")
	assert.Nil(t, view.ConflictReason, "conflict ignored without transaction")
}

func TestSolidOnly(t *testing.T) {
	metadata := &ledger.MessageMetadata{Flags: ledger.FlagSolid}

	view, err := ledgerstate.ResolveMetadata(messageA, transactionMessage(), metadata)
	assert.Nil(t, err, "resolve error")
	assert.True(t, view.IsSolid, "solid")
	assert.Nil(t, view.ReferencedByMilestoneIndex, "referenced by")
	assert.Nil(t, view.MilestoneIndex, "milestone")
	assert.Nil(t, view.LedgerInclusionState, "inclusion")
	assert.Nil(t, view.ConflictReason, "conflict")
}

func TestNotSolid(t *testing.T) {
	view, err := ledgerstate.ResolveMetadata(messageA, transactionMessage(), &ledger.MessageMetadata{})
	assert.Nil(t, err, "resolve error")
	assert.False(t, view.IsSolid, "solid")
	assert.Nil(t, view.ReferencedByMilestoneIndex, "referenced by")
	assert.Nil(t, view.LedgerInclusionState, "inclusion")
}

func TestMissingData(t *testing.T) {
	_, err := ledgerstate.ResolveMetadata(messageA, transactionMessage(), nil)
	assert.Equal(t, fault.ErrNoMetadata, err, "no metadata")

	_, err = ledgerstate.ResolveMetadata(messageA, nil, nil)
	assert.Equal(t, fault.ErrNoMetadata, err, "metadata checked first")

	_, err = ledgerstate.ResolveMetadata(messageA, nil, &ledger.MessageMetadata{})
	assert.Equal(t, fault.ErrNoMessageData, err, "no message")
}

func TestOutputSpent(t *testing.T) {
	txid := ledger.TransactionId{0x55}
	id := ledger.NewOutputId(txid, 2)
	body := ledger.Output{AddressType: ledger.Ed25519AddressType, Address: ledger.Ed25519Address{1}, Amount: 500}

	created := record.NewOutputRecord(messageA, body)
	unlock := record.NewUnlockRecord(messageB, ledger.UnlockBlock{Kind: ledger.ReferenceUnlockKind})

	for i, rows := range [][]record.TransactionRecord{{created, unlock}, {unlock, created}} {
		view, err := ledgerstate.ResolveOutput(id, rows)
		assert.Nil(t, err, "%d: resolve error", i)
		assert.Equal(t, messageA, view.MessageId, "%d: message", i)
		assert.Equal(t, txid, view.TransactionId, "%d: transaction", i)
		assert.Equal(t, uint16(2), view.OutputIndex, "%d: index", i)
		assert.True(t, view.IsSpent, "%d: spent", i)
		assert.Equal(t, body, view.Output, "%d: body", i)
	}
}

func TestOutputUnspent(t *testing.T) {
	id := ledger.NewOutputId(ledger.TransactionId{0x66}, 0)
	first := record.NewOutputRecord(messageA, ledger.Output{Amount: 1})
	second := record.NewOutputRecord(messageB, ledger.Output{Amount: 2})
	input := record.NewInputRecord(messageB, ledger.Input{OutputId: id})

	view, err := ledgerstate.ResolveOutput(id, []record.TransactionRecord{first, input, second})
	assert.Nil(t, err, "resolve error")
	assert.False(t, view.IsSpent, "spent")
	assert.Equal(t, messageB, view.MessageId, "last output row wins")
	assert.Equal(t, uint64(2), view.Output.Amount, "amount")
}

func TestOutputNotFound(t *testing.T) {
	id := ledger.NewOutputId(ledger.TransactionId{0x77}, 1)

	_, err := ledgerstate.ResolveOutput(id, nil)
	assert.Equal(t, fault.ErrOutputNotFound, errors.Cause(err), "no rows")
	assert.True(t, fault.IsErrNotFound(err), "not found class")

	_, err = ledgerstate.ResolveOutput(id, []record.TransactionRecord{
		record.NewInputRecord(messageA, ledger.Input{OutputId: id}),
	})
	assert.Equal(t, fault.ErrOutputNotFound, errors.Cause(err), "input only")
}
