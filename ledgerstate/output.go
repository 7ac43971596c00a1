// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledgerstate

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/record"
)

// OutputView - an output with the message that created it
type OutputView struct {
	MessageId     ledger.MessageId     `json:"messageId"`
	TransactionId ledger.TransactionId `json:"transactionId"`
	OutputIndex   uint16               `json:"outputIndex"`
	IsSpent       bool                 `json:"isSpent"`
	Output        ledger.Output        `json:"output"`
}

// ResolveOutput - reconcile every transaction row stored for an output
//
// rows are in no particular order: the last output row seen wins and
// any unlock row marks the output spent
func ResolveOutput(id ledger.OutputId, rows []record.TransactionRecord) (*OutputView, error) {
	var created *record.TransactionRecord
	spent := false

	for i := range rows {
		switch rows[i].Variant {
		case record.OutputVariant:
			created = &rows[i]
		case record.UnlockVariant:
			spent = true
		}
	}

	if nil == created || nil == created.Data.Output {
		return nil, errors.Wrapf(fault.ErrOutputNotFound, "id: %s", id)
	}

	return &OutputView{
		MessageId:     created.MessageId,
		TransactionId: id.TransactionId(),
		OutputIndex:   id.Index(),
		IsSpent:       spent,
		Output:        *created.Data.Output,
	}, nil
}
