// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledgerstate

import (
	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/record"
)

// MetadataView - client facing state of a message
type MetadataView struct {
	MessageId                  ledger.MessageId             `json:"messageId"`
	ParentMessageIds           []ledger.MessageId           `json:"parentMessageIds"`
	IsSolid                    bool                         `json:"isSolid"`
	ReferencedByMilestoneIndex *ledger.MilestoneIndex       `json:"referencedByMilestoneIndex,omitempty"`
	MilestoneIndex             *ledger.MilestoneIndex       `json:"milestoneIndex,omitempty"`
	LedgerInclusionState       *record.LedgerInclusionState `json:"ledgerInclusionState,omitempty"`
	ConflictReason             *uint8                       `json:"conflictReason,omitempty"`

	// promotion and reattachment need the solid milestone depth, which
	// is not tracked here; both stay nil
	ShouldPromote  *bool `json:"shouldPromote,omitempty"`
	ShouldReattach *bool `json:"shouldReattach,omitempty"`
}

// ResolveMetadata - derive the view of a message from its stored metadata
func ResolveMetadata(id ledger.MessageId, message *ledger.Message, metadata *ledger.MessageMetadata) (*MetadataView, error) {
	if nil == metadata {
		return nil, fault.ErrNoMetadata
	}
	if nil == message {
		return nil, fault.ErrNoMessageData
	}

	view := &MetadataView{
		MessageId:        id,
		ParentMessageIds: message.Parents,
	}

	switch {
	case nil != metadata.MilestoneIndex:
		milestone := *metadata.MilestoneIndex
		view.IsSolid = true
		view.ReferencedByMilestoneIndex = &milestone
		if metadata.Flags.IsMilestone() {
			view.MilestoneIndex = &milestone
		}

		state := record.NoTransaction
		if nil != message.Transaction() {
			if ledger.ConflictNone != metadata.Conflict {
				state = record.Conflicting
				conflict := metadata.Conflict
				view.ConflictReason = &conflict
			} else {
				state = record.Included
			}
		}
		view.LedgerInclusionState = &state

	case metadata.Flags.IsSolid():
		view.IsSolid = true
	}

	return view, nil
}
