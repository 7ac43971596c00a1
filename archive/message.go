// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package archive

import (
	"context"

	"github.com/bitmark-inc/permanode/dispatch"
	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/ledgerstate"
	"github.com/bitmark-inc/permanode/ratelimit"
	"github.com/bitmark-inc/permanode/record"
	"github.com/bitmark-inc/permanode/storage"
)

func (a *Archive) messageRow(ctx context.Context, id ledger.MessageId) (record.MessageRow, error) {
	key := dispatch.Key{Table: storage.TableMessages, Bytes: id[:]}
	return dispatch.Query(ctx, a.Router, dispatch.One(key, record.UnpackMessageRow))
}

// Message - the message stored under id
func (a *Archive) Message(ctx context.Context, id ledger.MessageId) (*ledger.Message, error) {
	if err := ratelimit.Wait(ctx, a.Limiter); nil != err {
		return nil, err
	}
	a.Log.Debugf("message: %s", id)

	row, err := a.messageRow(ctx, id)
	if nil != err {
		return nil, err
	}
	if nil == row.Message {
		return nil, fault.ErrNoMessageData
	}
	return row.Message, nil
}

// MessageMetadata - the derived state of the message stored under id
func (a *Archive) MessageMetadata(ctx context.Context, id ledger.MessageId) (*ledgerstate.MetadataView, error) {
	if err := ratelimit.Wait(ctx, a.Limiter); nil != err {
		return nil, err
	}
	a.Log.Debugf("metadata: %s", id)

	row, err := a.messageRow(ctx, id)
	if nil != err {
		return nil, err
	}
	return ledgerstate.ResolveMetadata(id, row.Message, row.Metadata)
}

// MessageChildren - messages naming id as a parent, newest first
func (a *Archive) MessageChildren(ctx context.Context, id ledger.MessageId) (*Listing[ledger.MessageId], error) {
	if err := ratelimit.Wait(ctx, a.Limiter); nil != err {
		return nil, err
	}
	a.Log.Debugf("children: %s", id)

	key := dispatch.Key{Table: storage.TableParents, Bytes: id[:]}
	rows, err := dispatch.Query(ctx, a.Router, dispatch.All(key, record.UnpackParentRecord))
	return listing(a, rows, err, func(r record.ParentRecord) ledger.MessageId {
		return r.MessageId
	})
}

// MessagesForIndex - messages carrying an indexation payload under index, newest first
func (a *Archive) MessagesForIndex(ctx context.Context, index []byte) (*Listing[ledger.MessageId], error) {
	if err := ratelimit.Wait(ctx, a.Limiter); nil != err {
		return nil, err
	}
	hashed := ledger.NewHashedIndex(index)
	a.Log.Debugf("index: %q  hashed: %s", index, hashed)

	key := dispatch.Key{Table: storage.TableIndexes, Bytes: hashed[:]}
	rows, err := dispatch.Query(ctx, a.Router, dispatch.All(key, record.UnpackHashedIndexRecord))
	return listing(a, rows, err, func(r record.HashedIndexRecord) ledger.MessageId {
		return r.MessageId
	})
}
