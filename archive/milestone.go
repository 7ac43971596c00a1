// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package archive

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/permanode/dispatch"
	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/ratelimit"
	"github.com/bitmark-inc/permanode/record"
	"github.com/bitmark-inc/permanode/storage"
)

// Milestone - the message carrying a milestone
//
// milestones never change once stored so results are cached
func (a *Archive) Milestone(ctx context.Context, index ledger.MilestoneIndex) (*record.MilestoneRecord, error) {
	cacheKey := strconv.FormatUint(uint64(index), 10)
	if cached, found := a.milestones.Get(cacheKey); found {
		m := cached.(record.MilestoneRecord)
		return &m, nil
	}

	if err := ratelimit.Wait(ctx, a.Limiter); nil != err {
		return nil, err
	}
	a.Log.Debugf("milestone: %d", index)

	key := dispatch.Key{Table: storage.TableMilestones, Bytes: index.Bytes()}
	m, err := dispatch.Query(ctx, a.Router, dispatch.One(key, record.UnpackMilestoneRecord))
	if fault.ErrEmptyResult == errors.Cause(err) {
		return nil, errors.Wrapf(fault.ErrMilestoneNotFound, "index: %d", index)
	} else if nil != err {
		return nil, err
	}

	a.milestones.SetDefault(cacheKey, m)
	return &m, nil
}

// LatestMilestone - the highest milestone stored
func (a *Archive) LatestMilestone(ctx context.Context) (*record.MilestoneRecord, error) {
	if err := ratelimit.Wait(ctx, a.Limiter); nil != err {
		return nil, err
	}

	key := dispatch.Key{Table: storage.TableMilestones}
	m, err := dispatch.Query(ctx, a.Router, dispatch.One(key, record.UnpackMilestoneRecord))
	if fault.ErrEmptyResult == errors.Cause(err) {
		return nil, fault.ErrMilestoneNotFound
	} else if nil != err {
		return nil, err
	}
	return &m, nil
}

// Partitions - partitions holding index rows for a hint key, newest first
func Partitions[H record.HintVariant](ctx context.Context, a *Archive, hint record.Hint[H]) ([]record.Partition, error) {
	if err := ratelimit.Wait(ctx, a.Limiter); nil != err {
		return nil, err
	}
	a.Log.Debugf("partitions: %s %x", hint.Variant(), hint.HintBytes())

	key := dispatch.Key{Table: storage.TableHints, Bytes: hint.Pack(nil)}
	partitions, err := dispatch.Query(ctx, a.Router, dispatch.All(key, record.UnpackPartition))
	if fault.ErrEmptyResult == errors.Cause(err) {
		return []record.Partition{}, nil
	}
	return partitions, err
}
