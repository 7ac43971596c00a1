// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/permanode/dispatch"
	"github.com/bitmark-inc/permanode/dispatch/mocks"
	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/record"
)

var milestoneKey = dispatch.Key{Table: "milestones", Bytes: ledger.MilestoneIndex(5).Bytes()}

func milestoneRequest() dispatch.Request[record.MilestoneRecord] {
	return dispatch.One(milestoneKey, record.UnpackMilestoneRecord)
}

// router that answers every query with the given events, then drops the worker
func answer(router *mocks.MockRouter, events ...dispatch.Event) {
	router.EXPECT().SendLocal(milestoneKey, gomock.Any()).Do(func(key dispatch.Key, worker dispatch.Worker) {
		for _, e := range events {
			worker.Send(e)
		}
		worker.Drop()
	}).Times(1)
}

func TestQueryOk(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	router := mocks.NewMockRouter(ctl)
	m := record.MilestoneRecord{MessageId: ledger.MessageId{1, 2, 3}, Timestamp: 77}
	answer(router, dispatch.Response(record.PackRows([][]byte{m.Pack(nil)})))

	result, err := dispatch.Query(context.Background(), router, milestoneRequest())
	assert.Nil(t, err, "query error")
	assert.Equal(t, m, result, "wrong milestone")
}

func TestQueryAll(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	router := mocks.NewMockRouter(ctl)
	rows := []record.MilestoneRecord{{Timestamp: 1}, {Timestamp: 2}}
	answer(router, dispatch.Response(record.PackRows([][]byte{rows[0].Pack(nil), rows[1].Pack(nil)})))

	result, err := dispatch.Query(context.Background(), router, dispatch.All(milestoneKey, record.UnpackMilestoneRecord))
	assert.Nil(t, err, "query error")
	assert.Equal(t, rows, result, "wrong rows")
}

func TestQueryOnlyFirstEventCounts(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	router := mocks.NewMockRouter(ctl)
	m := record.MilestoneRecord{Timestamp: 9}
	answer(router,
		dispatch.Response(record.PackRows([][]byte{m.Pack(nil)})),
		dispatch.Error("late"),
	)

	result, err := dispatch.Query(context.Background(), router, milestoneRequest())
	assert.Nil(t, err, "query error")
	assert.Equal(t, m, result, "wrong milestone")
}

func TestQueryEmpty(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	router := mocks.NewMockRouter(ctl)
	answer(router, dispatch.Response(record.PackRows(nil)))

	_, err := dispatch.Query(context.Background(), router, milestoneRequest())
	assert.Equal(t, fault.ErrEmptyResult, err, "wrong error")
	assert.Equal(t, "no results returned", err.Error(), "wrong message")
}

func TestQueryDecodeError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	router := mocks.NewMockRouter(ctl)
	answer(router, dispatch.Response(record.PackRows([][]byte{{1, 2}})))

	_, err := dispatch.Query(context.Background(), router, milestoneRequest())
	assert.True(t, fault.IsErrRecord(err), "expected record error: %v", err)
}

func TestQueryWorkerError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	router := mocks.NewMockRouter(ctl)
	answer(router, dispatch.Error("overloaded"))

	_, err := dispatch.Query(context.Background(), router, milestoneRequest())
	assert.Equal(t, fault.WorkerError{Kind: "overloaded"}, err, "wrong error")
	assert.True(t, fault.IsErrWorker(err), "not a worker error")
}

func TestQueryNoResponse(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	router := mocks.NewMockRouter(ctl)
	answer(router)

	_, err := dispatch.Query(context.Background(), router, milestoneRequest())
	assert.Equal(t, fault.ErrNoResponse, err, "wrong error")
}

func TestQueryLateAnswer(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	router := mocks.NewMockRouter(ctl)
	m := record.MilestoneRecord{Timestamp: 3}
	router.EXPECT().SendLocal(milestoneKey, gomock.Any()).Do(func(key dispatch.Key, worker dispatch.Worker) {
		go func() {
			time.Sleep(10 * time.Millisecond)
			worker.Send(dispatch.Response(record.PackRows([][]byte{m.Pack(nil)})))
		}()
	}).Times(1)

	result, err := dispatch.Query(context.Background(), router, milestoneRequest())
	assert.Nil(t, err, "query error")
	assert.Equal(t, m, result, "wrong milestone")
}

func TestQueryCancelled(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	router := mocks.NewMockRouter(ctl)
	router.EXPECT().SendLocal(milestoneKey, gomock.Any()).Times(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := dispatch.Query(ctx, router, milestoneRequest())
	assert.Equal(t, context.DeadlineExceeded, err, "wrong error")
}

func TestQueryAnsweredBeforeCancel(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	router := mocks.NewMockRouter(ctl)
	m := record.MilestoneRecord{Timestamp: 31}
	router.EXPECT().SendLocal(milestoneKey, gomock.Any()).Do(func(key dispatch.Key, worker dispatch.Worker) {
		worker.Send(dispatch.Response(record.PackRows([][]byte{m.Pack(nil)})))
	}).Times(20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// both cases are ready, the delivered answer must always win
	for i := 0; i < 20; i += 1 {
		result, err := dispatch.Query(ctx, router, milestoneRequest())
		assert.Nil(t, err, "%d: query error", i)
		assert.Equal(t, m, result, "%d: wrong milestone", i)
	}
}
