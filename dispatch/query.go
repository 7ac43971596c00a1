// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/record"
)

// DecodeFunc - convert a response payload, ok is false for no rows
type DecodeFunc[V any] func(payload []byte) (V, bool, error)

// Request - a select and the decoder for its result
type Request[V any] struct {
	Key    Key
	Decode DecodeFunc[V]
}

// One - request for the first row of a select
func One[T any](key Key, unpack record.UnpackFunc[T]) Request[T] {
	return Request[T]{
		Key: key,
		Decode: func(payload []byte) (T, bool, error) {
			r, ok, err := record.DecodeRow(payload, unpack)
			return r.Get(), ok, err
		},
	}
}

// All - request for every row of a select
func All[T any](key Key, unpack record.UnpackFunc[T]) Request[[]T] {
	return Request[[]T]{
		Key: key,
		Decode: func(payload []byte) ([]T, bool, error) {
			return record.DecodeRows(payload, unpack)
		},
	}
}

// query results for metrics
const (
	resultOk          = "ok"
	resultDecodeError = "decode_error"
	resultEmpty       = "empty"
	resultWorkerError = "worker_error"
	resultNoResponse  = "no_response"
	resultCancelled   = "cancelled"
)

var (
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permanode_dispatch_queries_total",
			Help: "Queries sent to the storage ring by table and outcome",
		},
		[]string{"table", "result"},
	)
	querySeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "permanode_dispatch_query_seconds",
			Help:    "Time from send to answer of storage queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table"},
	)
)

func init() {
	prometheus.MustRegister(queriesTotal, querySeconds)
}

// Query - send one request and wait for its single answer
func Query[V any](ctx context.Context, router Router, request Request[V]) (V, error) {
	var zero V

	start := time.Now()
	worker := newOneShot()
	router.SendLocal(request.Key, worker)

	result, err := func() (V, error) {
		// an answer already delivered wins over a done context
		select {
		case event, ok := <-worker.channel:
			return answer(request, event, ok)
		default:
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case event, ok := <-worker.channel:
			return answer(request, event, ok)
		}
	}()

	querySeconds.WithLabelValues(request.Key.Table).Observe(time.Since(start).Seconds())
	queriesTotal.WithLabelValues(request.Key.Table, outcome(err)).Inc()

	return result, err
}

// decode one event received from a worker channel
func answer[V any](request Request[V], event Event, ok bool) (V, error) {
	var zero V
	if !ok {
		return zero, fault.ErrNoResponse
	}
	switch event.Type {
	case ResponseEvent:
		value, found, err := request.Decode(event.Payload)
		if nil != err {
			return zero, errors.WithMessagef(err, "decode %s", request.Key.Table)
		}
		if !found {
			return zero, fault.ErrEmptyResult
		}
		return value, nil
	default:
		return zero, fault.WorkerError{Kind: event.Kind}
	}
}

func outcome(err error) string {
	switch {
	case nil == err:
		return resultOk
	case fault.ErrEmptyResult == err:
		return resultEmpty
	case fault.ErrNoResponse == err:
		return resultNoResponse
	case fault.IsErrWorker(err):
		return resultWorkerError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return resultCancelled
	default:
		return resultDecodeError
	}
}
