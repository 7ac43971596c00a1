// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ring

import (
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/permanode/dispatch"
)

type request struct {
	id     uuid.UUID
	key    dispatch.Key
	worker dispatch.Worker
}

type shard struct {
	index    int
	log      *logger.L
	queue    chan request
	executor Executor
	inFlight *xsync.Counter
}

// Run - serve the queue until shutdown, then drop whatever is left
func (s *shard) Run(args interface{}, shutdown <-chan struct{}) {
	s.log.Debugf("shard: %d starting…", s.index)

loop:
	for {
		// shutdown takes priority over queued requests
		select {
		case <-shutdown:
			break loop
		default:
		}

		select {
		case <-shutdown:
			break loop
		case req := <-s.queue:
			s.execute(req)
		}
	}

	dropped := 0
drain:
	for {
		select {
		case req := <-s.queue:
			req.worker.Drop()
			s.done()
			dropped += 1
		default:
			break drain
		}
	}
	s.log.Debugf("shard: %d stopped  dropped: %d", s.index, dropped)
}

func (s *shard) execute(req request) {
	defer s.done()

	payload, err := s.executor.Select(req.key.Table, req.key.Bytes)
	if nil != err {
		s.log.Debugf("request: %s  table: %s  error: %s", req.id, req.key.Table, err)
		req.worker.Send(dispatch.Error(err.Error()))
		return
	}
	req.worker.Send(dispatch.Response(payload))
}

func (s *shard) done() {
	s.inFlight.Dec()
	inFlightGauge.Dec()
}
