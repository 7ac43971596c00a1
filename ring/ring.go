// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ring - local shard router between queries and the store
//
// Each shard is a background process with its own bounded queue.  A
// key always maps to the same shard so requests for one key are
// served in arrival order.  Enqueueing never blocks: a full queue,
// a stopped ring or an exhausted rate limit are answered at once with
// an error event.
package ring

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/permanode/background"
	"github.com/bitmark-inc/permanode/dispatch"
	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ratelimit"
)

// error kinds sent to workers by the ring itself
const (
	KindOverloaded  = "overloaded"
	KindRateLimited = "rate limited"
	KindStopped     = "ring stopped"
)

// defaults for a zero configuration
const (
	defaultShards    = 4
	defaultQueueSize = 1024
)

// Executor - the store that answers selects
type Executor interface {
	Select(table string, key []byte) ([]byte, error)
}

// Configuration - ring sizing
type Configuration struct {
	Shards    int     `gluamapper:"shards" json:"shards"`
	QueueSize int     `gluamapper:"queue_size" json:"queue_size"`
	RateLimit float64 `gluamapper:"rate_limit" json:"rate_limit"`
	Burst     int     `gluamapper:"burst" json:"burst"`
}

var (
	inFlightGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "permanode_ring_in_flight",
		Help: "Requests queued or executing in the storage ring",
	})
	rejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permanode_ring_rejected_total",
			Help: "Requests answered by the ring without reaching the store",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(inFlightGauge, rejectedTotal)
}

// Ring - routes workers to shards
type Ring struct {
	sync.RWMutex
	log       *logger.L
	shards    []*shard
	limiter   *rate.Limiter
	inFlight  *xsync.Counter
	processes *background.T
	started   bool
	stopped   bool
}

// New - create a ring over an executor; call Start before use
func New(configuration Configuration, executor Executor) (*Ring, error) {
	if nil == executor {
		return nil, fault.ErrNotInitialised
	}
	if configuration.Shards < 0 || configuration.QueueSize < 0 || configuration.RateLimit < 0 || configuration.Burst < 0 {
		return nil, fault.ErrInvalidCount
	}
	if 0 == configuration.Shards {
		configuration.Shards = defaultShards
	}
	if 0 == configuration.QueueSize {
		configuration.QueueSize = defaultQueueSize
	}

	limit := rate.Inf
	if configuration.RateLimit > 0 {
		limit = rate.Limit(configuration.RateLimit)
	}
	burst := configuration.Burst
	if 0 == burst {
		burst = configuration.QueueSize
	}

	r := &Ring{
		log:      logger.New("ring"),
		shards:   make([]*shard, configuration.Shards),
		limiter:  rate.NewLimiter(limit, burst),
		inFlight: xsync.NewCounter(),
	}
	for i := range r.shards {
		r.shards[i] = &shard{
			index:    i,
			log:      logger.New("shard"),
			queue:    make(chan request, configuration.QueueSize),
			executor: executor,
			inFlight: r.inFlight,
		}
	}
	return r, nil
}

// Start - run the shard processes
func (r *Ring) Start() {
	r.Lock()
	defer r.Unlock()
	if r.started {
		return
	}
	r.started = true

	processes := make(background.Processes, len(r.shards))
	for i, s := range r.shards {
		processes[i] = s
	}
	r.processes = background.Start(processes, r.log)
	r.log.Infof("started: %d shards", len(r.shards))
}

// Stop - refuse new requests, drop queued ones and wait for the shards
func (r *Ring) Stop() {
	r.Lock()
	if r.stopped || !r.started {
		r.stopped = true
		r.Unlock()
		return
	}
	r.stopped = true
	r.Unlock()

	r.processes.Stop()
	r.log.Info("stopped")
}

// Shard - index of the shard serving a key
func (r *Ring) Shard(key dispatch.Key) int {
	d := xxhash.New()
	_, _ = d.WriteString(key.Table)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(key.Bytes)
	return int(d.Sum64() % uint64(len(r.shards)))
}

// InFlight - requests queued or executing
func (r *Ring) InFlight() int64 {
	return r.inFlight.Value()
}

// SendLocal - queue a worker on the shard owning its key
func (r *Ring) SendLocal(key dispatch.Key, worker dispatch.Worker) {
	r.RLock()
	defer r.RUnlock()

	if r.stopped || !r.started {
		reject(worker, KindStopped)
		return
	}
	if err := ratelimit.Allow(r.limiter); nil != err {
		reject(worker, KindRateLimited)
		return
	}

	req := request{
		id:     uuid.New(),
		key:    key,
		worker: worker,
	}

	s := r.shards[r.Shard(key)]
	r.inFlight.Inc()
	inFlightGauge.Inc()
	select {
	case s.queue <- req:
		r.log.Tracef("queued: %s  shard: %d  table: %s", req.id, s.index, key.Table)
	default:
		r.inFlight.Dec()
		inFlightGauge.Dec()
		reject(worker, KindOverloaded)
	}
}

func reject(worker dispatch.Worker, kind string) {
	rejectedTotal.WithLabelValues(kind).Inc()
	worker.Send(dispatch.Error(kind))
}
