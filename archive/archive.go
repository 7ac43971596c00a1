// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package archive - typed lookups over the storage ring
//
// Every lookup is a single query through the router followed by an
// optional pure transform.  Point lookups report an empty row set as
// fault.ErrEmptyResult; listings report it as an empty listing.
package archive

import (
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/permanode/dispatch"
	"github.com/bitmark-inc/permanode/fault"
)

// defaults for a zero configuration
const (
	DefaultMaxResults     = 1000
	defaultConcurrency    = 8
	defaultRateLimit      = 200
	defaultRateBurst      = 100
	defaultMilestoneCache = 5 * time.Minute
)

// Configuration - archive limits
type Configuration struct {
	MaxResults            int     `gluamapper:"max_results" json:"max_results"`
	Concurrency           int     `gluamapper:"concurrency" json:"concurrency"`
	RateLimit             float64 `gluamapper:"rate_limit" json:"rate_limit"`
	Burst                 int     `gluamapper:"burst" json:"burst"`
	MilestoneCacheSeconds int     `gluamapper:"milestone_cache_seconds" json:"milestone_cache_seconds"`
}

// Archive - the lookup front end
type Archive struct {
	Log         *logger.L
	Limiter     *rate.Limiter
	Router      dispatch.Router
	milestones  *cache.Cache
	maxResults  int
	concurrency int
}

// Listing - at most MaxResults items out of Count found
//
// there is no continuation; items beyond MaxResults are not reachable
type Listing[T any] struct {
	MaxResults int `json:"maxResults"`
	Count      int `json:"count"`
	Items      []T `json:"items"`
}

// New - create an archive routing its queries through router
func New(log *logger.L, configuration Configuration, router dispatch.Router) *Archive {
	maxResults := configuration.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	concurrency := configuration.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	limit := rate.Limit(defaultRateLimit)
	if configuration.RateLimit > 0 {
		limit = rate.Limit(configuration.RateLimit)
	}
	burst := defaultRateBurst
	if configuration.Burst > 0 {
		burst = configuration.Burst
	}
	expiry := defaultMilestoneCache
	if configuration.MilestoneCacheSeconds > 0 {
		expiry = time.Duration(configuration.MilestoneCacheSeconds) * time.Second
	}

	return &Archive{
		Log:         log,
		Limiter:     rate.NewLimiter(limit, burst),
		Router:      router,
		milestones:  cache.New(expiry, 2*expiry),
		maxResults:  maxResults,
		concurrency: concurrency,
	}
}

// MaxResults - listing cap
func (a *Archive) MaxResults() int {
	return a.maxResults
}

// build a listing, treating an empty row set as no items
func listing[T any, R any](a *Archive, rows []R, err error, convert func(R) T) (*Listing[T], error) {
	if nil != err && fault.ErrEmptyResult != errors.Cause(err) {
		return nil, err
	}

	count := len(rows)
	n := count
	if n > a.maxResults {
		n = a.maxResults
	}
	items := make([]T, n)
	for i := 0; i < n; i += 1 {
		items[i] = convert(rows[i])
	}
	return &Listing[T]{
		MaxResults: a.maxResults,
		Count:      count,
		Items:      items,
	}, nil
}
