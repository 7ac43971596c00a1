// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"sync"
)

// EventType - kind of answer from a shard
type EventType int

// event types
const (
	ResponseEvent EventType = iota
	ErrorEvent
)

func (t EventType) String() string {
	switch t {
	case ResponseEvent:
		return "response"
	case ErrorEvent:
		return "error"
	default:
		return "invalid"
	}
}

// Event - the single answer a worker receives
type Event struct {
	Type    EventType
	Payload []byte
	Kind    string
}

// Response - a successful select with its row payload
func Response(payload []byte) Event {
	return Event{Type: ResponseEvent, Payload: payload}
}

// Error - a failed select
func Error(kind string) Event {
	return Event{Type: ErrorEvent, Kind: kind}
}

// Worker - receiving end of one query
//
// only the first Send is delivered; Drop without a Send tells the
// waiting query that no answer will come
type Worker interface {
	Send(Event)
	Drop()
}

// Key - routing key for a query
type Key struct {
	Table string
	Bytes []byte
}

// Router - delivers a worker to the shard owning a key
type Router interface {
	SendLocal(key Key, worker Worker)
}

// worker that forwards its event to a waiting query
type oneShot struct {
	sync.Mutex
	done    bool
	channel chan Event
}

func newOneShot() *oneShot {
	return &oneShot{
		channel: make(chan Event, 1),
	}
}

// Send - deliver the first event and close
func (w *oneShot) Send(event Event) {
	w.Lock()
	defer w.Unlock()
	if w.done {
		return
	}
	w.done = true
	w.channel <- event
	close(w.channel)
}

// Drop - close without an event if nothing was sent
func (w *oneShot) Drop() {
	w.Lock()
	defer w.Unlock()
	if w.done {
		return
	}
	w.done = true
	close(w.channel)
}
