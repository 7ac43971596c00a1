// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dispatch - one shot request/response to the storage ring
//
// A query hands a Worker to the router together with the key that
// selects the shard.  The shard answers exactly once, with either a
// response payload or an error kind, or it drops the worker without
// answering.  The outcome of a query is one of:
//
//   response that decodes to a value    value
//   response that fails to decode       the decode error
//   response with no rows               fault.ErrEmptyResult
//   error event                         fault.WorkerError
//   worker dropped with no event        fault.ErrNoResponse
//   context done                        the context error
package dispatch
