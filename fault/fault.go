// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"github.com/pkg/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ExistsError("already initialised")
	ErrEmptyResult          = NotFoundError("no results returned")
	ErrInvalidCount         = InvalidError("invalid count")
	ErrInvalidCursor        = InvalidError("invalid cursor")
	ErrInvalidHexString     = InvalidError("invalid hex string")
	ErrInvalidHintVariant   = InvalidError("invalid hint variant")
	ErrInvalidPartition     = InvalidError("partition does not match key")
	ErrInvalidPartitionSize = InvalidError("partition count and chunk size must be non-zero")
	ErrInvalidStructPointer = InvalidError("invalid struct pointer")
	ErrInvalidTable         = InvalidError("invalid table")
	ErrMalformedRow         = RecordError("malformed row")
	ErrMalformedVariant     = RecordError("malformed transaction variant")
	ErrMilestoneNotFound    = NotFoundError("milestone not found")
	ErrNoMessageData        = NotFoundError("no message data available for this message id")
	ErrNoMetadata           = NotFoundError("no metadata available for this message id")
	ErrNoResponse           = ProcessError("failed to receive response")
	ErrNotFound             = NotFoundError("not found")
	ErrNotInitialised       = NotFoundError("not initialised")
	ErrOutputNotFound       = NotFoundError("no output found")
	ErrRateLimiting         = InvalidError("rate limiting")
	ErrTTLTooLarge          = InvalidError("ttl exceeds maximum")
	ErrTooManyParents       = LengthError("too many parents")
	ErrWrongIdLength        = LengthError("identifier length is invalid")
)

// the error interface methods
func (e GenericError) Error() string  { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// WorkerError - failure reported by the store for a single request
//
// the kind is passed through verbatim
type WorkerError struct {
	Kind string
}

func (e WorkerError) Error() string { return "worker error: " + e.Kind }

// determine the class of an error
//
// wrapped errors are unwrapped to their cause first
func IsErrExists(e error) bool   { _, ok := errors.Cause(e).(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := errors.Cause(e).(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := errors.Cause(e).(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := errors.Cause(e).(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := errors.Cause(e).(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := errors.Cause(e).(RecordError); return ok }
func IsErrWorker(e error) bool   { _, ok := errors.Cause(e).(WorkerError); return ok }
