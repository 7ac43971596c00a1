// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"

	"github.com/bitmark-inc/permanode/fault"
)

var (
	ErrExistsOne   = fault.ExistsError("exists one ")
	ErrExistsTwo   = fault.ExistsError("exists two")
	ErrInvalidOne  = fault.InvalidError("invalid one")
	ErrInvalidTwo  = fault.InvalidError("invalid two")
	ErrLengthOne   = fault.LengthError("length one")
	ErrLengthTwo   = fault.LengthError("length two")
	ErrNotFoundOne = fault.NotFoundError("not found one")
	ErrNotFoundTwo = fault.NotFoundError("not found two")
	ErrProcessOne  = fault.ProcessError("process one")
	ErrProcessTwo  = fault.ProcessError("process two")
	ErrRecordOne   = fault.RecordError("record one")
	ErrRecordTwo   = fault.RecordError("record two")
	ErrWorkerOne   = fault.WorkerError{Kind: "timeout"}
	ErrWrapped     = pkgerrors.Wrap(ErrRecordTwo, "row 7")
)

// test that various errors can be subclassed
func TestClasses(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		length   bool
		notFound bool
		process  bool
		record   bool
		worker   bool
	}{
		{ErrExistsOne, true, false, false, false, false, false, false},
		{ErrExistsTwo, true, false, false, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false, false, false},
		{ErrInvalidTwo, false, true, false, false, false, false, false},
		{ErrLengthOne, false, false, true, false, false, false, false},
		{ErrLengthTwo, false, false, true, false, false, false, false},
		{ErrNotFoundOne, false, false, false, true, false, false, false},
		{ErrNotFoundTwo, false, false, false, true, false, false, false},
		{ErrProcessOne, false, false, false, false, true, false, false},
		{ErrProcessTwo, false, false, false, false, true, false, false},
		{ErrRecordOne, false, false, false, false, false, true, false},
		{ErrRecordTwo, false, false, false, false, false, true, false},
		{ErrWorkerOne, false, false, false, false, false, false, true},
		{ErrWrapped, false, false, false, false, false, true, false},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrLength(err) != e.length {
			t.Errorf("%d: expected 'length' == %v for err = %v", i, e.length, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrRecord(err) != e.record {
			t.Errorf("%d: expected 'record' == %v for err = %v", i, e.record, err)
		}
		if fault.IsErrWorker(err) != e.worker {
			t.Errorf("%d: expected 'worker' == %v for err = %v", i, e.worker, err)
		}
	}
}

// the absent/empty/no response conditions must never compare equal
func TestDistinctConditions(t *testing.T) {
	conditions := []error{
		fault.ErrNotFound,
		fault.ErrEmptyResult,
		fault.ErrNoResponse,
		fault.ErrMalformedRow,
		fault.ErrMalformedVariant,
	}
	for i, a := range conditions {
		for j, b := range conditions {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v must not match %v", a, b)
			}
		}
	}

	if !errors.Is(ErrWrapped, ErrRecordTwo) {
		t.Errorf("wrapped error lost its cause: %v", ErrWrapped)
	}
}
