// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of each error so callers compare values
// rather than strings.  Errors are grouped into classes that the
// IsErrXxx functions recognise through any pkg/errors wrapping.
// Failures reported by a remote worker keep their kind verbatim in a
// WorkerError.
package fault
