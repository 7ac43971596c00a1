// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/permanode/fault"
)

// common errors - keep in alphabetic order
const (
	ErrInvalidMilestone = fault.InvalidError("invalid milestone index")
	ErrMissingArgument  = fault.InvalidError("missing argument")
	ErrSelectOneKey     = fault.InvalidError("select exactly one of address, parent or index")
)
