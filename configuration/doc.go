// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// the file is executed with the base Lua libraries loaded, so it may
// read environment variables or other files to compute values; it must
// return a table, which is mapped onto the caller's structure using
// the "gluamapper" field tags
package configuration
