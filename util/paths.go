// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureDirectory - resolve a directory against a base and create it
// if it does not already exist
func EnsureDirectory(base string, directory string) (string, error) {
	directory = EnsureAbsolute(base, directory)
	if err := os.MkdirAll(directory, 0700); nil != err {
		return "", err
	}
	return directory, nil
}
