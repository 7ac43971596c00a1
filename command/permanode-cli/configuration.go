// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/permanode/archive"
	"github.com/bitmark-inc/permanode/configuration"
	"github.com/bitmark-inc/permanode/record"
	"github.com/bitmark-inc/permanode/ring"
	"github.com/bitmark-inc/permanode/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "permanode.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "permanode.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultExpiryInterval = 600 // seconds
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

type PartitionType struct {
	Count     int `gluamapper:"partition_count" json:"partition_count"`
	ChunkSize int `gluamapper:"milestone_chunk_size" json:"milestone_chunk_size"`
}

type ExpiryType struct {
	Interval   int    `gluamapper:"interval" json:"interval"`
	DefaultTTL uint32 `gluamapper:"default_ttl" json:"default_ttl"`
}

type Configuration struct {
	DataDirectory string                `gluamapper:"data_directory" json:"data_directory"`
	Database      DatabaseType          `gluamapper:"database" json:"database"`
	Partitioning  PartitionType         `gluamapper:"partitioning" json:"partitioning"`
	Ring          ring.Configuration    `gluamapper:"ring" json:"ring"`
	Archive       archive.Configuration `gluamapper:"archive" json:"archive"`
	Expiry        ExpiryType            `gluamapper:"expiry" json:"expiry"`
	Logging       logger.Configuration  `gluamapper:"logging" json:"logging"`
}

// Partitioner - the partitioning scheme of the database
func (c *Configuration) Partitioner() (record.Partitioner, error) {
	p := c.Partitioning
	if p.Count <= 0 || p.Count > math.MaxUint16 || p.ChunkSize <= 0 || p.ChunkSize > math.MaxUint32 {
		return record.Partitioner{}, fmt.Errorf("partitioning: count: %d  chunk size: %d is out of range", p.Count, p.ChunkSize)
	}
	return record.NewPartitioner(uint16(p.Count), uint32(p.ChunkSize))
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Partitioning: PartitionType{
			Count:     int(record.DefaultPartitionCount),
			ChunkSize: int(record.DefaultChunkSize),
		},

		Archive: archive.Configuration{
			MaxResults: archive.DefaultMaxResults,
		},

		Expiry: ExpiryType{
			Interval: defaultExpiryInterval,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	if _, err := options.Partitioner(); nil != err {
		return nil, err
	}
	if options.Expiry.Interval <= 0 {
		return nil, fmt.Errorf("expiry: interval: %d must be positive", options.Expiry.Interval)
	}
	if options.Expiry.DefaultTTL > record.MaxTTL {
		return nil, fmt.Errorf("expiry: default ttl: %d exceeds: %d", options.Expiry.DefaultTTL, record.MaxTTL)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d, err = util.EnsureDirectory(options.DataDirectory, *d)
		if nil != err {
			return nil, err
		}
	}

	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// done
	return options, nil
}
