// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/record"
	"github.com/bitmark-inc/permanode/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// colours
const (
	keyColour  = "\033[1;36m"
	valColour  = "\033[1;33m"
	deadColour = "\033[0;35m"
	endColour  = "\033[0m"
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "list", HasArg: getoptions.NO_ARGUMENT, Short: 'l'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "decode", HasArg: getoptions.NO_ARGUMENT, Short: 'd'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "partitions", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'p'},
		{Long: "chunk-size", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["list"]) > 0 {

		// this will be a struct type
		poolType := reflect.TypeOf(storage.Pool)

		// print all available tables
		fmt.Printf(" tables:\n")
		for i := 0; i < poolType.NumField(); i += 1 {
			fieldInfo := poolType.Field(i)
			fmt.Printf("       %s → %s (%s)\n", fieldInfo.Tag.Get("prefix"), fieldInfo.Tag.Get("table"), fieldInfo.Name)
		}
		return
	}

	if len(options["help"]) > 0 || 0 == len(arguments) || 1 != len(options["file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--colour] [--decode] [--count=N] [--partitions=N] [--chunk-size=N] --file=FILE table [key-prefix]", program)
	}

	colour := len(options["colour"]) > 0
	decode := len(options["decode"]) > 0
	verbose := len(options["verbose"]) > 0

	count := intOption(program, options, "count", 10)
	partitionCount := intOption(program, options, "partitions", int(record.DefaultPartitionCount))
	chunkSize := intOption(program, options, "chunk-size", int(record.DefaultChunkSize))

	filename := options["file"][0]
	table := arguments[0]
	if verbose {
		fmt.Printf("read table: %s from file: %q\n", table, filename)
	}

	prefix := []byte(nil)
	if len(arguments) > 1 {
		prefix, err = hex.DecodeString(arguments[1])
		if nil != err {
			exitwithstatus.Message("%s: convert prefix error: %s", program, err)
		}
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "permanode-dumpdb.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	partitioner, err := newPartitioner(partitionCount, chunkSize)
	if nil != err {
		exitwithstatus.Message("%s: partitioner error: %s", program, err)
	}

	// start of main processing
	err = storage.Initialise(filename, storage.ReadOnly, partitioner)
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer storage.Finalise()

	p, err := storage.PoolByTable(table)
	if nil != err {
		exitwithstatus.Message("%s: table: %q error: %s", program, table, err)
	}

	cursor := p.NewFetchCursor()
	if nil != prefix {
		cursor.Seek(prefix)
	}
	data, err := cursor.Fetch(count)
	if nil != err {
		exitwithstatus.Message("%s: fetch error: %s", program, err)
	}

	for i, e := range data {
		row, stamp, err := storage.InspectValue(e.Value)
		if nil != err {
			fmt.Printf("%d: Key: %x\n%d: Err: %s\n", i, e.Key, i, err)
			continue
		}

		k := fmt.Sprintf("%x", e.Key)
		v := fmt.Sprintf("%x", row)
		if decode {
			v = decodeRow(table, row)
		}
		if colour {
			vc := valColour
			if !stamp.Live {
				vc = deadColour
			}
			k = keyColour + k + endColour
			v = vc + v + endColour
		}

		fmt.Printf("%d: Key: %s\n", i, k)
		fmt.Printf("%d: TTL: %d  written: %s  live: %t\n", i, stamp.TTL, stamp.Written, stamp.Live)
		fmt.Printf("%d: Val: %s\n", i, v)
	}
}

func intOption(program string, options map[string][]string, name string, defaultValue int) int {
	if 0 == len(options[name]) {
		return defaultValue
	}
	n, err := strconv.Atoi(options[name][0])
	if nil != err {
		exitwithstatus.Message("%s: convert %s error: %s", program, name, err)
	}
	if n < 1 {
		exitwithstatus.Message("%s: invalid %s: %d", program, name, n)
	}
	return n
}

// partitioner from command line sizes
func newPartitioner(count int, chunkSize int) (record.Partitioner, error) {
	if count > math.MaxUint16 || int64(chunkSize) > math.MaxUint32 {
		return record.Partitioner{}, fault.ErrInvalidPartitionSize
	}
	if count < 0 || chunkSize < 0 {
		return record.Partitioner{}, fault.ErrInvalidPartitionSize
	}
	return record.NewPartitioner(uint16(count), uint32(chunkSize))
}

// decode a stored row as JSON
func decodeRow(table string, row []byte) string {
	value, err := unpackRow(table, row)
	if nil != err {
		return fmt.Sprintf("%x (%s)", row, err)
	}
	b, err := json.Marshal(value)
	if nil != err {
		return fmt.Sprintf("%x (%s)", row, err)
	}
	return string(b)
}
