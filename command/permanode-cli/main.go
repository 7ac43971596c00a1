// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/permanode/archive"
	"github.com/bitmark-inc/permanode/ring"
	"github.com/bitmark-inc/permanode/storage"
)

type metadata struct {
	file    string
	config  *Configuration
	log     *logger.L
	ring    *ring.Ring
	archive *archive.Archive
	timeout time.Duration
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// commands that write to the database
var writers = map[string]bool{
	"prune":  true,
	"expire": true,
}

func main() {

	app := cli.NewApp()
	app.Name = "permanode-cli"
	app.Usage = "query a permanode archive"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "permanode.conf",
			Usage: " configuration `FILE`",
		},
		cli.StringSliceFlag{
			Name:  "define, d",
			Usage: " set a configuration variable `NAME=VALUE`",
		},
		cli.DurationFlag{
			Name:  "timeout, t",
			Value: 10 * time.Second,
			Usage: " query `DURATION`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "message",
			Usage:     "show a stored message",
			ArgsUsage: "MESSAGE-ID",
			Action:    runMessage,
		},
		{
			Name:      "metadata",
			Usage:     "show the ledger state of a message",
			ArgsUsage: "MESSAGE-ID",
			Action:    runMetadata,
		},
		{
			Name:      "children",
			Usage:     "list messages that approve a message",
			ArgsUsage: "MESSAGE-ID",
			Action:    runChildren,
		},
		{
			Name:      "index",
			Usage:     "list messages with an indexation payload",
			ArgsUsage: "INDEX",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "hex, x",
					Usage: " index is hex encoded",
				},
			},
			Action: runIndex,
		},
		{
			Name:      "output",
			Usage:     "show an output and whether it is spent",
			ArgsUsage: "OUTPUT-ID",
			Action:    runOutput,
		},
		{
			Name:      "outputs",
			Usage:     "list output ids of an address",
			ArgsUsage: "ADDRESS",
			Action:    runOutputs,
		},
		{
			Name:      "unspent",
			Usage:     "list unspent outputs of an address",
			ArgsUsage: "ADDRESS",
			Action:    runUnspent,
		},
		{
			Name:      "balance",
			Usage:     "total of the unspent outputs of an address",
			ArgsUsage: "ADDRESS",
			Action:    runBalance,
		},
		{
			Name:      "milestone",
			Usage:     "show a milestone, or the latest one",
			ArgsUsage: "[INDEX]",
			Action:    runMilestone,
		},
		{
			Name:      "partitions",
			Usage:     "list the partitions holding rows of a key",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "+address `HEX`",
				},
				cli.StringFlag{
					Name:  "parent, p",
					Value: "",
					Usage: "+parent message id `HEX`",
				},
				cli.StringFlag{
					Name:  "index, i",
					Value: "",
					Usage: "+indexation `STRING`",
				},
			},
			Action: runPartitions,
		},
		{
			Name:   "prune",
			Usage:  "delete expired rows once",
			Action: runPrune,
		},
		{
			Name:   "expire",
			Usage:  "delete expired rows periodically until interrupted",
			Action: runExpire,
		},
		{
			Name:  "version",
			Usage: "display program version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration and open the database
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command || "help" == command || "" == command {
			return nil
		}

		variables := make(map[string]string)
		for _, d := range c.GlobalStringSlice("define") {
			s := strings.SplitN(d, "=", 2)
			if 2 != len(s) || "" == s[0] {
				return fmt.Errorf("define: %q is not NAME=VALUE", d)
			}
			variables[s[0]] = s[1]
		}

		file := c.GlobalString("config-file")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		configuration, err := getConfiguration(file, variables)
		if nil != err {
			return err
		}

		if err := logger.Initialise(configuration.Logging); nil != err {
			return err
		}
		log := logger.New("main")
		log.Infof("version: %s", version)

		partitioner, err := configuration.Partitioner()
		if nil != err {
			return err
		}

		readOnly := storage.ReadOnly
		if writers[command] {
			readOnly = storage.ReadWrite
		}
		if verbose {
			fmt.Fprintf(e, "database: %s\n", configuration.Database.Name)
		}
		if err := storage.Initialise(configuration.Database.Name, readOnly, partitioner); nil != err {
			log.Criticalf("storage initialise error: %s", err)
			return err
		}

		r, err := ring.New(configuration.Ring, storage.Executor{Log: logger.New("storage-executor")})
		if nil != err {
			log.Criticalf("ring initialise error: %s", err)
			return err
		}
		r.Start()

		c.App.Metadata["config"] = &metadata{
			file:    file,
			config:  configuration,
			log:     log,
			ring:    r,
			archive: archive.New(logger.New("archive"), configuration.Archive, r),
			timeout: c.GlobalDuration("timeout"),
			verbose: verbose,
			e:       e,
			w:       w,
		}

		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		m.ring.Stop()
		storage.Finalise()
		m.log.Info("finished")
		logger.Finalise()
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
