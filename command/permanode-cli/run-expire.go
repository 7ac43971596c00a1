// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/permanode/background"
	"github.com/bitmark-inc/permanode/storage"
)

type pruneResult struct {
	Removed int `json:"removed"`
}

func runPrune(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	n, err := storage.Prune()
	if nil != err {
		return err
	}
	m.log.Infof("pruned: %d expired rows", n)
	return printJson(m.w, pruneResult{Removed: n})
}

func runExpire(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	expirer := &storage.Expirer{
		Log:      logger.New("expirer"),
		Interval: time.Duration(m.config.Expiry.Interval) * time.Second,
	}
	processes := background.Start(background.Processes{expirer}, nil)

	// wait for CTRL-C before shutting down to allow manual testing
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	m.log.Infof("received signal: %v", sig)
	if m.verbose {
		fmt.Fprintf(m.e, "\nreceived signal: %v\n", sig)
	}

	processes.Stop()
	return nil
}
