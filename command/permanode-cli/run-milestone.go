// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/permanode/archive"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/record"
)

type milestoneResult struct {
	Index     *ledger.MilestoneIndex `json:"index,omitempty"`
	MessageId ledger.MessageId       `json:"messageId"`
	Timestamp uint64                 `json:"timestamp"`
}

func runMilestone(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	ctx, cancel := queryContext(m)
	defer cancel()

	s := c.Args().First()
	if "" == s {
		latest, err := m.archive.LatestMilestone(ctx)
		if nil != err {
			return err
		}
		return printJson(m.w, milestoneResult{MessageId: latest.MessageId, Timestamp: latest.Timestamp})
	}

	n, err := strconv.ParseUint(s, 10, 32)
	if nil != err {
		return ErrInvalidMilestone
	}
	index := ledger.MilestoneIndex(n)

	milestone, err := m.archive.Milestone(ctx, index)
	if nil != err {
		return err
	}
	return printJson(m.w, milestoneResult{Index: &index, MessageId: milestone.MessageId, Timestamp: milestone.Timestamp})
}

func runPartitions(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	address := c.String("address")
	parent := c.String("parent")
	index := c.String("index")

	selected := 0
	for _, s := range []string{address, parent, index} {
		if "" != s {
			selected += 1
		}
	}
	if 1 != selected {
		return ErrSelectOneKey
	}

	ctx, cancel := queryContext(m)
	defer cancel()

	var partitions []record.Partition
	var err error
	switch {
	case "" != address:
		a, e := ledger.AddressFromString(address)
		if nil != e {
			return e
		}
		partitions, err = archive.Partitions(ctx, m.archive, record.NewHint(a))
	case "" != parent:
		p, e := ledger.MessageIdFromString(parent)
		if nil != e {
			return e
		}
		partitions, err = archive.Partitions(ctx, m.archive, record.NewHint(p))
	default:
		partitions, err = archive.Partitions(ctx, m.archive, record.NewHint(ledger.NewHashedIndex([]byte(index))))
	}
	if nil != err {
		return err
	}

	if m.verbose {
		m.log.Debugf("partitions: %d", len(partitions))
	}
	return printJson(m.w, partitions)
}
