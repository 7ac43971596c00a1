// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/hex"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/permanode/ledger"
)

type messageResult struct {
	Id      ledger.MessageId `json:"messageId"`
	Message *ledger.Message  `json:"message"`
}

func messageIdArgument(c *cli.Context) (ledger.MessageId, error) {
	s := c.Args().First()
	if "" == s {
		return ledger.MessageId{}, ErrMissingArgument
	}
	return ledger.MessageIdFromString(s)
}

func queryContext(m *metadata) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

func runMessage(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := messageIdArgument(c)
	if nil != err {
		return err
	}

	ctx, cancel := queryContext(m)
	defer cancel()

	message, err := m.archive.Message(ctx, id)
	if nil != err {
		return err
	}
	return printJson(m.w, messageResult{Id: id, Message: message})
}

func runMetadata(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := messageIdArgument(c)
	if nil != err {
		return err
	}

	ctx, cancel := queryContext(m)
	defer cancel()

	view, err := m.archive.MessageMetadata(ctx, id)
	if nil != err {
		return err
	}
	return printJson(m.w, view)
}

func runChildren(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := messageIdArgument(c)
	if nil != err {
		return err
	}

	ctx, cancel := queryContext(m)
	defer cancel()

	children, err := m.archive.MessageChildren(ctx, id)
	if nil != err {
		return err
	}
	return printJson(m.w, children)
}

func runIndex(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	s := c.Args().First()
	if "" == s {
		return ErrMissingArgument
	}
	index := []byte(s)
	if c.Bool("hex") {
		b, err := hex.DecodeString(s)
		if nil != err {
			return err
		}
		index = b
	}

	ctx, cancel := queryContext(m)
	defer cancel()

	messages, err := m.archive.MessagesForIndex(ctx, index)
	if nil != err {
		return err
	}
	return printJson(m.w, messages)
}
