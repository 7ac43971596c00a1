// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/permanode/ledger"
)

func addressArgument(c *cli.Context) (ledger.Ed25519Address, error) {
	s := c.Args().First()
	if "" == s {
		return ledger.Ed25519Address{}, ErrMissingArgument
	}
	return ledger.AddressFromString(s)
}

func runOutput(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	s := c.Args().First()
	if "" == s {
		return ErrMissingArgument
	}
	id, err := ledger.OutputIdFromString(s)
	if nil != err {
		return err
	}

	ctx, cancel := queryContext(m)
	defer cancel()

	view, err := m.archive.Output(ctx, id)
	if nil != err {
		return err
	}
	return printJson(m.w, view)
}

func runOutputs(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	address, err := addressArgument(c)
	if nil != err {
		return err
	}

	ctx, cancel := queryContext(m)
	defer cancel()

	outputs, err := m.archive.OutputsForAddress(ctx, address)
	if nil != err {
		return err
	}
	return printJson(m.w, outputs)
}

func runUnspent(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	address, err := addressArgument(c)
	if nil != err {
		return err
	}

	ctx, cancel := queryContext(m)
	defer cancel()

	unspent, err := m.archive.UnspentOutputs(ctx, address)
	if nil != err {
		return err
	}
	return printJson(m.w, unspent)
}

func runBalance(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	address, err := addressArgument(c)
	if nil != err {
		return err
	}

	ctx, cancel := queryContext(m)
	defer cancel()

	balance, err := m.archive.Balance(ctx, address)
	if nil != err {
		return err
	}
	return printJson(m.w, balance)
}
