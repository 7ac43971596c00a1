// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package archive

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/permanode/dispatch"
	"github.com/bitmark-inc/permanode/fault"
	"github.com/bitmark-inc/permanode/ledger"
	"github.com/bitmark-inc/permanode/ledgerstate"
	"github.com/bitmark-inc/permanode/ratelimit"
	"github.com/bitmark-inc/permanode/record"
	"github.com/bitmark-inc/permanode/storage"
)

// Balance - unspent outputs of an address and their total
//
// only the first MaxResults of the Count outputs listed for the
// address are resolved, so the total is partial when Count exceeds
// MaxResults
type Balance struct {
	Address    ledger.Ed25519Address     `json:"address"`
	Balance    uint64                    `json:"balance,string"`
	MaxResults int                       `json:"maxResults"`
	Count      int                       `json:"count"`
	Outputs    []*ledgerstate.OutputView `json:"outputs"`
}

// Output - an output with its creating message and spent state
func (a *Archive) Output(ctx context.Context, id ledger.OutputId) (*ledgerstate.OutputView, error) {
	if err := ratelimit.Wait(ctx, a.Limiter); nil != err {
		return nil, err
	}
	a.Log.Debugf("output: %s", id)
	return a.output(ctx, id)
}

func (a *Archive) output(ctx context.Context, id ledger.OutputId) (*ledgerstate.OutputView, error) {
	key := dispatch.Key{Table: storage.TableTransactions, Bytes: id[:]}
	rows, err := dispatch.Query(ctx, a.Router, dispatch.All(key, record.UnpackTransactionRecord))
	if nil != err && fault.ErrEmptyResult != errors.Cause(err) {
		return nil, err
	}
	return ledgerstate.ResolveOutput(id, rows)
}

// OutputsForAddress - ids of outputs sent to an address, newest first
func (a *Archive) OutputsForAddress(ctx context.Context, address ledger.Ed25519Address) (*Listing[ledger.OutputId], error) {
	if err := ratelimit.Wait(ctx, a.Limiter); nil != err {
		return nil, err
	}
	a.Log.Debugf("outputs: %s", address)
	return a.outputsForAddress(ctx, address)
}

func (a *Archive) outputsForAddress(ctx context.Context, address ledger.Ed25519Address) (*Listing[ledger.OutputId], error) {
	key := dispatch.Key{Table: storage.TableAddresses, Bytes: address[:]}
	rows, err := dispatch.Query(ctx, a.Router, dispatch.All(key, record.UnpackAddressRecord))
	return listing(a, rows, err, func(r record.AddressRecord) ledger.OutputId {
		return r.OutputId()
	})
}

// UnspentOutputs - resolve the listed outputs of an address, keeping the unspent ones
//
// Count and MaxResults are those of the address listing, Items holds
// only the unspent outputs among the first MaxResults listed;
// outputs are resolved concurrently, bounded by the configured
// concurrency
func (a *Archive) UnspentOutputs(ctx context.Context, address ledger.Ed25519Address) (*Listing[*ledgerstate.OutputView], error) {
	if err := ratelimit.Wait(ctx, a.Limiter); nil != err {
		return nil, err
	}
	a.Log.Debugf("unspent: %s", address)
	return a.unspentOutputs(ctx, address)
}

func (a *Archive) unspentOutputs(ctx context.Context, address ledger.Ed25519Address) (*Listing[*ledgerstate.OutputView], error) {
	ids, err := a.outputsForAddress(ctx, address)
	if nil != err {
		return nil, err
	}

	// each resolved output costs a request slot
	if n := len(ids.Items); n > 0 {
		if burst := a.Limiter.Burst(); n > burst {
			n = burst
		}
		if err := ratelimit.LimitN(a.Limiter, n, a.maxResults); nil != err {
			return nil, err
		}
	}

	views := make([]*ledgerstate.OutputView, len(ids.Items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, id := range ids.Items {
		i, id := i, id
		g.Go(func() error {
			view, err := a.output(gctx, id)
			if nil != err {
				return errors.WithMessagef(err, "output: %s", id)
			}
			views[i] = view
			return nil
		})
	}
	if err := g.Wait(); nil != err {
		return nil, err
	}

	unspent := make([]*ledgerstate.OutputView, 0, len(views))
	for _, v := range views {
		if !v.IsSpent {
			unspent = append(unspent, v)
		}
	}
	return &Listing[*ledgerstate.OutputView]{
		MaxResults: ids.MaxResults,
		Count:      ids.Count,
		Items:      unspent,
	}, nil
}

// Balance - total of the unspent outputs of an address
func (a *Archive) Balance(ctx context.Context, address ledger.Ed25519Address) (*Balance, error) {
	if err := ratelimit.Wait(ctx, a.Limiter); nil != err {
		return nil, err
	}
	a.Log.Debugf("balance: %s", address)

	unspent, err := a.unspentOutputs(ctx, address)
	if nil != err {
		return nil, err
	}

	result := &Balance{
		Address:    address,
		MaxResults: unspent.MaxResults,
		Count:      unspent.Count,
		Outputs:    unspent.Items,
	}
	for _, v := range unspent.Items {
		result.Balance += v.Output.Amount
	}
	return result, nil
}
