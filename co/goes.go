// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co holds small concurrency helpers.
package co

import (
	"context"
	"fmt"
	"sync"

	"github.com/vechain/dinostake/log"
)

var logger = log.WithContext("pkg", "co")

// Goes runs background routines and waits for them on shutdown.
type Goes struct {
	wg sync.WaitGroup
}

// Go runs f in a new routine. A panic in f is logged and re-raised.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("routine panicked", "err", fmt.Sprint(r))
				panic(r)
			}
		}()
		f()
	}()
}

// GoContext runs f with ctx in a new routine.
func (g *Goes) GoContext(ctx context.Context, f func(ctx context.Context)) {
	g.Go(func() { f(ctx) })
}

// Wait blocks until every routine started by Go returned.
func (g *Goes) Wait() {
	g.wg.Wait()
}

// Done returns a channel closed once every routine returned.
func (g *Goes) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		g.wg.Wait()
	}()
	return done
}
