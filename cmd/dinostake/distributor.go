// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"time"

	"github.com/vechain/dinostake/builtin"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/health"
	"github.com/vechain/dinostake/runtime"
	"github.com/vechain/dinostake/xenv"
)

// distributor periodically pushes the accrued emission to every ledger.
type distributor struct {
	rt       *runtime.Runtime
	caller   dino.Address
	health   *health.Health
	interval time.Duration
}

func (d *distributor) distributeOnce() error {
	err := d.rt.Execute("distribute", d.caller, func(c *builtin.Contracts, env *xenv.Environment) error {
		return c.Mining().DistributeRewards(env)
	})
	if err != nil {
		return err
	}
	if d.health != nil {
		d.health.NewDistribution(d.rt.BlockTime())
	}
	return nil
}

// run distributes once per interval until ctx is done. Failed rounds are
// logged and retried on the next tick.
func (d *distributor) run(ctx context.Context) {
	ticker := d.rt.Clock().NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := d.distributeOnce(); err != nil {
				logger.Warn("failed to distribute rewards", "err", err)
				continue
			}
			logger.Debug("rewards distributed", "time", d.rt.BlockTime())
		}
	}
}
