// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/dinostake/builtin"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/genesis"
	"github.com/vechain/dinostake/lvldb"
	"github.com/vechain/dinostake/state"
	"github.com/vechain/dinostake/xenv"
)

func inspectAction(ctx *cli.Context) error {
	if _, err := initLogger(ctx); err != nil {
		return err
	}
	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	mainDB, _, err := openMainDB(ctx, gene)
	if err != nil {
		return err
	}
	defer mainDB.Close()

	stater := state.NewStater(mainDB, slotCacheSize(ctx))
	rt, err := initRuntime(gene, stater, nil)
	if err != nil {
		return err
	}
	var r *report
	if err := rt.View(func(c *builtin.Contracts) (err error) {
		r, err = buildReport(c)
		return
	}); err != nil {
		return err
	}
	if err := countSlots(r, stater); err != nil {
		return err
	}
	return printJSON(os.Stdout, r)
}

type simulation struct {
	Holder    dino.Address   `json:"holder"`
	Ledger    dino.Address   `json:"ledger"`
	Deposited []dino.TokenID `json:"deposited"`
	Seconds   uint64         `json:"seconds"`
	Claimed   *big.Int       `json:"claimed"`
	Report    *report        `json:"report"`
}

func simulateAction(ctx *cli.Context) error {
	if _, err := initLogger(ctx); err != nil {
		return err
	}
	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	sim, err := simulate(gene, ctx.Uint64(secondsFlag.Name))
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, sim)
}

// simulateItems is how many items the simulation stakes at most.
const simulateItems = 6

// simulate deploys gene in memory, stakes up to six of the first configured
// items in the first ledger for its minimum lock, lets seconds pass,
// distributes once, claims and withdraws.
func simulate(gene *genesis.Genesis, seconds uint64) (*simulation, error) {
	cfg := gene.Config()
	if len(cfg.Pools) == 0 || len(cfg.Items) == 0 || cfg.Items[0].Count == 0 {
		return nil, errors.New("simulation needs a ledger and collateral items")
	}
	caller := cfg.Deployer
	if len(cfg.Distributors) > 0 {
		caller = cfg.Distributors[0]
	}

	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	clock := clockwork.NewFakeClockAt(time.Unix(int64(gene.LaunchTime()), 0))
	stater := state.NewStater(db, 0)
	rt, err := initRuntime(gene, stater, clock)
	if err != nil {
		return nil, err
	}

	var (
		items  = cfg.Items[0]
		pool   = cfg.Pools[0]
		ledger = builtin.PoolAddress(pool.Name)
		sim    = &simulation{Holder: items.Owner, Ledger: ledger, Seconds: seconds}
	)
	count := min(items.Count, simulateItems)
	if pool.MaximumNftStakingAllowed > 0 {
		count = min(count, pool.MaximumNftStakingAllowed)
	}
	for i := uint64(0); i < count; i++ {
		sim.Deposited = append(sim.Deposited, dino.TokenID(items.First+i))
	}

	err = rt.Execute("deposit", items.Owner, func(c *builtin.Contracts, env *xenv.Environment) error {
		if err := c.Dino().SetApprovalForAll(env, ledger, true); err != nil {
			return err
		}
		lock, err := c.Pool(ledger).MinimumLockDuration()
		if err != nil {
			return err
		}
		return c.Pool(ledger).Deposit(env, sim.Deposited, lock, items.Owner)
	})
	if err != nil {
		return nil, errors.Wrap(err, "deposit")
	}

	clock.Advance(time.Duration(seconds) * time.Second)
	d := &distributor{rt: rt, caller: caller}
	if err := d.distributeOnce(); err != nil {
		return nil, errors.Wrap(err, "distribute")
	}

	err = rt.Execute("claim", items.Owner, func(c *builtin.Contracts, env *xenv.Environment) (err error) {
		sim.Claimed, err = c.Pool(ledger).ClaimRewards(env, items.Owner)
		return
	})
	if err != nil {
		return nil, errors.Wrap(err, "claim")
	}

	err = rt.Execute("withdraw", items.Owner, func(c *builtin.Contracts, env *xenv.Environment) error {
		return c.Pool(ledger).Withdraw(env, sim.Deposited, items.Owner)
	})
	if err != nil {
		return nil, errors.Wrap(err, "withdraw")
	}

	err = rt.View(func(c *builtin.Contracts) (err error) {
		sim.Report, err = buildReport(c)
		return
	})
	if err != nil {
		return nil, err
	}
	if err := countSlots(sim.Report, stater); err != nil {
		return nil, err
	}
	return sim, nil
}
