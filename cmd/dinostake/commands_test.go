// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dinostake/builtin"
	"github.com/vechain/dinostake/genesis"
	"github.com/vechain/dinostake/health"
	"github.com/vechain/dinostake/lvldb"
	"github.com/vechain/dinostake/state"
)

func TestSimulate(t *testing.T) {
	sim, err := simulate(genesis.NewDevnet(), 86400)
	require.NoError(t, err)

	emitted := new(big.Int).Mul(big.NewInt(5e14), big.NewInt(86400))
	assert.Len(t, sim.Deposited, 6)
	assert.Equal(t, genesis.DevAccounts()[1].Address, sim.Holder)
	assert.Equal(t, emitted, sim.Report.Supply.TotalEmitted)
	assert.Equal(t, sim.Claimed, sim.Report.Supply.TotalClaimed)
	assert.True(t, sim.Claimed.Sign() > 0)
	assert.True(t, sim.Claimed.Cmp(emitted) <= 0)

	require.Len(t, sim.Report.Ledgers, 1)
	ledger := sim.Report.Ledgers[0]
	assert.Equal(t, emitted, ledger.TotalDistributed)
	assert.Equal(t, sim.Claimed, ledger.VaultReleased)
	assert.Equal(t, new(big.Int).Sub(emitted, sim.Claimed), ledger.VaultBalance)
	assert.Positive(t, ledger.StorageSlots)
	assert.Zero(t, ledger.TotalSupply.Sign())

	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, sim))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sim.Ledger.String(), decoded["ledger"])
}

func TestSimulateRequiresItems(t *testing.T) {
	cfg := genesis.DevConfig()
	cfg.Items = nil
	gene, err := genesis.NewGenesis("empty", cfg)
	require.NoError(t, err)

	_, err = simulate(gene, 10)
	assert.Error(t, err)
}

func TestSimulateShorterThanLock(t *testing.T) {
	// items are still locked when the withdrawal is attempted
	_, err := simulate(genesis.NewDevnet(), 10)
	assert.ErrorContains(t, err, "withdraw")
}

func TestInitRuntimeReopens(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	gene := genesis.NewDevnet()
	stater := state.NewStater(db, 0)
	clock := clockwork.NewFakeClockAt(time.Unix(int64(gene.LaunchTime()), 0).Add(time.Hour))

	rt, err := initRuntime(gene, stater, clock)
	require.NoError(t, err)
	assert.Equal(t, gene.LaunchTime(), rt.BlockTime())

	d := &distributor{rt: rt, caller: genesis.DevAccounts()[0].Address}
	require.NoError(t, d.distributeOnce())
	last := rt.BlockTime()
	assert.Equal(t, gene.LaunchTime()+3600, last)

	// a second start over the same store must not redeploy
	rt, err = initRuntime(gene, stater, clockwork.NewFakeClockAt(time.Unix(int64(gene.LaunchTime()), 0)))
	require.NoError(t, err)
	assert.Equal(t, last, rt.BlockTime())

	require.NoError(t, rt.View(func(c *builtin.Contracts) error {
		deployed, err := genesis.Deployed(c)
		assert.True(t, deployed)
		return err
	}))
}

func TestDistributorRun(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	gene := genesis.NewDevnet()
	clock := clockwork.NewFakeClockAt(time.Unix(int64(gene.LaunchTime()), 0))
	rt, err := initRuntime(gene, state.NewStater(db, 0), clock)
	require.NoError(t, err)

	h := health.New(clock, time.Hour)
	h.BootstrapStatus(true)
	d := &distributor{
		rt:       rt,
		caller:   genesis.DevAccounts()[0].Address,
		health:   h,
		interval: time.Minute,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.run(ctx)
		close(done)
	}()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Minute)

	require.Eventually(t, func() bool {
		status, err := h.Status()
		return err == nil && status.Healthy
	}, time.Second, 10*time.Millisecond)

	status, err := h.Status()
	require.NoError(t, err)
	assert.Equal(t, gene.LaunchTime()+60, status.Distribution.LedgerTime)

	cancel()
	<-done
}

func TestDistributorWithoutRole(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	gene := genesis.NewDevnet()
	rt, err := initRuntime(gene, state.NewStater(db, 0), clockwork.NewFakeClock())
	require.NoError(t, err)

	d := &distributor{rt: rt, caller: genesis.DevAccounts()[2].Address}
	assert.Error(t, d.distributeOnce())

	require.NoError(t, rt.View(func(c *builtin.Contracts) error {
		last, err := c.Mining().LastDistribution()
		assert.Equal(t, gene.LaunchTime(), last)
		return err
	}))
}
