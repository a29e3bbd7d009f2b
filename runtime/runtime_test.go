// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime_test

import (
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dinostake/builtin"
	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/genesis"
	"github.com/vechain/dinostake/lvldb"
	"github.com/vechain/dinostake/runtime"
	"github.com/vechain/dinostake/state"
	"github.com/vechain/dinostake/xenv"
)

func newRuntime(t *testing.T) (*runtime.Runtime, *clockwork.FakeClock) {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	stater := state.NewStater(kv, 0)
	g := genesis.NewDevnet()
	st, err := g.Build(stater)
	require.NoError(t, err)
	require.NoError(t, st.Stage().Commit())

	clock := clockwork.NewFakeClockAt(time.Unix(int64(g.LaunchTime()), 0))
	rt := runtime.New(stater, clock)
	rt.SetBlockTime(g.LaunchTime())
	return rt, clock
}

func balanceOf(t *testing.T, rt *runtime.Runtime, addr dino.Address) *big.Int {
	var bal *big.Int
	require.NoError(t, rt.View(func(c *builtin.Contracts) (err error) {
		bal, err = c.Fossil().BalanceOf(addr)
		return
	}))
	return bal
}

func TestExecuteCommits(t *testing.T) {
	rt, _ := newRuntime(t)
	accs := genesis.DevAccounts()

	require.NoError(t, rt.Execute("transfer", accs[0].Address, func(c *builtin.Contracts, env *xenv.Environment) error {
		return c.Fossil().Transfer(env, accs[2].Address, big.NewInt(42))
	}))
	assert.Equal(t, int64(42), balanceOf(t, rt, accs[2].Address).Int64())
	assert.Equal(t, uint64(1), rt.BlockNumber())
}

func TestExecuteRevertsOnError(t *testing.T) {
	rt, _ := newRuntime(t)
	accs := genesis.DevAccounts()

	err := rt.Execute("transfer", accs[0].Address, func(c *builtin.Contracts, env *xenv.Environment) error {
		if err := c.Fossil().Transfer(env, accs[2].Address, big.NewInt(42)); err != nil {
			return err
		}
		return errors.Wrap(reverts.ErrInvalidConfig, "abort")
	})
	assert.ErrorIs(t, err, reverts.ErrInvalidConfig)
	assert.Zero(t, balanceOf(t, rt, accs[2].Address).Sign())
	assert.Zero(t, rt.BlockNumber())

	// view changes are never committed
	require.NoError(t, rt.View(func(c *builtin.Contracts) error {
		env := xenv.New(c.State(), &xenv.BlockContext{}, accs[0].Address)
		return c.Fossil().Transfer(env, accs[2].Address, big.NewInt(1))
	}))
	assert.Zero(t, balanceOf(t, rt, accs[2].Address).Sign())
}

func TestClockNeverGoesBackwards(t *testing.T) {
	rt, clock := newRuntime(t)
	floor := uint64(clock.Now().Unix()) + 100
	rt.SetBlockTime(floor)

	var seen uint64
	op := func(_ *builtin.Contracts, env *xenv.Environment) error {
		seen = env.BlockTime()
		return nil
	}
	require.NoError(t, rt.Execute("noop", dino.Address{}, op))
	assert.Equal(t, floor, seen)

	clock.Advance(time.Hour)
	require.NoError(t, rt.Execute("noop", dino.Address{}, op))
	assert.Equal(t, uint64(clock.Now().Unix()), seen)
	assert.Equal(t, seen, rt.BlockTime())
}

func TestExecuteIsSequential(t *testing.T) {
	rt, _ := newRuntime(t)
	accs := genesis.DevAccounts()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, rt.Execute("transfer", accs[0].Address, func(c *builtin.Contracts, env *xenv.Environment) error {
				return c.Fossil().Transfer(env, accs[3].Address, big.NewInt(1))
			}))
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(20), balanceOf(t, rt, accs[3].Address).Int64())
	assert.Equal(t, uint64(20), rt.BlockNumber())
}
