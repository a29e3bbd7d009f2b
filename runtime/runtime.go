// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes ledger operations one at a time against the
// committed state. An operation either commits all its changes or none.
package runtime

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/vechain/dinostake/builtin"
	"github.com/vechain/dinostake/builtin/dinotoken"
	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/log"
	"github.com/vechain/dinostake/metrics"
	"github.com/vechain/dinostake/state"
	"github.com/vechain/dinostake/xenv"
)

var (
	logger = log.WithContext("pkg", "runtime")

	metricExecuteDuration = metrics.LazyLoadHistogramVec("runtime_execute_duration_ms", []string{"op", "status"}, metrics.BucketOperationMillis)
	metricCommittedSlots  = metrics.LazyLoadCounter("runtime_committed_slots_count")
)

// Op is a ledger operation run by the caller at the environment's block time.
type Op func(c *builtin.Contracts, env *xenv.Environment) error

// Runtime is to support operation execution.
type Runtime struct {
	mu     sync.Mutex
	stater *state.Stater
	clock  clockwork.Clock
	hooks  map[dino.Address]dinotoken.Receiver

	// block env
	blockNumber uint64
	blockTime   uint64
}

// New create a Runtime object. A nil clock means the wall clock.
func New(stater *state.Stater, clock clockwork.Clock) *Runtime {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Runtime{
		stater: stater,
		clock:  clock,
		hooks:  make(map[dino.Address]dinotoken.Receiver),
	}
}

func (rt *Runtime) Clock() clockwork.Clock { return rt.clock }

// BlockTime returns the time of the last executed operation.
func (rt *Runtime) BlockTime() uint64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.blockTime
}

// BlockNumber returns the count of executed operations.
func (rt *Runtime) BlockNumber() uint64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.blockNumber
}

// SetBlockTime moves the time floor forward, e.g. to the time the state was last touched.
func (rt *Runtime) SetBlockTime(t uint64) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if t > rt.blockTime {
		rt.blockTime = t
	}
}

// RegisterReceiver installs an item receiver for every subsequent operation.
func (rt *Runtime) RegisterReceiver(addr dino.Address, receiver dinotoken.Receiver) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.hooks[addr] = receiver
}

func (rt *Runtime) contracts(st *state.State) *builtin.Contracts {
	c := builtin.New(st)
	for addr, r := range rt.hooks {
		c.RegisterReceiver(addr, r)
	}
	return c
}

// now returns the clock in seconds, never earlier than the last operation.
func (rt *Runtime) now() uint64 {
	now := rt.clock.Now().Unix()
	if now < 0 || uint64(now) < rt.blockTime {
		return rt.blockTime
	}
	return uint64(now)
}

// Execute runs op as caller and commits its changes. Operations are strictly
// sequential; a failed operation leaves the committed state untouched.
func (rt *Runtime) Execute(name string, caller dino.Address, op Op) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	var (
		start    = time.Now()
		st       = rt.stater.NewState()
		blockCtx = &xenv.BlockContext{Number: rt.blockNumber + 1, Time: rt.now()}
		status   = "ok"
	)
	defer func() {
		metricExecuteDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": name, "status": status})
	}()

	checkpoint := st.NewCheckpoint()
	if err := op(rt.contracts(st), xenv.New(st, blockCtx, caller)); err != nil {
		st.RevertTo(checkpoint)
		status = "revert"
		if !reverts.IsRevertErr(err) {
			status = "error"
			logger.Warn("operation failed", "op", name, "caller", caller, "err", err)
		} else {
			logger.Debug("operation reverted", "op", name, "caller", caller, "err", err)
		}
		return err
	}

	stage := st.Stage()
	if err := stage.Commit(); err != nil {
		status = "error"
		return errors.Wrapf(err, "commit %s", name)
	}
	metricCommittedSlots().Add(int64(stage.Len()))

	rt.blockNumber = blockCtx.Number
	rt.blockTime = blockCtx.Time
	logger.Trace("operation executed", "op", name, "caller", caller, "number", blockCtx.Number, "time", blockCtx.Time, "slots", stage.Len())
	return nil
}

// View runs fn against the committed state. Changes fn makes are discarded.
func (rt *Runtime) View(fn func(c *builtin.Contracts) error) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return fn(rt.contracts(rt.stater.NewState()))
}
