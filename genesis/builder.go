// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/dinostake/builtin"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/state"
	"github.com/vechain/dinostake/xenv"
)

// Builder helper to build the genesis state.
type Builder struct {
	timestamp uint64

	stateProcs []func(state *state.State) error
	calls      []call
}

type call struct {
	name   string
	caller dino.Address
	fn     func(c *builtin.Contracts, env *xenv.Environment) error
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Call add a contract call made by caller.
func (b *Builder) Call(name string, caller dino.Address, fn func(c *builtin.Contracts, env *xenv.Environment) error) *Builder {
	b.calls = append(b.calls, call{name, caller, fn})
	return b
}

// Build applies the state processes and calls to a fresh state.
func (b *Builder) Build(stater *state.Stater) (*state.State, error) {
	st := stater.NewState()

	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return nil, errors.Wrap(err, "state process")
		}
	}

	contracts := builtin.New(st)
	blockCtx := &xenv.BlockContext{Time: b.timestamp}
	for _, call := range b.calls {
		if err := call.fn(contracts, xenv.New(st, blockCtx, call.caller)); err != nil {
			return nil, errors.Wrapf(err, "genesis call %q", call.name)
		}
	}
	return st, nil
}
