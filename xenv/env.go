// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/state"
)

// maxCallDepth bounds nested contract calls.
const maxCallDepth = 16

// BlockContext is the context shared by every call of one operation.
type BlockContext struct {
	Number uint64 // sequence number of the operation
	Time   uint64 // unix seconds, read once per operation
}

// Environment an env to execute native method.
type Environment struct {
	state    *state.State
	blockCtx *BlockContext
	origin   dino.Address
	caller   dino.Address
	depth    int
}

// New create a new env for a call made by origin.
func New(state *state.State, blockCtx *BlockContext, origin dino.Address) *Environment {
	return &Environment{
		state:    state,
		blockCtx: blockCtx,
		origin:   origin,
		caller:   origin,
	}
}

func (env *Environment) State() *state.State         { return env.state }
func (env *Environment) BlockContext() *BlockContext { return env.blockCtx }
func (env *Environment) BlockTime() uint64           { return env.blockCtx.Time }
func (env *Environment) Origin() dino.Address        { return env.origin }
func (env *Environment) Caller() dino.Address        { return env.caller }
func (env *Environment) Depth() int                  { return env.depth }

// WithCaller derives the env seen by a contract called by caller.
// It returns ErrCallDepth once nesting gets too deep.
func (env *Environment) WithCaller(caller dino.Address) (*Environment, error) {
	if env.depth >= maxCallDepth {
		return nil, ErrCallDepth
	}
	return &Environment{
		state:    env.state,
		blockCtx: env.blockCtx,
		origin:   env.origin,
		caller:   caller,
		depth:    env.depth + 1,
	}, nil
}
