// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/state"
)

// Context binds a builtin contract address to the state it reads and writes.
type Context struct {
	address dino.Address
	state   *state.State
}

func NewContext(address dino.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() dino.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Slot derives the storage position of a named variable.
func Slot(name string) dino.Bytes32 {
	return dino.BytesToBytes32([]byte(name))
}
