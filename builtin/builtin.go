// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the native contracts to fixed addresses and resolves
// the addresses contracts refer to each other by.
package builtin

import (
	"github.com/vechain/dinostake/builtin/dinopool"
	"github.com/vechain/dinostake/builtin/dinotoken"
	"github.com/vechain/dinostake/builtin/fossil"
	"github.com/vechain/dinostake/builtin/mining"
	"github.com/vechain/dinostake/builtin/rewards"
	"github.com/vechain/dinostake/builtin/utility"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/state"
)

// Builtin contracts binding.
var (
	Fossil  = newContract("Fossil")
	Dino    = newContract("Dino")
	Mining  = newContract("LiquidityMining")
	Utility = newContract("Utility")
)

// Contracts is the set of native contracts bound to one state.
type Contracts struct {
	state *state.State
	hooks map[dino.Address]dinotoken.Receiver
}

func New(state *state.State) *Contracts {
	return &Contracts{state: state}
}

func (c *Contracts) State() *state.State { return c.state }

func (c *Contracts) Fossil() *fossil.Fossil {
	return fossil.New(Fossil.Address, c.state)
}

func (c *Contracts) Dino() *dinotoken.DinoToken {
	return dinotoken.New(Dino.Address, c.state, c)
}

func (c *Contracts) Mining() *mining.Manager {
	return mining.New(Mining.Address, c.state, (*miningResolver)(c))
}

func (c *Contracts) Utility() *utility.Manager {
	return utility.New(Utility.Address, c.state, (*utilityResolver)(c))
}

// Pool returns the staking ledger at addr, deployed or not.
func (c *Contracts) Pool(addr dino.Address) *dinopool.Pool {
	return dinopool.New(addr, c.state, (*poolResolver)(c))
}

// Vault returns the reward vault at addr, deployed or not.
func (c *Contracts) Vault(addr dino.Address) *rewards.Vault {
	return rewards.New(addr, c.state, (*vaultResolver)(c))
}

// RegisterReceiver installs a receiver callback for items sent to addr.
// Staking ledgers are receivers without registration.
func (c *Contracts) RegisterReceiver(addr dino.Address, receiver dinotoken.Receiver) {
	if c.hooks == nil {
		c.hooks = make(map[dino.Address]dinotoken.Receiver)
	}
	c.hooks[addr] = receiver
}

// Receiver implements dinotoken.Receivers.
func (c *Contracts) Receiver(addr dino.Address) (dinotoken.Receiver, bool) {
	if r, ok := c.hooks[addr]; ok {
		return r, true
	}
	if c.isPool(addr) {
		return c.Pool(addr), true
	}
	return nil, false
}

func (c *Contracts) isPool(addr dino.Address) bool {
	ok, err := c.Pool(addr).Initialized()
	return err == nil && ok
}

func (c *Contracts) isVault(addr dino.Address) bool {
	owner, err := c.Vault(addr).Owner()
	return err == nil && !owner.IsZero()
}
