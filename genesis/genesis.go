// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis bootstraps the contracts of a fresh ledger database.
package genesis

import (
	"github.com/vechain/dinostake/state"
)

// Genesis to build the initial state.
type Genesis struct {
	builder *Builder
	name    string
	config  *Config
}

// Build the genesis state. The returned state is not committed.
func (g *Genesis) Build(stater *state.Stater) (*state.State, error) {
	return g.builder.Build(stater)
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// Config returns the configuration the genesis was made from.
func (g *Genesis) Config() *Config {
	return g.config
}

// LaunchTime returns the timestamp the contracts are deployed at.
func (g *Genesis) LaunchTime() uint64 {
	return g.builder.timestamp
}
