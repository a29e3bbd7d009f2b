// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package guard provides a storage backed reentrancy guard for builtin contracts.
package guard

import (
	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/builtin/solidity"
)

var slotEntered = solidity.Slot("reentrancy-guard")

type Guard struct {
	entered *solidity.Bool
}

func New(sctx *solidity.Context) *Guard {
	return &Guard{entered: solidity.NewBool(sctx, slotEntered)}
}

// Enter marks the contract as executing. It fails with ErrReentrantCall when
// the contract is already executing. The returned func clears the mark.
func (g *Guard) Enter() (func(), error) {
	entered, err := g.entered.Get()
	if err != nil {
		return nil, err
	}
	if entered {
		return nil, reverts.ErrReentrantCall
	}
	g.entered.Set(true)
	return func() { g.entered.Set(false) }, nil
}

// Entered reports whether a guarded call is in flight.
func (g *Guard) Entered() (bool, error) {
	return g.entered.Get()
}
