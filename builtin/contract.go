// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/dinostake/dino"
)

type contract struct {
	name    string
	Address dino.Address
}

func newContract(name string) *contract {
	return &contract{
		name,
		dino.BytesToAddress([]byte(name)),
	}
}

func (c *contract) Name() string { return c.name }

// PoolAddress derives the address of the staking ledger deployed under name.
func PoolAddress(name string) dino.Address {
	return deriveAddress("pool", name)
}

// VaultAddress derives the address of the reward vault paired with the ledger deployed under name.
func VaultAddress(name string) dino.Address {
	return deriveAddress("vault", name)
}

func deriveAddress(kind, name string) dino.Address {
	h := dino.Blake2b([]byte(kind), []byte(name))
	return dino.BytesToAddress(h[12:])
}
