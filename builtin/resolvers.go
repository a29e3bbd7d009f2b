// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/pkg/errors"

	"github.com/vechain/dinostake/builtin/dinopool"
	"github.com/vechain/dinostake/builtin/mining"
	"github.com/vechain/dinostake/builtin/rewards"
	"github.com/vechain/dinostake/builtin/utility"
	"github.com/vechain/dinostake/dino"
)

var (
	_ dinopool.Resolver = (*poolResolver)(nil)
	_ rewards.Resolver  = (*vaultResolver)(nil)
	_ mining.Resolver   = (*miningResolver)(nil)
	_ utility.Resolver  = (*utilityResolver)(nil)
)

type (
	poolResolver    Contracts
	vaultResolver   Contracts
	miningResolver  Contracts
	utilityResolver Contracts
)

func (r *poolResolver) Collateral(addr dino.Address) (dinopool.Collateral, error) {
	if addr != Dino.Address {
		return nil, errors.Errorf("no collateral registry at %v", addr)
	}
	return (*Contracts)(r).Dino(), nil
}

func (r *poolResolver) Vault(addr dino.Address) (dinopool.Vault, error) {
	c := (*Contracts)(r)
	if !c.isVault(addr) {
		return nil, errors.Errorf("no vault at %v", addr)
	}
	return c.Vault(addr), nil
}

func (r *poolResolver) Tracker(addr dino.Address) (dinopool.Tracker, error) {
	if addr != Utility.Address {
		return nil, errors.Errorf("no tracker at %v", addr)
	}
	return (*Contracts)(r).Utility(), nil
}

func (r *vaultResolver) Token(addr dino.Address) (rewards.Token, error) {
	if addr != Fossil.Address {
		return nil, errors.Errorf("no reward token at %v", addr)
	}
	return (*Contracts)(r).Fossil(), nil
}

func (r *vaultResolver) Ledger(addr dino.Address) (rewards.Ledger, error) {
	c := (*Contracts)(r)
	if !c.isPool(addr) {
		return nil, errors.Errorf("no ledger at %v", addr)
	}
	return c.Pool(addr), nil
}

func (r *miningResolver) Token(addr dino.Address) (mining.Token, error) {
	if addr != Fossil.Address {
		return nil, errors.Errorf("no reward token at %v", addr)
	}
	return (*Contracts)(r).Fossil(), nil
}

func (r *miningResolver) Ledger(addr dino.Address) (mining.Ledger, error) {
	c := (*Contracts)(r)
	if !c.isPool(addr) {
		return nil, errors.Errorf("no ledger at %v", addr)
	}
	return c.Pool(addr), nil
}

func (r *miningResolver) Tracker(addr dino.Address) (mining.Tracker, error) {
	if addr != Utility.Address {
		return nil, errors.Errorf("no tracker at %v", addr)
	}
	return (*Contracts)(r).Utility(), nil
}

func (r *utilityResolver) Scheduler(addr dino.Address) (utility.Scheduler, error) {
	if addr != Mining.Address {
		return nil, errors.Errorf("no scheduler at %v", addr)
	}
	return (*Contracts)(r).Mining(), nil
}
