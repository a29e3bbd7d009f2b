// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dinopool

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/xenv"
)

//
// Owner only setters
//

func (p *Pool) SetMinimumLockDuration(env *xenv.Environment, d uint64) error {
	if err := p.owner.Require(env.Caller()); err != nil {
		return err
	}
	max, err := p.MaxLockDuration()
	if err != nil {
		return err
	}
	if d > max {
		return errors.Wrapf(reverts.ErrInvalidConfig, "minimum lock %d above maximum %d", d, max)
	}
	logger.Info("minimum lock duration changed", "pool", p.addr, "value", d)
	return p.minLockDuration.Set(new(big.Int).SetUint64(d))
}

func (p *Pool) SetMaximumLockDuration(env *xenv.Environment, d uint64) error {
	if err := p.owner.Require(env.Caller()); err != nil {
		return err
	}
	min, err := p.MinimumLockDuration()
	if err != nil {
		return err
	}
	if d < min {
		return errors.Wrapf(reverts.ErrInvalidConfig, "maximum lock %d below minimum %d", d, min)
	}
	logger.Info("maximum lock duration changed", "pool", p.addr, "value", d)
	return p.maxLockDuration.Set(new(big.Int).SetUint64(d))
}

// SetMaximumBonus sets the total multiplier granted at the maximum lock duration.
func (p *Pool) SetMaximumBonus(env *xenv.Environment, maxBonus *big.Int) error {
	if err := p.owner.Require(env.Caller()); err != nil {
		return err
	}
	if maxBonus.Cmp(dino.Scale) < 0 {
		return errors.Wrapf(reverts.ErrInvalidConfig, "max bonus %v below 1x", maxBonus)
	}
	logger.Info("maximum bonus changed", "pool", p.addr, "value", maxBonus)
	return p.maxBonus.Set(maxBonus)
}

func (p *Pool) SetMaximumNftStakingAllowed(env *xenv.Environment, capacity uint64) error {
	if err := p.owner.Require(env.Caller()); err != nil {
		return err
	}
	if capacity == 0 {
		return errors.Wrap(reverts.ErrInvalidConfig, "zero staking capacity")
	}
	MaximumNftStakingAllowed.Set(p.sctx, capacity)
	return nil
}

func (p *Pool) ChangeContractOwner(env *xenv.Environment, newOwner dino.Address) error {
	if err := p.owner.Transfer(env.Caller(), newOwner); err != nil {
		return err
	}
	logger.Info("owner changed", "pool", p.addr, "owner", newOwner)
	return nil
}

// SetScheduler sets the only address allowed to push rewards into the ledger.
func (p *Pool) SetScheduler(env *xenv.Environment, scheduler dino.Address) error {
	if err := p.owner.Require(env.Caller()); err != nil {
		return err
	}
	if scheduler.IsZero() {
		return reverts.ErrZeroAddress
	}
	p.scheduler.Set(scheduler)
	return nil
}
