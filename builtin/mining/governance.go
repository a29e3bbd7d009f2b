// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mining

import (
	"math/big"

	"github.com/vechain/dinostake/builtin/access"
	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/xenv"
)

//
// Governance operations. Each one distributes first so that elapsed time is
// priced with the weights and rate that were in force.
//

func (m *Manager) enterGov(env *xenv.Environment) (func(), error) {
	if err := m.roles.Require(access.GovRole, env.Caller()); err != nil {
		return nil, err
	}
	exit, err := m.guard.Enter()
	if err != nil {
		return nil, err
	}
	if err := m.distribute(env); err != nil {
		exit()
		return nil, err
	}
	return exit, nil
}

// AddPool registers ledger with allocationPoints weight.
func (m *Manager) AddPool(env *xenv.Environment, ledger dino.Address, allocationPoints *big.Int) error {
	if err := m.roles.Require(access.GovRole, env.Caller()); err != nil {
		return err
	}
	if ledger.IsZero() {
		return reverts.ErrZeroAddress
	}
	if allocationPoints.Sign() < 0 {
		return reverts.Wrapf(reverts.ErrInvalidConfig, "negative allocation points %v", allocationPoints)
	}
	added, err := m.PoolAdded(ledger)
	if err != nil {
		return err
	}
	if added {
		return reverts.Wrapf(reverts.ErrDuplicatePool, "pool %v", ledger)
	}
	if _, err := m.resolver.Ledger(ledger); err != nil {
		return err
	}

	exit, err := m.enterGov(env)
	if err != nil {
		return err
	}
	defer exit()

	if err := m.pools.Add(ledger); err != nil {
		return err
	}
	if err := m.infos.Set(ledger, &poolInfo{
		AllocationPoints: new(big.Int).Set(allocationPoints),
		LastCheckpoint:   env.BlockTime(),
	}); err != nil {
		return err
	}
	if err := m.totalAllocationPoints.Add(allocationPoints); err != nil {
		return err
	}
	if err := m.registered.Set(ledger, true); err != nil {
		return err
	}
	logger.Info("pool added", "pool", ledger, "points", allocationPoints)
	return nil
}

// RemovePool unregisters ledger. It keeps what it was distributed before removal.
func (m *Manager) RemovePool(env *xenv.Environment, ledger dino.Address) error {
	info, err := m.getPoolInfo(ledger)
	if err != nil {
		return err
	}
	exit, err := m.enterGov(env)
	if err != nil {
		return err
	}
	defer exit()

	if err := m.totalAllocationPoints.Sub(info.AllocationPoints); err != nil {
		return err
	}
	m.infos.Delete(ledger)
	if err := m.pools.Remove(ledger); err != nil {
		return err
	}
	logger.Info("pool removed", "pool", ledger, "points", info.AllocationPoints)
	return nil
}

// AdjustWeight changes the allocation points of ledger.
func (m *Manager) AdjustWeight(env *xenv.Environment, ledger dino.Address, allocationPoints *big.Int) error {
	if allocationPoints.Sign() < 0 {
		return reverts.Wrapf(reverts.ErrInvalidConfig, "negative allocation points %v", allocationPoints)
	}
	if _, err := m.getPoolInfo(ledger); err != nil {
		return err
	}
	exit, err := m.enterGov(env)
	if err != nil {
		return err
	}
	defer exit()

	// reload, distribute touched the checkpoint
	info, err := m.getPoolInfo(ledger)
	if err != nil {
		return err
	}
	if err := m.totalAllocationPoints.Sub(info.AllocationPoints); err != nil {
		return err
	}
	if err := m.totalAllocationPoints.Add(allocationPoints); err != nil {
		return err
	}
	logger.Info("pool weight adjusted", "pool", ledger, "from", info.AllocationPoints, "to", allocationPoints)
	info.AllocationPoints = new(big.Int).Set(allocationPoints)
	return m.infos.Set(ledger, info)
}

// SetRewardPerSecond changes the emission rate.
func (m *Manager) SetRewardPerSecond(env *xenv.Environment, rate *big.Int) error {
	if rate.Sign() < 0 {
		return reverts.Wrapf(reverts.ErrInvalidConfig, "negative rate %v", rate)
	}
	exit, err := m.enterGov(env)
	if err != nil {
		return err
	}
	defer exit()

	logger.Info("reward per second changed", "rate", rate)
	return m.rewardPerSecond.Set(rate)
}

func (m *Manager) GrantRole(env *xenv.Environment, role dino.Bytes32, account dino.Address) error {
	return m.roles.GrantRole(env.Caller(), role, account)
}

func (m *Manager) RevokeRole(env *xenv.Environment, role dino.Bytes32, account dino.Address) error {
	return m.roles.RevokeRole(env.Caller(), role, account)
}

func (m *Manager) RenounceRole(env *xenv.Environment, role dino.Bytes32) error {
	return m.roles.RenounceRole(env.Caller(), role)
}
