// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mining

import (
	"math/big"

	"github.com/vechain/dinostake/dino"
)

// PoolView is the emission state of one registered ledger.
type PoolView struct {
	Ledger            dino.Address `json:"ledger"`
	AllocationPoints  *big.Int     `json:"allocationPoints"`
	AccRewardPerShare *big.Int     `json:"accRewardPerShare"`
	LastCheckpoint    uint64       `json:"lastCheckpoint"`
}

// GetPools lists the registered ledgers in registration order.
func (m *Manager) GetPools() ([]*PoolView, error) {
	ledgers, err := m.pools.Members()
	if err != nil {
		return nil, err
	}
	views := make([]*PoolView, 0, len(ledgers))
	for _, addr := range ledgers {
		info, err := m.getPoolInfo(addr)
		if err != nil {
			return nil, err
		}
		ledger, err := m.resolver.Ledger(addr)
		if err != nil {
			return nil, err
		}
		acc, err := ledger.AccRewardPerShare()
		if err != nil {
			return nil, err
		}
		views = append(views, &PoolView{
			Ledger:            addr,
			AllocationPoints:  info.AllocationPoints,
			AccRewardPerShare: acc,
			LastCheckpoint:    info.LastCheckpoint,
		})
	}
	return views, nil
}

func (m *Manager) PoolAdded(ledger dino.Address) (bool, error) {
	return m.pools.Contains(ledger)
}

// PoolRegistered reports whether ledger was ever added, including pools
// removed since.
func (m *Manager) PoolRegistered(ledger dino.Address) (bool, error) {
	return m.registered.Get(ledger)
}

func (m *Manager) RewardPerSecond() (*big.Int, error) {
	return m.rewardPerSecond.Get()
}

func (m *Manager) TotalAllocationPoints() (*big.Int, error) {
	return m.totalAllocationPoints.Get()
}

func (m *Manager) LastDistribution() (uint64, error) {
	last, err := m.lastDistribution.Get()
	if err != nil {
		return 0, err
	}
	return last.Uint64(), nil
}

func (m *Manager) Treasury() (dino.Address, error)    { return m.treasury.Get() }
func (m *Manager) RewardToken() (dino.Address, error) { return m.rewardToken.Get() }
func (m *Manager) Tracker() (dino.Address, error)     { return m.tracker.Get() }

func (m *Manager) HasRole(role dino.Bytes32, account dino.Address) (bool, error) {
	return m.roles.HasRole(role, account)
}

func (m *Manager) GetRoleAdmin(role dino.Bytes32) (dino.Bytes32, error) {
	return m.roles.GetRoleAdmin(role)
}
