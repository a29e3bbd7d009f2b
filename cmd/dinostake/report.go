// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"

	"github.com/vechain/dinostake/builtin"
	"github.com/vechain/dinostake/builtin/utility"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/state"
)

type ledgerReport struct {
	Address           dino.Address `json:"address"`
	Name              string       `json:"name"`
	Symbol            string       `json:"symbol"`
	Vault             dino.Address `json:"vault"`
	AllocationPoints  *big.Int     `json:"allocationPoints"`
	LastCheckpoint    uint64       `json:"lastCheckpoint"`
	TotalSupply       *big.Int     `json:"totalSupply"`
	AccRewardPerShare *big.Int     `json:"accRewardPerShare"`
	TotalDistributed  *big.Int     `json:"totalDistributed"`
	VaultReleased     *big.Int     `json:"vaultReleased"`
	VaultBalance      *big.Int     `json:"vaultBalance"`
	StorageSlots      int          `json:"storageSlots,omitempty"`
}

type emissionReport struct {
	RewardToken           dino.Address `json:"rewardToken"`
	Treasury              dino.Address `json:"treasury"`
	RewardPerSecond       *big.Int     `json:"rewardPerSecond"`
	TotalAllocationPoints *big.Int     `json:"totalAllocationPoints"`
	LastDistribution      uint64       `json:"lastDistribution"`
}

type report struct {
	Emission *emissionReport  `json:"emission"`
	Ledgers  []*ledgerReport  `json:"ledgers"`
	Supply   *utility.Details `json:"supply"`
}

func buildReport(c *builtin.Contracts) (*report, error) {
	var (
		m   = c.Mining()
		em  = &emissionReport{}
		err error
	)
	if em.RewardToken, err = m.RewardToken(); err != nil {
		return nil, err
	}
	if em.Treasury, err = m.Treasury(); err != nil {
		return nil, err
	}
	if em.RewardPerSecond, err = m.RewardPerSecond(); err != nil {
		return nil, err
	}
	if em.TotalAllocationPoints, err = m.TotalAllocationPoints(); err != nil {
		return nil, err
	}
	if em.LastDistribution, err = m.LastDistribution(); err != nil {
		return nil, err
	}

	pools, err := m.GetPools()
	if err != nil {
		return nil, err
	}
	ledgers := make([]*ledgerReport, 0, len(pools))
	for _, p := range pools {
		lr, err := buildLedgerReport(c, p.Ledger)
		if err != nil {
			return nil, err
		}
		lr.AllocationPoints = p.AllocationPoints
		lr.LastCheckpoint = p.LastCheckpoint
		ledgers = append(ledgers, lr)
	}

	supply, err := c.Utility().Details()
	if err != nil {
		return nil, err
	}
	return &report{Emission: em, Ledgers: ledgers, Supply: supply}, nil
}

func buildLedgerReport(c *builtin.Contracts, addr dino.Address) (lr *ledgerReport, err error) {
	pool := c.Pool(addr)
	lr = &ledgerReport{Address: addr}
	if lr.Name, err = pool.Name(); err != nil {
		return nil, err
	}
	if lr.Symbol, err = pool.Symbol(); err != nil {
		return nil, err
	}
	if lr.Vault, err = pool.Vault(); err != nil {
		return nil, err
	}
	if lr.TotalSupply, err = pool.TotalSupply(); err != nil {
		return nil, err
	}
	if lr.AccRewardPerShare, err = pool.AccRewardPerShare(); err != nil {
		return nil, err
	}
	if lr.TotalDistributed, err = pool.TotalDistributed(); err != nil {
		return nil, err
	}

	vault := c.Vault(lr.Vault)
	if lr.VaultReleased, err = vault.TotalReleased(); err != nil {
		return nil, err
	}
	if lr.VaultBalance, err = vault.Balance(); err != nil {
		return nil, err
	}
	return lr, nil
}

// countSlots fills the committed storage footprint of every ledger.
func countSlots(r *report, stater *state.Stater) error {
	for _, lr := range r.Ledgers {
		n, err := stater.SlotCount(lr.Address)
		if err != nil {
			return err
		}
		lr.StorageSlots = n
	}
	return nil
}
