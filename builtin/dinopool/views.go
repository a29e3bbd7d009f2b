// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dinopool

import (
	"math/big"

	"github.com/vechain/dinostake/dino"
)

//
// Getters - no state change
//

func (p *Pool) Name() (string, error) {
	s, err := p.getSettings()
	if err != nil {
		return "", err
	}
	return s.Name, nil
}

func (p *Pool) Symbol() (string, error) {
	s, err := p.getSettings()
	if err != nil {
		return "", err
	}
	return s.Symbol, nil
}

// Vault returns the address rewards for this ledger are held at.
func (p *Pool) Vault() (dino.Address, error) {
	s, err := p.getSettings()
	if err != nil {
		return dino.Address{}, err
	}
	return s.Vault, nil
}

func (p *Pool) Collateral() (dino.Address, error) {
	s, err := p.getSettings()
	if err != nil {
		return dino.Address{}, err
	}
	return s.Collateral, nil
}

func (p *Pool) RewardToken() (dino.Address, error) {
	s, err := p.getSettings()
	if err != nil {
		return dino.Address{}, err
	}
	return s.RewardToken, nil
}

func (p *Pool) Owner() (dino.Address, error) {
	return p.owner.Get()
}

func (p *Pool) Scheduler() (dino.Address, error) {
	return p.scheduler.Get()
}

func (p *Pool) MinimumLockDuration() (uint64, error) {
	v, err := p.minLockDuration.Get()
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

func (p *Pool) MaxLockDuration() (uint64, error) {
	v, err := p.maxLockDuration.Get()
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

func (p *Pool) MaxBonus() (*big.Int, error) {
	return p.maxBonus.Get()
}

func (p *Pool) MaximumNftStakingAllowed() (uint64, error) {
	return MaximumNftStakingAllowed.Get(p.sctx)
}

// GetMultiplier returns the scaled share multiplier for a lock of d seconds.
func (p *Pool) GetMultiplier(d uint64) (*big.Int, error) {
	curve, err := p.curve()
	if err != nil {
		return nil, err
	}
	return curve.Multiplier(d), nil
}

// TotalSupply returns the share supply.
func (p *Pool) TotalSupply() (*big.Int, error) {
	return p.totalSupply.Get()
}

// BalanceOf returns the shares held by addr.
func (p *Pool) BalanceOf(addr dino.Address) (*big.Int, error) {
	account, err := p.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return account.TotalShares, nil
}

func (p *Pool) AccRewardPerShare() (*big.Int, error) {
	return p.accRewardPerShare.Get()
}

// TotalDistributed returns every reward amount ever added to the accumulator.
func (p *Pool) TotalDistributed() (*big.Int, error) {
	return p.totalDistributed.Get()
}

// GetAccount returns the reward bookkeeping of addr.
func (p *Pool) GetAccount(addr dino.Address) (*Account, error) {
	return p.getAccount(addr)
}

// WithdrawableRewardsOf returns what addr would receive by claiming now.
func (p *Pool) WithdrawableRewardsOf(addr dino.Address) (*big.Int, error) {
	acc, err := p.accRewardPerShare.Get()
	if err != nil {
		return nil, err
	}
	account, err := p.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return account.withdrawable(acc), nil
}

// WithdrawnRewardsOf returns the rewards addr already claimed.
func (p *Pool) WithdrawnRewardsOf(addr dino.Address) (*big.Int, error) {
	account, err := p.getAccount(addr)
	if err != nil {
		return nil, err
	}
	return account.Withdrawn, nil
}

// CumulativeRewardsOf returns withdrawable plus withdrawn rewards.
func (p *Pool) CumulativeRewardsOf(addr dino.Address) (*big.Int, error) {
	withdrawable, err := p.WithdrawableRewardsOf(addr)
	if err != nil {
		return nil, err
	}
	withdrawn, err := p.WithdrawnRewardsOf(addr)
	if err != nil {
		return nil, err
	}
	return withdrawable.Add(withdrawable, withdrawn), nil
}

// GetDeposit returns the active deposit of id, nil if none.
func (p *Pool) GetDeposit(id dino.TokenID) (*Deposit, error) {
	return p.deposits.Get(id)
}

// GetDepositsOf returns the active deposits owned by addr.
func (p *Pool) GetDepositsOf(addr dino.Address) ([]*Deposit, error) {
	ids, err := p.index.List(addr)
	if err != nil {
		return nil, err
	}
	deposits := make([]*Deposit, 0, len(ids))
	for _, id := range ids {
		deposit, err := p.deposits.Get(id)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, deposit)
	}
	return deposits, nil
}

func (p *Pool) GetDepositsOfLength(addr dino.Address) (uint64, error) {
	return p.index.Len(addr)
}

// GetTotalDeposit returns the number of collateral items addr has locked.
func (p *Pool) GetTotalDeposit(addr dino.Address) (uint64, error) {
	return p.index.Len(addr)
}
