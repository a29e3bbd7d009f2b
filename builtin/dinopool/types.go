// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dinopool

import (
	"math/big"

	"github.com/vechain/dinostake/dino"
)

// Deposit is one locked collateral item.
type Deposit struct {
	Owner        dino.Address
	CollateralID dino.TokenID
	ShareAmount  *big.Int
	LockStart    uint64
	LockDuration uint64
	UnlockTime   uint64
}

// Unlockable reports whether the deposit may be withdrawn at now.
func (d *Deposit) Unlockable(now uint64) bool {
	return now >= d.UnlockTime
}

// Account is the reward bookkeeping of one share holder. Accounts are never deleted.
type Account struct {
	TotalShares *big.Int
	RewardDebt  *big.Int // TotalShares x accumulator at the last settlement, kept scaled to avoid rounding up
	Settled     *big.Int // settled but not yet claimed
	Withdrawn   *big.Int
}

func newAccount() *Account {
	return &Account{
		TotalShares: new(big.Int),
		RewardDebt:  new(big.Int),
		Settled:     new(big.Int),
		Withdrawn:   new(big.Int),
	}
}

// accrued returns the rewards earned since the last settlement at accumulator acc.
func (a *Account) accrued(acc *big.Int) *big.Int {
	pending := new(big.Int).Mul(a.TotalShares, acc)
	pending.Sub(pending, a.RewardDebt)
	if pending.Sign() <= 0 {
		return new(big.Int)
	}
	return pending.Div(pending, dino.Scale)
}

// settle moves accrued rewards into Settled and resets the debt.
func (a *Account) settle(acc *big.Int) {
	a.Settled = new(big.Int).Add(a.Settled, a.accrued(acc))
	a.resetDebt(acc)
}

func (a *Account) resetDebt(acc *big.Int) {
	a.RewardDebt = new(big.Int).Mul(a.TotalShares, acc)
}

// withdrawable returns what a claim at accumulator acc would pay.
func (a *Account) withdrawable(acc *big.Int) *big.Int {
	return new(big.Int).Add(a.accrued(acc), a.Settled)
}

// Config is the deployment configuration of a ledger.
type Config struct {
	Owner                    dino.Address
	Name                     string
	Symbol                   string
	Collateral               dino.Address
	RewardToken              dino.Address
	Vault                    dino.Address
	Tracker                  dino.Address // optional
	MinLockDuration          uint64
	MaxLockDuration          uint64
	MaxBonus                 *big.Int
	MaximumNftStakingAllowed uint64
}

type settings struct {
	Name        string
	Symbol      string
	Collateral  dino.Address
	RewardToken dino.Address
	Vault       dino.Address
	Tracker     dino.Address
}
