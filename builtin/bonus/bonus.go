// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bonus maps a lock duration to a share multiplier.
package bonus

import (
	"math/big"

	"github.com/vechain/dinostake/dino"
)

// Curve interpolates linearly from 1x at MinLockDuration to MaxBonus at
// MaxLockDuration. Multipliers are scaled by dino.Scale.
type Curve struct {
	MinLockDuration uint64
	MaxLockDuration uint64
	MaxBonus        *big.Int // total multiplier at MaxLockDuration, at least 1x
}

// Multiplier returns the scaled multiplier for a lock of d seconds.
// Durations above the maximum are clamped, durations below the minimum get 1x.
func (c *Curve) Multiplier(d uint64) *big.Int {
	if c.MaxLockDuration <= c.MinLockDuration || d <= c.MinLockDuration {
		return dino.OneX()
	}
	if d > c.MaxLockDuration {
		d = c.MaxLockDuration
	}
	extra := new(big.Int).Sub(c.MaxBonus, dino.Scale)
	if extra.Sign() <= 0 {
		return dino.OneX()
	}
	extra.Mul(extra, new(big.Int).SetUint64(d-c.MinLockDuration))
	extra.Div(extra, new(big.Int).SetUint64(c.MaxLockDuration-c.MinLockDuration))
	return extra.Add(extra, dino.Scale)
}

// Shares returns the shares minted for one collateral item locked for d seconds.
func (c *Curve) Shares(d uint64) *big.Int {
	shares := new(big.Int).Mul(dino.BaseUnit, c.Multiplier(d))
	return shares.Div(shares, dino.Scale)
}
