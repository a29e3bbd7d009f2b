// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dino

import (
	"math/big"
)

// Fixed point and accounting constants.
var (
	// Scale is the fixed point factor of multipliers and of the reward-per-share accumulator.
	Scale = big.NewInt(1e18)
	// BaseUnit is the amount of shares a single collateral item mints at 1x.
	BaseUnit = big.NewInt(1e18)
	// BasisPoints is the denominator of rates expressed in basis points.
	BasisPoints = big.NewInt(10000)
)

// Defaults used when a ledger is deployed without explicit values.
const (
	DefaultMinLockDuration          uint64 = 600
	DefaultMaxLockDuration          uint64 = 365 * 24 * 3600
	DefaultMaximumNftStakingAllowed uint64 = 20
)

// MaxUint256 is the largest value a storage slot number may hold.
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// DefaultMaxBonus returns 2x, the multiplier granted at the maximum lock duration.
func DefaultMaxBonus() *big.Int {
	return new(big.Int).Mul(Scale, big.NewInt(2))
}

// OneX returns a fresh copy of the neutral multiplier.
func OneX() *big.Int {
	return new(big.Int).Set(Scale)
}
