// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bonus

import (
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"

	"github.com/vechain/dinostake/dino"
)

func TestMultiplier(t *testing.T) {
	curve := &Curve{MinLockDuration: 600, MaxLockDuration: 1600, MaxBonus: dino.DefaultMaxBonus()}

	tests := []struct {
		name     string
		duration uint64
		want     *big.Int
	}{
		{"minimum is 1x", 600, dino.OneX()},
		{"below minimum is 1x", 10, dino.OneX()},
		{"half way", 1100, big.NewInt(1.5e18)},
		{"tenth", 700, big.NewInt(1.1e18)},
		{"maximum", 1600, dino.DefaultMaxBonus()},
		{"clamped", 1 << 40, dino.DefaultMaxBonus()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0, tt.want.Cmp(curve.Multiplier(tt.duration)), curve.Multiplier(tt.duration).String())
		})
	}
}

func TestFlatCurve(t *testing.T) {
	curve := &Curve{MinLockDuration: 600, MaxLockDuration: 600, MaxBonus: dino.DefaultMaxBonus()}
	assert.Equal(t, 0, dino.Scale.Cmp(curve.Multiplier(600)))
	assert.Equal(t, 0, dino.Scale.Cmp(curve.Multiplier(6000)))

	curve = &Curve{MinLockDuration: 600, MaxLockDuration: 6000, MaxBonus: dino.OneX()}
	assert.Equal(t, 0, dino.Scale.Cmp(curve.Multiplier(3000)))
}

func TestShares(t *testing.T) {
	curve := &Curve{MinLockDuration: 600, MaxLockDuration: 1600, MaxBonus: dino.DefaultMaxBonus()}
	assert.Equal(t, 0, dino.BaseUnit.Cmp(curve.Shares(600)))
	assert.Equal(t, 0, big.NewInt(2e18).Cmp(curve.Shares(1600)))
}

func TestMultiplierBoundedAndMonotonic(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 200; i++ {
		var min, span, d1, d2 uint32
		var bonus uint16
		f.Fuzz(&min)
		f.Fuzz(&span)
		f.Fuzz(&d1)
		f.Fuzz(&d2)
		f.Fuzz(&bonus)

		maxBonus := new(big.Int).Mul(dino.Scale, big.NewInt(int64(bonus%10)+1))
		curve := &Curve{
			MinLockDuration: uint64(min),
			MaxLockDuration: uint64(min) + uint64(span),
			MaxBonus:        maxBonus,
		}
		lo, hi := uint64(min)+uint64(d1), uint64(min)+uint64(d1)+uint64(d2)

		mlo, mhi := curve.Multiplier(lo), curve.Multiplier(hi)
		assert.LessOrEqual(t, mlo.Cmp(mhi), 0)
		assert.LessOrEqual(t, mhi.Cmp(maxBonus), 0)
		assert.GreaterOrEqual(t, mlo.Cmp(dino.Scale), 0)
		assert.Equal(t, 0, curve.Multiplier(curve.MinLockDuration).Cmp(dino.Scale))
	}
}
