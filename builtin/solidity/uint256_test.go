// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dinostake/dino"
)

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	uint := NewUint256(ctx, dino.Bytes32{01})

	require.NoError(t, uint.Set(big.NewInt(1000)))

	value, err := uint.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), value)

	assert.NoError(t, uint.Add(big.NewInt(500)))
	value, err = uint.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1500), value)

	assert.NoError(t, uint.Sub(big.NewInt(200)))
	value, err = uint.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1300), value)
}

func TestUint256_Bounds(t *testing.T) {
	ctx := newTestContext(t)
	uint := NewUint256(ctx, dino.Bytes32{02})

	require.NoError(t, uint.Set(dino.MaxUint256))
	assert.ErrorIs(t, uint.Add(big.NewInt(1)), ErrOverflow)

	value, err := uint.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, value.Cmp(dino.MaxUint256))

	require.NoError(t, uint.Set(big.NewInt(1)))
	assert.ErrorIs(t, uint.Sub(big.NewInt(2)), ErrUnderflow)
	value, err = uint.Get()
	require.NoError(t, err)
	assert.Equal(t, int64(1), value.Int64())
}
