// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigVariable(t *testing.T) {
	ctx := newTestContext(t)
	capacity := NewConfigVariable("capacity", 20)

	assert.Equal(t, "capacity", capacity.Name())
	assert.Equal(t, Slot("capacity"), capacity.Slot())

	v, err := capacity.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), v)

	capacity.Set(ctx, 30)
	v, err = capacity.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), v)

	// zero falls back to the default
	capacity.Set(ctx, 0)
	v, err = capacity.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), v)
}
