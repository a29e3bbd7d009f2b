// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/builtin/solidity"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/lvldb"
	"github.com/vechain/dinostake/state"
)

func TestGuard(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	st := state.NewStater(db, 0).NewState()
	g := New(solidity.NewContext(dino.Address{1}, st))

	exit, err := g.Enter()
	require.NoError(t, err)

	entered, err := g.Entered()
	require.NoError(t, err)
	assert.True(t, entered)

	// a second guard over the same storage sees the mark
	_, err = New(solidity.NewContext(dino.Address{1}, st)).Enter()
	assert.ErrorIs(t, err, reverts.ErrReentrantCall)

	// other contracts are not affected
	exit2, err := New(solidity.NewContext(dino.Address{2}, st)).Enter()
	require.NoError(t, err)
	exit2()

	exit()
	entered, err = g.Entered()
	require.NoError(t, err)
	assert.False(t, entered)

	exit, err = g.Enter()
	require.NoError(t, err)
	exit()
}
