// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fossil

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/lvldb"
	"github.com/vechain/dinostake/state"
	"github.com/vechain/dinostake/xenv"
)

var (
	treasury = dino.BytesToAddress([]byte("treasury"))
	manager  = dino.BytesToAddress([]byte("manager"))
	alice    = dino.BytesToAddress([]byte("alice"))
)

func setup(t *testing.T) (*Fossil, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db, 0).NewState()
	return New(dino.BytesToAddress([]byte("Fossil")), st), st
}

func envOf(st *state.State, caller dino.Address) *xenv.Environment {
	return xenv.New(st, &xenv.BlockContext{Time: 1}, caller)
}

func balance(t *testing.T, f *Fossil, addr dino.Address) int64 {
	bal, err := f.BalanceOf(addr)
	require.NoError(t, err)
	return bal.Int64()
}

func TestInitialize(t *testing.T) {
	f, _ := setup(t)
	require.NoError(t, f.Initialize(treasury, big.NewInt(1000)))
	assert.ErrorIs(t, f.Initialize(treasury, big.NewInt(1000)), reverts.ErrInvalidConfig)

	supply, err := f.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), supply.Int64())
	assert.Equal(t, int64(1000), balance(t, f, treasury))
	assert.Zero(t, balance(t, f, alice))
}

func TestTransfer(t *testing.T) {
	f, st := setup(t)
	require.NoError(t, f.Initialize(treasury, big.NewInt(1000)))

	require.NoError(t, f.Transfer(envOf(st, treasury), alice, big.NewInt(300)))
	assert.Equal(t, int64(700), balance(t, f, treasury))
	assert.Equal(t, int64(300), balance(t, f, alice))

	err := f.Transfer(envOf(st, alice), treasury, big.NewInt(301))
	assert.ErrorIs(t, err, reverts.ErrInsufficientBalance)
	assert.ErrorIs(t, f.Transfer(envOf(st, alice), dino.Address{}, big.NewInt(1)), reverts.ErrZeroAddress)

	// self transfer keeps the balance
	require.NoError(t, f.Transfer(envOf(st, alice), alice, big.NewInt(300)))
	assert.Equal(t, int64(300), balance(t, f, alice))
}

func TestTransferFrom(t *testing.T) {
	f, st := setup(t)
	require.NoError(t, f.Initialize(treasury, big.NewInt(1000)))

	err := f.TransferFrom(envOf(st, manager), treasury, alice, big.NewInt(1))
	assert.ErrorIs(t, err, reverts.ErrInsufficientAllowance)

	require.NoError(t, f.Approve(envOf(st, treasury), manager, big.NewInt(500)))
	allowance, err := f.Allowance(treasury, manager)
	require.NoError(t, err)
	assert.Equal(t, int64(500), allowance.Int64())

	require.NoError(t, f.TransferFrom(envOf(st, manager), treasury, alice, big.NewInt(200)))
	assert.Equal(t, int64(200), balance(t, f, alice))

	allowance, err = f.Allowance(treasury, manager)
	require.NoError(t, err)
	assert.Equal(t, int64(300), allowance.Int64())

	// unlimited allowance is not consumed
	require.NoError(t, f.Approve(envOf(st, treasury), manager, dino.MaxUint256))
	require.NoError(t, f.TransferFrom(envOf(st, manager), treasury, alice, big.NewInt(100)))
	allowance, err = f.Allowance(treasury, manager)
	require.NoError(t, err)
	assert.Equal(t, 0, allowance.Cmp(dino.MaxUint256))

	require.NoError(t, f.Approve(envOf(st, treasury), manager, big.NewInt(0)))
	allowance, err = f.Allowance(treasury, manager)
	require.NoError(t, err)
	assert.Zero(t, allowance.Sign())
}
