// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package access

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

var (
	gov     = dino.BytesToAddress([]byte("gov"))
	keeper  = dino.BytesToAddress([]byte("keeper"))
	visitor = dino.BytesToAddress([]byte("visitor"))
)

func newContext(t *testing.T) *solidity.Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return solidity.NewContext(dino.BytesToAddress([]byte("contract")), state.NewStater(db, 0).NewState())
}

func TestOwner(t *testing.T) {
	owner := NewOwner(newContext(t))

	assert.ErrorIs(t, owner.Require(gov), reverts.ErrUnauthorized)
	assert.ErrorIs(t, owner.Init(dino.Address{}), reverts.ErrZeroAddress)

	require.NoError(t, owner.Init(gov))
	assert.ErrorIs(t, owner.Init(keeper), reverts.ErrInvalidConfig)
	assert.NoError(t, owner.Require(gov))
	assert.ErrorIs(t, owner.Require(visitor), reverts.ErrUnauthorized)

	assert.ErrorIs(t, owner.Transfer(visitor, visitor), reverts.ErrUnauthorized)
	require.NoError(t, owner.Transfer(gov, keeper))

	current, err := owner.Get()
	require.NoError(t, err)
	assert.Equal(t, keeper, current)
	assert.ErrorIs(t, owner.Require(gov), reverts.ErrUnauthorized)
}

func TestRoles(t *testing.T) {
	roles := NewRoles(newContext(t))

	require.NoError(t, roles.SetRoleAdmin(RewardDistributorRole, GovRole))
	require.NoError(t, roles.SetRoleAdmin(GovRole, GovRole))
	require.NoError(t, roles.Setup(GovRole, gov))

	admin, err := roles.GetRoleAdmin(RewardDistributorRole)
	require.NoError(t, err)
	assert.Equal(t, GovRole, admin)

	// only the admin role may grant
	err = roles.GrantRole(visitor, RewardDistributorRole, keeper)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)

	require.NoError(t, roles.GrantRole(gov, RewardDistributorRole, keeper))
	ok, err := roles.HasRole(RewardDistributorRole, keeper)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, roles.Require(RewardDistributorRole, keeper))

	// the two permission sets are disjoint
	assert.ErrorIs(t, roles.Require(GovRole, keeper), reverts.ErrUnauthorized)
	assert.ErrorIs(t, roles.Require(RewardDistributorRole, gov), reverts.ErrUnauthorized)

	require.NoError(t, roles.RevokeRole(gov, RewardDistributorRole, keeper))
	ok, err = roles.HasRole(RewardDistributorRole, keeper)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, roles.RenounceRole(gov, GovRole))
	ok, err = roles.HasRole(GovRole, gov)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoleIdentifiers(t *testing.T) {
	assert.False(t, GovRole.IsZero())
	assert.Equal(t, dino.Keccak256([]byte("REWARD_DISTRIBUTOR_ROLE")), RewardDistributorRole)
	assert.NotEqual(t, GovRole, RewardDistributorRole)
	assert.True(t, DefaultAdminRole.IsZero())
}
