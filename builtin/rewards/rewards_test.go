// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dinostake/builtin/fossil"
	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/lvldb"
	"github.com/vechain/dinostake/state"
	"github.com/vechain/dinostake/xenv"
)

var (
	vaultAddr  = dino.BytesToAddress([]byte("vault"))
	tokenAddr  = dino.BytesToAddress([]byte("Fossil"))
	ledgerAddr = dino.BytesToAddress([]byte("ledger"))
	owner      = dino.BytesToAddress([]byte("owner"))
	user       = dino.BytesToAddress([]byte("user"))
)

type fakeLedger struct {
	distributed *big.Int
}

func (l *fakeLedger) TotalDistributed() (*big.Int, error) {
	return new(big.Int).Set(l.distributed), nil
}

type testResolver struct {
	token  *fossil.Fossil
	ledger *fakeLedger
}

func (r *testResolver) Token(addr dino.Address) (Token, error) {
	if addr != tokenAddr {
		return nil, errors.Errorf("unknown token %v", addr)
	}
	return r.token, nil
}

func (r *testResolver) Ledger(addr dino.Address) (Ledger, error) {
	if addr != ledgerAddr {
		return nil, errors.Errorf("unknown ledger %v", addr)
	}
	return r.ledger, nil
}

func newTestVault(t *testing.T) (*Vault, *testResolver, func(dino.Address) *xenv.Environment) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db, 0).NewState()

	resolver := &testResolver{
		token:  fossil.New(tokenAddr, st),
		ledger: &fakeLedger{distributed: new(big.Int)},
	}
	require.NoError(t, resolver.token.Initialize(owner, big.NewInt(1_000_000)))

	vault := New(vaultAddr, st, resolver)
	require.NoError(t, vault.Initialize(owner))

	env := func(caller dino.Address) *xenv.Environment {
		return xenv.New(st, &xenv.BlockContext{Time: 1}, caller)
	}
	return vault, resolver, env
}

func TestSetAuthorizedLedger(t *testing.T) {
	vault, _, env := newTestVault(t)

	assert.ErrorIs(t, vault.SetAuthorizedLedger(env(user), ledgerAddr, tokenAddr), reverts.ErrUnauthorized)
	assert.ErrorIs(t, vault.SetAuthorizedLedger(env(owner), dino.Address{}, tokenAddr), reverts.ErrZeroAddress)
	require.NoError(t, vault.SetAuthorizedLedger(env(owner), ledgerAddr, tokenAddr))

	ledger, err := vault.AuthorizedLedger()
	require.NoError(t, err)
	assert.Equal(t, ledgerAddr, ledger)
	token, err := vault.Token()
	require.NoError(t, err)
	assert.Equal(t, tokenAddr, token)

	assert.ErrorIs(t, vault.Initialize(user), reverts.ErrInvalidConfig)
}

func TestReleaseTo(t *testing.T) {
	vault, resolver, env := newTestVault(t)
	require.NoError(t, vault.SetAuthorizedLedger(env(owner), ledgerAddr, tokenAddr))
	require.NoError(t, resolver.token.Transfer(env(owner), vaultAddr, big.NewInt(500)))
	resolver.ledger.distributed.SetInt64(400)

	tests := []struct {
		name   string
		caller dino.Address
		amount int64
		want   error
	}{
		{"not the ledger", user, 10, reverts.ErrUnauthorized},
		{"beyond balance", ledgerAddr, 501, reverts.ErrInsufficientVaultBalance},
		{"beyond distributed", ledgerAddr, 401, reverts.ErrEmissionExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, vault.ReleaseTo(env(tt.caller), user, big.NewInt(tt.amount)), tt.want)
		})
	}

	require.NoError(t, vault.ReleaseTo(env(ledgerAddr), user, big.NewInt(300)))
	require.NoError(t, vault.ReleaseTo(env(ledgerAddr), user, big.NewInt(0)))

	balance, err := vault.Balance()
	require.NoError(t, err)
	assert.Equal(t, int64(200), balance.Int64())
	got, err := resolver.token.BalanceOf(user)
	require.NoError(t, err)
	assert.Equal(t, int64(300), got.Int64())
	released, err := vault.TotalReleased()
	require.NoError(t, err)
	assert.Equal(t, int64(300), released.Int64())

	// cumulative releases are bounded by the distributed total
	err = vault.ReleaseTo(env(ledgerAddr), user, big.NewInt(101))
	assert.ErrorIs(t, err, reverts.ErrEmissionExceeded)
	require.NoError(t, vault.ReleaseTo(env(ledgerAddr), user, big.NewInt(100)))
}

func TestReleaseWithoutLedger(t *testing.T) {
	vault, _, env := newTestVault(t)
	assert.ErrorIs(t, vault.ReleaseTo(env(dino.Address{}), user, big.NewInt(1)), reverts.ErrUnauthorized)
}
