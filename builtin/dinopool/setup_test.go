// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dinopool

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dinostake/builtin/dinotoken"
	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/lvldb"
	"github.com/vechain/dinostake/state"
	"github.com/vechain/dinostake/xenv"
)

var (
	poolAddr      = dino.BytesToAddress([]byte("pool"))
	nftAddr       = dino.BytesToAddress([]byte("Dino"))
	rewardAddr    = dino.BytesToAddress([]byte("Fossil"))
	vaultAddr     = dino.BytesToAddress([]byte("vault"))
	trackerAddr   = dino.BytesToAddress([]byte("tracker"))
	schedulerAddr = dino.BytesToAddress([]byte("scheduler"))
	deployer      = dino.BytesToAddress([]byte("deployer"))
	user1         = dino.BytesToAddress([]byte("user1"))
	user2         = dino.BytesToAddress([]byte("user2"))
)

// fakeVault pays out of an in-memory balance.
type fakeVault struct {
	balance  *big.Int
	released map[dino.Address]*big.Int
	callers  []dino.Address
}

func (v *fakeVault) ReleaseTo(env *xenv.Environment, recipient dino.Address, amount *big.Int) error {
	v.callers = append(v.callers, env.Caller())
	if v.balance.Cmp(amount) < 0 {
		return reverts.ErrInsufficientVaultBalance
	}
	v.balance.Sub(v.balance, amount)
	if v.released[recipient] == nil {
		v.released[recipient] = new(big.Int)
	}
	v.released[recipient].Add(v.released[recipient], amount)
	return nil
}

type fakeTracker struct {
	claimed *big.Int
}

func (t *fakeTracker) RecordClaim(_ *xenv.Environment, amount *big.Int) error {
	t.claimed.Add(t.claimed, amount)
	return nil
}

// testResolver wires a real collateral registry and fake reward side.
type testResolver struct {
	st      *state.State
	pool    *Pool
	vault   *fakeVault
	tracker *fakeTracker
	// hook is an extra receiver installed at an address, used to reenter the pool.
	hooks map[dino.Address]dinotoken.Receiver
}

func (r *testResolver) nft() *dinotoken.DinoToken {
	return dinotoken.New(nftAddr, r.st, r)
}

func (r *testResolver) Receiver(addr dino.Address) (dinotoken.Receiver, bool) {
	if addr == poolAddr {
		return r.pool, true
	}
	h, ok := r.hooks[addr]
	return h, ok
}

func (r *testResolver) Collateral(addr dino.Address) (Collateral, error) {
	if addr != nftAddr {
		return nil, errors.Errorf("unknown collateral %v", addr)
	}
	return r.nft(), nil
}

func (r *testResolver) Vault(addr dino.Address) (Vault, error) {
	if addr != vaultAddr {
		return nil, errors.Errorf("unknown vault %v", addr)
	}
	return r.vault, nil
}

func (r *testResolver) Tracker(addr dino.Address) (Tracker, error) {
	if addr != trackerAddr {
		return nil, errors.Errorf("unknown tracker %v", addr)
	}
	return r.tracker, nil
}

type testSetup struct {
	t        *testing.T
	st       *state.State
	pool     *Pool
	resolver *testResolver
	now      uint64
}

func defaultConfig() *Config {
	return &Config{
		Owner:                    deployer,
		Name:                     "Staked Dino Token",
		Symbol:                   "SDT",
		Collateral:               nftAddr,
		RewardToken:              rewardAddr,
		Vault:                    vaultAddr,
		Tracker:                  trackerAddr,
		MinLockDuration:          600,
		MaxLockDuration:          31536000,
		MaxBonus:                 dino.DefaultMaxBonus(),
		MaximumNftStakingAllowed: 20,
	}
}

func newSetup(t *testing.T, cfg *Config) *testSetup {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db, 0).NewState()
	resolver := &testResolver{
		st:      st,
		vault:   &fakeVault{balance: new(big.Int), released: make(map[dino.Address]*big.Int)},
		tracker: &fakeTracker{claimed: new(big.Int)},
		hooks:   make(map[dino.Address]dinotoken.Receiver),
	}
	pool := New(poolAddr, st, resolver)
	resolver.pool = pool
	require.NoError(t, pool.Initialize(cfg))

	s := &testSetup{t: t, st: st, pool: pool, resolver: resolver, now: 1_000_000}
	require.NoError(t, pool.SetScheduler(s.env(deployer), schedulerAddr))
	require.NoError(t, resolver.nft().Initialize(deployer))
	return s
}

func (s *testSetup) env(caller dino.Address) *xenv.Environment {
	return xenv.New(s.st, &xenv.BlockContext{Time: s.now}, caller)
}

func (s *testSetup) advance(seconds uint64) {
	s.now += seconds
}

// mint creates ids for owner and approves the pool as operator.
func (s *testSetup) mint(owner dino.Address, ids ...dino.TokenID) {
	nft := s.resolver.nft()
	for _, id := range ids {
		require.NoError(s.t, nft.Mint(s.env(deployer), owner, id))
	}
	require.NoError(s.t, nft.SetApprovalForAll(s.env(owner), poolAddr, true))
}

// distribute funds the vault and pushes amount into the accumulator.
func (s *testSetup) distribute(amount int64) {
	s.resolver.vault.balance.Add(s.resolver.vault.balance, big.NewInt(amount))
	require.NoError(s.t, s.pool.DistributeRewards(s.env(schedulerAddr), big.NewInt(amount)))
}

func ids(n int) []dino.TokenID {
	out := make([]dino.TokenID, n)
	for i := range out {
		out[i] = dino.TokenID(i)
	}
	return out
}
