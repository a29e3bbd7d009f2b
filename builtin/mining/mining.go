// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package mining implements the emission scheduler. It meters the reward token
// out of a treasury at a per second rate and splits it between the registered
// staking ledgers by allocation points.
package mining

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/dinostake/builtin/access"
	"github.com/vechain/dinostake/builtin/guard"
	"github.com/vechain/dinostake/builtin/linkedlist"
	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/builtin/solidity"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/log"
	"github.com/vechain/dinostake/metrics"
	"github.com/vechain/dinostake/state"
	"github.com/vechain/dinostake/xenv"
)

var (
	logger = log.WithContext("pkg", "mining")

	metricDistributions = metrics.LazyLoadCounter("mining_distributions_count")
	metricSkippedPools  = metrics.LazyLoadCounterVec("mining_skipped_pools_count", []string{"reason"})

	slotRewardToken           = solidity.Slot("reward-token")
	slotTreasury              = solidity.Slot("treasury")
	slotTracker               = solidity.Slot("tracker")
	slotRewardPerSecond       = solidity.Slot("reward-per-second")
	slotTotalAllocationPoints = solidity.Slot("total-allocation-points")
	slotLastDistribution      = solidity.Slot("last-distribution")
	slotPoolInfos             = solidity.Slot("pool-infos")
	slotRegistered            = solidity.Slot("registered-pools")
)

// Token is the reward token pulled from the treasury.
type Token interface {
	TransferFrom(env *xenv.Environment, from, to dino.Address, amount *big.Int) error
}

// Ledger is a staking ledger that receives emissions.
type Ledger interface {
	TotalSupply() (*big.Int, error)
	Vault() (dino.Address, error)
	AccRewardPerShare() (*big.Int, error)
	DistributeRewards(env *xenv.Environment, amount *big.Int) error
}

// Tracker is informed of emitted amounts.
type Tracker interface {
	RecordEmission(env *xenv.Environment, amount *big.Int) error
}

type Resolver interface {
	Token(addr dino.Address) (Token, error)
	Ledger(addr dino.Address) (Ledger, error)
	Tracker(addr dino.Address) (Tracker, error)
}

type poolInfo struct {
	AllocationPoints *big.Int
	LastCheckpoint   uint64
}

// Manager implements native methods of the emission scheduler.
type Manager struct {
	addr     dino.Address
	resolver Resolver

	roles *access.Roles
	guard *guard.Guard
	pools *linkedlist.LinkedList
	infos *solidity.Mapping[dino.Address, *poolInfo]

	// ledgers ever added, removal keeps them
	registered *solidity.Mapping[dino.Address, bool]

	rewardToken           *solidity.Address
	treasury              *solidity.Address
	tracker               *solidity.Address
	rewardPerSecond       *solidity.Uint256
	totalAllocationPoints *solidity.Uint256
	lastDistribution      *solidity.Uint256
}

// New create a new instance.
func New(addr dino.Address, state *state.State, resolver Resolver) *Manager {
	sctx := solidity.NewContext(addr, state)
	return &Manager{
		addr:     addr,
		resolver: resolver,

		roles: access.NewRoles(sctx),
		guard: guard.New(sctx),
		pools: linkedlist.New(sctx, "pools"),
		infos: solidity.NewMapping[dino.Address, *poolInfo](sctx, slotPoolInfos),

		registered: solidity.NewMapping[dino.Address, bool](sctx, slotRegistered),

		rewardToken:           solidity.NewAddress(sctx, slotRewardToken),
		treasury:              solidity.NewAddress(sctx, slotTreasury),
		tracker:               solidity.NewAddress(sctx, slotTracker),
		rewardPerSecond:       solidity.NewUint256(sctx, slotRewardPerSecond),
		totalAllocationPoints: solidity.NewUint256(sctx, slotTotalAllocationPoints),
		lastDistribution:      solidity.NewUint256(sctx, slotLastDistribution),
	}
}

func (m *Manager) Address() dino.Address { return m.addr }

// Initialize deploys the scheduler. The caller becomes governance, which
// administers both the governance and the distributor role. Tracker is optional.
func (m *Manager) Initialize(env *xenv.Environment, token, treasury, tracker dino.Address) error {
	if token.IsZero() || treasury.IsZero() {
		return reverts.ErrZeroAddress
	}
	current, err := m.rewardToken.Get()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return errors.Wrap(reverts.ErrInvalidConfig, "scheduler already initialized")
	}
	deployer := env.Caller()
	if err := m.roles.Setup(access.DefaultAdminRole, deployer); err != nil {
		return err
	}
	if err := m.roles.Setup(access.GovRole, deployer); err != nil {
		return err
	}
	if err := m.roles.SetRoleAdmin(access.GovRole, access.GovRole); err != nil {
		return err
	}
	if err := m.roles.SetRoleAdmin(access.RewardDistributorRole, access.GovRole); err != nil {
		return err
	}
	m.rewardToken.Set(token)
	m.treasury.Set(treasury)
	m.tracker.Set(tracker)
	logger.Debug("scheduler initialized", "addr", m.addr, "token", token, "treasury", treasury, "governance", deployer)
	return m.lastDistribution.Set(new(big.Int).SetUint64(env.BlockTime()))
}

// DistributeRewards emits everything accrued since the last distribution.
// Only reward distributors may call it.
func (m *Manager) DistributeRewards(env *xenv.Environment) error {
	if err := m.roles.Require(access.RewardDistributorRole, env.Caller()); err != nil {
		return err
	}
	exit, err := m.guard.Enter()
	if err != nil {
		return err
	}
	defer exit()
	return m.distribute(env)
}

// distribute prices the time since the last distribution with the current
// rate and weights. Ledgers without shares forfeit their part.
func (m *Manager) distribute(env *xenv.Environment) error {
	now := env.BlockTime()
	last, err := m.lastDistribution.Get()
	if err != nil {
		return err
	}
	if now <= last.Uint64() {
		return nil
	}
	elapsed := new(big.Int).SetUint64(now - last.Uint64())

	rate, err := m.rewardPerSecond.Get()
	if err != nil {
		return err
	}
	totalPoints, err := m.totalAllocationPoints.Get()
	if err != nil {
		return err
	}
	setLast := func() error {
		return m.lastDistribution.Set(new(big.Int).SetUint64(now))
	}
	if rate.Sign() == 0 || totalPoints.Sign() == 0 {
		return setLast()
	}

	ledgers, err := m.pools.Members()
	if err != nil {
		return err
	}
	// own bookkeeping is settled before any token moves
	if err := setLast(); err != nil {
		return err
	}

	var (
		emitted = new(big.Int)
		pending = make(map[dino.Address]*big.Int, len(ledgers))
		order   = make([]dino.Address, 0, len(ledgers))
	)
	for _, addr := range ledgers {
		info, err := m.getPoolInfo(addr)
		if err != nil {
			return err
		}
		reward := new(big.Int).Mul(rate, elapsed)
		reward.Mul(reward, info.AllocationPoints)
		reward.Div(reward, totalPoints)
		if reward.Sign() == 0 {
			continue
		}
		ledger, err := m.resolver.Ledger(addr)
		if err != nil {
			return err
		}
		supply, err := ledger.TotalSupply()
		if err != nil {
			return err
		}
		if supply.Sign() == 0 {
			metricSkippedPools().AddWithLabel(1, map[string]string{"reason": "no-shares"})
			logger.Debug("pool has no shares, entitlement forfeited", "pool", addr, "reward", reward)
			continue
		}
		if new(big.Int).Mul(reward, dino.Scale).Cmp(supply) < 0 {
			metricSkippedPools().AddWithLabel(1, map[string]string{"reason": "dust"})
			logger.Debug("reward below one unit per share, entitlement forfeited", "pool", addr, "reward", reward, "supply", supply)
			continue
		}
		info.LastCheckpoint = now
		if err := m.infos.Set(addr, info); err != nil {
			return err
		}
		pending[addr] = reward
		order = append(order, addr)
		emitted.Add(emitted, reward)
	}

	if len(order) > 0 {
		if err := m.emit(env, order, pending); err != nil {
			return err
		}
	}
	metricDistributions().Add(1)
	logger.Debug("rewards distributed", "elapsed", elapsed, "pools", len(order), "emitted", emitted)

	if emitted.Sign() > 0 {
		trackerAddr, err := m.tracker.Get()
		if err != nil {
			return err
		}
		if !trackerAddr.IsZero() {
			tracker, err := m.resolver.Tracker(trackerAddr)
			if err != nil {
				return err
			}
			inner, err := env.WithCaller(m.addr)
			if err != nil {
				return err
			}
			if err := tracker.RecordEmission(inner, emitted); err != nil {
				return errors.Wrap(err, "record emission")
			}
		}
	}
	return nil
}

// emit moves each reward from the treasury into the ledger's vault and
// credits the ledger's accumulator.
func (m *Manager) emit(env *xenv.Environment, order []dino.Address, rewards map[dino.Address]*big.Int) error {
	tokenAddr, err := m.rewardToken.Get()
	if err != nil {
		return err
	}
	token, err := m.resolver.Token(tokenAddr)
	if err != nil {
		return err
	}
	treasury, err := m.treasury.Get()
	if err != nil {
		return err
	}
	inner, err := env.WithCaller(m.addr)
	if err != nil {
		return err
	}
	for _, addr := range order {
		ledger, err := m.resolver.Ledger(addr)
		if err != nil {
			return err
		}
		vault, err := ledger.Vault()
		if err != nil {
			return err
		}
		reward := rewards[addr]
		if err := token.TransferFrom(inner, treasury, vault, reward); err != nil {
			return errors.Wrapf(err, "fund vault of pool %v", addr)
		}
		if err := ledger.DistributeRewards(inner, reward); err != nil {
			return errors.Wrapf(err, "distribute to pool %v", addr)
		}
	}
	return nil
}

func (m *Manager) getPoolInfo(ledger dino.Address) (*poolInfo, error) {
	info, err := m.infos.Get(ledger)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, reverts.Wrapf(reverts.ErrPoolNotFound, "pool %v", ledger)
	}
	if info.AllocationPoints == nil {
		info.AllocationPoints = new(big.Int)
	}
	return info, nil
}
