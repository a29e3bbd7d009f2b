// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package utility implements the supply tracker that aggregates emission and
// claim totals of the reward token.
package utility

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/dinostake/builtin/access"
	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/builtin/solidity"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/log"
	"github.com/vechain/dinostake/metrics"
	"github.com/vechain/dinostake/state"
	"github.com/vechain/dinostake/xenv"
)

var (
	logger = log.WithContext("pkg", "utility")

	metricUnclaimed = metrics.LazyLoadGauge("utility_unclaimed_tokens")

	slotToken          = solidity.Slot("token")
	slotLedger         = solidity.Slot("ledger")
	slotScheduler      = solidity.Slot("scheduler")
	slotTokenSupply    = solidity.Slot("token-supply")
	slotRate           = solidity.Slot("rate-basis-points")
	slotPendingRewards = solidity.Slot("pending-rewards")
	slotTotalEmitted   = solidity.Slot("total-emitted")
	slotTotalClaimed   = solidity.Slot("total-claimed")
	slotUpdatedAt      = solidity.Slot("updated-at")
)

// Scheduler tells which ledgers were ever funded by emissions.
type Scheduler interface {
	PoolRegistered(ledger dino.Address) (bool, error)
}

type Resolver interface {
	Scheduler(addr dino.Address) (Scheduler, error)
}

// Details is a snapshot of the tracked totals.
type Details struct {
	TokenSupply     *big.Int `json:"tokenSupply"`
	RateBasisPoints uint64   `json:"rateBasisPoints"`
	PendingRewards  *big.Int `json:"pendingRewards"`
	UnclaimedAmount *big.Int `json:"unclaimedAmount"`
	TotalEmitted    *big.Int `json:"totalEmitted"`
	TotalClaimed    *big.Int `json:"totalClaimed"`
	UpdatedAt       uint64   `json:"updatedAt"`
}

// Manager implements native methods of the supply tracker.
type Manager struct {
	addr     dino.Address
	resolver Resolver

	owner          *access.Owner
	token          *solidity.Address
	ledger         *solidity.Address
	scheduler      *solidity.Address
	tokenSupply    *solidity.Uint256
	rate           *solidity.Uint256
	pendingRewards *solidity.Uint256
	totalEmitted   *solidity.Uint256
	totalClaimed   *solidity.Uint256
	updatedAt      *solidity.Uint256
}

// New create a new instance.
func New(addr dino.Address, state *state.State, resolver Resolver) *Manager {
	sctx := solidity.NewContext(addr, state)
	return &Manager{
		addr:           addr,
		resolver:       resolver,
		owner:          access.NewOwner(sctx),
		token:          solidity.NewAddress(sctx, slotToken),
		ledger:         solidity.NewAddress(sctx, slotLedger),
		scheduler:      solidity.NewAddress(sctx, slotScheduler),
		tokenSupply:    solidity.NewUint256(sctx, slotTokenSupply),
		rate:           solidity.NewUint256(sctx, slotRate),
		pendingRewards: solidity.NewUint256(sctx, slotPendingRewards),
		totalEmitted:   solidity.NewUint256(sctx, slotTotalEmitted),
		totalClaimed:   solidity.NewUint256(sctx, slotTotalClaimed),
		updatedAt:      solidity.NewUint256(sctx, slotUpdatedAt),
	}
}

func (m *Manager) Address() dino.Address { return m.addr }

func (m *Manager) Initialize(owner dino.Address) error {
	return m.owner.Init(owner)
}

func (m *Manager) Owner() (dino.Address, error)     { return m.owner.Get() }
func (m *Manager) Token() (dino.Address, error)     { return m.token.Get() }
func (m *Manager) Ledger() (dino.Address, error)    { return m.ledger.Get() }
func (m *Manager) Scheduler() (dino.Address, error) { return m.scheduler.Get() }

// SetTrackedContracts sets the token, ledger and scheduler the tracker follows.
func (m *Manager) SetTrackedContracts(env *xenv.Environment, token, ledger, scheduler dino.Address) error {
	if err := m.owner.Require(env.Caller()); err != nil {
		return err
	}
	if token.IsZero() || ledger.IsZero() || scheduler.IsZero() {
		return reverts.ErrZeroAddress
	}
	m.token.Set(token)
	m.ledger.Set(ledger)
	m.scheduler.Set(scheduler)
	logger.Info("tracked contracts set", "token", token, "ledger", ledger, "scheduler", scheduler)
	return nil
}

// UpdatePendingRewards records the token supply and the share of it, in basis
// points, that is earmarked for rewards.
func (m *Manager) UpdatePendingRewards(env *xenv.Environment, supply *big.Int, rateBasisPoints uint64) error {
	if err := m.owner.Require(env.Caller()); err != nil {
		return err
	}
	if rateBasisPoints > dino.BasisPoints.Uint64() {
		return errors.Wrapf(reverts.ErrInvalidConfig, "rate %d above %v basis points", rateBasisPoints, dino.BasisPoints)
	}
	if supply.Sign() < 0 {
		return errors.Wrap(reverts.ErrInvalidConfig, "negative supply")
	}
	pending := new(big.Int).Mul(supply, new(big.Int).SetUint64(rateBasisPoints))
	pending.Div(pending, dino.BasisPoints)

	if err := m.tokenSupply.Set(supply); err != nil {
		return err
	}
	if err := m.rate.Set(new(big.Int).SetUint64(rateBasisPoints)); err != nil {
		return err
	}
	if err := m.pendingRewards.Set(pending); err != nil {
		return err
	}
	return m.touch(env)
}

func (m *Manager) touch(env *xenv.Environment) error {
	return m.updatedAt.Set(new(big.Int).SetUint64(env.BlockTime()))
}

// RecordEmission adds amount to the emitted total. Only the tracked scheduler may call it.
func (m *Manager) RecordEmission(env *xenv.Environment, amount *big.Int) error {
	scheduler, err := m.scheduler.Get()
	if err != nil {
		return err
	}
	if scheduler.IsZero() || env.Caller() != scheduler {
		return reverts.Wrapf(reverts.ErrUnauthorized, "%v is not the tracked scheduler", env.Caller())
	}
	if err := m.totalEmitted.Add(amount); err != nil {
		return err
	}
	if err := m.touch(env); err != nil {
		return err
	}
	m.reportUnclaimed()
	return nil
}

// RecordClaim adds amount to the claimed total. Callers must be the tracked
// ledger or a ledger the tracked scheduler has registered, removed ones included.
func (m *Manager) RecordClaim(env *xenv.Environment, amount *big.Int) error {
	if err := m.requireLedger(env.Caller()); err != nil {
		return err
	}
	if err := m.totalClaimed.Add(amount); err != nil {
		return err
	}
	if err := m.touch(env); err != nil {
		return err
	}
	m.reportUnclaimed()
	return nil
}

func (m *Manager) requireLedger(caller dino.Address) error {
	ledger, err := m.ledger.Get()
	if err != nil {
		return err
	}
	if !ledger.IsZero() && caller == ledger {
		return nil
	}
	schedulerAddr, err := m.scheduler.Get()
	if err != nil {
		return err
	}
	if !schedulerAddr.IsZero() {
		scheduler, err := m.resolver.Scheduler(schedulerAddr)
		if err != nil {
			return err
		}
		registered, err := scheduler.PoolRegistered(caller)
		if err != nil {
			return err
		}
		if registered {
			return nil
		}
	}
	return reverts.Wrapf(reverts.ErrUnauthorized, "%v is not a tracked ledger", caller)
}

func (m *Manager) reportUnclaimed() {
	if !metrics.Enabled() {
		return
	}
	if d, err := m.Details(); err == nil && d.UnclaimedAmount.IsInt64() {
		metricUnclaimed().Set(d.UnclaimedAmount.Int64())
	}
}

// Details returns the tracked totals.
func (m *Manager) Details() (*Details, error) {
	var (
		d   Details
		err error
	)
	if d.TokenSupply, err = m.tokenSupply.Get(); err != nil {
		return nil, err
	}
	rate, err := m.rate.Get()
	if err != nil {
		return nil, err
	}
	d.RateBasisPoints = rate.Uint64()
	if d.PendingRewards, err = m.pendingRewards.Get(); err != nil {
		return nil, err
	}
	if d.TotalEmitted, err = m.totalEmitted.Get(); err != nil {
		return nil, err
	}
	if d.TotalClaimed, err = m.totalClaimed.Get(); err != nil {
		return nil, err
	}
	updatedAt, err := m.updatedAt.Get()
	if err != nil {
		return nil, err
	}
	d.UpdatedAt = updatedAt.Uint64()

	d.UnclaimedAmount = new(big.Int).Sub(d.TotalEmitted, d.TotalClaimed)
	if d.UnclaimedAmount.Sign() < 0 {
		d.UnclaimedAmount.SetInt64(0)
	}
	return &d, nil
}
