// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package dinopool implements the staking ledger: collateral deposits mint
// time bonused shares which earn a pro-rata part of the emitted rewards.
package dinopool

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/dinostake/builtin/access"
	"github.com/vechain/dinostake/builtin/bonus"
	"github.com/vechain/dinostake/builtin/guard"
	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/builtin/solidity"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/log"
	"github.com/vechain/dinostake/metrics"
	"github.com/vechain/dinostake/state"
	"github.com/vechain/dinostake/xenv"
)

var (
	logger = log.WithContext("pkg", "dinopool")

	metricDeposits    = metrics.LazyLoadCounterVec("dinopool_deposits_count", []string{"pool"})
	metricWithdrawals = metrics.LazyLoadCounterVec("dinopool_withdrawals_count", []string{"pool"})
	metricClaims      = metrics.LazyLoadCounterVec("dinopool_claims_count", []string{"pool"})

	MaximumNftStakingAllowed = solidity.NewConfigVariable("maximum-nft-staking-allowed", dino.DefaultMaximumNftStakingAllowed)

	slotSettings          = solidity.Slot("settings")
	slotMinLockDuration   = solidity.Slot("min-lock-duration")
	slotMaxLockDuration   = solidity.Slot("max-lock-duration")
	slotMaxBonus          = solidity.Slot("max-bonus")
	slotScheduler         = solidity.Slot("scheduler")
	slotAccRewardPerShare = solidity.Slot("acc-reward-per-share")
	slotTotalSupply       = solidity.Slot("total-supply")
	slotTotalDistributed  = solidity.Slot("total-distributed")
	slotAccounts          = solidity.Slot("accounts")
	slotDeposits          = solidity.Slot("deposits")
)

// Collateral is the registry the ledger takes custody of items from.
type Collateral interface {
	SafeTransferFrom(env *xenv.Environment, from, to dino.Address, id dino.TokenID) error
}

// Vault pays out claimed rewards.
type Vault interface {
	ReleaseTo(env *xenv.Environment, recipient dino.Address, amount *big.Int) error
}

// Tracker is informed of claimed amounts.
type Tracker interface {
	RecordClaim(env *xenv.Environment, amount *big.Int) error
}

// Resolver binds the addresses a ledger is configured with to contracts.
type Resolver interface {
	Collateral(addr dino.Address) (Collateral, error)
	Vault(addr dino.Address) (Vault, error)
	Tracker(addr dino.Address) (Tracker, error)
}

// Pool implements native methods of a staking ledger.
type Pool struct {
	addr     dino.Address
	sctx     *solidity.Context
	resolver Resolver

	owner    *access.Owner
	guard    *guard.Guard
	settings *solidity.Raw[*settings]

	minLockDuration   *solidity.Uint256
	maxLockDuration   *solidity.Uint256
	maxBonus          *solidity.Uint256
	scheduler         *solidity.Address
	accRewardPerShare *solidity.Uint256
	totalSupply       *solidity.Uint256
	totalDistributed  *solidity.Uint256

	accounts *solidity.Mapping[dino.Address, *Account]
	deposits *solidity.Mapping[dino.TokenID, *Deposit]
	index    *depositIndex
}

// New create a new instance.
func New(addr dino.Address, state *state.State, resolver Resolver) *Pool {
	sctx := solidity.NewContext(addr, state)
	return &Pool{
		addr:     addr,
		sctx:     sctx,
		resolver: resolver,

		owner:    access.NewOwner(sctx),
		guard:    guard.New(sctx),
		settings: solidity.NewRaw[*settings](sctx, slotSettings),

		minLockDuration:   solidity.NewUint256(sctx, slotMinLockDuration),
		maxLockDuration:   solidity.NewUint256(sctx, slotMaxLockDuration),
		maxBonus:          solidity.NewUint256(sctx, slotMaxBonus),
		scheduler:         solidity.NewAddress(sctx, slotScheduler),
		accRewardPerShare: solidity.NewUint256(sctx, slotAccRewardPerShare),
		totalSupply:       solidity.NewUint256(sctx, slotTotalSupply),
		totalDistributed:  solidity.NewUint256(sctx, slotTotalDistributed),

		accounts: solidity.NewMapping[dino.Address, *Account](sctx, slotAccounts),
		deposits: solidity.NewMapping[dino.TokenID, *Deposit](sctx, slotDeposits),
		index:    newDepositIndex(sctx),
	}
}

func (p *Pool) Address() dino.Address { return p.addr }

// Initialize deploys the ledger. It can only run once.
func (p *Pool) Initialize(cfg *Config) error {
	if cfg.Collateral.IsZero() || cfg.RewardToken.IsZero() || cfg.Vault.IsZero() {
		return reverts.ErrZeroAddress
	}
	if cfg.MaxBonus == nil {
		cfg.MaxBonus = dino.DefaultMaxBonus()
	}
	if err := validateBounds(cfg.MinLockDuration, cfg.MaxLockDuration, cfg.MaxBonus); err != nil {
		return err
	}
	if err := p.owner.Init(cfg.Owner); err != nil {
		return err
	}
	if err := p.settings.Set(&settings{
		Name:        cfg.Name,
		Symbol:      cfg.Symbol,
		Collateral:  cfg.Collateral,
		RewardToken: cfg.RewardToken,
		Vault:       cfg.Vault,
		Tracker:     cfg.Tracker,
	}); err != nil {
		return err
	}
	if err := p.minLockDuration.Set(new(big.Int).SetUint64(cfg.MinLockDuration)); err != nil {
		return err
	}
	if err := p.maxLockDuration.Set(new(big.Int).SetUint64(cfg.MaxLockDuration)); err != nil {
		return err
	}
	if err := p.maxBonus.Set(cfg.MaxBonus); err != nil {
		return err
	}
	if cfg.MaximumNftStakingAllowed != 0 {
		MaximumNftStakingAllowed.Set(p.sctx, cfg.MaximumNftStakingAllowed)
	}
	logger.Debug("ledger initialized", "addr", p.addr, "name", cfg.Name, "owner", cfg.Owner)
	return nil
}

// Initialized reports whether Initialize ran.
func (p *Pool) Initialized() (bool, error) {
	owner, err := p.owner.Get()
	if err != nil {
		return false, err
	}
	return !owner.IsZero(), nil
}

func validateBounds(min, max uint64, maxBonus *big.Int) error {
	if min > max {
		return errors.Wrapf(reverts.ErrInvalidConfig, "minimum lock %d above maximum %d", min, max)
	}
	if maxBonus.Cmp(dino.Scale) < 0 {
		return errors.Wrapf(reverts.ErrInvalidConfig, "max bonus %v below 1x", maxBonus)
	}
	return nil
}

func (p *Pool) getSettings() (*settings, error) {
	s, err := p.settings.Get()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.Errorf("ledger %v not initialized", p.addr)
	}
	return s, nil
}

func (p *Pool) getAccount(addr dino.Address) (*Account, error) {
	acc, err := p.accounts.Get(addr)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return newAccount(), nil
	}
	return acc, nil
}

func (p *Pool) curve() (*bonus.Curve, error) {
	min, err := p.MinimumLockDuration()
	if err != nil {
		return nil, err
	}
	max, err := p.MaxLockDuration()
	if err != nil {
		return nil, err
	}
	maxBonus, err := p.MaxBonus()
	if err != nil {
		return nil, err
	}
	return &bonus.Curve{MinLockDuration: min, MaxLockDuration: max, MaxBonus: maxBonus}, nil
}

// Deposit locks the collateral items ids, pulled from the caller, for lockDuration
// seconds and credits the minted shares to recipient.
func (p *Pool) Deposit(env *xenv.Environment, ids []dino.TokenID, lockDuration uint64, recipient dino.Address) error {
	exit, err := p.guard.Enter()
	if err != nil {
		return err
	}
	defer exit()

	if len(ids) == 0 {
		return errors.Wrap(reverts.ErrInvalidConfig, "no collateral")
	}
	if recipient.IsZero() {
		return reverts.ErrZeroAddress
	}
	curve, err := p.curve()
	if err != nil {
		return err
	}
	if lockDuration < curve.MinLockDuration || lockDuration > curve.MaxLockDuration {
		return reverts.Wrapf(reverts.ErrInvalidLockDuration, "%d not in [%d, %d]", lockDuration, curve.MinLockDuration, curve.MaxLockDuration)
	}
	capacity, err := MaximumNftStakingAllowed.Get(p.sctx)
	if err != nil {
		return err
	}
	count, err := p.index.Len(recipient)
	if err != nil {
		return err
	}
	if count+uint64(len(ids)) > capacity {
		return reverts.Wrapf(reverts.ErrCapacityExceeded, "%v would hold %d items, capacity %d", recipient, count+uint64(len(ids)), capacity)
	}

	acc, err := p.accRewardPerShare.Get()
	if err != nil {
		return err
	}
	account, err := p.getAccount(recipient)
	if err != nil {
		return err
	}
	// settle before the denominator changes
	account.settle(acc)

	var (
		now        = env.BlockTime()
		shares     = curve.Shares(lockDuration)
		unlockTime = now + max(lockDuration, curve.MinLockDuration)
		minted     = new(big.Int)
	)
	for _, id := range ids {
		staked, err := p.deposits.Exists(id)
		if err != nil {
			return err
		}
		if staked {
			return reverts.Wrapf(reverts.ErrAlreadyStaked, "token %v", id)
		}
		if err := p.deposits.Set(id, &Deposit{
			Owner:        recipient,
			CollateralID: id,
			ShareAmount:  new(big.Int).Set(shares),
			LockStart:    now,
			LockDuration: lockDuration,
			UnlockTime:   unlockTime,
		}); err != nil {
			return err
		}
		if err := p.index.Add(recipient, id); err != nil {
			return err
		}
		minted.Add(minted, shares)
	}

	account.TotalShares = new(big.Int).Add(account.TotalShares, minted)
	account.resetDebt(acc)
	if err := p.accounts.Set(recipient, account); err != nil {
		return err
	}
	if err := p.totalSupply.Add(minted); err != nil {
		return err
	}

	// custody is taken last
	s, err := p.getSettings()
	if err != nil {
		return err
	}
	collateral, err := p.resolver.Collateral(s.Collateral)
	if err != nil {
		return err
	}
	inner, err := env.WithCaller(p.addr)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := collateral.SafeTransferFrom(inner, env.Caller(), p.addr, id); err != nil {
			return errors.Wrapf(err, "take custody of token %v", id)
		}
	}

	metricDeposits().AddWithLabel(int64(len(ids)), map[string]string{"pool": s.Symbol})
	logger.Debug("deposited", "pool", p.addr, "recipient", recipient, "items", len(ids), "shares", minted, "unlock", unlockTime)
	return nil
}

// OnDinoReceived accepts only the items the ledger pulls itself during Deposit.
func (p *Pool) OnDinoReceived(env *xenv.Environment, operator, from dino.Address, id dino.TokenID) error {
	s, err := p.getSettings()
	if err != nil {
		return err
	}
	if env.Caller() != s.Collateral || operator != p.addr {
		return reverts.Wrapf(reverts.ErrUnauthorized, "unsolicited token %v from %v", id, from)
	}
	staked, err := p.deposits.Exists(id)
	if err != nil {
		return err
	}
	if !staked {
		return reverts.Wrapf(reverts.ErrNotStaked, "token %v", id)
	}
	return nil
}

// Withdraw releases the caller's unlocked deposits of ids and returns the items to recipient.
func (p *Pool) Withdraw(env *xenv.Environment, ids []dino.TokenID, recipient dino.Address) error {
	exit, err := p.guard.Enter()
	if err != nil {
		return err
	}
	defer exit()

	if len(ids) == 0 {
		return errors.Wrap(reverts.ErrInvalidConfig, "no collateral")
	}
	if recipient.IsZero() {
		return reverts.ErrZeroAddress
	}

	var (
		caller = env.Caller()
		now    = env.BlockTime()
		burned = new(big.Int)
	)
	acc, err := p.accRewardPerShare.Get()
	if err != nil {
		return err
	}
	account, err := p.getAccount(caller)
	if err != nil {
		return err
	}
	account.settle(acc)

	for _, id := range ids {
		deposit, err := p.deposits.Get(id)
		if err != nil {
			return err
		}
		if deposit == nil || deposit.Owner != caller {
			return reverts.Wrapf(reverts.ErrNotStaked, "token %v by %v", id, caller)
		}
		if !deposit.Unlockable(now) {
			return reverts.Wrapf(reverts.ErrStillLocked, "token %v until %d", id, deposit.UnlockTime)
		}
		p.deposits.Delete(id)
		if err := p.index.Remove(caller, id); err != nil {
			return err
		}
		burned.Add(burned, deposit.ShareAmount)
	}

	if account.TotalShares.Cmp(burned) < 0 {
		return errors.Errorf("share underflow for %v", caller)
	}
	account.TotalShares = new(big.Int).Sub(account.TotalShares, burned)
	account.resetDebt(acc)
	if err := p.accounts.Set(caller, account); err != nil {
		return err
	}
	if err := p.totalSupply.Sub(burned); err != nil {
		return err
	}

	s, err := p.getSettings()
	if err != nil {
		return err
	}
	collateral, err := p.resolver.Collateral(s.Collateral)
	if err != nil {
		return err
	}
	inner, err := env.WithCaller(p.addr)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := collateral.SafeTransferFrom(inner, p.addr, recipient, id); err != nil {
			return errors.Wrapf(err, "return token %v", id)
		}
	}

	metricWithdrawals().AddWithLabel(int64(len(ids)), map[string]string{"pool": s.Symbol})
	logger.Debug("withdrawn", "pool", p.addr, "owner", caller, "recipient", recipient, "items", len(ids), "shares", burned)
	return nil
}

// ClaimRewards pays everything the caller can withdraw to recipient. Nothing to claim is not an error.
func (p *Pool) ClaimRewards(env *xenv.Environment, recipient dino.Address) (*big.Int, error) {
	exit, err := p.guard.Enter()
	if err != nil {
		return nil, err
	}
	defer exit()

	if recipient.IsZero() {
		return nil, reverts.ErrZeroAddress
	}

	caller := env.Caller()
	acc, err := p.accRewardPerShare.Get()
	if err != nil {
		return nil, err
	}
	account, err := p.getAccount(caller)
	if err != nil {
		return nil, err
	}
	amount := account.withdrawable(acc)
	if amount.Sign() == 0 {
		return amount, nil
	}

	account.Settled = new(big.Int)
	account.resetDebt(acc)
	account.Withdrawn = new(big.Int).Add(account.Withdrawn, amount)
	if err := p.accounts.Set(caller, account); err != nil {
		return nil, err
	}

	s, err := p.getSettings()
	if err != nil {
		return nil, err
	}
	inner, err := env.WithCaller(p.addr)
	if err != nil {
		return nil, err
	}
	if !s.Tracker.IsZero() {
		tracker, err := p.resolver.Tracker(s.Tracker)
		if err != nil {
			return nil, err
		}
		if err := tracker.RecordClaim(inner, amount); err != nil {
			return nil, errors.Wrap(err, "record claim")
		}
	}
	vault, err := p.resolver.Vault(s.Vault)
	if err != nil {
		return nil, err
	}
	if err := vault.ReleaseTo(inner, recipient, amount); err != nil {
		return nil, errors.Wrap(err, "release rewards")
	}

	metricClaims().AddWithLabel(1, map[string]string{"pool": s.Symbol})
	logger.Debug("rewards claimed", "pool", p.addr, "owner", caller, "recipient", recipient, "amount", amount)
	return amount, nil
}

// DistributeRewards adds amount, already moved into the vault, to the accumulator.
// Only the scheduler may call it and there must be shares to distribute over.
func (p *Pool) DistributeRewards(env *xenv.Environment, amount *big.Int) error {
	exit, err := p.guard.Enter()
	if err != nil {
		return err
	}
	defer exit()

	scheduler, err := p.scheduler.Get()
	if err != nil {
		return err
	}
	if scheduler.IsZero() || env.Caller() != scheduler {
		return reverts.Wrapf(reverts.ErrUnauthorized, "%v is not the scheduler", env.Caller())
	}
	if amount.Sign() < 0 {
		return errors.Wrap(reverts.ErrInvalidConfig, "negative reward")
	}
	if amount.Sign() == 0 {
		return nil
	}
	supply, err := p.totalSupply.Get()
	if err != nil {
		return err
	}
	if supply.Sign() == 0 {
		return reverts.ErrNoShares
	}

	delta := new(big.Int).Mul(amount, dino.Scale)
	delta.Div(delta, supply)
	if delta.Sign() == 0 {
		return errors.Wrapf(reverts.ErrInvalidConfig, "reward %v rounds to zero over %v shares", amount, supply)
	}
	if err := p.accRewardPerShare.Add(delta); err != nil {
		return err
	}
	if err := p.totalDistributed.Add(amount); err != nil {
		return err
	}
	logger.Trace("rewards distributed", "pool", p.addr, "amount", amount, "supply", supply)
	return nil
}
