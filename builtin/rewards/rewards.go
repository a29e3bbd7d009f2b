// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards implements the reward vault: the custody account a staking
// ledger pays claimed rewards out of.
package rewards

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
	logger = log.WithContext("pkg", "rewards")

	metricReleased = metrics.LazyLoadCounter("rewards_released_count")

	slotLedger        = solidity.Slot("ledger")
	slotToken         = solidity.Slot("token")
	slotTotalReleased = solidity.Slot("total-released")
)

// Token is the fungible reward token held by the vault.
type Token interface {
	BalanceOf(addr dino.Address) (*big.Int, error)
	Transfer(env *xenv.Environment, to dino.Address, amount *big.Int) error
}

// Ledger is the staking ledger allowed to release funds.
type Ledger interface {
	TotalDistributed() (*big.Int, error)
}

type Resolver interface {
	Token(addr dino.Address) (Token, error)
	Ledger(addr dino.Address) (Ledger, error)
}

// Vault implements native methods of a reward vault.
type Vault struct {
	addr     dino.Address
	resolver Resolver

	owner         *access.Owner
	ledger        *solidity.Address
	token         *solidity.Address
	totalReleased *solidity.Uint256
}

// New create a new instance.
func New(addr dino.Address, state *state.State, resolver Resolver) *Vault {
	sctx := solidity.NewContext(addr, state)
	return &Vault{
		addr:          addr,
		resolver:      resolver,
		owner:         access.NewOwner(sctx),
		ledger:        solidity.NewAddress(sctx, slotLedger),
		token:         solidity.NewAddress(sctx, slotToken),
		totalReleased: solidity.NewUint256(sctx, slotTotalReleased),
	}
}

func (v *Vault) Address() dino.Address { return v.addr }

// Initialize sets the owner. It can only run once.
func (v *Vault) Initialize(owner dino.Address) error {
	return v.owner.Init(owner)
}

func (v *Vault) Owner() (dino.Address, error)            { return v.owner.Get() }
func (v *Vault) AuthorizedLedger() (dino.Address, error) { return v.ledger.Get() }
func (v *Vault) Token() (dino.Address, error)            { return v.token.Get() }
func (v *Vault) TotalReleased() (*big.Int, error)        { return v.totalReleased.Get() }

// Balance returns the reward tokens held by the vault.
func (v *Vault) Balance() (*big.Int, error) {
	token, err := v.getToken()
	if err != nil {
		return nil, err
	}
	return token.BalanceOf(v.addr)
}

func (v *Vault) getToken() (Token, error) {
	addr, err := v.token.Get()
	if err != nil {
		return nil, err
	}
	if addr.IsZero() {
		return nil, errors.Errorf("vault %v has no token", v.addr)
	}
	return v.resolver.Token(addr)
}

// SetAuthorizedLedger binds the vault to the ledger that may release its funds
// and the token it holds.
func (v *Vault) SetAuthorizedLedger(env *xenv.Environment, ledger, token dino.Address) error {
	if err := v.owner.Require(env.Caller()); err != nil {
		return err
	}
	if ledger.IsZero() || token.IsZero() {
		return reverts.ErrZeroAddress
	}
	v.ledger.Set(ledger)
	v.token.Set(token)
	logger.Info("authorized ledger set", "vault", v.addr, "ledger", ledger, "token", token)
	return nil
}

// ReleaseTo pays amount to recipient. Only the authorized ledger may call it,
// and never beyond what that ledger has distributed in total.
func (v *Vault) ReleaseTo(env *xenv.Environment, recipient dino.Address, amount *big.Int) error {
	ledgerAddr, err := v.ledger.Get()
	if err != nil {
		return err
	}
	if ledgerAddr.IsZero() || env.Caller() != ledgerAddr {
		return reverts.Wrapf(reverts.ErrUnauthorized, "%v may not release from vault %v", env.Caller(), v.addr)
	}
	if recipient.IsZero() {
		return reverts.ErrZeroAddress
	}
	if amount.Sign() < 0 {
		return errors.Wrap(reverts.ErrInvalidConfig, "negative amount")
	}
	if amount.Sign() == 0 {
		return nil
	}

	token, err := v.getToken()
	if err != nil {
		return err
	}
	balance, err := token.BalanceOf(v.addr)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return reverts.Wrapf(reverts.ErrInsufficientVaultBalance, "holds %v, wants %v", balance, amount)
	}

	ledger, err := v.resolver.Ledger(ledgerAddr)
	if err != nil {
		return err
	}
	distributed, err := ledger.TotalDistributed()
	if err != nil {
		return err
	}
	released, err := v.totalReleased.Get()
	if err != nil {
		return err
	}
	released.Add(released, amount)
	if released.Cmp(distributed) > 0 {
		return reverts.Wrapf(reverts.ErrEmissionExceeded, "released %v above distributed %v", released, distributed)
	}
	if err := v.totalReleased.Set(released); err != nil {
		return err
	}

	inner, err := env.WithCaller(v.addr)
	if err != nil {
		return err
	}
	if err := token.Transfer(inner, recipient, amount); err != nil {
		return errors.Wrap(err, "transfer rewards")
	}
	metricReleased().Add(1)
	logger.Debug("rewards released", "vault", v.addr, "recipient", recipient, "amount", amount)
	return nil
}
