// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fossil implements the fungible reward token.
package fossil

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/builtin/solidity"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/state"
	"github.com/vechain/dinostake/xenv"
)

const (
	Name     = "Fossil"
	Symbol   = "FOS"
	Decimals = uint8(18)
)

var (
	slotTotalSupply = solidity.Slot("total-supply")
	slotBalances    = solidity.Slot("balances")
	slotAllowances  = solidity.Slot("allowances")
)

type allowanceKey struct {
	owner   dino.Address
	spender dino.Address
}

func (k allowanceKey) Bytes() []byte {
	return append(k.owner.Bytes(), k.spender.Bytes()...)
}

// Fossil implements native methods of the reward token.
type Fossil struct {
	addr        dino.Address
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[dino.Address, *big.Int]
	allowances  *solidity.Mapping[allowanceKey, *big.Int]
}

// New create a new instance.
func New(addr dino.Address, state *state.State) *Fossil {
	sctx := solidity.NewContext(addr, state)
	return &Fossil{
		addr:        addr,
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
		balances:    solidity.NewMapping[dino.Address, *big.Int](sctx, slotBalances),
		allowances:  solidity.NewMapping[allowanceKey, *big.Int](sctx, slotAllowances),
	}
}

func (f *Fossil) Address() dino.Address { return f.addr }

// Initialize mints the whole fixed supply to holder. It can only run once.
func (f *Fossil) Initialize(holder dino.Address, supply *big.Int) error {
	if holder.IsZero() {
		return reverts.ErrZeroAddress
	}
	current, err := f.totalSupply.Get()
	if err != nil {
		return err
	}
	if current.Sign() != 0 {
		return errors.Wrap(reverts.ErrInvalidConfig, "token supply already initialized")
	}
	if err := f.totalSupply.Set(supply); err != nil {
		return err
	}
	return f.balances.Set(holder, new(big.Int).Set(supply))
}

func (f *Fossil) TotalSupply() (*big.Int, error) {
	return f.totalSupply.Get()
}

func (f *Fossil) BalanceOf(addr dino.Address) (*big.Int, error) {
	bal, err := f.balances.Get(addr)
	if err != nil {
		return nil, err
	}
	if bal == nil {
		return new(big.Int), nil
	}
	return bal, nil
}

func (f *Fossil) Allowance(owner, spender dino.Address) (*big.Int, error) {
	allowance, err := f.allowances.Get(allowanceKey{owner, spender})
	if err != nil {
		return nil, err
	}
	if allowance == nil {
		return new(big.Int), nil
	}
	return allowance, nil
}

// Approve sets the amount spender may move out of the caller's balance.
func (f *Fossil) Approve(env *xenv.Environment, spender dino.Address, amount *big.Int) error {
	if spender.IsZero() {
		return reverts.ErrZeroAddress
	}
	if amount.Sign() < 0 {
		return errors.Wrap(reverts.ErrInvalidConfig, "negative allowance")
	}
	key := allowanceKey{env.Caller(), spender}
	if amount.Sign() == 0 {
		f.allowances.Delete(key)
		return nil
	}
	return f.allowances.Set(key, amount)
}

// Transfer moves amount from the caller to to.
func (f *Fossil) Transfer(env *xenv.Environment, to dino.Address, amount *big.Int) error {
	return f.move(env.Caller(), to, amount)
}

// TransferFrom moves amount from from to to, spending the caller's allowance.
func (f *Fossil) TransferFrom(env *xenv.Environment, from, to dino.Address, amount *big.Int) error {
	spender := env.Caller()
	if spender != from {
		allowance, err := f.Allowance(from, spender)
		if err != nil {
			return err
		}
		if allowance.Cmp(amount) < 0 {
			return reverts.Wrapf(reverts.ErrInsufficientAllowance, "spender %v wants %v, allowed %v", spender, amount, allowance)
		}
		if allowance.Cmp(dino.MaxUint256) != 0 {
			if err := f.allowances.Set(allowanceKey{from, spender}, allowance.Sub(allowance, amount)); err != nil {
				return err
			}
		}
	}
	return f.move(from, to, amount)
}

func (f *Fossil) move(from, to dino.Address, amount *big.Int) error {
	if to.IsZero() {
		return reverts.ErrZeroAddress
	}
	if amount.Sign() < 0 {
		return errors.Wrap(reverts.ErrInvalidConfig, "negative amount")
	}
	fromBal, err := f.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return reverts.Wrapf(reverts.ErrInsufficientBalance, "%v holds %v, wants %v", from, fromBal, amount)
	}
	if amount.Sign() == 0 || from == to {
		return nil
	}
	if err := f.balances.Set(from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	toBal, err := f.BalanceOf(to)
	if err != nil {
		return err
	}
	return f.balances.Set(to, toBal.Add(toBal, amount))
}
