// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package dinotoken implements the non fungible collateral registry.
package dinotoken

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/dinostake/builtin/access"
	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/builtin/solidity"
	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/log"
	"github.com/vechain/dinostake/state"
	"github.com/vechain/dinostake/xenv"
)

const (
	Name   = "Dino"
	Symbol = "DINO"
)

var (
	logger = log.WithContext("pkg", "dinotoken")

	slotOwners            = solidity.Slot("owners")
	slotBalances          = solidity.Slot("balances")
	slotTokenApprovals    = solidity.Slot("token-approvals")
	slotOperatorApprovals = solidity.Slot("operator-approvals")
	slotTotalMinted       = solidity.Slot("total-minted")
)

// Receiver is implemented by contracts that accept tokens through SafeTransferFrom.
// Returning an error aborts the transfer.
type Receiver interface {
	OnDinoReceived(env *xenv.Environment, operator, from dino.Address, id dino.TokenID) error
}

// Receivers resolves the receiver contract deployed at an address, if any.
type Receivers interface {
	Receiver(addr dino.Address) (Receiver, bool)
}

type operatorKey struct {
	owner    dino.Address
	operator dino.Address
}

func (k operatorKey) Bytes() []byte {
	return append(k.owner.Bytes(), k.operator.Bytes()...)
}

// DinoToken implements native methods of the collateral registry.
type DinoToken struct {
	addr              dino.Address
	receivers         Receivers
	owner             *access.Owner
	owners            *solidity.Mapping[dino.TokenID, dino.Address]
	balances          *solidity.Mapping[dino.Address, uint64]
	tokenApprovals    *solidity.Mapping[dino.TokenID, dino.Address]
	operatorApprovals *solidity.Mapping[operatorKey, bool]
	totalMinted       *solidity.Uint256
}

// New create a new instance.
func New(addr dino.Address, state *state.State, receivers Receivers) *DinoToken {
	sctx := solidity.NewContext(addr, state)
	return &DinoToken{
		addr:              addr,
		receivers:         receivers,
		owner:             access.NewOwner(sctx),
		owners:            solidity.NewMapping[dino.TokenID, dino.Address](sctx, slotOwners),
		balances:          solidity.NewMapping[dino.Address, uint64](sctx, slotBalances),
		tokenApprovals:    solidity.NewMapping[dino.TokenID, dino.Address](sctx, slotTokenApprovals),
		operatorApprovals: solidity.NewMapping[operatorKey, bool](sctx, slotOperatorApprovals),
		totalMinted:       solidity.NewUint256(sctx, slotTotalMinted),
	}
}

func (d *DinoToken) Address() dino.Address { return d.addr }

// Initialize sets the minter.
func (d *DinoToken) Initialize(owner dino.Address) error {
	return d.owner.Init(owner)
}

func (d *DinoToken) Owner() (dino.Address, error) {
	return d.owner.Get()
}

func (d *DinoToken) TotalMinted() (uint64, error) {
	n, err := d.totalMinted.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// Mint creates token id for to. Owner only.
func (d *DinoToken) Mint(env *xenv.Environment, to dino.Address, id dino.TokenID) error {
	if err := d.owner.Require(env.Caller()); err != nil {
		return err
	}
	if to.IsZero() {
		return reverts.ErrZeroAddress
	}
	exists, err := d.owners.Exists(id)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(reverts.ErrInvalidConfig, "token %v already minted", id)
	}
	if err := d.owners.Set(id, to); err != nil {
		return err
	}
	if err := d.addBalance(to, 1); err != nil {
		return err
	}
	logger.Trace("minted", "id", id, "to", to)
	return d.totalMinted.Add(big.NewInt(1))
}

// OwnerOf returns the holder of id, failing for unminted ids.
func (d *DinoToken) OwnerOf(id dino.TokenID) (dino.Address, error) {
	owner, err := d.owners.Get(id)
	if err != nil {
		return dino.Address{}, err
	}
	if owner.IsZero() {
		return dino.Address{}, reverts.Wrapf(reverts.ErrNonexistentToken, "token %v", id)
	}
	return owner, nil
}

func (d *DinoToken) BalanceOf(owner dino.Address) (uint64, error) {
	return d.balances.Get(owner)
}

// Approve lets to move id. Callable by the holder or one of its operators.
func (d *DinoToken) Approve(env *xenv.Environment, to dino.Address, id dino.TokenID) error {
	owner, err := d.OwnerOf(id)
	if err != nil {
		return err
	}
	caller := env.Caller()
	if caller != owner {
		ok, err := d.IsApprovedForAll(owner, caller)
		if err != nil {
			return err
		}
		if !ok {
			return reverts.Wrapf(reverts.ErrNotOwnerNorApproved, "approve token %v", id)
		}
	}
	if to.IsZero() {
		d.tokenApprovals.Delete(id)
		return nil
	}
	return d.tokenApprovals.Set(id, to)
}

func (d *DinoToken) GetApproved(id dino.TokenID) (dino.Address, error) {
	if _, err := d.OwnerOf(id); err != nil {
		return dino.Address{}, err
	}
	return d.tokenApprovals.Get(id)
}

// SetApprovalForAll lets operator move every token of the caller.
func (d *DinoToken) SetApprovalForAll(env *xenv.Environment, operator dino.Address, approved bool) error {
	if operator.IsZero() || operator == env.Caller() {
		return errors.Wrap(reverts.ErrInvalidConfig, "invalid operator")
	}
	key := operatorKey{env.Caller(), operator}
	if !approved {
		d.operatorApprovals.Delete(key)
		return nil
	}
	return d.operatorApprovals.Set(key, true)
}

func (d *DinoToken) IsApprovedForAll(owner, operator dino.Address) (bool, error) {
	return d.operatorApprovals.Get(operatorKey{owner, operator})
}

// TransferFrom moves id from from to to. The caller must hold, be approved for, or operate id.
func (d *DinoToken) TransferFrom(env *xenv.Environment, from, to dino.Address, id dino.TokenID) error {
	owner, err := d.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner != from {
		return reverts.Wrapf(reverts.ErrNotOwnerNorApproved, "token %v is not held by %v", id, from)
	}
	if to.IsZero() {
		return reverts.ErrZeroAddress
	}
	if err := d.requireSpender(env.Caller(), owner, id); err != nil {
		return err
	}

	d.tokenApprovals.Delete(id)
	if err := d.subBalance(from, 1); err != nil {
		return err
	}
	if err := d.addBalance(to, 1); err != nil {
		return err
	}
	return d.owners.Set(id, to)
}

// SafeTransferFrom transfers id and notifies to when it is a receiver contract.
func (d *DinoToken) SafeTransferFrom(env *xenv.Environment, from, to dino.Address, id dino.TokenID) error {
	if err := d.TransferFrom(env, from, to, id); err != nil {
		return err
	}
	if d.receivers == nil {
		return nil
	}
	receiver, ok := d.receivers.Receiver(to)
	if !ok {
		return nil
	}
	inner, err := env.WithCaller(d.addr)
	if err != nil {
		return err
	}
	return receiver.OnDinoReceived(inner, env.Caller(), from, id)
}

func (d *DinoToken) requireSpender(spender, owner dino.Address, id dino.TokenID) error {
	if spender == owner {
		return nil
	}
	approved, err := d.tokenApprovals.Get(id)
	if err != nil {
		return err
	}
	if approved == spender {
		return nil
	}
	ok, err := d.IsApprovedForAll(owner, spender)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.Wrapf(reverts.ErrNotOwnerNorApproved, "%v moving token %v", spender, id)
	}
	return nil
}

func (d *DinoToken) addBalance(addr dino.Address, n uint64) error {
	bal, err := d.balances.Get(addr)
	if err != nil {
		return err
	}
	return d.balances.Set(addr, bal+n)
}

func (d *DinoToken) subBalance(addr dino.Address, n uint64) error {
	bal, err := d.balances.Get(addr)
	if err != nil {
		return err
	}
	if bal < n {
		return errors.Errorf("balance underflow for %v", addr)
	}
	if bal == n {
		d.balances.Delete(addr)
		return nil
	}
	return d.balances.Set(addr, bal-n)
}
