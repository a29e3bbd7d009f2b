// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package access implements single owner and role based permissions over contract storage.
package access

import (
	"github.com/pkg/errors"

	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/builtin/solidity"
	"github.com/vechain/dinostake/dino"
)

var slotOwner = solidity.Slot("owner")

// Owner is the single administrative identity of a contract.
type Owner struct {
	owner *solidity.Address
}

func NewOwner(sctx *solidity.Context) *Owner {
	return &Owner{owner: solidity.NewAddress(sctx, slotOwner)}
}

func (o *Owner) Get() (dino.Address, error) {
	return o.owner.Get()
}

// Init sets the first owner. It fails if an owner is already set.
func (o *Owner) Init(owner dino.Address) error {
	if owner.IsZero() {
		return reverts.ErrZeroAddress
	}
	current, err := o.owner.Get()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return errors.Wrap(reverts.ErrInvalidConfig, "owner already initialized")
	}
	o.owner.Set(owner)
	return nil
}

// Require fails with ErrUnauthorized unless caller is the owner.
func (o *Owner) Require(caller dino.Address) error {
	owner, err := o.owner.Get()
	if err != nil {
		return err
	}
	if owner.IsZero() || owner != caller {
		return reverts.Wrapf(reverts.ErrUnauthorized, "%v is not the owner", caller)
	}
	return nil
}

// Transfer hands ownership over. Only the current owner may call it.
func (o *Owner) Transfer(caller, newOwner dino.Address) error {
	if err := o.Require(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.ErrZeroAddress
	}
	o.owner.Set(newOwner)
	return nil
}
