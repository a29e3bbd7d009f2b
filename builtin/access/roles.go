// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package access

import (
	"github.com/vechain/dinostake/builtin/reverts"
	"github.com/vechain/dinostake/builtin/solidity"
	"github.com/vechain/dinostake/dino"
)

// Role identifiers, keccak256 of the role name. The zero role administers itself.
var (
	DefaultAdminRole      = dino.Bytes32{}
	GovRole               = dino.Keccak256([]byte("GOV_ROLE"))
	RewardDistributorRole = dino.Keccak256([]byte("REWARD_DISTRIBUTOR_ROLE"))
)

var (
	slotMembers = solidity.Slot("role-members")
	slotAdmins  = solidity.Slot("role-admins")
)

type memberKey struct {
	role    dino.Bytes32
	account dino.Address
}

func (k memberKey) Bytes() []byte {
	return append(k.role.Bytes(), k.account.Bytes()...)
}

// Roles is a set of named permission sets. Each role has an admin role whose
// members may grant and revoke it.
type Roles struct {
	members *solidity.Mapping[memberKey, bool]
	admins  *solidity.Mapping[dino.Bytes32, dino.Bytes32]
}

func NewRoles(sctx *solidity.Context) *Roles {
	return &Roles{
		members: solidity.NewMapping[memberKey, bool](sctx, slotMembers),
		admins:  solidity.NewMapping[dino.Bytes32, dino.Bytes32](sctx, slotAdmins),
	}
}

func (r *Roles) HasRole(role dino.Bytes32, account dino.Address) (bool, error) {
	return r.members.Get(memberKey{role, account})
}

func (r *Roles) GetRoleAdmin(role dino.Bytes32) (dino.Bytes32, error) {
	return r.admins.Get(role)
}

// Require fails with ErrUnauthorized unless account holds role.
func (r *Roles) Require(role dino.Bytes32, account dino.Address) error {
	ok, err := r.HasRole(role, account)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.Wrapf(reverts.ErrUnauthorized, "%v is missing role %v", account, role.AbbrevString())
	}
	return nil
}

// SetRoleAdmin changes the admin role of role. Used at setup only.
func (r *Roles) SetRoleAdmin(role, adminRole dino.Bytes32) error {
	if adminRole.IsZero() {
		r.admins.Delete(role)
		return nil
	}
	return r.admins.Set(role, adminRole)
}

// Setup grants role without an admin check. Used at setup only.
func (r *Roles) Setup(role dino.Bytes32, account dino.Address) error {
	return r.grant(role, account)
}

func (r *Roles) GrantRole(caller dino.Address, role dino.Bytes32, account dino.Address) error {
	if err := r.requireAdmin(caller, role); err != nil {
		return err
	}
	return r.grant(role, account)
}

func (r *Roles) RevokeRole(caller dino.Address, role dino.Bytes32, account dino.Address) error {
	if err := r.requireAdmin(caller, role); err != nil {
		return err
	}
	r.members.Delete(memberKey{role, account})
	return nil
}

// RenounceRole lets caller drop a role it holds.
func (r *Roles) RenounceRole(caller dino.Address, role dino.Bytes32) error {
	r.members.Delete(memberKey{role, caller})
	return nil
}

func (r *Roles) requireAdmin(caller dino.Address, role dino.Bytes32) error {
	admin, err := r.admins.Get(role)
	if err != nil {
		return err
	}
	return r.Require(admin, caller)
}

func (r *Roles) grant(role dino.Bytes32, account dino.Address) error {
	if account.IsZero() {
		return reverts.ErrZeroAddress
	}
	return r.members.Set(memberKey{role, account}, true)
}
