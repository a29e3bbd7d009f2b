// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts holds the business failures of the builtin contracts.
// A revert aborts the whole operation; storage failures are not reverts.
package reverts

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

var (
	ErrInvalidLockDuration      = New("invalid lock duration")
	ErrAlreadyStaked            = New("collateral already staked")
	ErrStillLocked              = New("deposit still locked")
	ErrCapacityExceeded         = New("staking capacity exceeded")
	ErrDuplicatePool            = New("pool already added")
	ErrInsufficientVaultBalance = New("insufficient vault balance")
	ErrUnauthorized             = New("unauthorized")
	ErrReentrantCall            = New("reentrant call")
	ErrInvalidConfig            = New("invalid config")
	ErrNotStaked                = New("collateral not staked")
	ErrPoolNotFound             = New("pool not found")
	ErrNoShares                 = New("no shares")
	ErrEmissionExceeded         = New("release exceeds emission")
	ErrInsufficientBalance      = New("insufficient balance")
	ErrInsufficientAllowance    = New("insufficient allowance")
	ErrNotOwnerNorApproved      = New("caller is not token owner nor approved")
	ErrNonexistentToken         = New("nonexistent token")
	ErrZeroAddress              = New("zero address")
)

// Wrapf annotates a revert with call details, keeping it matchable with errors.Is.
func Wrapf(revert *ErrRevert, format string, args ...any) error {
	return pkgerrors.Wrapf(revert, format, args...)
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}
