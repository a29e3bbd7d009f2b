// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package linkedlist

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/dinostake/builtin/solidity"
	"github.com/vechain/dinostake/dino"
)

// LinkedList is an insertion ordered set of addresses kept in contract storage.
type LinkedList struct {
	head  *solidity.Address
	tail  *solidity.Address
	count *solidity.Uint256
	next  *solidity.Mapping[dino.Address, dino.Address]
	prev  *solidity.Mapping[dino.Address, dino.Address]
}

// New creates a list whose slots are derived from name.
func New(sctx *solidity.Context, name string) *LinkedList {
	return &LinkedList{
		head:  solidity.NewAddress(sctx, solidity.Slot(name+"-head")),
		tail:  solidity.NewAddress(sctx, solidity.Slot(name+"-tail")),
		count: solidity.NewUint256(sctx, solidity.Slot(name+"-count")),
		next:  solidity.NewMapping[dino.Address, dino.Address](sctx, solidity.Slot(name+"-next")),
		prev:  solidity.NewMapping[dino.Address, dino.Address](sctx, solidity.Slot(name+"-prev")),
	}
}

// Add appends an address to the end of the list. Adding a member or the zero address is an error.
func (l *LinkedList) Add(address dino.Address) error {
	if address.IsZero() {
		return errors.New("zero address")
	}
	exists, err := l.Contains(address)
	if err != nil {
		return err
	}
	if exists {
		return errors.Errorf("%v already listed", address)
	}

	oldTail, err := l.tail.Get()
	if err != nil {
		return err
	}

	if oldTail.IsZero() {
		// the list is currently empty, set this entry to head & tail
		l.head.Set(address)
		l.tail.Set(address)
		return l.count.Add(big.NewInt(1))
	}

	if err := l.next.Set(oldTail, address); err != nil {
		return err
	}
	if err := l.prev.Set(address, oldTail); err != nil {
		return err
	}
	l.tail.Set(address)

	return l.count.Add(big.NewInt(1))
}

// Remove unlinks an address, reconnecting its neighbours. Removing a non member is a no-op.
func (l *LinkedList) Remove(address dino.Address) error {
	exists, err := l.Contains(address)
	if err != nil || !exists {
		return err
	}

	prev, err := l.prev.Get(address)
	if err != nil {
		return err
	}
	next, err := l.next.Get(address)
	if err != nil {
		return err
	}

	if !prev.IsZero() {
		if err := l.next.Set(prev, next); err != nil {
			return err
		}
	} else {
		l.head.Set(next)
	}

	if next.IsZero() {
		l.tail.Set(prev)
	} else if prev.IsZero() {
		// next becomes the head
		l.prev.Delete(next)
	} else {
		if err := l.prev.Set(next, prev); err != nil {
			return err
		}
	}

	l.next.Delete(address)
	l.prev.Delete(address)

	return l.count.Sub(big.NewInt(1))
}

// Contains reports whether address is listed.
func (l *LinkedList) Contains(address dino.Address) (bool, error) {
	if address.IsZero() {
		return false, nil
	}
	head, err := l.head.Get()
	if err != nil {
		return false, err
	}
	if head == address {
		return true, nil
	}
	return l.prev.Exists(address)
}

// Len returns the number of listed addresses.
func (l *LinkedList) Len() (uint64, error) {
	n, err := l.count.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// Head returns the oldest address, zero when empty.
func (l *LinkedList) Head() (dino.Address, error) {
	return l.head.Get()
}

// Iter traverses the list in insertion order, stopping at the first callback error.
func (l *LinkedList) Iter(callback func(dino.Address) error) error {
	ptr, err := l.head.Get()
	if err != nil {
		return err
	}

	for !ptr.IsZero() {
		if err := callback(ptr); err != nil {
			return err
		}
		if ptr, err = l.next.Get(ptr); err != nil {
			return err
		}
	}
	return nil
}

// Members returns all addresses in insertion order.
func (l *LinkedList) Members() ([]dino.Address, error) {
	var members []dino.Address
	err := l.Iter(func(addr dino.Address) error {
		members = append(members, addr)
		return nil
	})
	return members, err
}
