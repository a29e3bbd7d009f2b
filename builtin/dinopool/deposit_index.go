// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dinopool

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/dinostake/builtin/solidity"
	"github.com/vechain/dinostake/dino"
)

var (
	slotIndexItems    = solidity.Slot("deposit-index-items")
	slotIndexCount    = solidity.Slot("deposit-index-count")
	slotIndexPosition = solidity.Slot("deposit-index-position")
)

type itemKey struct {
	owner dino.Address
	pos   uint64
}

func (k itemKey) Bytes() []byte {
	return binary.BigEndian.AppendUint64(k.owner.Bytes(), k.pos)
}

// depositIndex lists the active deposits of each owner. Removal swaps the last
// item into the freed position, so order is not preserved.
type depositIndex struct {
	items    *solidity.Mapping[itemKey, dino.TokenID]
	count    *solidity.Mapping[dino.Address, uint64]
	position *solidity.Mapping[dino.TokenID, uint64]
}

func newDepositIndex(sctx *solidity.Context) *depositIndex {
	return &depositIndex{
		items:    solidity.NewMapping[itemKey, dino.TokenID](sctx, slotIndexItems),
		count:    solidity.NewMapping[dino.Address, uint64](sctx, slotIndexCount),
		position: solidity.NewMapping[dino.TokenID, uint64](sctx, slotIndexPosition),
	}
}

func (x *depositIndex) Len(owner dino.Address) (uint64, error) {
	return x.count.Get(owner)
}

func (x *depositIndex) Add(owner dino.Address, id dino.TokenID) error {
	n, err := x.count.Get(owner)
	if err != nil {
		return err
	}
	if err := x.items.Set(itemKey{owner, n}, id); err != nil {
		return err
	}
	if err := x.position.Set(id, n); err != nil {
		return err
	}
	return x.count.Set(owner, n+1)
}

func (x *depositIndex) Remove(owner dino.Address, id dino.TokenID) error {
	n, err := x.count.Get(owner)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.Errorf("no deposits indexed for %v", owner)
	}
	pos, err := x.position.Get(id)
	if err != nil {
		return err
	}
	last := n - 1
	if pos != last {
		lastID, err := x.items.Get(itemKey{owner, last})
		if err != nil {
			return err
		}
		if err := x.items.Set(itemKey{owner, pos}, lastID); err != nil {
			return err
		}
		if err := x.position.Set(lastID, pos); err != nil {
			return err
		}
	}
	x.items.Delete(itemKey{owner, last})
	x.position.Delete(id)
	if last == 0 {
		x.count.Delete(owner)
		return nil
	}
	return x.count.Set(owner, last)
}

func (x *depositIndex) List(owner dino.Address) ([]dino.TokenID, error) {
	n, err := x.count.Get(owner)
	if err != nil {
		return nil, err
	}
	ids := make([]dino.TokenID, 0, n)
	for i := uint64(0); i < n; i++ {
		id, err := x.items.Get(itemKey{owner, i})
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
