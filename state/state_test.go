// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/lvldb"
)

func newTestStater(t *testing.T) *Stater {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStater(db, 64)
}

func TestStateReadWrite(t *testing.T) {
	st := newTestStater(t).NewState()

	addr := dino.BytesToAddress([]byte("account1"))
	key := dino.BytesToBytes32([]byte("key"))

	v, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	value := dino.BytesToBytes32([]byte("value"))
	st.SetStorage(addr, key, value)
	v, err = st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, value, v)

	st.SetStorage(addr, key, dino.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestStateRevert(t *testing.T) {
	st := newTestStater(t).NewState()

	addr := dino.BytesToAddress([]byte("account1"))
	key := dino.BytesToBytes32([]byte("key"))

	values := []dino.Bytes32{
		dino.BytesToBytes32([]byte("v1")),
		dino.BytesToBytes32([]byte("v2")),
		dino.BytesToBytes32([]byte("v3")),
	}

	var revisions []int
	for _, v := range values {
		revisions = append(revisions, st.NewCheckpoint())
		st.SetStorage(addr, key, v)
	}

	for i := len(revisions) - 1; i >= 0; i-- {
		st.RevertTo(revisions[i])
		got, err := st.GetStorage(addr, key)
		require.NoError(t, err)
		if i == 0 {
			assert.True(t, got.IsZero())
		} else {
			assert.Equal(t, values[i-1], got)
		}
	}
}

func TestStageCommit(t *testing.T) {
	stater := newTestStater(t)
	addr := dino.BytesToAddress([]byte("account1"))
	key1 := dino.BytesToBytes32([]byte("k1"))
	key2 := dino.BytesToBytes32([]byte("k2"))

	st := stater.NewState()
	st.SetStorage(addr, key1, dino.BytesToBytes32([]byte("v1")))
	st.SetStorage(addr, key2, dino.BytesToBytes32([]byte("v2")))

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	require.NoError(t, stage.Commit())

	st = stater.NewState()
	v, err := st.GetStorage(addr, key1)
	require.NoError(t, err)
	assert.Equal(t, dino.BytesToBytes32([]byte("v1")), v)

	// deleting a committed slot
	st.SetStorage(addr, key1, dino.Bytes32{})
	require.NoError(t, st.Stage().Commit())

	v, err = stater.NewState().GetStorage(addr, key1)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	v, err = stater.NewState().GetStorage(addr, key2)
	require.NoError(t, err)
	assert.Equal(t, dino.BytesToBytes32([]byte("v2")), v)
}

func TestUncommittedStateIsIsolated(t *testing.T) {
	stater := newTestStater(t)
	addr := dino.BytesToAddress([]byte("account1"))
	key := dino.BytesToBytes32([]byte("k"))

	st := stater.NewState()
	st.SetStorage(addr, key, dino.BytesToBytes32([]byte("v")))

	v, err := stater.NewState().GetStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestEncodeDecodeStorage(t *testing.T) {
	st := newTestStater(t).NewState()
	addr := dino.BytesToAddress([]byte("account1"))
	key := dino.BytesToBytes32([]byte("list"))

	type pair struct {
		A *big.Int
		B uint64
	}
	in := pair{big.NewInt(42), 7}
	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&in)
	}))

	var out pair
	require.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &out)
	}))
	assert.Equal(t, in.A.Uint64(), out.A.Uint64())
	assert.Equal(t, in.B, out.B)

	// list values read back as the hash of the raw encoding
	raw, err := st.GetRawStorage(addr, key)
	require.NoError(t, err)
	h, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, dino.Blake2b(raw), h)
}

func TestSlotCount(t *testing.T) {
	stater := newTestStater(t)
	st := stater.NewState()

	a1 := dino.BytesToAddress([]byte("a1"))
	a2 := dino.BytesToAddress([]byte("a2"))
	one := dino.BytesToBytes32([]byte{1})
	st.SetStorage(a1, dino.BytesToBytes32([]byte("k1")), one)
	st.SetStorage(a1, dino.BytesToBytes32([]byte("k2")), one)
	st.SetStorage(a2, dino.BytesToBytes32([]byte("k1")), one)
	require.NoError(t, st.Stage().Commit())

	n, err := stater.SlotCount(a1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	st = stater.NewState()
	st.SetStorage(a1, dino.BytesToBytes32([]byte("k2")), dino.Bytes32{})
	require.NoError(t, st.Stage().Commit())

	n, err = stater.SlotCount(a1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = stater.SlotCount(dino.BytesToAddress([]byte("a3")))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
