// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dinostake/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	diskdb, err := New(filepath.Join(t.TempDir(), "lvldb"), Options{CacheSize: 16, OpenFilesCacheCapacity: 16})
	require.NoError(t, err)
	defer diskdb.Close()

	memdb, err := NewMem()
	require.NoError(t, err)
	defer memdb.Close()

	for _, ldb := range []*LevelDB{diskdb, memdb} {
		assert.NoError(t, ldb.Put(key, value))

		ret, err := ldb.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, ret)

		has, err := ldb.Has(key)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = ldb.Has(inValidKey)
		assert.NoError(t, err)
		assert.False(t, has)

		assert.NoError(t, ldb.Delete(key))
		_, err = ldb.Get(key)
		assert.True(t, ldb.IsNotFound(err))
	}
}

func TestLevelDBBatchAndIterate(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	batch := db.NewBatch()
	assert.NoError(t, batch.Put([]byte("a1"), []byte("x")))
	assert.NoError(t, batch.Put([]byte("a2"), []byte("y")))
	assert.NoError(t, batch.Put([]byte("b1"), []byte("z")))
	assert.NoError(t, batch.Delete([]byte("a2")))
	assert.Equal(t, 4, batch.Len())

	// nothing visible before write
	has, err := db.Has([]byte("a1"))
	assert.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, batch.Write())

	iter := db.Iterate(kv.PrefixRange([]byte("a")))
	defer iter.Release()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	assert.NoError(t, iter.Error())
	assert.Equal(t, []string{"a1"}, keys)
}
