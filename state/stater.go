// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/dinostake/dino"
	"github.com/vechain/dinostake/kv"
)

const storageBucket = kv.Bucket("s")

// Stater is the state creator. It owns the committed slot cache shared by all states it creates.
type Stater struct {
	db    kv.Store
	cache *lru.Cache
}

// NewStater create a new stater over the given store.
func NewStater(db kv.Store, cacheSize int) *Stater {
	if cacheSize < 16 {
		cacheSize = 16
	}
	cache, _ := lru.New(cacheSize)
	return &Stater{db: db, cache: cache}
}

// NewState create a new state object on top of committed storage.
func (s *Stater) NewState() *State {
	return newState(s)
}

func slotKey(key storageKey) []byte {
	k := make([]byte, 0, len(key.addr)+len(key.key))
	k = append(k, key.addr[:]...)
	return append(k, key.key[:]...)
}

func (s *Stater) load(key storageKey) ([]byte, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.([]byte), nil
	}
	v, err := storageBucket.NewGetter(s.db).Get(slotKey(key))
	if err != nil {
		if !s.db.IsNotFound(err) {
			return nil, err
		}
		v = nil
	}
	s.cache.Add(key, v)
	return v, nil
}

// SlotCount returns how many non-empty storage slots addr has committed.
func (s *Stater) SlotCount(addr dino.Address) (int, error) {
	it := s.db.Iterate(kv.PrefixRange(storageBucket.Key(addr.Bytes())))
	defer it.Release()

	n := 0
	for it.Next() {
		n++
	}
	return n, it.Error()
}
