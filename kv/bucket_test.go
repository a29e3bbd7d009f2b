// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mem map[string]string

var errNotFound = errors.New("not found")

func (m mem) Get(k []byte) ([]byte, error) {
	if v, ok := m[string(k)]; ok {
		return []byte(v), nil
	}
	return nil, errNotFound
}

func (m mem) Has(k []byte) (bool, error) {
	_, ok := m[string(k)]
	return ok, nil
}

func (m mem) Put(k, v []byte) error {
	m[string(k)] = string(v)
	return nil
}

func (m mem) Delete(k []byte) error {
	delete(m, string(k))
	return nil
}

func (m mem) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

func TestBucket(t *testing.T) {
	m := mem{}
	b := Bucket("s")

	putter := b.NewPutter(m)
	getter := b.NewGetter(m)

	assert.NoError(t, putter.Put([]byte("k1"), []byte("v1")))
	assert.Equal(t, "v1", m["sk1"])

	v, err := getter.Get([]byte("k1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	has, err := getter.Has([]byte("k1"))
	assert.NoError(t, err)
	assert.True(t, has)

	assert.NoError(t, putter.Delete([]byte("k1")))
	_, err = getter.Get([]byte("k1"))
	assert.True(t, getter.IsNotFound(err))
}

func TestPrefixRange(t *testing.T) {
	tests := []struct {
		prefix []byte
		limit  []byte
	}{
		{[]byte("s"), []byte("t")},
		{[]byte{0x01, 0xff}, []byte{0x02}},
		{[]byte{0xff, 0xff}, nil},
	}
	for _, tt := range tests {
		r := PrefixRange(tt.prefix)
		assert.Equal(t, tt.prefix, r.Start)
		assert.Equal(t, tt.limit, r.Limit)
	}
}
