// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb is the leveldb backed kv.Store the ledger state is committed to.
package lvldb

import (
	"time"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/vechain/dinostake/kv"
	"github.com/vechain/dinostake/metrics"
)

var (
	_ kv.Store = (*LevelDB)(nil)

	metricBatchWrite = metrics.LazyLoadHistogram("lvldb_batch_write_duration_ms", metrics.BucketOperationMillis)
	metricBatchOps   = metrics.LazyLoadCounter("lvldb_batch_ops_count")
)

// Options tunes a persistent database. Sizes are in MiB.
type Options struct {
	CacheSize              int
	OpenFilesCacheCapacity int
	// NoSync skips fsync on batch writes. Committed operations may then be
	// lost on a crash, which is acceptable for throwaway databases only.
	NoSync bool
}

// LevelDB wraps a leveldb instance.
type LevelDB struct {
	db        *leveldb.DB
	batchSync bool
}

// New opens the database at path, creating it when missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "new persistent level db")
	}
	return open(stg, opts)
}

// NewMem creates a database in memory.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{NoSync: true})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	cacheSize := max(opts.CacheSize, 16)
	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: max(opts.OpenFilesCacheCapacity, 16),
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		// two write buffers are kept in memory
		WriteBuffer: cacheSize / 4 * opt.MiB,
		Filter:      filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{db: db, batchSync: !opts.NoSync}, nil
}

func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Get fails with an error satisfying IsNotFound when key is absent.
func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	return ldb.db.Get(key, nil)
}

func (ldb *LevelDB) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, nil)
}

func (ldb *LevelDB) Put(key, value []byte) error {
	return ldb.db.Put(key, value, nil)
}

func (ldb *LevelDB) Delete(key []byte) error {
	return ldb.db.Delete(key, nil)
}

// Close closes the database. Every later call fails.
func (ldb *LevelDB) Close() error {
	return ldb.db.Close()
}

// NewBatch returns a batch that is applied atomically by Write.
func (ldb *LevelDB) NewBatch() kv.Batch {
	return &batch{ldb: ldb, b: new(leveldb.Batch)}
}

// Iterate walks the keys of r in ascending order.
func (ldb *LevelDB) Iterate(r kv.Range) kv.Iterator {
	return ldb.db.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, nil)
}

type batch struct {
	ldb *LevelDB
	b   *leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.b.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.b.Delete(key)
	return nil
}

func (b *batch) Len() int { return b.b.Len() }

func (b *batch) Write() error {
	start := time.Now()
	if err := b.ldb.db.Write(b.b, &opt.WriteOptions{Sync: b.ldb.batchSync}); err != nil {
		return errors.Wrap(err, "write batch")
	}
	metricBatchWrite().Observe(time.Since(start).Milliseconds())
	metricBatchOps().Add(int64(b.b.Len()))
	return nil
}
