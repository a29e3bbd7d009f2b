// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// Stage abstracts changes on the storage, which is ready to be committed.
type Stage struct {
	stater  *Stater
	changes map[storageKey][]byte
}

// Len returns the count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changed slots into the store atomically.
func (s *Stage) Commit() error {
	if len(s.changes) == 0 {
		return nil
	}
	batch := s.stater.db.NewBatch()
	putter := storageBucket.NewPutter(batch)
	for key, value := range s.changes {
		if len(value) == 0 {
			if err := putter.Delete(slotKey(key)); err != nil {
				return &Error{err}
			}
			continue
		}
		if err := putter.Put(slotKey(key), value); err != nil {
			return &Error{err}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	for key, value := range s.changes {
		s.stater.cache.Add(key, value)
	}
	return nil
}
