// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package ethdb

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util"
)

/*
 * This is a test memory database. Do not use for any production it does not get persisted
 */
type MemDatabase struct {
	db   *treemap.Map
	lock sync.RWMutex
}

func NewMemDatabase() *MemDatabase {
	return &MemDatabase{
		db: treemap.NewWithStringComparator(),
	}
}

func (db *MemDatabase) Put(key []byte, value []byte) error {
	defer util.LockUnlock(&db.lock)()

	db.db.Put(string(key), common.CopyBytes(value))
	return nil
}

func (db *MemDatabase) Has(key []byte) (bool, error) {
	defer util.LockUnlock(db.lock.RLocker())()

	_, ok := db.db.Get(string(key))
	return ok, nil
}

func (db *MemDatabase) Get(key []byte) ([]byte, error) {
	defer util.LockUnlock(db.lock.RLocker())()

	if entry, ok := db.db.Get(string(key)); ok {
		return common.CopyBytes(entry.([]byte)), nil
	}
	return nil, ErrNotFound
}

// Keys returns every key in ascending order.
func (db *MemDatabase) Keys() [][]byte {
	defer util.LockUnlock(db.lock.RLocker())()

	keys := make([][]byte, 0, db.db.Size())
	for _, key := range db.db.Keys() {
		keys = append(keys, []byte(key.(string)))
	}
	return keys
}

func (db *MemDatabase) Delete(key []byte) error {
	defer util.LockUnlock(&db.lock)()

	db.db.Remove(string(key))
	return nil
}

func (db *MemDatabase) Close() error { return nil }

// NewView copies the requested range under the read lock, so the view is a
// point-in-time one whether or not consistent is set.
func (db *MemDatabase) NewView(lower, upper []byte, consistent bool) (View, error) {
	defer util.LockUnlock(db.lock.RLocker())()

	return db.copy_range(lower, upper), nil
}

func (db *MemDatabase) NewSnapshot() (Snapshot, error) {
	defer util.LockUnlock(db.lock.RLocker())()

	return &memSnapshot{entries: db.copy_range(nil, nil).entries}, nil
}

func (db *MemDatabase) copy_range(lower, upper []byte) *memView {
	ret := &memView{pos: -1}
	itr := db.db.Iterator()
	for itr.Next() {
		k := itr.Key().(string)
		if lower != nil && k < string(lower) {
			continue
		}
		if upper != nil && k >= string(upper) {
			break
		}
		ret.entries = append(ret.entries, kv{k: []byte(k), v: itr.Value().([]byte)})
	}
	return ret
}

type memView struct {
	entries []kv
	pos     int
}

func (v *memView) Next() bool {
	if v.pos >= len(v.entries) {
		return false
	}
	v.pos++
	return v.pos < len(v.entries)
}

func (v *memView) Key() []byte {
	if v.pos < 0 || v.pos >= len(v.entries) {
		return nil
	}
	return v.entries[v.pos].k
}

func (v *memView) Value() []byte {
	if v.pos < 0 || v.pos >= len(v.entries) {
		return nil
	}
	return v.entries[v.pos].v
}

func (v *memView) Error() error { return nil }

func (v *memView) Release() {
	v.entries, v.pos = nil, 0
}

// memSnapshot holds a sorted copy of the whole store. Values are never
// mutated in place by the database, so sharing the slices is safe.
type memSnapshot struct {
	entries []kv
}

func (s *memSnapshot) NewView(lower, upper []byte) (View, error) {
	ret := &memView{pos: -1}
	for _, e := range s.entries {
		if lower != nil && string(e.k) < string(lower) {
			continue
		}
		if upper != nil && string(e.k) >= string(upper) {
			break
		}
		ret.entries = append(ret.entries, e)
	}
	return ret, nil
}

func (s *memSnapshot) Release() {
	s.entries = nil
}

type mapWriter struct {
	db *MemDatabase
}

func (w *mapWriter) Put(key []byte, value []byte) error {
	w.db.db.Put(string(key), common.CopyBytes(value))
	return nil
}

func (w *mapWriter) Delete(key []byte) error {
	w.db.db.Remove(string(key))
	return nil
}

func (db *MemDatabase) NewBatch() Batch {
	writer := &mapWriter{db: db}
	return &MemBatch{
		writer:     writer,
		commitLock: &db.lock,
	}
}

func (db *MemDatabase) Len() int {
	defer util.LockUnlock(db.lock.RLocker())()

	return db.db.Size()
}

type kv struct {
	k, v []byte
	del  bool
}

type putterAndDeleter interface {
	Putter
	Deleter
}

type MemBatch struct {
	writer     putterAndDeleter
	commitLock *sync.RWMutex
	writes     []kv
	size       int
}

func (b *MemBatch) Put(key, value []byte) error {
	b.writes = append(b.writes, kv{common.CopyBytes(key), common.CopyBytes(value), false})
	b.size += len(value)
	return nil
}

func (b *MemBatch) Delete(key []byte) error {
	b.writes = append(b.writes, kv{common.CopyBytes(key), nil, true})
	b.size += 1
	return nil
}

func (b *MemBatch) Write() (err error) {
	if b.commitLock != nil {
		defer util.LockUnlock(b.commitLock)()
	}
	for _, kv := range b.writes {
		if kv.del {
			err = b.writer.Delete(kv.k)
			if err != nil {
				return
			}
			continue
		}
		err = b.writer.Put(kv.k, kv.v)
		if err != nil {
			return
		}
	}
	return nil
}

func (b *MemBatch) ValueSize() int {
	return b.size
}

func (b *MemBatch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}
