package leveldb

import (
	"github.com/Taraxa-project/taraxa-state-digest/ethdb"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"
)

func key_range(lower, upper []byte) *util.Range {
	if lower == nil && upper == nil {
		return nil
	}
	return &util.Range{Start: lower, Limit: upper}
}

// NewView over a consistent range holds its own snapshot, released together
// with the iterator.
func (self *Database) NewView(lower, upper []byte, consistent bool) (ethdb.View, error) {
	if !consistent {
		return &view{itr: self.db.NewIterator(key_range(lower, upper), nil)}, nil
	}
	snap, err := self.db.GetSnapshot()
	if err != nil {
		return nil, err
	}
	return &view{itr: snap.NewIterator(key_range(lower, upper), nil), snap: snap}, nil
}

func (self *Database) NewSnapshot() (ethdb.Snapshot, error) {
	snap, err := self.db.GetSnapshot()
	if err != nil {
		return nil, err
	}
	return &snapshot{snap}, nil
}

type snapshot struct {
	snap *leveldb.Snapshot
}

func (self *snapshot) NewView(lower, upper []byte) (ethdb.View, error) {
	return &view{itr: self.snap.NewIterator(key_range(lower, upper), nil)}, nil
}

func (self *snapshot) Release() {
	self.snap.Release()
}

type view struct {
	itr      iterator.Iterator
	snap     *leveldb.Snapshot
	released bool
}

func (self *view) Next() bool {
	return !self.released && self.itr.Next()
}

func (self *view) Key() []byte {
	return self.itr.Key()
}

func (self *view) Value() []byte {
	return self.itr.Value()
}

func (self *view) Error() error {
	return self.itr.Error()
}

func (self *view) Release() {
	if self.released {
		return
	}
	self.released = true
	self.itr.Release()
	if self.snap != nil {
		self.snap.Release()
	}
}
