//go:build rocksdb

package rocksdb

import (
	"github.com/tecbot/gorocksdb"

	"github.com/Taraxa-project/taraxa-state-digest/ethdb"
)

func (self *Database) NewView(lower, upper []byte, consistent bool) (ethdb.View, error) {
	var snap *gorocksdb.Snapshot
	if consistent {
		snap = self.db.NewSnapshot()
	}
	return self.new_view(snap, true, lower, upper), nil
}

func (self *Database) NewSnapshot() (ethdb.Snapshot, error) {
	return &snapshot{db: self, snap: self.db.NewSnapshot()}, nil
}

type snapshot struct {
	db   *Database
	snap *gorocksdb.Snapshot
}

func (self *snapshot) NewView(lower, upper []byte) (ethdb.View, error) {
	return self.db.new_view(self.snap, false, lower, upper), nil
}

func (self *snapshot) Release() {
	if self.snap != nil {
		self.db.db.ReleaseSnapshot(self.snap)
		self.snap = nil
	}
}

func (self *Database) new_view(snap *gorocksdb.Snapshot, owns_snap bool, lower, upper []byte) *view {
	opts := gorocksdb.NewDefaultReadOptions()
	opts.SetFillCache(false)
	if snap != nil {
		opts.SetSnapshot(snap)
	}
	if upper != nil {
		opts.SetIterateUpperBound(upper)
	}
	ret := &view{db: self, opts: opts, itr: self.db.NewIterator(opts), lower: lower, upper: upper}
	if owns_snap {
		ret.snap = snap
	}
	return ret
}

type view struct {
	db       *Database
	opts     *gorocksdb.ReadOptions
	itr      *gorocksdb.Iterator
	snap     *gorocksdb.Snapshot
	lower    []byte
	upper    []byte // rocksdb keeps a pointer to it, not a copy
	started  bool
	released bool
	key, val []byte
}

func (self *view) Next() bool {
	if self.released {
		return false
	}
	if !self.started {
		self.started = true
		if self.lower == nil {
			self.itr.SeekToFirst()
		} else {
			self.itr.Seek(self.lower)
		}
	} else if self.itr.Valid() {
		self.itr.Next()
	}
	if !self.itr.Valid() {
		return false
	}
	self.key, self.val = copy_slice(self.itr.Key()), copy_slice(self.itr.Value())
	return true
}

func copy_slice(s *gorocksdb.Slice) []byte {
	defer s.Free()
	return append([]byte{}, s.Data()...)
}

func (self *view) Key() []byte {
	return self.key
}

func (self *view) Value() []byte {
	return self.val
}

func (self *view) Error() error {
	if self.released {
		return nil
	}
	return self.itr.Err()
}

func (self *view) Release() {
	if self.released {
		return
	}
	self.released = true
	self.itr.Close()
	self.opts.Destroy()
	if self.snap != nil {
		self.db.db.ReleaseSnapshot(self.snap)
	}
	self.key, self.val = nil, nil
}
