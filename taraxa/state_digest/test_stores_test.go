package state_digest

import (
	"errors"
	"sync/atomic"

	"github.com/Taraxa-project/taraxa-state-digest/ethdb"
)

// counting_store records how many views are opened and still alive.
type counting_store struct {
	ethdb.Viewer
	opened   int64
	released int64
}

func (self *counting_store) NewView(lower, upper []byte, consistent bool) (ethdb.View, error) {
	v, err := self.Viewer.NewView(lower, upper, consistent)
	if err != nil {
		return nil, err
	}
	atomic.AddInt64(&self.opened, 1)
	return &counted_view{View: v, store: self}, nil
}

func (self *counting_store) alive() int64 {
	return atomic.LoadInt64(&self.opened) - atomic.LoadInt64(&self.released)
}

type counted_view struct {
	ethdb.View
	store *counting_store
	done  bool
}

func (self *counted_view) Release() {
	if !self.done {
		self.done = true
		atomic.AddInt64(&self.store.released, 1)
	}
	self.View.Release()
}

var errDiskGone = errors.New("disk gone")

// failing_store fails the view whose lower bound equals fail_at, either on
// open or after yielding its entries.
type failing_store struct {
	*counting_store
	fail_at string
	on_open bool
}

func (self *failing_store) NewView(lower, upper []byte, consistent bool) (ethdb.View, error) {
	if string(lower) == self.fail_at && lower != nil && self.on_open {
		return nil, errDiskGone
	}
	v, err := self.counting_store.NewView(lower, upper, consistent)
	if err != nil || string(lower) != self.fail_at || lower == nil {
		return v, err
	}
	return &erroring_view{View: v}, nil
}

type erroring_view struct {
	ethdb.View
}

func (self *erroring_view) Error() error {
	return errDiskGone
}

// scripted_store ignores bounds and yields a fixed list of keys, which lets
// tests hand the hasher entries a real store never would.
type scripted_store struct {
	keys []string
}

func (self *scripted_store) NewView(lower, upper []byte, consistent bool) (ethdb.View, error) {
	return &scripted_view{keys: self.keys, pos: -1}, nil
}

type scripted_view struct {
	keys []string
	pos  int
}

func (self *scripted_view) Next() bool {
	self.pos++
	return self.pos < len(self.keys)
}

func (self *scripted_view) Key() []byte   { return []byte(self.keys[self.pos]) }
func (self *scripted_view) Value() []byte { return []byte("v") }
func (self *scripted_view) Error() error  { return nil }
func (self *scripted_view) Release()      {}
