package goroutines

import (
	"sync"

	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util/asserts"
)

// GoroutineGroup runs submitted tasks on a fixed number of goroutines.
// Tasks submitted after JoinAndClose panic.
type GoroutineGroup struct {
	tasks   chan func()
	running sync.WaitGroup
}

func (self *GoroutineGroup) Init(goroutine_count uint32, buffer_size uint32) *GoroutineGroup {
	asserts.Holds(goroutine_count > 0, "goroutine group needs at least one goroutine")
	self.tasks = make(chan func(), buffer_size)
	self.running.Add(int(goroutine_count))
	for i := uint32(0); i < goroutine_count; i++ {
		go func() {
			defer self.running.Done()
			for task := range self.tasks {
				task()
			}
		}()
	}
	return self
}

func (self *GoroutineGroup) InitSingle(buffer_size uint32) *GoroutineGroup {
	return self.Init(1, buffer_size)
}

func (self *GoroutineGroup) Submit(task func()) {
	self.tasks <- task
}

// Join blocks until every task submitted before the call has been picked up
// and the goroutine running the marker task has reached it.
func (self *GoroutineGroup) Join() {
	var m sync.Mutex
	m.Lock()
	self.Submit(m.Unlock)
	m.Lock()
}

func (self *GoroutineGroup) JoinAndClose() {
	close(self.tasks)
	self.running.Wait()
	asserts.Holds(len(self.tasks) == 0)
}
