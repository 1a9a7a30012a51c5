package state_digest

import (
	"errors"
	"fmt"
)

var (
	ErrStorage            = errors.New("storage fault")
	ErrConfiguration      = errors.New("configuration fault")
	ErrConcurrentMutation = errors.New("concurrent mutation fault")
)

// StorageFault reports a failed read of a view, or a view that could not be
// opened. Unwrap gives the store's own error.
type StorageFault struct {
	Segment Segment
	Err     error
}

func (self *StorageFault) Error() string {
	return fmt.Sprintf("storage fault in segment %v: %v", self.Segment, self.Err)
}

func (self *StorageFault) Unwrap() error {
	return self.Err
}

func (self *StorageFault) Is(target error) bool {
	return target == ErrStorage
}

// ConfigurationFault is raised before any store access. MarkerIndex points at
// the offending marker, or is -1 when no single marker is to blame.
type ConfigurationFault struct {
	Step        string
	MarkerIndex int
	Reason      string
}

func (self *ConfigurationFault) Error() string {
	if self.MarkerIndex >= 0 {
		return fmt.Sprintf("configuration fault at %s, marker %d: %s", self.Step, self.MarkerIndex, self.Reason)
	}
	return fmt.Sprintf("configuration fault at %s: %s", self.Step, self.Reason)
}

func (self *ConfigurationFault) Is(target error) bool {
	return target == ErrConfiguration
}

// ConcurrentMutationFault means a view yielded a key out of order or out of
// its segment: the store changed under a computation that assumed one state.
type ConcurrentMutationFault struct {
	Segment  Segment
	Key      []byte
	Previous []byte
	Reason   string
}

func (self *ConcurrentMutationFault) Error() string {
	return fmt.Sprintf("concurrent mutation in segment %v: %s (key %q, previous %q)",
		self.Segment, self.Reason, self.Key, self.Previous)
}

func (self *ConcurrentMutationFault) Is(target error) bool {
	return target == ErrConcurrentMutation
}
