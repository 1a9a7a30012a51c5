package state_digest

import (
	"encoding"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

var ErrCheckpointUnsupported = errors.New("digest algorithm state cannot be exported")

// Checkpoint is an exported digest context, taken between segments so that a
// computation can continue in another process.
type Checkpoint struct {
	Algorithm Algorithm     `json:"algorithm"`
	State     hexutil.Bytes `json:"state"`
	Started   bool          `json:"started"`
	LastKey   hexutil.Bytes `json:"lastKey"`
	Entries   uint64        `json:"entries"`
	Bytes     uint64        `json:"bytes"`
}

func (self *Context) Checkpoint() (*Checkpoint, error) {
	if self.finalized {
		return nil, errors.New("digest context already finalized")
	}
	m, ok := self.h.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrCheckpointUnsupported, self.alg)
	}
	state, err := m.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckpointUnsupported, err)
	}
	return &Checkpoint{
		Algorithm: self.alg,
		State:     state,
		Started:   self.started,
		LastKey:   self.LastKey(),
		Entries:   self.entries,
		Bytes:     self.bytes,
	}, nil
}

// ResumeContext rebuilds the context a checkpoint was taken from.
func ResumeContext(cp *Checkpoint) (*Context, error) {
	ret, err := NewContext(cp.Algorithm)
	if err != nil {
		return nil, err
	}
	u, ok := ret.h.(encoding.BinaryUnmarshaler)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrCheckpointUnsupported, cp.Algorithm)
	}
	if err := u.UnmarshalBinary(cp.State); err != nil {
		return nil, fmt.Errorf("corrupt %v checkpoint: %w", cp.Algorithm, err)
	}
	ret.started, ret.entries, ret.bytes = cp.Started, cp.Entries, cp.Bytes
	if cp.Started {
		ret.last_key = append([]byte{}, cp.LastKey...)
	}
	return ret, nil
}
