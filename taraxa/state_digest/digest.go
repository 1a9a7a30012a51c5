// Package state_digest computes a deterministic digest of an ordered key-value
// store, in one pass or segment by segment with an identical result.
package state_digest

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"

	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util/asserts"
)

// Digest is the 256-bit summary of a store. Hex renders it 0x-prefixed.
type Digest = common.Hash

const DigestLength = common.HashLength

func ParseDigest(s string) (ret Digest, err error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return ret, fmt.Errorf("invalid digest %q: %w", s, err)
	}
	if len(b) != DigestLength {
		return ret, fmt.Errorf("invalid digest length %d, want %d", len(b), DigestLength)
	}
	return common.BytesToHash(b), nil
}

type Algorithm uint8

const (
	SHA256 Algorithm = iota
	Keccak256
	BLAKE3
	algorithm_count
)

var algorithm_names = [algorithm_count]string{"sha256", "keccak256", "blake3"}

func (self Algorithm) String() string {
	if self < algorithm_count {
		return algorithm_names[self]
	}
	return fmt.Sprintf("algorithm(%d)", uint8(self))
}

func (self Algorithm) Valid() bool {
	return self < algorithm_count
}

func ParseAlgorithm(s string) (Algorithm, error) {
	for i, name := range algorithm_names {
		if strings.EqualFold(s, name) {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("unknown digest algorithm %q", s)
}

func (self Algorithm) MarshalText() ([]byte, error) {
	if !self.Valid() {
		return nil, fmt.Errorf("unknown digest algorithm %d", uint8(self))
	}
	return []byte(self.String()), nil
}

func (self *Algorithm) UnmarshalText(text []byte) (err error) {
	*self, err = ParseAlgorithm(string(text))
	return
}

func (self Algorithm) new_hash() hash.Hash {
	switch self {
	case SHA256:
		return sha256.New()
	case Keccak256:
		return sha3.NewLegacyKeccak256()
	case BLAKE3:
		return blake3.New(DigestLength, nil)
	}
	panic("unknown digest algorithm " + self.String())
}

// Context accumulates the byte stream of one digest computation. It has a
// single owner, is fed strictly in order, and is consumed by Finalize. Besides
// the hash state it carries the last entry key fed through the hasher, which
// is how ordering is checked across independently opened views.
type Context struct {
	alg       Algorithm
	h         hash.Hash
	last_key  []byte
	started   bool
	entries   uint64
	bytes     uint64
	finalized bool
}

func NewContext(alg Algorithm) (*Context, error) {
	if !alg.Valid() {
		return nil, &ConfigurationFault{Step: "algorithm", MarkerIndex: -1, Reason: "unknown digest algorithm " + alg.String()}
	}
	return &Context{alg: alg, h: alg.new_hash()}, nil
}

func (self *Context) Algorithm() Algorithm {
	return self.alg
}

// Feed appends b to the hashed stream.
func (self *Context) Feed(b []byte) {
	asserts.Holds(!self.finalized, "digest context already finalized")
	self.h.Write(b)
	self.bytes += uint64(len(b))
}

// Finalize returns the digest of everything fed so far. The context may not
// be used afterwards.
func (self *Context) Finalize() (ret Digest) {
	asserts.Holds(!self.finalized, "digest context already finalized")
	self.finalized = true
	self.h.Sum(ret[:0])
	self.h, self.last_key = nil, nil
	return
}

// Entries is the number of entries fed through the hasher.
func (self *Context) Entries() uint64 {
	return self.entries
}

// Bytes is the number of bytes fed, encoding overhead included.
func (self *Context) Bytes() uint64 {
	return self.bytes
}

// LastKey is the key of the most recently fed entry, nil if there was none.
func (self *Context) LastKey() []byte {
	if !self.started {
		return nil
	}
	return append([]byte{}, self.last_key...)
}

func (self *Context) advance(key []byte) {
	self.last_key = append(self.last_key[:0], key...)
	self.started = true
	self.entries++
}
