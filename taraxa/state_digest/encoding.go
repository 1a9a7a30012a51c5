package state_digest

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Encoding is how an entry is serialized into the hashed stream. Both sides of
// a comparison must use the same one.
type Encoding uint8

const (
	// EncodingLengthPrefixed feeds uvarint(len(key)) key uvarint(len(value)) value,
	// so no two distinct entry sequences share a stream.
	EncodingLengthPrefixed Encoding = iota
	// EncodingRaw feeds key then value with no delimiter. Digests match nodes
	// that hash the plain concatenation.
	EncodingRaw
	encoding_count
)

var encoding_names = [encoding_count]string{"length-prefixed", "raw"}

func (self Encoding) String() string {
	if self < encoding_count {
		return encoding_names[self]
	}
	return fmt.Sprintf("encoding(%d)", uint8(self))
}

func (self Encoding) Valid() bool {
	return self < encoding_count
}

func ParseEncoding(s string) (Encoding, error) {
	for i, name := range encoding_names {
		if strings.EqualFold(s, name) {
			return Encoding(i), nil
		}
	}
	return 0, fmt.Errorf("unknown entry encoding %q", s)
}

func (self Encoding) MarshalText() ([]byte, error) {
	if !self.Valid() {
		return nil, fmt.Errorf("unknown entry encoding %d", uint8(self))
	}
	return []byte(self.String()), nil
}

func (self *Encoding) UnmarshalText(text []byte) (err error) {
	*self, err = ParseEncoding(string(text))
	return
}

func (self Encoding) feed(dc *Context, key, value []byte) {
	if self == EncodingRaw {
		dc.Feed(key)
		dc.Feed(value)
		return
	}
	var l [binary.MaxVarintLen64]byte
	dc.Feed(l[:binary.PutUvarint(l[:], uint64(len(key)))])
	dc.Feed(key)
	dc.Feed(l[:binary.PutUvarint(l[:], uint64(len(value)))])
	dc.Feed(value)
}
