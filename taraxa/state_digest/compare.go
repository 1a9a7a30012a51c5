package state_digest

import (
	"errors"
	"fmt"
)

var (
	ErrIncomparable   = errors.New("digests computed with different settings")
	ErrDigestMismatch = errors.New("state digest mismatch")
)

// Report is what a replica publishes about its state for a peer to compare.
type Report struct {
	Algorithm Algorithm `json:"algorithm"`
	Encoding  Encoding  `json:"encoding"`
	Markers   []string  `json:"markers,omitempty"`
	Digest    Digest    `json:"digest"`
	Entries   uint64    `json:"entries"`
	Bytes     uint64    `json:"bytes"`
	Segments  int       `json:"segments"`
}

func (self *Hasher) Report(res Result, plan *SegmentPlan) Report {
	ret := Report{
		Algorithm: self.opts.Algorithm,
		Encoding:  self.opts.Encoding,
		Digest:    res.Digest,
		Entries:   res.Entries,
		Bytes:     res.Bytes,
		Segments:  res.Segments,
	}
	if plan != nil {
		for _, m := range plan.Markers() {
			ret.Markers = append(ret.Markers, string(m))
		}
	}
	return ret
}

// Compare is nil when both reports describe the same state. The segment plan
// does not matter since it does not affect the digest.
func Compare(a, b Report) error {
	if a.Algorithm != b.Algorithm || a.Encoding != b.Encoding {
		return fmt.Errorf("%w: %v/%v vs %v/%v", ErrIncomparable, a.Algorithm, a.Encoding, b.Algorithm, b.Encoding)
	}
	if a.Digest != b.Digest {
		return fmt.Errorf("%w: %s vs %s", ErrDigestMismatch, a.Digest.Hex(), b.Digest.Hex())
	}
	return nil
}
