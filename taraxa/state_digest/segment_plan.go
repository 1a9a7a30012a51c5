package state_digest

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// DefaultMarkers bucket hex-encoded keys by their leading character, upper and
// lower case alike. Peers comparing digests segment by segment agree on them.
var DefaultMarkers = []string{"0", "2", "4", "6", "8", "A", "F", "a", "c", "e", "{"}

// Segment is the half-open key range [Lower, Upper). A nil Lower lies before
// every key and a nil Upper after every key.
type Segment struct {
	Index int
	Lower []byte
	Upper []byte
}

func (self Segment) Contains(key []byte) bool {
	return (self.Lower == nil || bytes.Compare(key, self.Lower) >= 0) &&
		(self.Upper == nil || bytes.Compare(key, self.Upper) < 0)
}

func (self Segment) String() string {
	lower, upper := "-inf", "+inf"
	if self.Lower != nil {
		lower = fmt.Sprintf("%q", self.Lower)
	}
	if self.Upper != nil {
		upper = fmt.Sprintf("%q", self.Upper)
	}
	return fmt.Sprintf("#%d[%s, %s)", self.Index, lower, upper)
}

// whole_domain is the single segment of a one-pass computation.
var whole_domain = Segment{}

// SegmentPlan partitions the key domain at a strictly increasing list of
// markers m0 < m1 < ... < mk into [-inf, m0), [m0, m1), ..., [mk, +inf).
// The open edge segments keep the partition total whatever the markers are.
type SegmentPlan struct {
	markers  [][]byte
	segments []Segment
}

func NewSegmentPlan(markers [][]byte) (*SegmentPlan, error) {
	if len(markers) < 2 {
		return nil, &ConfigurationFault{
			Step:        "plan",
			MarkerIndex: len(markers) - 1,
			Reason:      fmt.Sprintf("need at least two markers, got %d", len(markers)),
		}
	}
	for i := 1; i < len(markers); i++ {
		if c := bytes.Compare(markers[i-1], markers[i]); c >= 0 {
			reason := "marker is not greater than its predecessor"
			if c == 0 {
				reason = "duplicate marker"
			}
			return nil, &ConfigurationFault{
				Step:        "plan",
				MarkerIndex: i,
				Reason:      fmt.Sprintf("%s: %q after %q", reason, markers[i], markers[i-1]),
			}
		}
	}
	ret := &SegmentPlan{markers: make([][]byte, len(markers))}
	for i, m := range markers {
		ret.markers[i] = append([]byte{}, m...)
	}
	ret.segments = make([]Segment, 0, len(markers)+1)
	var lower []byte
	for _, m := range ret.markers {
		ret.segments = append(ret.segments, Segment{Index: len(ret.segments), Lower: lower, Upper: m})
		lower = m
	}
	ret.segments = append(ret.segments, Segment{Index: len(ret.segments), Lower: lower})
	return ret, nil
}

func NewSegmentPlanFromStrings(markers ...string) (*SegmentPlan, error) {
	bs := make([][]byte, len(markers))
	for i, m := range markers {
		bs[i] = []byte(m)
	}
	return NewSegmentPlan(bs)
}

func DefaultSegmentPlan() *SegmentPlan {
	ret, err := NewSegmentPlanFromStrings(DefaultMarkers...)
	if err != nil {
		panic(err)
	}
	return ret
}

// Segments lists every segment in key order, the two open edges included.
func (self *SegmentPlan) Segments() []Segment {
	return self.segments
}

func (self *SegmentPlan) Markers() [][]byte {
	return self.markers
}

// MarkerSegments is the number of segments bounded by markers on both sides.
func (self *SegmentPlan) MarkerSegments() int {
	return len(self.markers) - 1
}

// Locate returns the index of the segment holding key.
func (self *SegmentPlan) Locate(key []byte) int {
	return sort.Search(len(self.markers), func(i int) bool {
		return bytes.Compare(key, self.markers[i]) < 0
	})
}

// AlphabetMarkers returns one marker per stride leading characters of the
// sorted alphabet, plus a final marker just past its last character.
func AlphabetMarkers(alphabet string, stride int) ([]string, error) {
	if stride < 1 {
		return nil, &ConfigurationFault{Step: "alphabet", MarkerIndex: -1, Reason: fmt.Sprintf("stride %d < 1", stride)}
	}
	chars := []byte(alphabet)
	if len(chars) == 0 {
		return nil, &ConfigurationFault{Step: "alphabet", MarkerIndex: -1, Reason: "empty alphabet"}
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	for i := 1; i < len(chars); i++ {
		if chars[i] == chars[i-1] {
			return nil, &ConfigurationFault{Step: "alphabet", MarkerIndex: i, Reason: fmt.Sprintf("repeated character %q", chars[i])}
		}
	}
	last := chars[len(chars)-1]
	if last == 0xff {
		return nil, &ConfigurationFault{Step: "alphabet", MarkerIndex: len(chars) - 1, Reason: "alphabet may not contain 0xff"}
	}
	var ret []string
	for i := 0; i < len(chars); i += stride {
		ret = append(ret, string(chars[i:i+1]))
	}
	return append(ret, string([]byte{last + 1})), nil
}

// ParseMarkers splits a comma separated marker list. Blank items are dropped.
func ParseMarkers(csv string) (ret []string) {
	for _, m := range strings.Split(csv, ",") {
		if m = strings.TrimSpace(m); m != "" {
			ret = append(ret, m)
		}
	}
	return
}
