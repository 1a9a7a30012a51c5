package state_digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentPlanLayout(t *testing.T) {
	plan, err := NewSegmentPlanFromStrings("b", "d", "f")
	require.NoError(t, err)
	segs := plan.Segments()
	require.Len(t, segs, 4)
	assert.Equal(t, 2, plan.MarkerSegments())
	assert.Nil(t, segs[0].Lower)
	assert.Equal(t, []byte("b"), segs[0].Upper)
	assert.Equal(t, []byte("b"), segs[1].Lower)
	assert.Equal(t, []byte("d"), segs[1].Upper)
	assert.Equal(t, []byte("f"), segs[3].Lower)
	assert.Nil(t, segs[3].Upper)
	for i, s := range segs {
		assert.Equal(t, i, s.Index)
	}
	assert.Equal(t, `#1["b", "d")`, segs[1].String())
	assert.Equal(t, `#0[-inf, "b")`, segs[0].String())
	assert.Equal(t, `#3["f", +inf)`, segs[3].String())
}

func TestSegmentsAreGaplessAndDisjoint(t *testing.T) {
	plan := DefaultSegmentPlan()
	for _, key := range []string{"", "!", "0", "1ff", "9", "A", "Bz", "PieceUsageBytes", "`", "e", "ppieceUsageBytes", "{", "~~", "\xff"} {
		holders := 0
		for _, s := range plan.Segments() {
			if s.Contains([]byte(key)) {
				holders++
				assert.Equal(t, s.Index, plan.Locate([]byte(key)), "key %q", key)
			}
		}
		assert.Equal(t, 1, holders, "key %q", key)
	}
	assert.Equal(t, 7, plan.Locate([]byte("PieceUsageBytes")))
	assert.Equal(t, 10, plan.Locate([]byte("ppieceUsageBytes")))
}

func TestSegmentPlanCopiesMarkers(t *testing.T) {
	markers := [][]byte{[]byte("a"), []byte("c")}
	plan, err := NewSegmentPlan(markers)
	require.NoError(t, err)
	markers[0][0] = 'z'
	assert.Equal(t, []byte("a"), plan.Markers()[0])
	assert.Equal(t, []byte("a"), plan.Segments()[1].Lower)
}

func TestAlphabetMarkers(t *testing.T) {
	m, err := AlphabetMarkers("fedcba9876543210", 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "4", "8", "c", "g"}, m)
	_, err = NewSegmentPlanFromStrings(m...)
	assert.NoError(t, err)

	for _, bad := range []struct {
		alphabet string
		stride   int
	}{{"", 1}, {"abc", 0}, {"aba", 1}, {"a\xff", 1}} {
		_, err := AlphabetMarkers(bad.alphabet, bad.stride)
		assert.ErrorIs(t, err, ErrConfiguration, "%q/%d", bad.alphabet, bad.stride)
	}
}

func TestParseMarkers(t *testing.T) {
	assert.Equal(t, []string{"0", "2", "{"}, ParseMarkers(" 0, 2,,{ "))
	assert.Empty(t, ParseMarkers(""))
}
