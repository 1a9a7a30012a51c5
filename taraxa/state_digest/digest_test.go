package state_digest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedOrderMatters(t *testing.T) {
	a, _ := NewContext(SHA256)
	a.Feed([]byte("x"))
	a.Feed([]byte("y"))
	b, _ := NewContext(SHA256)
	b.Feed([]byte("y"))
	b.Feed([]byte("x"))
	assert.NotEqual(t, a.Finalize(), b.Finalize())
}

func TestFeedChunkingDoesNotMatter(t *testing.T) {
	a, _ := NewContext(Keccak256)
	a.Feed([]byte("hello world"))
	b, _ := NewContext(Keccak256)
	b.Feed([]byte("hello"))
	b.Feed(nil)
	b.Feed([]byte(" world"))
	assert.Equal(t, a.Finalize(), b.Finalize())
}

func TestFinalizedContextPanics(t *testing.T) {
	dc, err := NewContext(BLAKE3)
	require.NoError(t, err)
	dc.Finalize()
	assert.Panics(t, func() { dc.Feed([]byte("late")) })
	assert.Panics(t, func() { dc.Finalize() })
	_, err = dc.Checkpoint()
	assert.Error(t, err)
}

func TestUnknownAlgorithm(t *testing.T) {
	_, err := NewContext(algorithm_count)
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = ParseAlgorithm("md5")
	assert.Error(t, err)
}

func TestAlgorithmAndEncodingText(t *testing.T) {
	for alg := Algorithm(0); alg < algorithm_count; alg++ {
		parsed, err := ParseAlgorithm(alg.String())
		require.NoError(t, err)
		assert.Equal(t, alg, parsed)
	}
	parsed, err := ParseAlgorithm("SHA256")
	require.NoError(t, err)
	assert.Equal(t, SHA256, parsed)

	var v struct {
		A Algorithm `json:"a"`
		E Encoding  `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"keccak256","e":"raw"}`), &v))
	assert.Equal(t, Keccak256, v.A)
	assert.Equal(t, EncodingRaw, v.E)
	assert.Error(t, json.Unmarshal([]byte(`{"e":"csv"}`), &v))
	_, err = Encoding(7).MarshalText()
	assert.Error(t, err)
}

func TestParseDigest(t *testing.T) {
	const hex = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	d, err := ParseDigest(hex)
	require.NoError(t, err)
	assert.Equal(t, "0x"+hex, d.Hex())
	d2, err := ParseDigest("0x" + hex)
	require.NoError(t, err)
	assert.Equal(t, d, d2)

	_, err = ParseDigest("0x1234")
	assert.Error(t, err)
	_, err = ParseDigest("zz")
	assert.Error(t, err)
}
