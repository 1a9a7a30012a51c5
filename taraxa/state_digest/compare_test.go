package state_digest

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareReports(t *testing.T) {
	entries := append(random_entries(rand.New(rand.NewSource(13)), 40), fixed_entries...)
	replica_a, replica_b := mem_store(t, entries), mem_store(t, entries)
	hasher := NewHasher(Opts{})
	plan := DefaultSegmentPlan()

	res_a, err := hasher.Compute(context.Background(), replica_a, plan)
	require.NoError(t, err)
	res_b, err := hasher.Compute(context.Background(), replica_b, nil)
	require.NoError(t, err)
	report_a, report_b := hasher.Report(res_a, plan), hasher.Report(res_b, nil)
	assert.Equal(t, uint64(len(entries)), report_a.Entries)
	assert.Equal(t, len(plan.Segments()), report_a.Segments)
	assert.Equal(t, 1, report_b.Segments)
	assert.Equal(t, DefaultMarkers, report_a.Markers)
	assert.NoError(t, Compare(report_a, report_b))

	encoded, err := json.Marshal(report_a)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.NoError(t, Compare(report_a, decoded))

	replica_b.Put([]byte("diverged"), []byte("1"))
	res_b, err = hasher.Compute(context.Background(), replica_b, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, Compare(report_a, hasher.Report(res_b, nil)), ErrDigestMismatch)

	other := NewHasher(Opts{Algorithm: Keccak256})
	res_k, err := other.Compute(context.Background(), replica_a, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, Compare(report_a, other.Report(res_k, nil)), ErrIncomparable)
}
