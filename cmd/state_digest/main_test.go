package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Taraxa-project/taraxa-state-digest/ethdb/leveldb"
	"github.com/Taraxa-project/taraxa-state-digest/taraxa/state_digest"
	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util/files"
	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util/tests"
)

func fill_db(tc *tests.TestCtx, dir string, n int) {
	db, err := (&leveldb.Config{File: dir}).NewDB()
	tc.Assert.NoError(err)
	defer db.Close()
	b := db.NewBatch()
	for i := 0; i < n; i++ {
		tc.Assert.NoError(b.Put([]byte(fmt.Sprintf("%x", i*7919)), []byte(fmt.Sprint(i))))
	}
	tc.Assert.NoError(b.Write())
}

func expected_digest(tc *tests.TestCtx, dir string) state_digest.Digest {
	db, err := (&leveldb.Config{File: dir}).NewDB()
	tc.Assert.NoError(err)
	defer db.Close()
	ret, err := state_digest.NewHasher(state_digest.Opts{}).ComputeFullHash(context.Background(), db)
	tc.Assert.NoError(err)
	return ret
}

func run(args ...string) (string, error) {
	var buf bytes.Buffer
	output = &buf
	defer func() { output = os.Stdout }()
	err := new_app().Run(append([]string{"state_digest", "--verbosity", "0"}, args...))
	return buf.String(), err
}

func TestFullAndPartitionedCommandsAgree(t *testing.T) {
	tc := tests.NewTestCtx(t)
	defer tc.Close()
	dir := tc.DataDir()
	fill_db(&tc, dir, 200)
	want := expected_digest(&tc, dir)

	out, err := run("--db", dir, "full")
	tc.Assert.NoError(err)
	var full state_digest.Report
	tc.Assert.NoError(json.Unmarshal([]byte(out), &full))
	tc.Assert.Equal(want, full.Digest)
	tc.Assert.Equal(uint64(200), full.Entries)
	tc.Assert.Equal(1, full.Segments)

	out, err = run("--db", dir, "--workers", "3", "--shared-snapshot", "partitioned")
	tc.Assert.NoError(err)
	var part state_digest.Report
	tc.Assert.NoError(json.Unmarshal([]byte(out), &part))
	tc.Assert.Equal(want, part.Digest)
	tc.Assert.Equal(len(state_digest.DefaultMarkers)+1, part.Segments)
	tc.Assert.Equal(state_digest.DefaultMarkers, part.Markers)
	tc.Assert.NoError(state_digest.Compare(full, part))
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	tc := tests.NewTestCtx(t)
	defer tc.Close()
	dir := tc.DataDir()
	fill_db(&tc, dir, 10)
	t.Setenv("STATE_DIGEST_ALGORITHM", "blake3")

	out, err := run("--db", dir, "full")
	tc.Assert.NoError(err)
	var report state_digest.Report
	tc.Assert.NoError(json.Unmarshal([]byte(out), &report))
	tc.Assert.Equal(state_digest.BLAKE3, report.Algorithm)

	out, err = run("--db", dir, "--algorithm", "keccak256", "--markers", "1,8", "partitioned")
	tc.Assert.NoError(err)
	tc.Assert.NoError(json.Unmarshal([]byte(out), &report))
	tc.Assert.Equal(state_digest.Keccak256, report.Algorithm)
	tc.Assert.Equal([]string{"1", "8"}, report.Markers)
	tc.Assert.Equal(3, report.Segments)
}

func TestCompareCommand(t *testing.T) {
	tc := tests.NewTestCtx(t)
	defer tc.Close()
	a, b, c := filepath.Join(tc.DataDir(), "a"), filepath.Join(tc.DataDir(), "b"), filepath.Join(tc.DataDir(), "c")
	fill_db(&tc, a, 50)
	fill_db(&tc, b, 50)
	fill_db(&tc, c, 51)

	out, err := run("--db", a, "compare", "--other", b)
	tc.Assert.NoError(err)
	var ret comparison
	tc.Assert.NoError(json.Unmarshal([]byte(out), &ret))
	tc.Assert.True(ret.Equal)
	tc.Assert.Equal(ret.Local.Digest, ret.Remote.Digest)

	out, err = run("--db", a, "compare", "--other", c)
	tc.Assert.True(errors.Is(err, state_digest.ErrDigestMismatch))
	tc.Assert.NoError(json.Unmarshal([]byte(out), &ret))
	tc.Assert.False(ret.Equal)
}

func TestCommandErrors(t *testing.T) {
	tc := tests.NewTestCtx(t)
	defer tc.Close()

	_, err := run("full")
	tc.Assert.Error(err)

	missing := filepath.Join(tc.DataDir(), "missing")
	_, err = run("--db", missing, "full")
	tc.Assert.Error(err)
	tc.Assert.False(files.Exists(missing))

	_, err = run("--db", tc.DataDir(), "--markers", "b,a", "partitioned")
	tc.Assert.True(errors.Is(err, state_digest.ErrConfiguration))

	_, err = run("--db", tc.DataDir(), "--algorithm", "md5", "full")
	tc.Assert.Error(err)
}
