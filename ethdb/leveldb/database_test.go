package leveldb

import (
	"testing"

	"github.com/Taraxa-project/taraxa-state-digest/ethdb"
	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util/tests"
)

func keys_of(tc *tests.TestCtx, v ethdb.View) (ret []string) {
	defer v.Release()
	for v.Next() {
		ret = append(ret, string(v.Key()))
	}
	tc.Assert.NoError(v.Error())
	return
}

func TestViewsAndSnapshots(t *testing.T) {
	tc := tests.NewTestCtx(t)
	defer tc.Close()
	db, err := (&Config{File: tc.DataDir()}).NewDB()
	tc.Assert.NoError(err)
	defer db.Close()

	for _, k := range []string{"c", "a", "b", "e"} {
		tc.Assert.NoError(db.Put([]byte(k), []byte(k+k)))
	}
	v, err := db.NewView(nil, nil, true)
	tc.Assert.NoError(err)
	tc.Assert.NoError(db.Put([]byte("d"), []byte("dd")))
	tc.Assert.Equal([]string{"a", "b", "c", "e"}, keys_of(&tc, v))

	v, err = db.NewView([]byte("b"), []byte("e"), true)
	tc.Assert.NoError(err)
	tc.Assert.Equal([]string{"b", "c", "d"}, keys_of(&tc, v))

	snap, err := db.NewSnapshot()
	tc.Assert.NoError(err)
	defer snap.Release()
	tc.Assert.NoError(db.Delete([]byte("a")))
	v, err = snap.NewView(nil, []byte("c"))
	tc.Assert.NoError(err)
	tc.Assert.Equal([]string{"a", "b"}, keys_of(&tc, v))
}

func TestReopenReproducesEntries(t *testing.T) {
	tc := tests.NewTestCtx(t)
	defer tc.Close()
	cfg := &Config{File: tc.DataDir()}
	db, err := cfg.NewDB()
	tc.Assert.NoError(err)
	b := db.NewBatch()
	for _, k := range []string{"z", "y", "x"} {
		tc.Assert.NoError(b.Put([]byte(k), []byte("1")))
	}
	tc.Assert.Equal(3, b.ValueSize())
	tc.Assert.NoError(b.Write())
	tc.Assert.NoError(db.Close())

	db, err = cfg.NewDB()
	tc.Assert.NoError(err)
	defer db.Close()
	v, err := db.NewView(nil, nil, false)
	tc.Assert.NoError(err)
	tc.Assert.Equal([]string{"x", "y", "z"}, keys_of(&tc, v))

	val, err := db.Get([]byte("y"))
	tc.Assert.NoError(err)
	tc.Assert.Equal([]byte("1"), val)
	_, err = db.Get([]byte("nope"))
	tc.Assert.Equal(ethdb.ErrNotFound, err)
}

func TestErrorIfMissing(t *testing.T) {
	tc := tests.NewTestCtx(t)
	defer tc.Close()
	_, err := (&Config{File: tc.DataDir() + "/absent", ErrorIfMissing: true}).NewDB()
	tc.Assert.Error(err)
}

func TestViewReleaseIsIdempotent(t *testing.T) {
	db := NewMemory()
	defer db.Close()
	db.Put([]byte("a"), []byte("1"))
	v, err := db.NewView(nil, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	v.Release()
	v.Release()
	if v.Next() {
		t.Fatal("released view must not advance")
	}
}
