package tests

import (
	"math/rand"
	"os"
	"runtime"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util/files"
	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util/keccak256"
)

type TestCtx struct {
	*testing.T
	Assert   assert.Assertions
	data_dir string
}

func NewTestCtx(t *testing.T) (ret TestCtx) {
	ret.T = t
	ret.Assert = *assert.New(t)
	return
}

func (self *TestCtx) Close() {
	if len(self.data_dir) != 0 {
		files.RemoveAll(self.data_dir)
	}
}

// DataDir is a clean directory unique to the calling test file and test name.
func (self *TestCtx) DataDir() string {
	if len(self.data_dir) != 0 {
		return self.data_dir
	}
	_, test_file_path, _, _ := runtime.Caller(1)
	h := keccak256.Hash([]byte(test_file_path), []byte(self.Name()))
	self.data_dir = files.CreateDirectoriesClean(os.TempDir(), h.Hex())
	return self.data_dir
}

// RandomHex is the hex encoding of 32 random bytes drawn from rng.
func RandomHex(rng *rand.Rand) string {
	var h common.Hash
	rng.Read(h[:])
	return h.Hex()[2:]
}

