//go:build rocksdb

package rocksdb

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/tecbot/gorocksdb"

	"github.com/Taraxa-project/taraxa-state-digest/ethdb"
	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util"
)

type Database struct {
	writeOpts *gorocksdb.WriteOptions
	readOpts  *gorocksdb.ReadOptions
	db        *gorocksdb.DB
	log       log.Logger
}

type Config struct {
	File                          string `json:"file"`
	ReadOnly                      bool   `json:"readOnly"`
	ErrorIfExists                 bool   `json:"errorIfExists"`
	DontCreateIfMissing           bool   `json:"dontCreateIfMissing"`
	MaxOpenFiles                  int    `json:"maxOpenFiles"`
	BloomFilterCapacity           int    `json:"bloomFilterCapacity"`
	BlockCacheSize                uint64 `json:"blockCacheSize"`
	WriteBufferSize               int    `json:"writeBufferSize"`
	Parallelism                   int    `json:"parallelism"`
	MaxFileOpeningThreads         int    `json:"maxFileOpeningThreads"`
	UseDirectReads                bool   `json:"useDirectReads"`
	TargetFileSizeBase            uint64 `json:"targetFileSizeBase"`
	LevelCompactionMemtableBudget uint64 `json:"levelCompactionMemtableBudget"`
	// VerifyChecksums makes scans report block corruption instead of skipping checks.
	VerifyChecksums bool `json:"verifyChecksums"`
}

// New opens the database. Point-lookup tuning is left out: the digest scans
// ranges and needs the block based table with its iterators.
func New(cfg *Config) (*Database, error) {
	opts := gorocksdb.NewDefaultOptions()
	blockOpts := gorocksdb.NewDefaultBlockBasedTableOptions()
	blockOpts.SetFilterPolicy(gorocksdb.NewBloomFilter(util.Max(10, cfg.BloomFilterCapacity)))
	if cfg.BlockCacheSize != 0 {
		blockOpts.SetBlockCache(gorocksdb.NewLRUCache(cfg.BlockCacheSize))
	}
	opts.SetBlockBasedTableFactory(blockOpts)
	if cfg.LevelCompactionMemtableBudget != 0 {
		opts.OptimizeLevelStyleCompaction(cfg.LevelCompactionMemtableBudget)
	}
	if cfg.TargetFileSizeBase != 0 {
		opts.SetTargetFileSizeBase(cfg.TargetFileSizeBase)
	}
	if cfg.WriteBufferSize != 0 {
		opts.SetWriteBufferSize(cfg.WriteBufferSize)
	}
	if cfg.MaxOpenFiles != 0 {
		opts.SetMaxOpenFiles(cfg.MaxOpenFiles)
	}
	if cfg.Parallelism != 0 {
		opts.IncreaseParallelism(cfg.Parallelism)
	}
	if cfg.MaxFileOpeningThreads != 0 {
		opts.SetMaxFileOpeningThreads(cfg.MaxFileOpeningThreads)
	}
	opts.SetUseDirectReads(cfg.UseDirectReads)
	opts.SetErrorIfExists(cfg.ErrorIfExists)
	opts.SetCreateIfMissing(!cfg.DontCreateIfMissing)
	ret, err := &Database{log: log.New("database", cfg.File)}, error(nil)
	if cfg.ReadOnly {
		ret.db, err = gorocksdb.OpenDbForReadOnly(opts, cfg.File, cfg.ErrorIfExists)
	} else {
		ret.db, err = gorocksdb.OpenDb(opts, cfg.File)
	}
	if err != nil {
		return nil, err
	}
	ret.writeOpts = gorocksdb.NewDefaultWriteOptions()
	ret.readOpts = gorocksdb.NewDefaultReadOptions()
	ret.readOpts.SetVerifyChecksums(cfg.VerifyChecksums)
	ret.log.Debug("Allocated rocksdb", "readonly", cfg.ReadOnly, "parallelism", cfg.Parallelism)
	return ret, nil
}

func (self *Database) Unwrap() *gorocksdb.DB {
	return self.db
}

func (self *Database) Put(key []byte, value []byte) error {
	return self.db.Put(self.writeOpts, key, value)
}

func (self *Database) Delete(key []byte) error {
	return self.db.Delete(self.writeOpts, key)
}

func (self *Database) Get(key []byte) ([]byte, error) {
	slice, err := self.db.Get(self.readOpts, key)
	if err != nil {
		return nil, err
	}
	defer slice.Free()
	if !slice.Exists() {
		return nil, ethdb.ErrNotFound
	}
	return common.CopyBytes(slice.Data()), nil
}

func (self *Database) Has(key []byte) (bool, error) {
	slice, err := self.db.Get(self.readOpts, key)
	if err != nil {
		return false, err
	}
	defer slice.Free()
	return slice.Exists(), nil
}

func (self *Database) Close() error {
	self.readOpts.Destroy()
	self.writeOpts.Destroy()
	self.db.Close()
	*self = Database{}
	return nil
}

func (self *Database) NewBatch() ethdb.Batch {
	return &batch{
		db:    self,
		batch: gorocksdb.NewWriteBatch(),
	}
}

type batch struct {
	db    *Database
	batch *gorocksdb.WriteBatch
	size  int
}

func (self *batch) Put(key, value []byte) error {
	self.batch.Put(key, value)
	self.size += len(value)
	return nil
}

func (self *batch) Delete(key []byte) error {
	self.batch.Delete(key)
	self.size += 1
	return nil
}

func (self *batch) ValueSize() int {
	return self.size
}

func (self *batch) Write() error {
	return self.db.db.Write(self.db.writeOpts, self.batch)
}

func (self *batch) Reset() {
	self.batch.Clear()
	self.size = 0
}
