package leveldb

import (
	"github.com/Taraxa-project/taraxa-state-digest/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

type Database struct {
	file string
	db   *leveldb.DB
	log  log.Logger
}

// New opens the database at cfg.File, recovering the manifest if it is
// reported corrupted.
func New(cfg *Config) (*Database, error) {
	logger := log.New("database", cfg.File)
	db, err := leveldb.OpenFile(cfg.File, cfg.options())
	if _, corrupted := err.(*errors.ErrCorrupted); corrupted && !cfg.ReadOnly {
		logger.Warn("Database corrupted, attempting recovery", "err", err)
		db, err = leveldb.RecoverFile(cfg.File, nil)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("Allocated leveldb", "cache", cfg.Cache, "handles", cfg.Handles, "readonly", cfg.ReadOnly)
	return &Database{file: cfg.File, db: db, log: logger}, nil
}

// NewMemory backs the database with goleveldb's in-memory storage.
func NewMemory() *Database {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		panic(err)
	}
	return &Database{db: db, log: log.New("database", "memory")}
}

func (self *Database) Path() string {
	return self.file
}

func (self *Database) Unwrap() *leveldb.DB {
	return self.db
}

func (self *Database) Put(key []byte, value []byte) error {
	return self.db.Put(key, value, nil)
}

func (self *Database) Has(key []byte) (bool, error) {
	return self.db.Has(key, nil)
}

func (self *Database) Get(key []byte) ([]byte, error) {
	ret, err := self.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, ethdb.ErrNotFound
	}
	return ret, err
}

func (self *Database) Delete(key []byte) error {
	return self.db.Delete(key, nil)
}

func (self *Database) Close() error {
	err := self.db.Close()
	if err == nil {
		self.log.Debug("Database closed")
	} else {
		self.log.Error("Failed to close database", "err", err)
	}
	return err
}

func (self *Database) NewBatch() ethdb.Batch {
	return &batch{db: self.db, b: new(leveldb.Batch)}
}

type batch struct {
	db   *leveldb.DB
	b    *leveldb.Batch
	size int
}

func (self *batch) Put(key, value []byte) error {
	self.b.Put(key, value)
	self.size += len(value)
	return nil
}

func (self *batch) Delete(key []byte) error {
	self.b.Delete(key)
	self.size += 1
	return nil
}

func (self *batch) ValueSize() int {
	return self.size
}

func (self *batch) Write() error {
	return self.db.Write(self.b, nil)
}

func (self *batch) Reset() {
	self.b.Reset()
	self.size = 0
}
