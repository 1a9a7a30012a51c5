//go:build rocksdb

package main

import (
	"github.com/Taraxa-project/taraxa-state-digest/ethdb"
	"github.com/Taraxa-project/taraxa-state-digest/ethdb/rocksdb"
	"github.com/Taraxa-project/taraxa-state-digest/taraxa/state_digest/digest_config"
)

func init() {
	openers[digest_config.BackendRocksDB] = func(cfg *digest_config.Config, file string) (ethdb.Database, error) {
		return rocksdb.New(&rocksdb.Config{
			File:                file,
			ReadOnly:            true,
			DontCreateIfMissing: true,
			VerifyChecksums:     true,
		})
	}
}
