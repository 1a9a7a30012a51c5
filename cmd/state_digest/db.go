package main

import (
	"fmt"

	"github.com/Taraxa-project/taraxa-state-digest/ethdb"
	"github.com/Taraxa-project/taraxa-state-digest/ethdb/leveldb"
	"github.com/Taraxa-project/taraxa-state-digest/taraxa/state_digest/digest_config"
)

type db_opener = func(cfg *digest_config.Config, file string) (ethdb.Database, error)

// openers holds the backends compiled into the binary.
var openers = map[string]db_opener{
	digest_config.BackendLevelDB: func(cfg *digest_config.Config, file string) (ethdb.Database, error) {
		return leveldb.New(&leveldb.Config{
			File:           file,
			Cache:          cfg.Cache,
			Handles:        cfg.Handles,
			ReadOnly:       true,
			ErrorIfMissing: true,
		})
	},
}

func open_db(cfg *digest_config.Config, file string) (ethdb.Database, error) {
	open, ok := openers[cfg.Backend]
	if !ok {
		return nil, fmt.Errorf("backend %q is not compiled in, rebuild with -tags %s", cfg.Backend, cfg.Backend)
	}
	return open(cfg, file)
}
