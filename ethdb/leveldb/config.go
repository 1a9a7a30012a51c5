package leveldb

import "github.com/syndtr/goleveldb/leveldb/opt"

type Config struct {
	File     string `json:"file" env:"FILE"`
	Cache    int    `json:"cache" env:"CACHE"`
	Handles  int    `json:"handles" env:"HANDLES"`
	ReadOnly bool   `json:"readOnly" env:"READ_ONLY"`
	// ErrorIfMissing makes Open fail instead of creating an empty database.
	ErrorIfMissing bool `json:"errorIfMissing" env:"ERROR_IF_MISSING"`
}

const (
	min_cache   = 16
	min_handles = 16
)

func (self *Config) options() *opt.Options {
	cache, handles := self.Cache, self.Handles
	if cache < min_cache {
		cache = min_cache
	}
	if handles < min_handles {
		handles = min_handles
	}
	return &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
		ReadOnly:               self.ReadOnly,
		ErrorIfMissing:         self.ErrorIfMissing,
	}
}

func (self *Config) NewDB() (*Database, error) {
	return New(self)
}
