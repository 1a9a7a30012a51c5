package digest_config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/Taraxa-project/taraxa-state-digest/taraxa/state_digest"
	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util/jsonutil"
)

const EnvPrefix = "STATE_DIGEST_"

const (
	BackendLevelDB = "leveldb"
	BackendRocksDB = "rocksdb"
)

type Config struct {
	Backend        string                 `json:"backend" env:"BACKEND"`
	File           string                 `json:"file" env:"DB"`
	Cache          int                    `json:"cache" env:"CACHE"`
	Handles        int                    `json:"handles" env:"HANDLES"`
	Algorithm      state_digest.Algorithm `json:"algorithm" env:"ALGORITHM"`
	Encoding       state_digest.Encoding  `json:"encoding" env:"ENCODING"`
	Markers        []string               `json:"markers" env:"MARKERS" envSeparator:","`
	Workers        int                    `json:"workers" env:"WORKERS"`
	SharedSnapshot bool                   `json:"sharedSnapshot" env:"SHARED_SNAPSHOT"`
	Verbosity      int                    `json:"verbosity" env:"VERBOSITY"`
	Metrics        bool                   `json:"metrics" env:"METRICS"`
}

func Default() *Config {
	return &Config{
		Backend:   BackendLevelDB,
		Cache:     16,
		Handles:   16,
		Algorithm: state_digest.SHA256,
		Encoding:  state_digest.EncodingLengthPrefixed,
		Markers:   append([]string(nil), state_digest.DefaultMarkers...),
		Workers:   1,
		Verbosity: 3,
	}
}

// Load layers the JSON file at path (if any) and then STATE_DIGEST_*
// environment variables over the defaults.
func Load(path string) (*Config, error) {
	ret := Default()
	if path != "" {
		if err := jsonutil.DecodeFile(path, ret); err != nil {
			return nil, err
		}
	}
	if err := env.ParseWithOptions(ret, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return ret, ret.Validate()
}

func (self *Config) Validate() error {
	switch self.Backend {
	case BackendLevelDB, BackendRocksDB:
	default:
		return fmt.Errorf("unknown backend %q", self.Backend)
	}
	if self.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", self.Workers)
	}
	if _, err := self.Plan(); err != nil {
		return err
	}
	return nil
}

func (self *Config) Plan() (*state_digest.SegmentPlan, error) {
	return state_digest.NewSegmentPlanFromStrings(self.Markers...)
}

func (self *Config) HasherOpts() state_digest.Opts {
	return state_digest.Opts{
		Algorithm:      self.Algorithm,
		Encoding:       self.Encoding,
		Workers:        self.Workers,
		SharedSnapshot: self.SharedSnapshot,
	}
}
