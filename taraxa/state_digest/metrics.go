package state_digest

import "github.com/ethereum/go-ethereum/metrics"

// hasher_metrics are resolved when a Hasher is built so that enabling
// metrics.Enabled at startup is honoured.
type hasher_metrics struct {
	entries  metrics.Meter
	bytes    metrics.Meter
	segment  metrics.Timer
	compute  metrics.Timer
	failures metrics.Counter
}

func new_hasher_metrics(r metrics.Registry) hasher_metrics {
	return hasher_metrics{
		entries:  metrics.GetOrRegisterMeter("state_digest/entries", r),
		bytes:    metrics.GetOrRegisterMeter("state_digest/bytes", r),
		segment:  metrics.GetOrRegisterTimer("state_digest/segment", r),
		compute:  metrics.GetOrRegisterTimer("state_digest/compute", r),
		failures: metrics.GetOrRegisterCounter("state_digest/failures", r),
	}
}
