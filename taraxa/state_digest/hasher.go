package state_digest

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/google/uuid"

	"github.com/Taraxa-project/taraxa-state-digest/ethdb"
)

const DefaultCancelCheckInterval = 1024

type Opts struct {
	Algorithm Algorithm
	Encoding  Encoding
	// Workers above one read segments concurrently. Entries are still fed in
	// segment order.
	Workers int
	// SharedSnapshot opens every segment view on one snapshot when the store
	// is an ethdb.Snapshotter, instead of one consistent view per segment.
	SharedSnapshot bool
	// CancelCheckInterval is how many entries are fed between ctx checks.
	CancelCheckInterval int
	// Metrics registry, metrics.DefaultRegistry when nil.
	Metrics metrics.Registry
}

// Result is a finished computation.
type Result struct {
	Digest   Digest
	Entries  uint64
	Bytes    uint64
	Segments int
	Elapsed  time.Duration
}

// Hasher computes state digests. It holds no per-computation state, so one
// Hasher may run any number of computations concurrently.
type Hasher struct {
	opts    Opts
	log     log.Logger
	metrics hasher_metrics
}

func NewHasher(opts Opts) *Hasher {
	if opts.CancelCheckInterval <= 0 {
		opts.CancelCheckInterval = DefaultCancelCheckInterval
	}
	return &Hasher{
		opts:    opts,
		log:     log.New("module", "state_digest"),
		metrics: new_hasher_metrics(opts.Metrics),
	}
}

func (self *Hasher) Opts() Opts {
	return self.opts
}

// NewContext starts a digest context with the hasher's algorithm.
func (self *Hasher) NewContext() (*Context, error) {
	return NewContext(self.opts.Algorithm)
}

// ComputeFullHash digests the whole store through one consistent view.
func (self *Hasher) ComputeFullHash(ctx context.Context, store ethdb.Viewer) (Digest, error) {
	res, err := self.Compute(ctx, store, nil)
	return res.Digest, err
}

// ComputePartitionedHash digests the store one segment at a time. The result
// equals ComputeFullHash over the same state for any valid markers.
func (self *Hasher) ComputePartitionedHash(ctx context.Context, store ethdb.Viewer, markers [][]byte) (Digest, error) {
	plan, err := NewSegmentPlan(markers)
	if err != nil {
		return Digest{}, err
	}
	res, err := self.Compute(ctx, store, plan)
	return res.Digest, err
}

// Compute runs a whole computation, segmented when plan is not nil. Any fault
// aborts it; there is no partial result.
func (self *Hasher) Compute(ctx context.Context, store ethdb.Viewer, plan *SegmentPlan) (ret Result, err error) {
	if err = self.check_opts(); err != nil {
		return
	}
	segments := []Segment{whole_domain}
	if plan != nil {
		segments = plan.Segments()
	}
	start := time.Now()
	logger := self.log.New("run", uuid.New().String())
	defer func() {
		if err != nil {
			self.metrics.failures.Inc(1)
			logger.Warn("State digest aborted", "err", err, "elapsed", common.PrettyDuration(time.Since(start)))
		}
	}()
	dc, err := self.NewContext()
	if err != nil {
		return
	}
	open := func(lower, upper []byte) (ethdb.View, error) {
		return store.NewView(lower, upper, true)
	}
	if snapshotter, ok := store.(ethdb.Snapshotter); ok && self.opts.SharedSnapshot && plan != nil {
		snap, snap_err := snapshotter.NewSnapshot()
		if snap_err != nil {
			return ret, &StorageFault{Segment: whole_domain, Err: snap_err}
		}
		defer snap.Release()
		open = snap.NewView
	}
	logger.Debug("Computing state digest", "segments", len(segments), "algorithm", self.opts.Algorithm,
		"encoding", self.opts.Encoding, "workers", self.opts.Workers)
	if self.opts.Workers > 1 && len(segments) > 1 {
		dc, err = self.feed_parallel(ctx, open, segments, dc, logger)
	} else {
		for _, seg := range segments {
			if dc, err = self.feed_segment(ctx, open, seg, dc, logger); err != nil {
				break
			}
		}
	}
	if err != nil {
		return
	}
	ret.Entries, ret.Bytes, ret.Segments = dc.Entries(), dc.Bytes(), len(segments)
	ret.Digest = dc.Finalize()
	ret.Elapsed = time.Since(start)
	self.metrics.compute.UpdateSince(start)
	logger.Info("Computed state digest", "digest", ret.Digest, "segments", ret.Segments,
		"entries", ret.Entries, "bytes", ret.Bytes, "elapsed", common.PrettyDuration(ret.Elapsed))
	return
}

// HashSegment feeds one segment of store into dc, which the caller owns and
// gets back on success. On failure dc is gone and the returned context is nil.
func (self *Hasher) HashSegment(ctx context.Context, store ethdb.Viewer, seg Segment, dc *Context) (*Context, error) {
	if err := self.check_opts(); err != nil {
		return nil, err
	}
	if dc.Algorithm() != self.opts.Algorithm {
		return nil, &ConfigurationFault{Step: "algorithm", MarkerIndex: -1,
			Reason: fmt.Sprintf("context uses %v, hasher uses %v", dc.Algorithm(), self.opts.Algorithm)}
	}
	open := func(lower, upper []byte) (ethdb.View, error) {
		return store.NewView(lower, upper, true)
	}
	return self.feed_segment(ctx, open, seg, dc, self.log)
}

func (self *Hasher) check_opts() error {
	if !self.opts.Algorithm.Valid() {
		return &ConfigurationFault{Step: "algorithm", MarkerIndex: -1, Reason: "unknown digest algorithm " + self.opts.Algorithm.String()}
	}
	if !self.opts.Encoding.Valid() {
		return &ConfigurationFault{Step: "encoding", MarkerIndex: -1, Reason: "unknown entry encoding " + self.opts.Encoding.String()}
	}
	return nil
}

type view_opener = func(lower, upper []byte) (ethdb.View, error)

func (self *Hasher) feed_segment(ctx context.Context, open view_opener, seg Segment, dc *Context, logger log.Logger) (*Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, aborted(seg, err)
	}
	start, entries_before, bytes_before := time.Now(), dc.Entries(), dc.Bytes()
	view, err := open(seg.Lower, seg.Upper)
	if err != nil {
		return nil, &StorageFault{Segment: seg, Err: err}
	}
	defer view.Release()
	for n := 1; view.Next(); n++ {
		if err := self.feed_entry(dc, seg, view.Key(), view.Value()); err != nil {
			return nil, err
		}
		if n%self.opts.CancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, aborted(seg, err)
			}
		}
	}
	if err := view.Error(); err != nil {
		return nil, &StorageFault{Segment: seg, Err: err}
	}
	self.segment_done(seg, start, dc.Entries()-entries_before, dc.Bytes()-bytes_before, logger)
	return dc, nil
}

func (self *Hasher) feed_entry(dc *Context, seg Segment, key, value []byte) error {
	if dc.started && bytes.Compare(key, dc.last_key) <= 0 {
		return &ConcurrentMutationFault{Segment: seg, Key: common.CopyBytes(key), Previous: dc.LastKey(),
			Reason: "key not greater than previous key"}
	}
	if !seg.Contains(key) {
		return &ConcurrentMutationFault{Segment: seg, Key: common.CopyBytes(key), Previous: dc.LastKey(),
			Reason: "key outside segment bounds"}
	}
	self.opts.Encoding.feed(dc, key, value)
	dc.advance(key)
	return nil
}

func (self *Hasher) segment_done(seg Segment, start time.Time, entries, bytes uint64, logger log.Logger) {
	self.metrics.segment.UpdateSince(start)
	self.metrics.entries.Mark(int64(entries))
	self.metrics.bytes.Mark(int64(bytes))
	logger.Debug("Hashed segment", "segment", seg, "entries", entries, "bytes", bytes,
		"elapsed", common.PrettyDuration(time.Since(start)))
}

func aborted(seg Segment, err error) error {
	return fmt.Errorf("state digest aborted in segment %v: %w", seg, err)
}
