package state_digest

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util"
	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util/goroutines"
)

type segment_read struct {
	entries [][2][]byte
	start   time.Time
	err     error
}

// feed_parallel scans segments on a worker group and feeds the buffered
// entries into dc strictly in segment order. At most twice the worker count
// of segments are read ahead of the feeder. It returns only after every
// worker has released its view.
func (self *Hasher) feed_parallel(ctx context.Context, open view_opener, segments []Segment, dc *Context, logger log.Logger) (*Context, error) {
	ctx, cancel := context.WithCancel(ctx)
	results := make([]chan segment_read, len(segments))
	for i := range results {
		results[i] = make(chan segment_read, 1)
	}
	window := make(chan struct{}, 2*self.opts.Workers)
	var workers goroutines.GoroutineGroup
	workers.Init(uint32(util.Min(self.opts.Workers, len(segments))), uint32(len(segments)))
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		defer workers.JoinAndClose()
		for i, seg := range segments {
			select {
			case window <- struct{}{}:
			case <-ctx.Done():
				return
			}
			out, seg := results[i], seg
			workers.Submit(func() {
				out <- self.read_segment(ctx, open, seg)
			})
		}
	}()
	defer func() {
		cancel()
		<-drained
	}()
	for i, seg := range segments {
		var r segment_read
		select {
		case r = <-results[i]:
		case <-ctx.Done():
			return nil, aborted(seg, ctx.Err())
		}
		<-window
		if r.err != nil {
			return nil, r.err
		}
		entries_before, bytes_before := dc.Entries(), dc.Bytes()
		for _, e := range r.entries {
			if err := self.feed_entry(dc, seg, e[0], e[1]); err != nil {
				return nil, err
			}
		}
		self.segment_done(seg, r.start, dc.Entries()-entries_before, dc.Bytes()-bytes_before, logger)
	}
	return dc, nil
}

func (self *Hasher) read_segment(ctx context.Context, open view_opener, seg Segment) (ret segment_read) {
	ret.start = time.Now()
	if err := ctx.Err(); err != nil {
		ret.err = aborted(seg, err)
		return
	}
	view, err := open(seg.Lower, seg.Upper)
	if err != nil {
		ret.err = &StorageFault{Segment: seg, Err: err}
		return
	}
	defer view.Release()
	for n := 1; view.Next(); n++ {
		ret.entries = append(ret.entries, [2][]byte{common.CopyBytes(view.Key()), common.CopyBytes(view.Value())})
		if n%self.opts.CancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				ret.err = aborted(seg, err)
				return
			}
		}
	}
	if err := view.Error(); err != nil {
		ret.err = &StorageFault{Segment: seg, Err: err}
	}
	return
}
