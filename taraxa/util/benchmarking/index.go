package benchmarking

import (
	"runtime/debug"
	"testing"
)

type Benchmark = func(b *testing.B, i int)

// AddBenchmark runs benchmark as a sub-benchmark with the garbage collector
// paused, so that allocations made by earlier iterations do not get charged
// to later ones. bytes_per_op, when positive, makes the result report
// throughput.
func AddBenchmark(b *testing.B, name string, bytes_per_op int64, benchmark Benchmark) {
	b.Run(name, func(b *testing.B) {
		if bytes_per_op > 0 {
			b.SetBytes(bytes_per_op)
		}
		b.ReportAllocs()
		b.StopTimer()
		prev_gc_pct := debug.SetGCPercent(-1)
		defer debug.SetGCPercent(prev_gc_pct)
		for i := 0; i < b.N; i++ {
			b.StartTimer()
			benchmark(b, i)
			b.StopTimer()
			if prev_gc_pct > 0 && i%16 == 15 {
				debug.FreeOSMemory()
			}
		}
	})
}
