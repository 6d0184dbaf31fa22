// Package benchmarks provides memory footprint benchmarks.
package benchmarks

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/comalice/stateflow"
)

func BenchmarkMemoryRing(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("states=%d", n), func(b *testing.B) {
			def := GenRingDefinition(n)
			numMachines := 100
			var before runtime.MemStats
			runtime.ReadMemStats(&before)
			machines := make([]*stateflow.Manager[*nopState], numMachines)
			for i := 0; i < numMachines; i++ {
				m, err := NewMachine(def)
				if err != nil {
					b.Fatal(err)
				}
				machines[i] = m
			}
			runtime.GC()
			var after runtime.MemStats
			runtime.ReadMemStats(&after)
			bytesPerMachine := (after.TotalAlloc - before.TotalAlloc) / uint64(numMachines)
			bytesPerState := bytesPerMachine / uint64(n)
			b.ReportMetric(float64(bytesPerMachine)/1024, "KB/machine")
			b.ReportMetric(float64(bytesPerState), "B/state")
			runtime.KeepAlive(machines)
		})
	}
}
