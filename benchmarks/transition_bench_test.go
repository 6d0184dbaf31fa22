// Package benchmarks provides performance benchmarks for the engine's transitions.
package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/comalice/stateflow"
)

func BenchmarkSimpleTransition(b *testing.B) {
	m, err := NewMachine(GenRingDefinition(1))
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := m.ProcessEvent(ctx, tick); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRingTransition(b *testing.B) {
	for _, n := range []int{2, 100, 10000} {
		b.Run(fmt.Sprintf("states=%d", n), func(b *testing.B) {
			m, err := NewMachine(GenRingDefinition(n))
			if err != nil {
				b.Fatal(err)
			}
			ctx := context.Background()
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := m.ProcessEvent(ctx, tick); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkWildcardTransition(b *testing.B) {
	const n = 64
	m, err := NewMachine(GenWildcardDefinition(n))
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := m.ProcessEvent(ctx, stateflow.EventID(i%n)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUnmatchedEvent(b *testing.B) {
	m, err := NewMachine(GenRingDefinition(10))
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := m.ProcessEvent(ctx, tick+1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExecution(b *testing.B) {
	m, err := NewMachine(GenRingDefinition(1))
	if err != nil {
		b.Fatal(err)
	}
	fired := 0
	if err := m.AddExecution(stateflow.Any, tick+1, func() { fired++ }); err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := m.ProcessEvent(ctx, tick+1); err != nil {
			b.Fatal(err)
		}
	}
	if fired != b.N {
		b.Fatalf("fired %d, want %d", fired, b.N)
	}
}

func BenchmarkDeferredFirstEntry(b *testing.B) {
	ctx := context.Background()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m, err := stateflow.New(&nopState{id: stateflow.ID(0)})
		if err != nil {
			b.Fatal(err)
		}
		if err := m.RegisterDeferredState(stateflow.ID(1), func() *nopState {
			return &nopState{id: stateflow.ID(1)}
		}); err != nil {
			b.Fatal(err)
		}
		if err := m.AddTransition(stateflow.ID(0), tick, stateflow.ID(1)); err != nil {
			b.Fatal(err)
		}
		if err := m.ProcessEvent(ctx, tick); err != nil {
			b.Fatal(err)
		}
	}
}
