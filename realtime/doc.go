// Package realtime provides a tick-based deterministic runtime for stateflow.
//
// The runtime differs from calling Manager.ProcessEvent directly in event
// dispatch:
//   - Events are batched and processed at fixed tick boundaries
//   - Deterministic event ordering via sequence numbers
//   - Any goroutine may send; only the tick goroutine touches the machine
//   - Fixed time-step execution (e.g., 60 FPS)
//
// # Example Usage
//
//	m, _ := stateflow.New(splash)
//	rt := realtime.NewRuntime(m, realtime.Config{
//		TickRate: 16667 * time.Microsecond, // 60 FPS
//	})
//	rt.Start(ctx)
//	rt.SendEvent(LoadingCompleted)
//
// # Event Ordering Guarantees
//
// Events are ordered deterministically using:
//  1. Priority (higher priority processed first)
//  2. Sequence number (FIFO for same priority)
//  3. Stable sorting (preserves relative order)
//
// Given the same sequence of SendEvent calls the machine always executes the
// same way, regardless of timing or concurrency.
//
// # Testing
//
// Tick processes one batch synchronously. Tests that never call Start can
// drive the runtime tick by tick without sleeping.
package realtime
