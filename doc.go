// Package stateflow is an event-driven finite state machine for coordinating
// high level application states such as login, loading, menu or configuration.
//
// States are supplied by the caller and only need to expose an id and an
// activate/deactivate lifecycle. The Manager keeps a current state, a
// transition table and an execution table. Processing an event consults both
// tables independently:
//
//   - the transition table decides whether to move to another state,
//     deactivating the current state before activating the next one;
//   - the execution table decides whether to fire a side effect that does not
//     change the state.
//
// Each table is searched for an entry registered for the current state first
// and falls back to entries registered for Any. The earliest registered match
// wins. Unmatched events are ignored.
//
// # Example
//
//	login := builder.New(stateflow.ID(1))
//	menu := builder.New(stateflow.ID(2))
//
//	m, err := stateflow.New[*builder.FuncState](login)
//	if err != nil {
//		return err
//	}
//	_ = m.RegisterState(menu)
//	_ = m.RegisterTransition(stateflow.Must(stateflow.On(AuthOK).From(login.ID()).To(menu.ID())))
//	_ = m.RegisterExecution(stateflow.Must(stateflow.On(Quit).From(stateflow.Any).Do(shutdown)))
//
//	err = m.ProcessEvent(ctx, AuthOK)
//
// # Deferred states
//
// RegisterDeferredState records a constructor that runs the first time the
// machine transitions into the state. The built state is cached for the
// lifetime of the Manager.
//
// # Failure contract
//
// A transition target is fully resolved, including any deferred build, before
// the current state is deactivated. When resolution fails ProcessEvent returns
// an error wrapping ErrUnknownState (or ErrDeferredBuild) and the machine keeps
// its previous, still active, state.
//
// Both tables are resolved against the state the event was received in, so a
// transition caused by an event never changes which execution entry it fires.
//
// # Concurrency
//
// A Manager is not synchronised unless created WithLocking. Callbacks run
// inline and must not call back into a locked Manager. The realtime package
// offers tick based serialisation for producers on several goroutines.
package stateflow
