package extensibility

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/comalice/stateflow"
)

// LogEffect wraps fn so every run is logged with its duration.
func LogEffect(logger *slog.Logger, name string, fn func()) func() {
	return func() {
		logger.Debug("executing effect", slog.String("effect", name))
		start := time.Now()
		fn()
		logger.Debug("effect completed",
			slog.String("effect", name),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}

// EffectRegistry holds the named side effects a Definition refers to.
type EffectRegistry struct {
	fns map[string]func()
}

// NewEffectRegistry creates an empty registry.
func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{fns: make(map[string]func())}
}

// Register adds fn under name. Names are unique.
func (r *EffectRegistry) Register(name string, fn func()) error {
	if name == "" || fn == nil {
		return fmt.Errorf("effect %q: %w", name, stateflow.ErrNullArgument)
	}
	if _, ok := r.fns[name]; ok {
		return fmt.Errorf("effect %q already registered", name)
	}
	r.fns[name] = fn
	return nil
}

// Lookup returns the effect registered under name.
func (r *EffectRegistry) Lookup(name string) (func(), error) {
	fn, ok := r.fns[name]
	if !ok {
		return nil, fmt.Errorf("effect '%s' not registered", name)
	}
	return fn, nil
}

// Names returns the registered names in sorted order.
func (r *EffectRegistry) Names() []string {
	return slices.Sorted(maps.Keys(r.fns))
}

// Check reports the first effect of def missing from the registry.
func (r *EffectRegistry) Check(def stateflow.Definition) error {
	for i, x := range def.Executions {
		if _, err := r.Lookup(x.Effect); err != nil {
			return fmt.Errorf("execution %d: %w", i, err)
		}
	}
	return nil
}

// Map returns the effects keyed by name for Manager.Apply. With a non-nil
// logger every effect is wrapped by LogEffect.
func (r *EffectRegistry) Map(logger *slog.Logger) map[string]func() {
	out := make(map[string]func(), len(r.fns))
	for name, fn := range r.fns {
		if logger != nil {
			fn = LogEffect(logger, name, fn)
		}
		out[name] = fn
	}
	return out
}
