package production

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/comalice/stateflow"
)

var (
	ErrNotFound = errors.New("version or machine not found")
	ErrExists   = errors.New("version already exists")
)

// MemoryRegistry keeps every saved snapshot of every machine, indexed by
// version. It satisfies stateflow.Persister: Save registers, Load returns the
// latest.
type MemoryRegistry struct {
	mu       sync.RWMutex
	machines map[string][]stateflow.Snapshot // oldest first
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{machines: make(map[string][]stateflow.Snapshot)}
}

// Register stores snapshot under its version. Versions are unique per machine.
func (r *MemoryRegistry) Register(ctx context.Context, snapshot stateflow.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshot.MachineID == "" || snapshot.Version == "" {
		return fmt.Errorf("snapshot machine id and version: %w", stateflow.ErrNullArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.machines[snapshot.MachineID] {
		if s.Version == snapshot.Version {
			return fmt.Errorf("machine %q version %q: %w", snapshot.MachineID, snapshot.Version, ErrExists)
		}
	}
	r.machines[snapshot.MachineID] = append(r.machines[snapshot.MachineID], snapshot)
	return nil
}

// Latest returns the most recent snapshot for machineID.
func (r *MemoryRegistry) Latest(ctx context.Context, machineID string) (stateflow.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return stateflow.Snapshot{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	snaps := r.machines[machineID]
	if len(snaps) == 0 {
		return stateflow.Snapshot{}, fmt.Errorf("machine %q: %w", machineID, ErrNotFound)
	}
	return snaps[len(snaps)-1], nil
}

// Version returns the snapshot for a specific version.
func (r *MemoryRegistry) Version(ctx context.Context, machineID, version string) (stateflow.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return stateflow.Snapshot{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.machines[machineID] {
		if s.Version == version {
			return s, nil
		}
	}
	return stateflow.Snapshot{}, fmt.Errorf("machine %q version %q: %w", machineID, version, ErrNotFound)
}

// ListVersions returns versions for machineID, newest first.
func (r *MemoryRegistry) ListVersions(ctx context.Context, machineID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	snaps := r.machines[machineID]
	if len(snaps) == 0 {
		return nil, fmt.Errorf("machine %q: %w", machineID, ErrNotFound)
	}
	out := make([]string, 0, len(snaps))
	for i := len(snaps) - 1; i >= 0; i-- {
		out = append(out, snaps[i].Version)
	}
	return out, nil
}

// ListMachines returns all machine IDs, sorted.
func (r *MemoryRegistry) ListMachines(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.machines))
	for id := range r.machines {
		out = append(out, id)
	}
	slices.Sort(out)
	return out, nil
}

// Save records snapshot as the latest one. A snapshot whose version is already
// known replaces the earlier one; Manager snapshot versions are table
// fingerprints, so a machine keeps one entry per table layout.
func (r *MemoryRegistry) Save(ctx context.Context, snapshot stateflow.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshot.MachineID == "" || snapshot.Version == "" {
		return fmt.Errorf("snapshot machine id and version: %w", stateflow.ErrNullArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	snaps := slices.DeleteFunc(r.machines[snapshot.MachineID], func(s stateflow.Snapshot) bool {
		return s.Version == snapshot.Version
	})
	r.machines[snapshot.MachineID] = append(snaps, snapshot)
	return nil
}

// Load returns the latest snapshot of machineID.
func (r *MemoryRegistry) Load(ctx context.Context, machineID string) (stateflow.Snapshot, error) {
	return r.Latest(ctx, machineID)
}
