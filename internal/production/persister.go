// Package production provides production integrations: persistence, event publishing, visualization.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/stateflow"
)

// fileStore keeps one snapshot file per machine in dir.
type fileStore struct {
	dir       string
	ext       string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

func newFileStore(dir, ext string, marshal func(any) ([]byte, error), unmarshal func([]byte, any) error) (fileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fileStore{}, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return fileStore{dir: dir, ext: ext, marshal: marshal, unmarshal: unmarshal}, nil
}

// ErrInvalidMachineID is returned for machine ids that do not name a file
// inside the snapshot directory.
var ErrInvalidMachineID = errors.New("invalid machine id")

func (s fileStore) path(machineID string) (string, error) {
	if machineID == "" {
		return "", fmt.Errorf("snapshot machine id: %w", stateflow.ErrNullArgument)
	}
	name := machineID + s.ext
	if strings.ContainsAny(machineID, `/\`) || strings.Contains(machineID, "..") || !filepath.IsLocal(name) {
		return "", fmt.Errorf("machine %q: %w", machineID, ErrInvalidMachineID)
	}
	return filepath.Join(s.dir, name), nil
}

func (s fileStore) save(ctx context.Context, snapshot stateflow.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn, err := s.path(snapshot.MachineID)
	if err != nil {
		return err
	}

	data, err := s.marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%s marshal: %w", s.ext[1:], err)
	}

	tmp := fn + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, fn); err != nil {
		return fmt.Errorf("rename %s: %w", fn, err)
	}
	return nil
}

func (s fileStore) load(ctx context.Context, machineID string) (stateflow.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return stateflow.Snapshot{}, err
	}
	fn, err := s.path(machineID)
	if err != nil {
		return stateflow.Snapshot{}, err
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return stateflow.Snapshot{}, fmt.Errorf("machine %q: %w", machineID, os.ErrNotExist)
		}
		return stateflow.Snapshot{}, fmt.Errorf("read %s: %w", fn, err)
	}

	var snapshot stateflow.Snapshot
	if err := s.unmarshal(data, &snapshot); err != nil {
		return stateflow.Snapshot{}, fmt.Errorf("%s unmarshal: %w", s.ext[1:], err)
	}
	snapshot.MachineID = machineID // Ensure ID
	if err := snapshot.Definition.Validate(); err != nil {
		return stateflow.Snapshot{}, fmt.Errorf("definition validation after load: %w", err)
	}
	return snapshot, nil
}

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	store fileStore
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	store, err := newFileStore(dir, ".json", func(v any) ([]byte, error) {
		return json.MarshalIndent(v, "", "  ")
	}, json.Unmarshal)
	if err != nil {
		return nil, err
	}
	return &JSONPersister{store: store}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot stateflow.Snapshot) error {
	return p.store.save(ctx, snapshot)
}

func (p *JSONPersister) Load(ctx context.Context, machineID string) (stateflow.Snapshot, error) {
	return p.store.load(ctx, machineID)
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	store fileStore
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	store, err := newFileStore(dir, ".yaml", yaml.Marshal, yaml.Unmarshal)
	if err != nil {
		return nil, err
	}
	return &YAMLPersister{store: store}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot stateflow.Snapshot) error {
	return p.store.save(ctx, snapshot)
}

func (p *YAMLPersister) Load(ctx context.Context, machineID string) (stateflow.Snapshot, error) {
	return p.store.load(ctx, machineID)
}

// NewPersister returns the persister for format: "json" (the default), "yaml" or "yml".
func NewPersister(dir, format string) (stateflow.Persister, error) {
	switch format {
	case "", "json":
		return NewJSONPersister(dir)
	case "yaml", "yml":
		return NewYAMLPersister(dir)
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
}
