// Package primitives provides the identifier and definition types shared by the
// flow engine and its adapters.
//
// Core invariants:
//   - StateID is a tagged value: None (zero value), Any (wildcard source) or a
//     concrete integer identifier. Sentinels can never collide with real ids.
//   - EventID is an opaque integer; its catalog belongs to the caller.
//   - Definition is plain data (JSON/YAML) describing a flow table. It carries no
//     behaviour; side effects are referenced by name and bound at apply time.
package primitives
