// Package primitives provides versioning utilities for Definition.
package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// ComputeVersion computes the version of a Definition.
// Priority: user-provided def.Version, else SHA256(def JSON)[:8] + timestamp.
func ComputeVersion(def *Definition) string {
	if def.Version != "" {
		return def.Version
	}

	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Sprintf("invalid-%d", time.Now().Unix())
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x-%s", hash[:8], time.Now().UTC().Format("20060102T150405Z"))
}

// Fingerprint returns the content hash part of ComputeVersion, without the
// timestamp. Equal tables yield equal fingerprints.
func Fingerprint(def *Definition) string {
	data, err := json.Marshal(def)
	if err != nil {
		return ""
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
