// Package fixtures holds the static sample payloads served when the career
// backend is unreachable.
//
// This package contains:
//   - Catalog: read-only resource name -> payload mapping with dot-path lookup
//   - Filter/Paginate: post-processing for array fixtures
package fixtures

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Catalog is the read-only fixture store. It is loaded once at startup and
// never mutated afterwards, so lookups need no locking.
type Catalog struct {
	data map[string]any
}

// New builds a catalog from an already-decoded fixture map.
func New(data map[string]any) *Catalog {
	if data == nil {
		data = make(map[string]any)
	}
	return &Catalog{data: data}
}

// Load reads every *.json file in dir. The file base name becomes the
// top-level resource key, so fixtures/jobs.json with a "search" field is
// addressable as "jobs.search".
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture dir: %w", err)
	}

	data := make(map[string]any)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", e.Name(), err)
		}

		var payload any
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("failed to parse fixture %s: %w", e.Name(), err)
		}

		data[strings.TrimSuffix(e.Name(), ".json")] = payload
	}

	return New(data), nil
}

// Resolve walks a dot-separated path into the catalog. A miss at any level
// returns nil rather than an error; the gateway degrades to an empty payload.
func (c *Catalog) Resolve(key string) any {
	var current any = c.data

	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}

	return current
}

// Keys returns the top-level resource names (for the status surface).
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}
