package core

import (
	"encoding/json"
	"fmt"
)

// ServerBundle is the JSON manifest emitted by the bundler's SSR server
// plugin. Only the sidecar executes it; the host parses it to fail fast on
// a broken build.
type ServerBundle struct {
	Entry string                     `json:"entry"`
	Files map[string]string          `json:"files"`
	Maps  map[string]json.RawMessage `json:"maps,omitempty"`
}

func ParseServerBundle(data []byte) (*ServerBundle, error) {
	var b ServerBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("invalid server bundle: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *ServerBundle) Validate() error {
	if b.Entry == "" {
		return fmt.Errorf("invalid server bundle: missing entry")
	}
	if _, ok := b.Files[b.Entry]; !ok {
		return fmt.Errorf("invalid server bundle: entry %q not found in files", b.Entry)
	}
	return nil
}

func (b *ServerBundle) Size() int {
	n := 0
	for _, src := range b.Files {
		n += len(src)
	}
	return n
}
