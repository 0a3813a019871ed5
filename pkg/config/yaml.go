package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a config file. JSON files parse too, JSON being a subset
// of YAML. Keys that name no setting are rejected so a misspelled option
// does not silently fall back to its default. An empty document yields a
// zero Config; the loader merges defaults over it.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone returns a copy that shares no slices with c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Deps.SourceRoots = slices.Clone(c.Deps.SourceRoots)
	clone.Deps.Extensions = slices.Clone(c.Deps.Extensions)
	return &clone
}
