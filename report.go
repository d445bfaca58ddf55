package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"gallery-zoom/engine"
)

// WriteTrace encodes a scenario trace as YAML.
func WriteTrace(w io.Writer, trace *engine.Trace) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(trace); err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	return enc.Close()
}

// SaveTrace writes a trace to filename, replacing any existing file.
func SaveTrace(trace *engine.Trace, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteTrace(f, trace)
}

// LoadTrace reads a trace written by SaveTrace.
func LoadTrace(filename string) (*engine.Trace, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var trace engine.Trace
	if err := yaml.Unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return &trace, nil
}
