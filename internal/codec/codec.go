// Package codec serializes breadboards. Both formats map the model fields one
// to one, using the json struct tags of the model package; YAML goes through
// the same tags by way of github.com/ghodss/yaml.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/specialistvlad/bnbgo/internal/model"
)

// Format is a serialization format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json or yaml)", s)
}

// Marshal encodes bb in the given format.
func Marshal(bb *model.Breadboard, f Format) ([]byte, error) {
	switch f {
	case JSON:
		out, err := json.MarshalIndent(bb, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(out, '\n'), nil
	case YAML:
		out, err := yaml.Marshal(bb)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported format %q", f)
}

// Unmarshal decodes a breadboard. Unknown fields are rejected so that a
// document written by a newer version is not silently truncated.
func Unmarshal(data []byte, f Format) (*model.Breadboard, error) {
	switch f {
	case JSON:
	case YAML:
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
		data = converted
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var bb model.Breadboard
	if err := dec.Decode(&bb); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f, err)
	}
	return &bb, nil
}

// Encode writes bb to w in the given format.
func Encode(w io.Writer, bb *model.Breadboard, f Format) error {
	out, err := Marshal(bb, f)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Decode reads a whole breadboard from r.
func Decode(r io.Reader, f Format) (*model.Breadboard, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f, err)
	}
	return Unmarshal(data, f)
}
