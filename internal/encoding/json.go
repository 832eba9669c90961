// Package encoding provides utilities for encoding and decoding data.
package encoding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// LoadJSON reads a JSON file and unmarshals it into the provided type.
// Returns nil, nil if the file does not exist.
func LoadJSON[T any](path string) (*T, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, nil
	}

	result, err := ParseJSON[T](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON from %s: %w", path, err)
	}

	return result, nil
}

// SaveJSON marshals the value to indented JSON and writes it to path with
// 0600 permissions, creating parent directories as needed.
func SaveJSON[T any](path string, value T) error {
	data, err := ToJSONIndent(value)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return WriteFileSecure(path, append(data, '\n'))
}

// ParseJSON unmarshals JSON data into the provided type. Unknown fields are
// ignored; trailing garbage after the first value is an error.
func ParseJSON[T any](data []byte) (*T, error) {
	var result T
	if err := ParseJSONInto(data, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ParseJSONInto decodes data over an existing value, so fields absent from
// data keep whatever into already held.
func ParseJSONInto[T any](data []byte, into *T) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := dec.Decode(into); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	if dec.More() {
		return fmt.Errorf("failed to parse JSON: unexpected data after value")
	}

	return nil
}

// ToJSON marshals a value to JSON bytes.
func ToJSON[T any](value T) ([]byte, error) {
	return json.Marshal(value)
}

// ToJSONIndent marshals a value to indented JSON bytes.
func ToJSONIndent[T any](value T) ([]byte, error) {
	return json.MarshalIndent(value, "", "  ")
}

// WriteJSON encodes value as indented JSON to w.
func WriteJSON[T any](w io.Writer, value T) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(value)
}
