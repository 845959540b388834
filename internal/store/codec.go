package store

import (
	"bytes"
	"encoding/json"
	_ "embed"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"tikkit/internal/model"
)

//go:embed schema.json
var stateSchemaJSON []byte

// stateSchema is compiled once at startup. The schema pins the enum fields
// and required keys so a corrupt or foreign blob is rejected before
// unmarshalling instead of producing a half-valid state.
var stateSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("state.schema.json", bytes.NewReader(stateSchemaJSON)); err != nil {
		panic(err)
	}
	return c.MustCompile("state.schema.json")
}

// EncodeState serializes a state for storage.
func EncodeState(s model.State) ([]byte, error) {
	if s.Entries == nil {
		s.Entries = []model.Entry{}
	}
	blob, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return blob, nil
}

// DecodeState validates and deserializes a stored blob. Any parse or schema
// failure is an error; callers treat it as "no saved state".
func DecodeState(blob []byte) (model.State, error) {
	var raw any
	if err := json.Unmarshal(blob, &raw); err != nil {
		return model.State{}, fmt.Errorf("parse state: %w", err)
	}
	if err := stateSchema.Validate(raw); err != nil {
		return model.State{}, fmt.Errorf("validate state: %w", err)
	}

	var s model.State
	if err := json.Unmarshal(blob, &s); err != nil {
		return model.State{}, fmt.Errorf("unmarshal state: %w", err)
	}
	if s.Entries == nil {
		s.Entries = []model.Entry{}
	}
	return s, nil
}

// LoadState reads the state stored under key, falling back to the default
// state on absence or any decode failure. The error return carries the
// reason for the fallback for logging; the returned state is always usable.
func LoadState(s *Store, key string) (model.State, error) {
	blob, found, err := s.Get(key)
	if err != nil {
		return model.Default(), fmt.Errorf("read state: %w", err)
	}
	if !found {
		return model.Default(), nil
	}
	st, err := DecodeState(blob)
	if err != nil {
		return model.Default(), err
	}
	return st, nil
}

// SaveState serializes and writes the state under key.
func SaveState(s *Store, key string, st model.State) error {
	blob, err := EncodeState(st)
	if err != nil {
		return err
	}
	return s.Put(key, blob)
}
