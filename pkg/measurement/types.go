// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package measurement

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Well-known measurement keys exported for consistency and type safety.
const (
	// Clock measurement keys
	KeyClockSource          = "current-clocksource"
	KeyAvailableSources     = "available-clocksources"
	KeyTSCSupported         = "tsc-supported"
	KeyTSCFlags             = "tsc-flags"
	KeyVDSOPresent          = "vdso-present"
	KeyBenchmarkCycles      = "benchmark-cycles-per-call"
	KeyBenchmarkNanoseconds = "benchmark-ns-per-call"
	KeyBenchmarkIterations  = "benchmark-iterations"
	KeyCPUMHz               = "cpu-mhz"

	// TimeSync measurement keys (per service)
	KeyServiceActiveState = "active-state"
	KeyServiceLoadState   = "load-state"

	// Sysctl measurements are keyed by parameter name (e.g. vm.swappiness).
)

// Type represents the category of a measurement.
type Type string

// String returns the string representation of the measurement Type.
func (mt Type) String() string {
	return string(mt)
}

const (
	TypeClock    Type = "Clock"
	TypeTimeSync Type = "TimeSync"
	TypeSysctl   Type = "Sysctl"
)

// Types is the list of all supported measurement types.
var Types = []Type{
	TypeClock,
	TypeTimeSync,
	TypeSysctl,
}

// ParseType parses a string into a measurement Type.
// Returns the Type and true if parsing succeeds, or empty Type and false otherwise.
func ParseType(s string) (Type, bool) {
	for _, mt := range Types {
		if string(mt) == s {
			return mt, true
		}
	}
	return "", false
}

// Measurement represents collected data of a specific type with one or more
// named subtypes.
type Measurement struct {
	Type     Type      `json:"type" yaml:"type"`
	Subtypes []Subtype `json:"subtypes,omitempty" yaml:"subtypes,omitempty"`
}

// Subtype represents a specific subcategory of measurement with associated
// data as key-value readings.
type Subtype struct {
	Name string             `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	Data map[string]Reading `json:"data" yaml:"data"`
}

// UnmarshalJSON custom unmarshaler for Subtype to handle the Reading interface.
func (st *Subtype) UnmarshalJSON(data []byte) error {
	var tmp struct {
		Name string         `json:"subtype"`
		Data map[string]any `json:"data"`
	}

	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	st.Name = tmp.Name
	st.Data = make(map[string]Reading, len(tmp.Data))
	for k, v := range tmp.Data {
		st.Data[k] = ToReading(v)
	}

	return nil
}

// UnmarshalYAML custom unmarshaler for Subtype to handle the Reading interface.
func (st *Subtype) UnmarshalYAML(node *yaml.Node) error {
	var tmp struct {
		Name string         `yaml:"subtype"`
		Data map[string]any `yaml:"data"`
	}

	if err := node.Decode(&tmp); err != nil {
		return err
	}

	st.Name = tmp.Name
	st.Data = make(map[string]Reading, len(tmp.Data))
	for k, v := range tmp.Data {
		st.Data[k] = ToReading(v)
	}

	return nil
}

// AllowedScalar is a compile-time constraint for what we allow as readings.
type AllowedScalar interface {
	~int | ~int64 | ~uint | ~uint64 | ~float64 | ~bool | ~string
}

// Reading is a runtime interface so readings of mixed scalar types can be
// stored in a single map.
type Reading interface {
	isReading()
	Any() any
	String() string

	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Scalar wraps an allowed scalar type. This keeps compile-time constraints
// while still exposing a runtime interface.
type Scalar[T AllowedScalar] struct {
	V T
}

func (Scalar[T]) isReading() {}

func (s Scalar[T]) Any() any { return s.V }

// String returns the string representation of the underlying scalar value.
func (s Scalar[T]) String() string {
	return fmt.Sprintf("%v", s.V)
}

// MarshalJSON makes the JSON value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.V)
}

// MarshalYAML makes the YAML value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalYAML() (any, error) {
	return s.V, nil
}

// UnmarshalJSON unmarshals a JSON value into the underlying scalar.
func (s *Scalar[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &s.V)
}

// UnmarshalYAML unmarshals a YAML value into the underlying scalar.
func (s *Scalar[T]) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&s.V)
}

// ToReading creates a Reading from any allowed scalar type.
// Values outside the allowed set degrade to their string representation.
func ToReading(v any) Reading {
	switch val := v.(type) {
	case int:
		return Int(val)
	case int64:
		return Int64(val)
	case uint:
		return Uint(val)
	case uint64:
		return Uint64(val)
	case float64:
		return Float64(val)
	case bool:
		return Bool(val)
	case string:
		return Str(val)
	default:
		return Str(fmt.Sprintf("%v", val))
	}
}

// Convenience constructors for each allowed scalar type.
func Int(v int) Reading         { return &Scalar[int]{V: v} }
func Int64(v int64) Reading     { return &Scalar[int64]{V: v} }
func Uint(v uint) Reading       { return &Scalar[uint]{V: v} }
func Uint64(v uint64) Reading   { return &Scalar[uint64]{V: v} }
func Float64(v float64) Reading { return &Scalar[float64]{V: v} }
func Bool(v bool) Reading       { return &Scalar[bool]{V: v} }
func Str(v string) Reading      { return &Scalar[string]{V: v} }

// Validate checks if the measurement is properly formed.
func (m *Measurement) Validate() error {
	if m.Type == "" {
		return errors.New("measurement type cannot be empty")
	}
	if len(m.Subtypes) == 0 {
		return errors.New("measurement must have at least one subtype")
	}
	for i, st := range m.Subtypes {
		if len(st.Data) == 0 {
			return fmt.Errorf("subtype[%d] (%s): data cannot be empty", i, st.Name)
		}
	}
	return nil
}

// GetSubtype retrieves a subtype by name, returning nil if not found.
func (m *Measurement) GetSubtype(name string) *Subtype {
	for i := range m.Subtypes {
		if m.Subtypes[i].Name == name {
			return &m.Subtypes[i]
		}
	}
	return nil
}

// GetOrCreateSubtype retrieves a subtype by name, creating it if it doesn't exist.
func (m *Measurement) GetOrCreateSubtype(name string) *Subtype {
	if st := m.GetSubtype(name); st != nil {
		return st
	}
	m.Subtypes = append(m.Subtypes, Subtype{
		Name: name,
		Data: make(map[string]Reading),
	})
	return &m.Subtypes[len(m.Subtypes)-1]
}

// Has checks if a key exists in the subtype data.
func (st *Subtype) Has(key string) bool {
	_, exists := st.Data[key]
	return exists
}

// Get retrieves a reading by key, returning nil if not found.
func (st *Subtype) Get(key string) Reading {
	return st.Data[key]
}

// GetString attempts to retrieve a string value, returning an error if not
// found or of the wrong type.
func (st *Subtype) GetString(key string) (string, error) {
	reading := st.Data[key]
	if reading == nil {
		return "", fmt.Errorf("key %q not found", key)
	}
	v, ok := reading.Any().(string)
	if !ok {
		return "", fmt.Errorf("key %q is not a string", key)
	}
	return v, nil
}

// GetBool attempts to retrieve a bool value, returning an error if not
// found or of the wrong type.
func (st *Subtype) GetBool(key string) (bool, error) {
	reading := st.Data[key]
	if reading == nil {
		return false, fmt.Errorf("key %q not found", key)
	}
	v, ok := reading.Any().(bool)
	if !ok {
		return false, fmt.Errorf("key %q is not a bool", key)
	}
	return v, nil
}

// GetFloat64 attempts to retrieve a float64 value, returning an error if not
// found or of the wrong type. Integer readings are widened to float64.
func (st *Subtype) GetFloat64(key string) (float64, error) {
	reading := st.Data[key]
	if reading == nil {
		return 0, fmt.Errorf("key %q not found", key)
	}
	switch v := reading.Any().(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("key %q is not a number", key)
	}
}
