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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReadingMarshalsToBareScalar(t *testing.T) {
	m := &Measurement{
		Type: TypeClock,
		Subtypes: []Subtype{
			{
				Name: "clocksource",
				Data: map[string]Reading{
					KeyClockSource: Str("tsc"),
					KeyVDSOPresent: Bool(true),
					KeyCPUMHz:      Float64(2994.375),
				},
			},
		},
	}

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"current-clocksource":"tsc"`)
	assert.Contains(t, string(b), `"vdso-present":true`)
}

func TestSubtypeRoundTripJSON(t *testing.T) {
	src := Subtype{
		Name: "clocksource",
		Data: map[string]Reading{
			KeyClockSource:     Str("kvm-clock"),
			KeyTSCSupported:    Bool(false),
			KeyBenchmarkCycles: Float64(812.5),
		},
	}

	b, err := json.Marshal(src)
	require.NoError(t, err)

	var dst Subtype
	require.NoError(t, json.Unmarshal(b, &dst))

	assert.Equal(t, "clocksource", dst.Name)

	cs, err := dst.GetString(KeyClockSource)
	require.NoError(t, err)
	assert.Equal(t, "kvm-clock", cs)

	supported, err := dst.GetBool(KeyTSCSupported)
	require.NoError(t, err)
	assert.False(t, supported)

	cycles, err := dst.GetFloat64(KeyBenchmarkCycles)
	require.NoError(t, err)
	assert.InDelta(t, 812.5, cycles, 0.001)
}

func TestSubtypeRoundTripYAML(t *testing.T) {
	src := Subtype{
		Name: "services",
		Data: map[string]Reading{
			"chronyd/" + KeyServiceActiveState: Str("active"),
		},
	}

	b, err := yaml.Marshal(src)
	require.NoError(t, err)

	var dst Subtype
	require.NoError(t, yaml.Unmarshal(b, &dst))

	state, err := dst.GetString("chronyd/" + KeyServiceActiveState)
	require.NoError(t, err)
	assert.Equal(t, "active", state)
}

func TestMeasurement_Validate(t *testing.T) {
	m := &Measurement{}
	assert.Error(t, m.Validate())

	m.Type = TypeSysctl
	assert.Error(t, m.Validate(), "no subtypes")

	m.Subtypes = []Subtype{{Name: "params", Data: map[string]Reading{}}}
	assert.Error(t, m.Validate(), "empty subtype data")

	m.Subtypes[0].Data["vm.swappiness"] = Str("60")
	assert.NoError(t, m.Validate())
}

func TestGetOrCreateSubtype(t *testing.T) {
	m := &Measurement{Type: TypeClock}

	st := m.GetOrCreateSubtype("clocksource")
	st.Data[KeyClockSource] = Str("hpet")

	// second call returns the same subtype
	again := m.GetOrCreateSubtype("clocksource")
	assert.True(t, again.Has(KeyClockSource))
	assert.Len(t, m.Subtypes, 1)
}

func TestGetFloat64WidensIntegers(t *testing.T) {
	st := Subtype{Data: map[string]Reading{
		KeyBenchmarkIterations: Int64(1000000),
	}}

	v, err := st.GetFloat64(KeyBenchmarkIterations)
	require.NoError(t, err)
	assert.Equal(t, 1e6, v)
}

func TestToReadingUnknownTypeDegradesToString(t *testing.T) {
	r := ToReading(struct{ X int }{X: 1})
	_, isStr := r.Any().(string)
	assert.True(t, isStr)
}

func TestParseType(t *testing.T) {
	mt, ok := ParseType("Clock")
	assert.True(t, ok)
	assert.Equal(t, TypeClock, mt)

	_, ok = ParseType("GPU")
	assert.False(t, ok)
}
