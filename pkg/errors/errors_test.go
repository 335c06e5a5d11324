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

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredError_Error(t *testing.T) {
	e := New(ErrCodeNotFound, "clocksource file missing")
	assert.Equal(t, "[NOT_FOUND] clocksource file missing", e.Error())

	wrapped := Wrap(ErrCodeUnavailable, "dbus connect", fmt.Errorf("no such socket"))
	assert.Equal(t, "[UNAVAILABLE] dbus connect: no such socket", wrapped.Error())
}

func TestStructuredError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	e := Wrap(ErrCodeInternal, "something broke", cause)

	require.ErrorIs(t, e, cause)

	var se *StructuredError
	require.ErrorAs(t, fmt.Errorf("outer: %w", e), &se)
	assert.Equal(t, ErrCodeInternal, se.Code)
}

func TestNewWithContext(t *testing.T) {
	e := NewWithContext(ErrCodeInvalidRequest, "bad expression", map[string]any{
		"expression": ">=",
	})
	assert.Equal(t, ErrCodeInvalidRequest, e.Code)
	assert.Equal(t, ">=", e.Context["expression"])
	assert.Nil(t, stderrors.Unwrap(e))
}
