/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package benchmark

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCPUMHz(t *testing.T) {
	lines := []string{
		"processor\t: 0",
		"cpu MHz\t\t: 3000.000",
		"processor\t: 1",
		"cpu MHz\t\t: 2000.000",
	}

	assert.InDelta(t, 2500.0, ParseCPUMHz(lines), 0.001)
}

func TestParseCPUMHz_NoEntriesFallsBack(t *testing.T) {
	assert.Equal(t, baselineMHz, ParseCPUMHz(nil))
	assert.Equal(t, baselineMHz, ParseCPUMHz([]string{"processor: 0", "cpu MHz: bogus"}))
}

func TestCyclesPerCall(t *testing.T) {
	// 20ns at 3GHz is 60 cycles
	assert.InDelta(t, 60.0, CyclesPerCall(20, 3000), 0.001)
	// 250ns at 2GHz is 500 cycles
	assert.InDelta(t, 500.0, CyclesPerCall(250, 2000), 0.001)
}

func TestRunner_Run(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping benchmark in short mode")
	}

	r := &Runner{MinDuration: 10 * time.Millisecond}
	res, err := r.Run(context.TODO())
	require.NoError(t, err)

	assert.Positive(t, res.Iterations)
	assert.Positive(t, res.NsPerCall)
	assert.Positive(t, res.CyclesPerCall)
	assert.Positive(t, res.CPUMHz)
}

func TestRunner_RunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.TODO())
	cancel()

	r := New()
	_, err := r.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
