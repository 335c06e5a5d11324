/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package sysctl

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/perf-advisor/pkg/errors"
	"github.com/NVIDIA/perf-advisor/pkg/measurement"
	"github.com/NVIDIA/perf-advisor/pkg/sysctl"
)

// SubtypeParams is the subtype holding live kernel parameter values.
const SubtypeParams = "params"

// Collector reads the live values of the kernel parameters named by the
// built-in tuning reference.
type Collector struct {
	// ReadValue reads one parameter by dotted key. Nil means the live
	// /proc/sys reader.
	ReadValue func(key string) (string, error)
}

// Collect reads each reference parameter from /proc/sys, keyed by dotted
// name. Parameters absent on this kernel are skipped. An error is only
// returned when no parameter could be read at all.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	read := c.ReadValue
	if read == nil {
		read = sysctl.ReadValue
	}

	m := &measurement.Measurement{Type: measurement.TypeSysctl}
	st := m.GetOrCreateSubtype(SubtypeParams)

	for _, param := range sysctl.Reference() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		value, err := read(param.Key)
		if err != nil {
			slog.Debug("sysctl parameter not readable", "key", param.Key, "error", err)
			continue
		}
		st.Data[param.Key] = measurement.Str(value)
	}

	if len(st.Data) == 0 {
		return nil, errors.New(errors.ErrCodeUnavailable,
			"no sysctl parameters readable on this host")
	}

	return m, nil
}
