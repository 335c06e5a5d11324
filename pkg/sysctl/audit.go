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

package sysctl

import (
	"context"
	"log/slog"
	"time"

	"github.com/NVIDIA/perf-advisor/pkg/collector/file"
	"github.com/NVIDIA/perf-advisor/pkg/header"
)

// APIVersion is the schema version for audit result resources.
const APIVersion = "kairos/v1alpha1"

// Auditor evaluates the built-in tuning reference against live values.
type Auditor struct {
	// Version is the auditor version (typically the CLI version).
	Version string

	// readValue resolves a dotted parameter key to its value. Nil means
	// the live /proc/sys reader.
	readValue func(key string) (string, error)
}

// Option is a functional option for configuring Auditor instances.
type Option func(*Auditor)

// WithVersion returns an Option that sets the Auditor version string.
func WithVersion(version string) Option {
	return func(a *Auditor) {
		a.Version = version
	}
}

// WithReadValue returns an Option that replaces the live /proc/sys reader,
// so the audit can run against captured values instead of the running host.
func WithReadValue(read func(key string) (string, error)) Option {
	return func(a *Auditor) {
		a.readValue = read
	}
}

// New creates a new Auditor with the provided options.
func New(opts ...Option) *Auditor {
	a := &Auditor{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ReadValue reads the live value of a dotted sysctl key from /proc/sys.
// Multi-line values are collapsed to the first line, which is sufficient
// for every parameter in the reference.
func ReadValue(key string) (string, error) {
	return file.NewParser().GetValue(ParamPath(key))
}

// Audit evaluates every reference parameter against its live value and
// returns the aggregate result. Parameters that cannot be read (absent on
// this kernel, or insufficient permissions) are recorded as skipped; the
// audit itself only fails on context cancellation.
func (a *Auditor) Audit(ctx context.Context) (*AuditResult, error) {
	start := time.Now()

	result := NewAuditResult()
	result.Init(header.KindAuditResult, APIVersion, a.Version)

	read := a.readValue
	if read == nil {
		read = ReadValue
	}

	for _, param := range Reference() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result.Results = append(result.Results, evaluateParam(param, read))
	}

	for _, pr := range result.Results {
		switch pr.Status {
		case StatusPassed:
			result.Summary.Passed++
		case StatusFailed:
			result.Summary.Failed++
		case StatusSkipped:
			result.Summary.Skipped++
		}
	}
	result.Summary.Total = len(result.Results)
	result.Summary.Status = summaryStatus(result.Summary)
	result.Summary.Duration = time.Since(start)

	slog.Debug("sysctl audit complete",
		"passed", result.Summary.Passed,
		"failed", result.Summary.Failed,
		"skipped", result.Summary.Skipped,
		"status", result.Summary.Status)

	return result, nil
}

// evaluateParam evaluates a single reference parameter against the value
// resolved by read.
func evaluateParam(param Param, read func(string) (string, error)) ParamResult {
	pr := ParamResult{
		Key:      param.Key,
		Expected: param.Recommended,
	}

	actual, err := read(param.Key)
	if err != nil {
		pr.Status = StatusSkipped
		pr.Message = "parameter not readable on this host"
		slog.Debug("skipping sysctl parameter", "key", param.Key, "error", err)
		return pr
	}
	pr.Actual = actual

	expr, err := ParseExpression(param.Recommended)
	if err != nil {
		pr.Status = StatusSkipped
		pr.Message = err.Error()
		return pr
	}

	passed, err := expr.Evaluate(actual)
	if err != nil {
		pr.Status = StatusSkipped
		pr.Message = err.Error()
		return pr
	}

	if passed {
		pr.Status = StatusPassed
	} else {
		pr.Status = StatusFailed
		pr.Message = param.Rationale
	}
	return pr
}

func summaryStatus(s Summary) AuditStatus {
	switch {
	case s.Failed > 0:
		return AuditStatusFail
	case s.Skipped > 0:
		return AuditStatusPartial
	default:
		return AuditStatusPass
	}
}
