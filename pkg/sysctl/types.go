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
	"time"

	"github.com/NVIDIA/perf-advisor/pkg/header"
)

// Category groups reference parameters by subsystem.
type Category string

const (
	CategoryVM     Category = "vm"
	CategoryNet    Category = "net"
	CategoryKernel Category = "kernel"
	CategoryFS     Category = "fs"
)

// Param is one entry in the built-in tuning reference.
type Param struct {
	// Key is the dotted parameter name (e.g. vm.swappiness).
	Key string `json:"key" yaml:"key"`

	// Recommended is the expected value expression (e.g. "<= 10").
	Recommended string `json:"recommended" yaml:"recommended"`

	// Category is the owning subsystem.
	Category Category `json:"category" yaml:"category"`

	// Rationale explains why the recommendation exists.
	Rationale string `json:"rationale" yaml:"rationale"`
}

// Status represents the outcome of evaluating a single parameter.
type Status string

const (
	// StatusPassed indicates the live value satisfies the recommendation.
	StatusPassed Status = "passed"

	// StatusFailed indicates the live value does not satisfy the recommendation.
	StatusFailed Status = "failed"

	// StatusSkipped indicates the parameter couldn't be evaluated
	// (unreadable or absent on this host/kernel).
	StatusSkipped Status = "skipped"
)

// AuditStatus represents the overall audit outcome.
type AuditStatus string

const (
	// AuditStatusPass indicates every evaluated parameter passed.
	AuditStatusPass AuditStatus = "pass"

	// AuditStatusFail indicates one or more parameters failed.
	AuditStatusFail AuditStatus = "fail"

	// AuditStatusPartial indicates no failures but some parameters
	// couldn't be evaluated.
	AuditStatusPartial AuditStatus = "partial"
)

// AuditResult represents the complete audit outcome.
type AuditResult struct {
	header.Header `json:",inline" yaml:",inline"`

	// Summary contains aggregate audit statistics.
	Summary Summary `json:"summary" yaml:"summary"`

	// Results contains per-parameter details.
	Results []ParamResult `json:"results" yaml:"results"`
}

// Summary contains aggregate statistics about the audit.
type Summary struct {
	Passed  int         `json:"passed" yaml:"passed"`
	Failed  int         `json:"failed" yaml:"failed"`
	Skipped int         `json:"skipped" yaml:"skipped"`
	Total   int         `json:"total" yaml:"total"`
	Status  AuditStatus `json:"status" yaml:"status"`

	// Duration is how long the audit took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// ParamResult represents the evaluation of a single reference parameter.
type ParamResult struct {
	// Key is the dotted parameter name.
	Key string `json:"key" yaml:"key"`

	// Expected is the recommendation expression from the reference.
	Expected string `json:"expected" yaml:"expected"`

	// Actual is the live value read from /proc/sys.
	Actual string `json:"actual,omitempty" yaml:"actual,omitempty"`

	// Status is the outcome of this evaluation.
	Status Status `json:"status" yaml:"status"`

	// Message provides context, especially for failures and skips.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// NewAuditResult creates an AuditResult with initialized slices.
func NewAuditResult() *AuditResult {
	return &AuditResult{
		Results: make([]ParamResult, 0),
	}
}
