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

// Package sysctl carries the built-in kernel parameter tuning reference
// and audits live /proc/sys values against it.
//
// Each reference entry pairs a dotted parameter key with a recommendation
// expression and a rationale. Expressions support comparison operators:
//
//	">= 262144"  numeric greater-or-equal
//	"<= 10"      numeric less-or-equal
//	"== 1"       equality (numeric when both sides parse, else string)
//	"!= 0"       inequality
//	"1"          bare value, exact match
//
// The audit is read-only: it reports which parameters satisfy the
// reference and which do not, and never writes to /proc/sys.
// Parameters absent on the running kernel are skipped, not failed, so the
// audit is usable across kernel versions.
package sysctl
