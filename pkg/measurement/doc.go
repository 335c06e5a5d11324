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

// Package measurement defines the data model for collected host facts.
//
// A Measurement groups readings of one category (Clock, TimeSync, Sysctl)
// into named Subtypes, each holding a map of scalar Readings. Readings
// marshal to bare JSON/YAML scalars so snapshots stay human-readable:
//
//	type: Clock
//	subtypes:
//	  - subtype: clocksource
//	    data:
//	      current-clocksource: tsc
//	      vdso-present: true
//
// Collectors produce measurements; the advisor and the sysctl auditor
// consume them via the typed getters (GetString, GetBool, GetFloat64).
package measurement
