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
	"path/filepath"
	"sort"
	"strings"
)

// procSysRoot is the base path for sysctl parameters. Overridable in tests.
var procSysRoot = "/proc/sys"

// reference is the built-in tuning table. Recommendations target
// throughput/latency-sensitive server workloads; they are advisory and
// the audit only reports, never writes.
var reference = []Param{
	// Memory management
	{
		Key:         "vm.swappiness",
		Recommended: "<= 10",
		Category:    CategoryVM,
		Rationale:   "avoid swapping anonymous memory under pressure on latency-sensitive hosts",
	},
	{
		Key:         "vm.dirty_ratio",
		Recommended: "<= 15",
		Category:    CategoryVM,
		Rationale:   "bound the dirty page backlog so writeback bursts do not stall writers",
	},
	{
		Key:         "vm.dirty_background_ratio",
		Recommended: "<= 5",
		Category:    CategoryVM,
		Rationale:   "start background writeback early to smooth I/O",
	},
	{
		Key:         "vm.max_map_count",
		Recommended: ">= 262144",
		Category:    CategoryVM,
		Rationale:   "mmap-heavy workloads (databases, JVMs) exhaust the default map limit",
	},
	{
		Key:         "vm.min_free_kbytes",
		Recommended: ">= 65536",
		Category:    CategoryVM,
		Rationale:   "keep enough free pages for atomic allocations under load",
	},

	// Networking
	{
		Key:         "net.core.somaxconn",
		Recommended: ">= 1024",
		Category:    CategoryNet,
		Rationale:   "default accept backlog drops connections during bursts",
	},
	{
		Key:         "net.core.netdev_max_backlog",
		Recommended: ">= 2000",
		Category:    CategoryNet,
		Rationale:   "absorb per-CPU ingress bursts before the kernel drops packets",
	},
	{
		Key:         "net.core.rmem_max",
		Recommended: ">= 16777216",
		Category:    CategoryNet,
		Rationale:   "allow large receive buffers for high bandwidth-delay paths",
	},
	{
		Key:         "net.core.wmem_max",
		Recommended: ">= 16777216",
		Category:    CategoryNet,
		Rationale:   "allow large send buffers for high bandwidth-delay paths",
	},
	{
		Key:         "net.ipv4.tcp_max_syn_backlog",
		Recommended: ">= 4096",
		Category:    CategoryNet,
		Rationale:   "survive SYN bursts without dropping handshakes",
	},
	{
		Key:         "net.ipv4.tcp_fin_timeout",
		Recommended: "<= 30",
		Category:    CategoryNet,
		Rationale:   "reclaim FIN_WAIT_2 sockets faster on connection-churny services",
	},
	{
		Key:         "net.ipv4.tcp_tw_reuse",
		Recommended: "== 1",
		Category:    CategoryNet,
		Rationale:   "reuse TIME_WAIT sockets for outbound connections to avoid ephemeral port exhaustion",
	},

	// Kernel / scheduler
	{
		Key:         "kernel.numa_balancing",
		Recommended: "== 0",
		Category:    CategoryKernel,
		Rationale:   "automatic NUMA page migration causes latency spikes; pin memory explicitly instead",
	},
	{
		Key:         "kernel.timer_migration",
		Recommended: "== 0",
		Category:    CategoryKernel,
		Rationale:   "keep timers on their CPUs for predictable wakeup latency on pinned workloads",
	},
	{
		Key:         "kernel.sched_rt_runtime_us",
		Recommended: "!= 0",
		Category:    CategoryKernel,
		Rationale:   "a zero RT budget starves real-time threads entirely",
	},

	// Filesystem
	{
		Key:         "fs.file-max",
		Recommended: ">= 1000000",
		Category:    CategoryFS,
		Rationale:   "connection-heavy services exhaust the default file handle limit",
	},
	{
		Key:         "fs.aio-max-nr",
		Recommended: ">= 1048576",
		Category:    CategoryFS,
		Rationale:   "async-I/O engines (io_uring/libaio databases) need headroom for in-flight requests",
	},
	{
		Key:         "fs.inotify.max_user_watches",
		Recommended: ">= 524288",
		Category:    CategoryFS,
		Rationale:   "file watchers (build tools, agents) hit the default inotify limit",
	},
}

// Reference returns the built-in tuning table sorted by key.
func Reference() []Param {
	params := make([]Param, len(reference))
	copy(params, reference)
	sort.Slice(params, func(i, j int) bool {
		return params[i].Key < params[j].Key
	})
	return params
}

// ReferenceByCategory returns the reference parameters for one category,
// sorted by key.
func ReferenceByCategory(c Category) []Param {
	params := make([]Param, 0)
	for _, p := range reference {
		if p.Category == c {
			params = append(params, p)
		}
	}
	sort.Slice(params, func(i, j int) bool {
		return params[i].Key < params[j].Key
	})
	return params
}

// ParamPath converts a dotted parameter key to its /proc/sys file path
// (e.g. vm.swappiness -> /proc/sys/vm/swappiness).
func ParamPath(key string) string {
	return filepath.Join(procSysRoot, strings.ReplaceAll(key, ".", "/"))
}
