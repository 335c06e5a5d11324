/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package catalog

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/NVIDIA/perf-advisor/pkg/header"
)

// APIVersion is the schema version for catalog resources.
const APIVersion = "kairos/v1alpha1"

// entries is the built-in diagnostic reference. Keep commands copy-paste
// runnable on a stock Linux box with sysstat installed.
var entries = []Entry{
	{
		Name:        "uptime",
		Category:    CategoryCPU,
		Command:     "uptime",
		Description: "Load averages over 1/5/15 minutes; a rising 1-minute average means load is still building.",
	},
	{
		Name:        "vmstat",
		Category:    CategoryCPU,
		Command:     "vmstat 1",
		Description: "Run queue (r), free memory, swap in/out, and CPU split. r greater than CPU count means saturation.",
	},
	{
		Name:        "mpstat",
		Category:    CategoryCPU,
		Command:     "mpstat -P ALL 1",
		Description: "Per-CPU utilization; a single hot CPU with the rest idle points at a single-threaded bottleneck.",
	},
	{
		Name:        "pidstat",
		Category:    CategoryCPU,
		Command:     "pidstat 1",
		Description: "Per-process CPU usage over time, rolling output suitable for watching a suspect process.",
	},
	{
		Name:        "top",
		Category:    CategoryCPU,
		Command:     "top",
		Description: "Process overview; press 1 for per-CPU view. Short-lived processes can be invisible between refreshes.",
	},
	{
		Name:        "perf-stat",
		Category:    CategoryCPU,
		Command:     "perf stat -d -- sleep 10",
		Description: "IPC, cache miss rates, and branch misses for the whole system over a 10s window.",
		Caution:     "Needs perf_event access (perf_event_paranoid or CAP_PERFMON).",
	},
	{
		Name:        "perf-record",
		Category:    CategoryCPU,
		Command:     "perf record -F 99 -a -g -- sleep 30 && perf report",
		Description: "System-wide stack sampling at 99 Hz for flame-graph style analysis of where CPU time goes.",
		Caution:     "Writes perf.data in the current directory; sampling adds a few percent overhead.",
	},
	{
		Name:        "free",
		Category:    CategoryMemory,
		Command:     "free -m",
		Description: "Memory usage; the available column is what matters, buff/cache is reclaimable.",
	},
	{
		Name:        "sar-memory",
		Category:    CategoryMemory,
		Command:     "sar -r 1",
		Description: "Memory utilization over time including kbcommit, useful for spotting slow leaks.",
	},
	{
		Name:        "pidstat-memory",
		Category:    CategoryMemory,
		Command:     "pidstat -r 1",
		Description: "Per-process fault rates and RSS; majflt/s above zero means the process is paging.",
	},
	{
		Name:        "iostat",
		Category:    CategoryIO,
		Command:     "iostat -xz 1",
		Description: "Per-device IOPS, throughput, await, and utilization. await far above device norms means queueing.",
	},
	{
		Name:        "sar-disk",
		Category:    CategoryIO,
		Command:     "sar -d 1",
		Description: "Device-level I/O rates over time, same counters as iostat but retained in sar history.",
	},
	{
		Name:        "pidstat-io",
		Category:    CategoryIO,
		Command:     "pidstat -d 1",
		Description: "Per-process read/write throughput, identifies which process drives disk load.",
	},
	{
		Name:        "sar-network",
		Category:    CategoryNetwork,
		Command:     "sar -n DEV 1",
		Description: "Per-interface packet and byte rates; check rxkB/s and txkB/s against the interface limit.",
	},
	{
		Name:        "sar-tcp",
		Category:    CategoryNetwork,
		Command:     "sar -n TCP,ETCP 1",
		Description: "TCP connection rates and retransmits; retrans/s above zero on a LAN deserves attention.",
	},
	{
		Name:        "ss",
		Category:    CategoryNetwork,
		Command:     "ss -tinp",
		Description: "Per-socket TCP state including cwnd, rtt, and retransmit counters.",
	},
	{
		Name:        "current-clocksource",
		Category:    CategoryTimekeeping,
		Command:     "cat /sys/devices/system/clocksource/clocksource0/current_clocksource",
		Description: "The clock source serving gettimeofday/clock_gettime. tsc is the fast path; hpet and acpi_pm are slow legacy hardware.",
	},
	{
		Name:        "available-clocksources",
		Category:    CategoryTimekeeping,
		Command:     "cat /sys/devices/system/clocksource/clocksource0/available_clocksource",
		Description: "Clock sources this kernel can switch to. If tsc is listed but not current, check dmesg for why it was demoted.",
	},
	{
		Name:        "tsc-flags",
		Category:    CategoryTimekeeping,
		Command:     "grep -o 'constant_tsc\\|nonstop_tsc\\|rdtscp' /proc/cpuinfo | sort -u",
		Description: "TSC capability flags. constant_tsc plus nonstop_tsc means the TSC is safe as a clock source.",
	},
	{
		Name:        "vdso-check",
		Category:    CategoryTimekeeping,
		Command:     "grep vdso /proc/self/maps",
		Description: "Confirms the vDSO is mapped; without it every clock read is a full syscall.",
	},
	{
		Name:        "clock-drift",
		Category:    CategoryTimekeeping,
		Command:     "chronyc tracking",
		Description: "Offset and drift against NTP sources. System time wrong by seconds breaks TLS and distributed traces.",
	},
	{
		Name:        "timer-interrupts",
		Category:    CategoryTimekeeping,
		Command:     "grep -E 'LOC|arch_timer' /proc/interrupts",
		Description: "Local timer interrupt counts per CPU; wildly uneven counts suggest pinned timer load.",
	},
}

// List returns catalog entries matching the query, sorted by category then
// name. A zero-value query returns the full catalog.
func List(q Query) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if q.matches(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Query filters catalog entries. Zero value matches everything.
type Query struct {
	// Category restricts results to one category when set.
	Category Category

	// Keyword is a case-insensitive substring matched against the entry
	// name, command, and description.
	Keyword string
}

func (q Query) matches(e Entry) bool {
	if q.Category != "" && e.Category != q.Category {
		return false
	}
	if q.Keyword == "" {
		return true
	}
	kw := strings.ToLower(q.Keyword)
	return strings.Contains(strings.ToLower(e.Name), kw) ||
		strings.Contains(strings.ToLower(e.Command), kw) ||
		strings.Contains(strings.ToLower(e.Description), kw)
}

// New builds a serializable Catalog resource for the given query.
func New(q Query, version string) *Catalog {
	c := &Catalog{Entries: List(q)}
	c.Init(header.KindCatalog, APIVersion, version)
	if q.Category != "" {
		c.Metadata["category"] = q.Category.String()
	}
	if q.Keyword != "" {
		c.Metadata["keyword"] = q.Keyword
	}
	return c
}

// WriteTable renders the catalog grouped by category, with each category's
// display name as a section heading. Entries arrive sorted from List, so
// a heading is emitted whenever the category changes.
func (c *Catalog) WriteTable(out io.Writer) error {
	if len(c.Entries) == 0 {
		_, err := fmt.Fprintln(out, "<empty>")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	var current Category
	for i, e := range c.Entries {
		if i == 0 || e.Category != current {
			if i > 0 {
				fmt.Fprintln(tw)
			}
			current = e.Category
			fmt.Fprintf(tw, "%s\n", current.Display())
			fmt.Fprintln(tw, "NAME\tCOMMAND\tDESCRIPTION")
		}
		desc := e.Description
		if e.Caution != "" {
			desc += " Caution: " + e.Caution
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Command, desc)
	}
	return tw.Flush()
}
