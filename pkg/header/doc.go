// Package header defines the shared resource envelope (kind, apiVersion,
// metadata) embedded by kairos resources such as snapshots, verdicts, and
// audit results.
package header
