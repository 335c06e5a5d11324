package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/perf-advisor/pkg/collector"
	"github.com/NVIDIA/perf-advisor/pkg/defaults"
	"github.com/NVIDIA/perf-advisor/pkg/errors"
	"github.com/NVIDIA/perf-advisor/pkg/header"
	"github.com/NVIDIA/perf-advisor/pkg/measurement"
	"github.com/NVIDIA/perf-advisor/pkg/serializer"
)

// APIVersion is the schema version for snapshot resources.
const APIVersion = "kairos/v1alpha1"

// HostSnapshotter collects timekeeping measurements from the current host.
// It coordinates the clock, time sync, and sysctl collectors in parallel
// and serializes the resulting snapshot.
type HostSnapshotter struct {
	// Version is the snapshotter version.
	Version string

	// Factory is the collector factory to use. If nil, the default factory is used.
	Factory collector.Factory

	// Serializer is the serializer to use for output. If nil, a default
	// stdout JSON serializer is used.
	Serializer serializer.Serializer

	// CollectTimeout bounds each collector individually. Zero means
	// defaults.CollectorTimeout.
	CollectTimeout time.Duration
}

// Measure collects timekeeping measurements and serializes the snapshot.
// Collectors run in parallel using errgroup, each bounded by
// CollectTimeout. The time sync collector is advisory: hosts without a
// systemd D-Bus endpoint still produce a valid snapshot. Clock or sysctl
// collection failures fail the whole operation.
func (n *HostSnapshotter) Measure(ctx context.Context) (*Snapshot, error) {
	if n.Factory == nil {
		n.Factory = collector.NewDefaultFactory()
	}

	timeout := n.CollectTimeout
	if timeout <= 0 {
		timeout = defaults.CollectorTimeout
	}

	slog.Debug("starting host snapshot")

	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	snap := NewSnapshot()
	snap.Measurements = make([]*measurement.Measurement, 0, 3)
	snap.Init(header.KindSnapshot, APIVersion, n.Version)
	if hostname, err := os.Hostname(); err == nil {
		snap.Metadata["source-host"] = hostname
	}

	g.Go(func() error {
		collectorStart := time.Now()
		defer func() {
			snapshotCollectorDuration.WithLabelValues("clock").Observe(time.Since(collectorStart).Seconds())
		}()
		slog.Debug("collecting clock source facts")
		cctx, cancel := context.WithTimeout(gctx, timeout)
		defer cancel()
		cc := n.Factory.CreateClockCollector()
		clock, err := cc.Collect(cctx)
		if err != nil {
			slog.Error("failed to collect clock facts", slog.String("error", err.Error()))
			return fmt.Errorf("failed to collect clock facts: %w", err)
		}
		mu.Lock()
		snap.Measurements = append(snap.Measurements, clock)
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		collectorStart := time.Now()
		defer func() {
			snapshotCollectorDuration.WithLabelValues("timesync").Observe(time.Since(collectorStart).Seconds())
		}()
		slog.Debug("collecting time sync services")
		tctx, cancel := context.WithTimeout(gctx, timeout)
		defer cancel()
		tc := n.Factory.CreateTimeSyncCollector()
		timesync, err := tc.Collect(tctx)
		if err != nil {
			// Containers and non-systemd hosts have no D-Bus endpoint;
			// the snapshot is still usable without service states.
			slog.Warn("time sync state unavailable, continuing without it",
				slog.String("error", err.Error()))
			return nil
		}
		mu.Lock()
		snap.Measurements = append(snap.Measurements, timesync)
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		collectorStart := time.Now()
		defer func() {
			snapshotCollectorDuration.WithLabelValues("sysctl").Observe(time.Since(collectorStart).Seconds())
		}()
		slog.Debug("collecting sysctl parameters")
		sctx, cancel := context.WithTimeout(gctx, timeout)
		defer cancel()
		sc := n.Factory.CreateSysctlCollector()
		params, err := sc.Collect(sctx)
		if err != nil {
			slog.Error("failed to collect sysctl parameters", slog.String("error", err.Error()))
			return fmt.Errorf("failed to collect sysctl parameters: %w", err)
		}
		mu.Lock()
		snap.Measurements = append(snap.Measurements, params)
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if len(snap.Measurements) == 0 {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return nil, errors.New(errors.ErrCodeUnavailable, "no measurements collected")
	}

	snapshotCollectionTotal.WithLabelValues("success").Inc()
	snapshotMeasurementCount.Set(float64(len(snap.Measurements)))

	slog.Debug("snapshot collection complete", slog.Int("measurements", len(snap.Measurements)))

	if n.Serializer == nil {
		n.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	if err := n.Serializer.Serialize(ctx, snap); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to serialize: %w", err)
	}

	return snap, nil
}
