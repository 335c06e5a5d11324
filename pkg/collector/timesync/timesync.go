/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package timesync

import (
	"context"
	"log/slog"
	"strings"

	sd "github.com/coreos/go-systemd/v22/dbus"

	"github.com/NVIDIA/perf-advisor/pkg/defaults"
	"github.com/NVIDIA/perf-advisor/pkg/errors"
	"github.com/NVIDIA/perf-advisor/pkg/measurement"
)

// SubtypeServices is the subtype holding per-unit service states.
const SubtypeServices = "services"

// systemdConn is the slice of the go-systemd connection the collector
// uses, extracted so tests can substitute a fake.
type systemdConn interface {
	ListUnitsByNamesContext(ctx context.Context, units []string) ([]sd.UnitStatus, error)
	Close()
}

var newSystemdConn = func(ctx context.Context) (systemdConn, error) {
	return sd.NewSystemConnectionContext(ctx)
}

// Collector queries systemd over D-Bus for the state of time sync
// services (chrony, ntpd, systemd-timesyncd).
type Collector struct {
	// Units are the systemd unit names to query.
	Units []string
}

// Collect reports the load and active state of each configured unit.
// Hosts without a reachable systemd D-Bus endpoint (containers, non-systemd
// distros) yield an UNAVAILABLE error rather than a partial measurement.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if len(c.Units) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "no time sync units configured")
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.DBusTimeout)
	defer cancel()

	conn, err := newSystemdConn(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable,
			"systemd D-Bus endpoint not reachable", err)
	}
	defer conn.Close()

	statuses, err := conn.ListUnitsByNamesContext(ctx, c.Units)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable,
			"failed to query systemd units", err)
	}

	m := &measurement.Measurement{Type: measurement.TypeTimeSync}
	st := m.GetOrCreateSubtype(SubtypeServices)
	for _, unit := range statuses {
		st.Data[unit.Name+"/"+measurement.KeyServiceActiveState] = measurement.Str(unit.ActiveState)
		st.Data[unit.Name+"/"+measurement.KeyServiceLoadState] = measurement.Str(unit.LoadState)

		if unit.ActiveState == "active" {
			slog.Debug("time sync service active", "unit", unit.Name)
		}
	}

	if active := ActiveUnits(st); len(active) > 1 {
		slog.Warn("multiple time sync services active, daemons may be fighting over the clock",
			"units", active)
	}

	return m, nil
}

// ActiveUnits returns the names of units reported active in a services
// subtype. More than one active unit usually indicates conflicting time
// sync daemons fighting over the clock.
func ActiveUnits(st *measurement.Subtype) []string {
	if st == nil {
		return nil
	}
	var active []string
	for key, reading := range st.Data {
		unit, found := strings.CutSuffix(key, "/"+measurement.KeyServiceActiveState)
		if !found {
			continue
		}
		if s, ok := reading.Any().(string); ok && s == "active" {
			active = append(active, unit)
		}
	}
	return active
}
