/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package timesync

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"testing"

	sd "github.com/coreos/go-systemd/v22/dbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/perf-advisor/pkg/errors"
	"github.com/NVIDIA/perf-advisor/pkg/measurement"
)

type fakeConn struct {
	statuses []sd.UnitStatus
	err      error
	closed   bool
}

func (f *fakeConn) ListUnitsByNamesContext(_ context.Context, _ []string) ([]sd.UnitStatus, error) {
	return f.statuses, f.err
}

func (f *fakeConn) Close() { f.closed = true }

func withFakeConn(t *testing.T, conn *fakeConn, connErr error) {
	t.Helper()
	prev := newSystemdConn
	newSystemdConn = func(_ context.Context) (systemdConn, error) {
		if connErr != nil {
			return nil, connErr
		}
		return conn, nil
	}
	t.Cleanup(func() { newSystemdConn = prev })
}

func TestCollect_UnitStates(t *testing.T) {
	conn := &fakeConn{
		statuses: []sd.UnitStatus{
			{Name: "chronyd.service", LoadState: "loaded", ActiveState: "active"},
			{Name: "ntpd.service", LoadState: "not-found", ActiveState: "inactive"},
		},
	}
	withFakeConn(t, conn, nil)

	c := &Collector{Units: []string{"chronyd.service", "ntpd.service"}}
	m, err := c.Collect(t.Context())
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Equal(t, measurement.TypeTimeSync, m.Type)
	assert.True(t, conn.closed)

	st := m.GetSubtype(SubtypeServices)
	require.NotNil(t, st)

	state, err := st.GetString("chronyd.service/" + measurement.KeyServiceActiveState)
	require.NoError(t, err)
	assert.Equal(t, "active", state)

	load, err := st.GetString("ntpd.service/" + measurement.KeyServiceLoadState)
	require.NoError(t, err)
	assert.Equal(t, "not-found", load)
}

func TestCollect_WarnsOnConflictingDaemons(t *testing.T) {
	conn := &fakeConn{
		statuses: []sd.UnitStatus{
			{Name: "chronyd.service", LoadState: "loaded", ActiveState: "active"},
			{Name: "ntpd.service", LoadState: "loaded", ActiveState: "active"},
		},
	}
	withFakeConn(t, conn, nil)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	c := &Collector{Units: []string{"chronyd.service", "ntpd.service"}}
	_, err := c.Collect(t.Context())
	require.NoError(t, err)

	logged := buf.String()
	assert.Contains(t, logged, "multiple time sync services active")
	assert.Contains(t, logged, "chronyd.service")
	assert.Contains(t, logged, "ntpd.service")
}

func TestCollect_DBusUnavailable(t *testing.T) {
	withFakeConn(t, nil, stderrors.New("dial unix /run/systemd/private: no such file"))

	c := &Collector{Units: []string{"chronyd.service"}}
	_, err := c.Collect(t.Context())
	require.Error(t, err)

	var serr *errors.StructuredError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, errors.ErrCodeUnavailable, serr.Code)
}

func TestCollect_QueryError(t *testing.T) {
	conn := &fakeConn{err: stderrors.New("connection reset")}
	withFakeConn(t, conn, nil)

	c := &Collector{Units: []string{"chronyd.service"}}
	_, err := c.Collect(t.Context())
	require.Error(t, err)
	assert.True(t, conn.closed)
}

func TestCollect_NoUnits(t *testing.T) {
	c := &Collector{}
	_, err := c.Collect(t.Context())
	require.Error(t, err)

	var serr *errors.StructuredError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, errors.ErrCodeInvalidRequest, serr.Code)
}

func TestActiveUnits(t *testing.T) {
	st := &measurement.Subtype{
		Name: SubtypeServices,
		Data: map[string]measurement.Reading{
			"chronyd.service/active-state":           measurement.Str("active"),
			"chronyd.service/load-state":             measurement.Str("loaded"),
			"systemd-timesyncd.service/active-state": measurement.Str("inactive"),
		},
	}

	active := ActiveUnits(st)
	assert.Equal(t, []string{"chronyd.service"}, active)

	assert.Nil(t, ActiveUnits(nil))
}
