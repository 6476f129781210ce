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

package systemd

import (
	"context"
	"errors"
	"testing"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/hostcond/pkg/processor"
)

type fakeConn struct {
	statuses []dbus.UnitStatus
	err      error
	asked    []string
	closed   bool
}

func (f *fakeConn) ListUnitsByNamesContext(_ context.Context, units []string) ([]dbus.UnitStatus, error) {
	f.asked = units
	return f.statuses, f.err
}

func (f *fakeConn) Close() { f.closed = true }

func dialer(c *fakeConn) Dialer {
	return func(context.Context) (Conn, error) { return c, nil }
}

func TestRun(t *testing.T) {
	conn := &fakeConn{statuses: []dbus.UnitStatus{
		{Name: "containerd.service", LoadState: "loaded", ActiveState: "active", SubState: "running"},
		{Name: "docker.service", LoadState: "not-found", ActiveState: "inactive", SubState: "dead"},
		{Name: "kubelet.service", LoadState: "loaded", ActiveState: "failed", SubState: "failed"},
	}}

	p := New(processor.NewConfig())
	p.Dial = dialer(conn)
	set := p.Run(context.Background())

	assert.Equal(t, []string{"containerd.service,active,running", "kubelet.service,failed,failed"}, set.Strings(KeyUnits))
	assert.Equal(t, []string{"containerd.service"}, set.Strings(KeyActiveUnits))
	assert.Equal(t, p.Units, conn.asked)
	assert.True(t, conn.closed)
}

func TestRunUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		units []string
		dial  Dialer
	}{
		{
			name:  "no bus",
			units: []string{"sshd.service"},
			dial:  func(context.Context) (Conn, error) { return nil, errors.New("no such file or directory") },
		},
		{
			name:  "list fails",
			units: []string{"sshd.service"},
			dial:  dialer(&fakeConn{err: errors.New("access denied")}),
		},
		{
			name:  "no units configured",
			units: nil,
			dial:  func(context.Context) (Conn, error) { panic("should not dial") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Processor{Units: tt.units, Dial: tt.dial}
			set := p.Run(context.Background())
			assert.Equal(t, []string{}, set.Strings(KeyUnits))
			assert.Equal(t, []string{}, set.Strings(KeyActiveUnits))
		})
	}
}
