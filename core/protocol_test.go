//----------------------------------------------------------------------
// This file is part of leatea-routing.
// Copyright (C) 2022 Bernd Fix >Y<
//
// leatea-routing is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// leatea-routing is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func bleSpec() ProtocolSpec {
	return ProtocolSpec{Kind: KindBLE, ScanRadius: 50, ScanCost: 1, ScanDuration: 10, ConnectionCost: 2, Latency: 1, Bandwidth: 10}
}

func newTestDevice(name string, pos Position, w World, specs ...ProtocolSpec) *Device {
	if len(specs) == 0 {
		specs = []ProtocolSpec{bleSpec()}
	}
	return NewDevice(name, specs, pos, w, 5,
		func(d *Device) LayoutAlgorithm { return NewFloodLayout(d, 300) },
		func(d *Device) RoutingAlgorithm { return NewFloodRouting(d) },
	)
}

func TestCanConnectWithinRadiusAndSharedKind(t *testing.T) {
	w := &fakeWorld{}
	a := newTestDevice("a", Position{X: 0, Y: 0}, w)
	b := newTestDevice("b", Position{X: 30, Y: 0}, w)

	proto := a.ProtocolOfKind(KindBLE)
	assert.True(t, proto.CanConnect(b))
}

func TestCanConnectFailsOutsideRadius(t *testing.T) {
	w := &fakeWorld{}
	a := newTestDevice("a", Position{X: 0, Y: 0}, w)
	b := newTestDevice("b", Position{X: 1000, Y: 0}, w)

	proto := a.ProtocolOfKind(KindBLE)
	assert.False(t, proto.CanConnect(b))
}

func TestCanConnectFailsWithoutSharedKind(t *testing.T) {
	w := &fakeWorld{}
	a := newTestDevice("a", Position{X: 0, Y: 0}, w, bleSpec())
	wifi := ProtocolSpec{Kind: KindWiFi2G, ScanRadius: 50, ScanCost: 1, ScanDuration: 10, ConnectionCost: 2, Latency: 1, Bandwidth: 100}
	b := newTestDevice("b", Position{X: 0, Y: 0}, w, wifi)

	proto := a.ProtocolOfKind(KindBLE)
	assert.False(t, proto.CanConnect(b))
}

func TestConnectRecordsConnectionOnLocalSideOnly(t *testing.T) {
	w := &fakeWorld{}
	a := newTestDevice("a", Position{X: 0, Y: 0}, w)
	b := newTestDevice("b", Position{X: 10, Y: 0}, w)

	err := a.ProtocolOfKind(KindBLE).Connect(b)
	assert.NoError(t, err)
	assert.True(t, a.IsConnected(b))
	assert.False(t, b.IsConnected(a))
}

func TestConnectFailsWhenNotAdmissible(t *testing.T) {
	w := &fakeWorld{}
	a := newTestDevice("a", Position{X: 0, Y: 0}, w)
	b := newTestDevice("b", Position{X: 1000, Y: 0}, w)

	err := a.ProtocolOfKind(KindBLE).Connect(b)
	assert.ErrorIs(t, err, ErrInvalidConnection)
}
