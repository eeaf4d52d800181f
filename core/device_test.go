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

func TestReceivedPacketRecordedAtCurrentTick(t *testing.T) {
	w := &fakeWorld{tick: 7}
	a := newTestDevice("a", Position{X: 0, Y: 0}, w)
	b := newTestDevice("b", Position{X: 10, Y: 0}, w)

	proto := a.ProtocolOfKind(KindBLE)
	pkt := NewPacket(b, a, 5, 30)
	a.OnPacket(b, proto, pkt)

	got := a.ReceivedAt(7)
	if assert.Len(t, got, 1) {
		assert.Equal(t, 5, got[0].Size)
	}
	assert.Empty(t, a.ReceivedAt(6))
}

func TestOnPacketForwardsWhenNotDestination(t *testing.T) {
	w := &fakeWorld{}
	a := newTestDevice("a", Position{X: 0, Y: 0}, w)
	b := newTestDevice("b", Position{X: 10, Y: 0}, w)
	c := newTestDevice("c", Position{X: 20, Y: 0}, w)

	protoAB := a.ProtocolOfKind(KindBLE)
	assert.NoError(t, a.ProtocolOfKind(KindBLE).Connect(b))
	assert.NoError(t, b.ProtocolOfKind(KindBLE).Connect(c))

	// b forwards a packet addressed to c, arriving from a. Forwarding
	// queues a SendPacketTask with a transmission delay (size/bandwidth
	// + 1 + latency = 0 + 1 + 1 = 2 ticks for BLE), so b needs two more
	// Steps before c actually receives it.
	pkt := NewPacket(a, c, 1, 10)
	b.OnPacket(a, protoAB, pkt)
	b.Step()
	b.Step()

	assert.Len(t, c.ReceivedAt(0), 1)
}

func TestDropStaleConnectionsEvictsOutOfRangePeers(t *testing.T) {
	w := &fakeWorld{}
	a := newTestDevice("a", Position{X: 0, Y: 0}, w)
	b := newTestDevice("b", Position{X: 10, Y: 0}, w)
	assert.NoError(t, a.ProtocolOfKind(KindBLE).Connect(b))
	assert.True(t, a.IsConnected(b))

	// b drifts out of range of a's protocol.
	moved := &Device{}
	*moved = *b
	moved.pos = Position{X: 1000, Y: 0}
	a.connections[0].Peer = moved

	a.dropStaleConnections()
	assert.False(t, a.IsConnected(moved))
}

func TestEstablishedNeighborsDeduplicatesPeers(t *testing.T) {
	w := &fakeWorld{}
	a := newTestDevice("a", Position{X: 0, Y: 0}, w, bleSpec(),
		ProtocolSpec{Kind: KindWiFi2G, ScanRadius: 50, ScanCost: 1, ScanDuration: 10, ConnectionCost: 2, Latency: 1, Bandwidth: 100})
	b := newTestDevice("b", Position{X: 10, Y: 0}, w, bleSpec(),
		ProtocolSpec{Kind: KindWiFi2G, ScanRadius: 50, ScanCost: 1, ScanDuration: 10, ConnectionCost: 2, Latency: 1, Bandwidth: 100})

	assert.NoError(t, a.ProtocolOfKind(KindBLE).Connect(b))
	assert.NoError(t, a.ProtocolOfKind(KindWiFi2G).Connect(b))

	neighbors := a.EstablishedNeighbors()
	assert.Len(t, neighbors, 1)
	assert.Same(t, b, neighbors[0])
}

func TestScanTaskDiscoversNeighborAndQueuesHandshake(t *testing.T) {
	b := newTestDevice("b", Position{X: 10, Y: 0}, &fakeWorld{})
	w := &listWorld{neighbors: []*Device{b}}
	a := newTestDevice("a", Position{X: 0, Y: 0}, w)

	layout := a.layout.(*FloodLayout)
	a.QueueTask(NewScanTask(a.ProtocolOfKind(KindBLE), layout.onDiscover))

	a.Step() // ScanTask has duration 10; one step just counts down
	for i := 0; i < 9; i++ {
		a.Step()
	}

	// a should now have a pending client-side handshake task for b.
	found := false
	for _, task := range a.tasks {
		if hs, ok := task.(*HandshakeTask); ok && hs.peer == b {
			found = true
		}
	}
	assert.True(t, found)
}
