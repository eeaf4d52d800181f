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

import "fmt"

// HandshakeState is a position in the three-way REQUEST/RESPONSE/
// ESTABLISH exchange, from either side's point of view.
type HandshakeState int

const (
	hsSendRequest HandshakeState = iota
	hsWaitResponse
	hsSendEstablish
	hsWaitRequest
	hsSendResponse
	hsWaitEstablish
)

// HandshakeTask drives one side of the connection handshake with a
// peer, one tick at a time, failing on timeout or if a connection to
// the peer already exists by the time it would complete.
type HandshakeTask struct {
	baseTask
	peer      *Device
	proto     *Protocol
	remaining int
	state     HandshakeState
	server    bool
}

// NewHandshakeTask creates a handshake task. When server is true the
// task waits for an incoming REQUEST (the peer initiated); otherwise
// it sends the first REQUEST itself.
func NewHandshakeTask(peer *Device, proto *Protocol, timeout int, server bool) *HandshakeTask {
	state := hsSendRequest
	if server {
		state = hsWaitRequest
	}
	return &HandshakeTask{
		baseTask:  baseTask{name: fmt.Sprintf("handshake:%s", peer.Name())},
		peer:      peer,
		proto:     proto,
		remaining: timeout,
		state:     state,
		server:    server,
	}
}

// Peer returns the device this handshake is negotiating with.
func (t *HandshakeTask) Peer() *Device { return t.peer }

func (t *HandshakeTask) OnPacket(d, sender *Device, proto *Protocol, pkt Packet) bool {
	if sender != t.peer {
		return false
	}
	phase, ok := pkt.HandshakePhaseOf()
	if !ok {
		return false
	}
	switch {
	case t.state == hsWaitRequest && phase == PhaseRequest:
		t.state = hsSendResponse
		return true
	case t.state == hsWaitResponse && phase == PhaseResponse:
		t.state = hsSendEstablish
		return true
	case t.state == hsWaitEstablish && phase == PhaseEstablish:
		d.addConnection(t.proto, t.peer)
		t.status = StatusCompleted
		return true
	}
	return false
}

func (t *HandshakeTask) Step(d *Device) {
	if t.status != StatusPending {
		return
	}
	if t.remaining <= 0 || d.IsConnected(t.peer) {
		t.status = StatusFailed
		if d.listener != nil {
			d.listener(&Event{Type: EvHandshakeFailed, Peer: d.ID(), Ref: t.peer.ID()})
		}
		return
	}
	t.remaining--
	switch t.state {
	case hsSendRequest:
		d.SendPacketImmediate(t.proto, NewHandshakePacket(d, t.peer, PhaseRequest), t.peer)
		t.state = hsWaitResponse
	case hsSendResponse:
		d.SendPacketImmediate(t.proto, NewHandshakePacket(d, t.peer, PhaseResponse), t.peer)
		t.state = hsWaitEstablish
	case hsSendEstablish:
		d.SendPacketImmediate(t.proto, NewHandshakePacket(d, t.peer, PhaseEstablish), t.peer)
		d.addConnection(t.proto, t.peer)
		t.status = StatusCompleted
	}
}
