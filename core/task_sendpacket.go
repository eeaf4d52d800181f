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

// SendPacketTask waits out a protocol's transmission delay before
// delivering a packet to a connected peer. If the connection goes
// stale before the delay elapses, the packet is instead handed to the
// owning device's routing algorithm to find another path.
type SendPacketTask struct {
	baseTask
	dest  *Device
	proto *Protocol
	pkt   Packet
	delay int
}

// NewSendPacketTask creates a task that delivers pkt to dest over
// proto after proto's transmission delay (size/bandwidth + 1 + latency).
func NewSendPacketTask(dest *Device, proto *Protocol, pkt Packet) *SendPacketTask {
	delay := pkt.Size/proto.Bandwidth() + 1 + proto.Latency()
	return &SendPacketTask{
		baseTask: baseTask{name: "send:" + proto.Kind()},
		dest:     dest,
		proto:    proto,
		pkt:      pkt,
		delay:    delay,
	}
}

func (t *SendPacketTask) Step(d *Device) {
	if !d.hasConnection(t.proto, t.dest) {
		d.route(d, t.proto, t.pkt)
		t.status = StatusCompleted
		return
	}
	t.delay--
	if t.delay <= 0 {
		d.SendPacketImmediate(t.proto, t.pkt, t.dest)
		t.status = StatusCompleted
	}
}
