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

// FloodRouting forwards every packet it doesn't own to every connected
// peer except the one it came from, decrementing TTL on each hop and
// dropping at TTL 0. As a shortcut, if the device that handed it the
// packet is already connected to the final destination, it forwards
// straight there instead of broadcasting.
type FloodRouting struct {
	device *Device
}

// NewFloodRouting creates a flood router owned by d.
func NewFloodRouting(d *Device) *FloodRouting {
	return &FloodRouting{device: d}
}

func (r *FloodRouting) Step() {}

func (r *FloodRouting) Route(sender *Device, proto *Protocol, pkt Packet) {
	if pkt.TTL <= 0 {
		if r.device.listener != nil {
			r.device.listener(&Event{Type: EvPacketDropped, Peer: r.device.id, Ref: pkt.Destination.id})
		}
		return
	}
	next := pkt.WithTTL(pkt.TTL - 1)
	if sender.IsConnected(next.Destination) {
		var local *Protocol
		if proto != nil {
			local = r.device.ProtocolOfKind(proto.Kind())
		}
		r.device.SendPacket(local, next, next.Destination)
		return
	}
	for _, c := range r.device.connections {
		if c.Peer != sender {
			r.device.SendPacket(c.Protocol, next, c.Peer)
		}
	}
}

// RandomRouting forwards a packet to one uniformly chosen established
// neighbor rather than broadcasting to all of them. established
// neighbors is defined as the projection of the device's current
// connection set onto peers (EstablishedNeighbors), resolving the
// reference model's reliance on an undefined device attribute of the
// same name.
type RandomRouting struct {
	device *Device
}

// NewRandomRouting creates a random router owned by d.
func NewRandomRouting(d *Device) *RandomRouting {
	return &RandomRouting{device: d}
}

func (r *RandomRouting) Step() {}

func (r *RandomRouting) Route(sender *Device, proto *Protocol, pkt Packet) {
	if pkt.TTL <= 0 {
		return
	}
	neighbors := r.device.EstablishedNeighbors()
	if len(neighbors) == 0 {
		return
	}
	next := pkt.WithTTL(pkt.TTL - 1)
	peer := neighbors[r.device.world.Intn(len(neighbors))]
	r.device.SendPacket(r.device.connectionProtocol(peer), next, peer)
}
