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

// Connection records an admissible, currently-established link from a
// Device to a peer over a given protocol.
type Connection struct {
	Protocol *Protocol
	Peer     *Device
}

// LayoutAlgorithm decides when a Device goes looking for new peers.
// FloodLayout is the only implementation carried here; it is a
// separate interface (rather than a method on Device) because the
// reference model treats discovery policy as pluggable per device.
type LayoutAlgorithm interface {
	Step()
}

// RoutingAlgorithm decides what a Device does with a packet it is not
// the final destination of, and whether it runs any per-tick
// maintenance of its own.
type RoutingAlgorithm interface {
	Step()
	Route(sender *Device, proto *Protocol, pkt Packet)
}

// Device is one node in the mesh: an identity, a position known only
// to its World, a queue of tasks executed one Step at a time, the set
// of protocols it is equipped with, and its currently established
// connections.
type Device struct {
	id   *PeerID
	name string

	pos   Position
	world World

	protocols []*Protocol
	tasks     []Task

	connections []Connection

	layout  LayoutAlgorithm
	routing RoutingAlgorithm

	handshakeTimeout int

	receivedPackets map[int][]Packet

	ownData        uint64
	totalData      uint64
	consumedEnergy uint64

	listener Listener
}

// NewDevice creates a device at pos, equipped with one Protocol
// instance per spec in specs, and wires it to layout/routing
// algorithms built from the supplied factories (which receive the
// fully constructed device, breaking the construction cycle between a
// Device and the algorithms that hold a reference back to it).
func NewDevice(
	name string,
	specs []ProtocolSpec,
	pos Position,
	world World,
	handshakeTimeout int,
	layoutFactory func(*Device) LayoutAlgorithm,
	routingFactory func(*Device) RoutingAlgorithm,
) *Device {
	d := &Device{
		id:               NewPeerPrivate().Public(),
		name:             name,
		pos:              pos,
		world:            world,
		handshakeTimeout: handshakeTimeout,
		receivedPackets:  make(map[int][]Packet),
	}
	for _, spec := range specs {
		d.protocols = append(d.protocols, NewProtocol(spec, d))
	}
	d.layout = layoutFactory(d)
	d.routing = routingFactory(d)
	return d
}

func (d *Device) ID() *PeerID          { return d.id }
func (d *Device) Name() string         { return d.name }
func (d *Device) Position() Position   { return d.pos }
func (d *Device) OwnData() uint64      { return d.ownData }
func (d *Device) TotalData() uint64    { return d.totalData }
func (d *Device) ConsumedEnergy() uint64 { return d.consumedEnergy }
func (d *Device) Protocols() []*Protocol { return Clone(d.protocols) }

// SetListener installs an event callback for this device. Pass nil to
// disable.
func (d *Device) SetListener(l Listener) { d.listener = l }

// HasProtocolKind reports whether the device is equipped with a
// protocol of the given kind.
func (d *Device) HasProtocolKind(kind string) bool {
	for _, p := range d.protocols {
		if p.Kind() == kind {
			return true
		}
	}
	return false
}

// ProtocolOfKind returns the device's protocol instance of the given
// kind, or nil.
func (d *Device) ProtocolOfKind(kind string) *Protocol {
	for _, p := range d.protocols {
		if p.Kind() == kind {
			return p
		}
	}
	return nil
}

// QueueTask appends a task to the device's run queue.
func (d *Device) QueueTask(t Task) {
	d.tasks = append(d.tasks, t)
}

// ReceivedAt returns the packets this device received (as final
// destination) during the given tick.
func (d *Device) ReceivedAt(tick int) []Packet {
	return Clone(d.receivedPackets[tick])
}

// IsConnected reports whether the device currently holds any
// connection to peer, over any protocol.
func (d *Device) IsConnected(peer *Device) bool {
	for _, c := range d.connections {
		if c.Peer == peer {
			return true
		}
	}
	return false
}

// EstablishedNeighbors returns the distinct peers this device is
// currently connected to.
func (d *Device) EstablishedNeighbors() []*Device {
	seen := make(map[*Device]bool)
	var out []*Device
	for _, c := range d.connections {
		if !seen[c.Peer] {
			seen[c.Peer] = true
			out = append(out, c.Peer)
		}
	}
	return out
}

func (d *Device) hasConnection(proto *Protocol, peer *Device) bool {
	for _, c := range d.connections {
		if c.Protocol == proto && c.Peer == peer {
			return true
		}
	}
	return false
}

// ConnectionProtocol returns the protocol this device is currently
// connected to peer over, or nil if no connection exists.
func (d *Device) ConnectionProtocol(peer *Device) *Protocol {
	return d.connectionProtocol(peer)
}

func (d *Device) connectionProtocol(peer *Device) *Protocol {
	for _, c := range d.connections {
		if c.Peer == peer {
			return c.Protocol
		}
	}
	return nil
}

// addConnection records a connection, de-duplicating on (protocol,
// peer) and charging the protocol's connection cost the first time.
func (d *Device) addConnection(proto *Protocol, peer *Device) {
	if d.hasConnection(proto, peer) {
		return
	}
	d.connections = append(d.connections, Connection{Protocol: proto, Peer: peer})
	d.chargeEnergy(proto.ConnectionCost())
	if d.listener != nil {
		d.listener(&Event{Type: EvConnectionEstablished, Peer: d.id, Ref: peer.id})
	}
}

func (d *Device) chargeEnergy(cost int) {
	if cost > 0 {
		d.consumedEnergy += uint64(cost)
	}
}

// dropStaleConnections removes connections whose protocol no longer
// considers the peer admissible (moved out of range).
func (d *Device) dropStaleConnections() {
	kept := d.connections[:0]
	for _, c := range d.connections {
		if c.Protocol.CanConnect(c.Peer) {
			kept = append(kept, c)
			continue
		}
		if d.listener != nil {
			d.listener(&Event{Type: EvConnectionDropped, Peer: d.id, Ref: c.Peer.id})
		}
	}
	d.connections = kept
}

// route hands pkt to the device's routing algorithm, as if sender had
// just forwarded it.
func (d *Device) route(sender *Device, proto *Protocol, pkt Packet) {
	d.routing.Route(sender, proto, pkt)
}

// SendPacket queues a SendPacketTask to deliver pkt to dest. If proto
// is nil and the device already holds a connection to dest, that
// connection's protocol is used.
func (d *Device) SendPacket(proto *Protocol, pkt Packet, dest *Device) {
	if proto == nil {
		proto = d.connectionProtocol(dest)
	}
	if proto == nil {
		if d.listener != nil {
			d.listener(&Event{Type: EvPacketDropped, Peer: d.id, Ref: dest.id})
		}
		return
	}
	d.QueueTask(NewSendPacketTask(dest, proto, pkt))
}

// SendPacketAnyProtocol sends pkt to dest via an existing connection
// if one exists, otherwise defers to the routing algorithm.
func (d *Device) SendPacketAnyProtocol(pkt Packet, dest *Device) {
	if d.IsConnected(dest) {
		d.SendPacket(d.connectionProtocol(dest), pkt, dest)
		return
	}
	d.route(d, nil, pkt)
}

// SendPacketImmediate delivers pkt to its destination within the
// current tick, bypassing the task queue (used by the handshake state
// machine, whose messages are not subject to transmission delay).
func (d *Device) SendPacketImmediate(proto *Protocol, pkt Packet, dest *Device) {
	if pkt.Source == d {
		d.ownData += uint64(pkt.Size)
	}
	d.totalData += uint64(pkt.Size)
	dest.OnPacket(d, proto, pkt)
}

// OnPacket is the device's receive path: unsupported protocols are
// dropped, packets not addressed to this device are routed onward,
// the head task gets first refusal, then a handshake REQUEST starts a
// new server-side task (or is dropped if a handshake with the sender is
// already pending), and anything else is recorded as received.
func (d *Device) OnPacket(sender *Device, proto *Protocol, pkt Packet) {
	if proto != nil && !d.HasProtocolKind(proto.Kind()) {
		if d.listener != nil {
			d.listener(&Event{Type: EvUnsupportedProtocol, Peer: d.id, Ref: sender.id})
		}
		return
	}
	if pkt.Destination != d {
		d.route(sender, proto, pkt)
		return
	}
	if len(d.tasks) > 0 && d.tasks[0].OnPacket(d, sender, proto, pkt) {
		return
	}
	if phase, ok := pkt.HandshakePhaseOf(); ok && phase == PhaseRequest {
		for _, t := range d.tasks {
			if hs, isHS := t.(*HandshakeTask); isHS && hs.peer == sender && hs.Status() == StatusPending {
				return
			}
		}
		local := proto
		if proto != nil {
			local = d.ProtocolOfKind(proto.Kind())
		}
		hs := NewHandshakeTask(sender, local, d.handshakeTimeout, true)
		hs.OnPacket(d, sender, proto, pkt)
		d.QueueTask(hs)
		return
	}
	d.receivedPackets[d.world.Tick()] = append(d.receivedPackets[d.world.Tick()], pkt)
}

// Step advances the device by one tick: layout policy, routing
// maintenance, head-of-queue task progression, stale-connection
// eviction, then a small chance of moving to a neighboring cell.
func (d *Device) Step() {
	d.layout.Step()
	d.routing.Step()

	for len(d.tasks) > 0 && d.tasks[0].Status() != StatusPending {
		d.tasks = d.tasks[1:]
	}
	if len(d.tasks) > 0 {
		head := d.tasks[0]
		head.Step(d)
		if head.Status() != StatusPending {
			d.tasks = d.tasks[1:]
		}
	}

	d.dropStaleConnections()

	const moveProbability = 0.1
	if d.world.Float64() < moveProbability {
		candidates := d.world.Neighborhood(d)
		if len(candidates) > 0 {
			next := candidates[d.world.Intn(len(candidates))]
			d.world.MoveAgent(d, next)
			d.pos = next
		}
	}
}
