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

// DefaultPacketTTL is the time-to-live new application packets are
// given when no explicit TTL is supplied.
const DefaultPacketTTL = 30

// HandshakePhase tags a handshake packet with its position in the
// three-way REQUEST/RESPONSE/ESTABLISH exchange.
type HandshakePhase int

const (
	PhaseRequest HandshakePhase = iota
	PhaseResponse
	PhaseEstablish
)

func (p HandshakePhase) String() string {
	switch p {
	case PhaseRequest:
		return "REQUEST"
	case PhaseResponse:
		return "RESPONSE"
	case PhaseEstablish:
		return "ESTABLISH"
	default:
		return "UNKNOWN"
	}
}

// Packet is an immutable application message. HandshakePacket is a
// variant carrying a Phase tag, not a distinct Go type: the zero value
// of the phase pointer marks an ordinary (non-handshake) packet, which
// keeps the common dispatch path in Device.OnPacket free of any type
// switch between two packet shapes.
type Packet struct {
	Source      *Device
	Destination *Device
	Size        int
	TTL         int
	InitialTTL  int

	handshake *HandshakePhase
}

// NewPacket creates an ordinary application packet.
func NewPacket(source, destination *Device, size int, ttl int) Packet {
	return Packet{Source: source, Destination: destination, Size: size, TTL: ttl, InitialTTL: ttl}
}

// NewHandshakePacket creates a size-1 packet tagged with a handshake phase.
func NewHandshakePacket(source, destination *Device, phase HandshakePhase) Packet {
	return Packet{
		Source: source, Destination: destination,
		Size: 1, TTL: DefaultPacketTTL, InitialTTL: DefaultPacketTTL,
		handshake: &phase,
	}
}

// WithTTL returns a new Packet preserving source/destination/size with
// a fresh TTL (and matching initial_ttl), per the forwarding invariant:
// TTL must strictly decrease along any chain of forwards.
func (p Packet) WithTTL(ttl int) Packet {
	np := p
	np.TTL = ttl
	np.InitialTTL = ttl
	return np
}

// IsHandshake reports whether this packet carries a handshake phase.
func (p Packet) IsHandshake() bool {
	return p.handshake != nil
}

// HandshakePhaseOf returns the packet's handshake phase, if any.
func (p Packet) HandshakePhaseOf() (phase HandshakePhase, ok bool) {
	if p.handshake == nil {
		return 0, false
	}
	return *p.handshake, true
}

func (p Packet) String() string {
	if phase, ok := p.HandshakePhaseOf(); ok {
		return fmt.Sprintf("Handshake{%s, ttl=%d}", phase, p.TTL)
	}
	return fmt.Sprintf("Packet{size=%d, ttl=%d/%d}", p.Size, p.TTL, p.InitialTTL)
}
