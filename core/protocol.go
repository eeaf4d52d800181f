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

// Protocol is a live instance of a ProtocolSpec bound to the Device
// that owns it. Admissibility (CanConnect) depends on the owner's
// current position, so the instance, not the bare spec, is what tasks
// and the layout/routing algorithms operate on.
type Protocol struct {
	spec  ProtocolSpec
	owner *Device
}

// NewProtocol instantiates a protocol for its owning device.
func NewProtocol(spec ProtocolSpec, owner *Device) *Protocol {
	return &Protocol{spec: spec, owner: owner}
}

func (p *Protocol) Kind() string         { return p.spec.Kind }
func (p *Protocol) ScanRadius() int       { return p.spec.ScanRadius }
func (p *Protocol) ScanCost() int         { return p.spec.ScanCost }
func (p *Protocol) ScanDuration() int     { return p.spec.ScanDuration }
func (p *Protocol) ConnectionCost() int   { return p.spec.ConnectionCost }
func (p *Protocol) Latency() int          { return p.spec.Latency }
func (p *Protocol) Bandwidth() int        { return p.spec.Bandwidth }
func (p *Protocol) Owner() *Device        { return p.owner }

// CanConnect reports whether the owner could admissibly connect to
// peer over this protocol: peer must be equipped with a protocol of
// the same kind, and the two devices must be within scan radius of
// each other.
func (p *Protocol) CanConnect(peer *Device) bool {
	if peer == nil || peer == p.owner {
		return false
	}
	if !peer.HasProtocolKind(p.Kind()) {
		return false
	}
	limit := float64(p.spec.ScanRadius) * float64(p.spec.ScanRadius)
	return p.owner.Position().Distance2(peer.Position()) <= limit
}

// Connect records a connection from the owner to peer over this
// protocol, failing if the pair is not admissible.
func (p *Protocol) Connect(peer *Device) error {
	if !p.CanConnect(peer) {
		return ErrInvalidConnection
	}
	p.owner.addConnection(p, peer)
	return nil
}
