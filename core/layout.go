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

// FloodLayout is the one built-in LayoutAlgorithm: every scanInterval
// ticks it queues a ScanTask per owned protocol, and queues a
// client-side HandshakeTask for every device a scan discovers. Each
// device's first scan fires at a random offset in [0, scanInterval) so
// that a freshly created population doesn't scan in lockstep.
type FloodLayout struct {
	device       *Device
	scanInterval int
	nextScan     int
}

// NewFloodLayout creates a flood-discovery layout for d.
func NewFloodLayout(d *Device, scanInterval int) *FloodLayout {
	return &FloodLayout{
		device:       d,
		scanInterval: scanInterval,
		nextScan:     d.world.IntRange(0, scanInterval),
	}
}

func (l *FloodLayout) Step() {
	if l.nextScan > 0 {
		l.nextScan--
		return
	}
	for _, p := range l.device.protocols {
		l.device.QueueTask(NewScanTask(p, l.onDiscover))
	}
	l.nextScan = l.scanInterval
}

func (l *FloodLayout) onDiscover(proto *Protocol, peer *Device) {
	if l.device.IsConnected(peer) {
		return
	}
	for _, t := range l.device.tasks {
		if hs, ok := t.(*HandshakeTask); ok && hs.peer == peer && hs.Status() == StatusPending {
			return
		}
	}
	l.device.QueueTask(NewHandshakeTask(peer, proto, l.device.handshakeTimeout, false))
}
