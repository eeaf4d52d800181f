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

// ScanTask counts down a protocol's scan duration, then charges its
// scan cost and reports every device found within scan radius to the
// given callback. A ScanTask of duration d completes exactly d ticks
// after it is created.
type ScanTask struct {
	baseTask
	proto      *Protocol
	remaining  int
	onDiscover func(proto *Protocol, peer *Device)
}

// NewScanTask creates a scan task for proto. onDiscover is invoked
// once per device found in range when the scan completes.
func NewScanTask(proto *Protocol, onDiscover func(proto *Protocol, peer *Device)) *ScanTask {
	return &ScanTask{
		baseTask:   baseTask{name: "scan:" + proto.Kind()},
		proto:      proto,
		remaining:  proto.ScanDuration(),
		onDiscover: onDiscover,
	}
}

func (t *ScanTask) Step(d *Device) {
	t.remaining--
	if t.remaining > 0 {
		return
	}
	d.chargeEnergy(t.proto.ScanCost())
	for _, peer := range d.world.Neighbors(d, float64(t.proto.ScanRadius())) {
		t.onDiscover(t.proto, peer)
	}
	t.status = StatusCompleted
}
