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

// fakeWorld is a minimal, deterministic core.World for unit tests: no
// movement (Float64 always returns 1, so the 10% move chance never
// fires) and a fixed scan-offset/choice sequence.
type fakeWorld struct {
	tick int
}

func (w *fakeWorld) Tick() int { return w.tick }

func (w *fakeWorld) Neighbors(center *Device, radius float64) []*Device {
	return nil
}

func (w *fakeWorld) Neighborhood(center *Device) []Position {
	return nil
}

func (w *fakeWorld) MoveAgent(d *Device, pos Position) {}

func (w *fakeWorld) Float64() float64 { return 1 }

func (w *fakeWorld) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return 0
}

func (w *fakeWorld) IntRange(lo, hi int) int { return lo }

// listWorld is a fakeWorld that returns a fixed neighbor/position list,
// for tests that need scanning or movement to find something.
type listWorld struct {
	fakeWorld
	neighbors    []*Device
	neighborhood []Position
}

func (w *listWorld) Neighbors(center *Device, radius float64) []*Device { return w.neighbors }
func (w *listWorld) Neighborhood(center *Device) []Position             { return w.neighborhood }
