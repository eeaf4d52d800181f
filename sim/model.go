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

package sim

import (
	"fmt"
	"math/rand"

	"github.com/coffee2toast/mesh-simulator/core"
)

// Model owns the device population, the placement grid, the
// simulation clock, and the deterministic random source every device
// draws on through the core.World interface. It is the single entry
// point for running a simulation tick by tick.
type Model struct {
	devices []*core.Device
	width   int
	height  int
	tick    int
	rng     *rand.Rand
	cfg     *Config
	order   []int
}

// NewModel builds a population of numDevices microbit-style devices
// (BLE + Wifi2G, flood discovery) scattered uniformly at random over
// the configured grid. The routing algorithm every device runs is
// picked once for the whole population from cfg.Env.Routing.
func NewModel(cfg *Config) *Model {
	routingFactory := routingFactoryFor(cfg.Env.Routing)
	m := &Model{
		width:  cfg.Env.Width,
		height: cfg.Env.Height,
		rng:    rand.New(rand.NewSource(cfg.Run.Seed)),
		cfg:    cfg,
	}
	for i := 0; i < cfg.Env.NumDevices; i++ {
		pos := core.Position{X: float64(m.rng.Intn(m.width)), Y: float64(m.rng.Intn(m.height))}
		name := fmt.Sprintf("Agent %d", i)
		d := core.NewDevice(name, cfg.Core.Protocols, pos, m, cfg.Core.HandshakeTimeout,
			func(dev *core.Device) core.LayoutAlgorithm {
				return core.NewFloodLayout(dev, cfg.Core.ScanInterval)
			},
			routingFactory,
		)
		m.devices = append(m.devices, d)
	}
	m.order = make([]int, len(m.devices))
	for i := range m.order {
		m.order[i] = i
	}
	return m
}

// routingFactoryFor resolves a configured routing algorithm name to
// the core.RoutingAlgorithm constructor every device in the population
// is built with. Unrecognized or empty names fall back to flood
// routing, the reference model's own default.
func routingFactoryFor(kind string) func(*core.Device) core.RoutingAlgorithm {
	if kind == RoutingRandom {
		return func(dev *core.Device) core.RoutingAlgorithm { return core.NewRandomRouting(dev) }
	}
	return func(dev *core.Device) core.RoutingAlgorithm { return core.NewFloodRouting(dev) }
}

// Devices returns the model's device population.
func (m *Model) Devices() []*core.Device { return m.devices }

// Tick implements core.World.
func (m *Model) Tick() int { return m.tick }

// Neighbors implements core.World: a brute-force radius scan over the
// population. The device count this simulator targets (tens to low
// hundreds) doesn't justify a bucketed spatial index.
func (m *Model) Neighbors(center *core.Device, radius float64) []*core.Device {
	limit := radius * radius
	var out []*core.Device
	cpos := center.Position()
	for _, d := range m.devices {
		if d == center {
			continue
		}
		if cpos.Distance2(d.Position()) <= limit {
			out = append(out, d)
		}
	}
	return out
}

// Neighborhood implements core.World: the Moore (8-connected)
// neighborhood of center's grid cell, clipped at the grid boundary
// (the grid does not wrap).
func (m *Model) Neighborhood(center *core.Device) []core.Position {
	pos := center.Position()
	cx, cy := int(pos.X), int(pos.Y)
	var out []core.Position
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := cx+dx, cy+dy
			if nx < 0 || nx >= m.width || ny < 0 || ny >= m.height {
				continue
			}
			out = append(out, core.Position{X: float64(nx), Y: float64(ny)})
		}
	}
	return out
}

// MoveAgent implements core.World. The grid has no separate placement
// index to update: Neighbors/Neighborhood read device position live,
// so relocating is entirely the Device's own concern.
func (m *Model) MoveAgent(d *core.Device, pos core.Position) {}

// Float64 implements core.World.
func (m *Model) Float64() float64 { return m.rng.Float64() }

// Intn implements core.World.
func (m *Model) Intn(n int) int { return m.rng.Intn(n) }

// IntRange implements core.World.
func (m *Model) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + m.rng.Intn(hi-lo)
}

// Step advances the simulation by one tick: every device is stepped
// exactly once, in a freshly shuffled order each tick (mirroring the
// reference model's random-activation scheduler, so no device is
// systematically favored by running first).
func (m *Model) Step() {
	m.tick++
	m.rng.Shuffle(len(m.order), func(i, j int) { m.order[i], m.order[j] = m.order[j], m.order[i] })
	for _, idx := range m.order {
		m.devices[idx].Step()
	}
}

// Run steps the model for the configured number of ticks, invoking
// report after every ReportInterval ticks (and once more at the end
// if the tick count isn't a multiple of it).
func (m *Model) Run(report func(tick int, m *Model)) {
	for t := 1; t <= m.cfg.Run.Ticks; t++ {
		m.Step()
		if report != nil && (t%m.cfg.Run.ReportInterval == 0 || t == m.cfg.Run.Ticks) {
			report(t, m)
		}
	}
}
