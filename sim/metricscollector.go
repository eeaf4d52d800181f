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

import "github.com/coffee2toast/mesh-simulator/topology"

// Report is one snapshot of topology metrics, taken at a given tick.
type Report struct {
	Tick                int
	Reachability        float64
	Latency             float64
	Power               float64
	Fairness            float64
	OverallEvaluation   float64
	AverageTransitTime  float64
	BandwidthEfficiency *float64 // only populated below SmallPopulationLimit
	Robustness          *float64 // only populated below SmallPopulationLimit
}

// SmallPopulationLimit is the device-count threshold under which the
// two all-simple-paths-dependent metrics (bandwidth, robustness) are
// still cheap enough to compute every report.
const SmallPopulationLimit = 10

// Collect builds a Report from the model's current state: reachability,
// routing/power/fairness efficiency, an overall weighted evaluation,
// and average transit time over the last 10 ticks. Below
// SmallPopulationLimit devices, it also reports bandwidth efficiency
// and robustness and switches the overall evaluation to the weighting
// that includes them.
func (m *Model) Collect() Report {
	g := topology.BuildGraph(m.devices)
	r := Report{
		Tick:               m.tick,
		Reachability:       topology.Reachability(g),
		Latency:            topology.Latency(g),
		Power:              topology.Power(g),
		Fairness:           topology.Fairness(g),
		AverageTransitTime: m.averageTransitTime(),
	}
	w := topology.DefaultWeights()
	if len(m.devices) < SmallPopulationLimit {
		bw := topology.Bandwidth(g)
		rb := topology.Robustness(g)
		r.BandwidthEfficiency = &bw
		r.Robustness = &rb
		r.OverallEvaluation = topology.EvaluateSmall(g, w)
	} else {
		r.OverallEvaluation = topology.EvaluateLarge(g, w)
	}
	return r
}

// averageTransitTime is the mean (initial_ttl - ttl) across every
// packet any device received as final destination in the last 10
// ticks. Packet.WithTTL sets InitialTTL together with TTL on every
// forward, so the difference does not accumulate across hops.
func (m *Model) averageTransitTime() float64 {
	var totalTime, totalPackets int
	start := m.tick - 10
	if start < 0 {
		start = 0
	}
	for _, d := range m.devices {
		for t := start; t < m.tick; t++ {
			for _, pkt := range d.ReceivedAt(t) {
				totalPackets++
				totalTime += pkt.InitialTTL - pkt.TTL
			}
		}
	}
	if totalPackets == 0 {
		return 0
	}
	return float64(totalTime) / float64(totalPackets)
}
