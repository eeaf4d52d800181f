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

package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fourNodeFixture builds the reference four-node graph: a triangle of
// established links (a-b, a-c, c-b) plus one potential-only link
// (b-d) that has not been established.
func fourNodeFixture() *Graph {
	const a, b, c, d = 0, 1, 2, 3
	g := NewGraph(4)
	g.AddEdge(a, b, Edge{Established: true, Latency: 0.5, Bandwidth: 10})
	g.AddEdge(a, c, Edge{Established: true, Latency: 0.1, Bandwidth: 100})
	g.AddEdge(c, b, Edge{Established: true, Latency: 0.3, Bandwidth: 20})
	g.AddEdge(b, d, Edge{Established: false, Latency: 0.2, Bandwidth: 50})
	return g
}

func TestReachability(t *testing.T) {
	assert.Equal(t, 0.5, Reachability(fourNodeFixture()))
}

func TestRobustness(t *testing.T) {
	assert.Equal(t, 0.5, Robustness(fourNodeFixture()))
}

func TestBandwidth(t *testing.T) {
	assert.Equal(t, 1.0, Bandwidth(fourNodeFixture()))
}

func TestLatency(t *testing.T) {
	assert.Equal(t, 1.0, Latency(fourNodeFixture()))
}

func TestPower(t *testing.T) {
	assert.InDelta(t, 2.0/3.0, Power(fourNodeFixture()), 1e-9)
}

func TestEvaluateSmallIsAverageOfSixMetrics(t *testing.T) {
	g := fourNodeFixture()
	g.SetStats(0, NodeStats{OwnData: 10.5, TotalData: 50})
	g.SetStats(1, NodeStats{OwnData: 3.7, TotalData: 73.3})
	g.SetStats(2, NodeStats{OwnData: 2.5, TotalData: 20})
	g.SetStats(3, NodeStats{OwnData: 5.1, TotalData: 100})

	want := (Reachability(g) + Robustness(g) + Bandwidth(g) + Latency(g) + Power(g) + Fairness(g)) / 6
	assert.InDelta(t, want, EvaluateSmall(g, DefaultWeights()), 1e-9)
}

func TestEvaluateLargeDropsRobustnessAndBandwidth(t *testing.T) {
	g := fourNodeFixture()
	want := (Reachability(g) + Latency(g) + Power(g) + Fairness(g)) / 4
	assert.InDelta(t, want, EvaluateLarge(g, DefaultWeights()), 1e-9)
}

func TestFairnessFallsBackToOneWithoutVariance(t *testing.T) {
	g := NewGraph(3)
	for i := 0; i < 3; i++ {
		g.SetStats(i, NodeStats{OwnData: 1, TotalData: 1})
	}
	assert.Equal(t, 1.0, Fairness(g))
}

func TestConnectedComponentsSingleIsolatedNode(t *testing.T) {
	g := NewGraph(1)
	components := ConnectedComponents(g)
	assert.Len(t, components, 1)
	assert.Len(t, components[0], 1)
}

func TestAllSimplePathsOrderedByLength(t *testing.T) {
	g := fourNodeFixture()
	paths := AllSimplePaths(g, 0, 3)
	if assert.NotEmpty(t, paths) {
		for i := 1; i < len(paths); i++ {
			assert.LessOrEqual(t, len(paths[i-1]), len(paths[i]))
		}
	}
}
