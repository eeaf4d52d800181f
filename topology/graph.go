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

// Package topology computes the dual-graph topology metrics: G_pot,
// the graph of admissible (potential) links, and G_est, the subgraph
// of currently established connections. Both are views over a single
// Graph value with a per-edge Established flag, mirroring the
// reference model's single networkx.Graph with an `established` edge
// attribute and a subgraph_view filter rather than two separately
// maintained graphs.
package topology

import "github.com/coffee2toast/mesh-simulator/core"

// NodeStats is the per-node data the fairness metric correlates.
type NodeStats struct {
	OwnData   float64
	TotalData float64
}

// Edge is the attribute set carried by one undirected link in the
// graph: whether it is currently established, and the latency/
// bandwidth of the protocol backing it.
type Edge struct {
	Established bool
	Latency     float64
	Bandwidth   float64
}

type edgeKey struct{ u, v int }

func key(u, v int) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{u, v}
}

// Graph is an undirected graph over integer node indices, with edge
// attributes for established/latency/bandwidth and per-node stats.
type Graph struct {
	stats []NodeStats
	adj   [][]int
	edges map[edgeKey]Edge
}

// NewGraph creates an empty n-node graph.
func NewGraph(n int) *Graph {
	return &Graph{
		stats: make([]NodeStats, n),
		adj:   make([][]int, n),
		edges: make(map[edgeKey]Edge),
	}
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.stats) }

// SetStats assigns the per-node stats used by the fairness metric.
func (g *Graph) SetStats(u int, s NodeStats) { g.stats[u] = s }

// Stats returns the per-node stats for node u.
func (g *Graph) Stats(u int) NodeStats { return g.stats[u] }

// AddEdge adds or overwrites the (u, v) edge.
func (g *Graph) AddEdge(u, v int, e Edge) {
	k := key(u, v)
	if _, exists := g.edges[k]; !exists {
		g.adj[u] = append(g.adj[u], v)
		g.adj[v] = append(g.adj[v], u)
	}
	g.edges[k] = e
}

// Edge returns the attributes of the (u, v) edge, if one exists.
func (g *Graph) Edge(u, v int) (Edge, bool) {
	e, ok := g.edges[key(u, v)]
	return e, ok
}

// Neighbors returns the nodes adjacent to u.
func (g *Graph) Neighbors(u int) []int { return g.adj[u] }

// EstablishedSubgraph returns G_est: the same node set, with only the
// established edges kept.
func (g *Graph) EstablishedSubgraph() *Graph {
	ng := NewGraph(g.NumNodes())
	copy(ng.stats, g.stats)
	for k, e := range g.edges {
		if e.Established {
			ng.AddEdge(k.u, k.v, e)
		}
	}
	return ng
}

// BuildGraph constructs G_pot (with the Established flag set per pair)
// from a device population. Each pair is examined once, from the
// device earlier in the slice: an edge exists if that device holds a
// connection to the other or one of its protocols can connect to the
// other; it is flagged established if that device holds a connection,
// using that connection's actual protocol for latency and bandwidth,
// otherwise the first admissible protocol found. The later device's
// protocols and connections are not consulted.
func BuildGraph(devices []*core.Device) *Graph {
	g := NewGraph(len(devices))
	for i, d := range devices {
		g.SetStats(i, NodeStats{
			OwnData:   float64(d.OwnData()),
			TotalData: float64(d.TotalData()),
		})
	}
	for i := 0; i < len(devices); i++ {
		for j := i + 1; j < len(devices); j++ {
			a, b := devices[i], devices[j]
			established := a.IsConnected(b)
			var proto *core.Protocol
			if established {
				proto = a.ConnectionProtocol(b)
			} else {
				for _, p := range a.Protocols() {
					if p.CanConnect(b) {
						proto = p
						break
					}
				}
			}
			if proto == nil {
				continue
			}
			g.AddEdge(i, j, Edge{
				Established: established,
				Latency:     float64(proto.Latency()),
				Bandwidth:   float64(proto.Bandwidth()),
			})
		}
	}
	return g
}

// ConnectedComponents partitions the graph's nodes into connected
// components via breadth-first search.
func ConnectedComponents(g *Graph) [][]int {
	n := g.NumNodes()
	visited := make([]bool, n)
	var components [][]int
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		var component []int
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			component = append(component, u)
			for _, v := range g.Neighbors(u) {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
		}
		components = append(components, component)
	}
	return components
}
