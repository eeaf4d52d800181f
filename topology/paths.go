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
	"container/heap"
	"math"
	"sort"
)

// AllSimplePaths enumerates every simple path (no repeated node) from
// a to b, sorted by length ascending, then lexicographically by node
// index. Robustness and bandwidth need every path, not just the
// shortest, so this is deliberately exhaustive: fine for the
// small/medium topologies this simulator targets, impractical for
// anything graph-theoretically large.
func AllSimplePaths(g *Graph, a, b int) [][]int {
	if a == b {
		return nil
	}
	var paths [][]int
	visited := make([]bool, g.NumNodes())
	path := []int{a}
	visited[a] = true
	var walk func(u int)
	walk = func(u int) {
		for _, v := range g.Neighbors(u) {
			if visited[v] {
				continue
			}
			if v == b {
				found := make([]int, len(path)+1)
				copy(found, path)
				found[len(path)] = v
				paths = append(paths, found)
				continue
			}
			visited[v] = true
			path = append(path, v)
			walk(v)
			path = path[:len(path)-1]
			visited[v] = false
		}
	}
	walk(a)
	sort.Slice(paths, func(i, j int) bool {
		pi, pj := paths[i], paths[j]
		if len(pi) != len(pj) {
			return len(pi) < len(pj)
		}
		for k := range pi {
			if pi[k] != pj[k] {
				return pi[k] < pj[k]
			}
		}
		return false
	})
	return paths
}

// PathWeight sums the Latency of a path's edges.
func (g *Graph) PathWeight(path []int) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		e, _ := g.Edge(path[i], path[i+1])
		total += e.Latency
	}
	return total
}

// PathBandwidth returns the narrowest edge bandwidth along a path
// (its bottleneck capacity).
func (g *Graph) PathBandwidth(path []int) float64 {
	narrowest := -1.0
	for i := 0; i+1 < len(path); i++ {
		e, _ := g.Edge(path[i], path[i+1])
		if narrowest < 0 || e.Bandwidth < narrowest {
			narrowest = e.Bandwidth
		}
	}
	return narrowest
}

type dijkstraItem struct {
	node int
	dist float64
}

type dijkstraQueue []dijkstraItem

func (q dijkstraQueue) Len() int            { return len(q) }
func (q dijkstraQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q dijkstraQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *dijkstraQueue) Push(x interface{}) { *q = append(*q, x.(dijkstraItem)) }
func (q *dijkstraQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// ShortestPath finds the minimum-latency path between a and b using
// Dijkstra's algorithm, weighted by each edge's Latency. Returns the
// path (including both endpoints) and true if one exists.
func ShortestPath(g *Graph, a, b int) ([]int, bool) {
	n := g.NumNodes()
	dist := make([]float64, n)
	prev := make([]int, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = -1
		prev[i] = -1
	}
	dist[a] = 0
	pq := &dijkstraQueue{{node: a, dist: 0}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(dijkstraItem)
		u := item.node
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == b {
			break
		}
		for _, v := range g.Neighbors(u) {
			e, _ := g.Edge(u, v)
			nd := dist[u] + e.Latency
			if dist[v] < 0 || nd < dist[v] {
				dist[v] = nd
				prev[v] = u
				heap.Push(pq, dijkstraItem{node: v, dist: nd})
			}
		}
	}
	if dist[b] < 0 {
		return nil, false
	}
	var path []int
	for u := b; u != -1; u = prev[u] {
		path = append([]int{u}, path...)
		if u == a {
			break
		}
	}
	return path, true
}

// PearsonCorrelation returns the Pearson correlation coefficient
// between xs and ys, and false if it is undefined (fewer than two
// samples, or one series has zero variance).
func PearsonCorrelation(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0, false
	}
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/float64(n), sumY/float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, false
	}
	return cov / math.Sqrt(varX*varY), true
}
