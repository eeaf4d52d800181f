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

// Reachability is the ratio of connected components in G_pot to
// connected components in G_est. A value of 1 means establishment has
// caught up with admissibility; below 1 means some admissible pairs
// haven't (yet) handshaken into a connection.
func Reachability(g *Graph) float64 {
	pot := len(ConnectedComponents(g))
	est := len(ConnectedComponents(g.EstablishedSubgraph()))
	return float64(pot) / float64(est)
}

// absoluteRobustness counts, for every node pair, the simple paths
// between them that share no node with any earlier path for that pair:
// paths are considered shortest-first, and every path (counted or not)
// marks its nodes, endpoints included, as seen for the rest of that
// pair's paths. Because every path contains both endpoints, only the
// first path of a pair can count, so the result is the number of node
// pairs joined by at least one path.
func absoluteRobustness(g *Graph) int {
	n := g.NumNodes()
	count := 0
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			seen := make(map[int]bool)
			for _, path := range AllSimplePaths(g, a, b) {
				disjoint := true
				for _, node := range path {
					if seen[node] {
						disjoint = false
						break
					}
				}
				if disjoint {
					count++
				}
				for _, node := range path {
					seen[node] = true
				}
			}
		}
	}
	return count
}

// Robustness is the ratio of G_est's path diversity to G_pot's: how
// much of the admissible redundancy has actually been established.
func Robustness(g *Graph) float64 {
	total := absoluteRobustness(g)
	if total == 0 {
		return 1.0
	}
	return float64(absoluteRobustness(g.EstablishedSubgraph())) / float64(total)
}

// absoluteBandwidth sums, over every pair reachable in G_est, the
// widest-path (max-min-edge) bandwidth between them computed over g's
// own edges.
func absoluteBandwidth(g *Graph, est *Graph) float64 {
	n := g.NumNodes()
	total := 0.0
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if _, ok := ShortestPath(est, a, b); !ok {
				continue
			}
			widest := -1.0
			for _, path := range AllSimplePaths(g, a, b) {
				if bw := g.PathBandwidth(path); bw > widest {
					widest = bw
				}
			}
			if widest >= 0 {
				total += widest
			}
		}
	}
	return total
}

// Bandwidth is the ratio of G_pot's available widest-path bandwidth to
// G_est's, over pairs already reachable via established links.
func Bandwidth(g *Graph) float64 {
	est := g.EstablishedSubgraph()
	denom := absoluteBandwidth(est, est)
	if denom == 0 {
		return 1.0
	}
	return absoluteBandwidth(g, est) / denom
}

// Latency is the ratio of total shortest-path latency in G_pot to
// total shortest-path latency in G_est, summed over every pair
// reachable in both. Below 1 means establishment has settled on
// slower routes than the admissible topology would allow.
func Latency(g *Graph) float64 {
	n := g.NumNodes()
	est := g.EstablishedSubgraph()
	var totalPotential, totalEstablished float64
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			pPot, okPot := ShortestPath(g, a, b)
			pEst, okEst := ShortestPath(est, a, b)
			if !okPot || !okEst {
				continue
			}
			totalPotential += g.PathWeight(pPot)
			totalEstablished += est.PathWeight(pEst)
		}
	}
	if totalEstablished == 0 {
		return 1.0
	}
	return totalPotential / totalEstablished
}

// Power is the ratio of the fewest edges that could have connected
// G_est's components to the number actually established: 1 means no
// edge is wasted, below 1 means the mesh is carrying redundant links
// for the connectivity it has achieved.
func Power(g *Graph) float64 {
	est := g.EstablishedSubgraph()
	edgeCount := 0
	for a := 0; a < est.NumNodes(); a++ {
		for _, b := range est.Neighbors(a) {
			if b > a {
				edgeCount++
			}
		}
	}
	if edgeCount == 0 {
		return 1.0
	}
	leastPossible := est.NumNodes() - len(ConnectedComponents(est))
	return float64(leastPossible) / float64(edgeCount)
}

// Fairness maps the Pearson correlation between each device's own
// traffic and its total relayed traffic from [-1, 1] to [0, 1]: 1
// means devices that originate more data also relay more (an even
// load), 0 means the busiest relays are carrying traffic that isn't
// their own.
func Fairness(g *Graph) float64 {
	n := g.NumNodes()
	own := make([]float64, n)
	total := make([]float64, n)
	for i := 0; i < n; i++ {
		s := g.Stats(i)
		own[i] = s.OwnData
		total[i] = s.TotalData
	}
	r, ok := PearsonCorrelation(own, total)
	if !ok {
		return 1.0
	}
	return (r + 1) / 2
}

// Weights bundles the per-metric weights for the two evaluators below.
type Weights struct {
	Reachability float64
	Robustness   float64
	Bandwidth    float64
	Latency      float64
	Power        float64
	Fairness     float64
}

// DefaultWeights weighs every metric equally.
func DefaultWeights() Weights {
	return Weights{Reachability: 1, Robustness: 1, Bandwidth: 1, Latency: 1, Power: 1, Fairness: 1}
}

// EvaluateSmall is the weighted average of all six metrics, suited to
// small topologies where the O(paths) cost of robustness and
// bandwidth is still affordable.
func EvaluateSmall(g *Graph, w Weights) float64 {
	num := w.Reachability*Reachability(g) +
		w.Robustness*Robustness(g) +
		w.Bandwidth*Bandwidth(g) +
		w.Latency*Latency(g) +
		w.Power*Power(g) +
		w.Fairness*Fairness(g)
	den := w.Reachability + w.Robustness + w.Bandwidth + w.Latency + w.Power + w.Fairness
	return num / den
}

// EvaluateLarge drops robustness and bandwidth (the two all-simple-
// paths-dependent metrics) so larger topologies can still be scored.
func EvaluateLarge(g *Graph, w Weights) float64 {
	num := w.Reachability*Reachability(g) +
		w.Latency*Latency(g) +
		w.Power*Power(g) +
		w.Fairness*Fairness(g)
	den := w.Reachability + w.Latency + w.Power + w.Fairness
	return num / den
}
