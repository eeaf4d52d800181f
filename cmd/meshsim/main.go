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

package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/coffee2toast/mesh-simulator/sim"
)

func main() {
	log.Println("mesh simulator")

	var cfgFile string
	flag.StringVar(&cfgFile, "c", "", "JSON-encoded configuration file (defaults built in if omitted)")
	flag.Parse()

	cfg := sim.DefaultConfig()
	if cfgFile != "" {
		var err error
		if cfg, err = sim.LoadConfig(cfgFile); err != nil {
			log.Fatal(err)
		}
	}

	model := sim.NewModel(cfg)
	log.Printf("Running %d devices over %d ticks (%dx%d grid)...",
		cfg.Env.NumDevices, cfg.Run.Ticks, cfg.Env.Width, cfg.Env.Height)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	stopped := make(chan struct{})

	go func() {
		select {
		case <-sigCh:
			log.Println("interrupted")
		case <-stopped:
		}
	}()

	model.Run(func(tick int, m *sim.Model) {
		r := m.Collect()
		log.Printf("tick %d: reachability=%.3f latency=%.3f power=%.3f fairness=%.3f overall=%.3f transit=%.2f",
			r.Tick, r.Reachability, r.Latency, r.Power, r.Fairness, r.OverallEvaluation, r.AverageTransitTime)
		if r.BandwidthEfficiency != nil {
			log.Printf("  bandwidth=%.3f robustness=%.3f", *r.BandwidthEfficiency, *r.Robustness)
		}
	})
	close(stopped)
	log.Println("done.")
}
