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
	"encoding/json"
	"os"

	"github.com/coffee2toast/mesh-simulator/core"
)

// EnvironCfg describes the placement grid devices are scattered over.
type EnvironCfg struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	NumDevices int    `json:"numDevices"`
	Routing    string `json:"routing"`
}

// Routing algorithm names accepted in EnvironCfg.Routing.
const (
	RoutingFlood  = "flood"
	RoutingRandom = "random"
)

// RunCfg controls how long a simulation runs and how often it reports
// topology metrics.
type RunCfg struct {
	Ticks          int   `json:"ticks"`
	ReportInterval int   `json:"reportInterval"`
	Seed           int64 `json:"seed"`
}

// Config is the full, JSON-loadable configuration for one simulation
// run: the device protocol engine's constants (core.Config), the
// placement grid (EnvironCfg), and the run parameters (RunCfg).
type Config struct {
	Core *core.Config `json:"core"`
	Env  *EnvironCfg  `json:"environment"`
	Run  *RunCfg      `json:"run"`
}

// DefaultConfig mirrors the reference model's default 60-agent,
// 100x100 run (mesh_simulator.model.MeshModel's own defaults), seeded
// for reproducible runs.
func DefaultConfig() *Config {
	return &Config{
		Core: core.DefaultConfig(),
		Env: &EnvironCfg{
			Width:      100,
			Height:     100,
			NumDevices: 60,
			Routing:    RoutingFlood,
		},
		Run: &RunCfg{
			Ticks:          3600,
			ReportInterval: 10,
			Seed:           19031962,
		},
	}
}

// LoadConfig reads and deserializes a JSON configuration file, filling
// in DefaultConfig's values for anything the file leaves unset.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
