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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coffee2toast/mesh-simulator/core"
)

func testConfig(numDevices, width, height int) *Config {
	return &Config{
		Core: core.DefaultConfig(),
		Env:  &EnvironCfg{Width: width, Height: height, NumDevices: numDevices, Routing: RoutingFlood},
		Run:  &RunCfg{Ticks: 200, ReportInterval: 50, Seed: 1},
	}
}

func TestNewModelPlacesRequestedDeviceCount(t *testing.T) {
	m := NewModel(testConfig(12, 50, 50))
	assert.Len(t, m.Devices(), 12)
}

func TestTwoDevicesWithinRangeEstablishConnection(t *testing.T) {
	// a 10x10 grid is well inside BLE's 50-unit scan radius, so any two
	// devices on it are admissible from tick 0; given enough ticks for
	// a scan to fire and a handshake to complete, they must connect.
	cfg := testConfig(2, 10, 10)
	m := NewModel(cfg)
	devices := m.Devices()
	for i := 0; i < 1200 && !devices[0].IsConnected(devices[1]); i++ {
		m.Step()
	}
	assert.True(t, devices[0].IsConnected(devices[1]))
}

func TestCollectReportsSmallPopulationEvaluation(t *testing.T) {
	m := NewModel(testConfig(4, 20, 20))
	for i := 0; i < 50; i++ {
		m.Step()
	}
	r := m.Collect()
	assert.NotNil(t, r.BandwidthEfficiency)
	assert.NotNil(t, r.Robustness)
	assert.GreaterOrEqual(t, r.Reachability, 0.0)
	assert.LessOrEqual(t, r.Reachability, 1.0)
}

func TestCollectReportsLargePopulationEvaluationAboveLimit(t *testing.T) {
	m := NewModel(testConfig(SmallPopulationLimit+1, 50, 50))
	r := m.Collect()
	assert.Nil(t, r.BandwidthEfficiency)
	assert.Nil(t, r.Robustness)
}

func TestAverageTransitTimeIsZeroWithoutDeliveredPackets(t *testing.T) {
	m := NewModel(testConfig(3, 20, 20))
	assert.Equal(t, 0.0, m.averageTransitTime())
}

func TestRunInvokesReportOnEveryIntervalAndFinalTick(t *testing.T) {
	cfg := testConfig(3, 20, 20)
	cfg.Run.Ticks = 25
	cfg.Run.ReportInterval = 10
	m := NewModel(cfg)

	var ticksSeen []int
	m.Run(func(tick int, _ *Model) {
		ticksSeen = append(ticksSeen, tick)
	})

	assert.Equal(t, []int{10, 20, 25}, ticksSeen)
}

func TestRandomRoutingConfigRunsAPopulationWithoutError(t *testing.T) {
	cfg := testConfig(6, 20, 20)
	cfg.Env.Routing = RoutingRandom
	m := NewModel(cfg)
	for i := 0; i < 100; i++ {
		m.Step()
	}
	r := m.Collect()
	assert.GreaterOrEqual(t, r.Reachability, 0.0)
}
