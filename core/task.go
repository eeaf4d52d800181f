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

import "fmt"

// TaskStatus is the lifecycle state of a queued Task.
type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusCompleted
	StatusFailed
)

func (s TaskStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task is one unit of work a Device's task queue runs to completion,
// one Step per tick, head-of-queue only. Variants are a closed set
// (ScanTask, HandshakeTask, SendPacketTask); represented here as an
// interface rather than a tagged union because each variant's Step
// behavior is genuinely distinct code, not a switch over shared data.
type Task interface {
	// Status reports the task's current lifecycle state.
	Status() TaskStatus

	// Step advances the task by one tick. Only ever called while the
	// task is at the head of its device's queue and still pending.
	Step(d *Device)

	// OnPacket offers an incoming packet to the task before the
	// device's default packet handling runs. Returns true if the task
	// consumed the packet. The default (baseTask) implementation
	// always returns false.
	OnPacket(d, sender *Device, proto *Protocol, pkt Packet) bool

	String() string
}

// baseTask supplies the shared bookkeeping (status, default packet
// hook, description) that every Task variant embeds.
type baseTask struct {
	status TaskStatus
	name   string
}

func (t *baseTask) Status() TaskStatus { return t.status }

func (t *baseTask) OnPacket(d, sender *Device, proto *Protocol, pkt Packet) bool {
	return false
}

func (t *baseTask) String() string {
	return fmt.Sprintf("%s [%s]", t.name, t.status)
}
