/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package mobility contains the producer and consumer side trigger logic for
// temporary-route flood announcements.
package mobility

import (
	"math/rand"
	"sync"
	"time"

	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/ndn"
)

// DefaultAnnouncementHopLimit is the propagation budget attached to
// announcements originated by a producer.
const DefaultAnnouncementHopLimit uint8 = 5

// AttachmentMonitor watches a producer's connectivity and arms a one-shot
// mobility flag when the producer reattaches after a disconnection. Exactly
// one Data packet is tagged per reattachment.
type AttachmentMonitor struct {
	mu        sync.Mutex
	probe     func() bool
	interval  time.Duration
	reachable bool
	justMoved bool
	sequence  uint32
	stop      chan struct{}
}

// NewAttachmentMonitor creates a monitor polling the specified connectivity
// probe at the specified interval.
func NewAttachmentMonitor(probe func() bool, interval time.Duration) *AttachmentMonitor {
	m := new(AttachmentMonitor)
	m.probe = probe
	m.interval = interval
	m.reachable = true
	m.stop = make(chan struct{})
	return m
}

func (m *AttachmentMonitor) String() string {
	return "AttachmentMonitor"
}

// Run polls the connectivity probe until Stop is called.
func (m *AttachmentMonitor) Run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.observe(m.probe())
		case <-m.stop:
			return
		}
	}
}

// Stop stops the monitor.
func (m *AttachmentMonitor) Stop() {
	close(m.stop)
}

// observe records one probe result. A disconnected-to-reachable transition
// means the producer has moved to a new point of attachment.
func (m *AttachmentMonitor) observe(reachable bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reachable && !m.reachable {
		m.sequence++
		m.justMoved = true
		core.LogInfo(m, "Reattached with sequence ", m.sequence, " - arming announcement")
	}
	m.reachable = reachable
}

// Sequence returns the current attachment sequence number.
func (m *AttachmentMonitor) Sequence() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sequence
}

// Annotate tags the specified Data packet with a flood announcement if the
// one-shot mobility flag is armed, clearing the flag. Returns whether the
// packet was tagged.
func (m *AttachmentMonitor) Annotate(data *ndn.Data) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.justMoved {
		return false
	}
	m.justMoved = false

	announcement := new(ndn.FloodAnnouncement)
	announcement.MobilityFlag = true
	announcement.FloodID = new(uint64)
	*announcement.FloodID = rand.Uint64()
	announcement.NewSequence = new(uint32)
	*announcement.NewSequence = m.sequence
	announcement.HopLimit = new(uint8)
	*announcement.HopLimit = DefaultAnnouncementHopLimit
	data.SetFloodAnnouncement(announcement)

	core.LogInfo(m, "Tagged Data ", data.Name(), " with FloodID=", *announcement.FloodID, ", Seq=", m.sequence)
	return true
}
