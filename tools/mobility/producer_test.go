/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mobility

import (
	"testing"
	"time"

	"github.com/named-data/mobifd/ndn"
	"github.com/stretchr/testify/assert"
)

func makeData(t *testing.T, nameString string) *ndn.Data {
	name, err := ndn.NameFromString(nameString)
	assert.NoError(t, err)
	return ndn.NewData(name, []byte("payload"))
}

func TestAttachmentMonitorArmsOnReattachment(t *testing.T) {
	monitor := NewAttachmentMonitor(func() bool { return true }, time.Second)

	// Staying reachable never arms
	monitor.observe(true)
	monitor.observe(true)
	assert.False(t, monitor.Annotate(makeData(t, "/producer/seg1")))

	// Disconnection alone does not arm
	monitor.observe(false)
	assert.False(t, monitor.Annotate(makeData(t, "/producer/seg2")))

	// Reattachment arms
	monitor.observe(true)
	assert.Equal(t, uint32(1), monitor.Sequence())

	data := makeData(t, "/producer/seg3")
	assert.True(t, monitor.Annotate(data))

	announcement := data.FloodAnnouncement()
	assert.NotNil(t, announcement)
	assert.True(t, announcement.MobilityFlag)
	assert.True(t, announcement.HasRequiredDataFields())
	assert.Equal(t, uint32(1), *announcement.NewSequence)
	assert.Equal(t, DefaultAnnouncementHopLimit, *announcement.HopLimit)
	assert.True(t, data.IsMobilityTagged())
}

func TestAttachmentMonitorTagsExactlyOnce(t *testing.T) {
	monitor := NewAttachmentMonitor(func() bool { return true }, time.Second)

	monitor.observe(false)
	monitor.observe(true)

	assert.True(t, monitor.Annotate(makeData(t, "/producer/seg1")))
	assert.False(t, monitor.Annotate(makeData(t, "/producer/seg2")))
	assert.False(t, monitor.Annotate(makeData(t, "/producer/seg3")))
}

func TestAttachmentMonitorSequenceIncrementsPerMove(t *testing.T) {
	monitor := NewAttachmentMonitor(func() bool { return true }, time.Second)

	monitor.observe(false)
	monitor.observe(true)
	first := makeData(t, "/producer/seg1")
	assert.True(t, monitor.Annotate(first))

	monitor.observe(false)
	monitor.observe(true)
	second := makeData(t, "/producer/seg2")
	assert.True(t, monitor.Annotate(second))

	assert.Equal(t, uint32(1), *first.FloodAnnouncement().NewSequence)
	assert.Equal(t, uint32(2), *second.FloodAnnouncement().NewSequence)
	assert.NotEqual(t, *first.FloodAnnouncement().FloodID, *second.FloodAnnouncement().FloodID)
}
