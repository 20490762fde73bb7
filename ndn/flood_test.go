/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func makeAnnouncement(floodID uint64, sequence uint32, hopLimit uint8) *FloodAnnouncement {
	f := new(FloodAnnouncement)
	f.MobilityFlag = true
	f.FloodID = new(uint64)
	*f.FloodID = floodID
	f.NewSequence = new(uint32)
	*f.NewSequence = sequence
	f.HopLimit = new(uint8)
	*f.HopLimit = hopLimit
	return f
}

func TestFloodAnnouncementRequiredFields(t *testing.T) {
	f := new(FloodAnnouncement)
	f.MobilityFlag = true
	assert.False(t, f.HasRequiredDataFields())

	f.FloodID = new(uint64)
	assert.False(t, f.HasRequiredDataFields())

	f.NewSequence = new(uint32)
	assert.True(t, f.HasRequiredDataFields())
}

func TestDataFloodAnnouncementRoundTrip(t *testing.T) {
	name, _ := NameFromString("/producer/video")
	data := NewData(name, []byte("payload"))
	data.SetFreshnessPeriod(time.Second)
	announcement := makeAnnouncement(12345, 7, 3)
	announcement.TraceHint = []byte{0x01, 0x02}
	data.SetFloodAnnouncement(announcement)

	assert.True(t, data.IsMobilityTagged())

	wire, err := data.Encode()
	assert.NoError(t, err)

	decoded, err := DecodeData(wire)
	assert.NoError(t, err)
	assert.True(t, decoded.Name().Equals(name))
	assert.Equal(t, []byte("payload"), decoded.Content())
	assert.Equal(t, time.Second, decoded.FreshnessPeriod())
	assert.True(t, decoded.IsMobilityTagged())

	f := decoded.FloodAnnouncement()
	assert.NotNil(t, f)
	assert.True(t, f.HasRequiredDataFields())
	assert.Equal(t, uint64(12345), *f.FloodID)
	assert.Equal(t, uint32(7), *f.NewSequence)
	assert.Equal(t, uint8(3), *f.HopLimit)
	assert.Equal(t, []byte{0x01, 0x02}, f.TraceHint)
}

func TestDataWithoutAnnouncement(t *testing.T) {
	name, _ := NameFromString("/plain")
	data := NewData(name, nil)

	assert.False(t, data.IsMobilityTagged())

	wire, err := data.Encode()
	assert.NoError(t, err)

	decoded, err := DecodeData(wire)
	assert.NoError(t, err)
	assert.Nil(t, decoded.FloodAnnouncement())
	assert.False(t, decoded.IsMobilityTagged())
}

func TestInterestFloodEligibility(t *testing.T) {
	name, _ := NameFromString("/producer/video")
	interest := NewInterest(name)
	assert.False(t, interest.IsFloodEligible())

	f := new(FloodAnnouncement)
	f.MobilityFlag = true
	interest.SetFloodAnnouncement(f)
	assert.True(t, interest.IsFloodEligible())

	// The flag, not the mere presence of parameters, controls eligibility
	interest.SetFloodAnnouncement(&FloodAnnouncement{})
	assert.False(t, interest.IsFloodEligible())
}

func TestInterestRoundTrip(t *testing.T) {
	name, _ := NameFromString("/producer/video")
	interest := NewInterest(name)
	interest.SetNonce(0xDEADBEEF)
	interest.SetMustBeFresh(true)
	interest.SetLifetime(2 * time.Second)
	interest.SetHopLimit(4)
	f := new(FloodAnnouncement)
	f.MobilityFlag = true
	interest.SetFloodAnnouncement(f)

	wire, err := interest.Encode()
	assert.NoError(t, err)

	decoded, err := DecodeInterest(wire)
	assert.NoError(t, err)
	assert.True(t, decoded.Name().Equals(name))
	assert.Equal(t, uint32(0xDEADBEEF), decoded.Nonce())
	assert.True(t, decoded.MustBeFresh())
	assert.Equal(t, 2*time.Second, decoded.Lifetime())
	assert.NotNil(t, decoded.HopLimit())
	assert.Equal(t, uint8(4), *decoded.HopLimit())
	assert.True(t, decoded.IsFloodEligible())
}
