/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"strconv"
	"testing"
	"time"

	"github.com/named-data/mobifd/dispatch"
	"github.com/named-data/mobifd/ndn"
	"github.com/named-data/mobifd/table"
	"github.com/stretchr/testify/assert"
)

type mockLink struct {
	id    uint64
	scope ndn.Scope
	state ndn.State
	sent  []*ndn.PendingPacket
}

func (m *mockLink) String() string {
	return "MockLink-" + strconv.FormatUint(m.id, 10)
}

func (m *mockLink) SetFaceID(faceID uint64) {
	m.id = faceID
}

func (m *mockLink) FaceID() uint64 {
	return m.id
}

func (m *mockLink) Scope() ndn.Scope {
	return m.scope
}

func (m *mockLink) State() ndn.State {
	return m.state
}

func (m *mockLink) SendPacket(packet *ndn.PendingPacket) bool {
	m.sent = append(m.sent, packet)
	return true
}

// setupLinks registers three up non-local mock links with IDs 1, 2, 3.
func setupLinks(t *testing.T) []*mockLink {
	links := make([]*mockLink, 3)
	for i := range links {
		links[i] = &mockLink{id: uint64(i + 1), scope: ndn.NonLocal, state: ndn.Up}
		dispatch.AddFace(links[i].id, links[i])
	}
	t.Cleanup(func() {
		for _, link := range links {
			dispatch.RemoveFace(link.FaceID())
		}
	})
	table.CreateFibTable()
	return links
}

func mustName(t *testing.T, str string) *ndn.Name {
	name, err := ndn.NameFromString(str)
	assert.NoError(t, err)
	return name
}

func makeMobilityData(t *testing.T, nameString string, floodID uint64, sequence uint32, hopLimit *uint8) *ndn.PendingPacket {
	data := ndn.NewData(mustName(t, nameString), []byte("payload"))
	announcement := new(ndn.FloodAnnouncement)
	announcement.MobilityFlag = true
	announcement.FloodID = new(uint64)
	*announcement.FloodID = floodID
	announcement.NewSequence = new(uint32)
	*announcement.NewSequence = sequence
	announcement.HopLimit = hopLimit
	data.SetFloodAnnouncement(announcement)

	wire, err := data.Encode()
	assert.NoError(t, err)

	pendingPacket := new(ndn.PendingPacket)
	pendingPacket.IncomingFaceID = new(uint64)
	*pendingPacket.IncomingFaceID = 1
	pendingPacket.Wire = wire
	return pendingPacket
}

func uint8Ptr(v uint8) *uint8 {
	p := new(uint8)
	*p = v
	return p
}

func TestFloodDataPropagation(t *testing.T) {
	links := setupLinks(t)
	thread := NewThread(0)

	thread.processIncomingData(makeMobilityData(t, "/producer/video/seg1", 100, 1, uint8Ptr(2)))

	// Not sent back to ingress, flooded to the others
	assert.Len(t, links[0].sent, 0)
	assert.Len(t, links[1].sent, 1)
	assert.Len(t, links[2].sent, 1)
	assert.Equal(t, uint64(2), thread.Stats.NFloodedData)

	// Hop limit decremented on the flooded copies
	flooded, err := ndn.DecodeData(links[1].sent[0].Wire)
	assert.NoError(t, err)
	assert.True(t, flooded.IsMobilityTagged())
	assert.Equal(t, uint8(1), *flooded.FloodAnnouncement().HopLimit)

	// Temporary route points at the ingress face for the name minus its last component
	entry := thread.Tfib().FindExactMatch(mustName(t, "/producer/video"))
	assert.NotNil(t, entry)
	assert.Equal(t, uint64(1), entry.FaceID)
	assert.Equal(t, uint32(1), entry.Sequence)
}

func TestFloodDataDuplicateSuppressed(t *testing.T) {
	links := setupLinks(t)
	thread := NewThread(0)

	thread.processIncomingData(makeMobilityData(t, "/producer/video/seg1", 100, 1, uint8Ptr(2)))
	assert.Len(t, links[1].sent, 1)

	// A second arrival of the same flood id does nothing
	duplicate := makeMobilityData(t, "/producer/video/seg1", 100, 1, uint8Ptr(2))
	*duplicate.IncomingFaceID = 2
	thread.processIncomingData(duplicate)

	assert.Len(t, links[1].sent, 1)
	assert.Len(t, links[2].sent, 1)
	assert.Equal(t, uint64(2), thread.Stats.NFloodedData)

	// Route still points at the first announcement's ingress
	entry := thread.Tfib().FindExactMatch(mustName(t, "/producer/video"))
	assert.Equal(t, uint64(1), entry.FaceID)
}

func TestFloodDataHopLimitExhausted(t *testing.T) {
	links := setupLinks(t)
	thread := NewThread(0)

	thread.processIncomingData(makeMobilityData(t, "/producer/video/seg1", 100, 1, uint8Ptr(0)))

	// Not propagated, but the temporary route is still recorded
	assert.Len(t, links[1].sent, 0)
	assert.Len(t, links[2].sent, 0)
	assert.NotNil(t, thread.Tfib().FindExactMatch(mustName(t, "/producer/video")))
}

func TestFloodDataHopLimitOnePropagatesWithZero(t *testing.T) {
	links := setupLinks(t)
	thread := NewThread(0)

	thread.processIncomingData(makeMobilityData(t, "/producer/video/seg1", 100, 1, uint8Ptr(1)))

	assert.Len(t, links[1].sent, 1)
	flooded, err := ndn.DecodeData(links[1].sent[0].Wire)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), *flooded.FloodAnnouncement().HopLimit)
}

func TestFloodDataDefaultHopLimit(t *testing.T) {
	links := setupLinks(t)
	thread := NewThread(0)
	SetFloodDefaultHopLimit(3)

	thread.processIncomingData(makeMobilityData(t, "/producer/video/seg1", 100, 1, nil))

	assert.Len(t, links[1].sent, 1)
	flooded, err := ndn.DecodeData(links[1].sent[0].Wire)
	assert.NoError(t, err)
	assert.Equal(t, uint8(3), *flooded.FloodAnnouncement().HopLimit)
}

func TestFloodDataRateLimited(t *testing.T) {
	links := setupLinks(t)
	table.SetFloodTunables(5*time.Second, 1, time.Second)
	defer table.SetFloodTunables(5*time.Second, 100, time.Second)
	thread := NewThread(0)

	thread.processIncomingData(makeMobilityData(t, "/producer/video/seg1", 100, 1, uint8Ptr(2)))
	thread.processIncomingData(makeMobilityData(t, "/producer/audio/seg1", 200, 1, uint8Ptr(2)))

	// Second flood suppressed by the rate limiter, but its route is recorded
	assert.Len(t, links[1].sent, 1)
	assert.Equal(t, uint64(1), thread.Stats.NFloodsSuppressed)
	assert.NotNil(t, thread.Tfib().FindExactMatch(mustName(t, "/producer/audio")))
}

func TestFloodDataMissingFieldsIgnored(t *testing.T) {
	links := setupLinks(t)
	thread := NewThread(0)

	data := ndn.NewData(mustName(t, "/producer/video/seg1"), nil)
	data.SetFloodAnnouncement(&ndn.FloodAnnouncement{MobilityFlag: true})
	wire, err := data.Encode()
	assert.NoError(t, err)

	pendingPacket := new(ndn.PendingPacket)
	pendingPacket.IncomingFaceID = new(uint64)
	*pendingPacket.IncomingFaceID = 1
	pendingPacket.Wire = wire
	thread.processIncomingData(pendingPacket)

	assert.Len(t, links[1].sent, 0)
	assert.Equal(t, 0, thread.Tfib().Size())
}

func makeInterestPacket(t *testing.T, interest *ndn.Interest, ingress uint64) *ndn.PendingPacket {
	wire, err := interest.Encode()
	assert.NoError(t, err)

	pendingPacket := new(ndn.PendingPacket)
	pendingPacket.IncomingFaceID = new(uint64)
	*pendingPacket.IncomingFaceID = ingress
	pendingPacket.Wire = wire
	return pendingPacket
}

func TestInterestFloodingOnLookupMiss(t *testing.T) {
	links := setupLinks(t)
	thread := NewThread(0)
	SetFloodDefaultHopLimit(3)

	interest := ndn.NewInterest(mustName(t, "/producer/video/seg1"))
	interest.SetFloodAnnouncement(&ndn.FloodAnnouncement{MobilityFlag: true})
	thread.processIncomingInterest(makeInterestPacket(t, interest, 1))

	assert.Len(t, links[0].sent, 0)
	assert.Len(t, links[1].sent, 1)
	assert.Len(t, links[2].sent, 1)
	assert.Equal(t, uint64(2), thread.Stats.NFloodedInterests)

	// Default hop limit applied when the Interest carries none
	flooded, err := ndn.DecodeInterest(links[1].sent[0].Wire)
	assert.NoError(t, err)
	assert.NotNil(t, flooded.HopLimit())
	assert.Equal(t, uint8(3), *flooded.HopLimit())
	assert.True(t, flooded.IsFloodEligible())
}

func TestInterestFloodingHopLimitExhausted(t *testing.T) {
	links := setupLinks(t)
	thread := NewThread(0)

	// Hop limit 1 is consumed on arrival, so flooding would exceed the budget
	interest := ndn.NewInterest(mustName(t, "/producer/video/seg1"))
	interest.SetHopLimit(1)
	interest.SetFloodAnnouncement(&ndn.FloodAnnouncement{MobilityFlag: true})
	thread.processIncomingInterest(makeInterestPacket(t, interest, 1))

	assert.Len(t, links[1].sent, 0)
	assert.Len(t, links[2].sent, 0)
	assert.Equal(t, uint64(0), thread.Stats.NFloodedInterests)
}

func TestInterestFloodingHopLimitDecremented(t *testing.T) {
	links := setupLinks(t)
	thread := NewThread(0)

	interest := ndn.NewInterest(mustName(t, "/producer/video/seg1"))
	interest.SetHopLimit(2)
	interest.SetFloodAnnouncement(&ndn.FloodAnnouncement{MobilityFlag: true})
	thread.processIncomingInterest(makeInterestPacket(t, interest, 1))

	assert.Len(t, links[1].sent, 1)
	flooded, err := ndn.DecodeInterest(links[1].sent[0].Wire)
	assert.NoError(t, err)
	assert.Equal(t, uint8(1), *flooded.HopLimit())
}

func TestInterestNotFloodEligibleDropped(t *testing.T) {
	links := setupLinks(t)
	thread := NewThread(0)

	interest := ndn.NewInterest(mustName(t, "/producer/video/seg1"))
	thread.processIncomingInterest(makeInterestPacket(t, interest, 1))

	assert.Len(t, links[1].sent, 0)
	assert.Len(t, links[2].sent, 0)
}

func TestTemporaryRoutePreferredOverFlooding(t *testing.T) {
	links := setupLinks(t)
	thread := NewThread(0)

	thread.Tfib().Insert(mustName(t, "/producer/video"), 3, 1, 99)

	interest := ndn.NewInterest(mustName(t, "/producer/video/seg1"))
	interest.SetFloodAnnouncement(&ndn.FloodAnnouncement{MobilityFlag: true})
	thread.processIncomingInterest(makeInterestPacket(t, interest, 1))

	// Forwarded on the temporary route instead of flooding
	assert.Len(t, links[1].sent, 0)
	assert.Len(t, links[2].sent, 1)
	assert.Equal(t, uint64(0), thread.Stats.NFloodedInterests)
	assert.Equal(t, uint64(1), thread.Stats.NOutInterests)
}

func TestSteadyStateRoutePreferredOverTemporary(t *testing.T) {
	links := setupLinks(t)
	thread := NewThread(0)

	table.FibTable.InsertNextHop(mustName(t, "/producer"), 2, 1)
	thread.Tfib().Insert(mustName(t, "/producer/video"), 3, 1, 99)

	interest := ndn.NewInterest(mustName(t, "/producer/video/seg1"))
	thread.processIncomingInterest(makeInterestPacket(t, interest, 1))

	// The steady-state FIB wins when it has a route
	assert.Len(t, links[1].sent, 1)
	assert.Len(t, links[2].sent, 0)
}

func TestFloodSkipsDownLinks(t *testing.T) {
	links := setupLinks(t)
	links[1].state = ndn.Down
	thread := NewThread(0)

	thread.processIncomingData(makeMobilityData(t, "/producer/video/seg1", 100, 1, uint8Ptr(2)))

	assert.Len(t, links[1].sent, 0)
	assert.Len(t, links[2].sent, 1)
	assert.Equal(t, uint64(1), thread.Stats.NFloodedData)
}
