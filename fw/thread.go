/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"strconv"

	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/dispatch"
	"github.com/named-data/mobifd/ndn"
	"github.com/named-data/mobifd/table"
)

// ThreadStats contains diagnostic counters for a forwarding thread.
type ThreadStats struct {
	NInInterests          uint64
	NInData               uint64
	NOutInterests         uint64
	NOutData              uint64
	NSatisfiedInterests   uint64
	NUnsatisfiedInterests uint64
	NFloodedData          uint64
	NFloodedInterests     uint64
	NFloodsSuppressed     uint64
}

// Thread represents a forwarding thread.
type Thread struct {
	threadID         int
	pendingInterests chan *ndn.PendingPacket
	pendingDatas     chan *ndn.PendingPacket
	pit              *table.Pit
	tfib             *table.Tfib
	floodDedup       *table.FloodDedup
	rateLimiter      *table.FloodRateLimiter
	shouldQuit       chan interface{}
	HasQuit          chan interface{}

	Stats ThreadStats
}

// NewThread creates a new forwarding thread.
func NewThread(id int) *Thread {
	t := new(Thread)
	t.threadID = id
	t.pendingInterests = make(chan *ndn.PendingPacket, fwQueueSize)
	t.pendingDatas = make(chan *ndn.PendingPacket, fwQueueSize)
	t.pit = table.NewPit()
	t.tfib = table.NewTfib()
	t.floodDedup = table.NewFloodDedup()
	t.rateLimiter = table.NewFloodRateLimiter()
	t.shouldQuit = make(chan interface{}, 1)
	t.HasQuit = make(chan interface{})
	return t
}

func (t *Thread) String() string {
	return "FwThread-" + strconv.Itoa(t.threadID)
}

// GetID returns the ID of the forwarding thread.
func (t *Thread) GetID() int {
	return t.threadID
}

// Tfib returns this thread's Temporary FIB, for listener registration.
func (t *Thread) Tfib() *table.Tfib {
	return t.tfib
}

// GetNumPitEntries returns the number of entries in this thread's PIT.
func (t *Thread) GetNumPitEntries() int {
	return t.pit.Size()
}

// GetNumTfibEntries returns the number of entries in this thread's Temporary FIB.
func (t *Thread) GetNumTfibEntries() int {
	return t.tfib.Size()
}

// TellToQuit tells the forwarding thread to quit.
func (t *Thread) TellToQuit() {
	core.LogInfo(t, "Told to quit")
	t.shouldQuit <- true
}

// Run runs the forwarding thread's event loop. All table mutation happens on
// this loop; packets are processed one at a time to completion, so concurrent
// arrivals of the same flood id on multiple links are serialized and only the
// first is fully propagated.
func (t *Thread) Run() {
	for !core.ShouldQuit {
		select {
		case pendingPacket := <-t.pendingInterests:
			t.processIncomingInterest(pendingPacket)
		case pendingPacket := <-t.pendingDatas:
			t.processIncomingData(pendingPacket)
		case <-t.pit.Ticker.C:
			for _, expired := range t.pit.RemoveExpiredEntries() {
				t.finalizeInterest(expired)
			}
		case <-t.tfib.Ticker.C:
			t.tfib.RemoveExpiredEntries()
		case <-t.floodDedup.Ticker.C:
			t.floodDedup.RemoveExpiredEntries()
		case <-t.shouldQuit:
			continue
		}
	}

	core.LogInfo(t, "Stopping thread")
	t.HasQuit <- true
}

// QueueInterest queues an Interest for processing by this forwarding thread.
func (t *Thread) QueueInterest(interest *ndn.PendingPacket) {
	t.pendingInterests <- interest
}

// QueueData queues a Data packet for processing by this forwarding thread.
func (t *Thread) QueueData(data *ndn.PendingPacket) {
	t.pendingDatas <- data
}

func (t *Thread) processIncomingInterest(pendingPacket *ndn.PendingPacket) {
	// Ensure incoming face is indicated
	if pendingPacket.IncomingFaceID == nil {
		core.LogError(t, "Interest missing IncomingFaceId - DROP")
		return
	}

	// Extract Interest from PendingPacket
	interest, err := ndn.DecodeInterest(pendingPacket.Wire)
	if err != nil {
		core.LogInfo(t, "Unable to decode Interest packet - DROP")
		return
	}

	// Get incoming face
	incomingFace := dispatch.GetFace(*pendingPacket.IncomingFaceID)
	if incomingFace == nil {
		core.LogError(t, "Non-existent incoming FaceID=", *pendingPacket.IncomingFaceID, " for Interest=", interest.Name(), " - DROP")
		return
	}

	// Drop if HopLimit present and is 0. Else, decrement by 1
	if interest.HopLimit() != nil && *interest.HopLimit() == 0 {
		core.LogDebug(t, "Received Interest=", interest.Name(), " with HopLimit=0 - DROP")
		return
	} else if interest.HopLimit() != nil {
		interest.SetHopLimit(*interest.HopLimit() - 1)
	}

	core.LogTrace(t, "OnIncomingInterest: ", interest.Name(), ", FaceID=", incomingFace.FaceID())

	// Check if violates /localhost
	if incomingFace.Scope() == ndn.NonLocal && interest.Name().Size() > 0 && interest.Name().At(0).String() == "localhost" {
		core.LogWarn(t, "Interest ", interest.Name(), " from non-local face=", incomingFace.FaceID(), " violates /localhost scope - DROP")
		return
	}

	t.Stats.NInInterests++

	// Check for matching PIT entry (and if looping)
	_, isDuplicate := t.pit.FindOrInsert(interest, incomingFace.FaceID())
	if isDuplicate {
		// Interest loop - since we don't use Nacks, just drop
		core.LogInfo(t, "Interest ", interest.Name(), " is looping - DROP")
		return
	}

	// If NextHopFaceId set, forward to that face (if it exists) or drop
	if pendingPacket.NextHopFaceID != nil {
		if dispatch.GetFace(*pendingPacket.NextHopFaceID) != nil {
			core.LogTrace(t, "NextHopFaceId is set for Interest ", interest.Name(), " - dispatching directly to face")
			t.processOutgoingInterest(interest, *pendingPacket.NextHopFaceID, incomingFace.FaceID())
		} else {
			core.LogInfo(t, "Non-existent face specified in NextHopFaceId for Interest ", interest.Name(), " - DROP")
		}
		return
	}

	// Query the steady-state FIB; on a miss, the flood-control engine gets
	// first refusal (temporary routes, then controlled flooding)
	nexthops := table.FibTable.FindNextHops(interest.Name())
	if len(nexthops) == 0 {
		if !t.handleRouteLookupMiss(interest, incomingFace) {
			core.LogDebug(t, "No route for Interest=", interest.Name(), " - DROP")
		}
		return
	}

	// Forward to the lowest-cost nexthop, skipping the ingress face
	var selected *table.FibNextHopEntry
	for _, nexthop := range nexthops {
		if nexthop.Nexthop == incomingFace.FaceID() {
			continue
		}
		if selected == nil || nexthop.Cost < selected.Cost {
			selected = nexthop
		}
	}
	if selected == nil {
		core.LogDebug(t, "No usable nexthop for Interest=", interest.Name(), " - DROP")
		return
	}
	t.processOutgoingInterest(interest, selected.Nexthop, incomingFace.FaceID())
}

func (t *Thread) processOutgoingInterest(interest *ndn.Interest, nexthop uint64, inFace uint64) {
	core.LogTrace(t, "OnOutgoingInterest: ", interest.Name(), ", FaceID=", nexthop)

	// Get outgoing face
	outgoingFace := dispatch.GetFace(nexthop)
	if outgoingFace == nil {
		core.LogError(t, "Non-existent nexthop FaceID=", nexthop, " for Interest=", interest.Name(), " - DROP")
		return
	}

	// Drop if HopLimit (if present) on Interest going to non-local face is 0
	if interest.HopLimit() != nil && *interest.HopLimit() == 0 && outgoingFace.Scope() == ndn.NonLocal {
		core.LogDebug(t, "Attempting to send Interest=", interest.Name(), " with HopLimit=0 to non-local face - DROP")
		return
	}

	t.Stats.NOutInterests++

	pendingPacket := new(ndn.PendingPacket)
	pendingPacket.IncomingFaceID = new(uint64)
	*pendingPacket.IncomingFaceID = inFace
	var err error
	pendingPacket.Wire, err = interest.Encode()
	if err != nil {
		core.LogWarn(t, "Unable to encode Interest ", interest.Name(), " (", err, ") - DROP")
		return
	}
	if !outgoingFace.SendPacket(pendingPacket) {
		core.LogWarn(t, "Failed to send Interest ", interest.Name(), " on FaceID=", nexthop)
	}
}

func (t *Thread) finalizeInterest(pitEntry *table.PitEntry) {
	core.LogTrace(t, "OnFinalizeInterest: ", pitEntry.Name)

	if !pitEntry.Satisfied {
		t.Stats.NUnsatisfiedInterests += uint64(len(pitEntry.InRecords))
	}
}

func (t *Thread) processIncomingData(pendingPacket *ndn.PendingPacket) {
	// Ensure incoming face is indicated
	if pendingPacket.IncomingFaceID == nil {
		core.LogError(t, "Data missing IncomingFaceId - DROP")
		return
	}

	// Extract Data from PendingPacket
	data, err := ndn.DecodeData(pendingPacket.Wire)
	if err != nil {
		core.LogInfo(t, "Unable to decode Data packet - DROP")
		return
	}

	// Get incoming face
	incomingFace := dispatch.GetFace(*pendingPacket.IncomingFaceID)
	if incomingFace == nil {
		core.LogError(t, "Non-existent incoming FaceID=", *pendingPacket.IncomingFaceID, " for Data=", data.Name(), " - DROP")
		return
	}

	core.LogTrace(t, "OnIncomingData: ", data.Name(), ", FaceID=", incomingFace.FaceID())

	t.Stats.NInData++

	// Check if violates /localhost
	if incomingFace.Scope() == ndn.NonLocal && data.Name().Size() > 0 && data.Name().At(0).String() == "localhost" {
		core.LogWarn(t, "Data ", data.Name(), " from non-local FaceID=", incomingFace.FaceID(), " violates /localhost scope - DROP")
		return
	}

	// A mobility-tagged Data packet announces a fresh point of attachment;
	// run the flood-control pipeline before ordinary Data handling. Failures
	// inside the pipeline never affect ordinary forwarding of the packet.
	if data.IsMobilityTagged() {
		t.handleFloodData(data, incomingFace)
	}

	// Check for matching PIT entry
	pitEntry := t.pit.FindFromData(data)
	if pitEntry == nil {
		// Unsolicited Data - nothing more to do
		core.LogDebug(t, "Unsolicited data ", data.Name(), " - DROP")
		return
	}

	// Forward to all pending downstreams except the face the Data arrived on
	pitEntry.Satisfied = true
	for downstreamFaceID := range pitEntry.InRecords {
		if downstreamFaceID != incomingFace.FaceID() {
			t.processOutgoingData(data, downstreamFaceID, incomingFace.FaceID())
		}
	}
	t.pit.Remove(pitEntry)
}

func (t *Thread) processOutgoingData(data *ndn.Data, nexthop uint64, inFace uint64) {
	core.LogTrace(t, "OnOutgoingData: ", data.Name(), ", FaceID=", nexthop)

	// Get outgoing face
	outgoingFace := dispatch.GetFace(nexthop)
	if outgoingFace == nil {
		core.LogError(t, "Non-existent nexthop FaceID=", nexthop, " for Data=", data.Name(), " - DROP")
		return
	}

	// Check if violates /localhost
	if outgoingFace.Scope() == ndn.NonLocal && data.Name().Size() > 0 && data.Name().At(0).String() == "localhost" {
		core.LogWarn(t, "Data ", data.Name(), " cannot be sent to non-local FaceID=", nexthop, " since violates /localhost scope - DROP")
		return
	}

	t.Stats.NOutData++
	t.Stats.NSatisfiedInterests++

	pendingPacket := new(ndn.PendingPacket)
	pendingPacket.IncomingFaceID = new(uint64)
	*pendingPacket.IncomingFaceID = inFace
	var err error
	pendingPacket.Wire, err = data.Encode()
	if err != nil {
		core.LogWarn(t, "Unable to encode Data ", data.Name(), " (", err, ") - DROP")
		return
	}
	if !outgoingFace.SendPacket(pendingPacket) {
		core.LogWarn(t, "Failed to send Data ", data.Name(), " on FaceID=", nexthop)
	}
}
