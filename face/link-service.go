/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"strconv"

	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/dispatch"
	"github.com/named-data/mobifd/fw"
	"github.com/named-data/mobifd/ndn"
)

// LinkService is an interface for link service implementations.
type LinkService interface {
	String() string
	SetFaceID(faceID uint64)

	FaceID() uint64
	LocalURI() *URI
	RemoteURI() *URI
	Scope() ndn.Scope
	LinkType() ndn.LinkType
	State() ndn.State

	// Run is the main entry point for running the face thread.
	Run()

	// SendPacket adds a packet to the send queue for this link service.
	SendPacket(packet *ndn.PendingPacket) bool

	// handleIncomingFrame synchronously handles an incoming frame and
	// dispatches it to a forwarding thread.
	handleIncomingFrame(frame []byte)

	// Counters
	NInInterests() uint64
	NInData() uint64
	NOutInterests() uint64
	NOutData() uint64
}

// linkServiceBase is the type upon which all link service implementations
// should be built.
type linkServiceBase struct {
	faceID    uint64
	transport transport
	HasQuit   chan bool
	sendQueue chan []byte

	// Counters
	nInInterests  uint64
	nInData       uint64
	nOutInterests uint64
	nOutData      uint64
}

func (l *linkServiceBase) String() string {
	if l.transport != nil {
		return "LinkService, " + l.transport.String()
	}

	return "LinkService, FaceID=" + strconv.FormatUint(l.faceID, 10)
}

// SetFaceID sets the ID of the face.
func (l *linkServiceBase) SetFaceID(faceID uint64) {
	l.faceID = faceID
	if l.transport != nil {
		l.transport.setFaceID(faceID)
	}
}

func (l *linkServiceBase) makeLinkServiceBase() {
	l.HasQuit = make(chan bool)
	l.sendQueue = make(chan []byte, faceQueueSize)
}

// FaceID returns the ID of the face.
func (l *linkServiceBase) FaceID() uint64 {
	return l.faceID
}

// LocalURI returns the local URI of the underlying transport.
func (l *linkServiceBase) LocalURI() *URI {
	return l.transport.LocalURI()
}

// RemoteURI returns the remote URI of the underlying transport.
func (l *linkServiceBase) RemoteURI() *URI {
	return l.transport.RemoteURI()
}

// Scope returns the scope of the underlying transport.
func (l *linkServiceBase) Scope() ndn.Scope {
	return l.transport.Scope()
}

// LinkType returns the type of the link.
func (l *linkServiceBase) LinkType() ndn.LinkType {
	return l.transport.LinkType()
}

// State returns the state of the underlying transport.
func (l *linkServiceBase) State() ndn.State {
	return l.transport.State()
}

// NInInterests returns the number of Interests received on this face.
func (l *linkServiceBase) NInInterests() uint64 {
	return l.nInInterests
}

// NInData returns the number of Data packets received on this face.
func (l *linkServiceBase) NInData() uint64 {
	return l.nInData
}

// NOutInterests returns the number of Interests sent on this face.
func (l *linkServiceBase) NOutInterests() uint64 {
	return l.nOutInterests
}

// NOutData returns the number of Data packets sent on this face.
func (l *linkServiceBase) NOutData() uint64 {
	return l.nOutData
}

// SendPacket adds a packet to the send queue for this link service, returning
// whether the packet could be queued.
func (l *linkServiceBase) SendPacket(packet *ndn.PendingPacket) bool {
	if l.State() != ndn.Up {
		core.LogWarn(l, "Cannot send packet on down face - DROP")
		return false
	}

	select {
	case l.sendQueue <- packet.Wire:
		core.LogTrace(l, "Queued packet for Link Service")
		return true
	default:
		// Drop packet due to congestion
		core.LogWarn(l, "Dropped packet due to congestion")
		return false
	}
}

func (l *linkServiceBase) dispatchInterest(interest *ndn.Interest, frame []byte) {
	l.nInInterests++

	pendingPacket := new(ndn.PendingPacket)
	pendingPacket.IncomingFaceID = new(uint64)
	*pendingPacket.IncomingFaceID = l.faceID
	pendingPacket.Wire = frame

	thread := fw.HashNameToFwThread(interest.Name())
	core.LogTrace(l, "Dispatched Interest to thread ", thread)
	dispatch.GetFWThread(thread).QueueInterest(pendingPacket)
}

func (l *linkServiceBase) dispatchData(data *ndn.Data, frame []byte) {
	l.nInData++

	pendingPacket := new(ndn.PendingPacket)
	pendingPacket.IncomingFaceID = new(uint64)
	*pendingPacket.IncomingFaceID = l.faceID
	pendingPacket.Wire = frame

	// Data from a local producer must be dispatched to the threads matching
	// every prefix of its name, since we cannot know which prefix the pending
	// Interest was hashed on.
	if l.Scope() == ndn.Local {
		for _, thread := range fw.HashNameToAllPrefixFwThreads(data.Name()) {
			core.LogTrace(l, "Prefix dispatched local-origin Data packet to thread ", thread)
			dispatch.GetFWThread(thread).QueueData(pendingPacket)
		}
		return
	}

	thread := fw.HashNameToFwThread(data.Name())
	core.LogTrace(l, "Dispatched Data to thread ", thread)
	dispatch.GetFWThread(thread).QueueData(pendingPacket)
}
