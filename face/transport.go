/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/named-data/mobifd/ndn"
)

// transport provides an interface for transports for specific face types.
type transport interface {
	String() string
	setFaceID(faceID uint64)
	setLinkService(linkService LinkService)

	RemoteURI() *URI
	LocalURI() *URI
	Scope() ndn.Scope
	LinkType() ndn.LinkType
	MTU() int
	State() ndn.State

	runReceive()
	sendFrame([]byte)
	changeState(newState ndn.State)
	quitChan() chan bool

	// Counters
	NInBytes() uint64
	NOutBytes() uint64
}

// transportBase provides logic common between transport types.
type transportBase struct {
	linkService LinkService

	faceID    uint64
	remoteURI *URI
	localURI  *URI
	scope     ndn.Scope
	linkType  ndn.LinkType
	mtu       int

	state ndn.State

	hasQuit chan bool

	// Counters
	nInBytes  uint64
	nOutBytes uint64
}

func (t *transportBase) makeTransportBase(remoteURI *URI, localURI *URI, scope ndn.Scope, linkType ndn.LinkType, mtu int) {
	t.remoteURI = remoteURI
	t.localURI = localURI
	t.scope = scope
	t.linkType = linkType
	t.state = ndn.Down
	t.mtu = mtu
	t.hasQuit = make(chan bool, 2)
}

func (t *transportBase) setFaceID(faceID uint64) {
	t.faceID = faceID
}

func (t *transportBase) setLinkService(linkService LinkService) {
	t.linkService = linkService
}

func (t *transportBase) quitChan() chan bool {
	return t.hasQuit
}

// LocalURI returns the local URI of the transport.
func (t *transportBase) LocalURI() *URI {
	return t.localURI
}

// RemoteURI returns the remote URI of the transport.
func (t *transportBase) RemoteURI() *URI {
	return t.remoteURI
}

// Scope returns the scope of the transport.
func (t *transportBase) Scope() ndn.Scope {
	return t.scope
}

// LinkType returns the type of the transport.
func (t *transportBase) LinkType() ndn.LinkType {
	return t.linkType
}

// MTU returns the maximum transmission unit (MTU) of the transport.
func (t *transportBase) MTU() int {
	return t.mtu
}

// State returns the state of the transport.
func (t *transportBase) State() ndn.State {
	return t.state
}

// NInBytes returns the number of link-layer bytes received on this transport.
func (t *transportBase) NInBytes() uint64 {
	return t.nInBytes
}

// NOutBytes returns the number of link-layer bytes sent on this transport.
func (t *transportBase) NOutBytes() uint64 {
	return t.nOutBytes
}
