/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/ndn"
	"github.com/named-data/mobifd/ndn/tlv"
)

// BasicLinkService is a link service passing packets to and from the
// transport without link-layer framing.
type BasicLinkService struct {
	linkServiceBase
}

// MakeBasicLinkService creates a new basic link service over the specified
// transport.
func MakeBasicLinkService(transport transport) *BasicLinkService {
	l := new(BasicLinkService)
	l.makeLinkServiceBase()
	l.transport = transport
	l.transport.setLinkService(l)
	return l
}

func (l *BasicLinkService) String() string {
	if l.transport != nil {
		return "BasicLinkService, " + l.transport.String()
	}
	return "BasicLinkService"
}

// Run starts the face and the transport receive goroutine, and processes the
// send queue until the transport quits.
func (l *BasicLinkService) Run() {
	if l.transport == nil {
		core.LogError(l, "Unable to start face due to unset transport")
		return
	}

	go l.transport.runReceive()

	for {
		select {
		case frame := <-l.sendQueue:
			l.transport.sendFrame(frame)
		case <-l.transport.quitChan():
			FaceTable.Remove(l.faceID)
			close(l.HasQuit)
			return
		}
	}
}

// handleIncomingFrame decodes a frame from the transport and dispatches it to
// a forwarding thread.
func (l *BasicLinkService) handleIncomingFrame(frame []byte) {
	// Copy out of the transport's receive buffer
	wire := make([]byte, len(frame))
	copy(wire, frame)

	block, _, err := tlv.DecodeBlock(wire)
	if err != nil {
		core.LogDebug(l, "Unable to decode received frame - DROP")
		return
	}

	switch block.Type() {
	case tlv.Interest:
		interest, err := ndn.DecodeInterest(wire)
		if err != nil {
			core.LogDebug(l, "Unable to decode received Interest - DROP")
			return
		}
		l.dispatchInterest(interest, wire)
	case tlv.Data:
		data, err := ndn.DecodeData(wire)
		if err != nil {
			core.LogDebug(l, "Unable to decode received Data - DROP")
			return
		}
		l.dispatchData(data, wire)
	default:
		core.LogDebug(l, "Received frame of unknown TLV type ", block.Type(), " - DROP")
	}
}
