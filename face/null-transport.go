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
	"github.com/named-data/mobifd/ndn"
	"github.com/named-data/mobifd/ndn/tlv"
)

// NullTransport is a transport that drops all packets.
type NullTransport struct {
	transportBase
}

// MakeNullTransport makes a NullTransport.
func MakeNullTransport() *NullTransport {
	t := new(NullTransport)
	t.makeTransportBase(MakeNullFaceURI(), MakeNullFaceURI(), ndn.NonLocal, ndn.PointToPoint, tlv.MaxNDNPacketSize)
	t.state = ndn.Up
	return t
}

func (t *NullTransport) String() string {
	return "NullTransport, FaceID=" + strconv.FormatUint(t.faceID, 10)
}

func (t *NullTransport) runReceive() {
	// Nothing to receive
}

func (t *NullTransport) sendFrame(frame []byte) {
	t.nOutBytes += uint64(len(frame))
}

func (t *NullTransport) changeState(new ndn.State) {
	if t.state == new {
		return
	}

	core.LogInfo(t, "state: ", t.state, " -> ", new)
	t.state = new

	if t.state != ndn.Up {
		t.hasQuit <- true
	}
}
