/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/ndn"
	"github.com/named-data/mobifd/ndn/tlv"
)

// WebSocketTransport communicates with web applications via WebSocket.
type WebSocketTransport struct {
	transportBase
	c *websocket.Conn
}

var _ transport = &WebSocketTransport{}

// NewWebSocketTransport creates a WebSocket transport for an accepted
// connection.
func NewWebSocketTransport(localURI *URI, c *websocket.Conn) *WebSocketTransport {
	remoteURI := MakeWebSocketClientFaceURI(c.RemoteAddr())
	t := &WebSocketTransport{c: c}
	t.makeTransportBase(remoteURI, localURI, ndn.NonLocal, ndn.PointToPoint, tlv.MaxNDNPacketSize)
	t.state = ndn.Up
	return t
}

func (t *WebSocketTransport) String() string {
	return "WebSocketTransport, FaceID=" + strconv.FormatUint(t.faceID, 10) +
		", RemoteURI=" + t.remoteURI.String() + ", LocalURI=" + t.localURI.String()
}

func (t *WebSocketTransport) sendFrame(frame []byte) {
	if len(frame) > t.MTU() {
		core.LogWarn(t, "Attempted to send frame larger than MTU - DROP")
		return
	}

	core.LogDebug(t, "Sending frame of size ", len(frame))
	if err := t.c.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		core.LogWarn(t, "Unable to send on socket - DROP and Face DOWN")
		t.changeState(ndn.Down)
		return
	}
	t.nOutBytes += uint64(len(frame))
}

func (t *WebSocketTransport) runReceive() {
	core.LogTrace(t, "Starting receive thread")

	for {
		mt, message, err := t.c.ReadMessage()
		if err != nil {
			core.LogWarn(t, "Unable to read from socket (", err, ") - DROP and Face DOWN")
			t.changeState(ndn.Down)
			break
		}

		if mt != websocket.BinaryMessage {
			core.LogWarn(t, "Ignored non-binary message")
			continue
		}

		core.LogTrace(t, "Receive of size ", len(message))
		t.nInBytes += uint64(len(message))

		if len(message) > tlv.MaxNDNPacketSize {
			core.LogWarn(t, "Received too much data without valid TLV block - DROP")
			continue
		}

		t.linkService.handleIncomingFrame(message)
	}
}

func (t *WebSocketTransport) changeState(new ndn.State) {
	if t.state == new {
		return
	}

	core.LogInfo(t, "state: ", t.state, " -> ", new)
	t.state = new

	if t.state != ndn.Up {
		core.LogInfo(t, "Closing WebSocket connection")
		t.c.Close()
		t.hasQuit <- true
	}
}
