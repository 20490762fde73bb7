/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/named-data/mobifd/core"
)

// faceQueueSize is the maximum number of packets that can be buffered to be
// sent on a face.
var faceQueueSize int

// UDPUnicastPort is the unicast UDP port the forwarder listens on.
var UDPUnicastPort uint16

// WebSocketPort is the port the WebSocket listener listens on.
var WebSocketPort uint16

// Configure configures the face system.
func Configure() {
	faceQueueSize = core.GetConfigIntDefault("faces.queue_size", 1024)
	UDPUnicastPort = core.GetConfigUint16Default("faces.udp.port_unicast", 6363)
	WebSocketPort = core.GetConfigUint16Default("faces.websocket.port", 9696)
}

func init() {
	faceQueueSize = 1024
	UDPUnicastPort = 6363
	WebSocketPort = 9696
}
