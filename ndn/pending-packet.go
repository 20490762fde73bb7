/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

// PendingPacket represents a pending packet to be processed or sent, along
// with associated metadata set by the link layer.
type PendingPacket struct {
	Wire           []byte
	IncomingFaceID *uint64
	NextHopFaceID  *uint64
}
