/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

// MaxNDNPacketSize is the maximum allowed NDN packet size.
const MaxNDNPacketSize = 8800

// TLV types for core packet encoding.
const (
	Interest              = 0x05
	Data                  = 0x06
	Name                  = 0x07
	GenericNameComponent  = 0x08
	Nonce                 = 0x0A
	InterestLifetime      = 0x0C
	MustBeFresh           = 0x12
	MetaInfo              = 0x14
	Content               = 0x15
	FreshnessPeriod       = 0x19
	HopLimit              = 0x22
	ApplicationParameters = 0x24
)

// TLV types for the flood-control (OptoFlood) extension. These values are in
// the application-specific range [128, 252].
const (
	MobilityFlag  = 201
	FloodID       = 202
	NewFaceSeq    = 203
	TraceHint     = 204
	FloodHopLimit = 205
)
