/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"github.com/named-data/mobifd/ndn/tlv"
)

// FloodAnnouncement contains the flood-control metadata carried by a
// flood-eligible packet. On a Data packet it announces a producer's fresh
// point of attachment; on an Interest it marks the request as eligible for
// controlled flooding when no route exists. An announcement is immutable once
// attached to a packet; forwarders may only decrement the hop limit on copies
// they re-propagate.
type FloodAnnouncement struct {
	MobilityFlag bool
	FloodID      *uint64
	NewSequence  *uint32
	TraceHint    []byte
	HopLimit     *uint8
}

// HasRequiredDataFields returns whether the announcement carries the fields
// required on a mobility-tagged Data packet.
func (f *FloodAnnouncement) HasRequiredDataFields() bool {
	return f.FloodID != nil && f.NewSequence != nil
}

// appendTo appends the announcement's TLV blocks to the specified parent block.
func (f *FloodAnnouncement) appendTo(parent *tlv.Block) {
	if f.MobilityFlag {
		parent.Append(tlv.NewEmptyBlock(tlv.MobilityFlag))
	}
	if f.FloodID != nil {
		parent.Append(tlv.EncodeNNIBlock(tlv.FloodID, *f.FloodID))
	}
	if f.NewSequence != nil {
		parent.Append(tlv.EncodeNNIBlock(tlv.NewFaceSeq, uint64(*f.NewSequence)))
	}
	if len(f.TraceHint) > 0 {
		parent.Append(tlv.NewBlock(tlv.TraceHint, f.TraceHint))
	}
	if f.HopLimit != nil {
		parent.Append(tlv.NewBlock(tlv.FloodHopLimit, []byte{*f.HopLimit}))
	}
}

// decodeFloodAnnouncement extracts flood metadata from the subelements of the
// specified parent block (a Data MetaInfo or Interest ApplicationParameters).
// Returns nil if the parent carries no flood-related blocks at all. Individual
// malformed blocks are skipped rather than failing the whole packet.
func decodeFloodAnnouncement(parent *tlv.Block) *FloodAnnouncement {
	f := new(FloodAnnouncement)
	found := false

	for _, elem := range parent.Subelements() {
		switch elem.Type() {
		case tlv.MobilityFlag:
			f.MobilityFlag = true
			found = true
		case tlv.FloodID:
			if id, err := tlv.DecodeNNIBlock(elem); err == nil {
				f.FloodID = new(uint64)
				*f.FloodID = id
				found = true
			}
		case tlv.NewFaceSeq:
			if seq, err := tlv.DecodeNNIBlock(elem); err == nil && seq <= 0xFFFFFFFF {
				f.NewSequence = new(uint32)
				*f.NewSequence = uint32(seq)
				found = true
			}
		case tlv.TraceHint:
			if len(elem.Value()) > 0 {
				f.TraceHint = make([]byte, len(elem.Value()))
				copy(f.TraceHint, elem.Value())
				found = true
			}
		case tlv.FloodHopLimit:
			if len(elem.Value()) == 1 {
				f.HopLimit = new(uint8)
				*f.HopLimit = elem.Value()[0]
				found = true
			}
		}
	}

	if !found {
		return nil
	}
	return f
}
