/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"time"

	"github.com/named-data/mobifd/ndn/tlv"
	"github.com/named-data/mobifd/ndn/util"
)

// Data represents an NDN Data packet.
type Data struct {
	name            *Name
	freshnessPeriod time.Duration
	flood           *FloodAnnouncement
	content         []byte
}

// NewData creates a new Data packet with the specified name and content.
func NewData(name *Name, content []byte) *Data {
	d := new(Data)
	d.name = name
	d.content = content
	return d
}

// Name returns the name of the Data packet.
func (d *Data) Name() *Name {
	return d.name
}

// Content returns the content of the Data packet.
func (d *Data) Content() []byte {
	return d.content
}

// FreshnessPeriod returns the freshness period of the Data packet.
func (d *Data) FreshnessPeriod() time.Duration {
	return d.freshnessPeriod
}

// SetFreshnessPeriod sets the freshness period of the Data packet.
func (d *Data) SetFreshnessPeriod(freshness time.Duration) {
	d.freshnessPeriod = freshness
}

// FloodAnnouncement returns the flood metadata carried in the Data packet's
// MetaInfo, or nil if absent.
func (d *Data) FloodAnnouncement() *FloodAnnouncement {
	return d.flood
}

// SetFloodAnnouncement attaches flood metadata to the Data packet.
func (d *Data) SetFloodAnnouncement(flood *FloodAnnouncement) {
	d.flood = flood
}

// IsMobilityTagged returns whether the Data packet carries a fresh-attachment
// announcement.
func (d *Data) IsMobilityTagged() bool {
	return d.flood != nil && d.flood.MobilityFlag
}

// Encode encodes the Data packet into its wire format.
func (d *Data) Encode() ([]byte, error) {
	b := tlv.NewEmptyBlock(tlv.Data)
	b.Append(d.name.Encode())

	if d.freshnessPeriod > 0 || d.flood != nil {
		metaInfo := tlv.NewEmptyBlock(tlv.MetaInfo)
		if d.freshnessPeriod > 0 {
			metaInfo.Append(tlv.EncodeNNIBlock(tlv.FreshnessPeriod, uint64(d.freshnessPeriod.Milliseconds())))
		}
		if d.flood != nil {
			d.flood.appendTo(metaInfo)
		}
		b.Append(metaInfo)
	}

	b.Append(tlv.NewBlock(tlv.Content, d.content))

	return b.Wire()
}

// DecodeData decodes a Data packet from its wire format.
func DecodeData(wire []byte) (*Data, error) {
	b, _, err := tlv.DecodeBlock(wire)
	if err != nil {
		return nil, err
	}
	if b.Type() != tlv.Data {
		return nil, tlv.ErrUnexpected
	}
	if err := b.Parse(); err != nil {
		return nil, err
	}

	d := new(Data)
	hasName := false
	for _, elem := range b.Subelements() {
		switch elem.Type() {
		case tlv.Name:
			d.name, err = DecodeName(elem)
			if err != nil {
				return nil, err
			}
			hasName = true
		case tlv.MetaInfo:
			if err := elem.Parse(); err != nil {
				return nil, err
			}
			if freshness := elem.Find(tlv.FreshnessPeriod); freshness != nil {
				period, err := tlv.DecodeNNIBlock(freshness)
				if err != nil {
					return nil, err
				}
				d.freshnessPeriod = time.Duration(period) * time.Millisecond
			}
			d.flood = decodeFloodAnnouncement(elem)
		case tlv.Content:
			d.content = elem.Value()
		}
	}

	if !hasName {
		return nil, util.ErrNonExistent
	}
	return d, nil
}
