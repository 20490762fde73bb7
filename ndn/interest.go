/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/named-data/mobifd/ndn/tlv"
	"github.com/named-data/mobifd/ndn/util"
)

// Interest represents an NDN Interest packet.
type Interest struct {
	name        *Name
	nonce       uint32
	mustBeFresh bool
	lifetime    time.Duration
	hopLimit    *uint8
	flood       *FloodAnnouncement
}

// NewInterest creates a new Interest with the specified name and a random nonce.
func NewInterest(name *Name) *Interest {
	i := new(Interest)
	i.name = name
	i.nonce = rand.Uint32()
	i.lifetime = 4000 * time.Millisecond
	return i
}

// Name returns the name of the Interest.
func (i *Interest) Name() *Name {
	return i.name
}

// Nonce returns the nonce of the Interest.
func (i *Interest) Nonce() uint32 {
	return i.nonce
}

// SetNonce sets the nonce of the Interest.
func (i *Interest) SetNonce(nonce uint32) {
	i.nonce = nonce
}

// MustBeFresh returns whether the Interest requires fresh Data.
func (i *Interest) MustBeFresh() bool {
	return i.mustBeFresh
}

// SetMustBeFresh sets whether the Interest requires fresh Data.
func (i *Interest) SetMustBeFresh(mustBeFresh bool) {
	i.mustBeFresh = mustBeFresh
}

// Lifetime returns the lifetime of the Interest.
func (i *Interest) Lifetime() time.Duration {
	return i.lifetime
}

// SetLifetime sets the lifetime of the Interest.
func (i *Interest) SetLifetime(lifetime time.Duration) {
	i.lifetime = lifetime
}

// HopLimit returns the hop limit of the Interest, or nil if unset.
func (i *Interest) HopLimit() *uint8 {
	return i.hopLimit
}

// SetHopLimit sets the hop limit of the Interest.
func (i *Interest) SetHopLimit(hopLimit uint8) {
	i.hopLimit = new(uint8)
	*i.hopLimit = hopLimit
}

// FloodAnnouncement returns the flood metadata carried in the Interest's
// application parameters, or nil if absent.
func (i *Interest) FloodAnnouncement() *FloodAnnouncement {
	return i.flood
}

// SetFloodAnnouncement attaches flood metadata to the Interest.
func (i *Interest) SetFloodAnnouncement(flood *FloodAnnouncement) {
	i.flood = flood
}

// IsFloodEligible returns whether the Interest requests controlled flooding
// on route lookup failure.
func (i *Interest) IsFloodEligible() bool {
	return i.flood != nil && i.flood.MobilityFlag
}

// Encode encodes the Interest into its wire format.
func (i *Interest) Encode() ([]byte, error) {
	b := tlv.NewEmptyBlock(tlv.Interest)
	b.Append(i.name.Encode())

	if i.mustBeFresh {
		b.Append(tlv.NewEmptyBlock(tlv.MustBeFresh))
	}

	nonce := make([]byte, 4)
	binary.BigEndian.PutUint32(nonce, i.nonce)
	b.Append(tlv.NewBlock(tlv.Nonce, nonce))

	b.Append(tlv.EncodeNNIBlock(tlv.InterestLifetime, uint64(i.lifetime.Milliseconds())))

	if i.hopLimit != nil {
		b.Append(tlv.NewBlock(tlv.HopLimit, []byte{*i.hopLimit}))
	}

	if i.flood != nil {
		params := tlv.NewEmptyBlock(tlv.ApplicationParameters)
		i.flood.appendTo(params)
		b.Append(params)
	}

	return b.Wire()
}

// DecodeInterest decodes an Interest from its wire format.
func DecodeInterest(wire []byte) (*Interest, error) {
	b, _, err := tlv.DecodeBlock(wire)
	if err != nil {
		return nil, err
	}
	if b.Type() != tlv.Interest {
		return nil, tlv.ErrUnexpected
	}
	if err := b.Parse(); err != nil {
		return nil, err
	}

	i := new(Interest)
	i.lifetime = 4000 * time.Millisecond
	hasName := false
	hasNonce := false
	for _, elem := range b.Subelements() {
		switch elem.Type() {
		case tlv.Name:
			i.name, err = DecodeName(elem)
			if err != nil {
				return nil, err
			}
			hasName = true
		case tlv.MustBeFresh:
			i.mustBeFresh = true
		case tlv.Nonce:
			if len(elem.Value()) != 4 {
				return nil, util.ErrOutOfRange
			}
			i.nonce = binary.BigEndian.Uint32(elem.Value())
			hasNonce = true
		case tlv.InterestLifetime:
			lifetime, err := tlv.DecodeNNIBlock(elem)
			if err != nil {
				return nil, err
			}
			i.lifetime = time.Duration(lifetime) * time.Millisecond
		case tlv.HopLimit:
			if len(elem.Value()) != 1 {
				return nil, util.ErrOutOfRange
			}
			i.hopLimit = new(uint8)
			*i.hopLimit = elem.Value()[0]
		case tlv.ApplicationParameters:
			if err := elem.Parse(); err == nil {
				i.flood = decodeFloodAnnouncement(elem)
			}
		}
	}

	if !hasName {
		return nil, util.ErrNonExistent
	}
	if !hasNonce {
		i.nonce = rand.Uint32()
	}
	return i, nil
}
