/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVarNumRoundtrip(t *testing.T) {
	for _, v := range []uint64{0, 0xFC, 0xFD, 0xFFFF, 0x10000, 0xFFFFFFFF, 0x100000000} {
		encoded := EncodeVarNum(v)
		decoded, size, err := DecodeVarNum(encoded)
		assert.NoError(t, err)
		assert.Equal(t, v, decoded)
		assert.Equal(t, len(encoded), size)
	}
}

func TestVarNumTooShort(t *testing.T) {
	_, _, err := DecodeVarNum([]byte{})
	assert.Error(t, err)
	_, _, err = DecodeVarNum([]byte{0xFD, 0x01})
	assert.Error(t, err)
}

func TestNNIRoundtrip(t *testing.T) {
	for _, v := range []uint64{0, 0xFF, 0x100, 0xFFFF, 0x10000, 0xFFFFFFFF, 0x100000000} {
		decoded, err := DecodeNNI(EncodeNNI(v))
		assert.NoError(t, err)
		assert.Equal(t, v, decoded)
	}
}

func TestBlockWireAndDecode(t *testing.T) {
	b := NewBlock(HopLimit, []byte{0x03})
	wire, err := b.Wire()
	assert.NoError(t, err)
	assert.Equal(t, []byte{byte(HopLimit), 0x01, 0x03}, wire)

	decoded, size, err := DecodeBlock(wire)
	assert.NoError(t, err)
	assert.Equal(t, len(wire), size)
	assert.Equal(t, uint32(HopLimit), decoded.Type())
	assert.Equal(t, []byte{0x03}, decoded.Value())
}

func TestBlockParseSubelements(t *testing.T) {
	parent := NewEmptyBlock(MetaInfo)
	parent.Append(NewEmptyBlock(MobilityFlag))
	parent.Append(EncodeNNIBlock(FloodID, 42))
	wire, err := parent.Wire()
	assert.NoError(t, err)

	decoded, _, err := DecodeBlock(wire)
	assert.NoError(t, err)
	assert.NoError(t, decoded.Parse())
	assert.Len(t, decoded.Subelements(), 2)
	assert.NotNil(t, decoded.Find(MobilityFlag))
	floodID, err := DecodeNNIBlock(decoded.Find(FloodID))
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), floodID)
	assert.Nil(t, decoded.Find(NewFaceSeq))
}

func TestDecodeBlockOversizeLengthRejected(t *testing.T) {
	// An 8-byte length of all ones must not truncate when narrowed to int
	hostile := []byte{Data, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	assert.NotPanics(t, func() {
		_, _, err := DecodeBlock(hostile)
		assert.Error(t, err)
	})

	// A length just beyond the maximum packet size is also rejected
	_, _, _, err := DecodeTypeLength([]byte{Data, 0xFD, 0x22, 0x61})
	assert.Error(t, err)

	_, _, _, err = DecodeTypeLength([]byte{Data, 0xFD, 0x22, 0x60})
	assert.NoError(t, err)
}

func TestDecodeBlockTruncated(t *testing.T) {
	b := NewBlock(Name, []byte{0x01, 0x02, 0x03, 0x04})
	wire, err := b.Wire()
	assert.NoError(t, err)

	_, _, err = DecodeBlock(wire[:len(wire)-1])
	assert.Error(t, err)
}
