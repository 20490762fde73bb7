/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import (
	"errors"

	"github.com/named-data/mobifd/ndn/util"
)

// ErrUnexpected indicates a block of an unexpected TLV type.
var ErrUnexpected = errors.New("unexpected TLV type")

// Block represents a TLV block, potentially containing subelements.
type Block struct {
	tlvType     uint32
	value       []byte
	subelements []*Block
	wire        []byte
}

// NewBlock creates a block with the specified type and value.
func NewBlock(tlvType uint32, value []byte) *Block {
	b := new(Block)
	b.tlvType = tlvType
	b.value = value
	return b
}

// NewEmptyBlock creates a zero-length block of the specified type.
func NewEmptyBlock(tlvType uint32) *Block {
	b := new(Block)
	b.tlvType = tlvType
	return b
}

// Type returns the TLV type of the block.
func (b *Block) Type() uint32 {
	return b.tlvType
}

// SetType sets the TLV type of the block.
func (b *Block) SetType(tlvType uint32) {
	b.tlvType = tlvType
	b.wire = nil
}

// Value returns the TLV value of the block.
func (b *Block) Value() []byte {
	return b.value
}

// SetValue sets the TLV value of the block, dropping any subelements.
func (b *Block) SetValue(value []byte) {
	b.value = value
	b.subelements = nil
	b.wire = nil
}

// Append adds the specified subelement to the end of the block's subelements.
func (b *Block) Append(sub *Block) {
	b.subelements = append(b.subelements, sub)
	b.value = nil
	b.wire = nil
}

// Subelements returns the subelements of the block.
func (b *Block) Subelements() []*Block {
	return b.subelements
}

// Find returns the first subelement of the specified type, or nil if none exists.
func (b *Block) Find(tlvType uint32) *Block {
	for _, sub := range b.subelements {
		if sub.tlvType == tlvType {
			return sub
		}
	}
	return nil
}

// Wire returns the wire encoding of the block, encoding it if needed.
func (b *Block) Wire() ([]byte, error) {
	if b.wire != nil {
		return b.wire, nil
	}

	value := b.value
	if len(b.subelements) > 0 {
		value = make([]byte, 0)
		for _, sub := range b.subelements {
			subWire, err := sub.Wire()
			if err != nil {
				return nil, err
			}
			value = append(value, subWire...)
		}
	}

	wire := EncodeVarNum(uint64(b.tlvType))
	wire = append(wire, EncodeVarNum(uint64(len(value)))...)
	wire = append(wire, value...)
	b.wire = wire
	return b.wire, nil
}

// Parse parses the block's value into subelements. The value must consist
// entirely of well-formed TLV blocks.
func (b *Block) Parse() error {
	b.subelements = make([]*Block, 0)
	for pos := 0; pos < len(b.value); {
		sub, size, err := DecodeBlock(b.value[pos:])
		if err != nil {
			return err
		}
		b.subelements = append(b.subelements, sub)
		pos += size
	}
	return nil
}

// DecodeBlock decodes the first TLV block in the specified byte slice,
// returning the block and its total encoded size.
func DecodeBlock(bytes []byte) (*Block, int, error) {
	tlvType, tlvLength, tlvSize, err := DecodeTypeLength(bytes)
	if err != nil {
		return nil, 0, err
	}
	if len(bytes) < tlvSize {
		return nil, 0, util.ErrTooShort
	}

	b := new(Block)
	b.tlvType = tlvType
	b.value = make([]byte, tlvLength)
	copy(b.value, bytes[tlvSize-tlvLength:tlvSize])
	b.wire = make([]byte, tlvSize)
	copy(b.wire, bytes[:tlvSize])
	return b, tlvSize, nil
}
