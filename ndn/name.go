/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/named-data/mobifd/ndn/tlv"
	"github.com/named-data/mobifd/ndn/util"
)

// NameComponent represents an NDN name component.
type NameComponent interface {
	String() string
	DeepCopy() NameComponent
	Type() uint16
	Value() []byte
	Equals(other NameComponent) bool
	Encode() *tlv.Block
}

// DecodeNameComponent decodes a name component from the wire.
func DecodeNameComponent(wire *tlv.Block) (NameComponent, error) {
	if wire == nil {
		return nil, util.ErrNonExistent
	}

	switch wire.Type() {
	case tlv.GenericNameComponent:
		return NewGenericNameComponent(wire.Value()), nil
	default:
		if wire.Type() > math.MaxUint16 {
			return nil, util.ErrOutOfRange
		}
		return NewBaseNameComponent(uint16(wire.Type()), wire.Value()), nil
	}
}

// BaseNameComponent represents a name component without a specialized type.
type BaseNameComponent struct {
	tlvType uint16
	value   []byte
}

// NewBaseNameComponent creates a name component of an arbitrary type.
func NewBaseNameComponent(tlvType uint16, value []byte) *BaseNameComponent {
	n := new(BaseNameComponent)
	n.tlvType = tlvType
	n.value = value
	return n
}

func (n *BaseNameComponent) String() string {
	return strconv.FormatUint(uint64(n.tlvType), 10) + "=" + escapeComponent(n.value)
}

// DeepCopy makes a deep copy of the name component.
func (n *BaseNameComponent) DeepCopy() NameComponent {
	newN := new(BaseNameComponent)
	newN.tlvType = n.tlvType
	newN.value = make([]byte, len(n.value))
	copy(newN.value, n.value)
	return newN
}

// Type returns the TLV type of the name component.
func (n *BaseNameComponent) Type() uint16 {
	return n.tlvType
}

// Value returns the TLV value of the name component.
func (n *BaseNameComponent) Value() []byte {
	return n.value
}

// Equals returns whether the two name components match.
func (n *BaseNameComponent) Equals(other NameComponent) bool {
	return n.tlvType == other.Type() && bytes.Equal(n.value, other.Value())
}

// Encode encodes the name component into a block.
func (n *BaseNameComponent) Encode() *tlv.Block {
	return tlv.NewBlock(uint32(n.tlvType), n.value)
}

// GenericNameComponent represents a generic NDN name component.
type GenericNameComponent struct {
	BaseNameComponent
}

// NewGenericNameComponent creates a new GenericNameComponent.
func NewGenericNameComponent(value []byte) *GenericNameComponent {
	n := new(GenericNameComponent)
	n.tlvType = tlv.GenericNameComponent
	n.value = value
	return n
}

func (n *GenericNameComponent) String() string {
	return escapeComponent(n.value)
}

// DeepCopy makes a deep copy of the name component.
func (n *GenericNameComponent) DeepCopy() NameComponent {
	newN := new(GenericNameComponent)
	newN.tlvType = n.tlvType
	newN.value = make([]byte, len(n.value))
	copy(newN.value, n.value)
	return newN
}

func escapeComponent(in []byte) string {
	out := make([]byte, 0, 3*len(in)) // Capacity of 3 * len is worst case if every character has to be escaped
	nPeriods := 0
	for _, b := range in {
		switch {
		case b == '.':
			nPeriods++
			fallthrough
		case (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '-' || b == '_' || b == '~':
			out = append(out, b)
		default:
			out = append(out, '%', 0, 0)
			hex.Encode(out[len(out)-2:], []byte{b})
		}
	}
	if nPeriods == len(in) {
		out = append(out, '.', '.', '.')
	}
	return string(out)
}

func unescapeComponent(in string) (string, error) {
	out := make([]byte, 0, len(in))
	for i := 0; i < len(in); i++ {
		if in[i] == '%' {
			if len(in) <= i+2 {
				return "", errors.New("incomplete escape sequence")
			}
			unescaped, err := hex.DecodeString(in[i+1 : i+3])
			if err != nil {
				return "", errors.New("could not decode escape sequence")
			}
			out = append(out, unescaped...)
			i += 2
		} else {
			out = append(out, in[i])
		}
	}
	return string(out), nil
}

// Name represents an NDN name: an ordered sequence of opaque components.
type Name struct {
	components   []NameComponent
	wire         *tlv.Block
	cachedString string
}

// NewName constructs an empty name.
func NewName() *Name {
	n := new(Name)
	n.components = make([]NameComponent, 0)
	return n
}

// NameFromString decodes a name from a URI-like string representation.
func NameFromString(str string) (*Name, error) {
	n := NewName()

	if len(str) == 0 || str == "/" {
		return n, nil
	}
	if str[0] != '/' {
		return nil, errors.New("name must begin with '/'")
	}

	for _, component := range strings.Split(str[1:], "/") {
		if len(component) == 0 {
			return nil, errors.New("name contains an empty component")
		}

		var c NameComponent
		if strings.Contains(component, "=") {
			componentSplit := strings.SplitN(component, "=", 2)
			unescapedValue, err := unescapeComponent(componentSplit[1])
			if err != nil {
				return nil, errors.New("error unescaping component value")
			}
			t, err := strconv.ParseUint(componentSplit[0], 10, 16)
			if err != nil {
				return nil, errors.New("unable to decode component type \"" + componentSplit[0] + "\"")
			}
			c = NewBaseNameComponent(uint16(t), []byte(unescapedValue))
		} else {
			unescaped, err := unescapeComponent(component)
			if err != nil {
				return nil, errors.New("error unescaping component value")
			}
			c = NewGenericNameComponent([]byte(unescaped))
		}
		n.Append(c)
	}

	return n, nil
}

// DecodeName decodes a name from wire encoding.
func DecodeName(b *tlv.Block) (*Name, error) {
	if b == nil {
		return nil, util.ErrNonExistent
	}
	if b.Type() != tlv.Name {
		return nil, tlv.ErrUnexpected
	}

	if len(b.Subelements()) == 0 {
		if err := b.Parse(); err != nil {
			return nil, err
		}
	}
	n := NewName()
	for _, elem := range b.Subelements() {
		component, err := DecodeNameComponent(elem)
		if err != nil {
			return nil, err
		}
		n.Append(component)
	}
	return n, nil
}

func (n *Name) String() string {
	if len(n.cachedString) > 0 {
		return n.cachedString
	}

	if n.Size() == 0 {
		return "/"
	}

	var out string
	for _, component := range n.components {
		out += "/" + component.String()
	}
	n.cachedString = out
	return out
}

// Append adds the specified name component to the end of the name.
func (n *Name) Append(component NameComponent) *Name {
	n.components = append(n.components, component)
	n.wire = nil
	n.cachedString = ""
	return n
}

// At returns the name component at the specified index. If out of range, nil is returned.
func (n *Name) At(index int) NameComponent {
	if index < -len(n.components) || index >= len(n.components) {
		return nil
	}

	if index < 0 {
		return n.components[len(n.components)+index]
	}
	return n.components[index]
}

// DeepCopy returns a deep copy of the name.
func (n *Name) DeepCopy() *Name {
	name := NewName()
	for _, component := range n.components {
		name.components = append(name.components, component.DeepCopy())
	}
	return name
}

// Equals returns whether the specified name is equal to this name.
func (n *Name) Equals(other *Name) bool {
	if other == nil || n.Size() != other.Size() {
		return false
	}

	for i := 0; i < n.Size(); i++ {
		if !n.At(i).Equals(other.At(i)) {
			return false
		}
	}

	return true
}

// Prefix returns a name prefix of the specified number of components. A
// negative size counts from the end of the name, so Prefix(-1) strips the
// last component. If size is greater than or equal to the size of the name,
// this returns a copy of the name.
func (n *Name) Prefix(size int) *Name {
	if size < 0 {
		size += len(n.components)
		if size < 0 {
			size = 0
		}
	}
	if size > len(n.components) {
		size = len(n.components)
	}

	prefix := NewName()
	for i := 0; i < size; i++ {
		prefix.components = append(prefix.components, n.components[i].DeepCopy())
	}
	return prefix
}

// PrefixOf returns whether this name is a prefix of the specified name.
func (n *Name) PrefixOf(other *Name) bool {
	if other == nil || n.Size() > other.Size() {
		return false
	}

	for i := 0; i < n.Size(); i++ {
		if !n.At(i).Equals(other.At(i)) {
			return false
		}
	}

	return true
}

// Size returns the number of components in the name.
func (n *Name) Size() int {
	return len(n.components)
}

// Hash returns an xxhash digest of the name, suitable as a map key. Digests
// are order-sensitive: names with the same components in a different order
// hash differently.
func (n *Name) Hash() uint64 {
	return xxhash.Sum64String(n.String())
}

// Encode encodes the name into a block.
func (n *Name) Encode() *tlv.Block {
	if n.wire == nil {
		n.wire = tlv.NewEmptyBlock(tlv.Name)
		for _, component := range n.components {
			n.wire.Append(component.Encode())
		}
	}
	return n.wire
}
