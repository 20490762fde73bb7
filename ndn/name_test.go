/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameFromString(t *testing.T) {
	name, err := NameFromString("/producer/video/segment1")
	assert.NoError(t, err)
	assert.Equal(t, 3, name.Size())
	assert.Equal(t, "producer", name.At(0).String())
	assert.Equal(t, "/producer/video/segment1", name.String())

	empty, err := NameFromString("/")
	assert.NoError(t, err)
	assert.Equal(t, 0, empty.Size())
	assert.Equal(t, "/", empty.String())

	_, err = NameFromString("producer/video")
	assert.Error(t, err)

	_, err = NameFromString("/producer//video")
	assert.Error(t, err)
}

func TestNameAt(t *testing.T) {
	name, _ := NameFromString("/a/b/c")

	assert.Equal(t, "a", name.At(0).String())
	assert.Equal(t, "c", name.At(2).String())
	assert.Equal(t, "c", name.At(-1).String())
	assert.Equal(t, "a", name.At(-3).String())
	assert.Nil(t, name.At(3))
	assert.Nil(t, name.At(-4))
}

func TestNamePrefix(t *testing.T) {
	name, _ := NameFromString("/a/b/c")

	assert.Equal(t, "/a/b", name.Prefix(2).String())
	assert.Equal(t, "/a/b", name.Prefix(-1).String())
	assert.Equal(t, "/a", name.Prefix(-2).String())
	assert.Equal(t, 0, name.Prefix(-3).Size())
	assert.Equal(t, 3, name.Prefix(5).Size())
}

func TestNamePrefixOf(t *testing.T) {
	a, _ := NameFromString("/a")
	ab, _ := NameFromString("/a/b")
	abc, _ := NameFromString("/a/b/c")
	ax, _ := NameFromString("/a/x")

	assert.True(t, a.PrefixOf(ab))
	assert.True(t, ab.PrefixOf(abc))
	assert.True(t, ab.PrefixOf(ab))
	assert.False(t, abc.PrefixOf(ab))
	assert.False(t, ax.PrefixOf(abc))
}

func TestNameEncodeDecode(t *testing.T) {
	name, _ := NameFromString("/producer/video")

	wire := name.Encode()
	decoded, err := DecodeName(wire)
	assert.NoError(t, err)
	assert.True(t, name.Equals(decoded))
}

func TestNameDeepCopyIndependence(t *testing.T) {
	name, _ := NameFromString("/a/b")
	clone := name.DeepCopy()
	clone.Append(NewGenericNameComponent([]byte("c")))

	assert.Equal(t, 2, name.Size())
	assert.Equal(t, 3, clone.Size())
	assert.True(t, name.Equals(clone.Prefix(2)))
}

func TestNameHashEquality(t *testing.T) {
	name1, _ := NameFromString("/a/b")
	name2, _ := NameFromString("/a/b")
	name3, _ := NameFromString("/a/c")

	assert.Equal(t, name1.Hash(), name2.Hash())
	assert.NotEqual(t, name1.Hash(), name3.Hash())

	// Digests must distinguish component order and repetition
	reordered, _ := NameFromString("/b/a")
	doubledA, _ := NameFromString("/a/a")
	doubledB, _ := NameFromString("/b/b")
	assert.NotEqual(t, name1.Hash(), reordered.Hash())
	assert.NotEqual(t, doubledA.Hash(), doubledB.Hash())
}
