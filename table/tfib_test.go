/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"testing"
	"time"

	"github.com/named-data/mobifd/ndn"
	"github.com/stretchr/testify/assert"
)

func mustName(t *testing.T, str string) *ndn.Name {
	name, err := ndn.NameFromString(str)
	assert.NoError(t, err)
	return name
}

func TestTfibInsertAndExactMatch(t *testing.T) {
	SetTfibTunables(time.Second, 100*time.Millisecond)
	tfib := NewTfib()
	prefix := mustName(t, "/producer/video")

	assert.Nil(t, tfib.FindExactMatch(prefix))

	tfib.Insert(prefix, 7, 1, 100)
	entry := tfib.FindExactMatch(prefix)
	assert.NotNil(t, entry)
	assert.Equal(t, uint64(7), entry.FaceID)
	assert.Equal(t, uint32(1), entry.Sequence)
	assert.Equal(t, uint64(100), entry.FloodID)
	assert.Equal(t, 1, tfib.Size())
}

func TestTfibLongestPrefixMatchSpecificity(t *testing.T) {
	SetTfibTunables(time.Second, 100*time.Millisecond)
	tfib := NewTfib()

	tfib.Insert(mustName(t, "/a"), 1, 1, 100)
	tfib.Insert(mustName(t, "/a/b"), 2, 1, 101)

	// The more specific entry wins
	entry := tfib.FindLongestPrefixMatch(mustName(t, "/a/b/c"))
	assert.NotNil(t, entry)
	assert.Equal(t, uint64(2), entry.FaceID)

	// Falls back to the shorter prefix when the specific one does not cover
	entry = tfib.FindLongestPrefixMatch(mustName(t, "/a/x"))
	assert.NotNil(t, entry)
	assert.Equal(t, uint64(1), entry.FaceID)

	// No entry covers an unrelated name
	assert.Nil(t, tfib.FindLongestPrefixMatch(mustName(t, "/b/c")))
}

func TestTfibInsertReplacesOnNewerSequence(t *testing.T) {
	SetTfibTunables(time.Second, 100*time.Millisecond)
	tfib := NewTfib()
	prefix := mustName(t, "/producer")

	tfib.Insert(prefix, 1, 5, 100)

	// Same flood id, lower sequence: refresh only, face unchanged
	tfib.Insert(prefix, 2, 4, 100)
	entry := tfib.FindExactMatch(prefix)
	assert.Equal(t, uint64(1), entry.FaceID)
	assert.Equal(t, uint32(5), entry.Sequence)

	// Same flood id, equal sequence: refresh only
	tfib.Insert(prefix, 2, 5, 100)
	entry = tfib.FindExactMatch(prefix)
	assert.Equal(t, uint64(1), entry.FaceID)

	// Higher sequence: replace
	tfib.Insert(prefix, 2, 6, 100)
	entry = tfib.FindExactMatch(prefix)
	assert.Equal(t, uint64(2), entry.FaceID)
	assert.Equal(t, uint32(6), entry.Sequence)

	// Different flood id: replace even with lower sequence
	tfib.Insert(prefix, 3, 2, 200)
	entry = tfib.FindExactMatch(prefix)
	assert.Equal(t, uint64(3), entry.FaceID)
	assert.Equal(t, uint32(2), entry.Sequence)
	assert.Equal(t, uint64(200), entry.FloodID)
}

func TestTfibStaleAnnouncementRefreshesExpiry(t *testing.T) {
	SetTfibTunables(200*time.Millisecond, 50*time.Millisecond)
	defer SetTfibTunables(time.Second, 100*time.Millisecond)
	tfib := NewTfib()
	prefix := mustName(t, "/producer")

	tfib.Insert(prefix, 1, 5, 100)
	time.Sleep(120 * time.Millisecond)

	// Stale re-announcement extends the lifetime
	tfib.Insert(prefix, 1, 5, 100)
	time.Sleep(120 * time.Millisecond)
	assert.NotNil(t, tfib.FindExactMatch(prefix))

	time.Sleep(150 * time.Millisecond)
	assert.Nil(t, tfib.FindExactMatch(prefix))
}

func TestTfibExpiredEntriesInvisibleUntilSwept(t *testing.T) {
	SetTfibTunables(50*time.Millisecond, 10*time.Millisecond)
	defer SetTfibTunables(time.Second, 100*time.Millisecond)
	tfib := NewTfib()
	prefix := mustName(t, "/producer")

	tfib.Insert(prefix, 1, 1, 100)
	time.Sleep(80 * time.Millisecond)

	// Expired but not yet swept: invisible to lookups, still counted
	assert.Nil(t, tfib.FindExactMatch(prefix))
	assert.Nil(t, tfib.FindLongestPrefixMatch(mustName(t, "/producer/video")))
	assert.Equal(t, 1, tfib.Size())

	tfib.RemoveExpiredEntries()
	assert.Equal(t, 0, tfib.Size())
}

func TestTfibListeners(t *testing.T) {
	SetTfibTunables(50*time.Millisecond, 10*time.Millisecond)
	defer SetTfibTunables(time.Second, 100*time.Millisecond)
	tfib := NewTfib()
	prefix := mustName(t, "/producer")

	inserts := 0
	removes := 0
	tfib.OnAfterInsert(func(p *ndn.Name, faceID uint64, sequence uint32) {
		inserts++
		assert.True(t, p.Equals(prefix))
	})
	tfib.OnBeforeRemove(func(p *ndn.Name) {
		removes++
		assert.True(t, p.Equals(prefix))
	})

	tfib.Insert(prefix, 1, 1, 100)
	assert.Equal(t, 1, inserts)

	// Refresh does not fire afterInsert
	tfib.Insert(prefix, 1, 1, 100)
	assert.Equal(t, 1, inserts)

	// Replacement does
	tfib.Insert(prefix, 2, 2, 100)
	assert.Equal(t, 2, inserts)

	// Explicit removal fires beforeRemove
	tfib.Remove(prefix)
	assert.Equal(t, 1, removes)

	// Sweep removal fires beforeRemove too
	tfib.Insert(prefix, 1, 3, 101)
	time.Sleep(80 * time.Millisecond)
	tfib.RemoveExpiredEntries()
	assert.Equal(t, 2, removes)
}
