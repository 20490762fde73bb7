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

	"github.com/stretchr/testify/assert"
)

func TestFloodDedupSeenUntilWindowElapses(t *testing.T) {
	SetFloodTunables(100*time.Millisecond, 100, time.Second)
	defer SetFloodTunables(5*time.Second, 100, time.Second)
	dedup := NewFloodDedup()

	assert.False(t, dedup.Seen(42))
	dedup.Record(42)
	assert.True(t, dedup.Seen(42))

	// Sweeping before the window elapses leaves the record in place
	dedup.RemoveExpiredEntries()
	assert.True(t, dedup.Seen(42))

	time.Sleep(150 * time.Millisecond)

	// Still seen until the sweep actually runs
	assert.True(t, dedup.Seen(42))
	dedup.RemoveExpiredEntries()
	assert.False(t, dedup.Seen(42))
}

func TestFloodDedupRecordIdempotent(t *testing.T) {
	SetFloodTunables(100*time.Millisecond, 100, time.Second)
	defer SetFloodTunables(5*time.Second, 100, time.Second)
	dedup := NewFloodDedup()

	dedup.Record(7)
	dedup.Record(7)
	dedup.Record(7)
	assert.True(t, dedup.Seen(7))

	time.Sleep(150 * time.Millisecond)
	dedup.RemoveExpiredEntries()
	assert.False(t, dedup.Seen(7))
}

func TestFloodDedupIndependentIds(t *testing.T) {
	SetFloodTunables(5*time.Second, 100, time.Second)
	dedup := NewFloodDedup()

	dedup.Record(1)
	assert.True(t, dedup.Seen(1))
	assert.False(t, dedup.Seen(2))
}
