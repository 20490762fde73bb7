/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/named-data/mobifd/utils/priority_queue"
)

// FloodDedup tracks recently-seen flood identifiers for a forwarding thread.
// Floods by construction reach a node on multiple links; the cache suppresses
// reprocessing of every arrival after the first.
type FloodDedup struct {
	list            map[uint64]bool
	expirationQueue priority_queue.Queue[uint64, int64]
	Ticker          *time.Ticker
}

// NewFloodDedup creates a new flood dedup cache for a forwarding thread.
func NewFloodDedup() *FloodDedup {
	d := new(FloodDedup)
	d.list = make(map[uint64]bool)
	d.expirationQueue = priority_queue.New[uint64, int64]()
	d.Ticker = time.NewTicker(100 * time.Millisecond)
	return d
}

// Seen returns whether the specified flood id has a live record.
func (d *FloodDedup) Seen(floodID uint64) bool {
	_, ok := d.list[floodID]
	return ok
}

// Record inserts a record for the specified flood id with the current
// timestamp. Recording an already-present id has no effect: once seen, a
// flood id stays seen for the full window.
func (d *FloodDedup) Record(floodID uint64) {
	if _, exists := d.list[floodID]; !exists {
		d.list[floodID] = true
		d.expirationQueue.Push(floodID, time.Now().Add(floodDedupLifetime).UnixNano())
	}
}

// RemoveExpiredEntries removes expired records from the cache, up to a fixed
// batch size per sweep.
func (d *FloodDedup) RemoveExpiredEntries() {
	evicted := 0
	for d.expirationQueue.Len() > 0 && d.expirationQueue.PeekPriority() < time.Now().UnixNano() {
		floodID := d.expirationQueue.Pop()
		delete(d.list, floodID)
		evicted++

		if evicted >= 100 {
			break
		}
	}
}
