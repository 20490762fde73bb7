/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/ndn"
)

// TfibEntry represents an entry in the Temporary FIB. Entries are created by
// flood announcements to establish short-lived forwarding paths during
// producer mobility events, bridging the gap until global routing converges.
type TfibEntry struct {
	Prefix   *ndn.Name
	FaceID   uint64
	Sequence uint32
	FloodID  uint64
	Expiry   time.Time
}

// IsExpired returns whether the entry's lifetime has elapsed.
func (e *TfibEntry) IsExpired() bool {
	return !time.Now().Before(e.Expiry)
}

func (e *TfibEntry) refresh() {
	e.Expiry = time.Now().Add(tfibEntryLifetime)
}

// TfibAfterInsertListener is notified after an entry is created or replaced.
type TfibAfterInsertListener func(prefix *ndn.Name, faceID uint64, sequence uint32)

// TfibBeforeRemoveListener is notified before an entry is removed.
type TfibBeforeRemoveListener func(prefix *ndn.Name)

// Tfib is the Temporary FIB for a forwarding thread. It is owned exclusively
// by that thread's event loop: all mutation happens between the loop's I/O
// wait points, so no locking is required.
type Tfib struct {
	entries map[string]*TfibEntry

	afterInsertListeners  []TfibAfterInsertListener
	beforeRemoveListeners []TfibBeforeRemoveListener

	// Ticker triggers the periodic eviction sweep.
	Ticker *time.Ticker
}

// NewTfib creates a new Temporary FIB for a forwarding thread.
func NewTfib() *Tfib {
	t := new(Tfib)
	t.entries = make(map[string]*TfibEntry)
	t.Ticker = time.NewTicker(tfibCleanupInterval)
	return t
}

func (t *Tfib) String() string {
	return "TFIB"
}

// Size returns the number of entries, including any not yet swept.
func (t *Tfib) Size() int {
	return len(t.entries)
}

// OnAfterInsert registers a listener fired after every entry create/replace.
func (t *Tfib) OnAfterInsert(listener TfibAfterInsertListener) {
	t.afterInsertListeners = append(t.afterInsertListeners, listener)
}

// OnBeforeRemove registers a listener fired before every entry removal.
func (t *Tfib) OnBeforeRemove(listener TfibBeforeRemoveListener) {
	t.beforeRemoveListeners = append(t.beforeRemoveListeners, listener)
}

// FindExactMatch returns the live entry whose prefix matches the specified
// prefix exactly, or nil if none exists.
func (t *Tfib) FindExactMatch(prefix *ndn.Name) *TfibEntry {
	entry, ok := t.entries[prefix.String()]
	if ok && !entry.IsExpired() {
		return entry
	}
	return nil
}

// FindLongestPrefixMatch returns the live entry with the longest prefix
// matching the specified name, or nil if none exists. The exact name is tried
// first, then the last component is stripped repeatedly until a live entry is
// found or the name is exhausted, so the most specific available route wins.
func (t *Tfib) FindLongestPrefixMatch(name *ndn.Name) *TfibEntry {
	if entry := t.FindExactMatch(name); entry != nil {
		return entry
	}

	for prefix := name.Prefix(-1); prefix.Size() > 0; prefix = prefix.Prefix(-1) {
		if entry, ok := t.entries[prefix.String()]; ok && !entry.IsExpired() {
			return entry
		}
	}
	return nil
}

// Insert creates or updates the entry for the specified prefix. An existing
// entry is replaced only when the new announcement carries a higher sequence
// number or a different flood id; a stale re-announcement for the same
// attachment merely refreshes the expiry. Replacement rather than merging
// avoids carrying stale partial state when attachment events race.
func (t *Tfib) Insert(prefix *ndn.Name, faceID uint64, sequence uint32, floodID uint64) {
	key := prefix.String()

	if existing, ok := t.entries[key]; ok {
		if sequence > existing.Sequence || floodID != existing.FloodID {
			core.LogDebug(t, "Replacing entry for ", key, ", FaceID=", faceID, ", Seq=", sequence, ", FloodID=", floodID)
			t.entries[key] = &TfibEntry{
				Prefix:   prefix,
				FaceID:   faceID,
				Sequence: sequence,
				FloodID:  floodID,
				Expiry:   time.Now().Add(tfibEntryLifetime),
			}
			t.notifyAfterInsert(prefix, faceID, sequence)
		} else {
			core.LogDebug(t, "Refreshing entry for ", key)
			existing.refresh()
		}
		return
	}

	core.LogDebug(t, "Creating entry for ", key, ", FaceID=", faceID, ", Seq=", sequence, ", FloodID=", floodID)
	t.entries[key] = &TfibEntry{
		Prefix:   prefix,
		FaceID:   faceID,
		Sequence: sequence,
		FloodID:  floodID,
		Expiry:   time.Now().Add(tfibEntryLifetime),
	}
	t.notifyAfterInsert(prefix, faceID, sequence)
}

// Remove deletes the entry for the specified prefix, if present.
func (t *Tfib) Remove(prefix *ndn.Name) {
	key := prefix.String()
	if entry, ok := t.entries[key]; ok {
		t.notifyBeforeRemove(entry.Prefix)
		delete(t.entries, key)
		core.LogDebug(t, "Removed entry for ", key)
	}
}

// RemoveExpiredEntries removes all expired entries. Expired prefixes are
// collected first and then removed, to avoid mutating the container during
// iteration.
func (t *Tfib) RemoveExpiredEntries() {
	expired := make([]*ndn.Name, 0)
	for _, entry := range t.entries {
		if entry.IsExpired() {
			expired = append(expired, entry.Prefix)
		}
	}

	for _, prefix := range expired {
		t.Remove(prefix)
	}

	if len(expired) > 0 {
		core.LogDebug(t, "Swept ", len(expired), " expired entries")
	}
}

func (t *Tfib) notifyAfterInsert(prefix *ndn.Name, faceID uint64, sequence uint32) {
	for _, listener := range t.afterInsertListeners {
		listener(prefix, faceID, sequence)
	}
}

func (t *Tfib) notifyBeforeRemove(prefix *ndn.Name) {
	for _, listener := range t.beforeRemoveListeners {
		listener(prefix)
	}
}
