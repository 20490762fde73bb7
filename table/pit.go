/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/named-data/mobifd/ndn"
)

// PitInRecord records an incoming face in a PIT entry.
type PitInRecord struct {
	FaceID      uint64
	LatestNonce uint32
	Expiry      time.Time
}

// PitEntry represents an entry in a forwarding thread's PIT.
type PitEntry struct {
	Name      *ndn.Name
	InRecords map[uint64]*PitInRecord
	Satisfied bool
	Expiry    time.Time
}

// Pit is the Pending Interest Table for a forwarding thread. Like the TFIB,
// it is owned exclusively by the thread's event loop.
type Pit struct {
	entries map[string]*PitEntry
	Ticker  *time.Ticker
}

// NewPit creates a new PIT for a forwarding thread.
func NewPit() *Pit {
	p := new(Pit)
	p.entries = make(map[string]*PitEntry)
	p.Ticker = time.NewTicker(100 * time.Millisecond)
	return p
}

// Size returns the number of PIT entries.
func (p *Pit) Size() int {
	return len(p.entries)
}

// FindOrInsert returns the PIT entry for the specified Interest, creating one
// if none exists. The second return value indicates a duplicate nonce arriving
// from a different face, i.e. a looping Interest.
func (p *Pit) FindOrInsert(interest *ndn.Interest, faceID uint64) (*PitEntry, bool) {
	key := interest.Name().String()
	entry, ok := p.entries[key]
	if !ok {
		entry = &PitEntry{
			Name:      interest.Name(),
			InRecords: make(map[uint64]*PitInRecord),
		}
		p.entries[key] = entry
	} else {
		for recordFaceID, record := range entry.InRecords {
			if record.LatestNonce == interest.Nonce() && recordFaceID != faceID {
				return entry, true
			}
		}
	}

	entry.InRecords[faceID] = &PitInRecord{
		FaceID:      faceID,
		LatestNonce: interest.Nonce(),
		Expiry:      time.Now().Add(interest.Lifetime()),
	}
	if entry.Expiry.Before(time.Now().Add(interest.Lifetime())) {
		entry.Expiry = time.Now().Add(interest.Lifetime())
	}
	return entry, false
}

// FindFromData returns the PIT entry matching the specified Data packet, or
// nil if none exists.
func (p *Pit) FindFromData(data *ndn.Data) *PitEntry {
	if entry, ok := p.entries[data.Name().String()]; ok {
		return entry
	}
	return nil
}

// Remove removes the specified entry from the PIT.
func (p *Pit) Remove(entry *PitEntry) {
	delete(p.entries, entry.Name.String())
}

// RemoveExpiredEntries removes all expired entries, returning them so the
// forwarding thread can account for unsatisfied Interests. The scan is
// batched: entries are collected first, then removed.
func (p *Pit) RemoveExpiredEntries() []*PitEntry {
	now := time.Now()
	expired := make([]*PitEntry, 0)
	for _, entry := range p.entries {
		if !entry.Expiry.After(now) {
			expired = append(expired, entry)
		}
	}

	for _, entry := range expired {
		p.Remove(entry)
	}
	return expired
}
