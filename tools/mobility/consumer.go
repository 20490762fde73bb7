/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mobility

import (
	"math/rand"
	"sync"
	"time"

	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/ndn"
)

// DefaultFailureThreshold is the number of consecutive failures after which
// the next request is flood-tagged.
const DefaultFailureThreshold = 3

// maxRetransmitQueue bounds the retransmission queue; the oldest entry is
// dropped when full.
const maxRetransmitQueue = 100

// RequestTracker tracks a consumer's outstanding requests and decides when a
// request should carry a flood announcement to relocate an unreachable
// producer.
type RequestTracker struct {
	mu                  sync.Mutex
	threshold           int
	consecutiveFailures int
	floodArmed          bool
	outstanding         map[string]time.Time
	retransmitQueue     []*ndn.Name
}

// NewRequestTracker creates a request tracker with the specified consecutive
// failure threshold.
func NewRequestTracker(threshold int) *RequestTracker {
	t := new(RequestTracker)
	t.threshold = threshold
	t.outstanding = make(map[string]time.Time)
	t.retransmitQueue = make([]*ndn.Name, 0)
	return t
}

func (t *RequestTracker) String() string {
	return "RequestTracker"
}

// RecordSent records that a request for the specified name was sent.
func (t *RequestTracker) RecordSent(name *ndn.Name) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.outstanding[name.String()] = time.Now()
}

// RecordSuccess records a response for the specified name. Any success resets
// the consecutive failure counter.
func (t *RequestTracker) RecordSuccess(name *ndn.Name) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.outstanding, name.String())
	t.consecutiveFailures = 0
	t.floodArmed = false
}

// RecordFailure records a failed request for the specified name, queueing it
// for retransmission. When the consecutive failure count reaches the
// threshold, the next outgoing request is flood-tagged.
func (t *RequestTracker) RecordFailure(name *ndn.Name) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.outstanding, name.String())
	t.consecutiveFailures++
	if t.consecutiveFailures >= t.threshold {
		t.floodArmed = true
	}

	if len(t.retransmitQueue) >= maxRetransmitQueue {
		core.LogWarn(t, "Retransmission queue full - dropping oldest entry ", t.retransmitQueue[0])
		t.retransmitQueue = t.retransmitQueue[1:]
	}
	t.retransmitQueue = append(t.retransmitQueue, name)
}

// CollectExpired moves outstanding requests older than the specified lifetime
// to the retransmission queue, returning how many expired.
func (t *RequestTracker) CollectExpired(lifetime time.Duration) int {
	t.mu.Lock()
	expired := make([]*ndn.Name, 0)
	now := time.Now()
	for nameString, sent := range t.outstanding {
		if now.Sub(sent) > lifetime {
			name, err := ndn.NameFromString(nameString)
			if err != nil {
				delete(t.outstanding, nameString)
				continue
			}
			expired = append(expired, name)
		}
	}
	t.mu.Unlock()

	for _, name := range expired {
		t.RecordFailure(name)
	}
	return len(expired)
}

// NextRetransmission returns the next name queued for retransmission, or nil
// if the queue is empty. Retransmissions drain before new requests are sent.
func (t *RequestTracker) NextRetransmission() *ndn.Name {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.retransmitQueue) == 0 {
		return nil
	}
	name := t.retransmitQueue[0]
	t.retransmitQueue = t.retransmitQueue[1:]
	return name
}

// ConsecutiveFailures returns the current consecutive failure count.
func (t *RequestTracker) ConsecutiveFailures() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.consecutiveFailures
}

// Annotate tags the specified Interest with a flood announcement if the
// failure threshold has been reached, disarming so only this one request is
// tagged. Returns whether the Interest was tagged.
func (t *RequestTracker) Annotate(interest *ndn.Interest) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.floodArmed {
		return false
	}
	t.floodArmed = false

	announcement := new(ndn.FloodAnnouncement)
	announcement.MobilityFlag = true
	announcement.FloodID = new(uint64)
	*announcement.FloodID = rand.Uint64()
	interest.SetFloodAnnouncement(announcement)

	core.LogInfo(t, "Tagged Interest ", interest.Name(), " after ", t.consecutiveFailures, " consecutive failures")
	return true
}
