/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import "time"

// FloodRateLimiter bounds the amount of flood-triggered processing per time
// window, so a single mobility storm cannot overwhelm a node. It is checked
// after deduplication (repeats of an accepted flood consume no budget) and
// gates propagation only; the local route table is updated regardless.
type FloodRateLimiter struct {
	windowStart time.Time
	count       int
}

// NewFloodRateLimiter creates a new flood rate limiter for a forwarding thread.
func NewFloodRateLimiter() *FloodRateLimiter {
	return new(FloodRateLimiter)
}

// Admit returns whether another flood packet may be processed in the current
// window, incrementing the window count on success.
func (r *FloodRateLimiter) Admit() bool {
	now := time.Now()
	if now.Sub(r.windowStart) > floodRateWindow {
		r.windowStart = now
		r.count = 0
	}

	if r.count >= floodRateCeiling {
		return false
	}
	r.count++
	return true
}
