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

func TestRateLimiterAdmitsExactlyCeiling(t *testing.T) {
	SetFloodTunables(5*time.Second, 5, time.Second)
	defer SetFloodTunables(5*time.Second, 100, time.Second)
	limiter := NewFloodRateLimiter()

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Admit(), "admission %d should succeed", i)
	}
	assert.False(t, limiter.Admit())
	assert.False(t, limiter.Admit())
}

func TestRateLimiterWindowReset(t *testing.T) {
	SetFloodTunables(5*time.Second, 2, 100*time.Millisecond)
	defer SetFloodTunables(5*time.Second, 100, time.Second)
	limiter := NewFloodRateLimiter()

	assert.True(t, limiter.Admit())
	assert.True(t, limiter.Admit())
	assert.False(t, limiter.Admit())

	time.Sleep(150 * time.Millisecond)

	// A fresh window restores the full budget
	assert.True(t, limiter.Admit())
	assert.True(t, limiter.Admit())
	assert.False(t, limiter.Admit())
}
