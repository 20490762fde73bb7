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
)

// tableQueueSize is the maximum size of queues in the tables.
var tableQueueSize int

// tfibEntryLifetime is the lifetime of entries in the Temporary FIB.
var tfibEntryLifetime time.Duration

// tfibCleanupInterval is the interval between Temporary FIB eviction sweeps.
var tfibCleanupInterval time.Duration

// floodDedupLifetime is the lifetime of entries in the flood dedup cache. It
// is kept a few multiples longer than the TFIB entry lifetime so that
// lingering retransmissions of the same flood episode stay suppressed.
var floodDedupLifetime time.Duration

// floodRateCeiling is the maximum number of flood packets admitted per window.
var floodRateCeiling int

// floodRateWindow is the length of the flood rate-limiting window.
var floodRateWindow time.Duration

// Configure configures the forwarding tables.
func Configure() {
	tableQueueSize = core.GetConfigIntDefault("tables.queue_size", 1024)
	tfibEntryLifetime = time.Duration(core.GetConfigIntDefault("tables.tfib.lifetime", 1000)) * time.Millisecond
	tfibCleanupInterval = time.Duration(core.GetConfigIntDefault("tables.tfib.cleanup_interval", 100)) * time.Millisecond
	floodDedupLifetime = time.Duration(core.GetConfigIntDefault("tables.flood_dedup.lifetime", 5000)) * time.Millisecond
	floodRateCeiling = core.GetConfigIntDefault("tables.flood_rate.ceiling", 100)
	floodRateWindow = time.Duration(core.GetConfigIntDefault("tables.flood_rate.window", 1000)) * time.Millisecond
}

// SetTfibTunables overrides TFIB timing parameters. Intended for tests.
func SetTfibTunables(lifetime time.Duration, cleanupInterval time.Duration) {
	tfibEntryLifetime = lifetime
	tfibCleanupInterval = cleanupInterval
}

// SetFloodTunables overrides flood dedup/rate parameters. Intended for tests.
func SetFloodTunables(dedupLifetime time.Duration, rateCeiling int, rateWindow time.Duration) {
	floodDedupLifetime = dedupLifetime
	floodRateCeiling = rateCeiling
	floodRateWindow = rateWindow
}

func init() {
	// Defaults applied when Configure is never called (tests, embedding).
	tableQueueSize = 1024
	tfibEntryLifetime = 1000 * time.Millisecond
	tfibCleanupInterval = 100 * time.Millisecond
	floodDedupLifetime = 5000 * time.Millisecond
	floodRateCeiling = 100
	floodRateWindow = 1000 * time.Millisecond
}
