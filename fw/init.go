/* MobiFD - a mobility-bridging NDN forwarding daemon
 *
 * Copyright (C) 2024-2026 The MobiFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"strings"

	"github.com/cespare/xxhash"
	"github.com/named-data/mobifd/core"
	"github.com/named-data/mobifd/ndn"
)

// MaxFwThreads is the maximum number of forwarding threads.
const MaxFwThreads = 32

// Threads contains all forwarding threads.
var Threads map[int]*Thread

// fwQueueSize is the maximum number of packets in a forwarding thread's queues.
var fwQueueSize int

// floodDefaultHopLimit is the propagation budget applied when a flood-eligible
// packet does not carry its own hop limit.
var floodDefaultHopLimit uint8

// Configure configures the forwarding system.
func Configure() {
	fwQueueSize = core.GetConfigIntDefault("fw.queue_size", 1024)
	floodDefaultHopLimit = uint8(core.GetConfigIntDefault("fw.flood.default_hop_limit", 3))
}

// SetFloodDefaultHopLimit overrides the default flood hop limit. Intended for tests.
func SetFloodDefaultHopLimit(hopLimit uint8) {
	floodDefaultHopLimit = hopLimit
}

func init() {
	fwQueueSize = 1024
	floodDefaultHopLimit = 3
}

// HashNameToFwThread hashes an NDN name to a forwarding thread.
func HashNameToFwThread(name *ndn.Name) int {
	// Dispatch all management requests to thread 0
	if name.Size() > 0 && name.At(0).String() == "localhost" {
		return 0
	}

	return int(xxhash.Sum64String(name.String()) % uint64(len(Threads)))
}

// HashNameToAllPrefixFwThreads hashes an NDN name to all forwarding threads
// for all prefixes of the name.
func HashNameToAllPrefixFwThreads(name *ndn.Name) []int {
	// Dispatch all management requests to thread 0
	if name.Size() > 0 && name.At(0).String() == "localhost" {
		return []int{0}
	}

	threadMap := make(map[int]interface{})

	// Strings are likely better to work with for performance here than calling Name.Prefix
	for nameString := name.String(); len(nameString) > 1; nameString = nameString[:strings.LastIndex(nameString, "/")] {
		threadMap[int(xxhash.Sum64String(nameString)%uint64(len(Threads)))] = true
	}

	threadList := make([]int, 0, len(threadMap))
	for i := range threadMap {
		threadList = append(threadList, i)
	}
	return threadList
}
